/*
Copyright © 2026 the MeritOrder authors.
This file is part of MeritOrder.

MeritOrder is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

MeritOrder is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with MeritOrder.  If not, see <http://www.gnu.org/licenses/>.*/

package meritorder

import (
	"fmt"

	"github.com/GaryBoone/GoStats/stats"
)

// A BandPoint is the across-run mean and standard deviation of the
// marginal emissions factor at one timestamp [kg CO2e/MWh].
type BandPoint struct {
	Mean   float64 `json:"mean"`
	StdDev float64 `json:"std_dev"`
}

// Band collapses per-run emissions-factor series into a per-timestamp
// uncertainty band. All series must be the same length. With a single
// run the standard deviation is zero.
func Band(series []Series) ([]BandPoint, error) {
	if len(series) == 0 {
		return nil, ErrNoData
	}
	n := len(series[0].EF)
	for _, s := range series {
		if len(s.EF) != n {
			return nil, fmt.Errorf("meritorder: series length mismatch: run %d has %d values; want %d",
				s.Run, len(s.EF), n)
		}
	}
	o := make([]BandPoint, n)
	for i := 0; i < n; i++ {
		var st stats.Stats
		for _, s := range series {
			st.Update(s.EF[i])
		}
		o[i].Mean = st.Mean()
		if st.Count() > 1 {
			o[i].StdDev = st.SampleStandardDeviation()
		}
	}
	return o, nil
}
