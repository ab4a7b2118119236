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

package meritorderutil

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/gridmodel/meritorder"
	"github.com/gridmodel/meritorder/loads"
)

func ftoa(v float64) string {
	return strconv.FormatFloat(v, 'g', -1, 64)
}

// WriteRunsCSV writes the dispatch-run table in CSV format: one row
// per (run, plant) pair, in merit order within each run.
func WriteRunsCSV(w io.Writer, runs []*meritorder.DispatchRun) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"run", "plant_id", "territory", "fuel",
		"cost_usd_mwh", "cumulative_capacity_mw", "cumulative_ef_kg_mwh"}); err != nil {
		return fmt.Errorf("meritorder: writing dispatch table: %v", err)
	}
	for _, run := range runs {
		for _, pt := range run.Points {
			row := []string{
				strconv.Itoa(run.ID),
				pt.Plant.ID,
				pt.Plant.Territory,
				string(pt.Plant.Fuel),
				ftoa(pt.Cost),
				ftoa(pt.CumulativeCapacity),
				ftoa(pt.CumulativeEF),
			}
			if err := cw.Write(row); err != nil {
				return fmt.Errorf("meritorder: writing dispatch table: %v", err)
			}
		}
	}
	cw.Flush()
	return cw.Error()
}

// WriteEFSeriesCSV writes the marginal emissions-factor band in CSV
// format: one row per load sample, holding the load, the across-run
// mean and standard deviation of the marginal emissions factor, and
// each individual run's estimate. Values are converted to u for
// display.
func WriteEFSeriesCSV(w io.Writer, samples []loads.Sample, series []meritorder.Series, band []meritorder.BandPoint, u meritorder.DisplayUnit) error {
	if len(band) != len(samples) {
		return fmt.Errorf("meritorder: emissions-factor band has %d points but the load profile has %d samples", len(band), len(samples))
	}
	cw := csv.NewWriter(w)
	header := []string{"time", "load_mw", "ef_mean_" + u.Suffix(), "ef_std_dev_" + u.Suffix()}
	for _, s := range series {
		header = append(header, fmt.Sprintf("ef_run_%d_%s", s.Run, u.Suffix()))
	}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("meritorder: writing emissions-factor series: %v", err)
	}
	for i, smp := range samples {
		row := []string{
			smp.Time.Format(time.RFC3339),
			ftoa(smp.MW),
			ftoa(band[i].Mean),
			ftoa(band[i].StdDev),
		}
		for _, s := range series {
			row = append(row, ftoa(s.EF[i]))
		}
		if err := cw.Write(row); err != nil {
			return fmt.Errorf("meritorder: writing emissions-factor series: %v", err)
		}
	}
	cw.Flush()
	return cw.Error()
}
