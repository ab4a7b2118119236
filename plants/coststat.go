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

package plants

import (
	"math"

	"gonum.org/v1/gonum/stat"
)

// singleObsStdDevFrac is the fraction of the mean substituted for the
// standard deviation when a fuel type has only one cost observation.
const singleObsStdDevFrac = 0.05

// CostObservation is one raw marginal-cost observation for a fuel code.
type CostObservation struct {
	// FuelCode is the raw primary fuel code the observation applies to.
	FuelCode string

	// CostPerMWh is the observed marginal cost in $/MWh.
	CostPerMWh float64
}

// CostStat is the marginal cost distribution for one fuel type,
// aggregated from raw cost observations.
type CostStat struct {
	// Fuel is the fuel category the distribution applies to.
	Fuel FuelType

	// Mean is the mean marginal cost in $/MWh.
	Mean float64

	// StdDev is the standard deviation of the marginal cost in $/MWh.
	// When only a single observation exists it is 5% of the mean.
	StdDev float64

	// Observations is the number of raw observations aggregated.
	Observations int
}

// aggregateCosts groups the raw cost observations by fuel category and
// computes the (mean, std-dev) distribution for each. It returns a
// ConfigurationError if the cost table is empty.
func aggregateCosts(c Classifier, costs []CostObservation) (map[FuelType]CostStat, error) {
	if len(costs) == 0 {
		return nil, &ConfigurationError{"the cost table is empty"}
	}
	groups := make(map[FuelType][]float64)
	for _, o := range costs {
		fuel := c.Classify(o.FuelCode)
		if fuel == "" {
			continue
		}
		groups[fuel] = append(groups[fuel], o.CostPerMWh)
	}
	if len(groups) == 0 {
		return nil, &ConfigurationError{"the cost table contains no usable fuel codes"}
	}
	stats := make(map[FuelType]CostStat)
	for fuel, obs := range groups {
		mean, sd := stat.MeanStdDev(obs, nil)
		if len(obs) < 2 || math.IsNaN(sd) {
			sd = singleObsStdDevFrac * mean
		}
		stats[fuel] = CostStat{
			Fuel:         fuel,
			Mean:         mean,
			StdDev:       sd,
			Observations: len(obs),
		}
	}
	return stats, nil
}
