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
	"testing"
)

func TestAggregateCosts(t *testing.T) {
	c := DefaultClassifier()
	costs := []CostObservation{
		{FuelCode: "BIT", CostPerMWh: 20},
		{FuelCode: "SUB", CostPerMWh: 30},
		{FuelCode: "LIG", CostPerMWh: 25},
		{FuelCode: "NG", CostPerMWh: 40},
	}
	stats, err := aggregateCosts(c, costs)
	if err != nil {
		t.Fatal(err)
	}

	coal, ok := stats[Coal]
	if !ok {
		t.Fatal("no coal cost stats")
	}
	if different(coal.Mean, 25.0) {
		t.Errorf("coal mean: want 25 but have %g", coal.Mean)
	}
	if different(coal.StdDev, 5.0) { // sample std dev of {20, 30, 25}
		t.Errorf("coal std dev: want 5 but have %g", coal.StdDev)
	}
	if coal.Observations != 3 {
		t.Errorf("coal observations: want 3 but have %d", coal.Observations)
	}
}

// A fuel type with a single cost observation gets a standard deviation
// of 5% of the mean.
func TestAggregateCosts_singleObservation(t *testing.T) {
	stats, err := aggregateCosts(DefaultClassifier(), []CostObservation{
		{FuelCode: "NG", CostPerMWh: 40},
	})
	if err != nil {
		t.Fatal(err)
	}
	gas := stats[NaturalGas]
	if different(gas.StdDev, 2.0) {
		t.Errorf("std dev fallback: want 2 but have %g", gas.StdDev)
	}
	if math.IsNaN(gas.StdDev) {
		t.Error("std dev fallback: have NaN")
	}
}

func TestAggregateCosts_empty(t *testing.T) {
	if _, err := aggregateCosts(DefaultClassifier(), nil); err == nil {
		t.Error("want error for empty cost table but have nil")
	}
	// Observations with only empty fuel codes are equivalent to an
	// empty table.
	if _, err := aggregateCosts(DefaultClassifier(), []CostObservation{{FuelCode: "", CostPerMWh: 10}}); err == nil {
		t.Error("want error for unusable cost table but have nil")
	}
}
