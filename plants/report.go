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
	"sort"

	"github.com/ctessum/unit"
)

const (
	wattPerMW   = 1.0e6
	joulePerMWh = 3.6e9
)

// FuelSummary aggregates the registry plants of one fuel type.
type FuelSummary struct {
	// Fuel is the fuel category being summarized.
	Fuel FuelType

	// Plants is the number of registry plants of this fuel type.
	Plants int

	// Capacity is the total derated capacity [W].
	Capacity *unit.Unit

	// AvgEmissionsFactor is the capacity-weighted average emissions
	// factor [kg/J].
	AvgEmissionsFactor *unit.Unit
}

// Summary returns per-fuel-type capacity and capacity-weighted
// emissions factor totals for the registry, ordered by fuel type.
// Quantities carry their physical dimensions: capacity in watts and
// emissions factors in kilograms per joule.
func (r *Registry) Summary() []FuelSummary {
	type accum struct {
		n          int
		capMW      float64
		weightedEF float64 // Σ capacity×EF, kg/MWh × MW
	}
	acc := make(map[FuelType]*accum)
	for _, p := range r.Plants {
		a, ok := acc[p.Fuel]
		if !ok {
			a = new(accum)
			acc[p.Fuel] = a
		}
		a.n++
		a.capMW += p.Capacity
		a.weightedEF += p.Capacity * p.EmissionsFactor
	}
	o := make([]FuelSummary, 0, len(acc))
	for fuel, a := range acc {
		s := FuelSummary{
			Fuel:     fuel,
			Plants:   a.n,
			Capacity: unit.New(a.capMW*wattPerMW, unit.Watt),
		}
		var ef float64
		if a.capMW > 0 {
			ef = a.weightedEF / a.capMW
		}
		s.AvgEmissionsFactor = unit.Div(
			unit.New(ef, unit.Kilogram),
			unit.New(joulePerMWh, unit.Joule),
		)
		o = append(o, s)
	}
	sort.Slice(o, func(i, j int) bool { return o[i].Fuel < o[j].Fuel })
	return o
}
