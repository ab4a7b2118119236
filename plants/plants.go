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

// Package plants builds the power plant registry that the dispatch
// model runs against. It normalizes raw plant inventory records
// (capacity derating, emissions-rate unit conversion, fuel-code
// classification), aggregates marginal-cost observations into
// per-fuel cost distributions, and joins the two.
package plants

import (
	"fmt"
	"sort"

	"github.com/ctessum/geom"
)

const (
	// capacityDerate is the fixed derating factor applied to raw
	// nameplate capacity.
	capacityDerate = 0.87

	// lbPerKg converts emissions rates reported in lb CO2e/MWh
	// to kg CO2e/MWh.
	lbPerKg = 2.205
)

// RawPlant is one generation unit as it appears in the raw plant
// inventory, before normalization.
type RawPlant struct {
	// ID is the unique plant identifier (e.g. an ORISPL code).
	ID string

	// Territory is the grid territory or balancing authority the
	// plant dispatches into.
	Territory string

	// Latitude and Longitude are the plant location in degrees.
	Latitude, Longitude float64

	// FuelCode is the raw primary fuel code.
	FuelCode string

	// NameplateMW is the raw, un-derated nameplate capacity in MW.
	NameplateMW float64

	// EmissionsLbPerMWh is the CO2-equivalent emissions rate in
	// lb CO2e/MWh.
	EmissionsLbPerMWh float64

	// CapacityFactor is the annual capacity factor as a fraction.
	// Negative values in the raw data are treated as zero.
	CapacityFactor float64
}

// Plant is one generation unit in the registry, normalized and joined
// with its fuel-type marginal cost distribution. Plants are immutable
// once the registry is built.
type Plant struct {
	// ID is the unique plant identifier.
	ID string

	// Territory is the grid territory or balancing authority label.
	Territory string

	// Location is the plant location (longitude, latitude).
	Location geom.Point

	// FuelCode is the raw primary fuel code the plant was
	// classified from.
	FuelCode string

	// Fuel is the fuel category used for dispatch.
	Fuel FuelType

	// Capacity is the derated nameplate capacity in MW.
	Capacity float64

	// EmissionsFactor is the emissions rate in kg CO2e/MWh.
	EmissionsFactor float64

	// CapacityFactor is the annual capacity factor, clamped to ≥ 0.
	CapacityFactor float64

	// Cost is the marginal cost distribution for the plant's fuel type.
	Cost CostStat
}

// Registry is an immutable collection of plants ready for dispatch.
// Plant order is the order of the raw inventory, which fixes the
// tie-breaking order for dispatch sorting.
type Registry struct {
	Plants []*Plant
}

// Build normalizes the given raw plants, aggregates the cost
// observations, joins the two, and returns the resulting registry.
// Plants with an empty territory, an empty fuel code, or a fuel type
// with no cost observations are dropped. It returns a
// ConfigurationError if the cost table is empty or no plants survive
// filtering.
func (c Classifier) Build(raw []RawPlant, costs []CostObservation) (*Registry, error) {
	stats, err := aggregateCosts(c, costs)
	if err != nil {
		return nil, err
	}
	reg := new(Registry)
	for _, r := range raw {
		if r.Territory == "" {
			continue
		}
		fuel := c.Classify(r.FuelCode)
		if fuel == "" {
			continue
		}
		st, ok := stats[fuel]
		if !ok {
			continue
		}
		cf := r.CapacityFactor
		if cf < 0 {
			cf = 0
		}
		reg.Plants = append(reg.Plants, &Plant{
			ID:              r.ID,
			Territory:       r.Territory,
			Location:        geom.Point{X: r.Longitude, Y: r.Latitude},
			FuelCode:        r.FuelCode,
			Fuel:            fuel,
			Capacity:        r.NameplateMW * capacityDerate,
			EmissionsFactor: r.EmissionsLbPerMWh / lbPerKg,
			CapacityFactor:  cf,
			Cost:            st,
		})
	}
	if len(reg.Plants) == 0 {
		return nil, &ConfigurationError{"no plants survived registry filtering"}
	}
	return reg, nil
}

// BuildRegistry builds a registry using the default fuel classification
// table. See Classifier.Build.
func BuildRegistry(raw []RawPlant, costs []CostObservation) (*Registry, error) {
	return DefaultClassifier().Build(raw, costs)
}

// FilterTerritory returns the sub-registry of plants in the given
// territory. An empty code returns the receiver unchanged. The
// returned registry shares plant records with the receiver; no
// normalization or joining is redone.
func (r *Registry) FilterTerritory(code string) *Registry {
	if code == "" {
		return r
	}
	o := new(Registry)
	for _, p := range r.Plants {
		if p.Territory == code {
			o.Plants = append(o.Plants, p)
		}
	}
	return o
}

// FilterBounds returns the sub-registry of plants whose locations fall
// within the given bounding box. The returned registry shares plant
// records with the receiver.
func (r *Registry) FilterBounds(b *geom.Bounds) *Registry {
	o := new(Registry)
	for _, p := range r.Plants {
		if b.Overlaps(p.Location.Bounds()) {
			o.Plants = append(o.Plants, p)
		}
	}
	return o
}

// Territories returns the sorted set of territory labels present in
// the registry.
func (r *Registry) Territories() []string {
	seen := make(map[string]struct{})
	var o []string
	for _, p := range r.Plants {
		if _, ok := seen[p.Territory]; !ok {
			seen[p.Territory] = struct{}{}
			o = append(o, p.Territory)
		}
	}
	sort.Strings(o)
	return o
}

// Fuels returns the sorted set of fuel types present in the registry.
func (r *Registry) Fuels() []FuelType {
	seen := make(map[FuelType]struct{})
	var o []FuelType
	for _, p := range r.Plants {
		if _, ok := seen[p.Fuel]; !ok {
			seen[p.Fuel] = struct{}{}
			o = append(o, p.Fuel)
		}
	}
	sort.Slice(o, func(i, j int) bool { return o[i] < o[j] })
	return o
}

// ConfigurationError indicates malformed or empty input tables: a
// missing required column, an empty cost table, or filtering that
// leaves no plants behind.
type ConfigurationError struct {
	Message string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("plants: %s", e.Message)
}
