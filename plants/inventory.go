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
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"strings"
)

// Column aliases accepted in inventory headers. The first name in each
// list is the canonical one; the rest follow the eGRID plant file
// naming convention.
var (
	plantIDCols    = []string{"plant_id", "orispl"}
	territoryCols  = []string{"territory", "bacode", "ba"}
	latitudeCols   = []string{"latitude", "lat"}
	longitudeCols  = []string{"longitude", "lon"}
	fuelCodeCols   = []string{"fuel_code", "plprmfl", "fuel"}
	nameplateCols  = []string{"nameplate_mw", "namepcap", "capacity"}
	emissionsCols  = []string{"co2e_lb_mwh", "plc2erta", "emissions_rate"}
	capacityFacCol = []string{"capacity_factor", "capfac"}
	costCols       = []string{"cost_usd_mwh", "cost", "marginal_cost"}
)

// header maps lower-cased column names to their positions in a CSV
// header row.
type header map[string]int

func readHeader(row []string) header {
	h := make(header)
	for i, name := range row {
		h[strings.ToLower(strings.TrimSpace(name))] = i
	}
	return h
}

// column returns the position of the first matching alias, or an error
// naming the canonical column if none match.
func (h header) column(aliases []string) (int, error) {
	for _, a := range aliases {
		if i, ok := h[a]; ok {
			return i, nil
		}
	}
	return 0, &ConfigurationError{fmt.Sprintf("missing required column %q", aliases[0])}
}

// field returns the trimmed value of column i in row, or "" if the row
// is too short.
func field(row []string, i int) string {
	if i < 0 || i >= len(row) {
		return ""
	}
	return strings.TrimSpace(row[i])
}

// parseFloat parses a numeric field, treating an empty field as zero.
func parseFloat(s string, line int, col string) (float64, error) {
	if s == "" {
		return 0, nil
	}
	v, err := strconv.ParseFloat(strings.Replace(s, ",", "", -1), 64)
	if err != nil {
		return 0, &ConfigurationError{fmt.Sprintf("line %d: parsing %s value %q: %v", line, col, s, err)}
	}
	return v, nil
}

// ReadPlantCSV reads a raw plant inventory table. The first row must
// be a header containing the plant id, territory, latitude, longitude,
// fuel code, nameplate capacity, and emissions rate columns; the
// capacity factor column is optional.
func ReadPlantCSV(f io.Reader) ([]RawPlant, error) {
	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	rows, err := r.ReadAll()
	if err != nil {
		return nil, &ConfigurationError{fmt.Sprintf("reading plant table: %v", err)}
	}
	if len(rows) < 2 {
		return nil, &ConfigurationError{"the plant table is empty"}
	}
	h := readHeader(rows[0])
	id, err := h.column(plantIDCols)
	if err != nil {
		return nil, err
	}
	terr, err := h.column(territoryCols)
	if err != nil {
		return nil, err
	}
	lat, err := h.column(latitudeCols)
	if err != nil {
		return nil, err
	}
	lon, err := h.column(longitudeCols)
	if err != nil {
		return nil, err
	}
	fuel, err := h.column(fuelCodeCols)
	if err != nil {
		return nil, err
	}
	np, err := h.column(nameplateCols)
	if err != nil {
		return nil, err
	}
	emis, err := h.column(emissionsCols)
	if err != nil {
		return nil, err
	}
	cf, cfErr := h.column(capacityFacCol) // optional

	var o []RawPlant
	for i, row := range rows[1:] {
		line := i + 2
		p := RawPlant{
			ID:        field(row, id),
			Territory: field(row, terr),
			FuelCode:  field(row, fuel),
		}
		if p.Latitude, err = parseFloat(field(row, lat), line, "latitude"); err != nil {
			return nil, err
		}
		if p.Longitude, err = parseFloat(field(row, lon), line, "longitude"); err != nil {
			return nil, err
		}
		if p.NameplateMW, err = parseFloat(field(row, np), line, "nameplate capacity"); err != nil {
			return nil, err
		}
		if p.EmissionsLbPerMWh, err = parseFloat(field(row, emis), line, "emissions rate"); err != nil {
			return nil, err
		}
		if cfErr == nil {
			if p.CapacityFactor, err = parseFloat(field(row, cf), line, "capacity factor"); err != nil {
				return nil, err
			}
		}
		o = append(o, p)
	}
	return o, nil
}

// ReadCostCSV reads a raw marginal-cost table. The first row must be a
// header containing the fuel code and cost columns.
func ReadCostCSV(f io.Reader) ([]CostObservation, error) {
	r := csv.NewReader(f)
	r.FieldsPerRecord = -1
	rows, err := r.ReadAll()
	if err != nil {
		return nil, &ConfigurationError{fmt.Sprintf("reading cost table: %v", err)}
	}
	if len(rows) < 2 {
		return nil, &ConfigurationError{"the cost table is empty"}
	}
	h := readHeader(rows[0])
	fuel, err := h.column(fuelCodeCols)
	if err != nil {
		return nil, err
	}
	cost, err := h.column(costCols)
	if err != nil {
		return nil, err
	}
	var o []CostObservation
	for i, row := range rows[1:] {
		line := i + 2
		obs := CostObservation{FuelCode: field(row, fuel)}
		if obs.CostPerMWh, err = parseFloat(field(row, cost), line, "marginal cost"); err != nil {
			return nil, err
		}
		o = append(o, obs)
	}
	return o, nil
}
