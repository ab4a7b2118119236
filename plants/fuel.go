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
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
)

// FuelType is the fuel category a plant is dispatched under.
// Raw fuel codes that do not match any recognized group pass
// through as their own FuelType, so the set of values observed
// in a registry may be larger than the constants defined here.
type FuelType string

// The recognized fuel categories.
const (
	Coal        FuelType = "COAL"
	Petroleum   FuelType = "OIL"
	Biomass     FuelType = "BIOMASS"
	Hydro       FuelType = "HYDRO"
	Solar       FuelType = "SOLAR"
	Wind        FuelType = "WIND"
	NaturalGas  FuelType = "GAS"
	Nuclear     FuelType = "NUCLEAR"
	LandfillGas FuelType = "LFG"
	Other       FuelType = "OTHER"
)

// FuelTypes lists the recognized fuel categories in display order.
var FuelTypes = []FuelType{
	Coal, Petroleum, Biomass, Hydro, Solar, Wind,
	NaturalGas, Nuclear, LandfillGas, Other,
}

// Recognized reports whether f is one of the fixed fuel categories,
// as opposed to a raw fuel code passed through unclassified.
func (f FuelType) Recognized() bool {
	switch f {
	case Coal, Petroleum, Biomass, Hydro, Solar, Wind,
		NaturalGas, Nuclear, LandfillGas, Other:
		return true
	}
	return false
}

// A Classifier maps raw primary-fuel codes (as they appear in plant
// inventory files, e.g. "BIT" or "NG") to fuel categories.
type Classifier map[string]FuelType

// DefaultClassifier returns the default fuel-code classification table.
// The codes follow the EIA primary fuel code convention used in
// plant-level emissions inventories.
func DefaultClassifier() Classifier {
	return Classifier{
		// Coal and coal-derived fuels.
		"BIT": Coal, "SUB": Coal, "LIG": Coal, "RC": Coal,
		"WC": Coal, "SGC": Coal, "COG": Coal,

		// Petroleum products.
		"DFO": Petroleum, "RFO": Petroleum, "JF": Petroleum,
		"KER": Petroleum, "WO": Petroleum, "PC": Petroleum,

		// Biomass, including waste streams burned for energy.
		"AB": Biomass, "WDS": Biomass, "WDL": Biomass,
		"OBS": Biomass, "OBL": Biomass, "OBG": Biomass,
		"MSW": Biomass, "BLQ": Biomass, "SLW": Biomass,

		"WAT": Hydro,
		"SUN": Solar,
		"WND": Wind,

		// Natural and other pipeline gases.
		"NG": NaturalGas, "BFG": NaturalGas, "OG": NaturalGas,
		"PG": NaturalGas,

		"NUC": Nuclear,
		"LFG": LandfillGas,

		// Miscellaneous sources with no meaningful marginal fuel cost
		// grouping of their own.
		"GEO": Other, "PUR": Other, "WH": Other, "MWH": Other,
		"TDF": Other, "OTH": Other,
	}
}

// Classify returns the fuel category for the given raw fuel code.
// Codes matching no recognized group are passed through unchanged as
// their own category; an empty code classifies to the empty FuelType.
func (c Classifier) Classify(code string) FuelType {
	code = strings.ToUpper(strings.TrimSpace(code))
	if code == "" {
		return ""
	}
	if f, ok := c[code]; ok {
		return f
	}
	return FuelType(code)
}

// LoadClassifier reads a classification table from a TOML file
// containing a single [fuels] table of code = "CATEGORY" pairs, which
// is merged over the default table. Categories must be drawn from the
// recognized fuel category set.
func LoadClassifier(filename string) (Classifier, error) {
	var data struct {
		Fuels map[string]string
	}
	if _, err := toml.DecodeFile(filename, &data); err != nil {
		return nil, fmt.Errorf("plants: reading fuel classification file %s: %v", filename, err)
	}
	c := DefaultClassifier()
	for code, cat := range data.Fuels {
		f := FuelType(strings.ToUpper(strings.TrimSpace(cat)))
		if !f.Recognized() {
			return nil, fmt.Errorf("plants: fuel classification file %s: %s=%s is not a recognized fuel category", filename, code, cat)
		}
		c[strings.ToUpper(strings.TrimSpace(code))] = f
	}
	return c, nil
}
