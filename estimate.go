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
	"github.com/gridmodel/meritorder/loads"
)

// A Series is one dispatch run's marginal emissions-factor estimates,
// aligned with the load samples it was evaluated against.
type Series struct {
	// Run is the dispatch run number the series was estimated from.
	Run int `json:"run"`

	// EF holds one marginal emissions factor per load sample
	// [kg CO2e/MWh].
	EF []float64 `json:"ef"`
}

// An Estimator maps load samples onto dispatch curves.
type Estimator struct {
	// Strict, if true, causes loads outside a curve's observed
	// cumulative-capacity domain to fail with an OutOfRangeError
	// instead of being extrapolated.
	Strict bool
}

// MarginalEF evaluates every dispatch run's curve at every load
// sample, returning one series per run. A failure evaluating one run
// does not affect the other runs' results; the first error encountered
// is returned along with the series that completed.
func (e Estimator) MarginalEF(samples []loads.Sample, runs []*DispatchRun) ([]Series, error) {
	if len(samples) == 0 || len(runs) == 0 {
		return nil, ErrNoData
	}
	var firstErr error
	o := make([]Series, 0, len(runs))
	for _, run := range runs {
		curve := run.Curve()
		s := Series{Run: run.ID, EF: make([]float64, len(samples))}
		var runErr error
		for i, sample := range samples {
			var ef float64
			var err error
			if e.Strict {
				ef, err = curve.EvaluateStrict(sample.MW)
			} else {
				ef, err = curve.Evaluate(sample.MW)
			}
			if err != nil {
				runErr = err
				break
			}
			s.EF[i] = ef
		}
		if runErr != nil {
			if firstErr == nil {
				firstErr = runErr
			}
			continue
		}
		o = append(o, s)
	}
	return o, firstErr
}

// EstimateMarginalEF evaluates every dispatch run's curve at every
// load sample with the default extrapolating policy. See
// Estimator.MarginalEF.
func EstimateMarginalEF(samples []loads.Sample, runs []*DispatchRun) ([]Series, error) {
	return Estimator{}.MarginalEF(samples, runs)
}

// A DisplayUnit selects the unit label for emissions-factor output.
// The two units are numerically identical (1 kg/MWh = 1 g/kWh), so the
// choice affects labeling only.
type DisplayUnit int

const (
	// KgPerMWh displays emissions factors as kg CO2e/MWh.
	KgPerMWh DisplayUnit = iota

	// GPerKWh displays emissions factors as g CO2e/kWh.
	GPerKWh
)

func (u DisplayUnit) String() string {
	if u == GPerKWh {
		return "g CO2e/kWh"
	}
	return "kg CO2e/MWh"
}

// Suffix returns a short form of the unit name suitable for use in
// column headers and file names.
func (u DisplayUnit) Suffix() string {
	if u == GPerKWh {
		return "g_kwh"
	}
	return "kg_mwh"
}

// ParseDisplayUnit interprets a display-unit name such as "kg_mwh" or
// "g_kwh". Unrecognized names default to KgPerMWh.
func ParseDisplayUnit(s string) DisplayUnit {
	switch s {
	case "g_kwh", "g/kWh", "g CO2e/kWh":
		return GPerKWh
	}
	return KgPerMWh
}
