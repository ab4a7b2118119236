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
	"testing"
	"time"

	"github.com/gridmodel/meritorder/loads"
)

func testSamples(mws ...float64) []loads.Sample {
	t0 := time.Date(2019, time.July, 1, 0, 0, 0, 0, time.UTC)
	o := make([]loads.Sample, len(mws))
	for i, mw := range mws {
		o[i] = loads.New(t0.Add(time.Duration(i)*time.Hour), mw)
	}
	return o
}

func TestEstimateMarginalEF(t *testing.T) {
	runs, err := RunDispatch(exampleRegistry(), 3, 11)
	if err != nil {
		t.Fatal(err)
	}
	samples := testSamples(50, 150, 350)
	series, err := EstimateMarginalEF(samples, runs)
	if err != nil {
		t.Fatal(err)
	}
	if len(series) != 3 {
		t.Fatalf("want 3 series but have %d", len(series))
	}
	// The example registry's cost distributions are far enough apart
	// that every run orders the plants identically, so every run's
	// series evaluates to the knot values.
	want := []float64{0.1, 11.0 / 30.0, 43.0 / 70.0}
	for _, s := range series {
		if len(s.EF) != len(samples) {
			t.Fatalf("run %d: want %d values but have %d", s.Run, len(samples), len(s.EF))
		}
		for i, ef := range s.EF {
			if different(ef, want[i]) {
				t.Errorf("run %d sample %d: want %g but have %g", s.Run, i, want[i], ef)
			}
		}
	}
}

func TestEstimateMarginalEF_strict(t *testing.T) {
	runs, err := RunDispatch(exampleRegistry(), 2, 11)
	if err != nil {
		t.Fatal(err)
	}
	// 1000 MW is outside every run's domain: all runs fail, and the
	// error is surfaced.
	series, err := Estimator{Strict: true}.MarginalEF(testSamples(1000), runs)
	if err == nil {
		t.Fatal("want error but have nil")
	}
	if _, ok := err.(*OutOfRangeError); !ok {
		t.Errorf("want OutOfRangeError but have %T", err)
	}
	if len(series) != 0 {
		t.Errorf("want no surviving series but have %d", len(series))
	}
}

func TestEstimateMarginalEF_noData(t *testing.T) {
	runs, err := RunDispatch(exampleRegistry(), 1, 11)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := EstimateMarginalEF(nil, runs); err != ErrNoData {
		t.Errorf("no samples: want ErrNoData but have %v", err)
	}
	if _, err := EstimateMarginalEF(testSamples(100), nil); err != ErrNoData {
		t.Errorf("no runs: want ErrNoData but have %v", err)
	}
}

func TestDisplayUnit(t *testing.T) {
	if ParseDisplayUnit("g_kwh") != GPerKWh {
		t.Error("g_kwh did not parse to GPerKWh")
	}
	if ParseDisplayUnit("") != KgPerMWh {
		t.Error("empty unit did not default to KgPerMWh")
	}
	if KgPerMWh.String() != "kg CO2e/MWh" || GPerKWh.String() != "g CO2e/kWh" {
		t.Error("unexpected display unit labels")
	}
}

func TestBand(t *testing.T) {
	series := []Series{
		{Run: 1, EF: []float64{0.2, 0.4}},
		{Run: 2, EF: []float64{0.4, 0.8}},
	}
	band, err := Band(series)
	if err != nil {
		t.Fatal(err)
	}
	if len(band) != 2 {
		t.Fatalf("want 2 band points but have %d", len(band))
	}
	if different(band[0].Mean, 0.3) || different(band[1].Mean, 0.6) {
		t.Errorf("means: have %+v", band)
	}
	// Sample std dev of {0.2, 0.4} is 0.2/√2.
	if !closeEnough(band[0].StdDev, 0.1414213562, 1.0e-9) {
		t.Errorf("std dev: want 0.1414 but have %g", band[0].StdDev)
	}
}

func TestBand_singleRun(t *testing.T) {
	band, err := Band([]Series{{Run: 1, EF: []float64{0.5}}})
	if err != nil {
		t.Fatal(err)
	}
	if band[0].StdDev != 0 {
		t.Errorf("single-run std dev: want 0 but have %g", band[0].StdDev)
	}
}

func TestBand_errors(t *testing.T) {
	if _, err := Band(nil); err != ErrNoData {
		t.Errorf("empty band: want ErrNoData but have %v", err)
	}
	_, err := Band([]Series{
		{Run: 1, EF: []float64{1, 2}},
		{Run: 2, EF: []float64{1}},
	})
	if err == nil {
		t.Error("length mismatch: want error but have nil")
	}
}
