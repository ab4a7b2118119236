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
	"bytes"
	"context"
	"encoding/csv"
	"io/ioutil"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/gridmodel/meritorder"
	"github.com/gridmodel/meritorder/plants"
)

const plantCSV = `plant_id,territory,latitude,longitude,fuel_code,nameplate_mw,co2e_lb_mwh,capacity_factor
1001,T,40.0,-88.0,BIT,100,2205,0.6
1002,T,41.0,-89.0,WAT,50,0,0.5
1003,T,42.0,-90.0,NG,200,1100,0.4
`

const costCSV = `fuel_code,cost_usd_mwh
BIT,20
BIT,22
WAT,2
NG,35
NG,40
`

const loadCSV = `timestamp,load_mw
2026-01-01T00:00:00Z,60
2026-01-01T01:00:00Z,180
2026-01-01T02:00:00Z,300
`

// writeInputs writes the test fixture tables into dir and points the
// configuration at them.
func writeInputs(t *testing.T, dir string) {
	t.Helper()
	for name, data := range map[string]string{
		"plants.csv": plantCSV,
		"costs.csv":  costCSV,
		"load.csv":   loadCSV,
	} {
		if err := ioutil.WriteFile(filepath.Join(dir, name), []byte(data), 0644); err != nil {
			t.Fatal(err)
		}
	}
	Cfg.Set("PlantFile", filepath.Join(dir, "plants.csv"))
	Cfg.Set("CostFile", filepath.Join(dir, "costs.csv"))
	Cfg.Set("LoadFile", filepath.Join(dir, "load.csv"))
}

func TestDefaults(t *testing.T) {
	if err := setConfig(); err != nil {
		t.Fatal(err)
	}
	tests := []struct {
		name string
		want interface{}
	}{
		{"Runs", 100},
		{"Seed", 1},
		{"Workers", 1},
		{"Strict", false},
		{"DisplayUnit", "kg_mwh"},
		{"OutputFile", "dispatch.csv"},
		{"addr", "localhost:8080"},
	}
	for _, test := range tests {
		if have := Cfg.Get(test.name); have != test.want {
			t.Errorf("%s: want %v but have %v", test.name, test.want, have)
		}
	}
}

func TestRegistryFromCfg(t *testing.T) {
	dir, err := ioutil.TempDir("", "meritorderutil")
	if err != nil {
		t.Fatal(err)
	}
	defer os.RemoveAll(dir)
	writeInputs(t, dir)

	reg, err := registryFromCfg(context.Background(), Cfg)
	if err != nil {
		t.Fatal(err)
	}
	if len(reg.Plants) != 3 {
		t.Fatalf("want 3 plants but have %d", len(reg.Plants))
	}
	// Nameplate capacity is derated.
	if want, have := 100*0.87, reg.Plants[0].Capacity; have != want {
		t.Errorf("plant 1001 capacity: want %g but have %g", want, have)
	}
}

func TestRun(t *testing.T) {
	dir, err := ioutil.TempDir("", "meritorderutil")
	if err != nil {
		t.Fatal(err)
	}
	defer os.RemoveAll(dir)
	writeInputs(t, dir)

	outFile := filepath.Join(dir, "dispatch.csv")
	efFile := filepath.Join(dir, "efseries.csv")
	Cfg.Set("OutputFile", outFile)
	Cfg.Set("EFSeriesFile", efFile)
	Cfg.Set("SnapshotFile", "")
	Cfg.Set("Runs", 4)
	Cfg.Set("Seed", 42)
	Cfg.Set("Territory", "")

	if err := Run(context.Background(), Cfg); err != nil {
		t.Fatal(err)
	}

	f, err := os.Open(outFile)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	rows, err := csv.NewReader(f).ReadAll()
	if err != nil {
		t.Fatal(err)
	}
	// Header plus one row per (run, plant) pair.
	if want, have := 1+4*3, len(rows); have != want {
		t.Fatalf("dispatch table: want %d rows but have %d", want, have)
	}
	if want, have := "cumulative_ef_kg_mwh", rows[0][6]; have != want {
		t.Errorf("dispatch table header: want %q but have %q", want, have)
	}

	ef, err := os.Open(efFile)
	if err != nil {
		t.Fatal(err)
	}
	defer ef.Close()
	efRows, err := csv.NewReader(ef).ReadAll()
	if err != nil {
		t.Fatal(err)
	}
	if want, have := 1+3, len(efRows); have != want {
		t.Fatalf("emissions-factor series: want %d rows but have %d", want, have)
	}
	if want, have := 2+2+4, len(efRows[0]); have != want {
		t.Errorf("emissions-factor series header: want %d columns but have %d", want, have)
	}
}

func TestRun_missingOutputDir(t *testing.T) {
	Cfg.Set("OutputFile", filepath.Join("no", "such", "dir", "dispatch.csv"))
	err := Run(context.Background(), Cfg)
	if err == nil {
		t.Fatal("want an error for a missing output directory")
	}
	if !strings.Contains(err.Error(), "doesn't exist") {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestWriteRunsCSV(t *testing.T) {
	run := &meritorder.DispatchRun{
		ID: 1,
		Points: []meritorder.DispatchPoint{
			{
				Plant:              &plants.Plant{ID: "1001", Territory: "T", Fuel: plants.Coal},
				Cost:               21.5,
				CumulativeCapacity: 52.2,
				CumulativeEF:       1000,
			},
		},
	}
	var buf bytes.Buffer
	if err := WriteRunsCSV(&buf, []*meritorder.DispatchRun{run}); err != nil {
		t.Fatal(err)
	}
	want := "run,plant_id,territory,fuel,cost_usd_mwh,cumulative_capacity_mw,cumulative_ef_kg_mwh\n" +
		"1,1001,T,COAL,21.5,52.2,1000\n"
	if have := buf.String(); have != want {
		t.Errorf("want:\n%s\nhave:\n%s", want, have)
	}
}

func TestVersionCmd(t *testing.T) {
	var buf bytes.Buffer
	Root.SetOut(&buf)
	Root.SetArgs([]string{"version"})
	if err := Root.Execute(); err != nil {
		t.Fatal(err)
	}
	if want, have := "MeritOrder v"+meritorder.Version+"\n", buf.String(); have != want {
		t.Errorf("want %q but have %q", want, have)
	}
}
