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
	"context"
	"reflect"
	"testing"

	"github.com/gridmodel/meritorder/plants"
)

// twoTerritoryRegistry extends the example registry with a second
// territory.
func twoTerritoryRegistry() *plants.Registry {
	reg := exampleRegistry()
	reg.Plants = append(reg.Plants, &plants.Plant{
		ID: "D", Territory: "U", Fuel: plants.Wind, Capacity: 30, EmissionsFactor: 0,
		Cost: plants.CostStat{Fuel: plants.Wind, Mean: 2, StdDev: 0.1, Observations: 1},
	})
	return reg
}

func TestEngine_runs(t *testing.T) {
	e := &Engine{Registry: twoTerritoryRegistry(), RunCount: 5, Seed: 9}
	ctx := context.Background()

	all, err := e.Runs(ctx, "")
	if err != nil {
		t.Fatal(err)
	}
	if len(all) != 5 {
		t.Fatalf("want 5 runs but have %d", len(all))
	}
	if len(all[0].Points) != 4 {
		t.Errorf("whole-registry run: want 4 plants but have %d", len(all[0].Points))
	}

	sub, err := e.Runs(ctx, "T")
	if err != nil {
		t.Fatal(err)
	}
	if len(sub[0].Points) != 3 {
		t.Errorf("territory T run: want 3 plants but have %d", len(sub[0].Points))
	}

	// Querying a selection again must not recompute: the cached value
	// is returned as-is.
	again, err := e.Runs(ctx, "T")
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(sub, again) {
		t.Error("cached selection differs from original")
	}

	// The engine's results match direct dispatch of the filtered
	// registry with the same parameters.
	direct, err := RunDispatch(e.Registry.FilterTerritory("T"), 5, 9)
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(direct, sub) {
		t.Error("engine dispatch differs from direct dispatch")
	}
}

func TestEngine_noData(t *testing.T) {
	e := &Engine{Registry: twoTerritoryRegistry(), RunCount: 2, Seed: 1}
	ctx := context.Background()

	if _, err := e.Runs(ctx, "NOPE"); err != ErrNoData {
		t.Errorf("unknown territory: want ErrNoData but have %v", err)
	}
	if _, err := e.Run(ctx, "T", 0); err != ErrNoData {
		t.Errorf("run 0: want ErrNoData but have %v", err)
	}
	if _, err := e.Run(ctx, "T", 3); err != ErrNoData {
		t.Errorf("run beyond count: want ErrNoData but have %v", err)
	}
	if _, err := e.Run(ctx, "T", 2); err != nil {
		t.Errorf("run 2: want nil error but have %v", err)
	}
}

func TestEngine_efSeries(t *testing.T) {
	e := &Engine{Registry: twoTerritoryRegistry(), RunCount: 4, Seed: 21}
	ctx := context.Background()
	samples := testSamples(100, 200, 300)

	series, err := e.EFSeries(ctx, "T", samples)
	if err != nil {
		t.Fatal(err)
	}
	if len(series) != 4 {
		t.Fatalf("want 4 series but have %d", len(series))
	}

	band, err := e.EFBand(ctx, "T", samples)
	if err != nil {
		t.Fatal(err)
	}
	if len(band) != 3 {
		t.Fatalf("want 3 band points but have %d", len(band))
	}
	for i, b := range band {
		if b.Mean <= 0 {
			t.Errorf("band point %d: non-positive mean %g", i, b.Mean)
		}
	}
}
