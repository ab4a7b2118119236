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
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/lnashier/viper"
	"github.com/spf13/cast"

	"github.com/gridmodel/meritorder"
	"github.com/gridmodel/meritorder/loads"
	"github.com/gridmodel/meritorder/plants"
)

// expandEnv expands environment variables of the format ${var} in s.
func expandEnv(s string) string {
	return os.ExpandEnv(s)
}

// checkOutputFile makes sure that the directory that the output file
// will be written to exists.
func checkOutputFile(path string) error {
	if path == "" {
		return fmt.Errorf("meritorder: output file is not specified")
	}
	d := filepath.Dir(path)
	if _, err := os.Stat(d); err != nil {
		return fmt.Errorf("meritorder: the output directory %s doesn't exist", d)
	}
	return nil
}

// classifierFromCfg returns the fuel classifier specified by the
// configuration, applying any overrides in FuelMapFile.
func classifierFromCfg(cfg *viper.Viper) (plants.Classifier, error) {
	path := expandEnv(cfg.GetString("FuelMapFile"))
	if path == "" {
		return plants.DefaultClassifier(), nil
	}
	return plants.LoadClassifier(path)
}

// registryFromCfg retrieves the plant and cost tables specified by the
// configuration and builds the plant registry from them.
func registryFromCfg(ctx context.Context, cfg *viper.Viper) (*plants.Registry, error) {
	c, err := classifierFromCfg(cfg)
	if err != nil {
		return nil, err
	}

	pf, err := openInput(ctx, expandEnv(cfg.GetString("PlantFile")))
	if err != nil {
		return nil, fmt.Errorf("meritorder: retrieving plant table: %v", err)
	}
	defer pf.Close()
	raw, err := plants.ReadPlantCSV(pf)
	if err != nil {
		return nil, err
	}

	cf, err := openInput(ctx, expandEnv(cfg.GetString("CostFile")))
	if err != nil {
		return nil, fmt.Errorf("meritorder: retrieving cost table: %v", err)
	}
	defer cf.Close()
	costs, err := plants.ReadCostCSV(cf)
	if err != nil {
		return nil, err
	}

	return c.Build(raw, costs)
}

// loadsFromCfg retrieves the load profile specified by the
// configuration.
func loadsFromCfg(ctx context.Context, cfg *viper.Viper) ([]loads.Sample, error) {
	lf, err := openInput(ctx, expandEnv(cfg.GetString("LoadFile")))
	if err != nil {
		return nil, fmt.Errorf("meritorder: retrieving load profile: %v", err)
	}
	defer lf.Close()
	return loads.ReadCSV(lf)
}

// engineFromCfg builds the dispatch query engine specified by the
// configuration.
func engineFromCfg(ctx context.Context, cfg *viper.Viper) (*meritorder.Engine, error) {
	reg, err := registryFromCfg(ctx, cfg)
	if err != nil {
		return nil, err
	}
	return &meritorder.Engine{
		Registry: reg,
		RunCount: cast.ToInt(cfg.Get("Runs")),
		Seed:     cast.ToUint64(cfg.Get("Seed")),
		Workers:  cast.ToInt(cfg.Get("Workers")),
		Strict:   cast.ToBool(cfg.Get("Strict")),
	}, nil
}
