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
	"os"

	"github.com/lnashier/viper"
	"github.com/sirupsen/logrus"

	"github.com/gridmodel/meritorder"
)

// Run executes the dispatch model specified by cfg and writes its
// output tables.
func Run(ctx context.Context, cfg *viper.Viper) error {
	log := logrus.StandardLogger()

	outFile := expandEnv(cfg.GetString("OutputFile"))
	if err := checkOutputFile(outFile); err != nil {
		return err
	}

	engine, err := engineFromCfg(ctx, cfg)
	if err != nil {
		return err
	}
	territory := cfg.GetString("Territory")
	log.WithFields(logrus.Fields{
		"plants":    len(engine.Registry.Plants),
		"runs":      engine.RunCount,
		"seed":      engine.Seed,
		"territory": territory,
	}).Info("dispatching plant registry")

	runs, err := engine.Runs(ctx, territory)
	if err != nil {
		return err
	}

	f, err := os.Create(outFile)
	if err != nil {
		return err
	}
	if err := WriteRunsCSV(f, runs); err != nil {
		f.Close()
		return err
	}
	if err := f.Close(); err != nil {
		return err
	}
	log.WithField("file", outFile).Info("wrote dispatch table")

	if snap := expandEnv(cfg.GetString("SnapshotFile")); snap != "" {
		if err := checkOutputFile(snap); err != nil {
			return err
		}
		if err := WriteRunsParquet(snap, runs); err != nil {
			return err
		}
		log.WithField("file", snap).Info("wrote dispatch snapshot")
	}

	if efFile := expandEnv(cfg.GetString("EFSeriesFile")); efFile != "" {
		if err := checkOutputFile(efFile); err != nil {
			return err
		}
		samples, err := loadsFromCfg(ctx, cfg)
		if err != nil {
			return err
		}
		series, err := engine.EFSeries(ctx, territory, samples)
		if err != nil {
			return err
		}
		band, err := meritorder.Band(series)
		if err != nil {
			return err
		}
		u := meritorder.ParseDisplayUnit(cfg.GetString("DisplayUnit"))
		f, err := os.Create(efFile)
		if err != nil {
			return err
		}
		if err := WriteEFSeriesCSV(f, samples, series, band, u); err != nil {
			f.Close()
			return err
		}
		if err := f.Close(); err != nil {
			return err
		}
		log.WithField("file", efFile).Info("wrote emissions-factor series")
	}
	return nil
}

// Serve builds the dispatch model specified by cfg and serves queries
// against it over HTTP until the server fails.
func Serve(ctx context.Context, cfg *viper.Viper) error {
	log := logrus.StandardLogger()

	engine, err := engineFromCfg(ctx, cfg)
	if err != nil {
		return err
	}
	samples, err := loadsFromCfg(ctx, cfg)
	if err != nil {
		return err
	}
	s := meritorder.NewServer(engine, samples, log)
	return s.ListenAndServe(cfg.GetString("addr"))
}
