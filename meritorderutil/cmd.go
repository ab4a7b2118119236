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

// Package meritorderutil wires the dispatch model to its command-line
// interface and configuration handling.
package meritorderutil

import (
	"context"
	"fmt"

	"github.com/lnashier/viper"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/gridmodel/meritorder"
)

// Cfg holds configuration information.
var Cfg *viper.Viper

var options []struct {
	name, usage, shorthand string
	defaultVal             interface{}
	flagsets               []*pflag.FlagSet
}

func init() {
	// Options are the configuration options available to MeritOrder.
	options = []struct {
		name, usage, shorthand string
		defaultVal             interface{}
		flagsets               []*pflag.FlagSet
	}{
		{
			name: "config",
			usage: `
              config specifies the configuration file location.`,
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{Root.PersistentFlags()},
		},
		{
			name: "PlantFile",
			usage: `
              PlantFile is the location of the raw plant inventory table
              (CSV). It may be a local path or an http(s) URL.`,
			defaultVal: "plants.csv",
			flagsets:   []*pflag.FlagSet{runCmd.Flags(), serveCmd.Flags()},
		},
		{
			name: "CostFile",
			usage: `
              CostFile is the location of the raw marginal-cost table
              (CSV). It may be a local path or an http(s) URL.`,
			defaultVal: "costs.csv",
			flagsets:   []*pflag.FlagSet{runCmd.Flags(), serveCmd.Flags()},
		},
		{
			name: "LoadFile",
			usage: `
              LoadFile is the location of the load profile time series
              (CSV). It may be a local path or an http(s) URL.`,
			defaultVal: "load.csv",
			flagsets:   []*pflag.FlagSet{runCmd.Flags(), serveCmd.Flags()},
		},
		{
			name: "FuelMapFile",
			usage: `
              FuelMapFile is the location of an optional TOML file of
              fuel-code classification overrides.`,
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{runCmd.Flags(), serveCmd.Flags()},
		},
		{
			name: "Runs",
			usage: `
              Runs specifies the number of Monte-Carlo dispatch runs.`,
			shorthand:  "n",
			defaultVal: 100,
			flagsets:   []*pflag.FlagSet{runCmd.Flags(), serveCmd.Flags()},
		},
		{
			name: "Seed",
			usage: `
              Seed seeds the dispatch random streams. Repeating a
              simulation with the same seed and inputs reproduces it
              exactly.`,
			defaultVal: 1,
			flagsets:   []*pflag.FlagSet{runCmd.Flags(), serveCmd.Flags()},
		},
		{
			name: "Workers",
			usage: `
              Workers bounds how many dispatch runs execute
              concurrently. Zero or one executes the runs serially.`,
			defaultVal: 1,
			flagsets:   []*pflag.FlagSet{runCmd.Flags(), serveCmd.Flags()},
		},
		{
			name: "Territory",
			usage: `
              Territory restricts the dispatch to plants in one grid
              territory. An empty value dispatches the whole registry.`,
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{runCmd.Flags()},
		},
		{
			name: "Strict",
			usage: `
              Strict causes loads outside a dispatch curve's observed
              capacity domain to fail instead of being extrapolated.`,
			defaultVal: false,
			flagsets:   []*pflag.FlagSet{runCmd.Flags(), serveCmd.Flags()},
		},
		{
			name: "DisplayUnit",
			usage: `
              DisplayUnit selects the emissions-factor output unit:
              "kg_mwh" or "g_kwh". The two are numerically identical.`,
			defaultVal: "kg_mwh",
			flagsets:   []*pflag.FlagSet{runCmd.Flags()},
		},
		{
			name: "OutputFile",
			usage: `
              OutputFile is the location of the dispatch-run table
              output (CSV).`,
			defaultVal: "dispatch.csv",
			flagsets:   []*pflag.FlagSet{runCmd.Flags()},
		},
		{
			name: "SnapshotFile",
			usage: `
              SnapshotFile is the location of an optional columnar
              (parquet) snapshot of the dispatch-run table.`,
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{runCmd.Flags()},
		},
		{
			name: "EFSeriesFile",
			usage: `
              EFSeriesFile is the location of an optional CSV output
              holding the per-timestamp emissions-factor band.`,
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{runCmd.Flags()},
		},
		{
			name: "addr",
			usage: `
              addr specifies the address the query server listens on.`,
			defaultVal: "localhost:8080",
			flagsets:   []*pflag.FlagSet{serveCmd.Flags()},
		},
	}

	Cfg = viper.New()

	// Set the prefix for configuration environment variables.
	Cfg.SetEnvPrefix("MERITORDER")

	for _, option := range options {
		for i, set := range option.flagsets {
			if i != 0 { // We don't want to create the same flag twice.
				set.AddFlag(option.flagsets[0].Lookup(option.name))
				continue
			}
			switch option.defaultVal.(type) {
			case string:
				if option.shorthand == "" {
					set.String(option.name, option.defaultVal.(string), option.usage)
				} else {
					set.StringP(option.name, option.shorthand, option.defaultVal.(string), option.usage)
				}
			case bool:
				if option.shorthand == "" {
					set.Bool(option.name, option.defaultVal.(bool), option.usage)
				} else {
					set.BoolP(option.name, option.shorthand, option.defaultVal.(bool), option.usage)
				}
			case int:
				if option.shorthand == "" {
					set.Int(option.name, option.defaultVal.(int), option.usage)
				} else {
					set.IntP(option.name, option.shorthand, option.defaultVal.(int), option.usage)
				}
			default:
				panic("invalid argument type")
			}
			Cfg.BindPFlag(option.name, set.Lookup(option.name))
		}
	}
}

func init() {
	// Link the commands together.
	Root.AddCommand(versionCmd)
	Root.AddCommand(runCmd)
	Root.AddCommand(serveCmd)
}

// setConfig finds and reads in the configuration file, if there is one.
func setConfig() error {
	if cfgpath := Cfg.GetString("config"); cfgpath != "" {
		Cfg.SetConfigFile(cfgpath)
		if err := Cfg.ReadInConfig(); err != nil {
			return fmt.Errorf("meritorder: problem reading configuration file: %v", err)
		}
	}
	Cfg.AutomaticEnv()
	return nil
}

// Root is the main command.
var Root = &cobra.Command{
	Use:   "meritorder",
	Short: "A Monte-Carlo merit-order grid dispatch model.",
	Long: `MeritOrder estimates marginal grid emissions factors by repeatedly
dispatching a power plant registry in randomized merit order and
mapping observed loads onto the resulting curves.

Refer to the subcommand documentation for configuration options and
default settings. Configuration can be changed by using a configuration
file (and providing the path to the file using the --config flag), by
using command-line arguments, or by setting environment variables in
the format 'MERITORDER_var' where 'var' is the name of the variable to
be set.`,
	DisableAutoGenTag: true,
	PersistentPreRunE: func(*cobra.Command, []string) error { return setConfig() },
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Long:  "version prints the version number of this version of MeritOrder.",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Printf("MeritOrder v%s\n", meritorder.Version)
	},
}

var runCmd = &cobra.Command{
	Use:   "run",
	Short: "Run the dispatch model and write its outputs.",
	Long: `run builds the plant registry, performs the configured number of
merit-order dispatch runs, estimates the marginal emissions-factor
series for the load profile, and writes the output tables.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return Run(context.Background(), Cfg)
	},
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Serve dispatch model queries over HTTP.",
	Long: `serve builds the plant registry and answers presentation-layer
queries (territory and run selections, emissions-factor series) over
an HTTP JSON API, caching dispatch results per selection.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		return Serve(context.Background(), Cfg)
	},
}
