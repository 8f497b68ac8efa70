/*
Copyright © 2025 the xdmf authors.
This file is part of xdmf.

xdmf is free software: you can redistribute it and/or modify
it under the terms of the GNU General Public License as published by
the Free Software Foundation, either version 3 of the License, or
(at your option) any later version.

xdmf is distributed in the hope that it will be useful,
but WITHOUT ANY WARRANTY; without even the implied warranty of
MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
GNU General Public License for more details.

You should have received a copy of the GNU General Public License
along with xdmf.  If not, see <http://www.gnu.org/licenses/>.
*/

// Package xdmfutil contains the command-line interface for the xdmf
// library.
package xdmfutil

import (
	"fmt"
	"strings"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/sirupsen/logrus"
	"github.com/spatialmodel/xdmf"
	"github.com/spf13/cast"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// Cfg holds configuration information.
var Cfg *viper.Viper

var options []struct {
	name, usage, shorthand string
	defaultVal             interface{}
	flagsets               []*pflag.FlagSet
}

func init() {
	// Options are the configuration options available to the xdmf command.
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
			name: "LogLevel",
			usage: `
              LogLevel specifies the minimum level of the log messages
              that are printed, e.g. "debug", "info" or "warning".`,
			defaultVal: "info",
			flagsets:   []*pflag.FlagSet{Root.PersistentFlags()},
		},
		{
			name: "MetricsFile",
			usage: `
              MetricsFile specifies the path of a file where statistics about
              the written documents are stored in the Prometheus text format
              after the command finishes. No statistics are stored if it is empty.`,
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{demoCmd.Flags(), convertCmd.Flags()},
		},
		{
			name: "OutputFile",
			usage: `
              OutputFile specifies the path to the XDMF document to write.
              The extension is replaced by ".xdmf2". It can contain
              environment variables.`,
			shorthand:  "o",
			defaultVal: "output.xdmf2",
			flagsets:   []*pflag.FlagSet{demoCmd.Flags(), convertCmd.Flags()},
		},
		{
			name: "DataStorage",
			usage: `
              DataStorage specifies where the point, cell and field values
              are stored. Options are "Ascii" (text files next to the document),
              "AsciiInline" (inside the document), "Hdf5SingleFile" (one HDF5 file)
              and "Hdf5MultipleFiles" (one HDF5 file per time step).`,
			defaultVal: "AsciiInline",
			flagsets:   []*pflag.FlagSet{demoCmd.Flags(), convertCmd.Flags()},
		},
		{
			name: "Demo.Nx",
			usage: `
              Demo.Nx is the number of cells of the demo mesh in the x direction.`,
			defaultVal: 10,
			flagsets:   []*pflag.FlagSet{demoCmd.Flags()},
		},
		{
			name: "Demo.Ny",
			usage: `
              Demo.Ny is the number of cells of the demo mesh in the y direction.`,
			defaultVal: 10,
			flagsets:   []*pflag.FlagSet{demoCmd.Flags()},
		},
		{
			name: "Demo.Steps",
			usage: `
              Demo.Steps is the number of time steps to write.`,
			defaultVal: 5,
			flagsets:   []*pflag.FlagSet{demoCmd.Flags()},
		},
		{
			name: "Demo.TimeStep",
			usage: `
              Demo.TimeStep is the time between two time steps.`,
			defaultVal: 0.1,
			flagsets:   []*pflag.FlagSet{demoCmd.Flags()},
		},
		{
			name: "Convert.InputFile",
			usage: `
              Convert.InputFile is the path to the netCDF file to convert.
              It can contain environment variables.`,
			shorthand:  "i",
			defaultVal: "",
			flagsets:   []*pflag.FlagSet{convertCmd.Flags()},
		},
		{
			name: "Convert.XVar",
			usage: `
              Convert.XVar is the name of the one-dimensional variable holding
              the x coordinates of the grid points.`,
			defaultVal: "x",
			flagsets:   []*pflag.FlagSet{convertCmd.Flags()},
		},
		{
			name: "Convert.YVar",
			usage: `
              Convert.YVar is the name of the one-dimensional variable holding
              the y coordinates of the grid points.`,
			defaultVal: "y",
			flagsets:   []*pflag.FlagSet{convertCmd.Flags()},
		},
		{
			name: "Convert.TimeVar",
			usage: `
              Convert.TimeVar is the name of the one-dimensional variable
              holding the time of each record. Each variable with dimensions
              (time, y, x) is written as point data at each time.`,
			defaultVal: "time",
			flagsets:   []*pflag.FlagSet{convertCmd.Flags()},
		},
	}

	Cfg = viper.New()

	// Set the prefix for configuration environment variables.
	Cfg.SetEnvPrefix("XDMF")
	Cfg.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	Cfg.AutomaticEnv()

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
			case int:
				if option.shorthand == "" {
					set.Int(option.name, option.defaultVal.(int), option.usage)
				} else {
					set.IntP(option.name, option.shorthand, option.defaultVal.(int), option.usage)
				}
			case float64:
				if option.shorthand == "" {
					set.Float64(option.name, option.defaultVal.(float64), option.usage)
				} else {
					set.Float64P(option.name, option.shorthand, option.defaultVal.(float64), option.usage)
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
	Root.AddCommand(demoCmd)
	Root.AddCommand(convertCmd)
}

// setConfig finds and reads in the configuration file, if there is one,
// and sets up logging.
func setConfig() error {
	if cfgpath := Cfg.GetString("config"); cfgpath != "" {
		Cfg.SetConfigFile(cfgpath)
		if err := Cfg.ReadInConfig(); err != nil {
			return fmt.Errorf("xdmf: problem reading configuration file: %v", err)
		}
	}
	level, err := logrus.ParseLevel(cast.ToString(Cfg.Get("LogLevel")))
	if err != nil {
		return fmt.Errorf("xdmf: invalid LogLevel: %v", err)
	}
	logrus.SetLevel(level)
	return nil
}

// Root is the main command.
var Root = &cobra.Command{
	Use:   "xdmf",
	Short: "Write simulation results as XDMF time series.",
	Long: `xdmf writes meshes and time-varying field data as XDMF documents that
can be opened with visualization tools such as ParaView or VisIt.
Use the subcommands specified below to access the functionality.

Refer to the subcommand documentation for configuration options and default settings.
Configuration can be changed by using a configuration file (and providing the
path to the file using the --config flag), by using command-line arguments,
or by setting environment variables in the format 'XDMF_var' where 'var' is the
name of the variable to be set, with dots replaced by underscores.
Refer to https://github.com/spf13/viper for additional configuration information.`,
	DisableAutoGenTag: true,
	PersistentPreRunE: func(*cobra.Command, []string) error { return setConfig() },
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Long:  "version prints the version number of this version of xdmf.",
	Run: func(cmd *cobra.Command, args []string) {
		cmd.Printf("xdmf v%s\n", xdmf.Version)
	},
	DisableAutoGenTag: true,
}

// demoCmd writes a synthetic time series.
var demoCmd = &cobra.Command{
	Use:   "demo",
	Short: "Write a demonstration time series.",
	Long: `demo writes a time series on a structured mesh of quadrilaterals with
a point scalar, a point vector and a cell scalar field for each time step.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := demoConfig(Cfg)
		if err != nil {
			return err
		}
		return withMetrics(Cfg, func(opts ...xdmf.Option) (string, error) {
			return Demo(cfg, opts...)
		}, cmd)
	},
	DisableAutoGenTag: true,
}

// convertCmd converts a netCDF file.
var convertCmd = &cobra.Command{
	Use:   "convert",
	Short: "Convert gridded netCDF data to an XDMF time series.",
	Long: `convert reads a netCDF classic file holding one-dimensional x, y and time
coordinate variables and writes every variable with dimensions (time, y, x)
as point data of an XDMF time series on the grid of the coordinates.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := convertConfig(Cfg)
		if err != nil {
			return err
		}
		return withMetrics(Cfg, func(opts ...xdmf.Option) (string, error) {
			return Convert(cfg, opts...)
		}, cmd)
	},
	DisableAutoGenTag: true,
}

// withMetrics runs f, passing it the options to collect metrics if
// MetricsFile is set, and then stores the metrics.
func withMetrics(cfg *viper.Viper, f func(...xdmf.Option) (string, error), cmd *cobra.Command) error {
	metricsFile := expand(cast.ToString(cfg.Get("MetricsFile")))
	var opts []xdmf.Option
	var reg *prometheus.Registry
	if metricsFile != "" {
		reg = prometheus.NewRegistry()
		opts = append(opts, xdmf.WithMetrics(xdmf.NewMetrics(reg)))
	}
	filename, err := f(opts...)
	if err != nil {
		return err
	}
	cmd.Printf("wrote %s\n", filename)
	if reg != nil {
		if err := prometheus.WriteToTextfile(metricsFile, reg); err != nil {
			return fmt.Errorf("xdmf: writing metrics: %v", err)
		}
	}
	return nil
}
