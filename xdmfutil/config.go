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

package xdmfutil

import (
	"fmt"
	"os"

	"github.com/spatialmodel/xdmf"
	"github.com/spf13/cast"
	"github.com/spf13/viper"
)

// DemoConfig holds the settings of the demo command.
type DemoConfig struct {
	OutputFile string
	Storage    xdmf.DataStorage

	// Nx and Ny are the number of cells in each direction.
	Nx, Ny int

	Steps    int
	TimeStep float64
}

// ConvertConfig holds the settings of the convert command.
type ConvertConfig struct {
	InputFile  string
	OutputFile string
	Storage    xdmf.DataStorage

	// XVar, YVar and TimeVar are the names of the coordinate variables.
	XVar, YVar, TimeVar string
}

func expand(f string) string { return os.ExpandEnv(f) }

// checkOutputFile makes sure an output file is specified and expands
// environment variables in it.
func checkOutputFile(f string) (string, error) {
	if f == "" {
		return "", fmt.Errorf(`xdmf: you need to specify an output file configuration variable (for example: OutputFile="output.xdmf2")`)
	}
	return expand(f), nil
}

func storage(cfg *viper.Viper) (xdmf.DataStorage, error) {
	s, err := xdmf.ParseDataStorage(cast.ToString(cfg.Get("DataStorage")))
	if err != nil {
		return 0, err
	}
	if (s == xdmf.HDF5SingleFile || s == xdmf.HDF5MultipleFiles) && !xdmf.HDF5Enabled() {
		return 0, fmt.Errorf("xdmf: DataStorage %s is not available in this build", s)
	}
	return s, nil
}

func demoConfig(cfg *viper.Viper) (*DemoConfig, error) {
	var err error
	c := new(DemoConfig)
	if c.OutputFile, err = checkOutputFile(cast.ToString(cfg.Get("OutputFile"))); err != nil {
		return nil, err
	}
	if c.Storage, err = storage(cfg); err != nil {
		return nil, err
	}
	if c.Nx, err = cast.ToIntE(cfg.Get("Demo.Nx")); err != nil {
		return nil, fmt.Errorf("xdmf: invalid Demo.Nx: %v", err)
	}
	if c.Ny, err = cast.ToIntE(cfg.Get("Demo.Ny")); err != nil {
		return nil, fmt.Errorf("xdmf: invalid Demo.Ny: %v", err)
	}
	if c.Steps, err = cast.ToIntE(cfg.Get("Demo.Steps")); err != nil {
		return nil, fmt.Errorf("xdmf: invalid Demo.Steps: %v", err)
	}
	if c.TimeStep, err = cast.ToFloat64E(cfg.Get("Demo.TimeStep")); err != nil {
		return nil, fmt.Errorf("xdmf: invalid Demo.TimeStep: %v", err)
	}
	if c.Nx < 1 || c.Ny < 1 {
		return nil, fmt.Errorf("xdmf: Demo.Nx and Demo.Ny must be at least 1 but are %d and %d", c.Nx, c.Ny)
	}
	if c.Steps < 0 {
		return nil, fmt.Errorf("xdmf: Demo.Steps must not be negative but is %d", c.Steps)
	}
	if c.Steps > 1 && c.TimeStep <= 0 {
		return nil, fmt.Errorf("xdmf: Demo.TimeStep must be positive but is %g", c.TimeStep)
	}
	return c, nil
}

func convertConfig(cfg *viper.Viper) (*ConvertConfig, error) {
	var err error
	c := &ConvertConfig{
		InputFile: expand(cast.ToString(cfg.Get("Convert.InputFile"))),
		XVar:      cast.ToString(cfg.Get("Convert.XVar")),
		YVar:      cast.ToString(cfg.Get("Convert.YVar")),
		TimeVar:   cast.ToString(cfg.Get("Convert.TimeVar")),
	}
	if c.InputFile == "" {
		return nil, fmt.Errorf(`xdmf: you need to specify an input file configuration variable (for example: Convert.InputFile="input.ncf")`)
	}
	if c.OutputFile, err = checkOutputFile(cast.ToString(cfg.Get("OutputFile"))); err != nil {
		return nil, err
	}
	if c.Storage, err = storage(cfg); err != nil {
		return nil, err
	}
	return c, nil
}
