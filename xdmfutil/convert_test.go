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
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/ctessum/cdf"
	"github.com/spatialmodel/xdmf"
)

// writeTestNCF writes a netCDF file with two time steps on a 3 by 2 grid.
func writeTestNCF(t *testing.T, filename string) {
	t.Helper()
	h := cdf.NewHeader([]string{"time", "y", "x"}, []int{2, 2, 3})
	h.AddVariable("time", []string{"time"}, []float64{0})
	h.AddAttribute("time", "units", "seconds")
	h.AddVariable("y", []string{"y"}, []float64{0})
	h.AddVariable("x", []string{"x"}, []float32{0})
	h.AddVariable("conc", []string{"time", "y", "x"}, []float32{0})
	h.AddAttribute("conc", "units", "ug m-3")
	h.AddVariable("count", []string{"time", "y", "x"}, []int32{0})
	h.AddVariable("elevation", []string{"y", "x"}, []float32{0})
	h.Define()

	ff, err := os.Create(filename)
	if err != nil {
		t.Fatal(err)
	}
	f, err := cdf.Create(ff, h)
	if err != nil {
		t.Fatal(err)
	}
	for _, v := range []struct {
		name string
		data interface{}
	}{
		{"time", []float64{0, 3600}},
		{"y", []float64{10, 20}},
		{"x", []float32{0, 0.5, 1}},
		{"conc", []float32{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11}},
		{"count", []int32{0, 1, 2, 3, 4, 5, 6, 7, 8, 9, 10, 11}},
		{"elevation", []float32{1, 1, 1, 1, 1, 1}},
	} {
		if _, err := f.Writer(v.name, nil, nil).Write(v.data); err != nil {
			t.Fatal(err)
		}
	}
	if err := ff.Close(); err != nil {
		t.Fatal(err)
	}
}

func TestConvert(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "input.ncf")
	writeTestNCF(t, input)

	filename, err := Convert(&ConvertConfig{
		InputFile:  input,
		OutputFile: filepath.Join(dir, "output.xdmf"),
		Storage:    xdmf.AsciiInline,
		XVar:       "x",
		YVar:       "y",
		TimeVar:    "time",
	})
	if err != nil {
		t.Fatal(err)
	}
	if want := filepath.Join(dir, "output.xdmf2"); filename != want {
		t.Errorf("%s != %s", filename, want)
	}
	b, err := os.ReadFile(filename)
	if err != nil {
		t.Fatal(err)
	}
	doc := string(b)
	for _, want := range []string{
		`<Time Value="0"/>`,
		`<Time Value="3600"/>`,
		`<DataItem Name="coords" Dimensions="6 3" NumberType="Float" Format="XML" Precision="8">0.0000000000000000e0 1.0000000000000000e1 0.0000000000000000e0 5.0000000000000000e-1 1.0000000000000000e1 0.0000000000000000e0`,
		`<DataItem Name="connectivity" Dimensions="10" NumberType="UInt" Format="XML" Precision="8">5 0 1 4 3 5 1 2 5 4</DataItem>`,
		`<Attribute Name="conc" AttributeType="Scalar" Center="Node">`,
		`<DataItem Dimensions="6" NumberType="Float" Format="XML" Precision="4">0.0000000e0 1.0000000e0 2.0000000e0 3.0000000e0 4.0000000e0 5.0000000e0</DataItem>`,
		`<DataItem Dimensions="6" NumberType="Float" Format="XML" Precision="4">6.0000000e0 7.0000000e0 8.0000000e0 9.0000000e0 1.0000000e1 1.1000000e1</DataItem>`,
		`<Attribute Name="count" AttributeType="Scalar" Center="Node">`,
		`<DataItem Dimensions="6" NumberType="Int" Format="XML" Precision="8">6 7 8 9 10 11</DataItem>`,
	} {
		if !strings.Contains(doc, want) {
			t.Errorf("document does not contain %s:\n%s", want, doc)
		}
	}
	if strings.Contains(doc, "elevation") {
		t.Errorf("variable without time dimension was converted")
	}
}

func TestConvertErrors(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "input.ncf")
	writeTestNCF(t, input)

	for _, test := range []struct {
		name string
		cfg  ConvertConfig
		err  string
	}{
		{
			name: "missing file",
			cfg:  ConvertConfig{InputFile: filepath.Join(dir, "missing.ncf"), XVar: "x", YVar: "y", TimeVar: "time"},
			err:  "opening netCDF file",
		},
		{
			name: "missing variable",
			cfg:  ConvertConfig{InputFile: input, XVar: "lon", YVar: "y", TimeVar: "time"},
			err:  `variable "lon" is not in the netCDF file`,
		},
		{
			name: "not one-dimensional",
			cfg:  ConvertConfig{InputFile: input, XVar: "elevation", YVar: "y", TimeVar: "time"},
			err:  `coordinate variable "elevation" must have 1 dimension but has 2`,
		},
		{
			name: "no variables",
			cfg:  ConvertConfig{InputFile: input, XVar: "y", YVar: "x", TimeVar: "time"},
			err:  "no variables with dimensions [time x y]",
		},
	} {
		t.Run(test.name, func(t *testing.T) {
			test.cfg.OutputFile = filepath.Join(dir, test.name+".xdmf2")
			test.cfg.Storage = xdmf.AsciiInline
			_, err := Convert(&test.cfg)
			if err == nil || !strings.Contains(err.Error(), test.err) {
				t.Errorf("error %v should contain %q", err, test.err)
			}
		})
	}
}

func TestConvertCommand(t *testing.T) {
	dir := t.TempDir()
	input := filepath.Join(dir, "input.ncf")
	writeTestNCF(t, input)
	Cfg.Set("Convert.InputFile", input)
	Cfg.Set("OutputFile", filepath.Join(dir, "converted.xdmf2"))
	Cfg.Set("DataStorage", "Ascii")
	Cfg.Set("Convert.XVar", "x")
	Cfg.Set("Convert.YVar", "y")
	Cfg.Set("Convert.TimeVar", "time")

	Root.SetArgs([]string{"convert"})
	if err := Root.Execute(); err != nil {
		t.Fatal(err)
	}
	for _, f := range []string{
		"converted.xdmf2",
		"converted.txt/points.txt",
		"converted.txt/cells.txt",
		"converted.txt/data_t_0_point_data_conc.txt",
		"converted.txt/data_t_3600_point_data_count.txt",
	} {
		if _, err := os.Stat(filepath.Join(dir, f)); err != nil {
			t.Error(err)
		}
	}
}
