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
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/BurntSushi/toml"
	"github.com/sirupsen/logrus"
	"github.com/spatialmodel/xdmf"
	"github.com/spf13/viper"
)

func TestVersion(t *testing.T) {
	var buf bytes.Buffer
	Root.SetOut(&buf)
	defer Root.SetOut(nil)
	Root.SetArgs([]string{"version"})
	if err := Root.Execute(); err != nil {
		t.Fatal(err)
	}
	want := "xdmf v" + xdmf.Version + "\n"
	if buf.String() != want {
		t.Errorf("%q != %q", buf.String(), want)
	}
}

// writeConfig writes a TOML configuration file with the given settings.
func writeConfig(t *testing.T, settings map[string]interface{}) string {
	t.Helper()
	filename := filepath.Join(t.TempDir(), "config.toml")
	f, err := os.Create(filename)
	if err != nil {
		t.Fatal(err)
	}
	if err := toml.NewEncoder(f).Encode(settings); err != nil {
		t.Fatal(err)
	}
	if err := f.Close(); err != nil {
		t.Fatal(err)
	}
	return filename
}

func TestConfigFile(t *testing.T) {
	filename := writeConfig(t, map[string]interface{}{
		"OutputFile":  "${XDMF_TEST_DIR}/out.xdmf",
		"DataStorage": "ascii",
		"Demo": map[string]interface{}{
			"Nx":       4,
			"Ny":       3,
			"Steps":    2,
			"TimeStep": 0.25,
		},
	})
	os.Setenv("XDMF_TEST_DIR", "testdir")
	defer os.Unsetenv("XDMF_TEST_DIR")

	cfg := viper.New()
	cfg.SetConfigFile(filename)
	if err := cfg.ReadInConfig(); err != nil {
		t.Fatal(err)
	}
	c, err := demoConfig(cfg)
	if err != nil {
		t.Fatal(err)
	}
	want := DemoConfig{
		OutputFile: "testdir/out.xdmf",
		Storage:    xdmf.Ascii,
		Nx:         4,
		Ny:         3,
		Steps:      2,
		TimeStep:   0.25,
	}
	if *c != want {
		t.Errorf("%+v != %+v", *c, want)
	}
}

func TestConfigErrors(t *testing.T) {
	for _, test := range []struct {
		name     string
		settings map[string]interface{}
		err      string
	}{
		{
			name:     "no output",
			settings: map[string]interface{}{"DataStorage": "Ascii", "Demo.Nx": 1, "Demo.Ny": 1},
			err:      "you need to specify an output file",
		},
		{
			name:     "storage",
			settings: map[string]interface{}{"OutputFile": "a.xdmf2", "DataStorage": "Binary", "Demo.Nx": 1, "Demo.Ny": 1},
			err:      "Invalid DataStorage variant: 'Binary'",
		},
		{
			name:     "size",
			settings: map[string]interface{}{"OutputFile": "a.xdmf2", "DataStorage": "Ascii", "Demo.Nx": 0, "Demo.Ny": 1},
			err:      "Demo.Nx and Demo.Ny must be at least 1 but are 0 and 1",
		},
		{
			name:     "steps",
			settings: map[string]interface{}{"OutputFile": "a.xdmf2", "DataStorage": "Ascii", "Demo.Nx": 1, "Demo.Ny": 1, "Demo.Steps": -1},
			err:      "Demo.Steps must not be negative",
		},
		{
			name:     "not a number",
			settings: map[string]interface{}{"OutputFile": "a.xdmf2", "DataStorage": "Ascii", "Demo.Nx": "many", "Demo.Ny": 1},
			err:      "invalid Demo.Nx",
		},
	} {
		t.Run(test.name, func(t *testing.T) {
			cfg := viper.New()
			for k, v := range test.settings {
				cfg.Set(k, v)
			}
			_, err := demoConfig(cfg)
			if err == nil || !strings.Contains(err.Error(), test.err) {
				t.Errorf("error %v should contain %q", err, test.err)
			}
		})
	}
}

func TestLogLevel(t *testing.T) {
	filename := writeConfig(t, map[string]interface{}{"LogLevel": "debug"})
	Cfg.Set("config", filename)
	defer func() {
		Cfg.Set("config", "")
		Cfg.Set("LogLevel", "info")
		logrus.SetLevel(logrus.InfoLevel)
	}()
	Root.SetArgs([]string{"version"})
	if err := Root.Execute(); err != nil {
		t.Fatal(err)
	}
	if logrus.GetLevel() != logrus.DebugLevel {
		t.Errorf("log level %s != debug", logrus.GetLevel())
	}
}

func TestDemoCommand(t *testing.T) {
	dir := t.TempDir()
	Cfg.Set("OutputFile", filepath.Join(dir, "demo.xdmf"))
	Cfg.Set("MetricsFile", filepath.Join(dir, "metrics.prom"))
	Cfg.Set("DataStorage", "AsciiInline")
	Cfg.Set("Demo.Nx", 2)
	Cfg.Set("Demo.Ny", 1)
	Cfg.Set("Demo.Steps", 2)
	Cfg.Set("Demo.TimeStep", 0.5)
	defer Cfg.Set("MetricsFile", "")

	Root.SetArgs([]string{"demo"})
	if err := Root.Execute(); err != nil {
		t.Fatal(err)
	}
	b, err := os.ReadFile(filepath.Join(dir, "demo.xdmf2"))
	if err != nil {
		t.Fatal(err)
	}
	doc := string(b)
	for _, want := range []string{
		`<Grid Name="time_series" GridType="Collection" CollectionType="Temporal">`,
		`<Time Value="0"/>`,
		`<Time Value="0.5"/>`,
		`<Topology TopologyType="Mixed" NumberOfElements="2">`,
		`<DataItem Name="coords" Dimensions="6 3" NumberType="Float" Format="XML" Precision="8">`,
		`<DataItem Name="connectivity" Dimensions="10" NumberType="UInt" Format="XML" Precision="8">5 0 1 4 3 5 1 2 5 4</DataItem>`,
		`<Attribute Name="height" AttributeType="Scalar" Center="Node">`,
		`<Attribute Name="velocity" AttributeType="Vector" Center="Node">`,
		`<DataItem Dimensions="6 3" NumberType="Float" Format="XML" Precision="4">`,
		`<Attribute Name="mean_height" AttributeType="Scalar" Center="Cell">`,
	} {
		if !strings.Contains(doc, want) {
			t.Errorf("document does not contain %s:\n%s", want, doc)
		}
	}

	m, err := os.ReadFile(filepath.Join(dir, "metrics.prom"))
	if err != nil {
		t.Fatal(err)
	}
	for _, want := range []string{
		"xdmf_meshes_written_total 1",
		"xdmf_time_steps_written_total 2",
		"xdmf_document_commits_total 3",
	} {
		if !strings.Contains(string(m), want) {
			t.Errorf("metrics do not contain %s:\n%s", want, m)
		}
	}
}

func TestQuadMesh(t *testing.T) {
	points, connectivity, types := quadMesh([]float64{0, 1, 2}, []float64{0, 1})
	wantPoints := []float64{0, 0, 0, 1, 0, 0, 2, 0, 0, 0, 1, 0, 1, 1, 0, 2, 1, 0}
	wantConnectivity := []uint64{0, 1, 4, 3, 1, 2, 5, 4}
	if !floatsEqual(points, wantPoints) {
		t.Errorf("points: %v != %v", points, wantPoints)
	}
	if len(connectivity) != len(wantConnectivity) {
		t.Fatalf("connectivity: %v != %v", connectivity, wantConnectivity)
	}
	for i := range connectivity {
		if connectivity[i] != wantConnectivity[i] {
			t.Fatalf("connectivity: %v != %v", connectivity, wantConnectivity)
		}
	}
	if len(types) != 2 || types[0] != xdmf.Quadrilateral || types[1] != xdmf.Quadrilateral {
		t.Errorf("types: %v", types)
	}
}

func floatsEqual(a, b []float64) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
