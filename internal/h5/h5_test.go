//go:build !xdmf_nohdf5

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

package h5

import (
	"fmt"
	"os"
	"path/filepath"
	"reflect"
	"testing"
)

func TestFile(t *testing.T) {
	name := filepath.Join(t.TempDir(), "test.h5")
	f, err := Create(name)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := os.Stat(name); err != nil {
		t.Fatalf("file was not created: %v", err)
	}
	if f.Filename() != name {
		t.Errorf("filename: %s != %s", f.Filename(), name)
	}

	if err := f.CreateGroup("mesh"); err != nil {
		t.Fatal(err)
	}
	points := []float64{0, 0, 0, 1, 0, 0}
	if err := f.CreateDataset("mesh/points", []uint64{2, 3}, points); err != nil {
		t.Fatal(err)
	}
	if err := f.CreateDataset("/mesh/cells", []uint64{4}, []uint64{2, 2, 0, 1}); err != nil {
		t.Fatal(err)
	}
	if err := f.CreateGroup("/data/t_0.5/point_data"); err != nil {
		t.Fatal(err)
	}
	if err := f.CreateGroup("data"); err != nil {
		t.Errorf("creating an existing group: %v", err)
	}

	wantGroups := []string{"mesh", "data", "data/t_0.5", "data/t_0.5/point_data"}
	if !reflect.DeepEqual(f.Groups(), wantGroups) {
		t.Errorf("groups: %v != %v", f.Groups(), wantGroups)
	}
	wantDatasets := []string{"mesh/points", "mesh/cells"}
	if !reflect.DeepEqual(f.Datasets(), wantDatasets) {
		t.Errorf("datasets: %v != %v", f.Datasets(), wantDatasets)
	}
	d, ok := f.Dataset("mesh/points")
	if !ok {
		t.Fatal("missing dataset")
	}
	if !reflect.DeepEqual(d.Dims, []uint64{2, 3}) {
		t.Errorf("dataset: %#v", d)
	}

	if err := f.Flush(); err != nil {
		t.Fatal(err)
	}
	have, err := Read(name, "mesh/points")
	if err != nil {
		t.Fatal(err)
	}
	if !reflect.DeepEqual(have, points) {
		t.Errorf("points: %v != %v", have, points)
	}
	have, err = f.Read("mesh/cells")
	if err != nil {
		t.Fatal(err)
	}
	if want := []float64{2, 2, 0, 1}; !reflect.DeepEqual(have, want) {
		t.Errorf("cells: %v != %v", have, want)
	}
	if _, err := f.Read("mesh/missing"); err == nil {
		t.Error("expected an error for a missing dataset")
	}
	if err := f.Close(); err != nil {
		t.Fatal(err)
	}
	if err := f.CreateGroup("other"); err == nil {
		t.Error("expected an error after Close")
	}
}

func TestFileErrors(t *testing.T) {
	f, err := Create(filepath.Join(t.TempDir(), "errors.h5"))
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	if err := f.CreateGroup("g"); err != nil {
		t.Fatal(err)
	}
	tests := []struct {
		name string
		path string
		dims []uint64
		data interface{}
	}{
		{name: "missing group", path: "missing/x", dims: []uint64{1}, data: []float64{1}},
		{name: "shape mismatch", path: "g/x", dims: []uint64{2, 2}, data: []float64{1, 2, 3}},
		{name: "no dims", path: "g/x", data: []float64{}},
		{name: "unsupported type", path: "g/x", dims: []uint64{1}, data: []string{"a"}},
		{name: "group name", path: "g", dims: []uint64{1}, data: []float64{1}},
		{name: "empty name", path: "/", dims: []uint64{1}, data: []float64{1}},
	}
	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			if err := f.CreateDataset(test.path, test.dims, test.data); err == nil {
				t.Error("expected an error")
			}
		})
	}
	if err := f.CreateDataset("g/x", []uint64{1}, []int32{1}); err != nil {
		t.Fatal(err)
	}
	if err := f.CreateDataset("g/x", []uint64{1}, []int32{1}); err == nil {
		t.Error("expected an error for a duplicate dataset")
	}
	if err := f.CreateGroup("g/x"); err == nil {
		t.Error("expected an error for a group with a dataset's name")
	}
}

func TestFileCopiesData(t *testing.T) {
	name := filepath.Join(t.TempDir(), "copy.h5")
	f, err := Create(name)
	if err != nil {
		t.Fatal(err)
	}
	defer f.Close()
	buf := []float32{1, 2, 3}
	if err := f.CreateDataset("a", []uint64{3}, buf); err != nil {
		t.Fatal(err)
	}
	for i := range buf {
		buf[i] = 9
	}
	if err := f.CreateDataset("b", []uint64{3}, buf); err != nil {
		t.Fatal(err)
	}
	for p, want := range map[string][]float64{
		"a": {1, 2, 3},
		"b": {9, 9, 9},
	} {
		have, err := f.Read(p)
		if err != nil {
			t.Fatal(err)
		}
		if !reflect.DeepEqual(have, want) {
			t.Errorf("%s: %v != %v", p, have, want)
		}
	}
}

func TestFileAppend(t *testing.T) {
	name := filepath.Join(t.TempDir(), "append.h5")
	f, err := Create(name)
	if err != nil {
		t.Fatal(err)
	}
	want := make(map[string][]float64)
	for step := 0; step < 3; step++ {
		group := fmt.Sprintf("data/t_%d/point_data", step)
		if err := f.CreateGroup(group); err != nil {
			t.Fatal(err)
		}
		values := []float64{float64(step), float64(step) + 0.5}
		p := group + "/p"
		if err := f.CreateDataset(p, []uint64{2}, values); err != nil {
			t.Fatal(err)
		}
		want[p] = values
		if err := f.Flush(); err != nil {
			t.Fatal(err)
		}
	}
	if err := f.Close(); err != nil {
		t.Fatal(err)
	}
	for p, values := range want {
		have, err := Read(name, p)
		if err != nil {
			t.Fatal(err)
		}
		if !reflect.DeepEqual(have, values) {
			t.Errorf("%s: %v != %v", p, have, values)
		}
	}
}
