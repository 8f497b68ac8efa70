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

	"github.com/scigolib/hdf5"
)

// Available reports whether HDF5 support is compiled in.
const Available = true

// fileWriter writes to an HDF5 file. Datasets are complete on disk once
// the file is closed.
type fileWriter struct {
	fw *hdf5.FileWriter
}

func create(filename string) (writer, error) {
	fw, err := hdf5.CreateForWrite(filename, hdf5.CreateTruncate)
	if err != nil {
		return nil, err
	}
	return &fileWriter{fw: fw}, nil
}

// open opens an existing file to add groups and datasets to it.
func open(filename string) (writer, error) {
	fw, err := hdf5.OpenForWrite(filename, hdf5.OpenReadWrite)
	if err != nil {
		return nil, err
	}
	return &fileWriter{fw: fw}, nil
}

func (w *fileWriter) createGroup(p string) error {
	_, err := w.fw.CreateGroup("/" + p)
	return err
}

func (w *fileWriter) createDataset(p string, dims []uint64, data interface{}) error {
	dtype := hdf5.Float64
	switch data.(type) {
	case []float64:
	case []float32:
		dtype = hdf5.Float32
	case []uint64:
		dtype = hdf5.Uint64
	case []int64:
		dtype = hdf5.Int64
	case []int32:
		dtype = hdf5.Int32
	default:
		return fmt.Errorf("unsupported data type %T", data)
	}
	ds, err := w.fw.CreateDataset("/"+p, dtype, dims)
	if err != nil {
		return err
	}
	return ds.Write(data)
}

func (w *fileWriter) close() error { return w.fw.Close() }

// read returns the values of the dataset at the absolute path p.
func read(filename, p string) ([]float64, error) {
	f, err := hdf5.Open(filename)
	if err != nil {
		return nil, err
	}
	defer f.Close()
	var (
		values []float64
		found  bool
	)
	f.Walk(func(path string, obj hdf5.Object) {
		ds, ok := obj.(*hdf5.Dataset)
		if !ok || path != p || found {
			return
		}
		found = true
		values, err = ds.Read()
	})
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, fmt.Errorf("dataset %s not found", p)
	}
	return values, nil
}
