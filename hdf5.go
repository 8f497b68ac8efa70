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

package xdmf

import (
	"fmt"
	"path"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"github.com/spatialmodel/xdmf/element"
	"github.com/spatialmodel/xdmf/internal/h5"
)

// h5Ref returns the reference to a dataset as understood by XDMF readers:
// the file name relative to the document, a colon and the dataset path.
func h5Ref(file, dataset string) element.Content {
	return element.Text(file + ":/" + dataset)
}

func h5Dims(d element.Dimensions) []uint64 {
	o := make([]uint64, len(d))
	for i, v := range d {
		o[i] = uint64(v)
	}
	return o
}

// writeMeshH5 writes the points with shape [N, 3] and the encoded cells
// to the given group of f.
func writeMeshH5(f *h5.File, group string, points Float64s, cells Uint64s) error {
	if group != "" {
		if err := f.CreateGroup(group); err != nil {
			return err
		}
	}
	if err := f.CreateDataset(path.Join(group, "points"), []uint64{uint64(len(points) / 3), 3}, []float64(points)); err != nil {
		return err
	}
	return f.CreateDataset(path.Join(group, "cells"), []uint64{uint64(len(cells))}, []uint64(cells))
}

// hdf5SingleFileWriter writes all data to one HDF5 file.
type hdf5SingleFileWriter struct {
	f *h5.File
	// rel is the file name relative to the document.
	rel string

	step timeStep
}

func newHDF5SingleFileWriter(filename string) (*hdf5SingleFileWriter, error) {
	f, err := h5.Create(filename)
	if err != nil {
		return nil, err
	}
	return &hdf5SingleFileWriter{f: f, rel: filepath.Base(filename)}, nil
}

func (w *hdf5SingleFileWriter) Storage() DataStorage   { return HDF5SingleFile }
func (w *hdf5SingleFileWriter) Format() element.Format { return element.HDF }

func (w *hdf5SingleFileWriter) WriteMesh(points Float64s, cells Uint64s) (element.Content, element.Content, error) {
	if err := writeMeshH5(w.f, "mesh", points, cells); err != nil {
		return nil, nil, err
	}
	return h5Ref(w.rel, "mesh/points"), h5Ref(w.rel, "mesh/cells"), nil
}

func (w *hdf5SingleFileWriter) WriteDataInitialize(time string) error {
	if err := w.step.begin(time); err != nil {
		return err
	}
	return w.f.CreateGroup("data/t_" + time)
}

func (w *hdf5SingleFileWriter) WriteData(name string, center element.Center, dims element.Dimensions, v Values) (element.Content, error) {
	t, err := w.step.current()
	if err != nil {
		return nil, err
	}
	group := fmt.Sprintf("data/t_%s/%s", t, center.DataTag())
	if err := w.f.CreateGroup(group); err != nil {
		return nil, err
	}
	dataset := path.Join(group, name)
	if err := w.f.CreateDataset(dataset, h5Dims(dims), v.raw()); err != nil {
		return nil, err
	}
	return h5Ref(w.rel, dataset), nil
}

func (w *hdf5SingleFileWriter) WriteDataFinalize() error { return w.step.end() }
func (w *hdf5SingleFileWriter) Flush() error             { return w.f.Flush() }
func (w *hdf5SingleFileWriter) Close() error             { return w.f.Close() }

// hdf5MultipleFilesWriter writes the mesh and the data of each time step
// to separate HDF5 files in one directory.
type hdf5MultipleFilesWriter struct {
	dir string
	// rel is the directory relative to the document.
	rel string

	step timeStep
	// data is the file of the current time step.
	data *h5.File
}

func newHDF5MultipleFilesWriter(dir string, log logrus.FieldLogger) (*hdf5MultipleFilesWriter, error) {
	if err := MkdirAllShared(dir, log); err != nil {
		return nil, err
	}
	return &hdf5MultipleFilesWriter{dir: dir, rel: filepath.Base(dir)}, nil
}

func (w *hdf5MultipleFilesWriter) Storage() DataStorage   { return HDF5MultipleFiles }
func (w *hdf5MultipleFilesWriter) Format() element.Format { return element.HDF }

func (w *hdf5MultipleFilesWriter) WriteMesh(points Float64s, cells Uint64s) (element.Content, element.Content, error) {
	f, err := h5.Create(filepath.Join(w.dir, "mesh.h5"))
	if err != nil {
		return nil, nil, err
	}
	if err := writeMeshH5(f, "", points, cells); err != nil {
		f.Close()
		return nil, nil, err
	}
	if err := f.Close(); err != nil {
		return nil, nil, err
	}
	file := path.Join(w.rel, "mesh.h5")
	return h5Ref(file, "points"), h5Ref(file, "cells"), nil
}

func (w *hdf5MultipleFilesWriter) dataFile(time string) string {
	return fmt.Sprintf("data_t_%s.h5", time)
}

func (w *hdf5MultipleFilesWriter) WriteDataInitialize(time string) error {
	if err := w.step.begin(time); err != nil {
		return err
	}
	f, err := h5.Create(filepath.Join(w.dir, w.dataFile(time)))
	if err != nil {
		w.step.end()
		return err
	}
	w.data = f
	return nil
}

func (w *hdf5MultipleFilesWriter) WriteData(name string, center element.Center, dims element.Dimensions, v Values) (element.Content, error) {
	t, err := w.step.current()
	if err != nil {
		return nil, err
	}
	group := center.DataTag()
	if err := w.data.CreateGroup(group); err != nil {
		return nil, err
	}
	dataset := path.Join(group, name)
	if err := w.data.CreateDataset(dataset, h5Dims(dims), v.raw()); err != nil {
		return nil, err
	}
	return h5Ref(path.Join(w.rel, w.dataFile(t)), dataset), nil
}

func (w *hdf5MultipleFilesWriter) WriteDataFinalize() error {
	if err := w.step.end(); err != nil {
		return err
	}
	err := w.data.Close()
	w.data = nil
	return err
}

func (w *hdf5MultipleFilesWriter) Flush() error {
	if w.data == nil {
		return nil
	}
	return w.data.Flush()
}

func (w *hdf5MultipleFilesWriter) Close() error {
	if w.data == nil {
		return nil
	}
	err := w.data.Close()
	w.data = nil
	return err
}
