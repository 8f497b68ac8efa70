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

// Package h5 is a keyed array store backed by HDF5 files.
//
// Groups and datasets are written to the file as they are created. The
// file is kept open between calls and closed by Flush, which makes
// everything written so far durable; the next write reopens it. Only the
// names and shapes of the datasets stay in memory.
package h5

import (
	"fmt"
	"path"
	"strings"

	"github.com/pkg/errors"
)

// ErrUnavailable is returned when the package was built without HDF5
// support.
var ErrUnavailable = errors.New("xdmf: HDF5 support is not available in this build (built with the xdmf_nohdf5 tag)")

// Dataset describes a dataset that has been written to a File.
type Dataset struct {
	// Path is the location of the dataset in the file, e.g. "mesh/points".
	Path string
	Dims []uint64
}

// writer is an open HDF5 file.
type writer interface {
	createGroup(p string) error
	createDataset(p string, dims []uint64, data interface{}) error
	close() error
}

// File is an HDF5 file being written.
type File struct {
	path string
	w    writer

	groups   []string
	hasGroup map[string]bool

	datasets []*Dataset
	byPath   map[string]*Dataset

	closed bool
}

// Create creates a new, empty file at filename, truncating any existing
// file.
func Create(filename string) (*File, error) {
	if !Available {
		return nil, ErrUnavailable
	}
	w, err := create(filename)
	if err != nil {
		return nil, errors.Wrapf(err, "xdmf/h5: create %q", filename)
	}
	return &File{
		path:     filename,
		w:        w,
		hasGroup: map[string]bool{"": true},
		byPath:   make(map[string]*Dataset),
	}, nil
}

// Filename returns the location of the file on disk.
func (f *File) Filename() string { return f.path }

func cleanPath(p string) string {
	p = strings.Trim(path.Clean("/"+p), "/")
	if p == "." {
		return ""
	}
	return p
}

// reopen opens the file again after a Flush.
func (f *File) reopen() error {
	if f.w != nil {
		return nil
	}
	w, err := open(f.path)
	if err != nil {
		return errors.Wrapf(err, "xdmf/h5: open %q", f.path)
	}
	f.w = w
	return nil
}

// CreateGroup creates the group at p along with any missing parent
// groups. Creating an existing group is not an error.
func (f *File) CreateGroup(p string) error {
	if f.closed {
		return fmt.Errorf("xdmf/h5: create group %s: file %s is closed", p, f.path)
	}
	p = cleanPath(p)
	if f.hasGroup[p] {
		return nil
	}
	if _, ok := f.byPath[p]; ok {
		return fmt.Errorf("xdmf/h5: create group %s: a dataset with that name exists", p)
	}
	if err := f.CreateGroup(path.Dir(p)); err != nil {
		return err
	}
	if err := f.reopen(); err != nil {
		return err
	}
	if err := f.w.createGroup(p); err != nil {
		return errors.Wrapf(err, "xdmf/h5: create group %s in %q", p, f.path)
	}
	f.groups = append(f.groups, p)
	f.hasGroup[p] = true
	return nil
}

// CreateDataset writes a dataset with the given shape and values at p.
// The parent group of p must already exist. data is copied, so the
// caller may reuse it once CreateDataset returns.
func (f *File) CreateDataset(p string, dims []uint64, data interface{}) error {
	if f.closed {
		return fmt.Errorf("xdmf/h5: create dataset %s: file %s is closed", p, f.path)
	}
	p = cleanPath(p)
	if p == "" {
		return fmt.Errorf("xdmf/h5: create dataset: empty name")
	}
	if parent := cleanPath(path.Dir(p)); !f.hasGroup[parent] {
		return fmt.Errorf("xdmf/h5: create dataset %s: group '%s' does not exist", p, parent)
	}
	if _, ok := f.byPath[p]; ok || f.hasGroup[p] {
		return fmt.Errorf("xdmf/h5: create dataset %s: name already exists", p)
	}
	data, n, err := clone(data)
	if err != nil {
		return fmt.Errorf("xdmf/h5: create dataset %s: %v", p, err)
	}
	if len(dims) == 0 {
		return fmt.Errorf("xdmf/h5: create dataset %s: no dimensions", p)
	}
	size := uint64(1)
	for _, d := range dims {
		size *= d
	}
	if size != uint64(n) {
		return fmt.Errorf("xdmf/h5: create dataset %s: shape %v holds %d values but %d were given", p, dims, size, n)
	}
	if err := f.reopen(); err != nil {
		return err
	}
	dims = append([]uint64(nil), dims...)
	if err := f.w.createDataset(p, dims, data); err != nil {
		return errors.Wrapf(err, "xdmf/h5: write dataset %s to %q", p, f.path)
	}
	d := &Dataset{Path: p, Dims: dims}
	f.datasets = append(f.datasets, d)
	f.byPath[p] = d
	return nil
}

// clone returns a copy of data and its length.
func clone(data interface{}) (interface{}, int, error) {
	switch d := data.(type) {
	case []float64:
		return append([]float64(nil), d...), len(d), nil
	case []float32:
		return append([]float32(nil), d...), len(d), nil
	case []uint64:
		return append([]uint64(nil), d...), len(d), nil
	case []int64:
		return append([]int64(nil), d...), len(d), nil
	case []int32:
		return append([]int32(nil), d...), len(d), nil
	default:
		return nil, 0, fmt.Errorf("unsupported data type %T", data)
	}
}

// Dataset returns the dataset at p.
func (f *File) Dataset(p string) (*Dataset, bool) {
	d, ok := f.byPath[cleanPath(p)]
	return d, ok
}

// Datasets returns the paths of all datasets in the order they were
// created.
func (f *File) Datasets() []string {
	o := make([]string, len(f.datasets))
	for i, d := range f.datasets {
		o[i] = d.Path
	}
	return o
}

// Groups returns the paths of all groups in the order they were created.
func (f *File) Groups() []string {
	return append([]string(nil), f.groups...)
}

// Read flushes the file and reads the values of the dataset at p back
// from disk.
func (f *File) Read(p string) ([]float64, error) {
	p = cleanPath(p)
	if _, ok := f.byPath[p]; !ok {
		return nil, fmt.Errorf("xdmf/h5: read %s: no such dataset in %q", p, f.path)
	}
	if err := f.Flush(); err != nil {
		return nil, err
	}
	return Read(f.path, p)
}

// Read reads the values of the dataset at p in the file at filename,
// converted to float64.
func Read(filename, p string) ([]float64, error) {
	if !Available {
		return nil, ErrUnavailable
	}
	v, err := read(filename, "/"+cleanPath(p))
	if err != nil {
		return nil, errors.Wrapf(err, "xdmf/h5: read %s from %q", p, filename)
	}
	return v, nil
}

// Flush closes the underlying file, so everything written so far is on
// disk. The file is opened again by the next write.
func (f *File) Flush() error {
	if f.w == nil {
		return nil
	}
	err := f.w.close()
	f.w = nil
	if err != nil {
		return errors.Wrapf(err, "xdmf/h5: close %q", f.path)
	}
	return nil
}

// Close flushes the file. The file cannot be modified afterwards.
func (f *File) Close() error {
	if f.closed {
		return nil
	}
	err := f.Flush()
	f.closed = true
	return err
}
