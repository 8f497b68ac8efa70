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
	"path/filepath"
	"strings"

	"github.com/sirupsen/logrus"
	"github.com/spatialmodel/xdmf/element"
	"github.com/spatialmodel/xdmf/internal/h5"
)

// DataStorage specifies where the heavy data (points, cells and field
// values) is stored.
type DataStorage int

const (
	// Ascii stores each array in its own text file in a directory next to
	// the document and includes it with XInclude.
	Ascii DataStorage = iota
	// AsciiInline stores all arrays as text inside the document.
	AsciiInline
	// HDF5SingleFile stores all arrays in one HDF5 file next to the
	// document.
	HDF5SingleFile
	// HDF5MultipleFiles stores the mesh in one HDF5 file and the data of
	// each time step in its own HDF5 file, all in a directory next to the
	// document.
	HDF5MultipleFiles
)

func (s DataStorage) String() string {
	switch s {
	case Ascii:
		return "Ascii"
	case AsciiInline:
		return "AsciiInline"
	case HDF5SingleFile:
		return "Hdf5SingleFile"
	case HDF5MultipleFiles:
		return "Hdf5MultipleFiles"
	default:
		return fmt.Sprintf("DataStorage(%d)", int(s))
	}
}

// ParseDataStorage returns the storage with the given name. Matching is
// case-insensitive and words may be separated by underscores or dashes,
// e.g. "hdf5-single-file".
func ParseDataStorage(s string) (DataStorage, error) {
	switch strings.ToLower(s) {
	case "ascii":
		return Ascii, nil
	case "asciiinline", "ascii_inline", "ascii-inline":
		return AsciiInline, nil
	case "hdf5singlefile", "hdf5_single_file", "hdf5-single-file":
		return HDF5SingleFile, nil
	case "hdf5multiplefiles", "hdf5_multiple_files", "hdf5-multiple-files":
		return HDF5MultipleFiles, nil
	}
	return 0, newInputError("Invalid DataStorage variant: '%s'. Valid options are: 'Ascii', 'AsciiInline', 'Hdf5SingleFile', 'Hdf5MultipleFiles'", s)
}

// MarshalText implements encoding.TextMarshaler.
func (s DataStorage) MarshalText() ([]byte, error) {
	if s < Ascii || s > HDF5MultipleFiles {
		return nil, fmt.Errorf("xdmf: invalid DataStorage %d", int(s))
	}
	return []byte(s.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (s *DataStorage) UnmarshalText(text []byte) error {
	v, err := ParseDataStorage(string(text))
	if err != nil {
		return err
	}
	*s = v
	return nil
}

// HDF5Enabled reports whether this build can write HDF5 files.
func HDF5Enabled() bool { return h5.Available }

// dataWriter stores heavy data and returns the content that a DataItem
// uses to refer to it.
//
// Field data is written per time step: WriteDataInitialize must be called
// before WriteData and WriteDataFinalize after the last WriteData of the
// step.
type dataWriter interface {
	Storage() DataStorage
	// Format is the format of the DataItems referring to the stored data.
	Format() element.Format

	WriteMesh(points Float64s, cells Uint64s) (coords, connectivity element.Content, err error)

	WriteDataInitialize(time string) error
	WriteData(name string, center element.Center, dims element.Dimensions, v Values) (element.Content, error)
	WriteDataFinalize() error

	// Flush makes sure that all data written so far is on disk.
	Flush() error
	Close() error
}

// newDataWriter returns a writer for the heavy data of the document at
// docPath.
func newDataWriter(docPath string, s DataStorage, log logrus.FieldLogger) (dataWriter, error) {
	base := strings.TrimSuffix(docPath, filepath.Ext(docPath))
	switch s {
	case AsciiInline:
		return asciiInlineWriter{}, nil
	case Ascii:
		return newASCIIWriter(base+".txt", log)
	case HDF5SingleFile:
		if !h5.Available {
			return nil, ErrHDF5Unavailable
		}
		return newHDF5SingleFileWriter(base + ".h5")
	case HDF5MultipleFiles:
		if !h5.Available {
			return nil, ErrHDF5Unavailable
		}
		return newHDF5MultipleFilesWriter(base+".h5", log)
	default:
		return nil, fmt.Errorf("xdmf: invalid DataStorage %d", int(s))
	}
}

// timeStep tracks the time step that data is currently being written
// for.
type timeStep struct {
	time   string
	active bool
}

func (t *timeStep) begin(time string) error {
	if t.active {
		return ErrAlreadyInitialized
	}
	t.time = time
	t.active = true
	return nil
}

func (t *timeStep) current() (string, error) {
	if !t.active {
		return "", ErrNotInitialized
	}
	return t.time, nil
}

func (t *timeStep) end() error {
	if !t.active {
		return ErrNotInitialized
	}
	t.active = false
	t.time = ""
	return nil
}
