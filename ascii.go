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
	"os"
	"path"
	"path/filepath"

	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spatialmodel/xdmf/element"
	"go.uber.org/multierr"
)

// asciiInlineWriter writes all data as text into the document itself.
type asciiInlineWriter struct{}

func (asciiInlineWriter) Storage() DataStorage   { return AsciiInline }
func (asciiInlineWriter) Format() element.Format { return element.XML }

func (asciiInlineWriter) WriteMesh(points Float64s, cells Uint64s) (element.Content, element.Content, error) {
	return element.Text(formatValues(points)), element.Text(formatValues(cells)), nil
}

func (asciiInlineWriter) WriteDataInitialize(string) error { return nil }

func (asciiInlineWriter) WriteData(_ string, _ element.Center, _ element.Dimensions, v Values) (element.Content, error) {
	return element.Text(formatValues(v)), nil
}

func (asciiInlineWriter) WriteDataFinalize() error { return nil }
func (asciiInlineWriter) Flush() error             { return nil }
func (asciiInlineWriter) Close() error             { return nil }

// asciiWriter writes each array to a text file in a directory next to the
// document. The document includes the files with XInclude.
type asciiWriter struct {
	dir string
	// rel is the directory relative to the document.
	rel string

	step timeStep
}

func newASCIIWriter(dir string, log logrus.FieldLogger) (*asciiWriter, error) {
	if err := MkdirAllShared(dir, log); err != nil {
		return nil, err
	}
	return &asciiWriter{dir: dir, rel: filepath.Base(dir)}, nil
}

func (w *asciiWriter) Storage() DataStorage   { return Ascii }
func (w *asciiWriter) Format() element.Format { return element.XML }

// write writes v to the given file in the directory and returns the
// XInclude pointing to it.
func (w *asciiWriter) write(name string, v Values) (element.Content, error) {
	filename := filepath.Join(w.dir, name)
	f, err := os.Create(filename)
	if err != nil {
		return nil, errors.Wrapf(err, "xdmf: creating %q", filename)
	}
	if err := writeValues(f, v); err != nil {
		return nil, multierr.Append(errors.Wrapf(err, "xdmf: writing %q", filename), f.Close())
	}
	if err := f.Close(); err != nil {
		return nil, errors.Wrapf(err, "xdmf: closing %q", filename)
	}
	return element.XInclude{Href: path.Join(w.rel, name), AsText: true}, nil
}

func (w *asciiWriter) WriteMesh(points Float64s, cells Uint64s) (element.Content, element.Content, error) {
	coords, err := w.write("points.txt", points)
	if err != nil {
		return nil, nil, err
	}
	conn, err := w.write("cells.txt", cells)
	if err != nil {
		return nil, nil, err
	}
	return coords, conn, nil
}

func (w *asciiWriter) WriteDataInitialize(time string) error { return w.step.begin(time) }

func (w *asciiWriter) WriteData(name string, center element.Center, _ element.Dimensions, v Values) (element.Content, error) {
	t, err := w.step.current()
	if err != nil {
		return nil, err
	}
	return w.write(fmt.Sprintf("data_t_%s_%s_%s.txt", t, center.DataTag(), name), v)
}

func (w *asciiWriter) WriteDataFinalize() error { return w.step.end() }

// Flush does nothing because every file is closed after it is written.
func (w *asciiWriter) Flush() error { return nil }
func (w *asciiWriter) Close() error { return nil }
