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
	"path/filepath"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spatialmodel/xdmf/element"
	"go.uber.org/multierr"
)

// Extension is the file extension of the documents written by Writer.
const Extension = ".xdmf2"

// Names of the domain-level DataItems holding the mesh.
const (
	coordsName       = "coords"
	connectivityName = "connectivity"
)

// An Option configures a Writer.
type Option func(*Writer)

// WithLogger sets the logger used by the Writer and the MeshWriter it
// returns. The default is logrus.StandardLogger().
func WithLogger(log logrus.FieldLogger) Option {
	return func(w *Writer) {
		w.log = log
	}
}

// WithMetrics sets the metrics that are updated by the Writer and the
// MeshWriter it returns.
func WithMetrics(m *Metrics) Option {
	return func(w *Writer) {
		w.metrics = m
	}
}

// Writer writes the mesh of a time series. After the mesh has been
// written, data is written with the returned MeshWriter.
type Writer struct {
	filename string
	data     dataWriter
	log      logrus.FieldLogger
	metrics  *Metrics

	// consumed is set once the mesh has been handed to the storage.
	consumed bool
}

// NewWriter returns a Writer for the document at filename, with its
// extension replaced by ".xdmf2". The heavy data is stored as specified
// by storage. The directory of the document is created if it does not
// exist.
func NewWriter(filename string, storage DataStorage, opts ...Option) (*Writer, error) {
	if filename == "" {
		return nil, validateFileName(filename)
	}
	doc := strings.TrimSuffix(filename, filepath.Ext(filename)) + Extension
	if err := validateFileName(doc); err != nil {
		return nil, err
	}
	w := &Writer{
		filename: doc,
		log:      logrus.StandardLogger(),
	}
	for _, o := range opts {
		o(w)
	}
	if err := MkdirAllShared(filepath.Dir(doc), w.log); err != nil {
		return nil, err
	}
	data, err := newDataWriter(doc, storage, w.log)
	if err != nil {
		return nil, err
	}
	w.data = data
	return w, nil
}

// newWriter returns a Writer that stores the heavy data with data.
func newWriter(filename string, data dataWriter) *Writer {
	return &Writer{
		filename: filename,
		data:     data,
		log:      logrus.StandardLogger(),
	}
}

// FileName returns the location of the document.
func (w *Writer) FileName() string { return w.filename }

// WriteMesh writes the mesh and returns a MeshWriter for the data of the
// time steps. points holds the x, y and z coordinates of each point.
// connectivity holds the indices of the points of each cell, where the
// number of points per cell is given by its type in types.
//
// If the input is invalid, an error matching ErrInvalidInput is returned
// and w can be used again. Otherwise w must not be used any more.
func (w *Writer) WriteMesh(points []float64, connectivity []uint64, types []CellType) (*MeshWriter, error) {
	if w.consumed {
		return nil, ErrWriterConsumed
	}
	if w.data == nil {
		return nil, ErrClosed
	}
	if err := validatePointsAndCells(points, connectivity, types); err != nil {
		return nil, err
	}
	cells, err := encodeCells(connectivity, types)
	if err != nil {
		return nil, err
	}
	w.consumed = true

	coords, conn, err := w.data.WriteMesh(Float64s(points), Uint64s(cells))
	if err != nil {
		return nil, err
	}
	format := w.data.Format()
	m := &MeshWriter{
		filename: w.filename,
		data:     w.data,
		log:      w.log,
		metrics:  w.metrics,
		dataItems: []element.DataItem{
			{
				Name:       coordsName,
				Dimensions: element.Dimensions{len(points) / 3, 3},
				NumberType: element.Float,
				Format:     format,
				Precision:  8,
				Content:    coords,
			},
			{
				Name:       connectivityName,
				Dimensions: element.Dimensions{len(cells)},
				NumberType: element.UInt,
				Format:     format,
				Precision:  8,
				Content:    conn,
			},
		},
		grid: element.NewUniform("mesh",
			element.Geometry{
				GeometryType: element.XYZ,
				DataItem:     element.NewReference(coordsName),
			},
			element.Topology{
				TopologyType:     element.Mixed,
				NumberOfElements: len(types),
				DataItem:         element.NewReference(connectivityName),
			},
		),
		written:   make(map[string]bool),
		numPoints: len(points) / 3,
		numCells:  len(types),
	}
	m.metrics.meshWritten()
	m.log.WithFields(logrus.Fields{
		"file":    w.filename,
		"storage": w.data.Storage(),
		"points":  m.numPoints,
		"cells":   m.numCells,
	}).Debug("xdmf: wrote mesh")

	if err := m.write(); err != nil {
		return nil, err
	}
	w.data = nil
	return m, nil
}

// Close releases the storage if the mesh has not been written
// successfully.
func (w *Writer) Close() error {
	if w.data == nil {
		return nil
	}
	err := w.data.Close()
	w.data = nil
	return err
}

// step is the data of a single time step.
type step struct {
	time       string
	attributes []element.Attribute
}

// MeshWriter writes the data of the time steps of a time series. After
// each time step, the document is rewritten with all time steps written
// so far.
type MeshWriter struct {
	filename string
	data     dataWriter
	log      logrus.FieldLogger
	metrics  *Metrics

	dataItems []element.DataItem
	grid      element.Grid

	steps   []step
	written map[string]bool

	numPoints, numCells int
}

// FileName returns the location of the document.
func (m *MeshWriter) FileName() string { return m.filename }

// Times returns the time steps written so far, in the order they were
// written.
func (m *MeshWriter) Times() []string {
	o := make([]string, len(m.steps))
	for i, s := range m.steps {
		o[i] = s.time
	}
	return o
}

// WriteData writes the point and cell data of the time step at time,
// which must be a number. The text of time is written as is, so the
// caller decides how it is formatted. Each time can only be written once.
//
// pointData must have one entry per point and cellData one entry per
// cell for each component of its attribute. One of them may be nil.
// If the input is invalid, an error matching ErrInvalidInput is returned
// and nothing is written.
func (m *MeshWriter) WriteData(time string, pointData, cellData DataMap) error {
	if m.data == nil {
		return ErrClosed
	}
	if err := validateData(time, m.written, m.numPoints, m.numCells, pointData, cellData); err != nil {
		return err
	}
	if err := m.data.WriteDataInitialize(time); err != nil {
		return err
	}
	var attributes []element.Attribute
	for _, c := range []struct {
		data   DataMap
		center element.Center
	}{
		{data: pointData, center: element.Node},
		{data: cellData, center: element.Cell},
	} {
		for _, name := range c.data.names() {
			a, err := m.attribute(name, c.center, c.data[name])
			if err != nil {
				return multierr.Append(err, m.data.WriteDataFinalize())
			}
			attributes = append(attributes, a)
		}
	}
	m.steps = append(m.steps, step{time: time, attributes: attributes})
	m.written[time] = true

	if err := m.data.WriteDataFinalize(); err != nil {
		return err
	}
	m.metrics.timeStepWritten()
	m.log.WithFields(logrus.Fields{
		"file":       m.filename,
		"time":       time,
		"point_data": len(pointData),
		"cell_data":  len(cellData),
	}).Debug("xdmf: wrote time step")
	return m.write()
}

// attribute stores the values of one field and returns the attribute
// referring to them.
func (m *MeshWriter) attribute(name string, center element.Center, d Data) (element.Attribute, error) {
	v := d.Values
	if v == nil {
		v = Float64s(nil)
	}
	dims := dimensions(v, d.Attribute)
	content, err := m.data.WriteData(name, center, dims, v)
	if err != nil {
		return element.Attribute{}, err
	}
	return element.Attribute{
		Name:          name,
		AttributeType: d.Attribute.AttributeType(),
		Center:        center,
		DataItems: []element.DataItem{{
			Dimensions: dims,
			NumberType: v.NumberType(),
			Format:     m.data.Format(),
			Precision:  v.Precision(),
			Content:    content,
		}},
	}, nil
}

// document assembles the document from the mesh and all time steps
// written so far.
func (m *MeshWriter) document() *element.Xdmf {
	var g element.Grid
	if len(m.steps) == 0 {
		g = m.grid.Clone()
	} else {
		grids := make([]element.Grid, len(m.steps))
		for i, s := range m.steps {
			sg := m.grid.Clone()
			sg.Name = "time_series-t" + s.time
			sg.Time = element.NewTime(s.time)
			sg.Attributes = s.attributes
			grids[i] = sg
		}
		g = element.NewCollection("time_series", element.Temporal, grids...)
	}
	doc := element.New(element.Domain{
		Grids:     []element.Grid{g},
		DataItems: m.dataItems,
	})
	doc.XInclude = element.XIncludeNamespace
	doc.Information = []element.Information{
		element.NewInformation("data_storage", m.data.Storage().String()),
		element.NewInformation("version", Version),
	}
	return doc
}

// write flushes the heavy data and then replaces the document on disk.
func (m *MeshWriter) write() error {
	start := time.Now()
	if err := m.data.Flush(); err != nil {
		return err
	}
	n, err := commit(m.filename, m.document())
	if err != nil {
		return err
	}
	m.metrics.committed(start, n)
	m.log.WithFields(logrus.Fields{
		"file":  m.filename,
		"steps": len(m.steps),
		"bytes": n,
	}).Debug("xdmf: wrote document")
	return nil
}

// Close flushes and releases the storage of the heavy data.
func (m *MeshWriter) Close() error {
	if m.data == nil {
		return nil
	}
	err := multierr.Append(m.data.Flush(), m.data.Close())
	m.data = nil
	return err
}
