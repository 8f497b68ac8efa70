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
	"sort"

	"github.com/ctessum/cdf"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spatialmodel/xdmf"
	"go.uber.org/multierr"
)

// Convert reads gridded data from the netCDF file cfg.InputFile and
// writes it as a time series. The grid points are the combinations of
// the one-dimensional coordinate variables cfg.XVar and cfg.YVar, and
// each value of cfg.TimeVar becomes a time step. Every variable with
// dimensions (time, y, x) is written as point data. It returns the
// location of the written document.
func Convert(cfg *ConvertConfig, opts ...xdmf.Option) (filename string, err error) {
	ff, err := os.Open(cfg.InputFile)
	if err != nil {
		return "", errors.Wrap(err, "xdmf: opening netCDF file")
	}
	defer func() {
		err = multierr.Append(err, ff.Close())
	}()
	f, err := cdf.Open(ff)
	if err != nil {
		return "", errors.Wrapf(err, "xdmf: reading netCDF header of %s", cfg.InputFile)
	}
	fi, err := ff.Stat()
	if err != nil {
		return "", err
	}

	x, err := readCoordinate(f, cfg.XVar, fi.Size())
	if err != nil {
		return "", err
	}
	y, err := readCoordinate(f, cfg.YVar, fi.Size())
	if err != nil {
		return "", err
	}
	times, err := readCoordinate(f, cfg.TimeVar, fi.Size())
	if err != nil {
		return "", err
	}
	if len(x) < 2 || len(y) < 2 {
		return "", fmt.Errorf("xdmf: the grid needs at least 2 points in each direction but has %d by %d", len(x), len(y))
	}

	want := []string{
		f.Header.Dimensions(cfg.TimeVar)[0],
		f.Header.Dimensions(cfg.YVar)[0],
		f.Header.Dimensions(cfg.XVar)[0],
	}
	var vars []string
	for _, v := range f.Header.Variables() {
		if sameDims(f.Header.Dimensions(v), want) {
			vars = append(vars, v)
			logrus.WithFields(logrus.Fields{
				"variable": v,
				"units":    f.Header.GetAttribute(v, "units"),
			}).Debug("xdmf: converting variable")
		}
	}
	if len(vars) == 0 {
		return "", fmt.Errorf("xdmf: no variables with dimensions %v in %s", want, cfg.InputFile)
	}
	sort.Strings(vars)

	points, connectivity, types := quadMesh(x, y)
	w, err := xdmf.NewWriter(cfg.OutputFile, cfg.Storage, opts...)
	if err != nil {
		return "", err
	}
	mw, err := w.WriteMesh(points, connectivity, types)
	if err != nil {
		return "", multierr.Append(err, w.Close())
	}
	defer func() {
		err = multierr.Append(err, mw.Close())
	}()

	nx, ny := len(x), len(y)
	for t, tv := range times {
		pointData := make(xdmf.DataMap, len(vars))
		for _, v := range vars {
			r := f.Reader(v, []int{t, 0, 0}, []int{t, ny - 1, nx - 1})
			buf := f.Header.ZeroValue(v, nx*ny)
			if _, err := r.Read(buf); err != nil {
				return "", errors.Wrapf(err, "xdmf: reading %s at time index %d", v, t)
			}
			values, err := toValues(buf)
			if err != nil {
				return "", errors.Wrapf(err, "xdmf: variable %s", v)
			}
			pointData[v] = xdmf.Data{Attribute: xdmf.Scalar, Values: values}
		}
		if err := mw.WriteData(timeToken(tv), pointData, nil); err != nil {
			return "", err
		}
	}
	return mw.FileName(), nil
}

// readCoordinate reads the one-dimensional variable v.
func readCoordinate(f *cdf.File, v string, fileSize int64) ([]float64, error) {
	lengths := f.Header.Lengths(v)
	if lengths == nil {
		return nil, fmt.Errorf("xdmf: variable %q is not in the netCDF file", v)
	}
	if len(lengths) != 1 {
		return nil, fmt.Errorf("xdmf: coordinate variable %q must have 1 dimension but has %d", v, len(lengths))
	}
	n := lengths[0]
	if f.Header.IsRecordVariable(v) {
		n = int(f.Header.NumRecs(fileSize))
	}
	buf := f.Header.ZeroValue(v, n)
	if n > 0 {
		if _, err := f.Reader(v, nil, nil).Read(buf); err != nil {
			return nil, errors.Wrapf(err, "xdmf: reading %s", v)
		}
	}
	values, err := toValues(buf)
	if err != nil {
		return nil, errors.Wrapf(err, "xdmf: variable %s", v)
	}
	o := make([]float64, values.Len())
	switch vv := values.(type) {
	case xdmf.Float64s:
		copy(o, vv)
	case xdmf.Float32s:
		for i, x := range vv {
			o[i] = float64(x)
		}
	case xdmf.Int64s:
		for i, x := range vv {
			o[i] = float64(x)
		}
	}
	return o, nil
}

// toValues converts the values read from a netCDF variable.
func toValues(buf interface{}) (xdmf.Values, error) {
	switch b := buf.(type) {
	case []float64:
		return xdmf.Float64s(b), nil
	case []float32:
		return xdmf.Float32s(b), nil
	case []int32:
		o := make(xdmf.Int64s, len(b))
		for i, v := range b {
			o[i] = int64(v)
		}
		return o, nil
	case []int16:
		o := make(xdmf.Int64s, len(b))
		for i, v := range b {
			o[i] = int64(v)
		}
		return o, nil
	case []uint8:
		o := make(xdmf.Int64s, len(b))
		for i, v := range b {
			o[i] = int64(v)
		}
		return o, nil
	default:
		return nil, fmt.Errorf("unsupported data type %T", buf)
	}
}

func sameDims(a, b []string) bool {
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
