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
	"math"
	"strconv"

	"github.com/sirupsen/logrus"
	"github.com/spatialmodel/xdmf"
	"go.uber.org/multierr"
	"gonum.org/v1/gonum/floats"
)

// quadMesh returns a mesh of quadrilaterals in the z=0 plane with a
// point at each combination of x and y. Points are ordered with x
// varying fastest.
func quadMesh(x, y []float64) (points []float64, connectivity []uint64, types []xdmf.CellType) {
	nx, ny := len(x), len(y)
	points = make([]float64, 0, 3*nx*ny)
	for j := 0; j < ny; j++ {
		for i := 0; i < nx; i++ {
			points = append(points, x[i], y[j], 0)
		}
	}
	p := func(i, j int) uint64 { return uint64(j*nx + i) }
	for j := 0; j < ny-1; j++ {
		for i := 0; i < nx-1; i++ {
			connectivity = append(connectivity, p(i, j), p(i+1, j), p(i+1, j+1), p(i, j+1))
			types = append(types, xdmf.Quadrilateral)
		}
	}
	return points, connectivity, types
}

// timeToken formats t with the fewest digits that represent it exactly.
func timeToken(t float64) string {
	return strconv.FormatFloat(t, 'g', -1, 64)
}

// Demo writes a time series on a unit square divided into cfg.Nx by
// cfg.Ny quadrilaterals. Each time step holds a travelling wave as point
// scalar "height", its gradient as point vector "velocity" and the mean
// height of each cell as cell scalar "mean_height". It returns the
// location of the written document.
func Demo(cfg *DemoConfig, opts ...xdmf.Option) (filename string, err error) {
	x := floats.Span(make([]float64, cfg.Nx+1), 0, 1)
	y := floats.Span(make([]float64, cfg.Ny+1), 0, 1)
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

	numPoints := len(points) / 3
	for s := 0; s < cfg.Steps; s++ {
		t := float64(s) * cfg.TimeStep
		height := make([]float64, numPoints)
		velocity := make([]float32, 3*numPoints)
		for i := 0; i < numPoints; i++ {
			px, py := points[3*i], points[3*i+1]
			height[i] = math.Sin(2*math.Pi*(px-t)) * math.Cos(2*math.Pi*py)
			velocity[3*i] = float32(2 * math.Pi * math.Cos(2*math.Pi*(px-t)) * math.Cos(2*math.Pi*py))
			velocity[3*i+1] = float32(-2 * math.Pi * math.Sin(2*math.Pi*(px-t)) * math.Sin(2*math.Pi*py))
		}
		meanHeight := make([]float64, len(types))
		corners := make([]float64, 4)
		for c := range types {
			for k := range corners {
				corners[k] = height[connectivity[4*c+k]]
			}
			meanHeight[c] = floats.Sum(corners) / 4
		}
		token := timeToken(t)
		err := mw.WriteData(token,
			xdmf.DataMap{
				"height":   {Attribute: xdmf.Scalar, Values: xdmf.Float64s(height)},
				"velocity": {Attribute: xdmf.Vector, Values: xdmf.Float32s(velocity)},
			},
			xdmf.DataMap{
				"mean_height": {Attribute: xdmf.Scalar, Values: xdmf.Float64s(meanHeight)},
			})
		if err != nil {
			return "", err
		}
		logrus.WithFields(logrus.Fields{
			"time":       token,
			"max_height": floats.Max(height),
		}).Info("xdmf: demo time step written")
	}
	return mw.FileName(), nil
}
