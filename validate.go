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
	"math"
	"regexp"
	"strconv"
	"strings"
)

// validatePointsAndCells checks the mesh before anything is written.
func validatePointsAndCells(points []float64, connectivity []uint64, types []CellType) error {
	if len(points) == 0 {
		return newInputError("At least one point is required")
	}
	if len(points)%3 != 0 {
		return newInputError("Points must have 3 dimensions")
	}
	numPoints := uint64(len(points) / 3)
	if len(connectivity) > 0 {
		var maxIndex uint64
		for _, c := range connectivity {
			if c > maxIndex {
				maxIndex = c
			}
		}
		if maxIndex >= numPoints {
			return newInputError("Connectivity indices out of bounds for the given points, max index: %d, but number of points is %d",
				maxIndex, numPoints)
		}
	}
	return checkCellSizes(connectivity, types)
}

// validateData checks the data of one time step before anything is
// written. written holds the time steps that have already been written.
func validateData(time string, written map[string]bool, numPoints, numCells int, pointData, cellData DataMap) error {
	// ParseFloat also accepts hex floats and digit separators.
	t, err := strconv.ParseFloat(time, 64)
	if err != nil || math.IsInf(t, 0) || math.IsNaN(t) || strings.ContainsAny(time, "xX_") {
		return newInputError("Time must be a valid float, and not '%s'", time)
	}
	if written[time] {
		return newInputError("Time step '%s' has already been written", time)
	}
	if len(pointData)+len(cellData) == 0 {
		return newInputError("At least one of point_data or cell_data must be provided")
	}
	if err := checkDataSize(pointData, numPoints, "point"); err != nil {
		return err
	}
	if err := checkDataSize(cellData, numCells, "cell"); err != nil {
		return err
	}
	if err := validateDataNames(pointData, "point"); err != nil {
		return err
	}
	return validateDataNames(cellData, "cell")
}

// checkDataSize makes sure every field has one value per component for
// each of the numEntities points or cells.
func checkDataSize(data DataMap, numEntities int, label string) error {
	for _, name := range data.names() {
		d := data[name]
		if !d.Attribute.valid() {
			return newInputError("Attribute %s of %s-data '%s' must have positive sizes", d.Attribute, label, name)
		}
		expected := numEntities * d.Attribute.Size()
		n := 0
		if d.Values != nil {
			n = d.Values.Len()
		}
		if n != expected {
			return newInputError("Size of %s-data '%s' must be %d, but is %d", label, name, expected, n)
		}
	}
	return nil
}

var dataNameRegexp = regexp.MustCompile("^[A-Za-z0-9_-]+$")

// validateDataNames makes sure that the field names can be used in file
// and dataset names.
func validateDataNames(data DataMap, label string) error {
	for _, name := range data.names() {
		if !dataNameRegexp.MatchString(name) {
			return newInputError("Data name '%s' of %s-data is not valid, must be non-empty and contain only alphanumeric characters, underscores or dashes",
				name, label)
		}
	}
	return nil
}

// invalidFileNameChars are not allowed in document file names.
const invalidFileNameChars = "?\x00:*\"<>|"

func validateFileName(name string) error {
	if name == "" {
		return newInputError("File name must not be empty")
	}
	if strings.ContainsAny(name, invalidFileNameChars) {
		return newInputError(`File name '%s' cannot contain the following characters: ['?', '\0', ':', '*', '"', '<', '>', '|']`, name)
	}
	return nil
}
