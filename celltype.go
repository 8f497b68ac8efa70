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

import "fmt"

// CellType is the type of a mesh cell. The values are the XDMF mixed
// topology codes of the cell types, following the VTK cell taxonomy.
type CellType uint8

// Supported cell types.
const (
	Vertex         CellType = 1
	Edge           CellType = 2
	Triangle       CellType = 4
	Quadrilateral  CellType = 5
	Tetrahedron    CellType = 6
	Pyramid        CellType = 7
	Wedge          CellType = 8
	Hexahedron     CellType = 9
	Edge3          CellType = 34
	Quadrilateral9 CellType = 35
	Triangle6      CellType = 36
	Quadrilateral8 CellType = 37
	Tetrahedron10  CellType = 38
	Pyramid13      CellType = 39
	Wedge15        CellType = 40
	Wedge18        CellType = 41
	Hexahedron20   CellType = 48
	Hexahedron24   CellType = 49
	Hexahedron27   CellType = 50
)

var cellTypeInfo = map[CellType]struct {
	name      string
	numPoints int
}{
	Vertex:         {"Vertex", 1},
	Edge:           {"Edge", 2},
	Triangle:       {"Triangle", 3},
	Quadrilateral:  {"Quadrilateral", 4},
	Tetrahedron:    {"Tetrahedron", 4},
	Pyramid:        {"Pyramid", 5},
	Wedge:          {"Wedge", 6},
	Hexahedron:     {"Hexahedron", 8},
	Edge3:          {"Edge3", 3},
	Quadrilateral9: {"Quadrilateral9", 9},
	Triangle6:      {"Triangle6", 6},
	Quadrilateral8: {"Quadrilateral8", 8},
	Tetrahedron10:  {"Tetrahedron10", 10},
	Pyramid13:      {"Pyramid13", 13},
	Wedge15:        {"Wedge15", 15},
	Wedge18:        {"Wedge18", 18},
	Hexahedron20:   {"Hexahedron20", 20},
	Hexahedron24:   {"Hexahedron24", 24},
	Hexahedron27:   {"Hexahedron27", 27},
}

// NumPoints returns the number of points of a cell of type c.
// It panics if c is not a supported cell type.
func (c CellType) NumPoints() int {
	info, ok := cellTypeInfo[c]
	if !ok {
		panic(fmt.Errorf("xdmf: invalid cell type %d", uint8(c)))
	}
	return info.numPoints
}

func (c CellType) String() string {
	if info, ok := cellTypeInfo[c]; ok {
		return info.name
	}
	return fmt.Sprintf("CellType(%d)", uint8(c))
}

// Valid reports whether c is a supported cell type.
func (c CellType) Valid() bool {
	_, ok := cellTypeInfo[c]
	return ok
}

// polyPoints returns the point count that must follow the type code of
// poly-cells (polyvertex and polyline) in a mixed topology.
func (c CellType) polyPoints() (uint64, bool) {
	switch c {
	case Vertex:
		return 1, true
	case Edge:
		return 2, true
	default:
		return 0, false
	}
}

// checkCellSizes makes sure that the number of connectivity entries
// matches the number of points implied by the cell types.
func checkCellSizes(connectivity []uint64, types []CellType) error {
	var expected int
	for _, ct := range types {
		if !ct.Valid() {
			return newInputError("Invalid cell type: %d", uint8(ct))
		}
		expected += ct.NumPoints()
	}
	if expected != len(connectivity) {
		return newInputError("Size of connectivities not match the expected number based on the cell types: %d != %d",
			len(connectivity), expected)
	}
	return nil
}

// encodeCells converts connectivity and cell types into the flat mixed
// topology array, where each cell is written as its type code, followed
// by its number of points for poly-cells, followed by its point indices.
func encodeCells(connectivity []uint64, types []CellType) ([]uint64, error) {
	if err := checkCellSizes(connectivity, types); err != nil {
		return nil, err
	}
	o := make([]uint64, 0, encodedLen(connectivity, types))
	var i int
	for _, ct := range types {
		n := ct.NumPoints()
		o = append(o, uint64(ct))
		if np, ok := ct.polyPoints(); ok {
			o = append(o, np)
		}
		o = append(o, connectivity[i:i+n]...)
		i += n
	}
	return o, nil
}

// encodedLen returns the length of the mixed topology array.
func encodedLen(connectivity []uint64, types []CellType) int {
	n := len(connectivity) + len(types)
	for _, ct := range types {
		if _, ok := ct.polyPoints(); ok {
			n++
		}
	}
	return n
}
