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
	"sort"

	"github.com/spatialmodel/xdmf/element"
)

type attributeKind int

const (
	scalar attributeKind = iota
	vector
	tensor
	tensor6
	matrix
	generic
)

// DataAttribute is the shape of the values stored for each point or cell.
type DataAttribute struct {
	kind attributeKind
	n, m int
}

// Data attributes with a fixed size.
var (
	// Scalar is a single value.
	Scalar = DataAttribute{kind: scalar}
	// Vector is a 3D vector.
	Vector = DataAttribute{kind: vector}
	// Tensor is a 2nd order tensor in 3D (9 components).
	Tensor = DataAttribute{kind: tensor}
	// Tensor6 is a symmetric 2nd order tensor in 3D (6 components).
	Tensor6 = DataAttribute{kind: tensor6}
)

// Matrix returns a matrix attribute with n rows and m columns.
func Matrix(n, m int) DataAttribute { return DataAttribute{kind: matrix, n: n, m: m} }

// Generic returns an attribute with size values per entity.
func Generic(size int) DataAttribute { return DataAttribute{kind: generic, n: size} }

// Size returns the number of values per entity.
func (a DataAttribute) Size() int {
	switch a.kind {
	case scalar:
		return 1
	case vector:
		return 3
	case tensor:
		return 9
	case tensor6:
		return 6
	case matrix:
		return a.n * a.m
	case generic:
		return a.n
	default:
		panic(fmt.Errorf("xdmf: invalid data attribute %d", a.kind))
	}
}

// valid reports whether a Matrix or Generic attribute has positive sizes.
func (a DataAttribute) valid() bool {
	switch a.kind {
	case matrix:
		return a.n > 0 && a.m > 0
	case generic:
		return a.n > 0
	default:
		return true
	}
}

// AttributeType returns the XDMF attribute type. Symmetric tensors,
// matrices and generic data are all written as Matrix, which lets readers
// recognize symmetric tensors.
func (a DataAttribute) AttributeType() element.AttributeType {
	switch a.kind {
	case scalar:
		return element.Scalar
	case vector:
		return element.Vector
	case tensor:
		return element.Tensor
	case tensor6, matrix, generic:
		return element.Matrix
	default:
		panic(fmt.Errorf("xdmf: invalid data attribute %d", a.kind))
	}
}

func (a DataAttribute) String() string {
	switch a.kind {
	case scalar:
		return "Scalar"
	case vector:
		return "Vector"
	case tensor:
		return "Tensor"
	case tensor6:
		return "Tensor6"
	case matrix:
		return fmt.Sprintf("Matrix(%d, %d)", a.n, a.m)
	case generic:
		return fmt.Sprintf("Generic(%d)", a.n)
	default:
		return fmt.Sprintf("DataAttribute(%d)", a.kind)
	}
}

// Data is one field to be written: its shape and its flat values.
type Data struct {
	Attribute DataAttribute
	Values    Values
}

// DataMap holds fields by name. Fields are written in order of their names.
type DataMap map[string]Data

// names returns the field names in sorted order.
func (d DataMap) names() []string {
	names := make([]string, 0, len(d))
	for n := range d {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
