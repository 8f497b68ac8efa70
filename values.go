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

import "github.com/spatialmodel/xdmf/element"

// Values holds a flat array of field values of one numeric type.
// It is implemented by Float64s, Float32s, Uint64s and Int64s.
type Values interface {
	// Len returns the number of values.
	Len() int
	// NumberType returns the XDMF number type of the values.
	NumberType() element.NumberType
	// Precision returns the number of bytes per value.
	Precision() int

	raw() interface{}
}

// Float64s is a Values of float64.
type Float64s []float64

// Float32s is a Values of float32.
type Float32s []float32

// Uint64s is a Values of uint64.
type Uint64s []uint64

// Int64s is a Values of int64.
type Int64s []int64

func (v Float64s) Len() int                       { return len(v) }
func (v Float64s) NumberType() element.NumberType { return element.Float }
func (v Float64s) Precision() int                 { return 8 }
func (v Float64s) raw() interface{}               { return []float64(v) }

func (v Float32s) Len() int                       { return len(v) }
func (v Float32s) NumberType() element.NumberType { return element.Float }
func (v Float32s) Precision() int                 { return 4 }
func (v Float32s) raw() interface{}               { return []float32(v) }

func (v Uint64s) Len() int                       { return len(v) }
func (v Uint64s) NumberType() element.NumberType { return element.UInt }
func (v Uint64s) Precision() int                 { return 8 }
func (v Uint64s) raw() interface{}               { return []uint64(v) }

func (v Int64s) Len() int                       { return len(v) }
func (v Int64s) NumberType() element.NumberType { return element.Int }
func (v Int64s) Precision() int                 { return 8 }
func (v Int64s) raw() interface{}               { return []int64(v) }

// dimensions returns the shape of v when interpreted as values of the
// given attribute: one value per entity for scalars, otherwise one row of
// a.Size() values per entity.
func dimensions(v Values, a DataAttribute) element.Dimensions {
	if a.kind == scalar {
		return element.Dimensions{v.Len()}
	}
	size := a.Size()
	if size == 0 {
		return element.Dimensions{0, 0}
	}
	return element.Dimensions{v.Len() / size, size}
}
