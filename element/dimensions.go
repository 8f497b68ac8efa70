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

package element

import (
	"fmt"
	"strconv"
	"strings"
)

// Dimensions is the shape of a DataItem, slowest varying dimension first.
type Dimensions []int

// Size returns the total number of values described by d.
func (d Dimensions) Size() int {
	if len(d) == 0 {
		return 0
	}
	n := 1
	for _, v := range d {
		n *= v
	}
	return n
}

// String returns the space-separated extents.
func (d Dimensions) String() string {
	s := make([]string, len(d))
	for i, v := range d {
		s[i] = strconv.Itoa(v)
	}
	return strings.Join(s, " ")
}

// MarshalText implements encoding.TextMarshaler.
func (d Dimensions) MarshalText() ([]byte, error) {
	for _, v := range d {
		if v < 0 {
			return nil, fmt.Errorf("xdmf/element: negative dimension in %v", []int(d))
		}
	}
	return []byte(d.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (d *Dimensions) UnmarshalText(text []byte) error {
	fields := strings.Fields(string(text))
	o := make(Dimensions, len(fields))
	for i, f := range fields {
		v, err := strconv.Atoi(f)
		if err != nil {
			return fmt.Errorf("xdmf/element: invalid dimensions '%s': %v", text, err)
		}
		if v < 0 {
			return fmt.Errorf("xdmf/element: invalid dimensions '%s': negative extent", text)
		}
		o[i] = v
	}
	*d = o
	return nil
}
