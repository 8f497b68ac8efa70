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
	"bufio"
	"io"
	"math"
	"strconv"
)

// Number of digits after the decimal point for floating point values.
// Readers rely on these exact precisions, so they must not be reduced.
const (
	float64Digits = 16
	float32Digits = 7
)

// FormatFloat64 formats v in scientific notation with 16 digits after the
// decimal point and a minimal exponent, e.g. "1.0500000000000000e1".
func FormatFloat64(v float64) string {
	return string(appendFloat(nil, v, float64Digits, 64))
}

// FormatFloat32 formats v in scientific notation with 7 digits after the
// decimal point, e.g. "5.0000000e-1".
func FormatFloat32(v float32) string {
	return string(appendFloat(nil, float64(v), float32Digits, 32))
}

// appendFloat appends the formatted value to dst. strconv writes the
// exponent as e+00; the exponent is written here without the plus sign
// and without leading zeros.
func appendFloat(dst []byte, v float64, digits, bitSize int) []byte {
	switch {
	case math.IsNaN(v):
		return append(dst, "NaN"...)
	case math.IsInf(v, 1):
		return append(dst, "inf"...)
	case math.IsInf(v, -1):
		return append(dst, "-inf"...)
	}
	start := len(dst)
	dst = strconv.AppendFloat(dst, v, 'e', digits, bitSize)
	var e int
	for e = len(dst) - 1; e > start; e-- {
		if dst[e] == 'e' {
			break
		}
	}
	exp := dst[e+1:]
	neg := exp[0] == '-'
	digitsStart := 1
	for digitsStart < len(exp)-1 && exp[digitsStart] == '0' {
		digitsStart++
	}
	var buf [8]byte
	o := buf[:0]
	if neg {
		o = append(o, '-')
	}
	o = append(o, exp[digitsStart:]...)
	return append(dst[:e+1], o...)
}

func appendUint(dst []byte, v uint64) []byte { return strconv.AppendUint(dst, v, 10) }

func appendInt(dst []byte, v int64) []byte { return strconv.AppendInt(dst, v, 10) }

// formatValues returns the values as a single space-separated line.
func formatValues(v Values) string {
	return string(appendValues(nil, v))
}

func appendValues(dst []byte, v Values) []byte {
	switch vv := v.(type) {
	case Float64s:
		for i, x := range vv {
			if i != 0 {
				dst = append(dst, ' ')
			}
			dst = appendFloat(dst, x, float64Digits, 64)
		}
	case Float32s:
		for i, x := range vv {
			if i != 0 {
				dst = append(dst, ' ')
			}
			dst = appendFloat(dst, float64(x), float32Digits, 32)
		}
	case Uint64s:
		for i, x := range vv {
			if i != 0 {
				dst = append(dst, ' ')
			}
			dst = appendUint(dst, x)
		}
	case Int64s:
		for i, x := range vv {
			if i != 0 {
				dst = append(dst, ' ')
			}
			dst = appendInt(dst, x)
		}
	default:
		panic("xdmf: unsupported values type")
	}
	return dst
}

// writeValues writes the values as a single space-separated line,
// followed by a newline.
func writeValues(w io.Writer, v Values) error {
	bw := bufio.NewWriter(w)
	var buf []byte
	for i := 0; i < v.Len(); i++ {
		buf = buf[:0]
		if i != 0 {
			buf = append(buf, ' ')
		}
		switch vv := v.(type) {
		case Float64s:
			buf = appendFloat(buf, vv[i], float64Digits, 64)
		case Float32s:
			buf = appendFloat(buf, float64(vv[i]), float32Digits, 32)
		case Uint64s:
			buf = appendUint(buf, vv[i])
		case Int64s:
			buf = appendInt(buf, vv[i])
		default:
			panic("xdmf: unsupported values type")
		}
		if _, err := bw.Write(buf); err != nil {
			return err
		}
	}
	if err := bw.WriteByte('\n'); err != nil {
		return err
	}
	return bw.Flush()
}
