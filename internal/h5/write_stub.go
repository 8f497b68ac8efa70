//go:build xdmf_nohdf5

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

package h5

// Available reports whether HDF5 support is compiled in.
const Available = false

func create(string) (writer, error) { return nil, ErrUnavailable }

func open(string) (writer, error) { return nil, ErrUnavailable }

func read(string, string) ([]float64, error) { return nil, ErrUnavailable }
