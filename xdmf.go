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

// Package xdmf writes simulation meshes and time-varying field data as
// XDMF documents, e.g. for visualization with ParaView.
//
// XDMF keeps the metadata in an XML document and the heavy numeric data
// either inline, in external text files, or in HDF5 files. The mesh is
// written once and referenced from every time step:
//
//	w, err := xdmf.NewWriter("out/result", xdmf.HDF5SingleFile)
//	...
//	mw, err := w.WriteMesh(points, connectivity, cellTypes)
//	...
//	err = mw.WriteData("0.5", pointData, cellData)
package xdmf

// Version gives the version number.
const Version = "0.1.0"
