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
	"errors"
	"fmt"

	"github.com/spatialmodel/xdmf/internal/h5"
)

// ErrInvalidInput is matched by all errors caused by invalid mesh, data,
// time or file name input.
var ErrInvalidInput = errors.New("xdmf: invalid input")

// Errors returned by storage backends that write data per time step when
// the calls are out of order.
var (
	ErrNotInitialized     = errors.New("Writing data was not initialized")
	ErrAlreadyInitialized = errors.New("Writing data was already initialized")
)

// ErrHDF5Unavailable is returned when an HDF5 storage is requested from a
// build without HDF5 support.
var ErrHDF5Unavailable = h5.ErrUnavailable

// ErrWriterConsumed is returned when a Writer is used after its mesh has
// been written.
var ErrWriterConsumed = errors.New("xdmf: Writer was already used to write the mesh")

// ErrClosed is returned when a Writer or MeshWriter is used after Close.
var ErrClosed = errors.New("xdmf: writer is closed")

// InputError describes invalid input. Nothing is written when an
// InputError is returned.
type InputError struct {
	msg string
}

func newInputError(format string, a ...interface{}) *InputError {
	return &InputError{msg: fmt.Sprintf(format, a...)}
}

func (e *InputError) Error() string { return e.msg }

// Is makes errors.Is(err, ErrInvalidInput) true for all InputErrors.
func (e *InputError) Is(target error) bool { return target == ErrInvalidInput }
