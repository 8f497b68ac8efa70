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
	"os"

	"github.com/pkg/errors"
	"github.com/spatialmodel/xdmf/element"
	"go.uber.org/multierr"
)

// rename moves the temporary document over the final one.
var rename = os.Rename

// commit writes doc to a temporary file next to filename and then moves
// it over filename, so readers never see a partially written document.
// It returns the number of bytes written.
func commit(filename string, doc *element.Xdmf) (int64, error) {
	b, err := doc.Marshal()
	if err != nil {
		return 0, err
	}
	tmp := filename + ".tmp"
	f, err := os.Create(tmp)
	if err != nil {
		return 0, errors.Wrapf(err, "xdmf: create temporary document %q", tmp)
	}
	if _, err := f.Write(b); err != nil {
		return 0, multierr.Append(errors.Wrapf(err, "xdmf: write temporary document %q", tmp), f.Close())
	}
	if err := f.Close(); err != nil {
		return 0, errors.Wrapf(err, "xdmf: close temporary document %q", tmp)
	}
	if err := rename(tmp, filename); err != nil {
		return 0, errors.Wrapf(err, "xdmf: move %q to %q", tmp, filename)
	}
	return int64(len(b)), nil
}
