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
	"time"

	"github.com/cenkalti/backoff/v4"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
)

// dirVisibleWait is how long MkdirAllShared waits for a newly created
// directory to become visible.
const dirVisibleWait = 50 * time.Millisecond

// MkdirAllShared creates the directory at path and any missing parents.
// It can be called by many processes at once for the same path, e.g. by
// all ranks of an MPI job on a cluster file system.
//
// If the directory is not visible right after it has been created, for
// example on a slow network file system, MkdirAllShared waits once for a
// short time. It does not guarantee that the directory is visible when it
// returns.
func MkdirAllShared(path string, log logrus.FieldLogger) error {
	if log == nil {
		log = logrus.StandardLogger()
	}
	if _, err := os.Stat(path); err != nil {
		// MkdirAll succeeds if another process created the directory first.
		if err := os.MkdirAll(path, os.ModePerm); err != nil {
			return errors.Wrapf(err, "xdmf: failed to create directory %q", path)
		}
	}

	visible := func() error {
		_, err := os.Stat(path)
		return err
	}
	err := backoff.Retry(visible, backoff.WithMaxRetries(backoff.NewConstantBackOff(dirVisibleWait), 1))
	if err != nil {
		log.WithFields(logrus.Fields{
			"dir":   path,
			"error": err,
		}).Debug("xdmf: directory is not visible yet")
	}
	return nil
}
