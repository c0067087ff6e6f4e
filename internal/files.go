// cbqc: quality-control reports for NGS pipeline runs.
// Copyright (c) 2015-2021 the cbqc authors.

// Use of this source code is governed by the MIT license that can be
// found in the LICENSE.txt file or at
// <https://github.com/holtgrewe/cbqc/blob/master/LICENSE.txt>.

package internal

import (
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// Close closes c and stores its error in *err, unless *err is
// already set. Use it in deferred calls.
func Close(c io.Closer, err *error) {
	if nerr := c.Close(); nerr != nil && *err == nil {
		*err = nerr
	}
}

// A Staged file has been fully written next to its final destination,
// but is not yet visible under the destination name.
type Staged struct {
	Temp, Final string
}

// Stage writes the contents of r to a hidden temporary file in the
// directory of dst. The destination itself is not touched.
func Stage(dst string, r io.Reader) (staged Staged, err error) {
	dir := filepath.Dir(dst)
	if err = os.MkdirAll(dir, 0755); err != nil {
		return Staged{}, err
	}
	tmp := filepath.Join(dir, "."+filepath.Base(dst)+".tmp-"+uuid.NewString())
	f, err := os.OpenFile(tmp, os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		return Staged{}, err
	}
	defer func() {
		if err != nil {
			_ = os.Remove(tmp)
		}
	}()
	if _, err = io.Copy(f, r); err != nil {
		_ = f.Close()
		return Staged{}, err
	}
	if err = f.Sync(); err != nil {
		_ = f.Close()
		return Staged{}, err
	}
	if err = f.Close(); err != nil {
		return Staged{}, err
	}
	return Staged{Temp: tmp, Final: dst}, nil
}

// StageFile is like Stage, but copies the contents of the file src.
func StageFile(dst, src string) (staged Staged, err error) {
	in, err := os.Open(src)
	if err != nil {
		return Staged{}, err
	}
	defer Close(in, &err)
	return Stage(dst, in)
}

// Discard removes the temporary files of all staged files.
func Discard(staged ...Staged) {
	for _, s := range staged {
		_ = os.Remove(s.Temp)
	}
}

// Commit renames all staged files to their final destinations. If a
// rename fails, the destinations committed so far are removed again
// and all remaining temporary files are discarded, so that either all
// or none of the destinations are written.
func Commit(staged ...Staged) error {
	for i, s := range staged {
		if err := os.Rename(s.Temp, s.Final); err != nil {
			for _, done := range staged[:i] {
				_ = os.Remove(done.Final)
			}
			Discard(staged[i:]...)
			return err
		}
	}
	return nil
}
