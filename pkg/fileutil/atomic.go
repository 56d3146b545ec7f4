// Package fileutil provides size-limited reads and atomic writes for post files.
package fileutil

import (
	"bytes"
	"os"

	"github.com/natefinch/atomic"

	"github.com/thoreinstein/folio/internal/errors"
)

// AtomicWriteFile writes data to path so that readers see either the old
// file or the complete new one, never a partial write. perm is applied to
// the final file.
//
// The caller is responsible for ensuring the parent directory exists.
func AtomicWriteFile(path string, data []byte, perm os.FileMode) error {
	if err := atomic.WriteFile(path, bytes.NewReader(data)); err != nil {
		return errors.Wrapf(err, "writing %s", path)
	}

	// atomic.WriteFile leaves new files with the temp file's mode
	if err := os.Chmod(path, perm); err != nil {
		return errors.Wrapf(err, "setting permissions on %s", path)
	}

	return nil
}

// CreateFile atomically writes data to path unless a file already exists
// there, in which case it returns an error matching errors.ErrAlreadyExists.
func CreateFile(path string, data []byte, perm os.FileMode) error {
	exists, err := Exists(path)
	if err != nil {
		return err
	}
	if exists {
		return errors.Wrapf(errors.ErrAlreadyExists, "%s", path)
	}
	return AtomicWriteFile(path, data, perm)
}

// Exists reports whether something exists at path. Errors other than
// "not exist" are returned.
func Exists(path string) (bool, error) {
	_, err := os.Stat(path)
	switch {
	case err == nil:
		return true, nil
	case os.IsNotExist(err):
		return false, nil
	default:
		return false, errors.Wrapf(err, "checking %s", path)
	}
}
