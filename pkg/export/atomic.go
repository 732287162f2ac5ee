package export

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/google/uuid"

	werrors "github.com/r3d91ll/labreport/pkg/errors"
)

// TempPattern returns the temporary file name used while writing path.
func TempPattern(path, id string) string {
	return filepath.Join(filepath.Dir(path), fmt.Sprintf(".%s.%s.tmp", filepath.Base(path), id))
}

// WriteFileAtomic writes data to a uniquely named temporary file next to
// path, syncs it and renames it over path. On failure the temporary file is
// removed and any existing file at path is left untouched.
func WriteFileAtomic(path string, data []byte, perm os.FileMode) error {
	tmp := TempPattern(path, uuid.NewString())

	fail := func(err error, msg string) error {
		_ = os.Remove(tmp)
		return werrors.IO(err, werrors.ErrOutputWriteFailed, msg).WithContext("path", path)
	}

	f, err := os.OpenFile(tmp, os.O_WRONLY|os.O_CREATE|os.O_EXCL, perm)
	if err != nil {
		return werrors.IO(err, werrors.ErrOutputWriteFailed, "failed to create temporary file").
			WithContext("path", path)
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		return fail(err, "failed to write PDF")
	}
	if err := f.Sync(); err != nil {
		f.Close()
		return fail(err, "failed to sync PDF")
	}
	if err := f.Close(); err != nil {
		return fail(err, "failed to close PDF")
	}
	if err := os.Rename(tmp, path); err != nil {
		return fail(err, "failed to move PDF into place")
	}
	return nil
}
