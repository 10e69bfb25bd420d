// Package fsutil provides file system utility functions.
package fsutil

import (
	"errors"
	"os"
	"path/filepath"
)

// WriteFileAtomic writes data to a temp file next to path and renames it
// into place, so readers never observe a partial file. The parent
// directory is created (0700) and the final file is 0600.
func WriteFileAtomic(path string, data []byte) error {
	if path == "" {
		return errors.New("fsutil: path is empty")
	}
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o700); err != nil {
		return err
	}

	tmp, err := os.CreateTemp(dir, ".goalcal-*.tmp")
	if err != nil {
		return err
	}
	tmpName := tmp.Name()
	// No-op after a successful rename.
	defer os.Remove(tmpName)

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Sync(); err != nil {
		tmp.Close()
		return err
	}
	if err := tmp.Close(); err != nil {
		return err
	}
	if err := os.Chmod(tmpName, 0o600); err != nil {
		return err
	}
	return os.Rename(tmpName, path)
}
