package persistence

import (
	"fmt"
	"os"
	"path/filepath"

	"task-manager/internal/logging"
)

// replaceFile creates an empty temporary file in the directory of path, lets
// build fill it, and renames it over path. On any failure the temporary file
// is removed and path is left as it was.
func replaceFile(path string, perm os.FileMode, build func(tmpPath string) error) (err error) {
	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, "."+filepath.Base(path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("create temporary file: %w", err)
	}
	tmpPath := tmp.Name()
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("close temporary file: %w", err)
	}

	defer func() {
		if err != nil {
			if rmErr := os.Remove(tmpPath); rmErr != nil && !os.IsNotExist(rmErr) {
				logging.Debugf("could not remove %s: %v\n", tmpPath, rmErr)
			}
		}
	}()

	if err := build(tmpPath); err != nil {
		return err
	}
	if err := os.Chmod(tmpPath, perm); err != nil {
		return fmt.Errorf("set permissions: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		return fmt.Errorf("replace %s: %w", filepath.Base(path), err)
	}

	logging.Debugf("replaced %s\n", path)
	return nil
}

// writeSynced overwrites the file at path with data and flushes it to disk
func writeSynced(path string, data []byte) error {
	f, err := os.OpenFile(path, os.O_WRONLY|os.O_TRUNC, 0)
	if err != nil {
		return err
	}
	if _, err := f.Write(data); err != nil {
		f.Close()
		return err
	}
	if err := f.Sync(); err != nil {
		f.Close()
		return err
	}
	return f.Close()
}

// WriteFile replaces the file at path with data in one step. A failed write
// leaves any existing file unchanged.
func WriteFile(path string, data []byte, perm os.FileMode) error {
	return replaceFile(path, perm, func(tmpPath string) error {
		return writeSynced(tmpPath, data)
	})
}
