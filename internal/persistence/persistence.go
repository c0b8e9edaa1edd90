// Package persistence saves and restores complete task lists as a single file.
//
// Saving writes the whole list to a temporary file next to the destination and
// renames it into place, so a failed save leaves any previous file intact.
// Loading never touches a store; callers install the result themselves.
package persistence

import (
	"context"
	"errors"
	"fmt"
	"os"

	"task-manager/internal/config"
	"task-manager/internal/domain"
	apperrors "task-manager/internal/errors"
	"task-manager/internal/validation"
)

// Artifact identity written into every file
const (
	FormatName    = "tm-tasks"
	FormatVersion = 1
)

var (
	// ErrUnknownFormat is returned when a file was not written by this program
	ErrUnknownFormat = errors.New("not a task list file")
	// ErrUnsupportedVersion is returned for task list files of another version
	ErrUnsupportedVersion = errors.New("unsupported task list version")
	// ErrNotRegularFile is returned when the path names a directory or device
	ErrNotRegularFile = errors.New("not a regular file")
)

// Persistence saves and loads whole task lists
type Persistence interface {
	// Save writes records to path, replacing any previous file only on success.
	Save(ctx context.Context, records []domain.TaskRecord, path string) error
	// Load reads the records stored at path in their original order.
	Load(ctx context.Context, path string) ([]domain.TaskRecord, error)
}

// New returns the Persistence for the configured storage format
func New(cfg *config.Config) (Persistence, error) {
	perm := os.FileMode(cfg.Storage.FilePermissions)
	tv := validation.NewTaskValidatorWithConfig(cfg)

	switch cfg.Storage.Format {
	case config.FormatJSON, "":
		return NewJSONFile(perm, tv), nil
	case config.FormatSQLite:
		return NewSQLiteFile(perm, tv), nil
	default:
		return nil, apperrors.NewInvalidInputError("format", cfg.Storage.Format, "unsupported storage format")
	}
}

// checkSource makes sure path names an existing, readable regular file
func checkSource(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	if !info.Mode().IsRegular() {
		return fmt.Errorf("%s: %w", path, ErrNotRegularFile)
	}

	f, err := os.Open(path)
	if err != nil {
		return err
	}
	return f.Close()
}

// checkIdentity verifies the format name and version read from a file
func checkIdentity(format string, version int) error {
	if format != FormatName {
		return fmt.Errorf("%w: format %q", ErrUnknownFormat, format)
	}
	if version != FormatVersion {
		return fmt.Errorf("%w: %d (expected %d)", ErrUnsupportedVersion, version, FormatVersion)
	}
	return nil
}

func saveError(path string, err error) error {
	return storageError("save tasks to", path, err)
}

func loadError(path string, err error) error {
	return storageError("load tasks from", path, err)
}

// storageError reports access denials as permission errors and everything
// else as a persistence error
func storageError(operation, path string, err error) error {
	if errors.Is(err, os.ErrPermission) {
		return apperrors.NewPermissionError(operation, path, err)
	}
	return apperrors.NewPersistenceError(operation, path, err)
}
