package persistence

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"os"

	"task-manager/internal/domain"
	"task-manager/internal/logging"
	"task-manager/internal/validation"
)

// envelope is the top-level JSON document of a task list file
type envelope struct {
	Format  string     `json:"format"`
	Version int        `json:"version"`
	Tasks   *[]taskRow `json:"tasks"`
}

// JSONFile stores task lists as a versioned JSON document
type JSONFile struct {
	perm      os.FileMode
	validator *validation.TaskValidator
}

// NewJSONFile creates a JSON task list codec writing files with perm
func NewJSONFile(perm os.FileMode, tv *validation.TaskValidator) *JSONFile {
	return &JSONFile{perm: perm, validator: tv}
}

// Save implements Persistence
func (j *JSONFile) Save(ctx context.Context, records []domain.TaskRecord, path string) error {
	if err := ctx.Err(); err != nil {
		return saveError(path, err)
	}
	if err := j.validator.ValidateRecords(records); err != nil {
		return saveError(path, err)
	}

	rows := toRows(records)
	data, err := json.MarshalIndent(envelope{
		Format:  FormatName,
		Version: FormatVersion,
		Tasks:   &rows,
	}, "", "  ")
	if err != nil {
		return saveError(path, fmt.Errorf("encode tasks: %w", err))
	}
	data = append(data, '\n')

	if err := WriteFile(path, data, j.perm); err != nil {
		return saveError(path, err)
	}

	logging.Debugf("saved %d tasks as json to %s\n", len(records), path)
	return nil
}

// Load implements Persistence
func (j *JSONFile) Load(ctx context.Context, path string) ([]domain.TaskRecord, error) {
	if err := ctx.Err(); err != nil {
		return nil, loadError(path, err)
	}
	if err := checkSource(path); err != nil {
		return nil, loadError(path, err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, loadError(path, err)
	}

	records, err := j.decode(data)
	if err != nil {
		return nil, loadError(path, err)
	}

	logging.Debugf("loaded %d tasks from json file %s\n", len(records), path)
	return records, nil
}

func (j *JSONFile) decode(data []byte) ([]domain.TaskRecord, error) {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.DisallowUnknownFields()

	var env envelope
	if err := dec.Decode(&env); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnknownFormat, err)
	}
	if err := dec.Decode(&struct{}{}); !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%w: trailing data after document", ErrUnknownFormat)
	}
	if err := checkIdentity(env.Format, env.Version); err != nil {
		return nil, err
	}
	if env.Tasks == nil {
		return nil, fmt.Errorf("%w: missing tasks", ErrUnknownFormat)
	}

	records := fromRows(*env.Tasks)
	if err := j.validator.ValidateRecords(records); err != nil {
		return nil, err
	}
	return records, nil
}
