// Package store holds the in-memory, ordered list of tasks.
//
// A TaskStore has a single owner and is not safe for concurrent use. Tasks are
// addressed by their zero-based position; removing a task shifts every later
// task down by one.
package store

import (
	"task-manager/internal/domain"
	"task-manager/internal/errors"
	"task-manager/internal/validation"
)

// TaskStore is the ordered collection of all tasks of a session
type TaskStore struct {
	records   []domain.TaskRecord
	validator *validation.TaskValidator
}

// New creates an empty store validating input with the default limits
func New() *TaskStore {
	return NewWithValidator(validation.NewTaskValidator())
}

// NewWithValidator creates an empty store that validates input with tv
func NewWithValidator(tv *validation.TaskValidator) *TaskStore {
	return &TaskStore{
		records:   make([]domain.TaskRecord, 0),
		validator: tv,
	}
}

// Add appends a new task built from the trimmed title and description.
// The store is unchanged when validation fails.
func (s *TaskStore) Add(title, description string) (domain.TaskRecord, error) {
	record, err := s.validator.GetValidRecord(title, description)
	if err != nil {
		if ve, ok := err.(*validation.ValidationError); ok {
			return domain.TaskRecord{}, errors.NewValidationError(ve.GetUserFriendlyMessage(), ve)
		}
		return domain.TaskRecord{}, err
	}

	s.records = append(s.records, record)
	return record, nil
}

// RemoveAt removes the task at index and returns it.
// An index outside [0, Len()) is an error of type errors.ErrorTypeIndex.
func (s *TaskStore) RemoveAt(index int) (domain.TaskRecord, error) {
	if !s.validator.IsValidPosition(index, len(s.records)) {
		return domain.TaskRecord{}, errors.NewIndexError(index, len(s.records))
	}

	removed := s.records[index]
	s.records = append(s.records[:index], s.records[index+1:]...)
	return removed, nil
}

// Get returns the task at index, or false if there is none
func (s *TaskStore) Get(index int) (domain.TaskRecord, bool) {
	if !s.validator.IsValidPosition(index, len(s.records)) {
		return domain.TaskRecord{}, false
	}
	return s.records[index], true
}

// All returns a copy of every task in insertion order
func (s *TaskStore) All() []domain.TaskRecord {
	out := make([]domain.TaskRecord, len(s.records))
	copy(out, s.records)
	return out
}

// ReplaceAll discards the current tasks and installs a copy of records.
// Callers validate records beforehand; nothing here can fail part way.
func (s *TaskStore) ReplaceAll(records []domain.TaskRecord) {
	next := make([]domain.TaskRecord, len(records))
	copy(next, records)
	s.records = next
}

// Len returns the number of tasks
func (s *TaskStore) Len() int {
	return len(s.records)
}
