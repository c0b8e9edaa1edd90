package cli

import (
	"bytes"
	stderrors "errors"
	"os"
	"testing"

	"github.com/stretchr/testify/assert"

	apperrors "task-manager/internal/errors"
	"task-manager/internal/logging"
	"task-manager/internal/validation"
)

func TestErrorHandler_Handle(t *testing.T) {
	eh := NewErrorHandler()

	requiredTitle := validation.NewValidationError()
	requiredTitle.AddRequiredError("title")

	tests := []struct {
		name      string
		operation string
		err       error
		expected  string
	}{
		{
			name:      "Validation error",
			operation: "add task",
			err:       apperrors.NewValidationError("title is required", requiredTitle),
			expected:  "failed to add task: title is required",
		},
		{
			name:      "Index error",
			operation: "delete task",
			err:       apperrors.NewIndexError(4, 0),
			expected:  "failed to delete task: no task at position 4: the list is empty",
		},
		{
			name:      "Persistence error",
			operation: "load tasks",
			err:       apperrors.NewPersistenceError("load tasks from", "tasks.dat", stderrors.New("boom")),
			expected:  "failed to load tasks: could not load tasks from tasks.dat: boom",
		},
		{
			name:      "Permission error",
			operation: "save tasks",
			err:       apperrors.NewPermissionError("save tasks to", "tasks.dat", os.ErrPermission),
			expected:  "failed to save tasks: permission denied: could not save tasks to tasks.dat",
		},
		{
			name:      "Timeout error",
			operation: "save tasks",
			err:       apperrors.NewTimeoutError("save tasks", "10s"),
			expected:  "failed to save tasks: The operation timed out. Please try again.",
		},
		{
			name:      "Regular error",
			operation: "process",
			err:       stderrors.New("regular error"),
			expected:  "failed to process: regular error",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.EqualError(t, eh.Handle(tt.operation, tt.err), tt.expected)
		})
	}
}

func TestErrorHandler_HandleKeepsCause(t *testing.T) {
	eh := NewErrorHandler()
	err := eh.Handle("load tasks", apperrors.NewPersistenceError("load tasks from", "x", os.ErrNotExist))

	assert.True(t, stderrors.Is(err, os.ErrNotExist))
	assert.True(t, apperrors.IsErrorType(err, apperrors.ErrorTypePersistence))
}

func TestErrorHandler_LogsSystemErrorsOnly(t *testing.T) {
	t.Setenv("TM_DEBUG", "1")
	var buf bytes.Buffer
	previous := logging.SetOutput(&buf)
	defer logging.SetOutput(previous)

	eh := NewErrorHandler()
	eh.Handle("delete task", apperrors.NewIndexError(3, 1))
	assert.Empty(t, buf.String(), "user mistakes are not logged")

	eh.Handle("save tasks", apperrors.NewPersistenceError("save tasks to", "x", stderrors.New("disk full")))
	assert.Contains(t, buf.String(), "save tasks failed [PERSISTENCE_ERROR]")
	assert.Contains(t, buf.String(), "disk full")
}

func TestErrorHandler_IsIndexError(t *testing.T) {
	eh := NewErrorHandler()

	assert.True(t, eh.IsIndexError(apperrors.NewIndexError(0, 0)))
	assert.True(t, eh.IsIndexError(eh.Handle("show task", apperrors.NewIndexError(0, 0))))
	assert.False(t, eh.IsIndexError(apperrors.NewValidationError("bad", nil)))
	assert.False(t, eh.IsIndexError(stderrors.New("bad")))
}
