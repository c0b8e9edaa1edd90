package validation

import (
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"task-manager/internal/config"
	"task-manager/internal/domain"
)

func TestTaskValidator_ValidateTask(t *testing.T) {
	validator := NewTaskValidator()

	tests := []struct {
		name        string
		title       string
		description string
		expectError bool
		fields      []string
		errorType   ValidationErrorType
	}{
		{"Valid task", "Buy milk", "2%  whole", false, nil, ""},
		{"Multi-line description", "Pay bills", "due Friday\nmulti-line", false, nil, ""},
		{"Empty title", "", "x", true, []string{FieldTitle}, ErrorTypeRequired},
		{"Empty description", "x", "", true, []string{FieldDescription}, ErrorTypeRequired},
		{"Whitespace only", "   ", "   ", true, []string{FieldTitle, FieldDescription}, ErrorTypeRequired},
		{"Title too long", strings.Repeat("a", 256), "x", true, []string{FieldTitle}, ErrorTypeInvalidLength},
		{"Title at limit", strings.Repeat("a", 255), "x", false, nil, ""},
		{"Description too long", "x", strings.Repeat("d", 10001), true, []string{FieldDescription}, ErrorTypeInvalidLength},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.ValidateTask(tt.title, tt.description)
			if !tt.expectError {
				assert.NoError(t, err)
				return
			}

			require.Error(t, err)
			var validationErr *ValidationError
			require.True(t, errors.As(err, &validationErr), "expected *ValidationError, got %T", err)
			require.Len(t, validationErr.Errors, len(tt.fields))
			for i, field := range tt.fields {
				assert.Equal(t, field, validationErr.Errors[i].Field)
				assert.Equal(t, tt.errorType, validationErr.Errors[i].Type)
			}
		})
	}
}

func TestTaskValidator_WithConfig(t *testing.T) {
	cfg := config.NewConfig()
	cfg.Validation.TitleMaxLength = 5
	validator := NewTaskValidatorWithConfig(cfg)

	assert.NoError(t, validator.ValidateTask("short", "d"))
	assert.Error(t, validator.ValidateTask("longer", "d"))
}

func TestTaskValidator_ValidateRecords(t *testing.T) {
	validator := NewTaskValidator()

	valid := []domain.TaskRecord{
		{Title: "A", Description: "a"},
		{Title: "B", Description: "b"},
	}
	assert.NoError(t, validator.ValidateRecords(valid))
	assert.NoError(t, validator.ValidateRecords(nil))

	invalid := append(valid, domain.TaskRecord{Title: "C", Description: " "})
	err := validator.ValidateRecords(invalid)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "task 2")

	var validationErr *ValidationError
	assert.True(t, errors.As(err, &validationErr))
}

func TestTaskValidator_ValidateRecord_IgnoresLengthLimits(t *testing.T) {
	cfg := config.NewConfig()
	cfg.Validation.TitleMaxLength = 5
	cfg.Validation.DescriptionMaxLength = 5
	validator := NewTaskValidatorWithConfig(cfg)

	long := domain.TaskRecord{Title: strings.Repeat("t", 300), Description: strings.Repeat("d", 20000)}
	assert.NoError(t, validator.ValidateRecord(long))
	assert.Error(t, validator.ValidateTask(long.Title, long.Description))
}

func TestTaskValidator_ValidateRecord(t *testing.T) {
	validator := NewTaskValidator()

	tests := []struct {
		name   string
		record domain.TaskRecord
		fields []string
		types  []ValidationErrorType
	}{
		{"Valid", domain.TaskRecord{Title: "A", Description: "a"}, nil, nil},
		{"Blank title", domain.TaskRecord{Title: " ", Description: "a"}, []string{FieldTitle}, []ValidationErrorType{ErrorTypeRequired}},
		{"Both blank", domain.TaskRecord{}, []string{FieldTitle, FieldDescription}, []ValidationErrorType{ErrorTypeRequired, ErrorTypeRequired}},
		{"Invalid UTF-8", domain.TaskRecord{Title: "caf\xe9", Description: "a"}, []string{FieldTitle}, []ValidationErrorType{ErrorTypeInvalidValue}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := validator.ValidateRecord(tt.record)
			if tt.fields == nil {
				assert.NoError(t, err)
				return
			}

			var validationErr *ValidationError
			require.True(t, errors.As(err, &validationErr))
			require.Len(t, validationErr.Errors, len(tt.fields))
			for i, fe := range validationErr.Errors {
				assert.Equal(t, tt.fields[i], fe.Field)
				assert.Equal(t, tt.types[i], fe.Type)
			}
		})
	}
}

func TestTaskValidator_ValidateTask_InvalidUTF8(t *testing.T) {
	err := NewTaskValidator().ValidateTask("caf\xe9", "bytes \xff\xfe")

	var validationErr *ValidationError
	require.True(t, errors.As(err, &validationErr))
	require.Len(t, validationErr.Errors, 2)
	for _, fe := range validationErr.Errors {
		assert.Equal(t, ErrorTypeInvalidValue, fe.Type)
		assert.Contains(t, fe.Message, "must be valid UTF-8 text")
	}
}

func TestTaskValidator_GetValidRecord(t *testing.T) {
	validator := NewTaskValidator()

	record, err := validator.GetValidRecord("  Title ", "\n body \n")
	require.NoError(t, err)
	assert.Equal(t, domain.TaskRecord{Title: "Title", Description: "body"}, record)

	_, err = validator.GetValidRecord("", "body")
	assert.Error(t, err)
}

func TestTaskValidator_IsValidPosition(t *testing.T) {
	tv := NewTaskValidator()

	assert.True(t, tv.IsValidPosition(0, 2))
	assert.True(t, tv.IsValidPosition(1, 2))
	assert.False(t, tv.IsValidPosition(2, 2))
	assert.False(t, tv.IsValidPosition(-1, 2))
}
