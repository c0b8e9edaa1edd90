package validation

import (
	"fmt"
	"unicode/utf8"

	"task-manager/internal/config"
	"task-manager/internal/domain"
)

// Field names reported in validation errors
const (
	FieldTitle       = "title"
	FieldDescription = "description"
)

// TaskValidator provides validation for TaskRecord input
type TaskValidator struct {
	validator *Validator
}

// NewTaskValidator creates a new task validator with default limits
func NewTaskValidator() *TaskValidator {
	return &TaskValidator{
		validator: NewValidator(),
	}
}

// NewTaskValidatorWithConfig creates a task validator using the configured limits
func NewTaskValidatorWithConfig(cfg *config.Config) *TaskValidator {
	return &TaskValidator{
		validator: NewValidatorWithConfig(cfg),
	}
}

// IsValidPosition reports whether index addresses a task in a list of length tasks
func (tv *TaskValidator) IsValidPosition(index, length int) bool {
	return tv.validator.IsValidIndex(index, length)
}

// ValidateTask validates the title and description of a task about to be created.
// All field problems are collected into a single *ValidationError.
func (tv *TaskValidator) ValidateTask(title, description string) error {
	validationError := NewValidationError()

	tv.validateField(validationError, FieldTitle, title, tv.validator.getTitleMaxLength())
	tv.validateField(validationError, FieldDescription, description, tv.validator.getDescriptionMaxLength())

	if validationError.HasErrors() {
		return validationError
	}
	return nil
}

// ValidateRecord checks a record read back from storage. Length limits are
// an add-time rule and are not applied, so files written under other limits
// still load.
func (tv *TaskValidator) ValidateRecord(record domain.TaskRecord) error {
	if record.IsValid() && utf8.ValidString(record.Title) && utf8.ValidString(record.Description) {
		return nil
	}

	validationError := NewValidationError()
	tv.checkContent(validationError, FieldTitle, record.Title)
	tv.checkContent(validationError, FieldDescription, record.Description)
	return validationError
}

// ValidateRecords validates every stored record and reports the first position that fails
func (tv *TaskValidator) ValidateRecords(records []domain.TaskRecord) error {
	for i, record := range records {
		if err := tv.ValidateRecord(record); err != nil {
			return fmt.Errorf("task %d: %w", i, err)
		}
	}
	return nil
}

// GetValidRecord returns a trimmed record if title and description are valid
func (tv *TaskValidator) GetValidRecord(title, description string) (domain.TaskRecord, error) {
	if err := tv.ValidateTask(title, description); err != nil {
		return domain.TaskRecord{}, err
	}
	return domain.NewTaskRecord(title, description), nil
}

func (tv *TaskValidator) validateField(ve *ValidationError, field, value string, maxLen int) {
	if !tv.checkContent(ve, field, value) {
		return
	}
	trimmed := tv.validator.TrimAndValidateString(value)
	if !tv.validator.IsValidStringLength(trimmed, 1, maxLen) {
		ve.AddInvalidLengthError(field, trimmed, 1, maxLen)
	}
}

// checkContent reports fields that are blank or not valid UTF-8.
// Invalid bytes would not survive encoding to a file unchanged.
func (tv *TaskValidator) checkContent(ve *ValidationError, field, value string) bool {
	if !utf8.ValidString(value) {
		ve.AddInvalidValueError(field, value, "must be valid UTF-8 text")
		return false
	}
	if !tv.validator.IsNonEmptyString(value) {
		ve.AddRequiredError(field)
		return false
	}
	return true
}
