package cli

import (
	"fmt"

	"task-manager/internal/errors"
	"task-manager/internal/logging"
)

// ErrorHandler turns errors from the api layer into messages for the user
type ErrorHandler struct{}

// NewErrorHandler creates a new error handler
func NewErrorHandler() *ErrorHandler {
	return &ErrorHandler{}
}

// Handle prefixes the user-facing message with the failed operation.
// The original error stays reachable through errors.Unwrap.
func (eh *ErrorHandler) Handle(operation string, err error) error {
	if errors.ShouldLogError(err) {
		logging.Debugf("%s failed [%s]: %v\n", operation, errors.GetErrorCode(err), err)
	}

	if errors.IsAppError(err) {
		return &handledError{
			message: fmt.Sprintf("failed to %s: %s", operation, errors.GetUserMessage(err)),
			cause:   err,
		}
	}

	return fmt.Errorf("failed to %s: %w", operation, err)
}

// IsIndexError checks if an error reports a position outside the list
func (eh *ErrorHandler) IsIndexError(err error) bool {
	return errors.IsErrorType(err, errors.ErrorTypeIndex)
}

type handledError struct {
	message string
	cause   error
}

func (e *handledError) Error() string { return e.message }

func (e *handledError) Unwrap() error { return e.cause }
