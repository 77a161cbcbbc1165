package assessment

import (
	"errors"
	"fmt"

	sharedErrors "github.com/stacktrail/guardrail/internal/shared/errors"
)

// ValidationError describes a single rejected input field.
type ValidationError struct {
	Field string
	Value string
	Err   error
}

func newValidationError(field, value string, err error) *ValidationError {
	return &ValidationError{Field: field, Value: value, Err: err}
}

func (e *ValidationError) Error() string {
	if e.Value == "" {
		return fmt.Sprintf("%s: %v", e.Field, e.Err)
	}
	return fmt.Sprintf("%s %q: %v", e.Field, e.Value, e.Err)
}

// Unwrap exposes both the generic validation sentinel and the specific cause.
func (e *ValidationError) Unwrap() []error {
	return []error{sharedErrors.ErrValidation, e.Err}
}

func joinErrors(errs []error) error {
	switch len(errs) {
	case 0:
		return nil
	case 1:
		return errs[0]
	default:
		return errors.Join(errs...)
	}
}
