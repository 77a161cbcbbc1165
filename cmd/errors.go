package cmd

import (
	"fmt"
	"strings"

	sharedErrors "github.com/stacktrail/guardrail/internal/shared/errors"
)

// InvalidDomainError indicates a scan target that could not be normalized.
type InvalidDomainError struct {
	Input string
	Err   error
}

func (e *InvalidDomainError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("invalid domain %q", e.Input)
	}
	return fmt.Sprintf("invalid domain %q: %v", e.Input, e.Err)
}

func (e *InvalidDomainError) Unwrap() error {
	return e.Err
}

// UnsupportedFormatError signals an output or input format the command cannot handle.
type UnsupportedFormatError struct {
	Format  string
	Allowed []string
}

func (e *UnsupportedFormatError) Error() string {
	if len(e.Allowed) == 0 {
		return fmt.Sprintf("unsupported format %q", e.Format)
	}
	return fmt.Sprintf("unsupported format %q (must be one of: %s)", e.Format, strings.Join(e.Allowed, ", "))
}

func (e *UnsupportedFormatError) Unwrap() error {
	return sharedErrors.ErrUnsupportedFormat
}
