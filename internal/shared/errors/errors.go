package errors

import "errors"

// Domain errors
var (
	// Assessment input errors
	ErrUnknownBusinessType   = errors.New("unknown business type")
	ErrUnknownRevenueRange   = errors.New("unknown revenue range")
	ErrUnknownDowntimeImpact = errors.New("unknown downtime impact")
	ErrInvalidEmployeeCount  = errors.New("employee count must be positive")
	ErrUnknownChecklistKey   = errors.New("unknown checklist key")
	ErrInvalidAnswer         = errors.New("answer must be yes, no, partial or enforced")
	ErrAnswersNotMapping     = errors.New("answers must be an object")

	// Scan errors
	ErrEmptyDomain   = errors.New("domain cannot be empty")
	ErrInvalidDomain = errors.New("invalid domain")

	// File errors
	ErrUnsupportedFormat     = errors.New("unsupported file format")
	ErrSerializationFailed   = errors.New("serialization failed")
	ErrDeserializationFailed = errors.New("deserialization failed")

	// Validation errors
	ErrValidation      = errors.New("validation error")
	ErrInvalidInput    = errors.New("invalid input")
	ErrMissingRequired = errors.New("missing required field")
)
