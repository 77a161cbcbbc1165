package checker

import (
	"errors"
	"fmt"
)

var (
	// ErrNameNotFound is returned when the queried name does not exist (NXDOMAIN).
	ErrNameNotFound = errors.New("name does not exist")
	// ErrNoNameservers is returned when a resolver has no servers to query.
	ErrNoNameservers = errors.New("no nameservers configured")
)

// LookupError describes a failed DNS query.
type LookupError struct {
	Name string
	Type string
	Err  error
}

func (e *LookupError) Error() string {
	return fmt.Sprintf("lookup %s %s: %v", e.Type, e.Name, e.Err)
}

func (e *LookupError) Unwrap() error {
	return e.Err
}

// IsNotFound reports whether err means the queried name does not exist.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNameNotFound)
}
