package enum

import (
	"errors"
	"fmt"
	"strings"
)

// Validation errors returned by New and Extend.
var (
	ErrDuplicateValue = errors.New("enum values must be unique")
	ErrDuplicateKey   = errors.New("enum keys must be unique")
	ErrInvalidValue   = errors.New("enum values must be numbers or strings")
)

// ValidationError reports which keys violated a construction rule. Err is
// one of the sentinel errors of this package, so errors.Is works on the
// wrapped value.
type ValidationError struct {
	Err  error
	Keys []string
}

func (e *ValidationError) Error() string {
	if len(e.Keys) == 0 {
		return e.Err.Error()
	}
	return fmt.Sprintf("%s (keys: %s)", e.Err, strings.Join(e.Keys, ", "))
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}
