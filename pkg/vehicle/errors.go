package vehicle

import (
	"errors"
	"fmt"
)

// ErrNotFound matches any NotFoundError via errors.Is.
var ErrNotFound = errors.New("vehicle not found")

// ValidationError reports a malformed VIN or an out-of-range record field.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// NotFoundError reports a well-formed VIN that is absent from the store.
type NotFoundError struct {
	VIN string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("Vehicle with VIN %s not found", e.VIN)
}

// Is lets errors.Is(err, ErrNotFound) match.
func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// DatasetUnavailableError reports a dataset source that could not be opened
// or read at all. Fatal at startup.
type DatasetUnavailableError struct {
	Source string
	Err    error
}

func (e *DatasetUnavailableError) Error() string {
	return fmt.Sprintf("dataset %s unavailable: %v", e.Source, e.Err)
}

func (e *DatasetUnavailableError) Unwrap() error {
	return e.Err
}

// IsValidation reports whether err is or wraps a ValidationError.
func IsValidation(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}

// IsNotFound reports whether err is or wraps a NotFoundError.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
