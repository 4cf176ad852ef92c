package flow

import (
	"errors"
	"fmt"
)

// InvalidLengthError is returned when an Address or Identifier is built from
// input of the wrong size.
type InvalidLengthError struct {
	Kind     string
	Expected int
	Actual   int
	// Hex is true if the lengths are counted in hex digits rather than bytes.
	Hex bool
}

func (e InvalidLengthError) Error() string {
	if e.Hex {
		return fmt.Sprintf("invalid %s length: expected at most %d hex digits, got %d", e.Kind, e.Expected, e.Actual)
	}
	return fmt.Sprintf("invalid %s length: expected %d bytes, got %d", e.Kind, e.Expected, e.Actual)
}

// InvalidFormatError is returned when the textual form of an Address or
// Identifier cannot be parsed.
type InvalidFormatError struct {
	Kind  string
	Input string
	Err   error
}

func (e InvalidFormatError) Error() string {
	return fmt.Sprintf("invalid %s format %q: %v", e.Kind, e.Input, e.Err)
}

func (e InvalidFormatError) Unwrap() error {
	return e.Err
}

// IsInvalidLengthError returns whether err is (or wraps) an InvalidLengthError.
func IsInvalidLengthError(err error) bool {
	var target InvalidLengthError
	return errors.As(err, &target)
}

// IsInvalidFormatError returns whether err is (or wraps) an InvalidFormatError.
func IsInvalidFormatError(err error) bool {
	var target InvalidFormatError
	return errors.As(err, &target)
}
