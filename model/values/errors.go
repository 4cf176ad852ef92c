package values

import (
	"errors"
	"fmt"
)

// TypeMismatchError is returned when a value cannot be decoded into the
// requested shape, e.g. a struct value into an integer.
type TypeMismatchError struct {
	Path     string
	Expected string
	Actual   string
}

func (e TypeMismatchError) Error() string {
	return fmt.Sprintf("%s: cannot decode %s value into %s", displayPath(e.Path), e.Actual, e.Expected)
}

// MissingFieldError is returned when a composite value lacks a field required
// by the target struct.
type MissingFieldError struct {
	Path      string
	Composite string
	Field     string
}

func (e MissingFieldError) Error() string {
	return fmt.Sprintf("%s: composite %s has no field %q", displayPath(e.Path), e.Composite, e.Field)
}

// UnsupportedShapeError is returned when the requested shape itself cannot
// hold the value, e.g. an absent optional decoded into an int.
type UnsupportedShapeError struct {
	Path   string
	Shape  string
	Reason string
}

func (e UnsupportedShapeError) Error() string {
	return fmt.Sprintf("%s: unsupported shape %s: %s", displayPath(e.Path), e.Shape, e.Reason)
}

func IsTypeMismatchError(err error) bool {
	var target TypeMismatchError
	return errors.As(err, &target)
}

func IsMissingFieldError(err error) bool {
	var target MissingFieldError
	return errors.As(err, &target)
}

func IsUnsupportedShapeError(err error) bool {
	var target UnsupportedShapeError
	return errors.As(err, &target)
}

func displayPath(path string) string {
	if path == "" {
		return "value"
	}
	return path
}

func fieldPath(path string, name string) string {
	if path == "" {
		return name
	}
	return path + "." + name
}

func indexPath(path string, i int) string {
	return fmt.Sprintf("%s[%d]", path, i)
}

func keyPath(path string, key fmt.Stringer) string {
	return fmt.Sprintf("%s[%s]", path, key)
}
