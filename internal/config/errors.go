package config

import "fmt"

// NotFoundError is returned when an explicitly-specified (non-default) config
// file or directory does not exist. A missing default path is never an error.
type NotFoundError struct {
	Path string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("config source %q does not exist", e.Path)
}

// InvalidFormatError is returned when a config file is not syntactically
// valid JSON. The underlying decode error is available via [errors.As] or
// Unwrap for diagnostics.
type InvalidFormatError struct {
	Path string
	Err  error
}

func (e *InvalidFormatError) Error() string {
	return fmt.Sprintf("Invalid JSON in config file %q: %v", e.Path, e.Err)
}

func (e *InvalidFormatError) Unwrap() error { return e.Err }

// TypeMismatchError is returned when a config file holds valid JSON whose
// top-level value is not an object. Arrays, strings, numbers, and null cannot
// be merged with the other sources and are rejected outright.
type TypeMismatchError struct {
	Path string
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("config file %q must contain a JSON object", e.Path)
}
