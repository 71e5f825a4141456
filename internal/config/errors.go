package config

import (
	"errors"
	"fmt"
)

// Errors returned by configuration operations.
var (
	// ErrConfigFileUnavailable indicates a configuration file could not be
	// opened.
	ErrConfigFileUnavailable = errors.New("config file unavailable")

	// ErrUnsupportedFormat indicates a settings file extension that has no
	// decoder.
	ErrUnsupportedFormat = errors.New("unsupported settings format")

	// ErrValidationFailed indicates settings that fail validation.
	ErrValidationFailed = errors.New("validation failed")
)

// ConfigFileUnavailableError reports a file that could not be opened.
type ConfigFileUnavailableError struct {
	Path string
	Err  error
}

// Error implements the error interface.
func (e *ConfigFileUnavailableError) Error() string {
	return fmt.Sprintf("config file %s unavailable: %v", e.Path, e.Err)
}

// Unwrap returns the underlying error.
func (e *ConfigFileUnavailableError) Unwrap() error {
	return e.Err
}

// Is matches ErrConfigFileUnavailable.
func (e *ConfigFileUnavailableError) Is(target error) bool {
	return target == ErrConfigFileUnavailable
}

// ParseError represents an error while parsing a configuration file.
type ParseError struct {
	// Path is the file path that failed to parse.
	Path string
	// Line is the line number where the error occurred (if available).
	Line int
	// Message describes the parse error.
	Message string
	// Err is the underlying error.
	Err error
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	if e.Line > 0 {
		return fmt.Sprintf("parse error in %s at line %d: %s", e.Path, e.Line, e.Message)
	}
	return fmt.Sprintf("parse error in %s: %s", e.Path, e.Message)
}

// Unwrap returns the underlying error.
func (e *ParseError) Unwrap() error {
	return e.Err
}

// ValidationError describes a validation failure for a setting.
type ValidationError struct {
	// Field is the setting that failed validation.
	Field string
	// Message describes the validation error.
	Message string
	// Value is the invalid value.
	Value any
}

// Error implements the error interface.
func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: %s (value: %v)", e.Field, e.Message, e.Value)
}

// Is matches ErrValidationFailed.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidationFailed
}
