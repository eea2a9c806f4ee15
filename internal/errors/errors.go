package errors

import (
	"errors"
	"fmt"

	"github.com/ginjaninja78/EM63-INI-converter/internal/converter"
	"github.com/ginjaninja78/EM63-INI-converter/internal/validation"
)

// Exit codes for the converter CLI
const (
	ExitSuccess      = 0
	ExitGeneralError = 1
	ExitSettings     = 2
	ExitShape        = 3
	ExitSchema       = 4
	ExitConfigError  = 5
)

// ConverterError wraps an error with an exit code
type ConverterError struct {
	Code    int
	Message string
	Cause   error
}

func (e *ConverterError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Cause)
	}
	return e.Message
}

func (e *ConverterError) Unwrap() error {
	return e.Cause
}

// ExitCode returns the exit code for this error
func (e *ConverterError) ExitCode() int {
	return e.Code
}

// New creates a new ConverterError
func New(code int, message string) *ConverterError {
	return &ConverterError{
		Code:    code,
		Message: message,
	}
}

// Wrap wraps an existing error with a ConverterError
func Wrap(code int, message string, cause error) *ConverterError {
	return &ConverterError{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// ConfigError returns an error for configuration issues
func ConfigError(message string, cause error) *ConverterError {
	return Wrap(ExitConfigError, message, cause)
}

// InputError returns an error for an input that could not be read
func InputError(source string, cause error) *ConverterError {
	return Wrap(ExitGeneralError, fmt.Sprintf("failed to read %s", source), cause)
}

// GetExitCode extracts the exit code from an error
func GetExitCode(err error) int {
	if err == nil {
		return ExitSuccess
	}

	var convErr *ConverterError
	if errors.As(err, &convErr) {
		return convErr.ExitCode()
	}

	var settingsErr *validation.SettingsError
	if errors.As(err, &settingsErr) {
		return ExitSettings
	}

	var shapeErr *validation.ShapeError
	if errors.As(err, &shapeErr) {
		return ExitShape
	}

	var schemaErr *converter.SchemaError
	if errors.As(err, &schemaErr) {
		return ExitSchema
	}

	return ExitGeneralError
}

// Kind names the error category for logs and summaries.
func Kind(err error) string {
	switch GetExitCode(err) {
	case ExitSuccess:
		return ""
	case ExitSettings:
		return "settings"
	case ExitShape:
		return "shape"
	case ExitSchema:
		return "schema"
	case ExitConfigError:
		return "config"
	default:
		return "general"
	}
}
