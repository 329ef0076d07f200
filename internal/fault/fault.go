// Package fault defines the error kinds raised while building and running a mission.
package fault

import (
	"errors"
	"fmt"
)

// ConfigurationError reports a malformed or out-of-range mission or scenario setting.
// It is fatal and raised before any world generation starts.
type ConfigurationError struct {
	Field  string
	Reason string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("configuration: %s: %s", e.Field, e.Reason)
}

// Configf builds a ConfigurationError for field.
func Configf(field, format string, args ...any) error {
	return &ConfigurationError{Field: field, Reason: fmt.Sprintf(format, args...)}
}

// InferenceError reports a classifier failure for a single point.
type InferenceError struct {
	Index int
	Err   error
}

func (e *InferenceError) Error() string {
	return fmt.Sprintf("inference failed at point %d: %v", e.Index, e.Err)
}

func (e *InferenceError) Unwrap() error { return e.Err }

// ExportError reports an output sink that could not be written.
type ExportError struct {
	Path string
	Err  error
}

func (e *ExportError) Error() string {
	if e.Path == "" {
		return fmt.Sprintf("export: %v", e.Err)
	}
	return fmt.Sprintf("export %s: %v", e.Path, e.Err)
}

func (e *ExportError) Unwrap() error { return e.Err }

// IsConfiguration reports whether err carries a ConfigurationError.
func IsConfiguration(err error) bool {
	var ce *ConfigurationError
	return errors.As(err, &ce)
}

// IsInference reports whether err carries an InferenceError.
func IsInference(err error) bool {
	var ie *InferenceError
	return errors.As(err, &ie)
}

// IsExport reports whether err carries an ExportError.
func IsExport(err error) bool {
	var ee *ExportError
	return errors.As(err, &ee)
}
