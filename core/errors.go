package core

import "github.com/pkg/errors"

// FieldError reports a problem with a single input field, e.g. a taken
// username or an unknown app name in a permission set.
type FieldError struct {
	Field string
	Error string
}

// ValidationError carries invalid-input details up to the API layer, where
// its fields render as a field-to-message JSON map.
type ValidationError struct {
	Err    error
	Fields []FieldError
}

func NewValidationError(err error, flds ...FieldError) error {
	return &ValidationError{Err: err, Fields: flds}
}

func (err ValidationError) Error() string {
	if err.Err == nil {
		return ""
	}
	return err.Err.Error()
}

// shutdown marks a fault the service cannot recover from; the HTTP error
// handler signals the main loop to stop when it sees one.
type shutdown struct {
	message string
}

func NewShutdownError(msg string) error {
	return &shutdown{message: msg}
}

func (s shutdown) Error() string {
	return s.message
}

// IsShutdown checks whether err is, or wraps, a shutdown fault.
func IsShutdown(err error) bool {
	_, ok := errors.Cause(err).(*shutdown)
	return ok
}
