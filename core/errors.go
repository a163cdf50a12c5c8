package core

import "github.com/pkg/errors"

// FieldError pins an error message to one input field; the API layer renders
// these as a field → message map.
type FieldError struct {
	Field string
	Error string
}

// ValidationError carries user-input errors that are safe to return to the
// client, either as a single message or per field.
type ValidationError struct {
	Err    error
	Fields []FieldError
}

func NewValidationError(err error, flds ...FieldError) error {
	return &ValidationError{err, flds}
}

func (err ValidationError) Error() string {
	if err.Err == nil {
		return ""
	}
	return err.Err.Error()
}

// shutdown marks errors no retry can recover from (a broken store, say);
// catching one stops the server.
type shutdown struct {
	message string
}

func NewShutdownError(msg string) error {
	return &shutdown{message: msg}
}

func (s shutdown) Error() string {
	return s.message
}

func IsShutdown(err error) bool {
	_, ok := errors.Cause(err).(*shutdown)
	return ok
}
