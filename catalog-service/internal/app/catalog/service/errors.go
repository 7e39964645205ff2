package service

import (
	"errors"
	"fmt"
)

// Error kinds. Handlers map them to status codes with errors.Is.
var (
	ErrValidation  = errors.New("validation error")
	ErrNotFound    = errors.New("not found")
	ErrConflict    = errors.New("conflict")
	ErrPersistence = errors.New("persistence error")
)

// Error is a classified failure. Message is safe to show to API clients;
// Err is the underlying cause and is only logged.
type Error struct {
	Kind    error
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() []error {
	if e.Err != nil {
		return []error{e.Kind, e.Err}
	}
	return []error{e.Kind}
}

func validationError(message string) error {
	return &Error{Kind: ErrValidation, Message: message}
}

func notFoundError(message string) error {
	return &Error{Kind: ErrNotFound, Message: message}
}

func conflictError(message string, cause error) error {
	return &Error{Kind: ErrConflict, Message: message, Err: cause}
}

func persistenceError(message string, cause error) error {
	return &Error{Kind: ErrPersistence, Message: message, Err: cause}
}

// PersistenceError classifies a failure that happened before the service was
// reached, such as an id that cannot be parsed.
func PersistenceError(message string, cause error) error {
	return persistenceError(message, cause)
}

// Message returns the client-facing message carried by err, or fallback.
func Message(err error, fallback string) string {
	var e *Error
	if errors.As(err, &e) && e.Message != "" {
		return e.Message
	}
	return fallback
}
