package services

import "errors"

// Error kinds. Match with errors.Is.
var (
	ErrValidation   = errors.New("validation failed")
	ErrUnauthorized = errors.New("unauthorized")
	ErrForbidden    = errors.New("forbidden")
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
)

// Error is a use-case failure with a client-facing message.
type Error struct {
	Kind    error
	Message string
}

func (e *Error) Error() string {
	if e.Message == "" {
		return e.Kind.Error()
	}
	return e.Kind.Error() + ": " + e.Message
}

func (e *Error) Is(target error) bool {
	return target == e.Kind
}

func newError(kind error, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

func validationError(message string) *Error { return newError(ErrValidation, message) }
func unauthorizedError(message string) *Error { return newError(ErrUnauthorized, message) }
func forbiddenError(message string) *Error { return newError(ErrForbidden, message) }
func notFoundError(message string) *Error { return newError(ErrNotFound, message) }
func conflictError(message string) *Error { return newError(ErrConflict, message) }
