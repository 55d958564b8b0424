package services

import "fmt"

// ErrorKind classifies service failures so the HTTP layer can map them to
// status codes without inspecting store internals.
type ErrorKind int

const (
	ErrorValidation ErrorKind = iota
	ErrorNotFound
	ErrorConflict
	ErrorInternal
)

// ServiceError is the only error type the services hand back to handlers.
// Raw store errors are wrapped as the cause and never shown to clients.
type ServiceError struct {
	Kind    ErrorKind
	Message string
	Err     error
}

func (e *ServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *ServiceError) Unwrap() error { return e.Err }

func validationError(msg string) *ServiceError {
	return &ServiceError{Kind: ErrorValidation, Message: msg}
}

func notFoundError(msg string) *ServiceError {
	return &ServiceError{Kind: ErrorNotFound, Message: msg}
}

func conflictError(msg string) *ServiceError {
	return &ServiceError{Kind: ErrorConflict, Message: msg}
}

func internalError(msg string, err error) *ServiceError {
	return &ServiceError{Kind: ErrorInternal, Message: msg, Err: err}
}
