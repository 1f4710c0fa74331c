package application

import (
	"errors"
	"fmt"

	"github.com/rishusinha26/portfolio-backend/internal/domain/repository"
)

// Error kinds. Handlers map them to HTTP status codes with errors.Is.
var (
	ErrValidation     = errors.New("validation error")
	ErrAuthentication = errors.New("authentication error")
	ErrAuthorization  = errors.New("authorization error")
	ErrNotFound       = errors.New("not found")
	ErrPersistence    = errors.New("persistence error")
	ErrNotification   = errors.New("notification error")
	ErrUnavailable    = errors.New("service unavailable")
	ErrNotConfigured  = errors.New("not configured")
)

// Error is a classified failure with a caller-facing message.
type Error struct {
	Kind    error
	Message string
	Fields  map[string]string
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

func newError(kind error, msg string, cause error) *Error {
	return &Error{Kind: kind, Message: msg, Err: cause}
}

// Validation reports caller-fixable input problems keyed by field.
func Validation(msg string, fields map[string]string) *Error {
	return &Error{Kind: ErrValidation, Message: msg, Fields: fields}
}

func NotFound(msg string) *Error { return newError(ErrNotFound, msg, nil) }

func Persistence(msg string, cause error) *Error { return newError(ErrPersistence, msg, cause) }

// fromStore classifies a repository error; notFoundMsg is used for ErrNotFound.
func fromStore(err error, notFoundMsg, failMsg string) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, repository.ErrNotFound) {
		return newError(ErrNotFound, notFoundMsg, err)
	}
	return newError(ErrPersistence, failMsg, err)
}

// MessageOf returns the caller-facing message of err, or fallback.
func MessageOf(err error, fallback string) string {
	var ae *Error
	if errors.As(err, &ae) && ae.Message != "" {
		return ae.Message
	}
	return fallback
}

// FieldsOf returns per-field validation details, if any.
func FieldsOf(err error) map[string]string {
	var ae *Error
	if errors.As(err, &ae) {
		return ae.Fields
	}
	return nil
}
