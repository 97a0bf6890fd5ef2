// Package errors provides the structured error system shared by staffd and staffctl.
// Every error carries a domain, a code unique within that domain and the HTTP status
// it maps to, so repository failures can travel unchanged up to the API layer.
package errors

import (
	"errors"
	"fmt"
)

// Code represents a unique error code within a domain
type Code string

// Domain represents an error domain (e.g., "department", "validation", "storage")
type Domain string

// Error domains
const (
	DomainDepartment Domain = "department"
	DomainEmployee   Domain = "employee"
	DomainEntity     Domain = "entity"
	DomainStorage    Domain = "storage"
	DomainDatabase   Domain = "database"
	DomainValidation Domain = "validation"
	DomainBackup     Domain = "backup"
	DomainInternal   Domain = "internal"
)

// Error represents a structured error with domain, code, and HTTP status
type Error struct {
	Domain Domain `json:"domain"`
	Code   Code   `json:"code"`

	// Message is a human-readable error message
	Message string `json:"message"`

	// Field names the entity field a validation error refers to, if any
	Field string `json:"field,omitempty"`

	HTTPStatus int `json:"-"`

	cause error
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s.%s: %s: %v", e.Domain, e.Code, e.Message, e.cause)
	}
	return fmt.Sprintf("%s.%s: %s", e.Domain, e.Code, e.Message)
}

// Unwrap returns the underlying error for errors.Is and errors.As support
func (e *Error) Unwrap() error {
	return e.cause
}

// Is reports whether target has the same domain and code. Message, field
// and cause are ignored so sentinels match their refined copies.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Domain == t.Domain && e.Code == t.Code
}

func (e *Error) clone() *Error {
	c := *e
	return &c
}

// WithCause returns a copy of the error with the underlying cause attached
func (e *Error) WithCause(cause error) *Error {
	c := e.clone()
	c.cause = cause
	return c
}

// WithMessage returns a copy of the error with a custom message
func (e *Error) WithMessage(message string) *Error {
	c := e.clone()
	c.Message = message
	return c
}

// WithMessagef returns a copy of the error with a formatted custom message
func (e *Error) WithMessagef(format string, args ...interface{}) *Error {
	return e.WithMessage(fmt.Sprintf(format, args...))
}

// WithField returns a copy of the error tagged with the offending field
func (e *Error) WithField(field string) *Error {
	c := e.clone()
	c.Field = field
	return c
}

// New creates a new Error with the given parameters
func New(domain Domain, code Code, httpStatus int, message string) *Error {
	return &Error{
		Domain:     domain,
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
	}
}

// Wrap wraps an existing error with an Error
func Wrap(err error, domain Domain, code Code, httpStatus int, message string) *Error {
	return &Error{
		Domain:     domain,
		Code:       code,
		Message:    message,
		HTTPStatus: httpStatus,
		cause:      err,
	}
}

// GetHTTPStatus returns the HTTP status code for an error.
// If the error is not an *Error, it returns 500 (Internal Server Error).
func GetHTTPStatus(err error) int {
	var e *Error
	if errors.As(err, &e) {
		return e.HTTPStatus
	}
	return 500
}

// GetCode returns the error code if the error is an *Error, otherwise empty string
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}

// GetDomain returns the error domain if the error is an *Error, otherwise empty string
func GetDomain(err error) Domain {
	var e *Error
	if errors.As(err, &e) {
		return e.Domain
	}
	return ""
}

// Is checks if an error matches a target error (delegates to errors.Is)
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target (delegates to errors.As)
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}
