// Package domainerrors defines the closed error taxonomy shared by every
// trustplane primitive. Components never invent ad-hoc error types; they pick
// a code from this set so integrating services can build uniform handling
// (e.g. map CodeCrossWorkspaceDenied to HTTP 403 everywhere).
package domainerrors

import (
	"errors"
	"fmt"
)

// Code identifies the violated invariant. The set is closed: adding a code is
// an API change for every consumer of the library.
type Code string

const (
	CodeAuthorityMissing     Code = "AUTHORITY_MISSING"
	CodeWorkspaceMissing     Code = "WORKSPACE_MISSING"
	CodeActorMissing         Code = "ACTOR_MISSING"
	CodeEnvMissing           Code = "ENV_MISSING"
	CodeAppMissing           Code = "APP_MISSING"
	CodeVersionMissing       Code = "VERSION_MISSING"
	CodeDataClassInvalid     Code = "DATA_CLASS_INVALID"
	CodeCrossWorkspaceDenied Code = "CROSS_WORKSPACE_DENIED"
	CodeAmbiguousResolution  Code = "AMBIGUOUS_RESOLUTION"
	CodeProhibitedField      Code = "PROHIBITED_FIELD"
	CodePondusClientMissing  Code = "PONDUS_CLIENT_MISSING"
	CodeAuditWriteFailed     Code = "AUDIT_WRITE_FAILED"
	CodeInvalidInput         Code = "INVALID_INPUT"
)

// Error carries a stable code, a free-form message, and optional structured
// details. It wraps an underlying cause when constructed via Wrap.
type Error struct {
	Code    Code
	Message string
	Details map[string]any
	cause   error
}

func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error { return e.cause }

// Is allows errors.Is comparisons against another *Error by code.
func (e *Error) Is(target error) bool {
	var t *Error
	if errors.As(target, &t) {
		return e.Code == t.Code
	}
	return false
}

// New constructs a coded error.
func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Newf constructs a coded error with a formatted message.
func Newf(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap attaches a code and message to an underlying cause. The cause remains
// reachable through errors.Unwrap / errors.Is.
func Wrap(err error, code Code, message string) *Error {
	return &Error{Code: code, Message: message, cause: err}
}

// WithDetail returns the same error with a structured detail attached.
// Details are advisory; the code is the contract.
func (e *Error) WithDetail(key string, value any) *Error {
	if e.Details == nil {
		e.Details = make(map[string]any)
	}
	e.Details[key] = value
	return e
}

// HasCode reports whether err (or anything it wraps) carries the given code.
func HasCode(err error, code Code) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Code == code
	}
	return false
}

// CodeOf extracts the code from err, or "" when err carries none.
func CodeOf(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}
