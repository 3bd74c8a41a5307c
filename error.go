package listicle

import (
	"errors"
	"fmt"
)

// Application error codes.
const (
	EINTERNAL = "internal"
	EINVALID  = "invalid"
	ENOTFOUND = "not_found"

	// EFETCH reports a transport or HTTP failure while retrieving a page.
	EFETCH = "fetch"

	// EBACKEND reports that the generative backend failed or was unreachable.
	EBACKEND = "backend"

	// EEXTRACTION reports that the backend answered, but its payload could
	// not be parsed or violated the extraction contract. The raw payload is
	// kept on the error for diagnosis.
	EEXTRACTION = "extraction"
)

// Error represents an application-specific error.
type Error struct {
	// Machine-readable error code.
	Code string

	// Human-readable error message.
	Message string

	// Raw backend response, set for EEXTRACTION errors.
	Payload string

	// Underlying cause, if any.
	Err error
}

// Error implements the error interface. Not used by the application otherwise.
func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("listicle error: code=%s message=%s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("listicle error: code=%s message=%s", e.Code, e.Message)
}

// Unwrap returns the underlying cause so errors.Is can see through to
// context or transport errors.
func (e *Error) Unwrap() error {
	return e.Err
}

// ErrorCode unwraps an application error and returns its code.
// Non-application errors always return EINTERNAL.
func ErrorCode(err error) string {
	var e *Error
	if err == nil {
		return ""
	} else if errors.As(err, &e) {
		return e.Code
	}
	return EINTERNAL
}

// ErrorMessage unwraps an application error and returns its message.
// Non-application errors always return "Internal error.".
func ErrorMessage(err error) string {
	var e *Error
	if err == nil {
		return ""
	} else if errors.As(err, &e) {
		return e.Message
	}
	return "Internal error."
}

// ErrorPayload returns the raw backend payload attached to an application
// error, or "" if there is none.
func ErrorPayload(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Payload
	}
	return ""
}

// Errorf is a helper function to return an Error with a given code and formatted message.
func Errorf(code string, format string, args ...interface{}) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// WrapError returns an Error with the given code that wraps err.
func WrapError(code string, err error, format string, args ...interface{}) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Err:     err,
	}
}
