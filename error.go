package sitedigest

import (
	"errors"
	"fmt"
)

// Application error codes. They map directly onto the failure modes of the
// pipeline: remote fetches, document parsing, the summarization API, and
// local file output.
const (
	EFETCH    = "fetch_error"    // remote resource could not be retrieved
	EPARSE    = "parse_error"    // sitemap or HTML could not be parsed
	EAPI      = "api_error"      // summarization call failed or returned an unexpected shape
	EIO       = "io_error"       // local file write failed
	EINVALID  = "invalid"        // validation failed
	ENOTFOUND = "not_found"      // entity does not exist
	EINTERNAL = "internal"       // internal error
)

// Error represents an application-specific error. Application errors can be
// unwrapped by the caller to extract the machine-readable code and a
// human-readable message.
type Error struct {
	// Code is the machine-readable error code.
	Code string

	// Message is a human-readable message.
	Message string
}

// Error implements the error interface. Not used by the application
// otherwise.
func (e *Error) Error() string {
	return fmt.Sprintf("sitedigest error: code=%s message=%s", e.Code, e.Message)
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
// Non-application errors always return "Internal error".
func ErrorMessage(err error) string {
	var e *Error
	if err == nil {
		return ""
	} else if errors.As(err, &e) {
		return e.Message
	}
	return "Internal error."
}

// Errorf is a helper function to return an Error with a given code and
// formatted message.
func Errorf(code string, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}
