package pagesense

import (
	"errors"
	"fmt"
)

// Application error codes.
const (
	EBADRESPONSE = "bad_response"
	EINTERNAL    = "internal"
	EINVALID     = "invalid"
	ENOCONTENT   = "no_content"
	EUNAVAILABLE = "unavailable"
)

// User-facing messages returned in ErrorResponse bodies.
const (
	MsgURLRequired     = "URL is required"
	MsgNoContent       = "No text content found at the provided URL"
	MsgAnalyzeFailed   = "Failed to analyze the URL"
	MsgInvalidResponse = "Invalid response from NLP API"
)

// Error represents an application-specific error. Application errors can be
// unwrapped by the caller to extract out the code & message.
//
// Any non-application error (such as a network failure) should be reported
// as an EINTERNAL error and the human user should only see a generic
// message. The details can be logged.
type Error struct {
	Code    string
	Message string
}

// Error implements the error interface. Not used by the application otherwise.
func (e *Error) Error() string {
	return fmt.Sprintf("pagesense error: code=%s message=%s", e.Code, e.Message)
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

// Errorf is a helper function to return an Error with a given code and formatted message.
func Errorf(code string, format string, args ...interface{}) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}
