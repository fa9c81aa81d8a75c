// Package errors defines the coded errors glyphgrid reports to users.
//
// Every failure that crosses a package boundary carries a [Code]. The CLI
// prints [UserMessage] and the HTTP server picks a status from [GetCode],
// so neither has to match on error strings. Sentinels from lower layers
// (grid.ErrOutOfRange, fetch.ErrNotFound) stay reachable through Unwrap.
//
//	err := errors.Wrap(errors.ErrCodeInvalidDocument, cause, "row %d", n)
//	if errors.Is(err, errors.ErrCodeInvalidDocument) {
//	    // reject the document
//	}
package errors

import (
	"context"
	"errors"
	"fmt"
)

// Code classifies a failure.
type Code string

const (
	// Rejected input: flags, query parameters, config or the document itself.
	ErrCodeInvalidInput    Code = "INVALID_INPUT"
	ErrCodeInvalidDocument Code = "INVALID_DOCUMENT"
	ErrCodeInvalidFormat   Code = "INVALID_FORMAT"
	ErrCodeInvalidConfig   Code = "INVALID_CONFIG"
	ErrCodeOutOfRange      Code = "OUT_OF_RANGE"

	ErrCodeNotFound Code = "NOT_FOUND"

	// Transport failures while fetching a document.
	ErrCodeNetwork Code = "NETWORK_ERROR"
	ErrCodeTimeout Code = "TIMEOUT"

	ErrCodeInternal Code = "INTERNAL_ERROR"
)

// Error is a coded error with an optional cause.
type Error struct {
	Code    Code
	Message string
	Cause   error
}

func (e *Error) Error() string {
	msg := string(e.Code) + ": " + e.Message
	if e.Cause != nil {
		msg += ": " + e.Cause.Error()
	}
	return msg
}

func (e *Error) Unwrap() error { return e.Cause }

// New returns an Error with a formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap returns an Error with a formatted message around cause.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	e := New(code, format, args...)
	e.Cause = cause
	return e
}

// Is reports whether the first *Error in err's chain has code.
func Is(err error, code Code) bool {
	return GetCode(err) == code && code != ""
}

// GetCode returns the code of the first *Error in err's chain. An uncoded
// deadline error reports [ErrCodeTimeout]; anything else reports "".
func GetCode(err error) Code {
	var e *Error
	switch {
	case errors.As(err, &e):
		return e.Code
	case errors.Is(err, context.DeadlineExceeded):
		return ErrCodeTimeout
	}
	return ""
}

// UserMessage returns the message without the code prefix for coded
// errors and err.Error() otherwise.
func UserMessage(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}
