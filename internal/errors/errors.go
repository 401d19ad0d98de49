// Package errors defines stable error codes for all sortkit failure
// modes, so callers and tests can match on code rather than message
// text.
package errors

import (
	"errors"
	"fmt"
)

// Code identifies a failure mode.
type Code string

const (
	// InvalidSortKey indicates a sort-key expression that does not parse
	InvalidSortKey Code = "INVALID_SORT_KEY"
	// UnknownField indicates a sort key naming a field no record has
	UnknownField Code = "UNKNOWN_FIELD"
	// UnsupportedFormat indicates a dataset format that is not recognized
	UnsupportedFormat Code = "UNSUPPORTED_FORMAT"
	// DecodeFailed indicates a dataset that could not be decoded
	DecodeFailed Code = "DECODE_FAILED"
	// DatasetNotFound indicates a store lookup for a missing dataset
	DatasetNotFound Code = "DATASET_NOT_FOUND"
	// DatasetExists indicates a save colliding with an existing name
	DatasetExists Code = "DATASET_EXISTS"
	// StoreFailure indicates an underlying database failure
	StoreFailure Code = "STORE_FAILURE"
	// InternalError indicates an unexpected error
	InternalError Code = "INTERNAL_ERROR"
)

// Error carries a stable code, a human message, and an optional cause.
type Error struct {
	Code    Code   `json:"code"`
	Message string `json:"message"`
	cause   error
}

// New creates an Error with the given code and formatted message.
func New(code Code, format string, args ...interface{}) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...)}
}

// Wrap creates an Error with the given code and message, preserving
// cause for errors.Is / errors.As chains.
func Wrap(code Code, cause error, format string, args ...interface{}) *Error {
	return &Error{Code: code, Message: fmt.Sprintf(format, args...), cause: cause}
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause, if any.
func (e *Error) Unwrap() error {
	return e.cause
}

// CodeOf returns the code of err if it is (or wraps) an *Error, and
// InternalError otherwise.
func CodeOf(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return InternalError
}

// HasCode reports whether err carries the given code.
func HasCode(err error, code Code) bool {
	return CodeOf(err) == code
}
