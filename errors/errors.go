// SPDX-License-Identifier: Unlicense OR MIT

// Package errors defines the coded errors reported by the composition
// core.
//
// Failures from the visual backend carry no code: they are passed
// through unchanged and the core never retries or suppresses them.
// A weak handle that finds its object destroyed is not an error and is
// reported as a boolean by package actor instead.
//
//	err := errors.New(errors.ErrCodeBadIndex, "cell %d out of range", i)
//	if errors.Is(err, errors.ErrCodeBadIndex) {
//		// ...
//	}
package errors

import (
	"errors"
	"fmt"
)

// Code is a machine-readable error code.
type Code string

const (
	// ErrCodeBadIndex reports an operation addressing a cell or
	// child that does not exist.
	ErrCodeBadIndex Code = "BAD_INDEX"
	// ErrCodeSpawn reports a task pool rejecting a new task.
	ErrCodeSpawn Code = "SPAWN_FAILURE"
	// ErrCodeConfig reports an invalid configuration.
	ErrCodeConfig Code = "INVALID_CONFIG"
	// ErrCodeClosed reports adding to a closed widget or window.
	ErrCodeClosed Code = "CLOSED"
)

// Error is a coded error with an optional cause.
type Error struct {
	Code    Code
	Message string
	Cause   error
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the cause for errors.Is/As compatibility.
func (e *Error) Unwrap() error {
	return e.Cause
}

// New creates an Error with the given code and formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap creates an Error wrapping cause.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Cause:   cause,
	}
}

// Is reports whether err, or any error it wraps, carries code.
func Is(err error, code Code) bool {
	return GetCode(err) == code && code != ""
}

// GetCode extracts the code of the first *Error in err's chain,
// or the empty Code.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return ""
}
