// Package errors provides a small typed-error wrapper used throughout the
// cache core: a code, a message and an optional wrapped cause, compatible
// with the standard library's errors.Is/errors.As via Unwrap.
package errors

import (
	"errors"
	"fmt"
)

// Error is a code-carrying error with an optional wrapped cause.
type Error struct {
	code       ERR
	message    string
	wrappedErr error
}

// Interface is satisfied by *Error; useful for accepting either an *Error
// or a plain error in function signatures that want to inspect the code.
type Interface interface {
	error
	Code() ERR
	Message() string
	Unwrap() error
}

// New builds an *Error for code with message formatted against params.
// If the last element of params is an error (or *Error), it is unwrapped
// as the cause and excluded from the fmt.Sprintf arguments.
func New(code ERR, message string, params ...interface{}) *Error {
	var wrapped error

	if n := len(params); n > 0 {
		switch v := params[n-1].(type) {
		case *Error:
			wrapped = v
			params = params[:n-1]
		case error:
			wrapped = v
			params = params[:n-1]
		}
	}

	if len(params) > 0 {
		message = fmt.Sprintf(message, params...)
	}

	return &Error{
		code:       code,
		message:    message,
		wrappedErr: wrapped,
	}
}

func (e *Error) Error() string {
	if e.wrappedErr != nil {
		return fmt.Sprintf("%s: %s: %s", e.code, e.message, e.wrappedErr.Error())
	}

	return fmt.Sprintf("%s: %s", e.code, e.message)
}

// Code returns the error's category.
func (e *Error) Code() ERR {
	return e.code
}

// Message returns the error's message, without the wrapped cause.
func (e *Error) Message() string {
	return e.message
}

// WrappedErr returns the wrapped cause, or nil.
func (e *Error) WrappedErr() error {
	return e.wrappedErr
}

// Unwrap makes Error compatible with errors.Is / errors.As.
func (e *Error) Unwrap() error {
	return e.wrappedErr
}

// Is reports whether target is an *Error with the same code.
func (e *Error) Is(target error) bool {
	var t *Error
	if errors.As(target, &t) {
		return t.code == e.code
	}

	return false
}

// Is reports whether err (or any error it wraps) is an *Error with code.
func Is(err error, code ERR) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.code == code
	}

	return false
}

// As is a thin wrapper over the standard library's errors.As.
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}

// Join combines multiple errors into one, dropping nils.
func Join(errs ...error) error {
	return errors.Join(errs...)
}
