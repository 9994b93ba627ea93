package domain

import (
	"errors"
	"fmt"

	goerrors "github.com/go-errors/errors"
)

// ErrorKind classifies failures so callers can tell caller-correctable errors from infrastructure ones.
type ErrorKind string

const (
	ErrKindForbidden        ErrorKind = "FORBIDDEN"
	ErrKindNotFound         ErrorKind = "NOT_FOUND"
	ErrKindInvalidFilter    ErrorKind = "INVALID_FILTER"
	ErrKindInvalidInput     ErrorKind = "INVALID_INPUT"
	ErrKindStoreUnavailable ErrorKind = "STORE_UNAVAILABLE"
)

// Error is the single error type returned by the jobs core.
type Error struct {
	Kind    ErrorKind
	Message string
	Err     error
	Stack   []byte
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches on Kind so errors.Is(err, &Error{Kind: ErrKindNotFound}) works.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Kind == e.Kind
}

func (e *Error) StackTrace() []byte {
	return e.Stack
}

func NewError(kind ErrorKind, message string, err error) *Error {
	var stack []byte
	if err != nil {
		var stackErr *goerrors.Error
		if errors.As(err, &stackErr) {
			stack = stackErr.Stack()
		} else {
			stack = goerrors.Wrap(err, 2).Stack()
		}
	} else {
		stack = goerrors.New(message).Stack()
	}

	return &Error{
		Kind:    kind,
		Message: message,
		Err:     err,
		Stack:   stack,
	}
}

func Forbidden(message string) *Error {
	return NewError(ErrKindForbidden, message, nil)
}

func NotFound(message string, err error) *Error {
	return NewError(ErrKindNotFound, message, err)
}

func InvalidFilter(message string) *Error {
	return NewError(ErrKindInvalidFilter, message, nil)
}

func InvalidInput(message string) *Error {
	return NewError(ErrKindInvalidInput, message, nil)
}

func StoreUnavailable(message string, err error) *Error {
	return NewError(ErrKindStoreUnavailable, message, err)
}

// KindOf returns the kind of err, or "" when err is not a domain error.
func KindOf(err error) ErrorKind {
	var domainErr *Error
	if errors.As(err, &domainErr) {
		return domainErr.Kind
	}
	return ""
}

// IsKind reports whether err carries the given kind.
func IsKind(err error, kind ErrorKind) bool {
	return err != nil && KindOf(err) == kind
}
