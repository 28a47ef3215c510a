package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies an error for transport mapping
type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindDuplicate
	KindUnauthorized    // bad credentials
	KindUnauthenticated // no or invalid identity
	KindForbidden
	KindNotFound
)

// Error codes sent to clients
const (
	CodeBadUserInput    = "BAD_USER_INPUT"
	CodeUnauthorized    = "UNAUTHORIZED"
	CodeUnauthenticated = "UNAUTHENTICATED"
	CodeForbidden       = "FORBIDDEN"
	CodeNotFound        = "NOT_FOUND"
	CodeInternal        = "INTERNAL_SERVER_ERROR"
)

// Error is the domain error shared by every package
type Error struct {
	Kind    Kind
	Code    string
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches on Kind and Code so sentinel comparisons survive Wrap
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind && e.Code == t.Code && e.Message == t.Message
}

// Wrap attaches a cause to a sentinel, keeping its kind, code and message
func (e *Error) Wrap(err error) *Error {
	return &Error{Kind: e.Kind, Code: e.Code, Message: e.Message, Err: err}
}

// WithMessage returns a copy of e with a more specific message
func (e *Error) WithMessage(msg string) *Error {
	return &Error{Kind: e.Kind, Code: e.Code, Message: msg, Err: e.Err}
}

// ============================================
// CONSTRUCTORS
// ============================================

func Validation(msg string, err error) *Error {
	return &Error{Kind: KindValidation, Code: CodeBadUserInput, Message: msg, Err: err}
}

func Duplicate(msg string) *Error {
	return &Error{Kind: KindDuplicate, Code: CodeBadUserInput, Message: msg}
}

func Unauthorized(msg string) *Error {
	return &Error{Kind: KindUnauthorized, Code: CodeUnauthorized, Message: msg}
}

func Unauthenticated(msg string) *Error {
	return &Error{Kind: KindUnauthenticated, Code: CodeUnauthenticated, Message: msg}
}

func Forbidden(msg string) *Error {
	return &Error{Kind: KindForbidden, Code: CodeForbidden, Message: msg}
}

func NotFound(msg string) *Error {
	return &Error{Kind: KindNotFound, Code: CodeNotFound, Message: msg}
}

func Internal(msg string, err error) *Error {
	return &Error{Kind: KindInternal, Code: CodeInternal, Message: msg, Err: err}
}

// ErrUnauthenticated is returned by operations that need a caller identity
var ErrUnauthenticated = Unauthenticated("You must be logged in")

// KindOf returns the Kind of the first *Error in err's chain
func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}

// ============================================
// HTTP MAPPING
// ============================================

// MapErrorToHTTP returns status, code and client safe message for err.
// Anything that is not an *Error becomes a 500.
func MapErrorToHTTP(err error) (int, string, string) {
	var appErr *Error
	if !errors.As(err, &appErr) {
		return http.StatusInternalServerError, CodeInternal, "Internal server error"
	}

	switch appErr.Kind {
	case KindValidation, KindDuplicate:
		return http.StatusBadRequest, appErr.Code, appErr.Message
	case KindUnauthorized, KindUnauthenticated:
		return http.StatusUnauthorized, appErr.Code, appErr.Message
	case KindForbidden:
		return http.StatusForbidden, appErr.Code, appErr.Message
	case KindNotFound:
		return http.StatusNotFound, appErr.Code, appErr.Message
	default:
		return http.StatusInternalServerError, CodeInternal, "Internal server error"
	}
}
