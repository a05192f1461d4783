package services

import "errors"

// Kind classifies a service failure so the HTTP layer can pick a status code
// without the core knowing anything about HTTP.
type Kind int

const (
	KindInternal Kind = iota
	KindValidation
	KindUnauthenticated
	KindForbidden
	KindNotFound
)

// Error is the typed error the services core returns to callers.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error { return e.Err }

// ValidationError reports bad or missing input.
func ValidationError(msg string) *Error {
	return &Error{Kind: KindValidation, Message: msg}
}

// ForbiddenError reports an authenticated but unauthorized action.
func ForbiddenError(msg string) *Error {
	return &Error{Kind: KindForbidden, Message: msg}
}

// NotFoundError reports a target id that does not resolve.
func NotFoundError(msg string) *Error {
	return &Error{Kind: KindNotFound, Message: msg}
}

// InternalError wraps an unexpected storage failure.
func InternalError(msg string, err error) *Error {
	return &Error{Kind: KindInternal, Message: msg, Err: err}
}

// KindOf extracts the Kind from err, defaulting to KindInternal.
func KindOf(err error) Kind {
	var se *Error
	if errors.As(err, &se) {
		return se.Kind
	}
	return KindInternal
}
