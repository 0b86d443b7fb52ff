package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies an application error for the transport boundary
type Kind int

const (
	KindInternal Kind = iota
	KindNotFound
	KindInvalidQuery
	KindBadRequest
	KindUnauthorized
	KindContract
)

// Error is a classified application error
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches on kind and message so sentinel values compare with errors.Is
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return e.Kind == t.Kind && e.Message == t.Message
}

// Status returns the HTTP status code for the error kind
func (e *Error) Status() int {
	switch e.Kind {
	case KindNotFound:
		return http.StatusNotFound
	case KindInvalidQuery, KindBadRequest:
		return http.StatusBadRequest
	case KindUnauthorized:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// Public reports whether the message may be shown to clients
func (e *Error) Public() bool {
	return e.Kind != KindInternal && e.Kind != KindContract
}

var (
	ErrInvalidQuery         = &Error{Kind: KindInvalidQuery, Message: "Invalid query values"}
	ErrBadRequest           = &Error{Kind: KindBadRequest, Message: "Bad request"}
	ErrUnableToIdentifyUser = &Error{Kind: KindUnauthorized, Message: "Unable to identify user"}
	ErrTopicAlreadyExists   = &Error{Kind: KindBadRequest, Message: "Topic already exists"}
	ErrEndpointNotFound     = NotFound("Endpoint")
	ErrPageNotFound         = NotFound("Page")
)

// NotFound builds a 404 error for the named resource kind
func NotFound(kind string) *Error {
	return &Error{Kind: KindNotFound, Message: kind + " not found"}
}

// BadRequest wraps cause as a generic 400
func BadRequest(cause error) *Error {
	return &Error{Kind: KindBadRequest, Message: ErrBadRequest.Message, Err: cause}
}

// Contract reports a programming error in a caller. It is never shown to clients.
func Contract(format string, args ...interface{}) *Error {
	return &Error{Kind: KindContract, Message: "internal contract violation", Err: fmt.Errorf(format, args...)}
}

// As extracts an *Error from err's chain
func As(err error) (*Error, bool) {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// IsNotFound reports whether err is any NotFound error
func IsNotFound(err error) bool {
	appErr, ok := As(err)
	return ok && appErr.Kind == KindNotFound
}
