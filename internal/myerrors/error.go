package myerrors

import (
	"errors"
	"fmt"
)

type Kind int

const (
	KindNotFound Kind = iota
	KindConflict
	KindForbidden
	KindInvalidInput
)

// RequestError is a business-rule violation. The server maps Kind to a
// status code; everything else stays 500.
type RequestError struct {
	Kind    Kind
	Message string
}

func (r *RequestError) Error() string {
	return r.Message
}

func NotFound(format string, args ...any) *RequestError {
	return &RequestError{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

func Conflict(format string, args ...any) *RequestError {
	return &RequestError{Kind: KindConflict, Message: fmt.Sprintf(format, args...)}
}

func Forbidden(format string, args ...any) *RequestError {
	return &RequestError{Kind: KindForbidden, Message: fmt.Sprintf(format, args...)}
}

func InvalidInput(format string, args ...any) *RequestError {
	return &RequestError{Kind: KindInvalidInput, Message: fmt.Sprintf(format, args...)}
}

// IsKind reports whether err is a RequestError of the given kind.
func IsKind(err error, kind Kind) bool {
	var reqErr *RequestError
	return errors.As(err, &reqErr) && reqErr.Kind == kind
}
