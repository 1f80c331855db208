package services

import (
	"errors"
	"fmt"

	"github.com/Kariqs/justdrops-api/store"
)

// Error kinds. Controllers map these onto HTTP status codes.
var (
	ErrValidation    = errors.New("validation failed")
	ErrNotFound      = store.ErrNotFound
	ErrConflict      = store.ErrConflict
	ErrEmptyCart     = errors.New("cart is empty")
	ErrUnauthorized  = errors.New("unauthorized")
	ErrPaymentFailed = errors.New("payment failed")
	// ErrPaymentUnrecorded means a charge was captured but the order could
	// not be marked paid.
	ErrPaymentUnrecorded = errors.New("payment not recorded")
	ErrUnavailable       = errors.New("feature unavailable")
)

// Error is a client facing failure: Message is safe to return in a response
// body and Kind selects the status code.
type Error struct {
	Kind    error
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Kind
}

func newError(kind error, format string, args ...any) error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

func invalid(format string, args ...any) error {
	return newError(ErrValidation, format, args...)
}

// notFound converts a bare store.ErrNotFound into a named 404 and passes every
// other error through unchanged.
func notFound(err error, format string, args ...any) error {
	var svcErr *Error
	if errors.Is(err, store.ErrNotFound) && !errors.As(err, &svcErr) {
		return newError(ErrNotFound, format, args...)
	}
	return err
}

func conflict(err error, format string, args ...any) error {
	var svcErr *Error
	if errors.Is(err, store.ErrConflict) && !errors.As(err, &svcErr) {
		return newError(ErrConflict, format, args...)
	}
	return err
}
