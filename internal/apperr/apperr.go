// Package apperr holds the typed business errors raised by the services.
// Services never know about HTTP; the fiber error handler in cmd/server maps
// these onto status codes in one place.
package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

type Kind string

const (
	KindNotFound           Kind = "not_found"
	KindInvalidState       Kind = "invalid_state"
	KindAlreadyPending     Kind = "already_pending_transaction"
	KindNegativeCashAmount Kind = "negative_cash_amount"
	KindNoLongerInStock    Kind = "no_longer_in_stock"
	KindUsedElement        Kind = "used_element"
	KindIntegrity          Kind = "integrity_error"
)

type Error struct {
	Kind    Kind
	Message string
}

func (e *Error) Error() string { return e.Message }

// Status returns the HTTP status the boundary maps this error to.
func (e *Error) Status() int {
	if e.Kind == KindNotFound {
		return http.StatusNotFound
	}
	return http.StatusBadRequest
}

func NotFound(format string, args ...any) *Error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

func InvalidState(format string, args ...any) *Error {
	return &Error{Kind: KindInvalidState, Message: fmt.Sprintf(format, args...)}
}

func AlreadyPending() *Error {
	return &Error{Kind: KindAlreadyPending, Message: "a commerce transaction is already pending"}
}

func NegativeCashAmount() *Error {
	return &Error{Kind: KindNegativeCashAmount, Message: "operation would make the cash amount negative"}
}

func NoLongerInStock(format string, args ...any) *Error {
	return &Error{Kind: KindNoLongerInStock, Message: fmt.Sprintf(format, args...)}
}

func UsedElement(format string, args ...any) *Error {
	return &Error{Kind: KindUsedElement, Message: fmt.Sprintf(format, args...)}
}

func Integrity(format string, args ...any) *Error {
	return &Error{Kind: KindIntegrity, Message: fmt.Sprintf(format, args...)}
}

// IsKind reports whether err is an apperr.Error of the given kind.
func IsKind(err error, kind Kind) bool {
	var ae *Error
	return errors.As(err, &ae) && ae.Kind == kind
}
