// Package apperror defines the error kinds returned by the messaging core.
//
// Every error crossing a usecase boundary is an *Error carrying a stable Kind,
// so the transport layer can translate it without inspecting messages.
package apperror

import (
	"errors"
	"fmt"

	"gorm.io/gorm"
)

type Kind string

const (
	KindAccessDenied       Kind = "ACCESS_DENIED"
	KindNotFound           Kind = "NOT_FOUND"
	KindInvalidState       Kind = "INVALID_STATE"
	KindPaymentNotVerified Kind = "PAYMENT_NOT_VERIFIED"
	KindValidation         Kind = "VALIDATION_ERROR"
	KindDataIntegrity      Kind = "DATA_INTEGRITY_ERROR"
	KindDownstream         Kind = "DOWNSTREAM_ERROR"
)

var (
	ErrAccessDenied       = &Error{Kind: KindAccessDenied}
	ErrNotFound           = &Error{Kind: KindNotFound}
	ErrInvalidState       = &Error{Kind: KindInvalidState}
	ErrPaymentNotVerified = &Error{Kind: KindPaymentNotVerified}
	ErrValidation         = &Error{Kind: KindValidation}
	ErrDataIntegrity      = &Error{Kind: KindDataIntegrity}
	ErrDownstream         = &Error{Kind: KindDownstream}
)

type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	switch {
	case e.Message != "" && e.Err != nil:
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	case e.Message != "":
		return fmt.Sprintf("%s: %s", e.Kind, e.Message)
	case e.Err != nil:
		return fmt.Sprintf("%s: %v", e.Kind, e.Err)
	}
	return string(e.Kind)
}

func (e *Error) Unwrap() error {
	return e.Err
}

// Is reports a match for any *Error of the same kind, so the package
// sentinels work with errors.Is.
func (e *Error) Is(target error) bool {
	var t *Error
	if !errors.As(target, &t) {
		return false
	}
	return t.Kind == e.Kind
}

func New(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

func Wrap(kind Kind, err error, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...), Err: err}
}

func AccessDenied(format string, args ...any) *Error {
	return New(KindAccessDenied, format, args...)
}

func NotFound(format string, args ...any) *Error {
	return New(KindNotFound, format, args...)
}

func InvalidState(format string, args ...any) *Error {
	return New(KindInvalidState, format, args...)
}

func PaymentNotVerified(format string, args ...any) *Error {
	return New(KindPaymentNotVerified, format, args...)
}

func Validation(format string, args ...any) *Error {
	return New(KindValidation, format, args...)
}

func DataIntegrity(format string, args ...any) *Error {
	return New(KindDataIntegrity, format, args...)
}

// Downstream wraps a store or collaborator failure. Errors that already carry
// a kind pass through untouched, and a missing record becomes NOT_FOUND.
func Downstream(err error, format string, args ...any) error {
	if err == nil {
		return nil
	}
	var appErr *Error
	if errors.As(err, &appErr) {
		return err
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return Wrap(KindNotFound, err, format, args...)
	}
	return Wrap(KindDownstream, err, format, args...)
}

// KindOf returns the kind carried by err. Errors without one, context
// deadlines included, are downstream failures.
func KindOf(err error) Kind {
	if err == nil {
		return ""
	}
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindDownstream
}
