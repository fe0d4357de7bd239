// Package apperror defines the error taxonomy shared by every service:
// validation (400), not found (404), access denied (403), conflict (400 by
// convention of this API, not 409) and internal (500).
package apperror

import (
	"errors"
	"net/http"
)

type Kind int

const (
	KindValidation Kind = iota + 1
	KindNotFound
	KindAccessDenied
	KindConflict
	KindInternal
)

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

func Validation(message string) error {
	return &Error{Kind: KindValidation, Message: message}
}

func NotFound(message string) error {
	return &Error{Kind: KindNotFound, Message: message}
}

func AccessDenied() error {
	return &Error{Kind: KindAccessDenied, Message: "Access Denied"}
}

func Conflict(message string) error {
	return &Error{Kind: KindConflict, Message: message}
}

// Internal wraps an unexpected failure. The wrapped cause is logged by the
// caller, never serialized to the client.
func Internal(message string, err error) error {
	return &Error{Kind: KindInternal, Message: message, Err: err}
}

func KindOf(err error) Kind {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr.Kind
	}
	return KindInternal
}

// HTTP maps an error to the status code and client-facing message of the
// standard `{"error": msg}` envelope. Internal causes are not leaked.
func HTTP(err error) (int, string) {
	var appErr *Error
	if !errors.As(err, &appErr) {
		return http.StatusInternalServerError, "Internal server error"
	}

	switch appErr.Kind {
	case KindValidation, KindConflict:
		return http.StatusBadRequest, appErr.Message
	case KindNotFound:
		return http.StatusNotFound, appErr.Message
	case KindAccessDenied:
		return http.StatusForbidden, appErr.Message
	default:
		return http.StatusInternalServerError, appErr.Message
	}
}
