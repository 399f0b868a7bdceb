package reservation

import (
	"errors"
	"fmt"
)

// Error codes for the reservation engine's taxonomy. Handlers translate these
// into HTTP statuses; user-facing messages travel in Message.
const (
	CodeValidation   = "validationError"
	CodeConflict     = "conflictError"
	CodeInvalidState = "invalidStateError"
	CodePaymentInit  = "paymentInitError"
	CodeNotFound     = "notFound"
)

type Error struct {
	Code    string
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func NewValidationError(msg string) error {
	return &Error{Code: CodeValidation, Message: msg}
}

func NewConflictError(msg string) error {
	return &Error{Code: CodeConflict, Message: msg}
}

func NewInvalidStateError(msg string) error {
	return &Error{Code: CodeInvalidState, Message: msg}
}

func NewPaymentInitError(msg string) error {
	return &Error{Code: CodePaymentInit, Message: msg}
}

func NewNotFoundError(msg string) error {
	return &Error{Code: CodeNotFound, Message: msg}
}

// CodeOf extracts the taxonomy code from an error, or "" for untyped errors.
func CodeOf(err error) string {
	var se *Error
	if errors.As(err, &se) {
		return se.Code
	}
	return ""
}
