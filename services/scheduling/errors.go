package scheduling

import (
	"errors"
	"fmt"
)

// Stable machine-readable error codes surfaced to API clients.
const (
	CodeInvalidRequest = "invalid_request"
	CodeNotFound       = "not_found"
	CodeForbidden      = "forbidden"
	CodeConflict       = "conflict"
	CodeInternal       = "internal"
)

// Error is a scheduling failure with a stable code and a human-readable
// message. Internal details never ride along; they are logged instead.
type Error struct {
	Code    string
	Message string
}

func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func NewInvalidRequest(msg string) error {
	return &Error{Code: CodeInvalidRequest, Message: msg}
}

func NewNotFound(msg string) error {
	return &Error{Code: CodeNotFound, Message: msg}
}

func NewForbidden(msg string) error {
	return &Error{Code: CodeForbidden, Message: msg}
}

func NewConflict(msg string) error {
	return &Error{Code: CodeConflict, Message: msg}
}

func NewInternal(msg string) error {
	return &Error{Code: CodeInternal, Message: msg}
}

// CodeOf extracts the scheduling error code, defaulting to internal for
// anything unrecognized.
func CodeOf(err error) string {
	var se *Error
	if errors.As(err, &se) {
		return se.Code
	}
	return CodeInternal
}
