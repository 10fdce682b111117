package shared

import (
	"errors"
	"fmt"
)

// Stable machine-readable failure codes surfaced to callers.
const (
	CodeValidation = "VALIDATION_ERROR"
	CodeNotFound   = "NOT_FOUND"
	CodeConflict   = "CONFLICT_ERROR"
	CodeDatabase   = "DATABASE_ERROR"
	CodeUnknown    = "UNKNOWN_ERROR"
)

// Error is the structured failure every layer surfaces to the caller:
// a stable code, a human readable summary, and optional diagnostic detail.
type Error struct {
	Code    string
	Message string
	Detail  string
}

func (e *Error) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("%s: %s", e.Message, e.Detail)
	}
	return e.Message
}

// ValidationError reports malformed or semantically invalid input.
func ValidationError(message string) *Error {
	return &Error{Code: CodeValidation, Message: "A validation error occurred", Detail: message}
}

// NotFoundError reports a missing resource where existence was required.
func NotFoundError(resource string) *Error {
	return &Error{Code: CodeNotFound, Message: "Resource not found", Detail: resource + " not found"}
}

// ConflictError reports an identity collision.
func ConflictError(message string) *Error {
	return &Error{Code: CodeConflict, Message: "A conflict occurred", Detail: message}
}

// DatabaseError wraps a storage-layer failure. The raw driver message is
// carried in Detail so transports can redact it in production.
func DatabaseError(err error) *Error {
	return &Error{Code: CodeDatabase, Message: "A database error occurred", Detail: err.Error()}
}

// UnknownError wraps an unanticipated failure, preserving the original message.
func UnknownError(err error) *Error {
	return &Error{Code: CodeUnknown, Message: "An unknown error occurred", Detail: err.Error()}
}

// AsError unwraps err into a *Error, coercing unclassified failures to UNKNOWN_ERROR.
func AsError(err error) *Error {
	var e *Error
	if errors.As(err, &e) {
		return e
	}
	return UnknownError(err)
}
