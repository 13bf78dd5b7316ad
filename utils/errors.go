package utils

import (
	"errors"
	"fmt"
	"net/http"

	"go.mongodb.org/mongo-driver/mongo"
)

// Sentinel errors for the service layer. Controllers map these onto HTTP
// statuses; anything unwrapped is treated as a 500.
var (
	ErrValidation   = errors.New("validation failed")
	ErrNotFound     = errors.New("not found")
	ErrConflict     = errors.New("conflict")
	ErrUnauthorized = errors.New("unauthorized")
)

// ValidationErrorf wraps ErrValidation with a detail message.
func ValidationErrorf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: "+format, append([]interface{}{ErrValidation}, args...)...)
}

// NotFoundErrorf wraps ErrNotFound with a detail message.
func NotFoundErrorf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: "+format, append([]interface{}{ErrNotFound}, args...)...)
}

// ConflictErrorf wraps ErrConflict with a detail message.
func ConflictErrorf(format string, args ...interface{}) error {
	return fmt.Errorf("%w: "+format, append([]interface{}{ErrConflict}, args...)...)
}

// StatusForError resolves a service error to an HTTP status code.
func StatusForError(err error) int {
	switch {
	case errors.Is(err, ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrConflict) || mongo.IsDuplicateKeyError(err):
		return http.StatusConflict
	case errors.Is(err, ErrUnauthorized):
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// IsDuplicateKey reports whether err is a MongoDB unique-index violation. The
// unique index is the authority for duplicate sibling names under concurrent
// creates, so the service layer surfaces it as a Conflict.
func IsDuplicateKey(err error) bool {
	return mongo.IsDuplicateKeyError(err)
}
