package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

// The four expected failure classes. Everything else is treated as an
// internal error: logged and surfaced as a generic 500 with no partial
// writes (the enclosing transaction rolls back).

// ValidationError reports malformed input rejected before any write.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string { return e.Msg }

func Validation(format string, args ...interface{}) *ValidationError {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}

// NotFoundError reports a referenced entity that does not exist.
type NotFoundError struct {
	Entity string
	ID     interface{}
}

func (e *NotFoundError) Error() string {
	if e.ID == nil {
		return fmt.Sprintf("%s not found", e.Entity)
	}
	return fmt.Sprintf("%s %v not found", e.Entity, e.ID)
}

func NotFound(entity string, id interface{}) *NotFoundError {
	return &NotFoundError{Entity: entity, ID: id}
}

// InsufficientStockError reports a debit that exceeds the quantity on
// hand. Available is carried so callers can present it.
type InsufficientStockError struct {
	ItemID    int
	ItemName  string
	Requested int
	Available int
}

func (e *InsufficientStockError) Error() string {
	if e.ItemName != "" {
		return fmt.Sprintf("insufficient stock for %s. Available: %d", e.ItemName, e.Available)
	}
	return fmt.Sprintf("insufficient stock. Available: %d", e.Available)
}

// ConflictError reports an operation that contradicts current state
// (duplicate invoice, re-refund, cancelling a paid invoice).
type ConflictError struct {
	Msg string
}

func (e *ConflictError) Error() string { return e.Msg }

func Conflict(format string, args ...interface{}) *ConflictError {
	return &ConflictError{Msg: fmt.Sprintf(format, args...)}
}

// IsExpected reports whether err belongs to the expected, user-facing
// taxonomy.
func IsExpected(err error) bool {
	return StatusCode(err) != http.StatusInternalServerError
}

// StatusCode maps an error to the HTTP status the boundary layer
// should respond with.
func StatusCode(err error) int {
	var ve *ValidationError
	var nf *NotFoundError
	var is *InsufficientStockError
	var ce *ConflictError
	switch {
	case errors.As(err, &ve):
		return http.StatusBadRequest
	case errors.As(err, &nf):
		return http.StatusNotFound
	case errors.As(err, &is):
		return http.StatusConflict
	case errors.As(err, &ce):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
