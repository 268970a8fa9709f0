package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// Sentinel errors
var (
	ErrNotFound       = errors.New("resource not found")
	ErrBadRequest     = errors.New("bad request")
	ErrNotAuthorized  = errors.New("not authorized")
	ErrInternalServer = errors.New("internal server error")

	// Business errors
	ErrDuplicateRequest  = errors.New("rider already has an active request on this ride")
	ErrCapacityExceeded  = errors.New("not enough seats available")
	ErrInvalidTransition = errors.New("invalid state transition")
	ErrTooLateToCancel   = errors.New("too late to cancel")
	ErrTooLateToRemove   = errors.New("too late to remove passenger")
	ErrRouteMismatch     = errors.New("requested segment is not on the ride route")
)

// APIError represents a structured API error
type APIError struct {
	Code       string `json:"error"`
	Message    string `json:"message"`
	StatusCode int    `json:"-"`
}

func (e *APIError) Error() string {
	return e.Message
}

// NewAPIError creates a new API error
func NewAPIError(code, message string, statusCode int) *APIError {
	return &APIError{
		Code:       code,
		Message:    message,
		StatusCode: statusCode,
	}
}

// Common API errors
func NotFound(resource string) *APIError {
	return NewAPIError("not_found", fmt.Sprintf("%s not found", resource), http.StatusNotFound)
}

func BadRequest(message string) *APIError {
	return NewAPIError("bad_request", message, http.StatusBadRequest)
}

func Conflict(message string) *APIError {
	return NewAPIError("conflict", message, http.StatusConflict)
}

func InternalError(message string) *APIError {
	return NewAPIError("internal_error", message, http.StatusInternalServerError)
}

func NotAuthorized(message string) *APIError {
	return NewAPIError("not_authorized", message, http.StatusForbidden)
}

func ValidationError(message string) *APIError {
	return NewAPIError("validation_error", message, http.StatusBadRequest)
}

func DuplicateRequest() *APIError {
	return NewAPIError("duplicate_request", "you already have an active request for this ride", http.StatusConflict)
}

func CapacityExceeded() *APIError {
	return NewAPIError("capacity_exceeded", "not enough seats available", http.StatusConflict)
}

func InvalidState(message string) *APIError {
	return NewAPIError("invalid_state", message, http.StatusConflict)
}

func InvalidTransition(from, to string) *APIError {
	return NewAPIError("invalid_state", fmt.Sprintf("cannot transition from %s to %s", from, to), http.StatusConflict)
}

func TooLateToCancel() *APIError {
	return NewAPIError("too_late_to_cancel", "cannot cancel within 30 minutes of departure", http.StatusConflict)
}

func TooLateToRemove() *APIError {
	return NewAPIError("too_late_to_remove", "cannot remove a passenger within 30 minutes of departure", http.StatusConflict)
}
