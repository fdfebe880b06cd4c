// Package apperrors holds the error taxonomy shared by the services and
// its mapping onto HTTP responses.
package apperrors

import (
	"errors"
	"net/http"
)

const genericFailureMessage = "something went wrong, try again"

var (
	ErrUnauthenticated = errors.New("not authenticated")
	ErrForbidden       = errors.New("not allowed")
	ErrNotFound        = errors.New("not found")
	ErrUpstream        = errors.New("upstream dependency failed")
)

// ValidationError is an expected, user-correctable condition.
// Reason is safe to show to the end user.
type ValidationError struct {
	Reason string
	// Conflict marks validation failures caused by the current state
	// (e.g. a full pod) rather than by the input itself.
	Conflict bool
}

func (e *ValidationError) Error() string {
	return e.Reason
}

func Validation(reason string) error {
	return &ValidationError{Reason: reason}
}

func Conflict(reason string) error {
	return &ValidationError{Reason: reason, Conflict: true}
}

// AuthorizationError rejects a caller that is known but lacks the rights
// for an operation. It unwraps to ErrForbidden.
type AuthorizationError struct {
	Reason string
}

func (e *AuthorizationError) Error() string {
	return e.Reason
}

func (e *AuthorizationError) Unwrap() error {
	return ErrForbidden
}

func Forbidden(reason string) error {
	return &AuthorizationError{Reason: reason}
}

func IsValidation(err error) bool {
	var vErr *ValidationError
	return errors.As(err, &vErr)
}

// HTTPStatus maps an error from any layer onto a response status.
func HTTPStatus(err error) int {
	var vErr *ValidationError
	switch {
	case err == nil:
		return http.StatusOK
	case errors.As(err, &vErr):
		if vErr.Conflict {
			return http.StatusConflict
		}
		return http.StatusBadRequest
	case errors.Is(err, ErrUnauthenticated):
		return http.StatusUnauthorized
	case errors.Is(err, ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrUpstream):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// PublicMessage returns the user-facing text for err. Only validation and
// authorization failures carry a specific message; internal details never leak.
func PublicMessage(err error) string {
	var vErr *ValidationError
	if errors.As(err, &vErr) {
		return vErr.Reason
	}
	var aErr *AuthorizationError
	if errors.As(err, &aErr) {
		return aErr.Reason
	}
	switch {
	case errors.Is(err, ErrUnauthenticated):
		return "authentication required"
	case errors.Is(err, ErrForbidden):
		return "not allowed"
	case errors.Is(err, ErrNotFound):
		return "not found"
	default:
		return genericFailureMessage
	}
}

func WriteHTTPError(w http.ResponseWriter, err error) {
	http.Error(w, PublicMessage(err), HTTPStatus(err))
}
