package errors

import (
	"errors"
	"net/http"
)

// MapToHTTPStatus translates a domain error into the HTTP status code the
// REST surface exposes. Unknown errors are treated as internal failures so
// that storage details never leak to clients.
func MapToHTTPStatus(err error) int {
	switch {
	case errors.Is(err, ErrNoToken),
		errors.Is(err, ErrInvalidToken),
		errors.Is(err, ErrInvalidCredentials):
		return http.StatusUnauthorized
	case errors.Is(err, ErrNotVerified),
		errors.Is(err, ErrForbidden),
		errors.Is(err, ErrProfileNotSetUp),
		errors.Is(err, ErrTechnicianNotVerified):
		return http.StatusForbidden
	case errors.Is(err, ErrUserAlreadyExists),
		errors.Is(err, ErrEmailAlreadyExists):
		return http.StatusConflict
	case errors.Is(err, ErrUserNotFound),
		errors.Is(err, ErrRequestNotFound),
		errors.Is(err, ErrProfileNotFound),
		errors.Is(err, ErrMessageNotFound):
		return http.StatusNotFound
	case errors.Is(err, ErrRateLimited):
		return http.StatusTooManyRequests
	case errors.Is(err, ErrInvalidPassword),
		errors.Is(err, ErrEmptyContent),
		errors.Is(err, ErrMissingReceiver),
		errors.Is(err, ErrInvalidReceiver),
		errors.Is(err, ErrMissingFields),
		errors.Is(err, ErrAlreadyVerified),
		errors.Is(err, ErrCodeInvalid),
		errors.Is(err, ErrCodeExpired):
		return http.StatusBadRequest
	default:
		return http.StatusInternalServerError
	}
}
