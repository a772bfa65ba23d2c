package errors

import "fmt"

// Authentication failures. The connection or request is refused outright.
var (
	ErrNoToken            = fmt.Errorf("no token provided")
	ErrInvalidToken       = fmt.Errorf("invalid or expired token")
	ErrInvalidCredentials = fmt.Errorf("invalid email or password")
	ErrNotVerified        = fmt.Errorf("email address not verified")
	ErrTokenGeneration    = fmt.Errorf("token generation failed")
	ErrForbidden          = fmt.Errorf("insufficient permissions")
)

// Validation failures. Structured, no side effects on storage.
var (
	ErrInvalidPassword = fmt.Errorf("password does not meet complexity requirements")
	ErrEmptyContent    = fmt.Errorf("message content is empty")
	ErrMissingReceiver = fmt.Errorf("receiver id is missing")
	ErrInvalidReceiver = fmt.Errorf("receiver id is malformed")
	ErrMissingFields   = fmt.Errorf("missing required fields")
)

// Conflicts on unique fields.
var (
	ErrUserAlreadyExists  = fmt.Errorf("username already exists")
	ErrEmailAlreadyExists = fmt.Errorf("email already exists")
	ErrAlreadyVerified    = fmt.Errorf("email is already verified")
)

// Missing entities. Distinct from validation so callers can tell
// "you sent garbage" from "the thing you referenced is gone".
var (
	ErrUserNotFound    = fmt.Errorf("user not found")
	ErrRequestNotFound = fmt.Errorf("request not found")
	ErrProfileNotFound = fmt.Errorf("technician profile not found")
	ErrMessageNotFound = fmt.Errorf("message not found")
	ErrCodeInvalid     = fmt.Errorf("invalid verification code")
	ErrCodeExpired     = fmt.Errorf("verification code has expired")
)

// Transient rejections. Clients are expected to back off and retry,
// unlike validation errors which are permanent for a given input.
var (
	ErrRateLimited = fmt.Errorf("message rate limit exceeded")
)

// Technician gating.
var (
	ErrProfileNotSetUp       = fmt.Errorf("technician profile not set up")
	ErrTechnicianNotVerified = fmt.Errorf("technician not verified")
)
