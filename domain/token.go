package domain

import "time"

const (
	TokenTypeEmailVerification = "EMAIL_VERIFICATION"
	TokenTypePasswordReset     = "PASSWORD_RESET"
)

// VerificationToken is a single-use code mailed to a user, either to
// confirm an email address or to authorize a password reset. Deleted on
// first successful use.
type VerificationToken struct {
	Code      string
	Email     string
	Type      string
	ExpiresAt time.Time
}

func (t VerificationToken) Expired(now time.Time) bool {
	return now.After(t.ExpiresAt)
}
