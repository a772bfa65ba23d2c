package auth

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// jwtKey signs API session tokens. Overridden at startup with the value of
// SECRET_KEY; the default only exists so unit tests can run without env setup.
var jwtKey = []byte("tnkr_dev_only_signing_key_change_me")

// SetSigningKey installs the shared secret. Must be called before any token
// is issued or validated in production.
func SetSigningKey(key []byte) {
	if len(key) > 0 {
		jwtKey = key
	}
}

// CustomClaims is the payload carried by every session token: a stable
// identity plus the role tag used by the authorization policy.
type CustomClaims struct {
	UserID   string `json:"id"`
	Username string `json:"username"`
	Role     string `json:"role"`
	Email    string `json:"email"`
	jwt.RegisteredClaims
}

// GenerateToken creates a signed session token for a user. API sessions
// expire after the configured duration (2 hours by default).
func GenerateToken(userID, username, role, email string, duration time.Duration) (string, error) {
	now := time.Now()
	claims := &CustomClaims{
		UserID:   userID,
		Username: username,
		Role:     role,
		Email:    email,
		RegisteredClaims: jwt.RegisteredClaims{
			ExpiresAt: jwt.NewNumericDate(now.Add(duration)),
			IssuedAt:  jwt.NewNumericDate(now),
			Issuer:    "tnkr",
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(jwtKey)
}

// ValidateToken parses a token string and verifies its signature and expiry.
func ValidateToken(tokenString string) (*CustomClaims, error) {
	token, err := jwt.ParseWithClaims(tokenString, &CustomClaims{}, func(token *jwt.Token) (interface{}, error) {
		return jwtKey, nil
	})
	if err != nil {
		return nil, err
	}

	if claims, ok := token.Claims.(*CustomClaims); ok && token.Valid {
		return claims, nil
	}

	return nil, jwt.ErrSignatureInvalid
}
