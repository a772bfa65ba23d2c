package repositories

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"tnkr-backend/domain"
	"tnkr-backend/errors"
)

func TestTokenRepository_Lifecycle(t *testing.T) {
	req := require.New(t)
	repo := NewTokenRepository(openTestDB(t))

	token := domain.VerificationToken{
		Code:      "abc123",
		Email:     "jordan@example.com",
		Type:      domain.TokenTypeEmailVerification,
		ExpiresAt: time.Now().UTC().Add(time.Hour),
	}
	req.NoError(repo.CreateToken(token))

	got, err := repo.GetToken("abc123")
	req.NoError(err)
	req.Equal(token.Email, got.Email)
	req.Equal(token.Type, got.Type)

	req.NoError(repo.DeleteToken("abc123"))
	_, err = repo.GetToken("abc123")
	req.ErrorIs(err, errors.ErrCodeInvalid)
}

func TestTokenRepository_DeleteTokensForEmail(t *testing.T) {
	req := require.New(t)
	repo := NewTokenRepository(openTestDB(t))

	for _, code := range []string{"one", "two"} {
		req.NoError(repo.CreateToken(domain.VerificationToken{
			Code:      code,
			Email:     "jordan@example.com",
			Type:      domain.TokenTypeEmailVerification,
			ExpiresAt: time.Now().UTC().Add(time.Hour),
		}))
	}
	req.NoError(repo.CreateToken(domain.VerificationToken{
		Code:      "keep",
		Email:     "other@example.com",
		Type:      domain.TokenTypeEmailVerification,
		ExpiresAt: time.Now().UTC().Add(time.Hour),
	}))

	req.NoError(repo.DeleteTokensForEmail("jordan@example.com"))

	_, err := repo.GetToken("one")
	req.ErrorIs(err, errors.ErrCodeInvalid)
	_, err = repo.GetToken("two")
	req.ErrorIs(err, errors.ErrCodeInvalid)

	// Unrelated addresses keep their codes.
	_, err = repo.GetToken("keep")
	req.NoError(err)
}
