//go:generate go run go.uber.org/mock/mockgen -source=auth_service.go -destination=../mocks/mock_auth_service.go -package=mocks
package services

import (
	"context"
	"crypto/rand"
	"encoding/hex"
	stderrors "errors"
	"fmt"
	"log/slog"
	"time"

	"tnkr-backend/auth"
	"tnkr-backend/blob"
	"tnkr-backend/domain"
	"tnkr-backend/errors"
	"tnkr-backend/mail"
	"tnkr-backend/repositories"
)

const (
	verificationCodeTTL = 24 * time.Hour
	passwordResetTTL    = time.Hour
)

type Token string

// Upload is an in-memory file received from a multipart form.
type Upload struct {
	Filename    string
	ContentType string
	Data        []byte
}

// RegisterCommand carries everything the registration endpoint accepts,
// including the optional profile photo.
type RegisterCommand struct {
	FirstName string
	LastName  string
	Phone     string
	Username  string
	Email     string
	Role      string
	Password  string
	Photo     *Upload
}

type IAuthService interface {
	Register(ctx context.Context, cmd RegisterCommand) (domain.User, error)
	Login(email, password string) (Token, domain.User, error)
	VerifyEmail(code string) error
	ResendVerification(email string) error
	ForgotPassword(email string) error
	ResetPassword(code, newPassword string) error
}

type AuthService struct {
	users         repositories.IUserRepository
	tokens        repositories.ITokenRepository
	storage       blob.IStorage
	mailer        *mail.Dispatcher
	log           *slog.Logger
	tokenDuration time.Duration
	frontendURL   string
}

func NewAuthService(users repositories.IUserRepository, tokens repositories.ITokenRepository,
	storage blob.IStorage, mailer *mail.Dispatcher, log *slog.Logger,
	tokenDuration time.Duration, frontendURL string) IAuthService {
	return &AuthService{
		users:         users,
		tokens:        tokens,
		storage:       storage,
		mailer:        mailer,
		log:           log,
		tokenDuration: tokenDuration,
		frontendURL:   frontendURL,
	}
}

// Register creates an unverified account, uploads the optional profile
// photo, and mails a verification link. The verification email itself is
// fire-and-forget; account creation succeeds even if the relay is down.
func (s *AuthService) Register(ctx context.Context, cmd RegisterCommand) (domain.User, error) {
	valReq := auth.RegisterRequest{
		FirstName: cmd.FirstName,
		LastName:  cmd.LastName,
		Phone:     cmd.Phone,
		Username:  cmd.Username,
		Email:     cmd.Email,
		Role:      cmd.Role,
		Password:  cmd.Password,
	}

	// Validate business rules before any expensive cryptographic operation.
	if err := auth.ValidateRegister(valReq); err != nil {
		return domain.User{}, fmt.Errorf("%w: %v", errors.ErrMissingFields, err)
	}

	// Hash in the service layer so the repository never sees a plain password.
	hashedPassword, err := auth.HashPassword(cmd.Password)
	if err != nil {
		return domain.User{}, fmt.Errorf("hashing failed: %w", err)
	}

	role := cmd.Role
	if role == "" {
		role = domain.RoleCollector
	}

	user, err := s.users.CreateUser(domain.User{
		FirstName:    cmd.FirstName,
		LastName:     cmd.LastName,
		Phone:        cmd.Phone,
		Username:     cmd.Username,
		Email:        cmd.Email,
		Role:         role,
		PasswordHash: hashedPassword,
		IsVerified:   false,
	})
	if err != nil {
		return domain.User{}, err // propagates the username/email conflicts
	}

	// The photo is keyed by the new user id, so upload happens after create.
	if cmd.Photo != nil {
		key := blob.ProfilePictureKey(user.ID, cmd.Photo.Filename)
		url, err := s.storage.Upload(ctx, key, cmd.Photo.Data, cmd.Photo.ContentType)
		if err != nil {
			return domain.User{}, err
		}
		user.ProfilePictureURL = url
		if err := s.users.UpdateUser(user); err != nil {
			return domain.User{}, err
		}
	}

	code, err := s.issueToken(user.Email, domain.TokenTypeEmailVerification, verificationCodeTTL)
	if err != nil {
		return domain.User{}, err
	}
	s.mailer.Dispatch(mail.VerificationEmail(s.frontendURL, user.Email, code))

	return user, nil
}

// Login exchanges credentials for a session token. Unknown email and wrong
// password produce the same generic error to prevent user enumeration.
func (s *AuthService) Login(email, password string) (Token, domain.User, error) {
	user, err := s.users.GetUserByEmail(email)
	if err != nil {
		return "", domain.User{}, errors.ErrInvalidCredentials
	}

	match, err := auth.ComparePassword(password, user.PasswordHash)
	if err != nil || !match {
		return "", domain.User{}, errors.ErrInvalidCredentials
	}

	if !user.IsVerified {
		return "", domain.User{}, errors.ErrNotVerified
	}

	token, err := auth.GenerateToken(user.ID, user.Username, user.Role, user.Email, s.tokenDuration)
	if err != nil {
		return "", domain.User{}, errors.ErrTokenGeneration
	}

	return Token(token), user, nil
}

// VerifyEmail redeems a verification code: marks the account verified and
// burns the code.
func (s *AuthService) VerifyEmail(code string) error {
	token, err := s.redeemableToken(code, domain.TokenTypeEmailVerification)
	if err != nil {
		return err
	}

	user, err := s.users.GetUserByEmail(token.Email)
	if err != nil {
		return err
	}
	user.IsVerified = true
	if err := s.users.UpdateUser(user); err != nil {
		return err
	}

	return s.tokens.DeleteToken(code)
}

// ResendVerification replaces any outstanding codes for the address with a
// fresh one.
func (s *AuthService) ResendVerification(email string) error {
	user, err := s.users.GetUserByEmail(email)
	if err != nil {
		return err
	}
	if user.IsVerified {
		return errors.ErrAlreadyVerified
	}

	if err := s.tokens.DeleteTokensForEmail(email); err != nil {
		return err
	}
	code, err := s.issueToken(email, domain.TokenTypeEmailVerification, verificationCodeTTL)
	if err != nil {
		return err
	}
	s.mailer.Dispatch(mail.VerificationEmail(s.frontendURL, email, code))
	return nil
}

// ForgotPassword issues a reset code when the account exists. It reports
// success either way so the endpoint cannot be used to probe for accounts.
func (s *AuthService) ForgotPassword(email string) error {
	user, err := s.users.GetUserByEmail(email)
	if err != nil {
		if stderrors.Is(err, errors.ErrUserNotFound) {
			return nil
		}
		return err
	}

	code, err := s.issueToken(user.Email, domain.TokenTypePasswordReset, passwordResetTTL)
	if err != nil {
		return err
	}
	s.mailer.Dispatch(mail.PasswordResetEmail(s.frontendURL, user.Email, code))
	return nil
}

// ResetPassword redeems a reset code and installs the new password.
func (s *AuthService) ResetPassword(code, newPassword string) error {
	token, err := s.redeemableToken(code, domain.TokenTypePasswordReset)
	if err != nil {
		return err
	}

	if err := auth.ValidatePassword(newPassword); err != nil {
		return err
	}
	hashedPassword, err := auth.HashPassword(newPassword)
	if err != nil {
		return fmt.Errorf("hashing failed: %w", err)
	}

	user, err := s.users.GetUserByEmail(token.Email)
	if err != nil {
		return err
	}
	user.PasswordHash = hashedPassword
	if err := s.users.UpdateUser(user); err != nil {
		return err
	}

	return s.tokens.DeleteToken(code)
}

func (s *AuthService) issueToken(email, tokenType string, ttl time.Duration) (string, error) {
	code, err := generateCode()
	if err != nil {
		return "", err
	}
	err = s.tokens.CreateToken(domain.VerificationToken{
		Code:      code,
		Email:     email,
		Type:      tokenType,
		ExpiresAt: timeNowUTC().Add(ttl),
	})
	if err != nil {
		return "", err
	}
	return code, nil
}

// redeemableToken loads a code and checks type and expiry. A code of the
// wrong type is reported as invalid, not expired, to avoid leaking which
// flows an attacker-guessed code belongs to.
func (s *AuthService) redeemableToken(code, tokenType string) (domain.VerificationToken, error) {
	token, err := s.tokens.GetToken(code)
	if err != nil {
		return domain.VerificationToken{}, err
	}
	if token.Type != tokenType {
		return domain.VerificationToken{}, errors.ErrCodeInvalid
	}
	if token.Expired(timeNowUTC()) {
		return domain.VerificationToken{}, errors.ErrCodeExpired
	}
	return token, nil
}

func generateCode() (string, error) {
	raw := make([]byte, 32)
	if _, err := rand.Read(raw); err != nil {
		return "", err
	}
	return hex.EncodeToString(raw), nil
}
