//go:generate go run go.uber.org/mock/mockgen -source=user_service.go -destination=../mocks/mock_user_service.go -package=mocks
package services

import (
	"context"
	"log/slog"
	"time"

	"tnkr-backend/blob"
	"tnkr-backend/cache"
	"tnkr-backend/domain"
	"tnkr-backend/repositories"
)

const pageProfile = "profile"

// Profile is the user-facing account view, without credentials.
type Profile struct {
	ID                string `json:"id"`
	FirstName         string `json:"firstName"`
	LastName          string `json:"lastName"`
	Phone             string `json:"phone"`
	Username          string `json:"username"`
	Email             string `json:"email"`
	Role              string `json:"role"`
	ProfilePictureURL string `json:"profilePictureUrl,omitempty"`
	IsVerified        bool   `json:"isVerified"`
}

// UpdateProfileCommand carries the mutable profile fields and the optional
// replacement photo.
type UpdateProfileCommand struct {
	FirstName string
	LastName  string
	Phone     string
	Photo     *Upload
}

type IUserService interface {
	GetProfile(ctx context.Context, userID string) (Profile, error)
	UpdateProfile(ctx context.Context, userID string, cmd UpdateProfileCommand) (Profile, error)
}

type UserService struct {
	users      repositories.IUserRepository
	storage    blob.IStorage
	cache      cache.Store
	log        *slog.Logger
	profileTTL time.Duration
}

func NewUserService(users repositories.IUserRepository, storage blob.IStorage,
	cacheStore cache.Store, log *slog.Logger, profileTTL time.Duration) IUserService {
	return &UserService{
		users:      users,
		storage:    storage,
		cache:      cacheStore,
		log:        log,
		profileTTL: profileTTL,
	}
}

// GetProfile is a cache-aside read with a one-hour TTL.
func (s *UserService) GetProfile(_ context.Context, userID string) (Profile, error) {
	return cache.ReadThrough(s.cache, s.log, cache.Key(pageProfile, userID), s.profileTTL,
		func() (Profile, error) {
			user, err := s.users.GetUserByID(userID)
			if err != nil {
				return Profile{}, err
			}
			return toProfile(user), nil
		})
}

// UpdateProfile applies the changes and invalidates the cached profile
// before responding, so the next read reloads from the record store.
func (s *UserService) UpdateProfile(ctx context.Context, userID string, cmd UpdateProfileCommand) (Profile, error) {
	user, err := s.users.GetUserByID(userID)
	if err != nil {
		return Profile{}, err
	}

	if cmd.FirstName != "" {
		user.FirstName = cmd.FirstName
	}
	if cmd.LastName != "" {
		user.LastName = cmd.LastName
	}
	if cmd.Phone != "" {
		user.Phone = cmd.Phone
	}
	if cmd.Photo != nil {
		key := blob.ProfilePictureKey(user.ID, cmd.Photo.Filename)
		url, err := s.storage.Upload(ctx, key, cmd.Photo.Data, cmd.Photo.ContentType)
		if err != nil {
			return Profile{}, err
		}
		user.ProfilePictureURL = url
	}

	if err := s.users.UpdateUser(user); err != nil {
		return Profile{}, err
	}

	cache.Invalidate(s.cache, s.log, cache.Key(pageProfile, userID))
	return toProfile(user), nil
}

func toProfile(user domain.User) Profile {
	return Profile{
		ID:                user.ID,
		FirstName:         user.FirstName,
		LastName:          user.LastName,
		Phone:             user.Phone,
		Username:          user.Username,
		Email:             user.Email,
		Role:              user.Role,
		ProfilePictureURL: user.ProfilePictureURL,
		IsVerified:        user.IsVerified,
	}
}
