package repositories

import (
	"testing"

	"github.com/stretchr/testify/require"

	"tnkr-backend/domain"
	"tnkr-backend/errors"
)

func sampleUser() domain.User {
	return domain.User{
		FirstName:    "Jordan",
		LastName:     "Lee",
		Username:     "jordan_lee",
		Email:        "jordan@example.com",
		Role:         domain.RoleCollector,
		PasswordHash: "hash",
	}
}

func TestUserRepository_CreateAndLookups(t *testing.T) {
	req := require.New(t)
	repo := NewUserRepository(openTestDB(t))

	created, err := repo.CreateUser(sampleUser())
	req.NoError(err)
	req.NotEmpty(created.ID)
	req.False(created.CreatedAt.IsZero())

	byID, err := repo.GetUserByID(created.ID)
	req.NoError(err)
	req.Equal(created.Email, byID.Email)

	byEmail, err := repo.GetUserByEmail("jordan@example.com")
	req.NoError(err)
	req.Equal(created.ID, byEmail.ID)

	byUsername, err := repo.GetUserByUsername("jordan_lee")
	req.NoError(err)
	req.Equal(created.ID, byUsername.ID)
}

func TestUserRepository_UniquenessConflicts(t *testing.T) {
	req := require.New(t)
	repo := NewUserRepository(openTestDB(t))

	_, err := repo.CreateUser(sampleUser())
	req.NoError(err)

	dupUsername := sampleUser()
	dupUsername.Email = "other@example.com"
	_, err = repo.CreateUser(dupUsername)
	req.ErrorIs(err, errors.ErrUserAlreadyExists)

	dupEmail := sampleUser()
	dupEmail.Username = "someone_else"
	_, err = repo.CreateUser(dupEmail)
	req.ErrorIs(err, errors.ErrEmailAlreadyExists)
}

func TestUserRepository_NotFound(t *testing.T) {
	req := require.New(t)
	repo := NewUserRepository(openTestDB(t))

	_, err := repo.GetUserByID("missing")
	req.ErrorIs(err, errors.ErrUserNotFound)

	_, err = repo.GetUserByEmail("missing@example.com")
	req.ErrorIs(err, errors.ErrUserNotFound)

	err = repo.UpdateUser(domain.User{ID: "missing"})
	req.ErrorIs(err, errors.ErrUserNotFound)
}

func TestUserRepository_Update(t *testing.T) {
	req := require.New(t)
	repo := NewUserRepository(openTestDB(t))

	created, err := repo.CreateUser(sampleUser())
	req.NoError(err)

	created.IsVerified = true
	created.FirstName = "Jo"
	req.NoError(repo.UpdateUser(created))

	updated, err := repo.GetUserByID(created.ID)
	req.NoError(err)
	req.True(updated.IsVerified)
	req.Equal("Jo", updated.FirstName)
}
