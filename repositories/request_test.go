package repositories

import (
	"testing"

	"github.com/stretchr/testify/require"

	"tnkr-backend/domain"
	"tnkr-backend/errors"
)

func sampleRequest(userID string) domain.Request {
	return domain.Request{
		UserID:         userID,
		JobDescription: "deep clean and resole",
		Budget:         120,
		ShoeSize:       10.5,
		Brand:          "Nike",
		ShoeName:       "Air Jordan 1",
		Service:        "cleaning",
		Subtypes:       []string{"deep-clean"},
	}
}

func TestRequestRepository_CreateAndGet(t *testing.T) {
	req := require.New(t)
	repo := NewRequestRepository(openTestDB(t))

	created, err := repo.CreateRequest(sampleRequest("user-1"))
	req.NoError(err)
	req.NotEmpty(created.ID)
	req.Equal(domain.RequestStatusOpen, created.Status)

	got, err := repo.GetRequest(created.ID)
	req.NoError(err)
	req.Equal(created.JobDescription, got.JobDescription)
}

func TestRequestRepository_ListByStatus(t *testing.T) {
	req := require.New(t)
	repo := NewRequestRepository(openTestDB(t))

	first, err := repo.CreateRequest(sampleRequest("user-1"))
	req.NoError(err)
	_, err = repo.CreateRequest(sampleRequest("user-1"))
	req.NoError(err)
	_, err = repo.CreateRequest(sampleRequest("someone-else"))
	req.NoError(err)

	first.Status = domain.RequestStatusCompleted
	req.NoError(repo.UpdateRequest(first))

	open, err := repo.ListByUserAndStatus("user-1", domain.RequestStatusOpen)
	req.NoError(err)
	req.Len(open, 1)

	completed, err := repo.ListByUserAndStatus("user-1", domain.RequestStatusCompleted)
	req.NoError(err)
	req.Len(completed, 1)
	req.Equal(first.ID, completed[0].ID)
}

func TestRequestRepository_Delete(t *testing.T) {
	req := require.New(t)
	repo := NewRequestRepository(openTestDB(t))

	created, err := repo.CreateRequest(sampleRequest("user-1"))
	req.NoError(err)

	req.NoError(repo.DeleteRequest(created.ID))

	_, err = repo.GetRequest(created.ID)
	req.ErrorIs(err, errors.ErrRequestNotFound)

	remaining, err := repo.ListByUserAndStatus("user-1", "")
	req.NoError(err)
	req.Empty(remaining)
}

func TestRequestRepository_ListOpen(t *testing.T) {
	req := require.New(t)
	repo := NewRequestRepository(openTestDB(t))

	first, err := repo.CreateRequest(sampleRequest("user-1"))
	req.NoError(err)
	_, err = repo.CreateRequest(sampleRequest("user-2"))
	req.NoError(err)

	open, err := repo.ListOpen()
	req.NoError(err)
	req.Len(open, 2, "the feed spans all users")

	first.Status = domain.RequestStatusCompleted
	req.NoError(repo.UpdateRequest(first))

	open, err = repo.ListOpen()
	req.NoError(err)
	req.Len(open, 1)
	req.Equal("user-2", open[0].UserID)
}

func TestRequestRepository_NotFound(t *testing.T) {
	req := require.New(t)
	repo := NewRequestRepository(openTestDB(t))

	_, err := repo.GetRequest("missing")
	req.ErrorIs(err, errors.ErrRequestNotFound)

	req.ErrorIs(repo.DeleteRequest("missing"), errors.ErrRequestNotFound)
}
