package services

import (
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	"tnkr-backend/domain"
	"tnkr-backend/errors"
	"tnkr-backend/mail"
	"tnkr-backend/mocks"
)

type fakeTechnicianRepo struct {
	profiles map[string]domain.TechnicianProfile
	getCalls int
}

func newFakeTechnicianRepo() *fakeTechnicianRepo {
	return &fakeTechnicianRepo{profiles: make(map[string]domain.TechnicianProfile)}
}

func (f *fakeTechnicianRepo) UpsertProfile(profile domain.TechnicianProfile) (domain.TechnicianProfile, error) {
	profile.UpdatedAt = time.Now().UTC()
	f.profiles[profile.UserID] = profile
	return profile, nil
}

func (f *fakeTechnicianRepo) GetProfile(userID string) (domain.TechnicianProfile, error) {
	f.getCalls++
	profile, ok := f.profiles[userID]
	if !ok {
		return domain.TechnicianProfile{}, errors.ErrProfileNotFound
	}
	return profile, nil
}

func (f *fakeTechnicianRepo) SetVerified(userID string, verified bool) error {
	profile, ok := f.profiles[userID]
	if !ok {
		return errors.ErrProfileNotFound
	}
	profile.IsVerified = verified
	f.profiles[userID] = profile
	return nil
}

func (f *fakeTechnicianRepo) ListPending() ([]domain.TechnicianProfile, error) {
	var pending []domain.TechnicianProfile
	for _, profile := range f.profiles {
		if !profile.IsVerified {
			pending = append(pending, profile)
		}
	}
	return pending, nil
}

func validProfileCommand() UpsertProfileCommand {
	return UpsertProfileCommand{
		ServicesProvided: []string{"cleaning"},
		BusinessName:     "Sole Revival",
		WebsiteLink:      "https://solerevival.example.com",
		Bio:              "Fifteen years of restorations.",
		Street:           "1 Main St",
		City:             "Austin",
		StateCode:        "TX",
		ZipCode:          "78701",
	}
}

type technicianFixture struct {
	svc    ITechnicianService
	repo   *fakeTechnicianRepo
	users  *mocks.MockIUserRepository
	sender *recordingSender
	mailer *mail.Dispatcher
}

func newTechnicianFixture(t *testing.T) *technicianFixture {
	ctrl := gomock.NewController(t)
	repo := newFakeTechnicianRepo()
	users := mocks.NewMockIUserRepository(ctrl)
	sender := &recordingSender{}
	mailer := mail.NewDispatcher(sender, slog.Default())
	svc := NewTechnicianService(repo, users, newMemoryCache(), mailer, slog.Default(), time.Hour)
	return &technicianFixture{svc: svc, repo: repo, users: users, sender: sender, mailer: mailer}
}

func TestTechnicianService_UpsertProfile(t *testing.T) {
	t.Run("saving always resets verification", func(t *testing.T) {
		req := require.New(t)
		f := newTechnicianFixture(t)

		f.repo.profiles["tech-1"] = domain.TechnicianProfile{UserID: "tech-1", IsVerified: true}

		profile, err := f.svc.UpsertProfile(context.Background(), "tech-1", validProfileCommand())
		req.NoError(err)
		req.False(profile.IsVerified, "edits go back through review")
	})

	t.Run("rejects incomplete profiles", func(t *testing.T) {
		req := require.New(t)
		f := newTechnicianFixture(t)

		cmd := validProfileCommand()
		cmd.WebsiteLink = "not-a-url"

		_, err := f.svc.UpsertProfile(context.Background(), "tech-1", cmd)
		req.ErrorIs(err, errors.ErrMissingFields)
	})
}

func TestTechnicianService_GetProfile_Cached(t *testing.T) {
	req := require.New(t)
	f := newTechnicianFixture(t)

	f.repo.profiles["tech-1"] = domain.TechnicianProfile{UserID: "tech-1", BusinessName: "Sole Revival"}

	first, err := f.svc.GetProfile(context.Background(), "tech-1")
	req.NoError(err)
	req.Equal("Sole Revival", first.BusinessName)
	req.Equal(1, f.repo.getCalls)

	_, err = f.svc.GetProfile(context.Background(), "tech-1")
	req.NoError(err)
	req.Equal(1, f.repo.getCalls, "second read must be a cache hit")
}

func TestTechnicianService_VerificationStatus(t *testing.T) {
	req := require.New(t)
	f := newTechnicianFixture(t)

	// No profile yet.
	status, err := f.svc.VerificationStatus(context.Background(), "tech-1")
	req.NoError(err)
	req.True(status.NeedsSetup)
	req.False(status.HasProfile)

	// Unverified profile.
	f.repo.profiles["tech-1"] = domain.TechnicianProfile{UserID: "tech-1"}
	status, err = f.svc.VerificationStatus(context.Background(), "tech-1")
	req.NoError(err)
	req.True(status.HasProfile)
	req.True(status.NeedsVerification)

	// Verified.
	req.NoError(f.repo.SetVerified("tech-1", true))
	status, err = f.svc.VerificationStatus(context.Background(), "tech-1")
	req.NoError(err)
	req.True(status.IsVerified)
	req.False(status.NeedsVerification)
}

func TestTechnicianService_RequireVerified(t *testing.T) {
	req := require.New(t)
	f := newTechnicianFixture(t)

	req.ErrorIs(f.svc.RequireVerified(context.Background(), "tech-1"), errors.ErrProfileNotSetUp)

	f.repo.profiles["tech-1"] = domain.TechnicianProfile{UserID: "tech-1"}
	req.ErrorIs(f.svc.RequireVerified(context.Background(), "tech-1"), errors.ErrTechnicianNotVerified)

	req.NoError(f.repo.SetVerified("tech-1", true))
	req.NoError(f.svc.RequireVerified(context.Background(), "tech-1"))
}

func TestTechnicianService_Verify(t *testing.T) {
	req := require.New(t)
	f := newTechnicianFixture(t)

	f.repo.profiles["tech-1"] = domain.TechnicianProfile{UserID: "tech-1"}
	f.users.EXPECT().GetUserByID("tech-1").
		Return(domain.User{ID: "tech-1", Email: "tech@example.com"}, nil)

	req.NoError(f.svc.Verify(context.Background(), "tech-1", true))
	req.True(f.repo.profiles["tech-1"].IsVerified)

	f.mailer.Wait()
	emails := f.sender.sent()
	req.Len(emails, 1)
	req.Equal("tech@example.com", emails[0].To)
}

func TestTechnicianService_ListPending(t *testing.T) {
	req := require.New(t)
	f := newTechnicianFixture(t)

	f.repo.profiles["tech-1"] = domain.TechnicianProfile{UserID: "tech-1", BusinessName: "Sole Revival"}
	f.users.EXPECT().GetUserByID("tech-1").
		Return(domain.User{ID: "tech-1", FirstName: "Sam", Email: "tech@example.com", Phone: "+14155550101"}, nil)

	pending, err := f.svc.ListPending(context.Background())
	req.NoError(err)
	req.Len(pending, 1)
	req.Equal("Sam", pending[0].Applicant.FirstName)
	req.Equal("tech@example.com", pending[0].Email)
	req.Equal("+14155550101", pending[0].Phone)
}
