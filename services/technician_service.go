//go:generate go run go.uber.org/mock/mockgen -source=technician_service.go -destination=../mocks/mock_technician_service.go -package=mocks
package services

import (
	"context"
	stderrors "errors"
	"log/slog"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/samber/lo"

	"tnkr-backend/cache"
	"tnkr-backend/domain"
	"tnkr-backend/errors"
	"tnkr-backend/mail"
	"tnkr-backend/repositories"
)

const pageTechnicianProfile = "technician-profile"

var validateProfile = validator.New()

// UpsertProfileCommand carries the technician profile form.
type UpsertProfileCommand struct {
	ServicesProvided   []string `validate:"required,min=1"`
	BusinessName       string   `validate:"required"`
	BusinessRegistered bool
	IncorpNumber       string
	WebsiteLink        string `validate:"required,url"`
	SocialMediaLink    []string
	Bio                string `validate:"required"`
	Street             string `validate:"required"`
	City               string `validate:"required"`
	StateCode          string `validate:"required"`
	ZipCode            string `validate:"required"`
}

type ITechnicianService interface {
	GetProfile(ctx context.Context, userID string) (domain.TechnicianProfile, error)
	UpsertProfile(ctx context.Context, userID string, cmd UpsertProfileCommand) (domain.TechnicianProfile, error)
	VerificationStatus(ctx context.Context, userID string) (domain.VerificationStatus, error)
	RequireVerified(ctx context.Context, userID string) error
	Verify(ctx context.Context, technicianID string, approved bool) error
	ListPending(ctx context.Context) ([]domain.PendingTechnician, error)
}

type TechnicianService struct {
	technicians repositories.ITechnicianRepository
	users       repositories.IUserRepository
	cache       cache.Store
	mailer      *mail.Dispatcher
	log         *slog.Logger
	profileTTL  time.Duration
}

func NewTechnicianService(technicians repositories.ITechnicianRepository, users repositories.IUserRepository,
	cacheStore cache.Store, mailer *mail.Dispatcher, log *slog.Logger, profileTTL time.Duration) ITechnicianService {
	return &TechnicianService{
		technicians: technicians,
		users:       users,
		cache:       cacheStore,
		mailer:      mailer,
		log:         log,
		profileTTL:  profileTTL,
	}
}

// GetProfile serves the technician's own profile through the cache.
func (s *TechnicianService) GetProfile(_ context.Context, userID string) (domain.TechnicianProfile, error) {
	return cache.ReadThrough(s.cache, s.log, cache.Key(pageTechnicianProfile, userID), s.profileTTL,
		func() (domain.TechnicianProfile, error) {
			return s.technicians.GetProfile(userID)
		})
}

// UpsertProfile creates or replaces the profile. Any change drops the
// verified flag until an admin reviews again, and invalidates the cached
// profile before the response goes out.
func (s *TechnicianService) UpsertProfile(_ context.Context, userID string, cmd UpsertProfileCommand) (domain.TechnicianProfile, error) {
	if err := validateProfile.Struct(cmd); err != nil {
		return domain.TechnicianProfile{}, errors.ErrMissingFields
	}

	profile, err := s.technicians.UpsertProfile(domain.TechnicianProfile{
		UserID:             userID,
		ServicesProvided:   cmd.ServicesProvided,
		BusinessName:       cmd.BusinessName,
		BusinessRegistered: cmd.BusinessRegistered,
		IncorpNumber:       cmd.IncorpNumber,
		WebsiteLink:        cmd.WebsiteLink,
		SocialMediaLink:    cmd.SocialMediaLink,
		Bio:                cmd.Bio,
		Address: domain.Address{
			Street:    cmd.Street,
			City:      cmd.City,
			StateCode: cmd.StateCode,
			ZipCode:   cmd.ZipCode,
		},
		IsVerified: false, // admin review pending
	})
	if err != nil {
		return domain.TechnicianProfile{}, err
	}

	cache.Invalidate(s.cache, s.log, cache.Key(pageTechnicianProfile, userID))
	return profile, nil
}

// VerificationStatus reports where the technician stands in the review
// workflow without failing when no profile exists yet.
func (s *TechnicianService) VerificationStatus(_ context.Context, userID string) (domain.VerificationStatus, error) {
	profile, err := s.technicians.GetProfile(userID)
	if err != nil {
		if stderrors.Is(err, errors.ErrProfileNotFound) {
			return domain.VerificationStatus{NeedsSetup: true}, nil
		}
		return domain.VerificationStatus{}, err
	}

	return domain.VerificationStatus{
		HasProfile:        true,
		IsVerified:        profile.IsVerified,
		NeedsVerification: !profile.IsVerified,
	}, nil
}

// RequireVerified gates technician-only routes: no profile means setup is
// needed, an unverified profile means the review is still pending.
func (s *TechnicianService) RequireVerified(_ context.Context, userID string) error {
	profile, err := s.technicians.GetProfile(userID)
	if err != nil {
		if stderrors.Is(err, errors.ErrProfileNotFound) {
			return errors.ErrProfileNotSetUp
		}
		return err
	}
	if !profile.IsVerified {
		return errors.ErrTechnicianNotVerified
	}
	return nil
}

// Verify records the admin's decision and notifies the technician by email,
// fire-and-forget.
func (s *TechnicianService) Verify(_ context.Context, technicianID string, approved bool) error {
	if err := s.technicians.SetVerified(technicianID, approved); err != nil {
		return err
	}

	cache.Invalidate(s.cache, s.log, cache.Key(pageTechnicianProfile, technicianID))

	user, err := s.users.GetUserByID(technicianID)
	if err != nil {
		s.log.Warn("technician user lookup failed, skipping decision email", "technician", technicianID, "error", err)
		return nil
	}
	s.mailer.Dispatch(mail.TechnicianDecisionEmail(user.Email, approved))
	return nil
}

// ListPending returns the admin review queue with applicant contact details.
func (s *TechnicianService) ListPending(_ context.Context) ([]domain.PendingTechnician, error) {
	profiles, err := s.technicians.ListPending()
	if err != nil {
		return nil, err
	}

	return lo.Map(profiles, func(profile domain.TechnicianProfile, _ int) domain.PendingTechnician {
		pending := domain.PendingTechnician{Profile: profile}
		user, err := s.users.GetUserByID(profile.UserID)
		if err != nil {
			s.log.Warn("applicant lookup failed", "technician", profile.UserID, "error", err)
			return pending
		}
		pending.Applicant = user.View()
		pending.Email = user.Email
		pending.Phone = user.Phone
		return pending
	}), nil
}
