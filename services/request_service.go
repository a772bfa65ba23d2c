//go:generate go run go.uber.org/mock/mockgen -source=request_service.go -destination=../mocks/mock_request_service.go -package=mocks
package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/go-playground/validator/v10"

	"tnkr-backend/blob"
	"tnkr-backend/cache"
	"tnkr-backend/domain"
	"tnkr-backend/errors"
	"tnkr-backend/repositories"
)

// Logical page names for the cache keys of the request listings.
const (
	pageCurrentRequests   = "current-requests"
	pageCompletedRequests = "completed-requests"
	pageOpenRequests      = "open-requests"
)

// marketplaceScope keys the cross-user open-requests feed, which is not
// scoped to any single user.
const marketplaceScope = "all"

var validateRequest = validator.New()

// CreateRequestCommand is the service-request form plus its photos.
type CreateRequestCommand struct {
	JobDescription       string  `validate:"required"`
	Budget               int     `validate:"required,gt=0"`
	ShoeSize             float64 `validate:"required,gt=0"`
	Brand                string  `validate:"required"`
	ShoeName             string  `validate:"required"`
	ReleaseYear          int     `validate:"omitempty,gte=1900"`
	PreviouslyWorkedWith string
	Service              string   `validate:"required"`
	Subtypes             []string `validate:"required,min=1"`
	Street               string   `validate:"required"`
	City                 string   `validate:"required"`
	StateCode            string   `validate:"required"`
	ZipCode              string   `validate:"required"`
	RecommendedPrice     int
	Photos               []Upload
}

type IRequestService interface {
	CreateRequest(ctx context.Context, userID string, cmd CreateRequestCommand) (domain.Request, error)
	ListRequests(ctx context.Context, userID, status string) ([]domain.Request, error)
	ListOpenRequests(ctx context.Context) ([]domain.Request, error)
	UpdateStatus(ctx context.Context, userID, requestID, status string) (domain.Request, error)
	DeleteRequest(ctx context.Context, userID, requestID string) error
}

type RequestService struct {
	requests repositories.IRequestRepository
	storage  blob.IStorage
	cache    cache.Store
	log      *slog.Logger
	listTTL  time.Duration
}

func NewRequestService(requests repositories.IRequestRepository, storage blob.IStorage,
	cacheStore cache.Store, log *slog.Logger, listTTL time.Duration) IRequestService {
	return &RequestService{
		requests: requests,
		storage:  storage,
		cache:    cacheStore,
		log:      log,
		listTTL:  listTTL,
	}
}

// CreateRequest persists the request, uploads its photos under the request's
// own prefix, and invalidates the owner's cached listings before returning
// so the next read cannot serve the pre-write state.
func (s *RequestService) CreateRequest(ctx context.Context, userID string, cmd CreateRequestCommand) (domain.Request, error) {
	if err := validateRequest.Struct(cmd); err != nil {
		return domain.Request{}, errors.ErrMissingFields
	}

	request, err := s.requests.CreateRequest(domain.Request{
		UserID:               userID,
		JobDescription:       cmd.JobDescription,
		Budget:               cmd.Budget,
		ShoeSize:             cmd.ShoeSize,
		Brand:                cmd.Brand,
		ShoeName:             cmd.ShoeName,
		ReleaseYear:          cmd.ReleaseYear,
		PreviouslyWorkedWith: cmd.PreviouslyWorkedWith,
		Service:              cmd.Service,
		Subtypes:             cmd.Subtypes,
		RecommendedPrice:     cmd.RecommendedPrice,
		Address: domain.Address{
			Street:    cmd.Street,
			City:      cmd.City,
			StateCode: cmd.StateCode,
			ZipCode:   cmd.ZipCode,
		},
		Status: domain.RequestStatusOpen,
	})
	if err != nil {
		return domain.Request{}, err
	}

	// Photos are keyed under the request id, so upload follows the create.
	for _, photo := range cmd.Photos {
		key := blob.RequestPhotoKey(request.ID, userID, photo.Filename)
		url, err := s.storage.Upload(ctx, key, photo.Data, photo.ContentType)
		if err != nil {
			return domain.Request{}, err
		}
		request.Pictures = append(request.Pictures, url)
	}
	if len(request.Pictures) > 0 {
		if err := s.requests.UpdateRequest(request); err != nil {
			return domain.Request{}, err
		}
	}

	s.invalidateListings(userID)
	return request, nil
}

// ListRequests serves the current or completed listing through the cache.
func (s *RequestService) ListRequests(_ context.Context, userID, status string) ([]domain.Request, error) {
	page := pageCurrentRequests
	if status == domain.RequestStatusCompleted {
		page = pageCompletedRequests
	}

	return cache.ReadThrough(s.cache, s.log, cache.Key(page, userID), s.listTTL, func() ([]domain.Request, error) {
		return s.requests.ListByUserAndStatus(userID, status)
	})
}

// ListOpenRequests serves the marketplace feed technicians browse: every
// open request across all collectors, cache-aside like the per-user listings.
func (s *RequestService) ListOpenRequests(_ context.Context) ([]domain.Request, error) {
	return cache.ReadThrough(s.cache, s.log, cache.Key(pageOpenRequests, marketplaceScope), s.listTTL,
		func() ([]domain.Request, error) {
			return s.requests.ListOpen()
		})
}

// UpdateStatus moves a request between the open and completed listings.
// Only the owner may do it.
func (s *RequestService) UpdateStatus(_ context.Context, userID, requestID, status string) (domain.Request, error) {
	if status != domain.RequestStatusOpen && status != domain.RequestStatusCompleted {
		return domain.Request{}, errors.ErrMissingFields
	}

	request, err := s.ownedRequest(userID, requestID)
	if err != nil {
		return domain.Request{}, err
	}

	request.Status = status
	if err := s.requests.UpdateRequest(request); err != nil {
		return domain.Request{}, err
	}

	s.invalidateListings(userID)
	return request, nil
}

// DeleteRequest removes the record and sweeps its photos. Photo cleanup is
// best effort and never blocks the deletion.
func (s *RequestService) DeleteRequest(ctx context.Context, userID, requestID string) error {
	request, err := s.ownedRequest(userID, requestID)
	if err != nil {
		return err
	}

	if err := s.requests.DeleteRequest(request.ID); err != nil {
		return err
	}

	s.storage.DeleteByPrefix(ctx, blob.RequestPhotoPrefix(request.ID))
	s.invalidateListings(userID)
	return nil
}

func (s *RequestService) ownedRequest(userID, requestID string) (domain.Request, error) {
	request, err := s.requests.GetRequest(requestID)
	if err != nil {
		return domain.Request{}, err
	}
	if request.UserID != userID {
		return domain.Request{}, errors.ErrForbidden
	}
	return request, nil
}

func (s *RequestService) invalidateListings(userID string) {
	cache.Invalidate(s.cache, s.log,
		cache.Key(pageCurrentRequests, userID),
		cache.Key(pageCompletedRequests, userID),
		cache.Key(pageOpenRequests, marketplaceScope),
	)
}
