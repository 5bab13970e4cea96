// Package feed builds the ranked listing views of the platform and runs the
// status-changing actions against the backend.
package feed

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/UnknownOlympus/foodbridge/internal/cache"
	"github.com/UnknownOlympus/foodbridge/internal/metrics"
	"github.com/UnknownOlympus/foodbridge/internal/models"
	"github.com/UnknownOlympus/foodbridge/internal/status"
)

const maxPageSize = 100

// Errors returned by the feed. Handlers map them to HTTP statuses.
var (
	ErrNotFound          = errors.New("listing not found")
	ErrInvalidTransition = errors.New("invalid status transition")
	ErrForbidden         = errors.New("action not allowed for this session")
	ErrUnauthenticated   = errors.New("login required")
	ErrInvalidFilter     = errors.New("invalid status filter")
	ErrInvalidKind       = errors.New("invalid listing kind")
	ErrInvalidView       = errors.New("invalid feed view")
)

// Store is the listing read-model.
type Store interface {
	ListListings(ctx context.Context, kind models.Kind) ([]models.Listing, error)
	ListByOwner(ctx context.Context, kind models.Kind, ownerID int64) ([]models.Listing, error)
	GetListing(ctx context.Context, kind models.Kind, id int64) (*models.Listing, error)
	UpdateStatus(ctx context.Context, kind models.Kind, id int64, st status.Status) error
	DeleteListing(ctx context.Context, kind models.Kind, id int64) error
}

// Backend is the source of truth for listings and the target of every change.
type Backend interface {
	ListDonationsByDonor(ctx context.Context, donorID int64) ([]models.Listing, error)
	ListRequestsByRecipient(ctx context.Context, recipientID int64) ([]models.Listing, error)
	UpdateDonation(ctx context.Context, listing models.Listing) error
	UpdateRequest(ctx context.Context, listing models.Listing) error
	PatchDonationStatus(ctx context.Context, id int64, st status.Status, remarks string) error
	DeleteDonation(ctx context.Context, id int64) error
	DeleteRequest(ctx context.Context, id int64) error
	NotifyVolunteers(ctx context.Context, notice models.VolunteerNotice) error
	GetDonor(ctx context.Context, id int64) (*models.Donor, error)
}

// Cache holds listing snapshots between requests.
type Cache interface {
	Listings(ctx context.Context, kind models.Kind) ([]models.Listing, error)
	StoreListings(ctx context.Context, kind models.Kind, listings []models.Listing) error
	Invalidate(ctx context.Context, kinds ...models.Kind) error
}

// Service serves the feeds.
type Service struct {
	store    Store
	backend  Backend
	cache    Cache
	metrics  *metrics.Metrics
	pageSize int
	log      *slog.Logger
}

// NewService creates a feed service. cache may be nil to always read the store.
func NewService(
	store Store,
	backend Backend,
	cache Cache,
	metrics *metrics.Metrics,
	pageSize int,
	log *slog.Logger,
) *Service {
	return &Service{
		store:    store,
		backend:  backend,
		cache:    cache,
		metrics:  metrics,
		pageSize: pageSize,
		log:      log,
	}
}

// listings reads the snapshot of kind through the cache.
func (s *Service) listings(ctx context.Context, kind models.Kind) ([]models.Listing, error) {
	if s.cache != nil {
		cached, err := s.cache.Listings(ctx, kind)
		switch {
		case err == nil:
			s.metrics.CacheLookups.WithLabelValues("hit").Inc()
			return cached, nil
		case errors.Is(err, cache.ErrMiss):
			s.metrics.CacheLookups.WithLabelValues("miss").Inc()
		default:
			s.metrics.CacheLookups.WithLabelValues("error").Inc()
			s.log.WarnContext(ctx, "Listing cache unavailable", "kind", kind, "error", err)
		}
	}

	listings, err := s.store.ListListings(ctx, kind)
	if err != nil {
		return nil, fmt.Errorf("failed to load %s listings: %w", kind, err)
	}

	if s.cache != nil {
		if err = s.cache.StoreListings(ctx, kind, listings); err != nil {
			s.log.WarnContext(ctx, "Failed to cache listings", "kind", kind, "error", err)
		}
	}

	return listings, nil
}

// invalidate drops cached snapshots after a change. Failures only delay freshness until the TTL.
func (s *Service) invalidate(ctx context.Context, kinds ...models.Kind) {
	if s.cache == nil {
		return
	}
	if err := s.cache.Invalidate(ctx, kinds...); err != nil {
		s.log.WarnContext(ctx, "Failed to invalidate listing cache", "kinds", kinds, "error", err)
	}
}

// InvalidateAll drops every cached snapshot.
func (s *Service) InvalidateAll(ctx context.Context) {
	s.invalidate(ctx)
}

func filter(listings []models.Listing, keep func(models.Listing) bool) []models.Listing {
	out := make([]models.Listing, 0, len(listings))
	for _, l := range listings {
		if keep(l) {
			out = append(out, l)
		}
	}
	return out
}
