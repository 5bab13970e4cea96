package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/UnknownOlympus/foodbridge/internal/metrics"
	"github.com/UnknownOlympus/foodbridge/internal/models"
	"github.com/UnknownOlympus/foodbridge/internal/repository"
	"github.com/robfig/cron/v3"
)

// Source fetches full listing snapshots from the backend.
type Source interface {
	ListDonations(ctx context.Context) ([]models.Listing, error)
	ListRequests(ctx context.Context) ([]models.Listing, error)
}

// Invalidator drops cached snapshots.
type Invalidator interface {
	Invalidate(ctx context.Context, kinds ...models.Kind) error
}

// SyncService mirrors the backend's donations and requests into the read-model on a cron schedule.
type SyncService struct {
	log      *slog.Logger
	source   Source
	repo     repository.Interface
	cache    Invalidator
	metrics  *metrics.Metrics
	schedule string
	timeout  time.Duration
}

// NewSyncService creates a sync job. cache may be nil.
func NewSyncService(
	log *slog.Logger,
	source Source,
	repo repository.Interface,
	cache Invalidator,
	metrics *metrics.Metrics,
	schedule string,
) *SyncService {
	return &SyncService{
		log:      log,
		source:   source,
		repo:     repo,
		cache:    cache,
		metrics:  metrics,
		schedule: schedule,
		timeout:  time.Minute,
	}
}

// Run syncs once immediately, then on every tick of the schedule until ctx is cancelled.
func (ss *SyncService) Run(ctx context.Context) error {
	scheduler := cron.New(cron.WithLocation(time.UTC))

	_, err := scheduler.AddFunc(ss.schedule, func() {
		if errSync := ss.SyncOnce(ctx); errSync != nil {
			ss.log.ErrorContext(ctx, "Listing sync failed", "error", errSync)
		}
	})
	if err != nil {
		return fmt.Errorf("failed to schedule listing sync %q: %w", ss.schedule, err)
	}

	if err = ss.SyncOnce(ctx); err != nil {
		ss.log.ErrorContext(ctx, "Initial listing sync failed", "error", err)
	}

	scheduler.Start()
	ss.log.InfoContext(ctx, "Sync service started", "schedule", ss.schedule)

	<-ctx.Done()
	<-scheduler.Stop().Done()
	ss.log.InfoContext(ctx, "Sync service stopped.")

	return nil
}

// SyncOnce pulls both snapshots and stores them. A failure of one kind does not stop the other.
func (ss *SyncService) SyncOnce(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, ss.timeout)
	defer cancel()

	var failed []error
	for _, kind := range []models.Kind{models.KindDonation, models.KindRequest} {
		if err := ss.syncKind(ctx, kind); err != nil {
			failed = append(failed, err)
		}
	}

	if ss.cache != nil {
		if err := ss.cache.Invalidate(ctx); err != nil {
			ss.log.WarnContext(ctx, "Failed to invalidate listing cache", "error", err)
		}
	}

	if len(failed) > 0 {
		ss.metrics.SyncRuns.WithLabelValues("failure").Inc()
		return fmt.Errorf("failed to sync listings: %w", errors.Join(failed...))
	}

	ss.metrics.SyncRuns.WithLabelValues("success").Inc()
	return nil
}

func (ss *SyncService) syncKind(ctx context.Context, kind models.Kind) error {
	fetch := ss.source.ListDonations
	if kind == models.KindRequest {
		fetch = ss.source.ListRequests
	}

	listings, err := fetch(ctx)
	if err != nil {
		return fmt.Errorf("failed to fetch %s snapshot: %w", kind, err)
	}

	if err = ss.repo.UpsertListings(ctx, kind, listings); err != nil {
		return fmt.Errorf("failed to store %s snapshot: %w", kind, err)
	}

	ss.metrics.SyncedListings.WithLabelValues(string(kind)).Set(float64(len(listings)))
	ss.log.InfoContext(ctx, "Listing snapshot synced", "kind", kind, "count", len(listings))

	return nil
}
