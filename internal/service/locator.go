package service

import (
	"context"
	"log/slog"
	"sync"
	"time"

	"github.com/UnknownOlympus/foodbridge/internal/geocoding"
	"github.com/UnknownOlympus/foodbridge/internal/metrics"
	"github.com/UnknownOlympus/foodbridge/internal/models"
	"github.com/UnknownOlympus/foodbridge/internal/repository"
)

const locatorBatchSize = 100

// LocatorService fills in coordinates for listings that were posted with an address only.
// It polls the read-model on a fixed interval and geocodes each batch with a worker pool.
type LocatorService struct {
	log           *slog.Logger
	repo          repository.Interface
	provider      geocoding.Provider
	providerName  string // label for metrics
	metrics       *metrics.Metrics
	numWorkers    int
	pollInterval  time.Duration
	addressPrefix string // e.g. "Springfield, " to bias ambiguous street names
	invalidate    func(ctx context.Context)
}

// NewLocatorService creates a new instance of LocatorService.
func NewLocatorService(
	log *slog.Logger,
	repo repository.Interface,
	provider geocoding.Provider,
	providerName string,
	metrics *metrics.Metrics,
	numWorkers int,
	pollInterval time.Duration,
	addressPrefix string,
) *LocatorService {
	return &LocatorService{
		log:           log,
		repo:          repo,
		provider:      provider,
		providerName:  providerName,
		metrics:       metrics,
		numWorkers:    max(numWorkers, 1),
		pollInterval:  pollInterval,
		addressPrefix: addressPrefix,
	}
}

// OnLocated registers fn to run after a batch stored at least one new position,
// typically to drop cached snapshots that still lack it.
func (ls *LocatorService) OnLocated(fn func(ctx context.Context)) {
	ls.invalidate = fn
}

// Run polls for listings to geocode until ctx is cancelled.
func (ls *LocatorService) Run(ctx context.Context) {
	ticker := time.NewTicker(ls.pollInterval)
	defer ticker.Stop()

	ls.log.InfoContext(ctx, "Locator service started", "interval", ls.pollInterval, "workers", ls.numWorkers)

	for {
		select {
		case <-ctx.Done():
			ls.log.InfoContext(ctx, "Locator service stopped.")
			return
		case <-ticker.C:
			ls.processBatch(ctx)
		}
	}
}

// processBatch fetches listings without coordinates and geocodes them with a pool of workers.
// It returns the number of listings that received coordinates.
func (ls *LocatorService) processBatch(ctx context.Context) int {
	listings, err := ls.repo.FetchListingsForGeocoding(ctx, locatorBatchSize)
	if err != nil {
		ls.log.ErrorContext(ctx, "Failed to fetch listings for geocoding", "error", err)
		return 0
	}
	if len(listings) == 0 {
		ls.log.DebugContext(ctx, "No listings to geocode.")
		return 0
	}

	ls.log.InfoContext(ctx, "Found listings to geocode. Starting worker pool.",
		"jobs", len(listings), "num_workers", ls.numWorkers)

	jobs := make(chan models.Listing, len(listings))
	results := make(chan bool, len(listings))
	var wgr sync.WaitGroup

	for i := 1; i <= ls.numWorkers; i++ {
		wgr.Add(1)
		go ls.worker(ctx, i, &wgr, jobs, results)
	}

	for _, listing := range listings {
		jobs <- listing
	}
	close(jobs)

	wgr.Wait()
	close(results)

	located := 0
	for ok := range results {
		if ok {
			located++
		}
	}

	if located > 0 && ls.invalidate != nil {
		ls.invalidate(ctx)
	}

	ls.log.InfoContext(ctx, "Geocoding batch finished", "located", located, "total", len(listings))
	return located
}

func (ls *LocatorService) worker(
	ctx context.Context,
	idx int,
	wg *sync.WaitGroup,
	jobs <-chan models.Listing,
	results chan<- bool,
) {
	defer wg.Done()
	for listing := range jobs {
		ls.metrics.ActiveWorkers.Inc()
		results <- ls.locate(ctx, idx, listing)
		ls.metrics.ActiveWorkers.Dec()
	}
}

func (ls *LocatorService) locate(ctx context.Context, idx int, listing models.Listing) bool {
	log := ls.log.With("worker", idx, "kind", listing.Kind, "listing", listing.ID)
	log.DebugContext(ctx, "Geocoding listing address")

	start := time.Now()
	coords, err := ls.provider.Geocode(ctx, ls.addressPrefix+listing.Address)
	ls.metrics.GeocodeSeconds.WithLabelValues(ls.providerName).Observe(time.Since(start).Seconds())

	if err != nil {
		log.ErrorContext(ctx, "Failed to geocode", "error", err)
		ls.metrics.GeocodeProcessed.WithLabelValues("failure").Inc()
		ls.metrics.GeocodeErrors.Inc()

		if err = ls.repo.IncrementFailureCount(ctx, listing.Kind, listing.ID, err.Error()); err != nil {
			log.ErrorContext(ctx, "Could not update failure count for listing", "error", err)
		}
		return false
	}

	ls.metrics.GeocodeProcessed.WithLabelValues("success").Inc()

	if err = ls.repo.UpdateListingCoordinates(ctx, listing.Kind, listing.ID, *coords); err != nil {
		log.ErrorContext(ctx, "Failed to update coordinates for listing", "error", err)
		return false
	}

	log.DebugContext(ctx, "Listing located", "lat", coords.Latitude, "lon", coords.Longitude)
	return true
}
