package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

type Metrics struct {
	GeocodeProcessed *prometheus.CounterVec
	GeocodeErrors    prometheus.Counter
	GeocodeSeconds   *prometheus.HistogramVec
	ActiveWorkers    prometheus.Gauge
	SyncRuns         *prometheus.CounterVec
	SyncedListings   *prometheus.GaugeVec
	BackendSeconds   *prometheus.HistogramVec
	FeedRequests     *prometheus.CounterVec
	CacheLookups     *prometheus.CounterVec
}

func NewMetrics(reg prometheus.Registerer) *Metrics {
	return &Metrics{
		GeocodeProcessed: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "foodbridge_geocoding_listings_processed_total",
			Help: "Total number of listings processed by the geocoding workers.",
		}, []string{"status"}),
		GeocodeErrors: promauto.With(reg).NewCounter(prometheus.CounterOpts{
			Name: "foodbridge_geocoding_provider_api_errors_total",
			Help: "Total number of errors received from the geocoding provider API.",
		}),
		GeocodeSeconds: promauto.With(reg).NewHistogramVec(prometheus.HistogramOpts{
			Name:    "foodbridge_geocoding_provider_request_duration_seconds",
			Help:    "Duration of requests to the geocoding provider API.",
			Buckets: prometheus.DefBuckets,
		}, []string{"provider"}),
		ActiveWorkers: promauto.With(reg).NewGauge(prometheus.GaugeOpts{
			Name: "foodbridge_geocoding_active_workers",
			Help: "Current number of active workers geocoding listings.",
		}),
		SyncRuns: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "foodbridge_sync_runs_total",
			Help: "Total number of listing snapshot syncs from the backend.",
		}, []string{"status"}),
		SyncedListings: promauto.With(reg).NewGaugeVec(prometheus.GaugeOpts{
			Name: "foodbridge_synced_listings",
			Help: "Number of listings in the latest snapshot, by kind.",
		}, []string{"kind"}),
		BackendSeconds: promauto.With(reg).NewHistogramVec(prometheus.HistogramOpts{
			Name:    "foodbridge_backend_request_duration_seconds",
			Help:    "Duration of requests to the food-donation backend.",
			Buckets: prometheus.DefBuckets,
		}, []string{"operation"}),
		FeedRequests: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "foodbridge_feed_requests_total",
			Help: "Total number of feed requests, by view and ordering.",
		}, []string{"view", "order"}),
		CacheLookups: promauto.With(reg).NewCounterVec(prometheus.CounterOpts{
			Name: "foodbridge_cache_lookups_total",
			Help: "Total number of snapshot cache lookups, by result.",
		}, []string{"result"}),
	}
}
