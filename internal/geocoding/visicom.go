package geocoding

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"time"

	"github.com/UnknownOlympus/foodbridge/internal/models"
	"golang.org/x/time/rate"
)

// VisicomBaseURL -- Visicom API base URL.
const VisicomBaseURL = "https://api.visicom.ua/data-api/5.0/en/geocode.json"

// VisicomProvider implements geocoding using Visicom API.
type VisicomProvider struct {
	client  HTTPClient
	baseURL string
	apiKey  string
	log     *slog.Logger
	limiter *rate.Limiter
}

// Common errors for Visicom provider.
var (
	ErrVisicomEmptyResponse = errors.New("visicom API returned empty response")
	ErrVisicomEmptyAddress  = errors.New("visicom provider got empty address")
	ErrVisicomInvalidCoords = errors.New("visicom API returned invalid coordinates")
	ErrVisicomUnauthorized  = errors.New("visicom API unauthorized (invalid API key)")
)

type visicomResponse struct {
	Centroid struct {
		Coordinates []float64 `json:"coordinates"` // [lon, lat]
	} `json:"geo_centroid"`
}

// NewVisicomProvider creates a new Visicom geocoding provider.
func NewVisicomProvider(apiKey string, rateLimit int, log *slog.Logger) *VisicomProvider {
	const timeout = 10 * time.Second

	return NewVisicomProviderWithClient(
		&http.Client{Timeout: timeout},
		apiKey,
		rate.NewLimiter(rate.Limit(rateLimit), rateLimit),
		log,
	)
}

// NewVisicomProviderWithClient allows injecting custom HTTP client.
func NewVisicomProviderWithClient(
	client HTTPClient,
	apiKey string,
	limiter *rate.Limiter,
	log *slog.Logger,
) *VisicomProvider {
	return &VisicomProvider{
		client:  client,
		baseURL: VisicomBaseURL,
		apiKey:  apiKey,
		log:     log,
		limiter: limiter,
	}
}

// Geocode converts address into geographic coordinates using Visicom API.
func (vp *VisicomProvider) Geocode(ctx context.Context, address string) (*models.Coordinates, error) {
	const coordsListLength = 2

	if address == "" {
		return nil, ErrVisicomEmptyAddress
	}

	if err := vp.limiter.Wait(ctx); err != nil {
		return nil, fmt.Errorf("rate limit exceeded: %w", err)
	}

	vp.log.DebugContext(ctx, "Geocoding using Visicom", "address", address)

	query := url.Values{}
	query.Set("text", address)
	query.Set("limit", "1")
	query.Set("key", vp.apiKey)

	header := http.Header{}
	header.Set("Accept", "application/json")

	var result visicomResponse
	err := getJSON(ctx, vp.client, ProviderTypeVisicom, vp.baseURL, query, header, &result)
	if err != nil {
		var apiErr *APIError
		if errors.As(err, &apiErr) &&
			(apiErr.StatusCode == http.StatusUnauthorized || apiErr.StatusCode == http.StatusForbidden) {
			return nil, ErrVisicomUnauthorized
		}
		return nil, err
	}

	coords := result.Centroid.Coordinates
	switch len(coords) {
	case 0:
		return nil, ErrVisicomEmptyResponse
	case coordsListLength:
	default:
		return nil, ErrVisicomInvalidCoords
	}

	vp.log.DebugContext(ctx, "Visicom found result", "address", address, "lat", coords[1], "lon", coords[0])

	return &models.Coordinates{Latitude: coords[1], Longitude: coords[0]}, nil
}
