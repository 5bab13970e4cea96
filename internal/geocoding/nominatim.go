package geocoding

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/UnknownOlympus/foodbridge/internal/models"
)

const (
	// NominatimBaseURL is the public OpenStreetMap search endpoint.
	NominatimBaseURL = "https://nominatim.openstreetmap.org/search"

	// Nominatim usage policy requires a User-Agent with contact info:
	// https://operations.osmfoundation.org/policies/nominatim/
	nominatimUserAgent = "FoodBridge-Locator/1.0 (https://github.com/UnknownOlympus/foodbridge)"
	nominatimTimeout   = 10 * time.Second
)

// NominatimProvider implements the Provider interface using OpenStreetMap's Nominatim API.
// The public instance allows about one request per second.
type NominatimProvider struct {
	client   HTTPClient
	baseURL  string
	language string
	log      *slog.Logger
}

type nominatimResponse struct {
	Lat string `json:"lat"`
	Lon string `json:"lon"`
}

// Common errors for Nominatim provider.
var (
	ErrNominatimEmptyResponse = errors.New("nominatim API returned empty response")
	ErrNominatimInvalidCoords = errors.New("nominatim API returned invalid coordinates")
)

// NewNominatimProvider creates a Nominatim provider against the public endpoint.
func NewNominatimProvider(language string, log *slog.Logger) *NominatimProvider {
	return NewNominatimProviderWithClient(&http.Client{Timeout: nominatimTimeout}, language, log)
}

// NewNominatimProviderWithClient creates a Nominatim provider with a custom HTTP client.
func NewNominatimProviderWithClient(client HTTPClient, language string, log *slog.Logger) *NominatimProvider {
	if language == "" {
		language = "en"
	}
	return &NominatimProvider{
		client:   client,
		baseURL:  NominatimBaseURL,
		language: language,
		log:      log,
	}
}

// Geocode resolves address, dropping trailing components when the full address has no match.
// Pickup addresses are free text, so "Market St 5, Springfield" still lands on "Market St 5" or
// the town when the house number is unknown to OSM.
func (np *NominatimProvider) Geocode(ctx context.Context, address string) (*models.Coordinates, error) {
	np.log.DebugContext(ctx, "Geocoding using Nominatim", "address", address)

	candidates := addressFallbacks(address)
	for idx, candidate := range candidates {
		coords, err := np.lookup(ctx, candidate)
		if err == nil {
			if idx > 0 {
				np.log.InfoContext(ctx, "Geocoded using fallback address",
					"original", address, "fallback", candidate, "fallback_level", idx)
			}
			return coords, nil
		}
		if !errors.Is(err, ErrNominatimEmptyResponse) {
			return nil, err
		}
	}

	np.log.WarnContext(ctx, "All address fallbacks exhausted", "address", address, "variations_tried", len(candidates))
	return nil, ErrNominatimEmptyResponse
}

// addressFallbacks lists address followed by progressively shorter comma-separated prefixes.
func addressFallbacks(address string) []string {
	parts := strings.Split(address, ",")
	for i := range parts {
		parts[i] = strings.TrimSpace(parts[i])
	}

	var (
		seen       = make(map[string]struct{})
		candidates []string
	)
	add := func(v string) {
		if _, ok := seen[v]; v == "" || ok {
			return
		}
		seen[v] = struct{}{}
		candidates = append(candidates, v)
	}

	add(strings.TrimSpace(address))
	for end := len(parts) - 1; end >= 1; end-- {
		add(strings.Join(parts[:end], ", "))
	}

	if len(candidates) == 0 {
		return []string{""}
	}
	return candidates
}

func (np *NominatimProvider) lookup(ctx context.Context, address string) (*models.Coordinates, error) {
	query := url.Values{}
	query.Set("q", address)
	query.Set("format", "json")
	query.Set("limit", "1")
	query.Set("accept-language", np.language)

	header := http.Header{}
	header.Set("User-Agent", nominatimUserAgent)

	var results []nominatimResponse
	if err := getJSON(ctx, np.client, ProviderTypeNominatim, np.baseURL, query, header, &results); err != nil {
		np.log.ErrorContext(ctx, "Nominatim request failed", "address", address, "error", err)
		return nil, err
	}

	if len(results) == 0 {
		return nil, ErrNominatimEmptyResponse
	}

	lat, err := strconv.ParseFloat(results[0].Lat, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid latitude: %s", ErrNominatimInvalidCoords, results[0].Lat)
	}
	lon, err := strconv.ParseFloat(results[0].Lon, 64)
	if err != nil {
		return nil, fmt.Errorf("%w: invalid longitude: %s", ErrNominatimInvalidCoords, results[0].Lon)
	}

	return &models.Coordinates{Latitude: lat, Longitude: lon}, nil
}
