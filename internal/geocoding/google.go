package geocoding

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/UnknownOlympus/foodbridge/internal/models"
	"googlemaps.github.io/maps"
)

// GoogleAPIClient is the part of *maps.Client the provider uses.
type GoogleAPIClient interface {
	Geocode(ctx context.Context, r *maps.GeocodingRequest) ([]maps.GeocodingResult, error)
}

// GoogleOptions tune how listing addresses are resolved.
type GoogleOptions struct {
	// Language of the returned address components, e.g. "en".
	Language string
	// Region is a ccTLD such as "ua" that biases ambiguous street names towards one country.
	Region string
}

// GoogleProvider geocodes listing addresses with the Google Maps Geocoding API.
type GoogleProvider struct {
	client GoogleAPIClient
	opts   GoogleOptions
	log    *slog.Logger
}

// ErrEmptyResponse is returned when the Google Maps API finds nothing for an address.
var ErrEmptyResponse = errors.New("get empty response from Google Maps API")

// NewGoogleProvider wraps an existing Google Maps client.
func NewGoogleProvider(client GoogleAPIClient, opts GoogleOptions, log *slog.Logger) *GoogleProvider {
	opts.Region = strings.ToLower(strings.TrimSpace(opts.Region))
	return &GoogleProvider{client: client, opts: opts, log: log}
}

// Geocode returns the position of a listing address. Exact matches win over partial ones;
// a partial match is still used when nothing better came back, since donors often type
// addresses loosely.
func (gp *GoogleProvider) Geocode(ctx context.Context, address string) (*models.Coordinates, error) {
	gp.log.DebugContext(ctx, "Geocoding using Google Maps", "address", address, "region", gp.opts.Region)

	req := maps.GeocodingRequest{Address: address, Language: gp.opts.Language, Region: gp.opts.Region}
	results, err := gp.client.Geocode(ctx, &req)
	if err != nil {
		return nil, fmt.Errorf("failed to geocode address: %w", err)
	}
	if len(results) == 0 {
		return nil, ErrEmptyResponse
	}

	best := results[0]
	for _, r := range results {
		if !r.PartialMatch {
			best = r
			break
		}
	}
	if best.PartialMatch {
		gp.log.DebugContext(ctx, "Only a partial match found", "address", address, "match", best.FormattedAddress)
	}

	location := best.Geometry.Location
	return &models.Coordinates{Latitude: location.Lat, Longitude: location.Lng}, nil
}
