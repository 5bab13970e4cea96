package geocoding

import (
	"errors"
	"fmt"
	"log/slog"

	"googlemaps.github.io/maps"
)

// ProviderType represents the type of geocoding provider.
type ProviderType string

const (
	// ProviderTypeGoogle represents Google Maps geocoding provider.
	ProviderTypeGoogle ProviderType = "google"
	// ProviderTypeNominatim represents OpenStreetMap Nominatim geocoding provider.
	ProviderTypeNominatim ProviderType = "nominatim"
	// ProviderTypeVisicom represents Visicom Maps geocoding provider.
	ProviderTypeVisicom ProviderType = "visicom"
)

const defaultVisicomRateLimit = 5

// ProviderConfig holds configuration for creating a geocoding provider.
type ProviderConfig struct {
	Type      ProviderType // Type of provider to create
	APIKey    string       // API key (Google and Visicom)
	RateLimit int          // Requests per second, 0 for the provider default
	Language  string       // Preferred result language, e.g. "en"
	Region    string       // Country bias as a ccTLD, e.g. "ua" (Google only)
	Logger    *slog.Logger // Logger for the provider
}

// NewProvider creates a geocoding provider based on the provided configuration.
//
// Supported provider types:
// - "google": Google Maps Geocoding API (requires API key)
// - "nominatim": OpenStreetMap Nominatim API (free, no API key required)
// - "visicom": Visicom Data API (requires API key)
func NewProvider(config ProviderConfig) (Provider, error) {
	if config.Logger == nil {
		config.Logger = slog.Default()
	}

	switch config.Type {
	case ProviderTypeGoogle:
		return newGoogleProvider(config)
	case ProviderTypeNominatim:
		return NewNominatimProvider(config.Language, config.Logger), nil
	case ProviderTypeVisicom:
		return newVisicomProvider(config)
	default:
		return nil, fmt.Errorf("unsupported provider type: %s", config.Type)
	}
}

func newGoogleProvider(config ProviderConfig) (Provider, error) {
	if config.APIKey == "" {
		return nil, errors.New("API key is required for Google provider")
	}

	clientOpts := []maps.ClientOption{maps.WithAPIKey(config.APIKey)}
	if config.RateLimit > 0 {
		clientOpts = append(clientOpts, maps.WithRateLimit(config.RateLimit))
	}

	client, err := maps.NewClient(clientOpts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create Google Maps client: %w", err)
	}

	return NewGoogleProvider(client, GoogleOptions{Language: config.Language, Region: config.Region}, config.Logger), nil
}

func newVisicomProvider(config ProviderConfig) (Provider, error) {
	if config.APIKey == "" {
		return nil, errors.New("API key is required for Visicom provider")
	}

	if config.RateLimit == 0 {
		config.RateLimit = defaultVisicomRateLimit
		config.Logger.Warn("Rate limit for Visicom API not set, set a default value", "value", config.RateLimit)
	}

	return NewVisicomProvider(config.APIKey, config.RateLimit, config.Logger), nil
}
