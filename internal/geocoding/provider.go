package geocoding

import (
	"context"
	"net/http"

	"github.com/UnknownOlympus/foodbridge/internal/models"
)

// Provider turns a listing's street address into coordinates, so listings posted
// without a map pin can still take part in Near Me ranking.
type Provider interface {
	Geocode(ctx context.Context, address string) (*models.Coordinates, error)
}

// HTTPClient defines the interface for making HTTP requests.
// This allows for easy mocking in tests.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}
