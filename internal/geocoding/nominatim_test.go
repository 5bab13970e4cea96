package geocoding_test

import (
	"bytes"
	"context"
	"errors"
	"io"
	"log/slog"
	"net/http"
	"testing"

	"github.com/UnknownOlympus/foodbridge/internal/geocoding"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// mockHTTPClient is a mock implementation of HTTPClient for testing.
type mockHTTPClient struct {
	doFunc func(req *http.Request) (*http.Response, error)
}

func (m *mockHTTPClient) Do(req *http.Request) (*http.Response, error) {
	return m.doFunc(req)
}

func respond(status int, body string) (*http.Response, error) {
	return &http.Response{
		StatusCode: status,
		Body:       io.NopCloser(bytes.NewBufferString(body)),
	}, nil
}

func TestNominatimProvider_Geocode(t *testing.T) {
	ctx := t.Context()
	logger := slog.Default()

	t.Run("successful geocoding", func(t *testing.T) {
		mockClient := &mockHTTPClient{
			doFunc: func(req *http.Request) (*http.Response, error) {
				assert.Equal(t, http.MethodGet, req.Method)
				assert.Contains(t, req.URL.String(), "nominatim.openstreetmap.org")
				assert.Equal(t, "12 Market Street, Springfield", req.URL.Query().Get("q"))
				assert.Equal(t, "json", req.URL.Query().Get("format"))
				assert.Equal(t, "1", req.URL.Query().Get("limit"))
				assert.Equal(t, "en", req.URL.Query().Get("accept-language"))
				assert.Contains(t, req.Header.Get("User-Agent"), "FoodBridge-Locator")

				return respond(http.StatusOK, `[{"lat":"39.7817213","lon":"-89.6501481"}]`)
			},
		}

		provider := geocoding.NewNominatimProviderWithClient(mockClient, "", logger)
		coords, err := provider.Geocode(ctx, "12 Market Street, Springfield")

		require.NoError(t, err)
		require.NotNil(t, coords)
		assert.InEpsilon(t, 39.7817213, coords.Latitude, 0.0001)
		assert.InEpsilon(t, -89.6501481, coords.Longitude, 0.0001)
	})

	t.Run("custom language is forwarded", func(t *testing.T) {
		mockClient := &mockHTTPClient{
			doFunc: func(req *http.Request) (*http.Response, error) {
				assert.Equal(t, "hi", req.URL.Query().Get("accept-language"))
				return respond(http.StatusOK, `[{"lat":"28.61","lon":"77.20"}]`)
			},
		}

		provider := geocoding.NewNominatimProviderWithClient(mockClient, "hi", logger)
		_, err := provider.Geocode(ctx, "Connaught Place")

		require.NoError(t, err)
	})

	t.Run("empty response from API", func(t *testing.T) {
		mockClient := &mockHTTPClient{
			doFunc: func(_ *http.Request) (*http.Response, error) {
				return respond(http.StatusOK, `[]`)
			},
		}

		provider := geocoding.NewNominatimProviderWithClient(mockClient, "en", logger)
		coords, err := provider.Geocode(ctx, "invalid address")

		require.ErrorIs(t, err, geocoding.ErrNominatimEmptyResponse)
		assert.Nil(t, coords)
	})

	t.Run("HTTP error status", func(t *testing.T) {
		mockClient := &mockHTTPClient{
			doFunc: func(_ *http.Request) (*http.Response, error) {
				return respond(http.StatusTooManyRequests, `{"error":"Rate limit exceeded"}`)
			},
		}

		provider := geocoding.NewNominatimProviderWithClient(mockClient, "en", logger)
		coords, err := provider.Geocode(ctx, "some address")

		require.Error(t, err)
		assert.Nil(t, coords)
		assert.Contains(t, err.Error(), "nominatim API returned status 429")

		var apiErr *geocoding.APIError
		require.ErrorAs(t, err, &apiErr)
		assert.Equal(t, http.StatusTooManyRequests, apiErr.StatusCode)
	})

	t.Run("invalid JSON response", func(t *testing.T) {
		mockClient := &mockHTTPClient{
			doFunc: func(_ *http.Request) (*http.Response, error) {
				return respond(http.StatusOK, `invalid json`)
			},
		}

		provider := geocoding.NewNominatimProviderWithClient(mockClient, "en", logger)
		coords, err := provider.Geocode(ctx, "some address")

		require.Error(t, err)
		assert.Nil(t, coords)
		assert.Contains(t, err.Error(), "failed to decode nominatim response")
	})

	t.Run("invalid latitude in response", func(t *testing.T) {
		mockClient := &mockHTTPClient{
			doFunc: func(_ *http.Request) (*http.Response, error) {
				return respond(http.StatusOK, `[{"lat":"north","lon":"-89.65"}]`)
			},
		}

		provider := geocoding.NewNominatimProviderWithClient(mockClient, "en", logger)
		_, err := provider.Geocode(ctx, "some address")

		require.ErrorIs(t, err, geocoding.ErrNominatimInvalidCoords)
		assert.Contains(t, err.Error(), "invalid latitude")
	})

	t.Run("invalid longitude in response", func(t *testing.T) {
		mockClient := &mockHTTPClient{
			doFunc: func(_ *http.Request) (*http.Response, error) {
				return respond(http.StatusOK, `[{"lat":"39.78","lon":""}]`)
			},
		}

		provider := geocoding.NewNominatimProviderWithClient(mockClient, "en", logger)
		_, err := provider.Geocode(ctx, "some address")

		require.ErrorIs(t, err, geocoding.ErrNominatimInvalidCoords)
		assert.Contains(t, err.Error(), "invalid longitude")
	})

	t.Run("HTTP client returns error", func(t *testing.T) {
		mockClient := &mockHTTPClient{
			doFunc: func(_ *http.Request) (*http.Response, error) {
				return nil, errors.New("connection refused")
			},
		}

		provider := geocoding.NewNominatimProviderWithClient(mockClient, "en", logger)
		_, err := provider.Geocode(ctx, "some address")

		require.Error(t, err)
		assert.Contains(t, err.Error(), "failed to execute geocoding request")
	})

	t.Run("context cancellation", func(t *testing.T) {
		cancelled, cancel := context.WithCancel(ctx)
		cancel()

		mockClient := &mockHTTPClient{
			doFunc: func(req *http.Request) (*http.Response, error) {
				return nil, req.Context().Err()
			},
		}

		provider := geocoding.NewNominatimProviderWithClient(mockClient, "en", logger)
		_, err := provider.Geocode(cancelled, "some address")

		require.ErrorIs(t, err, context.Canceled)
	})
}

func TestNominatimProvider_AddressFallback(t *testing.T) {
	ctx := t.Context()
	logger := slog.Default()

	t.Run("fallback drops trailing components", func(t *testing.T) {
		var queries []string
		mockClient := &mockHTTPClient{
			doFunc: func(req *http.Request) (*http.Response, error) {
				q := req.URL.Query().Get("q")
				queries = append(queries, q)
				if q == "Springfield" {
					return respond(http.StatusOK, `[{"lat":"39.78","lon":"-89.65"}]`)
				}
				return respond(http.StatusOK, `[]`)
			},
		}

		provider := geocoding.NewNominatimProviderWithClient(mockClient, "en", logger)
		coords, err := provider.Geocode(ctx, "Springfield, Market Street, 12")

		require.NoError(t, err)
		assert.InEpsilon(t, 39.78, coords.Latitude, 0.0001)
		assert.Equal(t, []string{
			"Springfield, Market Street, 12",
			"Springfield, Market Street",
			"Springfield",
		}, queries)
	})

	t.Run("success on first try with full address", func(t *testing.T) {
		calls := 0
		mockClient := &mockHTTPClient{
			doFunc: func(_ *http.Request) (*http.Response, error) {
				calls++
				return respond(http.StatusOK, `[{"lat":"1.5","lon":"2.5"}]`)
			},
		}

		provider := geocoding.NewNominatimProviderWithClient(mockClient, "en", logger)
		_, err := provider.Geocode(ctx, "Springfield, Market Street, 12")

		require.NoError(t, err)
		assert.Equal(t, 1, calls)
	})

	t.Run("all fallbacks fail", func(t *testing.T) {
		calls := 0
		mockClient := &mockHTTPClient{
			doFunc: func(_ *http.Request) (*http.Response, error) {
				calls++
				return respond(http.StatusOK, `[]`)
			},
		}

		provider := geocoding.NewNominatimProviderWithClient(mockClient, "en", logger)
		_, err := provider.Geocode(ctx, "Nowhere, Lost Lane, 7")

		require.ErrorIs(t, err, geocoding.ErrNominatimEmptyResponse)
		assert.Equal(t, 3, calls)
	})

	t.Run("api error stops fallback", func(t *testing.T) {
		calls := 0
		mockClient := &mockHTTPClient{
			doFunc: func(_ *http.Request) (*http.Response, error) {
				calls++
				return respond(http.StatusInternalServerError, `boom`)
			},
		}

		provider := geocoding.NewNominatimProviderWithClient(mockClient, "en", logger)
		_, err := provider.Geocode(ctx, "Springfield, Market Street, 12")

		require.Error(t, err)
		assert.Equal(t, 1, calls)
	})

	t.Run("single-part address no fallback", func(t *testing.T) {
		calls := 0
		mockClient := &mockHTTPClient{
			doFunc: func(_ *http.Request) (*http.Response, error) {
				calls++
				return respond(http.StatusOK, `[]`)
			},
		}

		provider := geocoding.NewNominatimProviderWithClient(mockClient, "en", logger)
		_, err := provider.Geocode(ctx, "Springfield")

		require.ErrorIs(t, err, geocoding.ErrNominatimEmptyResponse)
		assert.Equal(t, 1, calls)
	})
}

func TestNewNominatimProvider(t *testing.T) {
	provider := geocoding.NewNominatimProvider("en", slog.Default())

	require.NotNil(t, provider)
}
