package geocoding_test

import (
	"context"
	"log/slog"
	"net/http"
	"testing"
	"time"

	"github.com/UnknownOlympus/foodbridge/internal/geocoding"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/time/rate"
)

func TestVisicomProvider_Geocode(t *testing.T) {
	ctx := t.Context()
	logger := slog.Default()
	apiKey := "test-key"
	defaultRL := rate.NewLimiter(rate.Inf, 1)

	t.Run("successful geocoding", func(t *testing.T) {
		mockClient := &mockHTTPClient{
			doFunc: func(req *http.Request) (*http.Response, error) {
				assert.Equal(t, "Khreshchatyk 1, Kyiv", req.URL.Query().Get("text"))
				assert.Equal(t, apiKey, req.URL.Query().Get("key"))
				assert.Equal(t, "application/json", req.Header.Get("Accept"))
				return respond(http.StatusOK, `{"geo_centroid":{"type":"Point","coordinates":[30.5234,50.4501]}}`)
			},
		}

		provider := geocoding.NewVisicomProviderWithClient(mockClient, apiKey, defaultRL, logger)
		coords, err := provider.Geocode(ctx, "Khreshchatyk 1, Kyiv")

		require.NoError(t, err)
		assert.InEpsilon(t, 50.4501, coords.Latitude, 0.0001)
		assert.InEpsilon(t, 30.5234, coords.Longitude, 0.0001)
	})

	t.Run("empty response", func(t *testing.T) {
		mockClient := &mockHTTPClient{
			doFunc: func(_ *http.Request) (*http.Response, error) {
				return respond(http.StatusOK, `{}`)
			},
		}

		provider := geocoding.NewVisicomProviderWithClient(mockClient, apiKey, defaultRL, logger)
		coords, err := provider.Geocode(ctx, "some address")

		require.ErrorIs(t, err, geocoding.ErrVisicomEmptyResponse)
		assert.Nil(t, coords)
	})

	t.Run("invalid coordinates", func(t *testing.T) {
		mockClient := &mockHTTPClient{
			doFunc: func(_ *http.Request) (*http.Response, error) {
				return respond(http.StatusOK, `{"geo_centroid":{"coordinates":[30.5]}}`)
			},
		}

		provider := geocoding.NewVisicomProviderWithClient(mockClient, apiKey, defaultRL, logger)
		_, err := provider.Geocode(ctx, "some address")

		require.ErrorIs(t, err, geocoding.ErrVisicomInvalidCoords)
	})

	t.Run("unauthorized", func(t *testing.T) {
		mockClient := &mockHTTPClient{
			doFunc: func(_ *http.Request) (*http.Response, error) {
				return respond(http.StatusForbidden, `forbidden`)
			},
		}

		provider := geocoding.NewVisicomProviderWithClient(mockClient, apiKey, defaultRL, logger)
		_, err := provider.Geocode(ctx, "some address")

		require.ErrorIs(t, err, geocoding.ErrVisicomUnauthorized)
	})

	t.Run("server error", func(t *testing.T) {
		mockClient := &mockHTTPClient{
			doFunc: func(_ *http.Request) (*http.Response, error) {
				return respond(http.StatusBadGateway, `upstream down`)
			},
		}

		provider := geocoding.NewVisicomProviderWithClient(mockClient, apiKey, defaultRL, logger)
		_, err := provider.Geocode(ctx, "some address")

		require.ErrorContains(t, err, "visicom API returned status 502")
	})

	t.Run("rate limit exceeded", func(t *testing.T) {
		rateCtx, cancel := context.WithCancel(ctx)
		cancel()
		mockClient := &mockHTTPClient{
			doFunc: func(_ *http.Request) (*http.Response, error) {
				t.Fatal("HTTP client should not be called when rate limit blocks")
				return nil, nil
			},
		}

		limiter := rate.NewLimiter(rate.Every(time.Second), 1)

		provider := geocoding.NewVisicomProviderWithClient(mockClient, apiKey, limiter, logger)
		_, err := provider.Geocode(rateCtx, "some address")

		require.ErrorContains(t, err, "rate limit exceeded")
	})

	t.Run("empty address", func(t *testing.T) {
		mockClient := &mockHTTPClient{
			doFunc: func(_ *http.Request) (*http.Response, error) {
				t.Fatal("HTTP client should not be called for an empty address")
				return nil, nil
			},
		}

		provider := geocoding.NewVisicomProviderWithClient(mockClient, apiKey, defaultRL, logger)
		_, err := provider.Geocode(ctx, "")

		require.ErrorIs(t, err, geocoding.ErrVisicomEmptyAddress)
	})
}
