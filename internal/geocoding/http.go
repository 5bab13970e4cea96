package geocoding

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
)

// APIError carries a non-2xx answer from a geocoding API.
type APIError struct {
	Provider   ProviderType
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s API returned status %d: %s", e.Provider, e.StatusCode, e.Body)
}

// getJSON issues a GET against baseURL with query and decodes the JSON body into out.
func getJSON(
	ctx context.Context,
	client HTTPClient,
	provider ProviderType,
	baseURL string,
	query url.Values,
	header http.Header,
	out any,
) error {
	reqURL, err := url.Parse(baseURL)
	if err != nil {
		return fmt.Errorf("failed to parse base URL: %w", err)
	}
	reqURL.RawQuery = query.Encode()

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, reqURL.String(), nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	for key, values := range header {
		for _, v := range values {
			req.Header.Add(key, v)
		}
	}

	resp, err := client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to execute geocoding request: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read response body: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return &APIError{Provider: provider, StatusCode: resp.StatusCode, Body: string(body)}
	}

	if err = json.Unmarshal(body, out); err != nil {
		return fmt.Errorf("failed to decode %s response: %w", provider, err)
	}

	return nil
}
