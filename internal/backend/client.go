// Package backend talks to the food-donation REST backend that owns listings,
// donors and volunteer notifications.
package backend

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/UnknownOlympus/foodbridge/internal/models"
	"github.com/UnknownOlympus/foodbridge/internal/status"
	"golang.org/x/time/rate"
)

const defaultTimeout = 10 * time.Second

// ErrNotFound is wrapped by StatusError when the backend answers 404.
var ErrNotFound = errors.New("not found")

// StatusError is returned for non-2xx backend responses.
type StatusError struct {
	Method     string
	Path       string
	StatusCode int
	Body       string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("backend %s %s returned status %d: %s", e.Method, e.Path, e.StatusCode, e.Body)
}

// Unwrap exposes ErrNotFound for 404 answers.
func (e *StatusError) Unwrap() error {
	if e.StatusCode == http.StatusNotFound {
		return ErrNotFound
	}
	return nil
}

// HTTPClient defines the interface for making HTTP requests.
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// Observer receives the duration of every backend call, keyed by operation name.
type Observer func(operation string, elapsed time.Duration)

// Client is a thin JSON client for the backend API.
type Client struct {
	http    HTTPClient
	baseURL string
	limiter *rate.Limiter
	observe Observer
	log     *slog.Logger
}

// Option customizes a Client.
type Option func(*Client)

// WithHTTPClient replaces the default *http.Client.
func WithHTTPClient(c HTTPClient) Option {
	return func(cl *Client) { cl.http = c }
}

// WithTimeout sets the timeout of the default *http.Client.
func WithTimeout(d time.Duration) Option {
	return func(cl *Client) {
		if d > 0 {
			cl.http = &http.Client{Timeout: d}
		}
	}
}

// WithRateLimit caps outgoing requests per second. Zero disables the limit.
func WithRateLimit(perSecond int) Option {
	return func(cl *Client) {
		if perSecond > 0 {
			cl.limiter = rate.NewLimiter(rate.Limit(perSecond), perSecond)
		}
	}
}

// WithObserver registers a callback for request durations.
func WithObserver(o Observer) Option {
	return func(cl *Client) { cl.observe = o }
}

// NewClient creates a client for the backend rooted at baseURL, e.g. "http://localhost:8080/api".
func NewClient(baseURL string, log *slog.Logger, opts ...Option) *Client {
	cl := &Client{
		http:    &http.Client{Timeout: defaultTimeout},
		baseURL: baseURL,
		log:     log,
	}
	for _, opt := range opts {
		opt(cl)
	}
	return cl
}

// ListDonations fetches every donation.
func (c *Client) ListDonations(ctx context.Context) ([]models.Listing, error) {
	return c.listings(ctx, "list_donations", "/donation/all", models.KindDonation)
}

// ListRequests fetches every request.
func (c *Client) ListRequests(ctx context.Context) ([]models.Listing, error) {
	return c.listings(ctx, "list_requests", "/request/all", models.KindRequest)
}

// ListDonationsByDonor fetches the donations created by one donor.
func (c *Client) ListDonationsByDonor(ctx context.Context, donorID int64) ([]models.Listing, error) {
	return c.listings(ctx, "list_donations_by_donor", "/donation/donor/"+formatID(donorID), models.KindDonation)
}

// ListRequestsByRecipient fetches the requests created by one recipient.
func (c *Client) ListRequestsByRecipient(ctx context.Context, recipientID int64) ([]models.Listing, error) {
	return c.listings(ctx, "list_requests_by_recipient", "/request/recipient/"+formatID(recipientID), models.KindRequest)
}

// UpdateDonation replaces a donation with listing.
func (c *Client) UpdateDonation(ctx context.Context, listing models.Listing) error {
	return c.do(ctx, "update_donation", http.MethodPut, "/donation/update/"+formatID(listing.ID), nil, listing, nil)
}

// UpdateRequest replaces a request with listing.
func (c *Client) UpdateRequest(ctx context.Context, listing models.Listing) error {
	return c.do(ctx, "update_request", http.MethodPut, "/request/update/"+formatID(listing.ID), nil, listing, nil)
}

// PatchDonationStatus changes only the status and remarks of a donation.
func (c *Client) PatchDonationStatus(ctx context.Context, id int64, st status.Status, remarks string) error {
	query := url.Values{}
	query.Set("status", st.String())
	if remarks != "" {
		query.Set("remarks", remarks)
	}
	return c.do(ctx, "patch_donation_status", http.MethodPatch, "/donation/"+formatID(id)+"/status", query, nil, nil)
}

// DeleteDonation removes a donation.
func (c *Client) DeleteDonation(ctx context.Context, id int64) error {
	return c.do(ctx, "delete_donation", http.MethodDelete, "/donation/delete/"+formatID(id), nil, nil, nil)
}

// DeleteRequest removes a request.
func (c *Client) DeleteRequest(ctx context.Context, id int64) error {
	return c.do(ctx, "delete_request", http.MethodDelete, "/request/delete/"+formatID(id), nil, nil, nil)
}

// NotifyVolunteers announces a pickup to the volunteers.
func (c *Client) NotifyVolunteers(ctx context.Context, notice models.VolunteerNotice) error {
	return c.do(ctx, "notify_volunteers", http.MethodPost, "/volunteer/notify", nil, notice, nil)
}

// GetDonor fetches a donor profile.
func (c *Client) GetDonor(ctx context.Context, id int64) (*models.Donor, error) {
	var donor models.Donor
	if err := c.do(ctx, "get_donor", http.MethodGet, "/donor/"+formatID(id), nil, nil, &donor); err != nil {
		return nil, err
	}
	return &donor, nil
}

func (c *Client) listings(ctx context.Context, op, path string, kind models.Kind) ([]models.Listing, error) {
	var out []models.Listing
	if err := c.do(ctx, op, http.MethodGet, path, nil, nil, &out); err != nil {
		return nil, err
	}
	for i := range out {
		out[i].Kind = kind
	}
	return out, nil
}

func (c *Client) do(
	ctx context.Context,
	op, method, path string,
	query url.Values,
	in, out any,
) error {
	if c.limiter != nil {
		if err := c.limiter.Wait(ctx); err != nil {
			return fmt.Errorf("rate limit exceeded: %w", err)
		}
	}

	var body io.Reader
	if in != nil {
		payload, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("failed to encode %s payload: %w", op, err)
		}
		body = bytes.NewReader(payload)
	}

	target := c.baseURL + path
	if len(query) > 0 {
		target += "?" + query.Encode()
	}

	req, err := http.NewRequestWithContext(ctx, method, target, body)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	start := time.Now()
	resp, err := c.http.Do(req)
	if c.observe != nil {
		c.observe(op, time.Since(start))
	}
	if err != nil {
		return fmt.Errorf("failed to execute %s request: %w", op, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return fmt.Errorf("failed to read %s response: %w", op, err)
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.log.WarnContext(ctx, "Backend returned an error", "operation", op, "status", resp.StatusCode)
		return &StatusError{Method: method, Path: path, StatusCode: resp.StatusCode, Body: string(raw)}
	}

	if out == nil || len(bytes.TrimSpace(raw)) == 0 {
		return nil
	}
	if err = json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("failed to decode %s response: %w", op, err)
	}

	return nil
}

func formatID(id int64) string {
	return strconv.FormatInt(id, 10)
}
