// Package cache keeps recently read listing snapshots in Redis so feed requests
// do not hit Postgres on every page turn.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/UnknownOlympus/foodbridge/internal/models"
	"github.com/redis/go-redis/v9"
)

const keyPrefix = "foodbridge:listings:"

// ErrMiss is returned when no snapshot is cached for a kind.
var ErrMiss = errors.New("cache miss")

// Client is the part of a go-redis client the cache uses.
type Client interface {
	Get(ctx context.Context, key string) *redis.StringCmd
	Set(ctx context.Context, key string, value any, expiration time.Duration) *redis.StatusCmd
	Del(ctx context.Context, keys ...string) *redis.IntCmd
}

// ListingCache stores listing snapshots per kind with a fixed TTL.
type ListingCache struct {
	client Client
	ttl    time.Duration
	log    *slog.Logger
}

// NewListingCache creates a cache on top of client.
func NewListingCache(client Client, ttl time.Duration, log *slog.Logger) *ListingCache {
	return &ListingCache{client: client, ttl: ttl, log: log}
}

// Listings returns the cached snapshot of kind or ErrMiss.
func (c *ListingCache) Listings(ctx context.Context, kind models.Kind) ([]models.Listing, error) {
	raw, err := c.client.Get(ctx, key(kind)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, ErrMiss
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read cached %s listings: %w", kind, err)
	}

	var listings []models.Listing
	if err = json.Unmarshal(raw, &listings); err != nil {
		c.log.WarnContext(ctx, "Dropping unreadable cache entry", "kind", kind, "error", err)
		_ = c.client.Del(ctx, key(kind)).Err()
		return nil, ErrMiss
	}

	return listings, nil
}

// StoreListings caches the snapshot of kind.
func (c *ListingCache) StoreListings(ctx context.Context, kind models.Kind, listings []models.Listing) error {
	payload, err := json.Marshal(listings)
	if err != nil {
		return fmt.Errorf("failed to encode %s listings: %w", kind, err)
	}

	if err = c.client.Set(ctx, key(kind), payload, c.ttl).Err(); err != nil {
		return fmt.Errorf("failed to cache %s listings: %w", kind, err)
	}

	return nil
}

// Invalidate drops the snapshots of the given kinds, or of every kind when none is given.
func (c *ListingCache) Invalidate(ctx context.Context, kinds ...models.Kind) error {
	if len(kinds) == 0 {
		kinds = []models.Kind{models.KindDonation, models.KindRequest}
	}

	keys := make([]string, 0, len(kinds))
	for _, kind := range kinds {
		keys = append(keys, key(kind))
	}

	if err := c.client.Del(ctx, keys...).Err(); err != nil {
		return fmt.Errorf("failed to invalidate cached listings: %w", err)
	}

	return nil
}

func key(kind models.Kind) string {
	return keyPrefix + string(kind)
}
