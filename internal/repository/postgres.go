package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/UnknownOlympus/foodbridge/internal/models"
	"github.com/UnknownOlympus/foodbridge/internal/status"
	"github.com/jackc/pgx/v5"
)

// listingColumns selects a listing with its effective location: backend coordinates when both are
// present, geocoded coordinates otherwise.
const listingColumns = `
	kind, id, title, description, food_type, type, status, approved, address, photo, quantity, remarks,
	donor_id, recipient_id,
	CASE WHEN latitude IS NOT NULL AND longitude IS NOT NULL THEN latitude ELSE geocoded_latitude END,
	CASE WHEN latitude IS NOT NULL AND longitude IS NOT NULL THEN longitude ELSE geocoded_longitude END,
	(latitude IS NULL OR longitude IS NULL) AND geocoded_latitude IS NOT NULL,
	created_at, updated_at`

const upsertListingQuery = `
	INSERT INTO listings (
		kind, id, title, description, food_type, type, status, approved, address, photo, quantity, remarks,
		donor_id, recipient_id, latitude, longitude, created_at, updated_at, synced_at
	)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16, $17, $18, now())
	ON CONFLICT (kind, id) DO UPDATE SET
		title = EXCLUDED.title,
		description = EXCLUDED.description,
		food_type = EXCLUDED.food_type,
		type = EXCLUDED.type,
		status = EXCLUDED.status,
		approved = EXCLUDED.approved,
		photo = EXCLUDED.photo,
		quantity = EXCLUDED.quantity,
		remarks = EXCLUDED.remarks,
		donor_id = EXCLUDED.donor_id,
		recipient_id = EXCLUDED.recipient_id,
		latitude = EXCLUDED.latitude,
		longitude = EXCLUDED.longitude,
		created_at = EXCLUDED.created_at,
		updated_at = EXCLUDED.updated_at,
		synced_at = now(),
		geocoded_latitude = CASE WHEN listings.address IS DISTINCT FROM EXCLUDED.address
			THEN NULL ELSE listings.geocoded_latitude END,
		geocoded_longitude = CASE WHEN listings.address IS DISTINCT FROM EXCLUDED.address
			THEN NULL ELSE listings.geocoded_longitude END,
		geocoding_attempts = CASE WHEN listings.address IS DISTINCT FROM EXCLUDED.address
			THEN 0 ELSE listings.geocoding_attempts END,
		address = EXCLUDED.address;
`

const pruneListingsQuery = `DELETE FROM listings WHERE kind = $1 AND NOT (id = ANY($2));`

// UpsertListings replaces the snapshot of one kind. Backend fields are overwritten, geocoded
// coordinates survive unless the address changed, and listings missing from the snapshot are removed.
func (r *Repository) UpsertListings(ctx context.Context, kind models.Kind, listings []models.Listing) error {
	tx, err := r.db.Begin(ctx)
	if err != nil {
		return fmt.Errorf("failed to begin snapshot transaction: %w", err)
	}

	pruned, err := writeSnapshot(ctx, tx, kind, listings)
	if err != nil {
		if rbErr := tx.Rollback(ctx); rbErr != nil {
			r.log.ErrorContext(ctx, "Failed to roll back snapshot", "kind", kind, "error", rbErr)
		}
		return err
	}

	if err = tx.Commit(ctx); err != nil {
		return fmt.Errorf("failed to commit snapshot: %w", err)
	}

	r.log.DebugContext(ctx, "Listing snapshot stored", "kind", kind, "count", len(listings), "pruned", pruned)
	return nil
}

func writeSnapshot(ctx context.Context, tx pgx.Tx, kind models.Kind, listings []models.Listing) (int64, error) {
	ids := make([]int64, 0, len(listings))
	for _, l := range listings {
		_, err := tx.Exec(ctx, upsertListingQuery,
			string(kind), l.ID, l.Title, l.Description, l.FoodType, l.Type, l.Status.Normalized().String(),
			l.Approved, l.Address, l.Photo, l.Quantity, l.Remarks, l.DonorID, l.RecipientID,
			l.Latitude, l.Longitude, l.CreatedAt, nullableTime(l.UpdatedAt),
		)
		if err != nil {
			return 0, fmt.Errorf("failed to upsert %s %d: %w", kind, l.ID, err)
		}
		ids = append(ids, l.ID)
	}

	tag, err := tx.Exec(ctx, pruneListingsQuery, string(kind), ids)
	if err != nil {
		return 0, fmt.Errorf("failed to prune stale %s listings: %w", kind, err)
	}

	return tag.RowsAffected(), nil
}

// ListListings returns every listing of kind, newest first.
func (r *Repository) ListListings(ctx context.Context, kind models.Kind) ([]models.Listing, error) {
	query := `SELECT` + listingColumns + `
		FROM listings
		WHERE kind = $1
		ORDER BY created_at DESC, id;`

	return r.queryListings(ctx, query, string(kind))
}

// ListByOwner returns the donations of a donor or the requests of a recipient.
func (r *Repository) ListByOwner(ctx context.Context, kind models.Kind, ownerID int64) ([]models.Listing, error) {
	query := `SELECT` + listingColumns + `
		FROM listings
		WHERE kind = $1
			AND CASE WHEN kind = 'request' THEN recipient_id ELSE donor_id END = $2
		ORDER BY created_at DESC, id;`

	return r.queryListings(ctx, query, string(kind), ownerID)
}

// GetListing returns one listing or ErrNotFound.
func (r *Repository) GetListing(ctx context.Context, kind models.Kind, id int64) (*models.Listing, error) {
	query := `SELECT` + listingColumns + `
		FROM listings
		WHERE kind = $1 AND id = $2;`

	listing, err := scanListing(r.db.QueryRow(ctx, query, string(kind), id))
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get listing: %w", err)
	}

	return &listing, nil
}

// UpdateStatus records a status change made through the backend so feeds reflect it before the next sync.
func (r *Repository) UpdateStatus(ctx context.Context, kind models.Kind, id int64, st status.Status) error {
	query := `UPDATE listings SET status = $1, updated_at = now() WHERE kind = $2 AND id = $3;`

	tag, err := r.db.Exec(ctx, query, st.Normalized().String(), string(kind), id)
	if err != nil {
		return fmt.Errorf("failed to update listing status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return ErrNotFound
	}

	return nil
}

// DeleteListing drops a listing from the read-model.
func (r *Repository) DeleteListing(ctx context.Context, kind models.Kind, id int64) error {
	query := `DELETE FROM listings WHERE kind = $1 AND id = $2;`

	if _, err := r.db.Exec(ctx, query, string(kind), id); err != nil {
		return fmt.Errorf("failed to delete listing: %w", err)
	}

	return nil
}

// FetchListingsForGeocoding retrieves listings that have an address but no coordinates from either the
// backend or an earlier geocoding run, skipping those that failed too often. Oldest come first.
func (r *Repository) FetchListingsForGeocoding(ctx context.Context, limit int) ([]models.Listing, error) {
	query := `
		SELECT kind, id, address
		FROM listings
		WHERE
			(latitude IS NULL OR longitude IS NULL)
			AND geocoded_latitude IS NULL
			AND geocoding_attempts < $1
			AND address <> ''
		ORDER BY created_at ASC
		LIMIT $2;
	`

	rows, err := r.db.Query(ctx, query, MaxGeocodingAttempts, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to query listings without coordinates: %w", err)
	}
	defer rows.Close()

	var listings []models.Listing
	for rows.Next() {
		var (
			listing models.Listing
			kind    string
		)
		if errScan := rows.Scan(&kind, &listing.ID, &listing.Address); errScan != nil {
			return nil, fmt.Errorf("failed to scan listing without coordinates: %w", errScan)
		}
		listing.Kind = models.Kind(kind)
		listings = append(listings, listing)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read row: %w", err)
	}

	return listings, nil
}

// UpdateListingCoordinates stores geocoded coordinates. Backend coordinates are left untouched.
func (r *Repository) UpdateListingCoordinates(
	ctx context.Context,
	kind models.Kind,
	id int64,
	coords models.Coordinates,
) error {
	query := `
		UPDATE listings
		SET
			geocoded_latitude = $1,
			geocoded_longitude = $2,
			geocoding_error = NULL
		WHERE
			kind = $3 AND id = $4;
	`

	if _, err := r.db.Exec(ctx, query, coords.Latitude, coords.Longitude, string(kind), id); err != nil {
		return fmt.Errorf("failed to update listing coordinates: %w", err)
	}

	return nil
}

// IncrementFailureCount bumps the geocoding attempt counter and keeps the last error message.
func (r *Repository) IncrementFailureCount(ctx context.Context, kind models.Kind, id int64, errMsg string) error {
	query := `
		UPDATE listings
		SET
			geocoding_attempts = geocoding_attempts + 1,
			geocoding_error = $1
		WHERE kind = $2 AND id = $3;
	`

	if _, err := r.db.Exec(ctx, query, errMsg, string(kind), id); err != nil {
		return fmt.Errorf("failed to update geocoding error and number of attempts: %w", err)
	}

	return nil
}

func (r *Repository) queryListings(ctx context.Context, query string, args ...any) ([]models.Listing, error) {
	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query listings: %w", err)
	}
	defer rows.Close()

	listings := []models.Listing{}
	for rows.Next() {
		listing, errScan := scanListing(rows)
		if errScan != nil {
			return nil, fmt.Errorf("failed to scan listing: %w", errScan)
		}
		listings = append(listings, listing)
	}

	if err = rows.Err(); err != nil {
		return nil, fmt.Errorf("failed to read row: %w", err)
	}

	return listings, nil
}

func scanListing(row pgx.Row) (models.Listing, error) {
	var (
		l             models.Listing
		kind, st      string
		updatedAt     *time.Time
		latitude, lon *float64
	)

	err := row.Scan(
		&kind, &l.ID, &l.Title, &l.Description, &l.FoodType, &l.Type, &st, &l.Approved,
		&l.Address, &l.Photo, &l.Quantity, &l.Remarks, &l.DonorID, &l.RecipientID,
		&latitude, &lon, &l.Geocoded, &l.CreatedAt, &updatedAt,
	)
	if err != nil {
		return models.Listing{}, err
	}

	l.Kind = models.Kind(kind)
	l.Status = status.Status(st)
	l.GeoPoint = models.GeoPoint{Latitude: latitude, Longitude: lon}
	if updatedAt != nil {
		l.UpdatedAt = *updatedAt
	}

	return l, nil
}

func nullableTime(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}
