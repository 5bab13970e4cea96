package repository

import (
	"context"
	"errors"
	"log/slog"

	"github.com/UnknownOlympus/foodbridge/internal/models"
	"github.com/UnknownOlympus/foodbridge/internal/status"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

// MaxGeocodingAttempts is how many times a listing address is tried before it is left alone.
const MaxGeocodingAttempts = 5

// ErrNotFound is returned when a listing does not exist in the read-model.
var ErrNotFound = errors.New("listing not found")

// Database is the subset of *pgxpool.Pool the repository needs. pgxmock pools satisfy it too.
type Database interface {
	Exec(ctx context.Context, sql string, arguments ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
	Begin(ctx context.Context) (pgx.Tx, error)
	Ping(ctx context.Context) error
}

// Repository keeps the listing read-model in Postgres.
type Repository struct {
	db  Database
	log *slog.Logger
}

// Interface lists the read-model operations used by the services and the feed.
type Interface interface {
	UpsertListings(ctx context.Context, kind models.Kind, listings []models.Listing) error
	ListListings(ctx context.Context, kind models.Kind) ([]models.Listing, error)
	ListByOwner(ctx context.Context, kind models.Kind, ownerID int64) ([]models.Listing, error)
	GetListing(ctx context.Context, kind models.Kind, id int64) (*models.Listing, error)
	UpdateStatus(ctx context.Context, kind models.Kind, id int64, st status.Status) error
	DeleteListing(ctx context.Context, kind models.Kind, id int64) error
	FetchListingsForGeocoding(ctx context.Context, limit int) ([]models.Listing, error)
	UpdateListingCoordinates(ctx context.Context, kind models.Kind, id int64, coords models.Coordinates) error
	IncrementFailureCount(ctx context.Context, kind models.Kind, id int64, errMsg string) error
}

// NewRepository creates a new instance of Repository with the provided Database.
// It returns a pointer to the newly created Repository.
func NewRepository(db Database, log *slog.Logger) *Repository {
	return &Repository{db: db, log: log}
}
