package repository

import (
	"context"
	"fmt"
	"net"
	"net/url"

	"github.com/UnknownOlympus/foodbridge/internal/config"
	"github.com/jackc/pgx/v5/pgxpool"
)

// NewDatabase opens a connection pool to the Postgres database described by cfg and checks it with a ping.
func NewDatabase(ctx context.Context, cfg config.PostgresConfig) (*pgxpool.Pool, error) {
	dsn := url.URL{
		Scheme:   "postgres",
		User:     url.UserPassword(cfg.User, cfg.Password),
		Host:     net.JoinHostPort(cfg.Host, cfg.Port),
		Path:     cfg.Name,
		RawQuery: "sslmode=disable",
	}

	pool, err := pgxpool.New(ctx, dsn.String())
	if err != nil {
		return nil, fmt.Errorf("failed to create connection pool: %w", err)
	}

	if err = pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return pool, nil
}
