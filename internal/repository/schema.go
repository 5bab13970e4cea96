package repository

import (
	"context"
	"fmt"
)

const schema = `
CREATE TABLE IF NOT EXISTS listings (
	kind               TEXT             NOT NULL,
	id                 BIGINT           NOT NULL,
	title              TEXT             NOT NULL DEFAULT '',
	description        TEXT             NOT NULL DEFAULT '',
	food_type          TEXT             NOT NULL DEFAULT '',
	type               TEXT             NOT NULL DEFAULT '',
	status             TEXT             NOT NULL DEFAULT '',
	approved           BOOLEAN          NOT NULL DEFAULT false,
	address            TEXT             NOT NULL DEFAULT '',
	photo              TEXT             NOT NULL DEFAULT '',
	quantity           TEXT             NOT NULL DEFAULT '',
	remarks            TEXT             NOT NULL DEFAULT '',
	donor_id           BIGINT,
	recipient_id       BIGINT,
	latitude           DOUBLE PRECISION,
	longitude          DOUBLE PRECISION,
	geocoded_latitude  DOUBLE PRECISION,
	geocoded_longitude DOUBLE PRECISION,
	geocoding_attempts INTEGER          NOT NULL DEFAULT 0,
	geocoding_error    TEXT,
	created_at         TIMESTAMPTZ      NOT NULL,
	updated_at         TIMESTAMPTZ,
	synced_at          TIMESTAMPTZ      NOT NULL DEFAULT now(),
	PRIMARY KEY (kind, id)
);
CREATE INDEX IF NOT EXISTS listings_geocoding_idx
	ON listings (created_at)
	WHERE latitude IS NULL AND geocoded_latitude IS NULL;
`

// EnsureSchema creates the listings table and its indexes when they are missing.
func (r *Repository) EnsureSchema(ctx context.Context) error {
	if _, err := r.db.Exec(ctx, schema); err != nil {
		return fmt.Errorf("failed to create listings schema: %w", err)
	}
	return nil
}
