// Package store opens the authoritative Postgres database and keeps its
// schema in place.
package store

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	_ "github.com/lib/pq"
)

// schema is idempotent; every table is created only if missing.
const schema = `
CREATE TABLE IF NOT EXISTS system_config (
	key   TEXT PRIMARY KEY,
	value TEXT
);

CREATE TABLE IF NOT EXISTS products (
	id            UUID PRIMARY KEY,
	name          TEXT NOT NULL,
	description   TEXT NOT NULL DEFAULT '',
	price_cents   BIGINT NOT NULL,
	quantity      INTEGER NOT NULL CHECK (quantity >= 0),
	category      TEXT NOT NULL DEFAULT '',
	image_file_id TEXT NOT NULL DEFAULT '',
	is_active     BOOLEAN NOT NULL DEFAULT true,
	created_at    TIMESTAMPTZ NOT NULL DEFAULT NOW(),
	updated_at    TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS cart_items (
	user_id    BIGINT NOT NULL,
	product_id UUID NOT NULL REFERENCES products(id),
	quantity   INTEGER NOT NULL,
	PRIMARY KEY (user_id, product_id)
);

CREATE TABLE IF NOT EXISTS orders (
	id          UUID PRIMARY KEY,
	user_id     BIGINT NOT NULL,
	total_cents BIGINT NOT NULL,
	status      TEXT NOT NULL DEFAULT 'completed',
	created_at  TIMESTAMPTZ NOT NULL DEFAULT NOW()
);

CREATE TABLE IF NOT EXISTS order_items (
	order_id         UUID NOT NULL REFERENCES orders(id),
	product_id       UUID NOT NULL REFERENCES products(id),
	quantity         INTEGER NOT NULL,
	unit_price_cents BIGINT NOT NULL
);
`

// Connect opens the database and verifies the connection.
func Connect(databaseURL string) (*sqlx.DB, error) {
	db, err := sqlx.Connect("postgres", databaseURL)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}
	return db, nil
}

// EnsureSchema creates any missing tables.
func EnsureSchema(ctx context.Context, db *sqlx.DB) error {
	if _, err := db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("ensure schema: %w", err)
	}
	return nil
}
