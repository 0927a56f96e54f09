package owner

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"

	"github.com/jmoiron/sqlx"
)

const ownerKey = "owner_id"

type postgresRepo struct{ db *sqlx.DB }

func NewPostgresRepository(db *sqlx.DB) Repository { return &postgresRepo{db: db} }

func (r *postgresRepo) Get(ctx context.Context) (int64, bool, error) {
	var value string
	err := r.db.GetContext(ctx, &value,
		`SELECT value FROM system_config WHERE key=$1`, ownerKey)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, false, nil
	}
	if err != nil {
		return 0, false, fmt.Errorf("get owner: %w", err)
	}
	id, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 0, false, fmt.Errorf("parse owner id %q: %w", value, err)
	}
	return id, true, nil
}

// Claim relies on the primary key on system_config.key: the insert is a
// compare-and-set, so two concurrent claims cannot both win.
func (r *postgresRepo) Claim(ctx context.Context, candidate int64) (bool, error) {
	res, err := r.db.ExecContext(ctx, `
		INSERT INTO system_config (key, value) VALUES ($1, $2)
		ON CONFLICT (key) DO NOTHING`,
		ownerKey, strconv.FormatInt(candidate, 10))
	if err != nil {
		return false, fmt.Errorf("claim owner: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return rows > 0, nil
}
