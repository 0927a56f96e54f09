package catalog

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type postgresRepo struct{ db *sqlx.DB }

func NewPostgresRepository(db *sqlx.DB) Repository { return &postgresRepo{db: db} }

const productColumns = `id, name, description, price_cents, quantity, category,
	image_file_id, is_active, created_at, updated_at`

func (r *postgresRepo) Create(ctx context.Context, p *Product) error {
	_, err := r.db.NamedExecContext(ctx, `
		INSERT INTO products
		  (id, name, description, price_cents, quantity, category, image_file_id, is_active)
		VALUES (:id, :name, :description, :price_cents, :quantity, :category, :image_file_id, :is_active)`,
		p)
	if err != nil {
		return fmt.Errorf("insert product: %w", err)
	}
	return nil
}

func (r *postgresRepo) GetByID(ctx context.Context, id uuid.UUID) (*Product, error) {
	p := &Product{}
	err := r.db.GetContext(ctx, p,
		`SELECT `+productColumns+` FROM products WHERE id=$1 AND is_active=true`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get product: %w", err)
	}
	return p, nil
}

func (r *postgresRepo) ListActive(ctx context.Context) ([]*Product, error) {
	var products []*Product
	err := r.db.SelectContext(ctx, &products,
		`SELECT `+productColumns+` FROM products WHERE is_active=true ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("list products: %w", err)
	}
	return products, nil
}

func (r *postgresRepo) ListByCategory(ctx context.Context, category string) ([]*Product, error) {
	var products []*Product
	err := r.db.SelectContext(ctx, &products, `
		SELECT `+productColumns+` FROM products
		WHERE category ILIKE $1 AND is_active=true
		ORDER BY created_at DESC`, category)
	if err != nil {
		return nil, fmt.Errorf("list products by category: %w", err)
	}
	return products, nil
}

func (r *postgresRepo) ListCategories(ctx context.Context) ([]string, error) {
	var categories []string
	err := r.db.SelectContext(ctx, &categories, `
		SELECT DISTINCT category FROM products
		WHERE category <> '' AND is_active=true
		ORDER BY category`)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	return categories, nil
}

func (r *postgresRepo) SoftDelete(ctx context.Context, id uuid.UUID) (bool, error) {
	res, err := r.db.ExecContext(ctx,
		`UPDATE products SET is_active=false, updated_at=NOW() WHERE id=$1 AND is_active=true`, id)
	if err != nil {
		return false, fmt.Errorf("soft delete product: %w", err)
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return false, err
	}
	return rows > 0, nil
}

// AdjustStock is a single conditional UPDATE. The quantity floor is
// enforced by the database in the same statement that applies the delta,
// so concurrent decrements can never observe a stale bound. The CTE also
// reads back the current row when the update matched nothing, so missing
// product and hit floor are told apart from the same snapshot.
func (r *postgresRepo) AdjustStock(ctx context.Context, id uuid.UUID, delta int) (int, error) {
	var row struct {
		Quantity int  `db:"quantity"`
		Applied  bool `db:"applied"`
	}
	err := r.db.GetContext(ctx, &row, `
		WITH updated AS (
			UPDATE products
			SET quantity = quantity + $2, updated_at = NOW()
			WHERE id = $1 AND is_active = true AND quantity + $2 >= 0
			RETURNING quantity
		)
		SELECT quantity, true AS applied FROM updated
		UNION ALL
		SELECT quantity, false AS applied FROM products
		WHERE id = $1 AND is_active = true
		  AND NOT EXISTS (SELECT 1 FROM updated)`, id, delta)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, ErrNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("adjust stock: %w", err)
	}
	if !row.Applied {
		return 0, ErrInsufficientStock
	}
	return row.Quantity, nil
}
