package order

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

type cartRow struct {
	ProductID  uuid.UUID `db:"product_id"`
	Quantity   int       `db:"quantity"`
	PriceCents int64     `db:"price_cents"`
}

func (r *postgresRepo) CreateFromCart(ctx context.Context, userID int64) (*Order, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, err
	}
	defer tx.Rollback()

	var rows []cartRow
	err = tx.SelectContext(ctx, &rows, `
		SELECT ci.product_id, ci.quantity, p.price_cents
		FROM cart_items ci
		JOIN products p ON ci.product_id = p.id
		WHERE ci.user_id = $1`, userID)
	if err != nil {
		return nil, fmt.Errorf("read cart: %w", err)
	}
	if len(rows) == 0 {
		return nil, ErrEmptyCart
	}

	o := &Order{
		ID:     uuid.New(),
		UserID: userID,
		Status: StatusCompleted,
	}
	for _, row := range rows {
		o.TotalCents += int64(row.Quantity) * row.PriceCents
		o.Items = append(o.Items, &Item{
			OrderID:        o.ID,
			ProductID:      row.ProductID,
			Quantity:       row.Quantity,
			UnitPriceCents: row.PriceCents,
		})
	}

	err = tx.GetContext(ctx, &o.CreatedAt, `
		INSERT INTO orders (id, user_id, total_cents, status)
		VALUES ($1, $2, $3, $4)
		RETURNING created_at`,
		o.ID, o.UserID, o.TotalCents, o.Status)
	if err != nil {
		return nil, fmt.Errorf("insert order: %w", err)
	}

	for _, item := range o.Items {
		_, err = tx.ExecContext(ctx, `
			INSERT INTO order_items (order_id, product_id, quantity, unit_price_cents)
			VALUES ($1, $2, $3, $4)`,
			item.OrderID, item.ProductID, item.Quantity, item.UnitPriceCents)
		if err != nil {
			return nil, fmt.Errorf("insert order item: %w", err)
		}
	}

	if _, err = tx.ExecContext(ctx,
		`DELETE FROM cart_items WHERE user_id=$1`, userID); err != nil {
		return nil, fmt.Errorf("clear cart: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return nil, err
	}
	return o, nil
}

func (r *postgresRepo) GetByID(ctx context.Context, id uuid.UUID) (*Order, error) {
	o := &Order{}
	err := r.db.GetContext(ctx, o,
		`SELECT id, user_id, total_cents, status, created_at FROM orders WHERE id=$1`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("get order: %w", err)
	}
	err = r.db.SelectContext(ctx, &o.Items, `
		SELECT order_id, product_id, quantity, unit_price_cents
		FROM order_items WHERE order_id=$1`, id)
	if err != nil {
		return nil, fmt.Errorf("list order items: %w", err)
	}
	return o, nil
}

func (r *postgresRepo) ListByUser(ctx context.Context, userID int64) ([]*Order, error) {
	var orders []*Order
	err := r.db.SelectContext(ctx, &orders, `
		SELECT id, user_id, total_cents, status, created_at
		FROM orders WHERE user_id=$1 ORDER BY created_at DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("list orders: %w", err)
	}
	return orders, nil
}
