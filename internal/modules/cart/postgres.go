package cart

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

type postgresRepo struct{ db *sqlx.DB }

func NewPostgresRepository(db *sqlx.DB) Repository { return &postgresRepo{db: db} }

func (r *postgresRepo) AddItem(ctx context.Context, userID int64, productID uuid.UUID, qty int) (int, error) {
	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer tx.Rollback()

	var newQuantity int
	err = tx.GetContext(ctx, &newQuantity, `
		INSERT INTO cart_items (user_id, product_id, quantity)
		VALUES ($1, $2, $3)
		ON CONFLICT (user_id, product_id) DO UPDATE SET
			quantity = cart_items.quantity + EXCLUDED.quantity
		RETURNING quantity`,
		userID, productID, qty)
	if err != nil {
		return 0, fmt.Errorf("upsert cart item: %w", err)
	}

	// Non-positive rows must not survive: a decrement to zero or below
	// is the same as removal.
	if newQuantity <= 0 {
		if _, err := tx.ExecContext(ctx,
			`DELETE FROM cart_items WHERE user_id=$1 AND product_id=$2`,
			userID, productID); err != nil {
			return 0, fmt.Errorf("remove empty cart item: %w", err)
		}
		newQuantity = 0
	}

	if err := tx.Commit(); err != nil {
		return 0, err
	}
	return newQuantity, nil
}

func (r *postgresRepo) ListByUser(ctx context.Context, userID int64) (map[uuid.UUID]int, error) {
	var items []Item
	err := r.db.SelectContext(ctx, &items,
		`SELECT user_id, product_id, quantity FROM cart_items WHERE user_id=$1`, userID)
	if err != nil {
		return nil, fmt.Errorf("list cart items: %w", err)
	}
	out := make(map[uuid.UUID]int, len(items))
	for _, it := range items {
		out[it.ProductID] = it.Quantity
	}
	return out, nil
}

func (r *postgresRepo) Clear(ctx context.Context, userID int64) error {
	if _, err := r.db.ExecContext(ctx,
		`DELETE FROM cart_items WHERE user_id=$1`, userID); err != nil {
		return fmt.Errorf("clear cart: %w", err)
	}
	return nil
}
