package cart

import (
	"context"

	"github.com/google/uuid"
)

// Repository defines data access for cart items.
type Repository interface {
	// AddItem upserts one row: inserted if absent, otherwise the stored
	// quantity is incremented by qty in the same atomic statement so two
	// concurrent adds cannot lose an update. It returns the resulting
	// quantity; a result <= 0 removes the row and reports 0.
	AddItem(ctx context.Context, userID int64, productID uuid.UUID, qty int) (int, error)

	// ListByUser returns the user's cart as product id -> quantity.
	ListByUser(ctx context.Context, userID int64) (map[uuid.UUID]int, error)

	// Clear deletes every row for the user. Clearing an empty cart is
	// still a success.
	Clear(ctx context.Context, userID int64) error
}
