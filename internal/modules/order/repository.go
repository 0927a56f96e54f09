package order

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// ErrEmptyCart is returned when conversion finds no cart rows. Nothing
// is written in that case.
var ErrEmptyCart = errors.New("cart is empty")

// ErrNotFound is returned when an order does not exist.
var ErrNotFound = errors.New("order not found")

// Repository defines data access for orders.
type Repository interface {
	// CreateFromCart converts the user's cart into an order in a single
	// transaction: it reads the cart joined with current product prices,
	// inserts the order and one item per cart row with the price frozen
	// at this instant, and deletes the cart rows. Any failure rolls the
	// whole conversion back; an order without a cleared cart (or the
	// reverse) is never observable.
	CreateFromCart(ctx context.Context, userID int64) (*Order, error)

	// GetByID retrieves an order with its items.
	GetByID(ctx context.Context, id uuid.UUID) (*Order, error)

	// ListByUser returns the user's orders, newest first, without items.
	ListByUser(ctx context.Context, userID int64) ([]*Order, error)
}
