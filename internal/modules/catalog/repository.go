package catalog

import (
	"context"
	"errors"

	"github.com/google/uuid"
)

// ErrNotFound is returned when a product does not exist or is inactive.
var ErrNotFound = errors.New("product not found")

// ErrInsufficientStock is returned when a stock adjustment would drive
// the quantity negative. The stored quantity is left unchanged.
var ErrInsufficientStock = errors.New("insufficient stock")

// Repository defines data access for catalog products.
type Repository interface {
	// Create persists a new product row.
	Create(ctx context.Context, p *Product) error

	// GetByID returns an active product, or ErrNotFound.
	GetByID(ctx context.Context, id uuid.UUID) (*Product, error)

	// ListActive returns all active products.
	ListActive(ctx context.Context) ([]*Product, error)

	// ListByCategory returns active products whose category matches
	// (case-insensitive).
	ListByCategory(ctx context.Context, category string) ([]*Product, error)

	// ListCategories returns the distinct categories of active products,
	// sorted.
	ListCategories(ctx context.Context) ([]string, error)

	// SoftDelete marks a product inactive. The row is never removed so
	// historical order items keep a valid reference.
	SoftDelete(ctx context.Context, id uuid.UUID) (bool, error)

	// AdjustStock applies delta to the product quantity as one atomic
	// conditional write and returns the new quantity. It returns
	// ErrInsufficientStock when the result would be negative and
	// ErrNotFound when no active product matches. A read-check-write
	// sequence is not an acceptable implementation: two concurrent
	// decrements could both pass a stale bounds check.
	AdjustStock(ctx context.Context, id uuid.UUID, delta int) (int, error)
}
