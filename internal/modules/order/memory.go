package order

import (
	"context"
	"sort"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/palspantry/pantry-backend/internal/modules/cart"
	"github.com/palspantry/pantry-backend/internal/modules/catalog"
)

// MemoryRepository converts carts against the in-memory cart and catalog
// stores. Its mutex serializes conversions so a cart is read, priced, and
// cleared as one step.
type MemoryRepository struct {
	mu       sync.Mutex
	carts    cart.Repository
	products *catalog.MemoryRepository
	orders   map[uuid.UUID]*Order
}

func NewMemoryRepository(carts cart.Repository, products *catalog.MemoryRepository) *MemoryRepository {
	return &MemoryRepository{
		carts:    carts,
		products: products,
		orders:   make(map[uuid.UUID]*Order),
	}
}

func (r *MemoryRepository) CreateFromCart(ctx context.Context, userID int64) (*Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	items, err := r.carts.ListByUser(ctx, userID)
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, ErrEmptyCart
	}

	o := &Order{
		ID:        uuid.New(),
		UserID:    userID,
		Status:    StatusCompleted,
		CreatedAt: time.Now().UTC(),
	}
	for productID, qty := range items {
		price, ok := r.products.PriceSnapshot(productID)
		if !ok {
			continue // product row gone entirely; nothing to price
		}
		o.TotalCents += int64(qty) * price
		o.Items = append(o.Items, &Item{
			OrderID:        o.ID,
			ProductID:      productID,
			Quantity:       qty,
			UnitPriceCents: price,
		})
	}
	if len(o.Items) == 0 {
		return nil, ErrEmptyCart
	}

	if err := r.carts.Clear(ctx, userID); err != nil {
		return nil, err
	}
	r.orders[o.ID] = o
	return o, nil
}

func (r *MemoryRepository) GetByID(ctx context.Context, id uuid.UUID) (*Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	o, ok := r.orders[id]
	if !ok {
		return nil, ErrNotFound
	}
	cp := *o
	cp.Items = append([]*Item(nil), o.Items...)
	return &cp, nil
}

func (r *MemoryRepository) ListByUser(ctx context.Context, userID int64) ([]*Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []*Order
	for _, o := range r.orders {
		if o.UserID == userID {
			cp := *o
			cp.Items = nil
			out = append(out, &cp)
		}
	}
	// Map iteration is unordered; match the newest-first contract.
	sort.Slice(out, func(i, j int) bool {
		return out[i].CreatedAt.After(out[j].CreatedAt)
	})
	return out, nil
}
