package cart

import (
	"context"
	"sync"

	"github.com/google/uuid"
)

type memoryRepo struct {
	mu    sync.Mutex
	carts map[int64]map[uuid.UUID]int
}

// NewMemoryRepository returns an in-memory cart store for tests and
// single-process development runs.
func NewMemoryRepository() Repository {
	return &memoryRepo{carts: make(map[int64]map[uuid.UUID]int)}
}

func (r *memoryRepo) AddItem(ctx context.Context, userID int64, productID uuid.UUID, qty int) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	items, ok := r.carts[userID]
	if !ok {
		items = make(map[uuid.UUID]int)
		r.carts[userID] = items
	}
	newQuantity := items[productID] + qty
	if newQuantity <= 0 {
		delete(items, productID)
		return 0, nil
	}
	items[productID] = newQuantity
	return newQuantity, nil
}

func (r *memoryRepo) ListByUser(ctx context.Context, userID int64) (map[uuid.UUID]int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make(map[uuid.UUID]int, len(r.carts[userID]))
	for id, qty := range r.carts[userID] {
		out[id] = qty
	}
	return out, nil
}

func (r *memoryRepo) Clear(ctx context.Context, userID int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.carts, userID)
	return nil
}
