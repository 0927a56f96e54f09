package catalog

import (
	"context"
	"sort"
	"strings"
	"sync"

	"github.com/google/uuid"
)

// MemoryRepository is an in-memory product store for tests and
// single-process development runs.
type MemoryRepository struct {
	mu       sync.RWMutex
	products map[uuid.UUID]*Product
	order    []uuid.UUID // insertion order, newest listed first
}

func NewMemoryRepository() *MemoryRepository {
	return &MemoryRepository{products: make(map[uuid.UUID]*Product)}
}

// PriceSnapshot returns the stored price of a product regardless of its
// active flag, matching what the SQL join sees during order conversion.
func (r *MemoryRepository) PriceSnapshot(id uuid.UUID) (int64, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.products[id]
	if !ok {
		return 0, false
	}
	return p.PriceCents, true
}

func (r *MemoryRepository) Create(ctx context.Context, p *Product) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *p
	r.products[p.ID] = &cp
	r.order = append(r.order, p.ID)
	return nil
}

func (r *MemoryRepository) GetByID(ctx context.Context, id uuid.UUID) (*Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	p, ok := r.products[id]
	if !ok || !p.IsActive {
		return nil, ErrNotFound
	}
	cp := *p
	return &cp, nil
}

func (r *MemoryRepository) ListActive(ctx context.Context) ([]*Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []*Product
	for i := len(r.order) - 1; i >= 0; i-- {
		if p := r.products[r.order[i]]; p.IsActive {
			cp := *p
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *MemoryRepository) ListByCategory(ctx context.Context, category string) ([]*Product, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	var out []*Product
	for i := len(r.order) - 1; i >= 0; i-- {
		p := r.products[r.order[i]]
		if p.IsActive && strings.EqualFold(p.Category, category) {
			cp := *p
			out = append(out, &cp)
		}
	}
	return out, nil
}

func (r *MemoryRepository) ListCategories(ctx context.Context) ([]string, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	seen := make(map[string]struct{})
	var categories []string
	for _, p := range r.products {
		if !p.IsActive || p.Category == "" {
			continue
		}
		if _, ok := seen[p.Category]; !ok {
			seen[p.Category] = struct{}{}
			categories = append(categories, p.Category)
		}
	}
	sort.Strings(categories)
	return categories, nil
}

func (r *MemoryRepository) SoftDelete(ctx context.Context, id uuid.UUID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.products[id]
	if !ok || !p.IsActive {
		return false, nil
	}
	p.IsActive = false
	return true, nil
}

func (r *MemoryRepository) AdjustStock(ctx context.Context, id uuid.UUID, delta int) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p, ok := r.products[id]
	if !ok || !p.IsActive {
		return 0, ErrNotFound
	}
	if p.Quantity+delta < 0 {
		return 0, ErrInsufficientStock
	}
	p.Quantity += delta
	return p.Quantity, nil
}
