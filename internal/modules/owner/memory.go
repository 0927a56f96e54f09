package owner

import (
	"context"
	"sync"
)

type memoryRepo struct {
	mu  sync.Mutex
	id  int64
	set bool
}

// NewMemoryRepository returns an in-memory owner slot for tests and
// single-process development runs.
func NewMemoryRepository() Repository { return &memoryRepo{} }

func (r *memoryRepo) Get(ctx context.Context) (int64, bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.id, r.set, nil
}

func (r *memoryRepo) Claim(ctx context.Context, candidate int64) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.set {
		return false, nil
	}
	r.id = candidate
	r.set = true
	return true, nil
}
