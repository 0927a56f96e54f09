package owner

import "context"

// Repository defines data access for the single owner slot.
type Repository interface {
	// Get returns the owner principal id, with ok=false when no owner is set.
	Get(ctx context.Context) (int64, bool, error)

	// Claim stores candidate as the owner only if the slot is empty.
	// It returns false when an owner was already set; the stored value is
	// never overwritten.
	Claim(ctx context.Context, candidate int64) (bool, error)
}
