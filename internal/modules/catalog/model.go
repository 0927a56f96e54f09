package catalog

import (
	"time"

	"github.com/google/uuid"
)

// Product is a catalog item. Prices are stored in integer minor units
// (cents) so totals never accumulate floating-point error. Products are
// soft-deleted: the row stays behind historical order items forever.
type Product struct {
	ID          uuid.UUID `db:"id" json:"id"`
	Name        string    `db:"name" json:"name"`
	Description string    `db:"description" json:"description"`
	PriceCents  int64     `db:"price_cents" json:"price_cents"`
	Quantity    int       `db:"quantity" json:"quantity"`
	Category    string    `db:"category" json:"category"`
	ImageFileID string    `db:"image_file_id" json:"image_file_id,omitempty"`
	IsActive    bool      `db:"is_active" json:"is_active"`
	CreatedAt   time.Time `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time `db:"updated_at" json:"updated_at"`
}

// Draft holds the fields collected for a new product before persistence.
// Price stays a plain decimal here; conversion to minor units happens in
// the service at save time.
type Draft struct {
	Name        string  `json:"name"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
	Quantity    int     `json:"quantity"`
	Category    string  `json:"category"`
	ImageFileID string  `json:"image_file_id,omitempty"`
}
