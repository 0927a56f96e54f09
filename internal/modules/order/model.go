package order

import (
	"time"

	"github.com/google/uuid"
)

// Status is the lifecycle state of an order. Conversion is the whole
// lifecycle here: an order is born completed.
type Status string

// StatusCompleted is the single terminal status.
const StatusCompleted Status = "completed"

// Order is an immutable record created from a user's cart. TotalCents
// and the item unit prices are frozen at conversion time; later catalog
// price changes never touch them.
type Order struct {
	ID         uuid.UUID `db:"id" json:"id"`
	UserID     int64     `db:"user_id" json:"user_id"`
	TotalCents int64     `db:"total_cents" json:"total_cents"`
	Status     Status    `db:"status" json:"status"`
	CreatedAt  time.Time `db:"created_at" json:"created_at"`
	Items      []*Item   `db:"-" json:"items,omitempty"`
}

// Item is a single line of an order with its price snapshot.
type Item struct {
	OrderID        uuid.UUID `db:"order_id" json:"order_id"`
	ProductID      uuid.UUID `db:"product_id" json:"product_id"`
	Quantity       int       `db:"quantity" json:"quantity"`
	UnitPriceCents int64     `db:"unit_price_cents" json:"unit_price_cents"`
}
