package cart

import "github.com/google/uuid"

// Item is one user/product row in a cart. A row with quantity <= 0 is
// never persisted; it is equivalent to absence.
type Item struct {
	UserID    int64     `db:"user_id" json:"user_id"`
	ProductID uuid.UUID `db:"product_id" json:"product_id"`
	Quantity  int       `db:"quantity" json:"quantity"`
}
