package cart

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ErrZeroQuantity is returned for an add of zero items.
var ErrZeroQuantity = errors.New("quantity must not be zero")

// Service defines cart business logic. No stock check happens here:
// stock is adjusted only through explicit catalog operations.
type Service interface {
	// AddToCart adds qty of a product to the user's cart and returns the
	// resulting quantity. Negative qty decrements; a row driven to zero
	// or below is removed.
	AddToCart(ctx context.Context, userID int64, productID uuid.UUID, qty int) (int, error)

	// GetCartItems returns the user's cart as product id -> quantity.
	GetCartItems(ctx context.Context, userID int64) (map[uuid.UUID]int, error)

	// ClearCart removes every item from the user's cart. It succeeds even
	// when the cart was already empty.
	ClearCart(ctx context.Context, userID int64) (bool, error)
}

type service struct {
	repo   Repository
	logger *zap.Logger
}

// NewService creates a new cart service.
func NewService(repo Repository, logger *zap.Logger) Service {
	return &service{repo: repo, logger: logger}
}

func (s *service) AddToCart(ctx context.Context, userID int64, productID uuid.UUID, qty int) (int, error) {
	if qty == 0 {
		return 0, ErrZeroQuantity
	}
	return s.repo.AddItem(ctx, userID, productID, qty)
}

func (s *service) GetCartItems(ctx context.Context, userID int64) (map[uuid.UUID]int, error) {
	return s.repo.ListByUser(ctx, userID)
}

func (s *service) ClearCart(ctx context.Context, userID int64) (bool, error) {
	if err := s.repo.Clear(ctx, userID); err != nil {
		return false, err
	}
	return true, nil
}
