package order

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// Service defines order conversion business logic.
type Service interface {
	// CreateOrder converts the user's cart into a completed order. An
	// empty cart is a pure no-op reported as ErrEmptyCart. Conversion
	// does not touch product stock: stock is display-only at order time,
	// and movements go through the catalog's explicit adjustment.
	CreateOrder(ctx context.Context, userID int64) (*Order, error)

	// GetOrder retrieves an order with its items.
	GetOrder(ctx context.Context, id uuid.UUID) (*Order, error)

	// ListUserOrders returns the user's orders, newest first.
	ListUserOrders(ctx context.Context, userID int64) ([]*Order, error)
}

type service struct {
	repo   Repository
	logger *zap.Logger
}

// NewService creates a new order service.
func NewService(repo Repository, logger *zap.Logger) Service {
	return &service{repo: repo, logger: logger}
}

func (s *service) CreateOrder(ctx context.Context, userID int64) (*Order, error) {
	o, err := s.repo.CreateFromCart(ctx, userID)
	if errors.Is(err, ErrEmptyCart) {
		return nil, err
	}
	if err != nil {
		return nil, err
	}
	s.logger.Info("order created",
		zap.String("order_id", o.ID.String()),
		zap.Int64("user_id", userID),
		zap.Int64("total_cents", o.TotalCents),
		zap.Int("items", len(o.Items)))
	return o, nil
}

func (s *service) GetOrder(ctx context.Context, id uuid.UUID) (*Order, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) ListUserOrders(ctx context.Context, userID int64) ([]*Order, error) {
	return s.repo.ListByUser(ctx, userID)
}
