package catalog

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ErrMissingField is returned when a required product field is absent.
var ErrMissingField = errors.New("missing required product field")

// ErrInvalidPrice is returned when the price is not strictly positive.
var ErrInvalidPrice = errors.New("price must be a positive amount")

// ErrInvalidQuantity is returned when the quantity is negative.
var ErrInvalidQuantity = errors.New("quantity must not be negative")

// Service defines catalog business logic.
type Service interface {
	// AddProduct validates the draft, converts its decimal price to minor
	// units, and persists a new product under a fresh id.
	AddProduct(ctx context.Context, d Draft) (uuid.UUID, error)

	// GetProduct returns an active product by id.
	GetProduct(ctx context.Context, id uuid.UUID) (*Product, error)

	// ListAll returns all active products.
	ListAll(ctx context.Context) ([]*Product, error)

	// ListByCategory returns active products in a category, matched
	// case-insensitively.
	ListByCategory(ctx context.Context, category string) ([]*Product, error)

	// ListCategories returns the distinct categories of active products.
	ListCategories(ctx context.Context) ([]string, error)

	// SoftDelete marks a product inactive.
	SoftDelete(ctx context.Context, id uuid.UUID) (bool, error)

	// AdjustStock applies delta to a product's quantity atomically.
	AdjustStock(ctx context.Context, id uuid.UUID, delta int) (int, error)
}

type service struct {
	repo   Repository
	logger *zap.Logger
}

// NewService creates a new catalog service.
func NewService(repo Repository, logger *zap.Logger) Service {
	return &service{repo: repo, logger: logger}
}

// PriceToCents converts a decimal price to integer minor units, rounding
// halves away from zero.
func PriceToCents(price float64) int64 {
	return int64(math.Round(price * 100))
}

// maxPrice is the largest decimal price whose minor units fit in an int64.
const maxPrice = float64(math.MaxInt64) / 100

// ValidPrice reports whether price is a finite, strictly positive amount
// whose minor units fit in an int64. ParseFloat accepts "nan" and "inf",
// and NaN slips past ordered comparisons, so both are checked explicitly.
func ValidPrice(price float64) bool {
	return !math.IsNaN(price) && !math.IsInf(price, 0) && price > 0 && price <= maxPrice
}

func (s *service) AddProduct(ctx context.Context, d Draft) (uuid.UUID, error) {
	d.Name = strings.TrimSpace(d.Name)
	d.Description = strings.TrimSpace(d.Description)
	d.Category = strings.TrimSpace(d.Category)
	if d.Name == "" || d.Description == "" || d.Category == "" {
		return uuid.Nil, ErrMissingField
	}
	if !ValidPrice(d.Price) {
		return uuid.Nil, ErrInvalidPrice
	}
	if d.Quantity < 0 {
		return uuid.Nil, ErrInvalidQuantity
	}

	p := &Product{
		ID:          uuid.New(),
		Name:        d.Name,
		Description: d.Description,
		PriceCents:  PriceToCents(d.Price),
		Quantity:    d.Quantity,
		Category:    d.Category,
		ImageFileID: d.ImageFileID,
		IsActive:    true,
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return uuid.Nil, fmt.Errorf("failed to persist product: %w", err)
	}
	s.logger.Info("product added",
		zap.String("product_id", p.ID.String()),
		zap.String("name", p.Name),
		zap.Int64("price_cents", p.PriceCents))
	return p.ID, nil
}

func (s *service) GetProduct(ctx context.Context, id uuid.UUID) (*Product, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) ListAll(ctx context.Context) ([]*Product, error) {
	return s.repo.ListActive(ctx)
}

func (s *service) ListByCategory(ctx context.Context, category string) ([]*Product, error) {
	return s.repo.ListByCategory(ctx, category)
}

func (s *service) ListCategories(ctx context.Context) ([]string, error) {
	return s.repo.ListCategories(ctx)
}

func (s *service) SoftDelete(ctx context.Context, id uuid.UUID) (bool, error) {
	return s.repo.SoftDelete(ctx, id)
}

func (s *service) AdjustStock(ctx context.Context, id uuid.UUID, delta int) (int, error) {
	qty, err := s.repo.AdjustStock(ctx, id, delta)
	if errors.Is(err, ErrInsufficientStock) {
		s.logger.Warn("stock adjustment rejected",
			zap.String("product_id", id.String()),
			zap.Int("delta", delta))
		return 0, err
	}
	return qty, err
}
