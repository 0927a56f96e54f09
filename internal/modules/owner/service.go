package owner

import (
	"context"

	"go.uber.org/zap"
)

// Service defines owner registry business logic.
type Service interface {
	// IsOwnerSet reports whether an owner has been registered.
	IsOwnerSet(ctx context.Context) (bool, error)

	// GetOwner returns the registered owner principal id, ok=false if unset.
	GetOwner(ctx context.Context) (int64, bool, error)

	// ClaimOwner attempts to register candidate as the owner. It returns
	// false when an owner already exists; callers must not treat a false
	// result as a new owner having been installed.
	ClaimOwner(ctx context.Context, candidate int64) (bool, error)

	// IsOwner reports whether principal is the registered owner.
	IsOwner(ctx context.Context, principal int64) (bool, error)
}

type service struct {
	repo   Repository
	logger *zap.Logger
}

// NewService creates a new owner service.
func NewService(repo Repository, logger *zap.Logger) Service {
	return &service{repo: repo, logger: logger}
}

func (s *service) IsOwnerSet(ctx context.Context) (bool, error) {
	_, set, err := s.repo.Get(ctx)
	return set, err
}

func (s *service) GetOwner(ctx context.Context) (int64, bool, error) {
	return s.repo.Get(ctx)
}

func (s *service) ClaimOwner(ctx context.Context, candidate int64) (bool, error) {
	claimed, err := s.repo.Claim(ctx, candidate)
	if err != nil {
		return false, err
	}
	if claimed {
		s.logger.Info("owner claimed", zap.Int64("principal", candidate))
	}
	return claimed, nil
}

func (s *service) IsOwner(ctx context.Context, principal int64) (bool, error) {
	id, set, err := s.repo.Get(ctx)
	if err != nil {
		return false, err
	}
	return set && id == principal, nil
}
