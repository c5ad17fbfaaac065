package services

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/lucasmendez/rolegate/models"
	"github.com/lucasmendez/rolegate/repositories"
)

const (
	defaultListLimit = 20
	maxListLimit     = 100
)

// UserService exposes account management operations over the user repository.
type UserService struct {
	users  repositories.UserRepository
	logger *zap.Logger
}

// NewUserService creates a new UserService
func NewUserService(users repositories.UserRepository, logger *zap.Logger) *UserService {
	return &UserService{
		users:  users,
		logger: logger,
	}
}

// GetByID returns the account record for the given ID
func (s *UserService) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	user, err := s.users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, WrapInternal("failed to get user", err)
	}
	return user, nil
}

// List returns a page of accounts. Limit is clamped to [1, maxListLimit].
func (s *UserService) List(ctx context.Context, limit, offset int) ([]*models.User, error) {
	if limit <= 0 {
		limit = defaultListLimit
	}
	if limit > maxListLimit {
		limit = maxListLimit
	}
	if offset < 0 {
		offset = 0
	}

	users, err := s.users.List(ctx, limit, offset)
	if err != nil {
		return nil, WrapInternal("failed to list users", err)
	}
	return users, nil
}

// Delete removes the account with the given ID
func (s *UserService) Delete(ctx context.Context, id uuid.UUID) error {
	if err := s.users.Delete(ctx, id); err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return ErrUserNotFound
		}
		return WrapInternal("failed to delete user", err)
	}

	s.logger.Info("user deleted", zap.String("user_id", id.String()))
	return nil
}
