// Package repositories defines the persistence interfaces consumed by the
// services and middleware layers.
package repositories

import (
	"context"
	"errors"

	"github.com/google/uuid"
	"github.com/lucasmendez/rolegate/models"
)

// ErrUserNotFound signals that no account exists for the given key. Callers
// use it to distinguish a deleted or deactivated account from an
// infrastructure failure.
var ErrUserNotFound = errors.New("user not found")

// ErrDuplicateEmail signals a unique-constraint violation on email.
var ErrDuplicateEmail = errors.New("email already registered")

// UserRepository provides access to persisted account records
type UserRepository interface {
	// Create persists a new user
	Create(ctx context.Context, user *models.User) error

	// GetByID retrieves the current account record for a user ID.
	// Returns ErrUserNotFound when no such account exists.
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)

	// GetByEmail retrieves a user by email.
	// Returns ErrUserNotFound when no such account exists.
	GetByEmail(ctx context.Context, email string) (*models.User, error)

	// List returns users ordered by creation time, newest first
	List(ctx context.Context, limit, offset int) ([]*models.User, error)

	// Delete removes a user. Returns ErrUserNotFound when no row matched.
	Delete(ctx context.Context, id uuid.UUID) error
}
