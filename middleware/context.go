package middleware

import (
	"context"
	"errors"

	"github.com/lucasmendez/rolegate/models"
)

// Context key type to avoid collisions
type contextKey string

// UserKey is the context key for the authenticated user
const UserKey contextKey = "auth_user"

// ErrNoAuthenticatedUser is returned by Authenticated when no user is bound
// to the context. It signals a route that uses the accessor without being
// wrapped by RequireRoles, which is a wiring defect, not a caller error.
var ErrNoAuthenticatedUser = errors.New("no authenticated user in request context")

// WithUser binds a copy of the account record to the context. The binding is
// per-request and written exactly once, by the auth middleware.
func WithUser(ctx context.Context, user models.User) context.Context {
	return context.WithValue(ctx, UserKey, user)
}

// Authenticated retrieves the account record bound by the auth middleware.
// The record is returned by value, so handlers cannot mutate the bound copy.
func Authenticated(ctx context.Context) (models.User, error) {
	user, ok := ctx.Value(UserKey).(models.User)
	if !ok {
		return models.User{}, ErrNoAuthenticatedUser
	}
	return user, nil
}
