package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/lucasmendez/rolegate/models"
	"github.com/lucasmendez/rolegate/repositories"
	"github.com/lucasmendez/rolegate/token"
	"github.com/lucasmendez/rolegate/utils"
)

// TokenVerifier validates a bearer token and returns the embedded subject.
type TokenVerifier interface {
	Verify(tokenString string) (uuid.UUID, error)
}

// UserStore resolves a subject to the current account record. A missing
// account must be signaled with repositories.ErrUserNotFound; any other
// error is treated as an infrastructure failure.
type UserStore interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
}

// AuthMiddleware gates protected routes: it extracts the bearer credential,
// verifies it, resolves the account fresh from the store and enforces a
// per-route role allow-list before binding the identity to the request.
type AuthMiddleware struct {
	verifier TokenVerifier
	users    UserStore
	logger   *zap.Logger
}

// NewAuthMiddleware creates a new AuthMiddleware
func NewAuthMiddleware(verifier TokenVerifier, users UserStore, logger *zap.Logger) *AuthMiddleware {
	return &AuthMiddleware{
		verifier: verifier,
		users:    users,
		logger:   logger,
	}
}

// tokenCookieName is the cookie carrying the bearer token; the Authorization
// header is the fallback.
const tokenCookieName = "token"

const bearerPrefix = "Bearer "

// RequireRoles returns middleware admitting only accounts whose role is in
// the given allow-list. The allow-list is fixed at route registration and
// shared read-only across all requests hitting the route.
func (m *AuthMiddleware) RequireRoles(roles ...models.UserRole) func(http.Handler) http.Handler {
	allowed := make([]models.UserRole, len(roles))
	copy(allowed, roles)

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()

			credential := extractToken(r)
			if credential == "" {
				_ = utils.WriteUnauthorized(w, "Token not provided")
				return
			}

			userID, err := m.verifier.Verify(credential)
			if err != nil {
				if errors.Is(err, token.ErrMalformedSubject) {
					// The token verified but its payload is inconsistent
					// with the identity schema: an issuer bug, not a
					// forged credential.
					m.logger.Error("token subject malformed", zap.Error(err))
					_ = utils.WriteInternalServerError(w, "Authentication error")
					return
				}
				_ = utils.WriteUnauthorized(w, "Invalid or expired token")
				return
			}

			// Fresh lookup on every request so revoked or deleted accounts
			// are rejected immediately.
			user, err := m.users.GetByID(ctx, userID)
			if err != nil {
				if errors.Is(err, repositories.ErrUserNotFound) {
					_ = utils.WriteUnauthorized(w, "User belonging to this token no longer exists")
					return
				}
				m.logger.Error("identity lookup failed",
					zap.String("user_id", userID.String()),
					zap.Error(err))
				_ = utils.WriteInternalServerError(w, "Authentication error")
				return
			}

			if !roleAllowed(user.Role, allowed) {
				m.logger.Warn("permission denied",
					zap.String("user_id", user.ID.String()))
				_ = utils.WriteForbidden(w, "Permission denied")
				return
			}

			ctx = WithUser(ctx, *user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func roleAllowed(role models.UserRole, allowed []models.UserRole) bool {
	for _, r := range allowed {
		if r == role {
			return true
		}
	}
	return false
}

// extractToken pulls the bearer credential from the "token" cookie, falling
// back to the Authorization header. A header without the "Bearer " scheme
// prefix, or with nothing after it, is treated as absent.
func extractToken(r *http.Request) string {
	if cookie, err := r.Cookie(tokenCookieName); err == nil && cookie.Value != "" {
		return cookie.Value
	}

	authHeader := r.Header.Get("Authorization")
	if !strings.HasPrefix(authHeader, bearerPrefix) {
		return ""
	}
	return authHeader[len(bearerPrefix):]
}
