package handlers

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/mock"
	"go.uber.org/zap"

	"github.com/lucasmendez/rolegate/app"
	"github.com/lucasmendez/rolegate/config"
	"github.com/lucasmendez/rolegate/middleware"
	"github.com/lucasmendez/rolegate/models"
	"github.com/lucasmendez/rolegate/repositories"
	"github.com/lucasmendez/rolegate/services"
	"github.com/lucasmendez/rolegate/token"
)

const testSecret = "handler-test-secret"

// MockUserRepository is a mock implementation of repositories.UserRepository
type MockUserRepository struct {
	mock.Mock
}

func (m *MockUserRepository) Create(ctx context.Context, user *models.User) error {
	args := m.Called(ctx, user)
	return args.Error(0)
}

func (m *MockUserRepository) GetByID(ctx context.Context, id uuid.UUID) (*models.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	args := m.Called(ctx, email)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*models.User), args.Error(1)
}

func (m *MockUserRepository) List(ctx context.Context, limit, offset int) ([]*models.User, error) {
	args := m.Called(ctx, limit, offset)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*models.User), args.Error(1)
}

func (m *MockUserRepository) Delete(ctx context.Context, id uuid.UUID) error {
	args := m.Called(ctx, id)
	return args.Error(0)
}

// newTestDeps wires Dependencies around a mock repository, mirroring the
// startup wiring in app.NewDependencies minus the database.
func newTestDeps(repo repositories.UserRepository) *app.Dependencies {
	logger := zap.NewNop()
	cfg := &config.Config{
		Environment: "test",
		Auth: config.AuthConfig{
			JWTSecret:    testSecret,
			TokenTTL:     time.Hour,
			CookieMaxAge: 3600,
		},
	}

	secret := []byte(cfg.Auth.JWTSecret)
	issuer := token.NewIssuer(secret, cfg.Auth.TokenTTL)
	verifier := token.NewVerifier(secret)

	return &app.Dependencies{
		Config:      cfg,
		Logger:      logger,
		Users:       repo,
		AuthService: services.NewAuthService(repo, issuer, logger),
		UserService: services.NewUserService(repo, logger),
		Auth:        middleware.NewAuthMiddleware(verifier, repo, logger),
	}
}
