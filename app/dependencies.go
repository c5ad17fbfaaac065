// Package app wires the application dependencies at startup. The signing
// secret and the identity store are passed explicitly; nothing is discovered
// per request.
package app

import (
	"context"
	"fmt"

	"go.uber.org/zap"

	"github.com/lucasmendez/rolegate/config"
	"github.com/lucasmendez/rolegate/middleware"
	"github.com/lucasmendez/rolegate/repositories"
	"github.com/lucasmendez/rolegate/repositories/postgres"
	"github.com/lucasmendez/rolegate/services"
	"github.com/lucasmendez/rolegate/token"
)

// Dependencies holds all application dependencies. This is the central
// wiring point for dependency injection.
type Dependencies struct {
	// Infrastructure
	Config *config.Config
	DB     *postgres.DB
	Logger *zap.Logger

	// Repositories
	Users repositories.UserRepository

	// Services
	AuthService *services.AuthService
	UserService *services.UserService

	// Middleware
	Auth *middleware.AuthMiddleware
}

// NewDependencies creates and wires up all application dependencies
func NewDependencies(ctx context.Context, cfg *config.Config, logger *zap.Logger) (*Dependencies, error) {
	deps := &Dependencies{
		Config: cfg,
		Logger: logger,
	}

	db, err := postgres.NewDB(cfg.Database, logger)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize database: %w", err)
	}
	deps.DB = db

	if err := db.InitSchema(ctx); err != nil {
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}

	deps.Users = postgres.NewUserRepository(db, logger)

	secret := []byte(cfg.Auth.JWTSecret)
	issuer := token.NewIssuer(secret, cfg.Auth.TokenTTL)
	verifier := token.NewVerifier(secret)

	deps.AuthService = services.NewAuthService(deps.Users, issuer, logger)
	deps.UserService = services.NewUserService(deps.Users, logger)
	deps.Auth = middleware.NewAuthMiddleware(verifier, deps.Users, logger)

	logger.Info("all dependencies initialized successfully")
	return deps, nil
}

// Close gracefully shuts down all dependencies
func (d *Dependencies) Close(ctx context.Context) error {
	d.Logger.Info("shutting down dependencies")

	var errs []error

	if d.DB != nil {
		if err := d.DB.Close(); err != nil {
			errs = append(errs, fmt.Errorf("failed to close database: %w", err))
		}
	}

	if d.Logger != nil {
		_ = d.Logger.Sync()
	}

	if len(errs) > 0 {
		return fmt.Errorf("errors during shutdown: %v", errs)
	}

	return nil
}
