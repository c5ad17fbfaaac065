package services

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/lucasmendez/rolegate/models"
	"github.com/lucasmendez/rolegate/repositories"
	"github.com/lucasmendez/rolegate/token"
)

// AuthService handles account registration and credential-based login.
type AuthService struct {
	users  repositories.UserRepository
	issuer *token.Issuer
	logger *zap.Logger
}

// NewAuthService creates a new AuthService
func NewAuthService(users repositories.UserRepository, issuer *token.Issuer, logger *zap.Logger) *AuthService {
	return &AuthService{
		users:  users,
		issuer: issuer,
		logger: logger,
	}
}

// Register creates a new account with the viewer role. The password is
// stored as a bcrypt hash.
func (s *AuthService) Register(ctx context.Context, name, email, password string) (*models.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, WrapInternal("failed to hash password", err)
	}

	user := models.NewUser(name, email, string(hash), models.RoleViewer)

	if err := s.users.Create(ctx, user); err != nil {
		if errors.Is(err, repositories.ErrDuplicateEmail) {
			return nil, ErrEmailExists
		}
		return nil, WrapInternal("failed to create user", err)
	}

	s.logger.Info("user registered",
		zap.String("user_id", user.ID.String()),
		zap.String("email", user.Email))

	return user, nil
}

// Login verifies the credentials and mints a signed bearer token for the
// account. Unknown email and wrong password collapse to the same error.
func (s *AuthService) Login(ctx context.Context, email, password string) (string, *models.User, error) {
	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, repositories.ErrUserNotFound) {
			return "", nil, ErrWrongCredentials
		}
		return "", nil, WrapInternal("failed to look up user", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)); err != nil {
		return "", nil, ErrWrongCredentials
	}

	signed, err := s.issuer.Issue(user.ID)
	if err != nil {
		return "", nil, WrapInternal("failed to issue token", err)
	}

	s.logger.Info("user logged in", zap.String("user_id", user.ID.String()))

	return signed, user, nil
}
