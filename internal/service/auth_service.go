package service

import (
	"context"
	"fmt"
	"log/slog"
	"strings"

	"github.com/splitr-app/splitr/internal/auth"
	"github.com/splitr-app/splitr/internal/models"
)

// AuthService handles registration and login, issuing session tokens.
type AuthService struct {
	authenticator auth.Authenticator
	jwtManager    *auth.JWTManager
}

// NewAuthService creates an AuthService.
func NewAuthService(authenticator auth.Authenticator, jwtManager *auth.JWTManager) *AuthService {
	return &AuthService{authenticator: authenticator, jwtManager: jwtManager}
}

// Register creates an account and returns the user with a signed token.
func (s *AuthService) Register(ctx context.Context, email, name, password string) (*models.User, string, error) {
	email = strings.TrimSpace(strings.ToLower(email))
	name = strings.TrimSpace(name)
	if email == "" || name == "" {
		return nil, "", fmt.Errorf("%w: email and name are required", ErrInvalidInput)
	}

	user, err := s.authenticator.Register(ctx, email, name, password)
	if err != nil {
		return nil, "", err
	}

	token, err := s.jwtManager.Generate(user)
	if err != nil {
		return nil, "", fmt.Errorf("failed to issue token: %w", err)
	}

	slog.Info("User registered", "user_id", user.ID)
	return user, token, nil
}

// Login authenticates the credentials and returns the user with a signed
// token.
func (s *AuthService) Login(ctx context.Context, email, password string) (*models.User, string, error) {
	email = strings.TrimSpace(strings.ToLower(email))

	user, err := s.authenticator.Authenticate(ctx, email, password)
	if err != nil {
		return nil, "", err
	}

	token, err := s.jwtManager.Generate(user)
	if err != nil {
		return nil, "", fmt.Errorf("failed to issue token: %w", err)
	}

	slog.Info("User logged in", "user_id", user.ID)
	return user, token, nil
}
