package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/splitr-app/splitr/internal/auth"
)

func newAuthService(store *fakeStore) *AuthService {
	authenticator := auth.NewPasswordAuthenticator(store)
	jwtManager := auth.NewJWTManager("test-secret", time.Hour)
	return NewAuthService(authenticator, jwtManager)
}

func TestRegisterAndLogin(t *testing.T) {
	ctx := context.Background()
	store := newFakeStore()
	svc := newAuthService(store)

	user, token, err := svc.Register(ctx, "Alice@Example.com", "Alice", "correct-horse")
	if err != nil {
		t.Fatalf("Register failed: %v", err)
	}
	if user.ID == "" {
		t.Error("expected user ID to be generated")
	}
	if user.Email != "alice@example.com" {
		t.Errorf("email = %s, want lowercased", user.Email)
	}
	if token == "" {
		t.Error("expected a session token")
	}

	t.Run("login with correct password", func(t *testing.T) {
		got, token, err := svc.Login(ctx, "alice@example.com", "correct-horse")
		if err != nil {
			t.Fatalf("Login failed: %v", err)
		}
		if got.ID != user.ID {
			t.Errorf("user = %s, want %s", got.ID, user.ID)
		}
		if token == "" {
			t.Error("expected a session token")
		}
	})

	t.Run("login with wrong password", func(t *testing.T) {
		_, _, err := svc.Login(ctx, "alice@example.com", "wrong")
		if !errors.Is(err, auth.ErrInvalidCredentials) {
			t.Errorf("error = %v, want ErrInvalidCredentials", err)
		}
	})

	t.Run("login with unknown email", func(t *testing.T) {
		_, _, err := svc.Login(ctx, "nobody@example.com", "correct-horse")
		if !errors.Is(err, auth.ErrInvalidCredentials) {
			t.Errorf("error = %v, want ErrInvalidCredentials", err)
		}
	})

	t.Run("duplicate email rejected", func(t *testing.T) {
		_, _, err := svc.Register(ctx, "alice@example.com", "Alice Again", "another-pass")
		if !errors.Is(err, auth.ErrEmailExists) {
			t.Errorf("error = %v, want ErrEmailExists", err)
		}
	})
}

func TestRegisterValidation(t *testing.T) {
	ctx := context.Background()
	svc := newAuthService(newFakeStore())

	if _, _, err := svc.Register(ctx, "", "Alice", "correct-horse"); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("empty email: error = %v, want ErrInvalidInput", err)
	}
	if _, _, err := svc.Register(ctx, "a@b.com", "", "correct-horse"); !errors.Is(err, ErrInvalidInput) {
		t.Errorf("empty name: error = %v, want ErrInvalidInput", err)
	}
	if _, _, err := svc.Register(ctx, "a@b.com", "Alice", "short"); !errors.Is(err, auth.ErrWeakPassword) {
		t.Errorf("weak password: error = %v, want ErrWeakPassword", err)
	}
}
