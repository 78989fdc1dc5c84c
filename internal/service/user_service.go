package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/splitr-app/splitr/internal/models"
	"github.com/splitr-app/splitr/internal/storage"
)

// UserService serves user lookup for the contacts page.
type UserService struct {
	store storage.Store
}

// NewUserService creates a UserService.
func NewUserService(store storage.Store) *UserService {
	return &UserService{store: store}
}

// PublicUser is the user shape exposed to other users.
type PublicUser struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Email    string `json:"email"`
	ImageURL string `json:"imageUrl,omitempty"`
}

// Search finds users by name or email substring, excluding the viewer.
// Queries shorter than two characters return an empty result rather than
// the whole user table.
func (s *UserService) Search(ctx context.Context, viewerID, query string) ([]PublicUser, error) {
	query = strings.TrimSpace(query)
	if len(query) < 2 {
		return []PublicUser{}, nil
	}

	users, err := s.store.SearchUsers(ctx, query, viewerID)
	if err != nil {
		return nil, fmt.Errorf("failed to search users: %w", err)
	}

	out := make([]PublicUser, 0, len(users))
	for _, u := range users {
		out = append(out, toPublic(u))
	}
	return out, nil
}

func toPublic(u *models.User) PublicUser {
	return PublicUser{ID: u.ID, Name: u.Name, Email: u.Email, ImageURL: u.ImageURL}
}
