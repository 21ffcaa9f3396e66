package auth

import (
	"context"
	"fmt"

	"github.com/google/uuid"
)

// UserDirectoryAdapter exposes user lookups to the agents module without
// creating an import cycle through the auth package.
type UserDirectoryAdapter struct {
	repo Repository
}

// NewUserDirectoryAdapter creates a new user directory adapter
func NewUserDirectoryAdapter(repo Repository) *UserDirectoryAdapter {
	return &UserDirectoryAdapter{
		repo: repo,
	}
}

// GetUserByID fetches user details by ID and returns email, firstName, lastName
func (uda *UserDirectoryAdapter) GetUserByID(ctx context.Context, userID uuid.UUID) (email, firstName, lastName string, err error) {
	user, err := uda.repo.GetUserByID(ctx, userID.String())
	if err != nil {
		return "", "", "", fmt.Errorf("failed to fetch user %s: %w", userID, err)
	}

	return user.Email, user.FirstName, user.LastName, nil
}
