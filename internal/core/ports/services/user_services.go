package services

import (
	"context"

	"github.com/schoolops/school_finance_app/internal/core/domain"
)

// UserService manages portal identities and credential checks.
type UserService interface {
	// CreateUser persists a new identity with an already-hashed password.
	CreateUser(ctx context.Context, user domain.User) error
	GetUserByID(ctx context.Context, userID string) (*domain.User, error)
	// Authenticate verifies username/password and returns the user on success.
	Authenticate(ctx context.Context, username, password string) (*domain.User, error)
}
