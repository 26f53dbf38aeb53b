package repositories

import (
	"context"

	"github.com/schoolops/school_finance_app/internal/core/domain"
)

// UserRepository is the persistence port for portal identities.
type UserRepository interface {
	SaveUser(ctx context.Context, user domain.User) error
	FindUserByID(ctx context.Context, userID string) (*domain.User, error)
	FindUserByUsername(ctx context.Context, username string) (*domain.User, error)
}
