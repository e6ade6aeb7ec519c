package repositories

import (
	"context"

	"github.com/zatekoja/car-rental-platform/internal/domain/entities"
)

// UserRepository defines the interface for user data access
type UserRepository interface {
	// Create persists a new user
	Create(ctx context.Context, user *entities.User) error

	// GetByID retrieves a user by ID
	GetByID(ctx context.Context, id string) (*entities.User, error)

	// List retrieves all users
	List(ctx context.Context) ([]*entities.User, error)
}
