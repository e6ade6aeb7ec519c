package repositories

import (
	"context"

	"github.com/zatekoja/car-rental-platform/internal/domain/entities"
)

// CarRepository defines the interface for car data access
type CarRepository interface {
	// Create persists a new car
	Create(ctx context.Context, car *entities.Car) error

	// GetByID retrieves a car by ID
	GetByID(ctx context.Context, id string) (*entities.Car, error)

	// List retrieves all cars
	List(ctx context.Context) ([]*entities.Car, error)
}
