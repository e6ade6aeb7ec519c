package repositories

import (
	"context"

	"github.com/zatekoja/car-rental-platform/internal/domain/entities"
)

// ReservationRepository defines the interface for reservation data access.
// The store enforces at most one reservation per car; Create returns a
// conflict error when another reservation already references the car.
type ReservationRepository interface {
	// Create persists a new reservation
	Create(ctx context.Context, reservation *entities.Reservation) error

	// List retrieves all reservations
	List(ctx context.Context) ([]*entities.Reservation, error)

	// ExistsForCar reports whether any reservation references the car.
	// Read by the car service when answering availability checks.
	ExistsForCar(ctx context.Context, carID string) (bool, error)
}
