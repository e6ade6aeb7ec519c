package providers

import (
	"context"

	"github.com/zatekoja/car-rental-platform/internal/domain/entities"
)

// Availability is the car service's answer to an availability check.
type Availability struct {
	IsAvailable bool   `json:"isAvailable"`
	Message     string `json:"message"`
}

// UserDirectory is the remote user validator. Implementations distinguish
// application-level absence (not-found error) from transport failure
// (unavailable error) so callers can tell "user doesn't exist" from
// "user service unreachable".
type UserDirectory interface {
	GetUser(ctx context.Context, id string) (*entities.User, error)
}

// CarCatalog is the remote car validator.
type CarCatalog interface {
	GetCar(ctx context.Context, id string) (*entities.Car, error)

	// CheckAvailability reports whether the car exists and is unreserved.
	// The answer is a snapshot with no lock held; the reservation store's
	// uniqueness constraint is the final arbiter.
	CheckAvailability(ctx context.Context, carID string) (*Availability, error)
}
