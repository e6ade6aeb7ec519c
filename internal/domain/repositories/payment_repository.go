package repositories

import (
	"context"

	"github.com/zatekoja/car-rental-platform/internal/domain/entities"
)

// PaymentRepository defines the interface for payment data access
type PaymentRepository interface {
	// Create persists a payment. Writes are keyed by reservation id and a
	// duplicate key is a no-op, so redelivered events cannot double-charge.
	Create(ctx context.Context, payment *entities.Payment) error

	// List retrieves all payments
	List(ctx context.Context) ([]*entities.Payment, error)
}
