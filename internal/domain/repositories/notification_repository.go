package repositories

import (
	"context"

	"github.com/zatekoja/car-rental-platform/internal/domain/entities"
)

// NotificationRepository defines the interface for notification data access
type NotificationRepository interface {
	// Create persists a notification; duplicate reservation ids are a no-op
	Create(ctx context.Context, notification *entities.Notification) error

	// List retrieves all notifications
	List(ctx context.Context) ([]*entities.Notification, error)
}

// EventFailureRepository stores dead-letter records for messages a consumer
// could not process
type EventFailureRepository interface {
	Record(ctx context.Context, failure *entities.EventFailure) error
}
