package services

import (
	"context"
	"fmt"
	"time"

	"github.com/zatekoja/car-rental-platform/internal/domain/entities"
	"github.com/zatekoja/car-rental-platform/internal/domain/repositories"
	"github.com/zatekoja/car-rental-platform/internal/infrastructure/observability"
)

// NotificationService records a confirmation message for each reservation
// event. Delivery is simulated; the stored row is the record of it.
type NotificationService struct {
	repo repositories.NotificationRepository
}

// NewNotificationService creates a new notification service
func NewNotificationService(repo repositories.NotificationRepository) *NotificationService {
	return &NotificationService{repo: repo}
}

// Name identifies this consumer in dead-letter records
func (s *NotificationService) Name() string {
	return "notification"
}

// Handle records the confirmation for one reservation event
func (s *NotificationService) Handle(ctx context.Context, event *entities.ReservationEvent) error {
	notification := &entities.Notification{
		ReservationID: event.ID,
		Message: fmt.Sprintf(
			"Reservation %s confirmed for user %s, car %s",
			event.ID, event.UserID, event.CarID,
		),
		CreatedAt: time.Now().UTC(),
	}

	if err := s.repo.Create(ctx, notification); err != nil {
		return err
	}

	observability.LoggerFromContext(ctx).Info().
		Str("reservation_id", event.ID).
		Str("user_id", event.UserID).
		Str("car_id", event.CarID).
		Msg("Notification sent")
	return nil
}

// ListNotifications returns all notifications
func (s *NotificationService) ListNotifications(ctx context.Context) ([]*entities.Notification, error) {
	return s.repo.List(ctx)
}
