package database

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/zatekoja/car-rental-platform/internal/domain/entities"
	"github.com/zatekoja/car-rental-platform/internal/domain/repositories"
	"github.com/zatekoja/car-rental-platform/internal/infrastructure/clients/postgres"
	apperrors "github.com/zatekoja/car-rental-platform/pkg/errors"
)

// NotificationAdapter implements the NotificationRepository interface
type NotificationAdapter struct {
	db *sqlx.DB
}

// NewNotificationAdapter creates a new notification adapter
func NewNotificationAdapter(client *postgres.Client) repositories.NotificationRepository {
	return &NotificationAdapter{
		db: sqlx.NewDb(client.DB(), "postgres"),
	}
}

// Create persists a notification; a duplicate reservation id is a no-op
func (a *NotificationAdapter) Create(ctx context.Context, notification *entities.Notification) error {
	const query = `
		INSERT INTO notifications (reservation_id, message, created_at)
		VALUES (:reservation_id, :message, :created_at)
		ON CONFLICT (reservation_id) DO NOTHING`

	if _, err := a.db.NamedExecContext(ctx, query, notification); err != nil {
		return apperrors.NewInternalError("failed to create notification", err)
	}
	return nil
}

// List retrieves all notifications
func (a *NotificationAdapter) List(ctx context.Context) ([]*entities.Notification, error) {
	var notifications []*entities.Notification
	const query = `
		SELECT reservation_id, message, created_at
		FROM notifications
		ORDER BY created_at ASC`

	if err := a.db.SelectContext(ctx, &notifications, query); err != nil {
		return nil, apperrors.NewInternalError("failed to list notifications", err)
	}
	return notifications, nil
}
