package database

import (
	"context"

	"github.com/jmoiron/sqlx"
	"github.com/zatekoja/car-rental-platform/internal/domain/entities"
	"github.com/zatekoja/car-rental-platform/internal/domain/repositories"
	"github.com/zatekoja/car-rental-platform/internal/infrastructure/clients/postgres"
	apperrors "github.com/zatekoja/car-rental-platform/pkg/errors"
)

// EventFailureAdapter implements the EventFailureRepository interface.
// It is the dead-letter store: consumers absorb processing failures, and this
// table is where the absorbed message ends up instead of being lost.
type EventFailureAdapter struct {
	db *sqlx.DB
}

// NewEventFailureAdapter creates a new event failure adapter
func NewEventFailureAdapter(client *postgres.Client) repositories.EventFailureRepository {
	return &EventFailureAdapter{
		db: sqlx.NewDb(client.DB(), "postgres"),
	}
}

// Record persists a dead-letter row
func (a *EventFailureAdapter) Record(ctx context.Context, failure *entities.EventFailure) error {
	const query = `
		INSERT INTO event_failures (id, topic, consumer, payload, reason, occurred_at)
		VALUES (:id, :topic, :consumer, :payload, :reason, :occurred_at)`

	if _, err := a.db.NamedExecContext(ctx, query, failure); err != nil {
		return apperrors.NewInternalError("failed to record event failure", err)
	}
	return nil
}
