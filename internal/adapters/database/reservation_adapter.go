package database

import (
	"context"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"
	"github.com/lib/pq"
	"github.com/zatekoja/car-rental-platform/internal/domain/entities"
	"github.com/zatekoja/car-rental-platform/internal/domain/repositories"
	"github.com/zatekoja/car-rental-platform/internal/infrastructure/clients/postgres"
	apperrors "github.com/zatekoja/car-rental-platform/pkg/errors"
)

const uniqueViolation = "23505"

// ReservationAdapter implements the ReservationRepository interface.
// The reservations table carries a unique index on car_id; the insert is the
// single atomic point that decides between two concurrent creations for the
// same car, so no lock is needed upstream.
type ReservationAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewReservationAdapter creates a new reservation adapter
func NewReservationAdapter(client *postgres.Client) repositories.ReservationRepository {
	return &ReservationAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// Create persists a new reservation. A unique violation on car_id means
// another reservation won the race; that surfaces as a conflict error.
func (a *ReservationAdapter) Create(ctx context.Context, reservation *entities.Reservation) error {
	record := goqu.Record{
		"id":         reservation.ID,
		"user_id":    reservation.UserID,
		"car_id":     reservation.CarID,
		"created_at": reservation.CreatedAt,
	}

	query, args, err := a.db.Insert("reservations").Rows(record).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build insert query", err)
	}

	if _, err := a.client.DB().ExecContext(ctx, query, args...); err != nil {
		if pqErr, ok := err.(*pq.Error); ok && string(pqErr.Code) == uniqueViolation {
			return apperrors.NewConflictError("Car is not available")
		}
		return apperrors.NewInternalError("failed to create reservation", err)
	}

	return nil
}

// List retrieves all reservations
func (a *ReservationAdapter) List(ctx context.Context) ([]*entities.Reservation, error) {
	query, args, err := a.db.Select("id", "user_id", "car_id", "created_at").
		From("reservations").
		Order(goqu.I("created_at").Asc()).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build list query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list reservations", err)
	}
	defer rows.Close()

	var reservations []*entities.Reservation
	for rows.Next() {
		reservation := &entities.Reservation{}
		if err := rows.Scan(
			&reservation.ID,
			&reservation.UserID,
			&reservation.CarID,
			&reservation.CreatedAt,
		); err != nil {
			return nil, apperrors.NewInternalError("failed to scan reservation", err)
		}
		reservations = append(reservations, reservation)
	}

	return reservations, nil
}

// ExistsForCar reports whether any reservation references the car
func (a *ReservationAdapter) ExistsForCar(ctx context.Context, carID string) (bool, error) {
	query, args, err := a.db.Select(goqu.COUNT("id")).
		From("reservations").
		Where(goqu.Ex{"car_id": carID}).
		ToSQL()
	if err != nil {
		return false, apperrors.NewInternalError("failed to build count query", err)
	}

	var count int
	if err := a.client.DB().QueryRowContext(ctx, query, args...).Scan(&count); err != nil {
		return false, apperrors.NewInternalError("failed to count reservations", err)
	}

	return count > 0, nil
}
