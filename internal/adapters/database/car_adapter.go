package database

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/doug-martin/goqu/v9"
	_ "github.com/doug-martin/goqu/v9/dialect/postgres"
	"github.com/zatekoja/car-rental-platform/internal/domain/entities"
	"github.com/zatekoja/car-rental-platform/internal/domain/repositories"
	"github.com/zatekoja/car-rental-platform/internal/infrastructure/clients/postgres"
	apperrors "github.com/zatekoja/car-rental-platform/pkg/errors"
)

// CarAdapter implements the CarRepository interface
type CarAdapter struct {
	client *postgres.Client
	db     *goqu.Database
}

// NewCarAdapter creates a new car adapter
func NewCarAdapter(client *postgres.Client) repositories.CarRepository {
	return &CarAdapter{
		client: client,
		db:     goqu.New("postgres", client.DB()),
	}
}

// Create persists a new car
func (a *CarAdapter) Create(ctx context.Context, car *entities.Car) error {
	record := goqu.Record{
		"id":            car.ID,
		"model":         car.Model,
		"price_per_day": car.PricePerDay,
		"created_at":    car.CreatedAt,
	}

	query, args, err := a.db.Insert("cars").Rows(record).ToSQL()
	if err != nil {
		return apperrors.NewInternalError("failed to build insert query", err)
	}

	if _, err := a.client.DB().ExecContext(ctx, query, args...); err != nil {
		return apperrors.NewInternalError("failed to create car", err)
	}

	return nil
}

// GetByID retrieves a car by ID
func (a *CarAdapter) GetByID(ctx context.Context, id string) (*entities.Car, error) {
	query, args, err := a.db.Select("id", "model", "price_per_day", "created_at").
		From("cars").
		Where(goqu.Ex{"id": id}).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build query", err)
	}

	car := &entities.Car{}
	err = a.client.DB().QueryRowContext(ctx, query, args...).Scan(
		&car.ID,
		&car.Model,
		&car.PricePerDay,
		&car.CreatedAt,
	)
	if err == sql.ErrNoRows {
		return nil, apperrors.NewNotFoundError(fmt.Sprintf("car with id %s not found", id))
	}
	if err != nil {
		return nil, apperrors.NewInternalError("failed to get car", err)
	}

	return car, nil
}

// List retrieves all cars
func (a *CarAdapter) List(ctx context.Context) ([]*entities.Car, error) {
	query, args, err := a.db.Select("id", "model", "price_per_day", "created_at").
		From("cars").
		Order(goqu.I("created_at").Asc()).
		ToSQL()
	if err != nil {
		return nil, apperrors.NewInternalError("failed to build list query", err)
	}

	rows, err := a.client.DB().QueryContext(ctx, query, args...)
	if err != nil {
		return nil, apperrors.NewInternalError("failed to list cars", err)
	}
	defer rows.Close()

	var cars []*entities.Car
	for rows.Next() {
		car := &entities.Car{}
		if err := rows.Scan(&car.ID, &car.Model, &car.PricePerDay, &car.CreatedAt); err != nil {
			return nil, apperrors.NewInternalError("failed to scan car", err)
		}
		cars = append(cars, car)
	}

	return cars, nil
}
