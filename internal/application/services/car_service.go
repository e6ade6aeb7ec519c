package services

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/zatekoja/car-rental-platform/internal/domain/entities"
	"github.com/zatekoja/car-rental-platform/internal/domain/providers"
	"github.com/zatekoja/car-rental-platform/internal/domain/repositories"
	apperrors "github.com/zatekoja/car-rental-platform/pkg/errors"
)

// CarService handles the car catalog and availability checks. Availability
// reads the reservation store directly; the services share one database in
// the development setup.
type CarService struct {
	repo         repositories.CarRepository
	reservations repositories.ReservationRepository
}

// NewCarService creates a new car service
func NewCarService(repo repositories.CarRepository, reservations repositories.ReservationRepository) *CarService {
	return &CarService{
		repo:         repo,
		reservations: reservations,
	}
}

// CreateCar registers a new car
func (s *CarService) CreateCar(ctx context.Context, model string, pricePerDay float64) (*entities.Car, error) {
	if strings.TrimSpace(model) == "" {
		return nil, apperrors.NewValidationError("missing model")
	}
	if pricePerDay <= 0 {
		return nil, apperrors.NewValidationError("pricePerDay must be positive")
	}

	car := &entities.Car{
		ID:          uuid.New().String(),
		Model:       model,
		PricePerDay: pricePerDay,
		CreatedAt:   time.Now().UTC(),
	}

	if err := s.repo.Create(ctx, car); err != nil {
		return nil, err
	}
	return car, nil
}

// GetCar retrieves a car by id
func (s *CarService) GetCar(ctx context.Context, id string) (*entities.Car, error) {
	return s.repo.GetByID(ctx, id)
}

// ListCars returns all cars
func (s *CarService) ListCars(ctx context.Context) ([]*entities.Car, error) {
	return s.repo.List(ctx)
}

// CheckAvailability reports whether the car exists and no reservation
// references it. The answer holds no lock; two callers can both see an
// available car before either reserves it, which is why the reservation
// insert carries the uniqueness guard.
func (s *CarService) CheckAvailability(ctx context.Context, carID string) (*providers.Availability, error) {
	if _, err := s.repo.GetByID(ctx, carID); err != nil {
		return nil, err
	}

	reserved, err := s.reservations.ExistsForCar(ctx, carID)
	if err != nil {
		return nil, err
	}

	if reserved {
		return &providers.Availability{IsAvailable: false, Message: "Car is already reserved"}, nil
	}
	return &providers.Availability{IsAvailable: true, Message: "Car is available"}, nil
}
