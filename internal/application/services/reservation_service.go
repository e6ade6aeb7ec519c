package services

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/zatekoja/car-rental-platform/internal/domain/entities"
	"github.com/zatekoja/car-rental-platform/internal/domain/providers"
	"github.com/zatekoja/car-rental-platform/internal/domain/repositories"
	"github.com/zatekoja/car-rental-platform/internal/infrastructure/observability"
	apperrors "github.com/zatekoja/car-rental-platform/pkg/errors"
)

// ReservationService runs the reservation creation workflow: validate the
// user against the user service, check car availability against the car
// service, persist, then publish the event. The two remote answers are
// snapshots; the reservation store's uniqueness constraint on car_id is what
// actually decides between concurrent requests for the same car.
type ReservationService struct {
	repo  repositories.ReservationRepository
	users providers.UserDirectory
	cars  providers.CarCatalog
	bus   providers.EventBus
}

// NewReservationService creates a new reservation service
func NewReservationService(
	repo repositories.ReservationRepository,
	users providers.UserDirectory,
	cars providers.CarCatalog,
	bus providers.EventBus,
) *ReservationService {
	return &ReservationService{
		repo:  repo,
		users: users,
		cars:  cars,
		bus:   bus,
	}
}

// CreateReservation creates a reservation for the given user and car.
//
// Storage and publish are not atomic: if the publish fails the reservation
// stays persisted and the caller gets an external error. Callers retrying the
// whole operation after that will get a conflict, since the car is now taken.
func (s *ReservationService) CreateReservation(ctx context.Context, userID, carID string) (*entities.Reservation, error) {
	logger := observability.LoggerFromContext(ctx)

	if strings.TrimSpace(userID) == "" || strings.TrimSpace(carID) == "" {
		return nil, apperrors.NewValidationError("missing userId or carId")
	}

	user, err := s.users.GetUser(ctx, userID)
	if err != nil {
		if apperrors.IsType(err, apperrors.ErrorTypeNotFound) {
			return nil, apperrors.NewNotFoundError("user not found")
		}
		return nil, err
	}

	availability, err := s.cars.CheckAvailability(ctx, carID)
	if err != nil {
		return nil, err
	}
	if !availability.IsAvailable {
		return nil, apperrors.NewConflictError("Car is not available")
	}

	reservation := &entities.Reservation{
		ID:        uuid.New().String(),
		UserID:    user.ID,
		CarID:     carID,
		CreatedAt: time.Now().UTC(),
	}

	if err := s.repo.Create(ctx, reservation); err != nil {
		// Conflict here means the availability snapshot lost the race;
		// the store is the arbiter, not the earlier check.
		return nil, err
	}

	event := entities.NewReservationEvent(reservation)
	if err := s.bus.Publish(ctx, providers.TopicReservations, event); err != nil {
		logger.Error().
			Err(err).
			Str("reservation_id", reservation.ID).
			Msg("Reservation persisted but event publish failed")
		return nil, apperrors.NewExternalError("failed to publish reservation event", err)
	}

	logger.Info().
		Str("reservation_id", reservation.ID).
		Str("user_id", user.ID).
		Str("car_id", carID).
		Msg("Reservation created")

	return reservation, nil
}

// ListReservations returns all reservations
func (s *ReservationService) ListReservations(ctx context.Context) ([]*entities.Reservation, error) {
	return s.repo.List(ctx)
}
