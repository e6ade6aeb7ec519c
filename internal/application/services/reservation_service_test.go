package services_test

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/zatekoja/car-rental-platform/internal/application/services"
	"github.com/zatekoja/car-rental-platform/internal/domain/entities"
	"github.com/zatekoja/car-rental-platform/internal/domain/providers"
	apperrors "github.com/zatekoja/car-rental-platform/pkg/errors"
)

type mockReservationRepo struct {
	mock.Mock
}

func (m *mockReservationRepo) Create(ctx context.Context, reservation *entities.Reservation) error {
	args := m.Called(ctx, reservation)
	return args.Error(0)
}

func (m *mockReservationRepo) List(ctx context.Context) ([]*entities.Reservation, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Reservation), args.Error(1)
}

func (m *mockReservationRepo) ExistsForCar(ctx context.Context, carID string) (bool, error) {
	args := m.Called(ctx, carID)
	return args.Bool(0), args.Error(1)
}

type mockUserDirectory struct {
	mock.Mock
}

func (m *mockUserDirectory) GetUser(ctx context.Context, id string) (*entities.User, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.User), args.Error(1)
}

type mockCarCatalog struct {
	mock.Mock
}

func (m *mockCarCatalog) GetCar(ctx context.Context, id string) (*entities.Car, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Car), args.Error(1)
}

func (m *mockCarCatalog) CheckAvailability(ctx context.Context, carID string) (*providers.Availability, error) {
	args := m.Called(ctx, carID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*providers.Availability), args.Error(1)
}

type mockEventBus struct {
	mock.Mock
}

func (m *mockEventBus) Publish(ctx context.Context, topic string, event *entities.ReservationEvent) error {
	args := m.Called(ctx, topic, event)
	return args.Error(0)
}

func (m *mockEventBus) Close() error {
	args := m.Called()
	return args.Error(0)
}

func newTestService() (*services.ReservationService, *mockReservationRepo, *mockUserDirectory, *mockCarCatalog, *mockEventBus) {
	repo := new(mockReservationRepo)
	users := new(mockUserDirectory)
	cars := new(mockCarCatalog)
	bus := new(mockEventBus)
	return services.NewReservationService(repo, users, cars, bus), repo, users, cars, bus
}

func TestCreateReservation_Success(t *testing.T) {
	svc, repo, users, cars, bus := newTestService()

	users.On("GetUser", mock.Anything, "user-1").
		Return(&entities.User{ID: "user-1", Name: "Alice"}, nil)
	cars.On("CheckAvailability", mock.Anything, "car-1").
		Return(&providers.Availability{IsAvailable: true, Message: "Car is available"}, nil)
	repo.On("Create", mock.Anything, mock.AnythingOfType("*entities.Reservation")).Return(nil)
	bus.On("Publish", mock.Anything, providers.TopicReservations, mock.AnythingOfType("*entities.ReservationEvent")).Return(nil)

	reservation, err := svc.CreateReservation(context.Background(), "user-1", "car-1")

	require.NoError(t, err)
	require.NotNil(t, reservation)
	assert.NotEmpty(t, reservation.ID)
	assert.Equal(t, "user-1", reservation.UserID)
	assert.Equal(t, "car-1", reservation.CarID)
	assert.False(t, reservation.CreatedAt.IsZero())

	repo.AssertExpectations(t)
	bus.AssertExpectations(t)

	// The published event carries the persisted reservation's identity
	publishedEvent := bus.Calls[0].Arguments.Get(2).(*entities.ReservationEvent)
	assert.Equal(t, reservation.ID, publishedEvent.ID)
	assert.Equal(t, "car-1", publishedEvent.CarID)
}

func TestCreateReservation_MissingInput(t *testing.T) {
	svc, _, users, _, _ := newTestService()

	for _, tc := range []struct {
		name   string
		userID string
		carID  string
	}{
		{"empty user", "", "car-1"},
		{"empty car", "user-1", ""},
		{"whitespace user", "   ", "car-1"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			_, err := svc.CreateReservation(context.Background(), tc.userID, tc.carID)
			require.Error(t, err)
			assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeValidation))
		})
	}

	users.AssertNotCalled(t, "GetUser", mock.Anything, mock.Anything)
}

func TestCreateReservation_UserNotFound(t *testing.T) {
	svc, repo, users, cars, _ := newTestService()

	users.On("GetUser", mock.Anything, "ghost").
		Return(nil, apperrors.NewNotFoundError("User not found"))

	_, err := svc.CreateReservation(context.Background(), "ghost", "car-1")

	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeNotFound))
	assert.Contains(t, err.Error(), "user not found")

	// Validation stops at the first failed check
	cars.AssertNotCalled(t, "CheckAvailability", mock.Anything, mock.Anything)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreateReservation_UserServiceUnreachable(t *testing.T) {
	svc, repo, users, _, _ := newTestService()

	users.On("GetUser", mock.Anything, "user-1").
		Return(nil, apperrors.NewUnavailableError("user service unreachable", errors.New("connection refused")))

	_, err := svc.CreateReservation(context.Background(), "user-1", "car-1")

	require.Error(t, err)
	// Transport failure is not a rejection; it propagates as unavailable
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeUnavailable))
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestCreateReservation_CarNotAvailable(t *testing.T) {
	svc, repo, users, cars, bus := newTestService()

	users.On("GetUser", mock.Anything, "user-1").
		Return(&entities.User{ID: "user-1"}, nil)
	cars.On("CheckAvailability", mock.Anything, "car-1").
		Return(&providers.Availability{IsAvailable: false, Message: "Car is already reserved"}, nil)

	_, err := svc.CreateReservation(context.Background(), "user-1", "car-1")

	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeConflict))
	assert.Contains(t, err.Error(), "Car is not available")

	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
	bus.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything, mock.Anything)
}

func TestCreateReservation_StoreConflictWinsOverSnapshot(t *testing.T) {
	svc, repo, users, cars, bus := newTestService()

	// The availability snapshot said yes, but another request won the race
	users.On("GetUser", mock.Anything, "user-1").
		Return(&entities.User{ID: "user-1"}, nil)
	cars.On("CheckAvailability", mock.Anything, "car-1").
		Return(&providers.Availability{IsAvailable: true}, nil)
	repo.On("Create", mock.Anything, mock.Anything).
		Return(apperrors.NewConflictError("Car is not available"))

	_, err := svc.CreateReservation(context.Background(), "user-1", "car-1")

	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeConflict))
	bus.AssertNotCalled(t, "Publish", mock.Anything, mock.Anything, mock.Anything)
}

func TestCreateReservation_PublishFailureAfterPersist(t *testing.T) {
	svc, repo, users, cars, bus := newTestService()

	users.On("GetUser", mock.Anything, "user-1").
		Return(&entities.User{ID: "user-1"}, nil)
	cars.On("CheckAvailability", mock.Anything, "car-1").
		Return(&providers.Availability{IsAvailable: true}, nil)
	repo.On("Create", mock.Anything, mock.Anything).Return(nil)
	bus.On("Publish", mock.Anything, providers.TopicReservations, mock.Anything).
		Return(errors.New("broker down"))

	_, err := svc.CreateReservation(context.Background(), "user-1", "car-1")

	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeExternal))

	// The reservation was persisted before the publish failed
	repo.AssertCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestListReservations(t *testing.T) {
	svc, repo, _, _, _ := newTestService()

	expected := []*entities.Reservation{
		{ID: "res-1", UserID: "user-1", CarID: "car-1"},
	}
	repo.On("List", mock.Anything).Return(expected, nil)

	reservations, err := svc.ListReservations(context.Background())

	require.NoError(t, err)
	assert.Equal(t, expected, reservations)
}
