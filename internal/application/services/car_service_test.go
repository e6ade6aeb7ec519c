package services_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/zatekoja/car-rental-platform/internal/application/services"
	"github.com/zatekoja/car-rental-platform/internal/domain/entities"
	apperrors "github.com/zatekoja/car-rental-platform/pkg/errors"
)

type mockCarRepo struct {
	mock.Mock
}

func (m *mockCarRepo) Create(ctx context.Context, car *entities.Car) error {
	args := m.Called(ctx, car)
	return args.Error(0)
}

func (m *mockCarRepo) GetByID(ctx context.Context, id string) (*entities.Car, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Car), args.Error(1)
}

func (m *mockCarRepo) List(ctx context.Context) ([]*entities.Car, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Car), args.Error(1)
}

func TestCheckAvailability_FreeCar(t *testing.T) {
	cars := new(mockCarRepo)
	reservations := new(mockReservationRepo)
	svc := services.NewCarService(cars, reservations)

	cars.On("GetByID", mock.Anything, "car-1").
		Return(&entities.Car{ID: "car-1", Model: "Civic"}, nil)
	reservations.On("ExistsForCar", mock.Anything, "car-1").Return(false, nil)

	availability, err := svc.CheckAvailability(context.Background(), "car-1")

	require.NoError(t, err)
	assert.True(t, availability.IsAvailable)
	assert.Equal(t, "Car is available", availability.Message)
}

func TestCheckAvailability_ReservedCar(t *testing.T) {
	cars := new(mockCarRepo)
	reservations := new(mockReservationRepo)
	svc := services.NewCarService(cars, reservations)

	cars.On("GetByID", mock.Anything, "car-1").
		Return(&entities.Car{ID: "car-1"}, nil)
	reservations.On("ExistsForCar", mock.Anything, "car-1").Return(true, nil)

	availability, err := svc.CheckAvailability(context.Background(), "car-1")

	require.NoError(t, err)
	assert.False(t, availability.IsAvailable)
	assert.Equal(t, "Car is already reserved", availability.Message)
}

func TestCheckAvailability_UnknownCar(t *testing.T) {
	cars := new(mockCarRepo)
	reservations := new(mockReservationRepo)
	svc := services.NewCarService(cars, reservations)

	cars.On("GetByID", mock.Anything, "ghost").
		Return(nil, apperrors.NewNotFoundError("Car not found"))

	_, err := svc.CheckAvailability(context.Background(), "ghost")

	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeNotFound))
	reservations.AssertNotCalled(t, "ExistsForCar", mock.Anything, mock.Anything)
}

func TestCreateCar_Validation(t *testing.T) {
	svc := services.NewCarService(new(mockCarRepo), new(mockReservationRepo))

	_, err := svc.CreateCar(context.Background(), "", 50)
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeValidation))

	_, err = svc.CreateCar(context.Background(), "Civic", -1)
	require.Error(t, err)
	assert.True(t, apperrors.IsType(err, apperrors.ErrorTypeValidation))
}
