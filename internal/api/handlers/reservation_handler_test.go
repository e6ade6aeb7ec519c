package handlers_test

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/zatekoja/car-rental-platform/internal/api/handlers"
	"github.com/zatekoja/car-rental-platform/internal/domain/entities"
	apperrors "github.com/zatekoja/car-rental-platform/pkg/errors"
)

type mockReservationService struct {
	mock.Mock
}

func (m *mockReservationService) CreateReservation(ctx context.Context, userID, carID string) (*entities.Reservation, error) {
	args := m.Called(ctx, userID, carID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*entities.Reservation), args.Error(1)
}

func (m *mockReservationService) ListReservations(ctx context.Context) ([]*entities.Reservation, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]*entities.Reservation), args.Error(1)
}

func postReservation(t *testing.T, handler *handlers.ReservationHandler, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/reservations", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	handler.CreateReservation(w, req)
	return w
}

func errorMessage(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	var payload map[string]string
	require.NoError(t, json.NewDecoder(w.Body).Decode(&payload))
	return payload["error"]
}

func TestCreateReservationHandler_Created(t *testing.T) {
	svc := new(mockReservationService)
	handler := handlers.NewReservationHandler(svc)

	svc.On("CreateReservation", mock.Anything, "user-1", "car-1").
		Return(&entities.Reservation{ID: "res-1", UserID: "user-1", CarID: "car-1"}, nil)

	w := postReservation(t, handler, `{"userId":"user-1","carId":"car-1"}`)

	require.Equal(t, http.StatusCreated, w.Code)

	var reservation entities.Reservation
	require.NoError(t, json.NewDecoder(w.Body).Decode(&reservation))
	assert.Equal(t, "res-1", reservation.ID)
}

func TestCreateReservationHandler_RejectionsAre400(t *testing.T) {
	for _, tc := range []struct {
		name    string
		err     error
		message string
	}{
		{"validation", apperrors.NewValidationError("missing userId or carId"), "missing userId or carId"},
		{"user not found", apperrors.NewNotFoundError("user not found"), "user not found"},
		{"car taken", apperrors.NewConflictError("Car is not available"), "Car is not available"},
	} {
		t.Run(tc.name, func(t *testing.T) {
			svc := new(mockReservationService)
			handler := handlers.NewReservationHandler(svc)
			svc.On("CreateReservation", mock.Anything, mock.Anything, mock.Anything).
				Return(nil, tc.err)

			w := postReservation(t, handler, `{"userId":"user-1","carId":"car-1"}`)

			require.Equal(t, http.StatusBadRequest, w.Code)
			assert.Equal(t, tc.message, errorMessage(t, w))
		})
	}
}

func TestCreateReservationHandler_FailuresAre500(t *testing.T) {
	for _, tc := range []struct {
		name string
		err  error
	}{
		{"validator unreachable", apperrors.NewUnavailableError("car service unreachable", errors.New("dial tcp"))},
		{"publish failed", apperrors.NewExternalError("failed to publish reservation event", errors.New("broker down"))},
		{"plain error", errors.New("boom")},
	} {
		t.Run(tc.name, func(t *testing.T) {
			svc := new(mockReservationService)
			handler := handlers.NewReservationHandler(svc)
			svc.On("CreateReservation", mock.Anything, mock.Anything, mock.Anything).
				Return(nil, tc.err)

			w := postReservation(t, handler, `{"userId":"user-1","carId":"car-1"}`)

			require.Equal(t, http.StatusInternalServerError, w.Code)
		})
	}
}

func TestCreateReservationHandler_ErrorBodyHidesChain(t *testing.T) {
	svc := new(mockReservationService)
	handler := handlers.NewReservationHandler(svc)
	svc.On("CreateReservation", mock.Anything, mock.Anything, mock.Anything).
		Return(nil, apperrors.NewUnavailableError("car service unreachable", errors.New("dial tcp 10.0.0.5:5005")))

	w := postReservation(t, handler, `{"userId":"user-1","carId":"car-1"}`)

	// Internal detail like addresses must not leak into the response
	msg := errorMessage(t, w)
	assert.Equal(t, "car service unreachable", msg)
	assert.NotContains(t, msg, "dial tcp")
}

func TestCreateReservationHandler_MalformedBody(t *testing.T) {
	svc := new(mockReservationService)
	handler := handlers.NewReservationHandler(svc)

	w := postReservation(t, handler, `{"userId":`)

	require.Equal(t, http.StatusBadRequest, w.Code)
	svc.AssertNotCalled(t, "CreateReservation", mock.Anything, mock.Anything, mock.Anything)
}

func TestListReservationsHandler_EmptyListNotNull(t *testing.T) {
	svc := new(mockReservationService)
	handler := handlers.NewReservationHandler(svc)
	svc.On("ListReservations", mock.Anything).Return([]*entities.Reservation(nil), nil)

	req := httptest.NewRequest(http.MethodGet, "/reservations", nil)
	w := httptest.NewRecorder()
	handler.ListReservations(w, req)

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `[]`, w.Body.String())
}
