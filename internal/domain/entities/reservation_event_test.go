package entities_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zatekoja/car-rental-platform/internal/domain/entities"
)

func TestReservationEvent_EncodeDecode(t *testing.T) {
	created := time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC)
	reservation := &entities.Reservation{
		ID:        "res-1",
		UserID:    "user-1",
		CarID:     "car-1",
		CreatedAt: created,
	}

	event := entities.NewReservationEvent(reservation)
	payload, err := event.Encode()
	require.NoError(t, err)

	decoded, err := entities.DecodeReservationEvent(payload)
	require.NoError(t, err)
	assert.Equal(t, event, decoded)
}

func TestReservationEvent_WireFormat(t *testing.T) {
	event := &entities.ReservationEvent{
		ID:        "res-1",
		UserID:    "user-1",
		CarID:     "car-1",
		CreatedAt: time.Date(2026, 3, 14, 9, 30, 0, 0, time.UTC),
	}

	payload, err := event.Encode()
	require.NoError(t, err)

	// Field names are the contract with every consumer group
	assert.JSONEq(t, `{
		"id": "res-1",
		"userId": "user-1",
		"carId": "car-1",
		"createdAt": "2026-03-14T09:30:00Z"
	}`, string(payload))
}

func TestDecodeReservationEvent_Rejects(t *testing.T) {
	for _, tc := range []struct {
		name    string
		payload string
	}{
		{"not json", "garbage"},
		{"empty object", "{}"},
		{"missing id", `{"userId":"user-1","carId":"car-1"}`},
	} {
		t.Run(tc.name, func(t *testing.T) {
			_, err := entities.DecodeReservationEvent([]byte(tc.payload))
			assert.Error(t, err)
		})
	}
}
