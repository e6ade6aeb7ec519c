package entities

import (
	"encoding/json"
	"fmt"
	"time"
)

// ReservationEvent is the immutable fact broadcast after a reservation is
// persisted. It is the wire envelope on the reservations topic; once published,
// ownership transfers to the bus and the producer does not track consumers.
type ReservationEvent struct {
	ID        string    `json:"id"`
	UserID    string    `json:"userId"`
	CarID     string    `json:"carId"`
	CreatedAt time.Time `json:"createdAt"`
}

// NewReservationEvent builds the event envelope from a persisted reservation.
func NewReservationEvent(r *Reservation) *ReservationEvent {
	return &ReservationEvent{
		ID:        r.ID,
		UserID:    r.UserID,
		CarID:     r.CarID,
		CreatedAt: r.CreatedAt,
	}
}

// Encode serializes the event for the bus.
func (e *ReservationEvent) Encode() ([]byte, error) {
	data, err := json.Marshal(e)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal reservation event: %w", err)
	}
	return data, nil
}

// DecodeReservationEvent parses an event envelope received from the bus.
func DecodeReservationEvent(data []byte) (*ReservationEvent, error) {
	var event ReservationEvent
	if err := json.Unmarshal(data, &event); err != nil {
		return nil, fmt.Errorf("failed to unmarshal reservation event: %w", err)
	}
	if event.ID == "" {
		return nil, fmt.Errorf("reservation event missing id")
	}
	return &event, nil
}
