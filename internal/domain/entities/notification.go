package entities

import "time"

// Notification is the customer-facing message recorded for a reservation.
// Keyed by the reservation id so redelivery is a no-op.
type Notification struct {
	ReservationID string    `json:"reservationId" db:"reservation_id"`
	Message       string    `json:"message" db:"message"`
	CreatedAt     time.Time `json:"createdAt" db:"created_at"`
}

// EventFailure is a dead-letter record for a message a consumer could not
// process. Failures are absorbed, never redelivered; the row is the only trace.
type EventFailure struct {
	ID         string    `json:"id" db:"id"`
	Topic      string    `json:"topic" db:"topic"`
	Consumer   string    `json:"consumer" db:"consumer"`
	Payload    []byte    `json:"payload" db:"payload"`
	Reason     string    `json:"reason" db:"reason"`
	OccurredAt time.Time `json:"occurredAt" db:"occurred_at"`
}
