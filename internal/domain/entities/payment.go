package entities

import "time"

// Payment is the charge captured for a reservation. Keyed by the reservation
// id so that redelivered events cannot charge twice.
type Payment struct {
	ReservationID string    `json:"reservationId" db:"reservation_id"`
	UserID        string    `json:"userId" db:"user_id"`
	Amount        float64   `json:"amount" db:"amount"`
	CreatedAt     time.Time `json:"createdAt" db:"created_at"`
}
