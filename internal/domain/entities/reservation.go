package entities

import "time"

// Reservation links a user to a car. The user must exist and the car must be
// unreserved at creation time; that guarantee is point-in-time only, there is
// no foreign-key enforcement afterwards. Reservations are never mutated.
type Reservation struct {
	ID        string    `json:"id" db:"id"`
	UserID    string    `json:"userId" db:"user_id"`
	CarID     string    `json:"carId" db:"car_id"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}
