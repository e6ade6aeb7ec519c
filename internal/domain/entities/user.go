package entities

import "time"

// User is an account that may hold reservations. Users are created through
// the user service's own write path and are immutable afterwards.
type User struct {
	ID        string    `json:"id" db:"id"`
	Name      string    `json:"name" db:"name"`
	Email     string    `json:"email" db:"email"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}
