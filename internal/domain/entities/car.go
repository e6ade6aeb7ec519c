package entities

import "time"

// Car is a rentable vehicle owned by the car service.
type Car struct {
	ID          string    `json:"id" db:"id"`
	Model       string    `json:"model" db:"model"`
	PricePerDay float64   `json:"pricePerDay" db:"price_per_day"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
}
