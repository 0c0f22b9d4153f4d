package domain

import "time"

// Favorite links a customer to an animal. At most one row exists per
// (customer, animal) pair; the storage layer enforces uniqueness so that
// concurrent duplicate adds cannot race.
type Favorite struct {
	CustomerID string    `json:"customer_id"`
	AnimalID   string    `json:"animal_id"`
	CreatedAt  time.Time `json:"created_at"`
}
