package domain

import (
	"time"
)

// Favorite links a user to a drink they saved. DrinkID is an external
// identifier and is not validated against any catalog.
type Favorite struct {
	ID        int64     `json:"id"`
	UserID    int64     `json:"user_id"`
	DrinkID   int64     `json:"drink_id"`
	CreatedAt time.Time `json:"-"`
}
