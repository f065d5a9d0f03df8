package repository

import (
	"context"

	"github.com/ryan-kp-miller/the-drink-almanac-api/internal/domain"
)

// UserRepository defines the interface for user persistence operations.
type UserRepository interface {
	// Create inserts a new user and fills in its generated id and timestamp.
	Create(ctx context.Context, user *domain.User) error

	// GetByID retrieves a user by their unique identifier.
	GetByID(ctx context.Context, id int64) (*domain.User, error)

	// GetByUsername retrieves a user by exact, case-sensitive username match.
	GetByUsername(ctx context.Context, username string) (*domain.User, error)

	// Delete removes a user; the user's favorites are removed with it.
	Delete(ctx context.Context, id int64) error
}

// FavoriteRepository defines the interface for favorite persistence operations.
type FavoriteRepository interface {
	// Create inserts a new favorite and fills in its generated id and timestamp.
	Create(ctx context.Context, favorite *domain.Favorite) error

	// GetByUserAndDrink retrieves the favorite for the given (user, drink) pair.
	GetByUserAndDrink(ctx context.Context, userID, drinkID int64) (*domain.Favorite, error)

	// ListByUser returns all favorites for the given user in insertion order.
	ListByUser(ctx context.Context, userID int64) ([]domain.Favorite, error)

	// Delete removes the favorite for the given (user, drink) pair.
	Delete(ctx context.Context, userID, drinkID int64) error
}
