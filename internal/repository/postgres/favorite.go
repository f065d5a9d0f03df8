package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/ryan-kp-miller/the-drink-almanac-api/internal/domain"
	apperrors "github.com/ryan-kp-miller/the-drink-almanac-api/pkg/errors"
)

// FavoriteRepository implements repository.FavoriteRepository using PostgreSQL.
type FavoriteRepository struct {
	db DB
}

// NewFavoriteRepository creates a new PostgreSQL-backed favorite repository.
func NewFavoriteRepository(db DB) *FavoriteRepository {
	return &FavoriteRepository{db: db}
}

// Create inserts a new favorite and fills in the generated id and creation
// timestamp.
func (r *FavoriteRepository) Create(ctx context.Context, f *domain.Favorite) error {
	query := `
		INSERT INTO favorites (user_id, drink_id)
		VALUES ($1, $2)
		RETURNING id, created_at`

	err := r.db.QueryRow(ctx, query, f.UserID, f.DrinkID).Scan(&f.ID, &f.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return apperrors.AlreadyExists("user has already favorited this drink")
		}
		return fmt.Errorf("insert favorite: %w", err)
	}

	return nil
}

// GetByUserAndDrink retrieves a favorite by its user and drink pair.
func (r *FavoriteRepository) GetByUserAndDrink(ctx context.Context, userID, drinkID int64) (*domain.Favorite, error) {
	query := `
		SELECT id, user_id, drink_id, created_at
		FROM favorites
		WHERE user_id = $1 AND drink_id = $2`

	var f domain.Favorite

	err := r.db.QueryRow(ctx, query, userID, drinkID).Scan(
		&f.ID,
		&f.UserID,
		&f.DrinkID,
		&f.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("scan favorite: %w", err)
	}

	return &f, nil
}

// ListByUser returns all favorites for the user in insertion order.
func (r *FavoriteRepository) ListByUser(ctx context.Context, userID int64) ([]domain.Favorite, error) {
	query := `
		SELECT id, user_id, drink_id, created_at
		FROM favorites
		WHERE user_id = $1
		ORDER BY id`

	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("list favorites: %w", err)
	}
	defer rows.Close()

	var favorites []domain.Favorite
	for rows.Next() {
		var f domain.Favorite
		if err := rows.Scan(&f.ID, &f.UserID, &f.DrinkID, &f.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan favorite: %w", err)
		}
		favorites = append(favorites, f)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate favorite rows: %w", err)
	}

	if favorites == nil {
		favorites = []domain.Favorite{}
	}

	return favorites, nil
}

// Delete removes a favorite by its user and drink pair.
func (r *FavoriteRepository) Delete(ctx context.Context, userID, drinkID int64) error {
	query := `DELETE FROM favorites WHERE user_id = $1 AND drink_id = $2`

	ct, err := r.db.Exec(ctx, query, userID, drinkID)
	if err != nil {
		return fmt.Errorf("delete favorite: %w", err)
	}

	if ct.RowsAffected() == 0 {
		return apperrors.NotFound("favorite not found")
	}

	return nil
}
