package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/ryan-kp-miller/the-drink-almanac-api/internal/domain"
	"github.com/ryan-kp-miller/the-drink-almanac-api/internal/repository"
	apperrors "github.com/ryan-kp-miller/the-drink-almanac-api/pkg/errors"
)

// favoriteEventProducer is the subset of the event producer used by FavoriteService.
type favoriteEventProducer interface {
	PublishFavoriteAdded(ctx context.Context, favorite *domain.Favorite) error
	PublishFavoriteRemoved(ctx context.Context, userID, drinkID int64) error
}

// FavoriteService implements the business logic for favorite operations. All
// operations are scoped to the authenticated user's identity.
type FavoriteService struct {
	favoriteRepo repository.FavoriteRepository
	userRepo     repository.UserRepository
	producer     favoriteEventProducer
	logger       *slog.Logger
}

// NewFavoriteService creates a new favorite service.
func NewFavoriteService(
	favoriteRepo repository.FavoriteRepository,
	userRepo repository.UserRepository,
	producer favoriteEventProducer,
	logger *slog.Logger,
) *FavoriteService {
	return &FavoriteService{
		favoriteRepo: favoriteRepo,
		userRepo:     userRepo,
		producer:     producer,
		logger:       logger,
	}
}

// Add favorites a drink for the user. The user must still exist and must not
// have favorited the drink already.
func (s *FavoriteService) Add(ctx context.Context, userID, drinkID int64) (*domain.Favorite, error) {
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NotFound(fmt.Sprintf("user with id %d not found", userID))
		}
		return nil, fmt.Errorf("get user by id: %w", err)
	}

	existing, err := s.favoriteRepo.GetByUserAndDrink(ctx, userID, drinkID)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("check existing favorite: %w", err)
	}
	if existing != nil {
		return nil, apperrors.AlreadyExists("user has already favorited this drink")
	}

	favorite := &domain.Favorite{
		UserID:  userID,
		DrinkID: drinkID,
	}

	if err := s.favoriteRepo.Create(ctx, favorite); err != nil {
		return nil, fmt.Errorf("create favorite: %w", err)
	}

	// Publish event (non-blocking on failure).
	if err := s.producer.PublishFavoriteAdded(ctx, favorite); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish favorite.added event",
			slog.Int64("user_id", userID),
			slog.Int64("drink_id", drinkID),
			slog.String("error", err.Error()),
		)
	}

	s.logger.InfoContext(ctx, "favorite added",
		slog.Int64("user_id", userID),
		slog.Int64("drink_id", drinkID),
	)

	return favorite, nil
}

// Get returns the user's favorite for the given drink if present.
func (s *FavoriteService) Get(ctx context.Context, userID, drinkID int64) (*domain.Favorite, error) {
	favorite, err := s.favoriteRepo.GetByUserAndDrink(ctx, userID, drinkID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NotFound(fmt.Sprintf("user has not favorited drink %d", drinkID))
		}
		return nil, fmt.Errorf("get favorite: %w", err)
	}

	return favorite, nil
}

// Remove deletes the user's favorite for the given drink.
func (s *FavoriteService) Remove(ctx context.Context, userID, drinkID int64) error {
	if err := s.favoriteRepo.Delete(ctx, userID, drinkID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return apperrors.NotFound(fmt.Sprintf("user has not favorited drink %d", drinkID))
		}
		return fmt.Errorf("delete favorite: %w", err)
	}

	// Publish event (non-blocking on failure).
	if err := s.producer.PublishFavoriteRemoved(ctx, userID, drinkID); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish favorite.removed event",
			slog.Int64("user_id", userID),
			slog.Int64("drink_id", drinkID),
			slog.String("error", err.Error()),
		)
	}

	s.logger.InfoContext(ctx, "favorite removed",
		slog.Int64("user_id", userID),
		slog.Int64("drink_id", drinkID),
	)

	return nil
}
