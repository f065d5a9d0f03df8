package service

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/ryan-kp-miller/the-drink-almanac-api/internal/auth"
	"github.com/ryan-kp-miller/the-drink-almanac-api/internal/domain"
	"github.com/ryan-kp-miller/the-drink-almanac-api/internal/repository"
	apperrors "github.com/ryan-kp-miller/the-drink-almanac-api/pkg/errors"
)

// userEventProducer is the subset of the event producer used by UserService.
type userEventProducer interface {
	PublishUserRegistered(ctx context.Context, user *domain.User) error
	PublishUserDeleted(ctx context.Context, user *domain.User) error
}

// UserService implements the business logic for user and auth operations.
type UserService struct {
	userRepo     repository.UserRepository
	favoriteRepo repository.FavoriteRepository
	jwtManager   *auth.JWTManager
	producer     userEventProducer
	logger       *slog.Logger
}

// NewUserService creates a new user service.
func NewUserService(
	userRepo repository.UserRepository,
	favoriteRepo repository.FavoriteRepository,
	jwtManager *auth.JWTManager,
	producer userEventProducer,
	logger *slog.Logger,
) *UserService {
	return &UserService{
		userRepo:     userRepo,
		favoriteRepo: favoriteRepo,
		jwtManager:   jwtManager,
		producer:     producer,
		logger:       logger,
	}
}

// Register creates a new user account. The username must not already be
// taken; the check is case sensitive.
func (s *UserService) Register(ctx context.Context, username, password string) (*domain.User, error) {
	existing, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		return nil, fmt.Errorf("check existing user: %w", err)
	}
	if existing != nil {
		return nil, apperrors.AlreadyExists(fmt.Sprintf("a user with the username %q already exists", username))
	}

	user := &domain.User{
		Username: username,
		Password: password,
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	// Publish registration event (non-blocking on failure).
	if err := s.producer.PublishUserRegistered(ctx, user); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish user.registered event",
			slog.Int64("user_id", user.ID),
			slog.String("error", err.Error()),
		)
	}

	s.logger.InfoContext(ctx, "user registered",
		slog.Int64("user_id", user.ID),
		slog.String("username", user.Username),
	)

	return user, nil
}

// Login authenticates a user with username and password, returning a fresh
// access token and a refresh token. Passwords are compared as stored.
func (s *UserService) Login(ctx context.Context, username, password string) (*domain.TokenPair, error) {
	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, apperrors.NotFound(fmt.Sprintf("user with username %s not found", username))
		}
		return nil, fmt.Errorf("get user by username: %w", err)
	}

	if user.Password != password {
		return nil, apperrors.InvalidInput("password was incorrect")
	}

	tokens, err := s.generateTokenPair(user.ID)
	if err != nil {
		return nil, fmt.Errorf("generate tokens: %w", err)
	}

	s.logger.InfoContext(ctx, "user logged in",
		slog.Int64("user_id", user.ID),
		slog.String("username", user.Username),
	)

	return tokens, nil
}

// Profile returns the user for the given identity along with the drink ids
// of their favorites. A token referencing a deleted account yields not found.
func (s *UserService) Profile(ctx context.Context, userID int64) (*domain.User, []int64, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, nil, apperrors.NotFound(fmt.Sprintf("user with id %d not found", userID))
		}
		return nil, nil, fmt.Errorf("get user by id: %w", err)
	}

	favorites, err := s.favoriteRepo.ListByUser(ctx, userID)
	if err != nil {
		return nil, nil, fmt.Errorf("list favorites: %w", err)
	}

	drinkIDs := make([]int64, 0, len(favorites))
	for _, f := range favorites {
		drinkIDs = append(drinkIDs, f.DrinkID)
	}

	return user, drinkIDs, nil
}

// DeleteAccount removes a user identified by username and password. The
// user's favorites are removed with it.
func (s *UserService) DeleteAccount(ctx context.Context, username, password string) error {
	user, err := s.userRepo.GetByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return apperrors.NotFound(fmt.Sprintf("user with username %s not found", username))
		}
		return fmt.Errorf("get user by username: %w", err)
	}

	if user.Password != password {
		return apperrors.InvalidInput("password was incorrect")
	}

	if err := s.userRepo.Delete(ctx, user.ID); err != nil {
		return fmt.Errorf("delete user: %w", err)
	}

	// Publish deletion event (non-blocking on failure).
	if err := s.producer.PublishUserDeleted(ctx, user); err != nil {
		s.logger.ErrorContext(ctx, "failed to publish user.deleted event",
			slog.Int64("user_id", user.ID),
			slog.String("error", err.Error()),
		)
	}

	s.logger.InfoContext(ctx, "user deleted",
		slog.Int64("user_id", user.ID),
		slog.String("username", user.Username),
	)

	return nil
}

// Refresh issues a new, non-fresh access token for the given identity. The
// account must still exist.
func (s *UserService) Refresh(ctx context.Context, userID int64) (string, error) {
	if _, err := s.userRepo.GetByID(ctx, userID); err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return "", apperrors.NotFound(fmt.Sprintf("user with id %d not found", userID))
		}
		return "", fmt.Errorf("get user by id: %w", err)
	}

	accessToken, err := s.jwtManager.GenerateAccessToken(userID, false)
	if err != nil {
		return "", fmt.Errorf("generate access token: %w", err)
	}

	return accessToken, nil
}

func (s *UserService) generateTokenPair(userID int64) (*domain.TokenPair, error) {
	accessToken, err := s.jwtManager.GenerateAccessToken(userID, true)
	if err != nil {
		return nil, fmt.Errorf("generate access token: %w", err)
	}

	refreshToken, err := s.jwtManager.GenerateRefreshToken(userID)
	if err != nil {
		return nil, fmt.Errorf("generate refresh token: %w", err)
	}

	return &domain.TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}
