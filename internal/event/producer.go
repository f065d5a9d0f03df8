package event

import (
	"context"
	"fmt"
	"log/slog"
	"strconv"

	"github.com/ryan-kp-miller/the-drink-almanac-api/internal/domain"
	pkgkafka "github.com/ryan-kp-miller/the-drink-almanac-api/pkg/kafka"
	"github.com/ryan-kp-miller/the-drink-almanac-api/pkg/logger"
)

// Kafka topic constants for drink almanac domain events.
const (
	TopicUserRegistered  = "drink_almanac.user.registered"
	TopicUserDeleted     = "drink_almanac.user.deleted"
	TopicFavoriteAdded   = "drink_almanac.favorite.added"
	TopicFavoriteRemoved = "drink_almanac.favorite.removed"
)

// Aggregate type constants.
const (
	AggregateTypeUser     = "user"
	AggregateTypeFavorite = "favorite"
)

// Source identifier for events originating from this service.
const SourceDrinkAlmanac = "drink-almanac-api"

// UserRegisteredData is the payload for a user.registered event.
type UserRegisteredData struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
}

// UserDeletedData is the payload for a user.deleted event.
type UserDeletedData struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
}

// FavoriteData is the payload for favorite.added and favorite.removed events.
type FavoriteData struct {
	ID      int64 `json:"id,omitempty"`
	UserID  int64 `json:"user_id"`
	DrinkID int64 `json:"drink_id"`
}

// publisher is the subset of the Kafka producer used by this package.
type publisher interface {
	Publish(ctx context.Context, topic string, event *pkgkafka.Event) error
}

// Producer publishes drink almanac domain events to Kafka.
type Producer struct {
	kafka  publisher
	logger *slog.Logger
}

// NewProducer creates a new event producer.
func NewProducer(kafka publisher, logger *slog.Logger) *Producer {
	return &Producer{
		kafka:  kafka,
		logger: logger,
	}
}

// PublishUserRegistered publishes a user.registered event.
func (p *Producer) PublishUserRegistered(ctx context.Context, user *domain.User) error {
	data := UserRegisteredData{
		ID:       user.ID,
		Username: user.Username,
	}

	event, err := pkgkafka.NewEvent(TopicUserRegistered, strconv.FormatInt(user.ID, 10), AggregateTypeUser, SourceDrinkAlmanac, data)
	if err != nil {
		return fmt.Errorf("create user.registered event: %w", err)
	}
	event.WithCorrelationID(logger.CorrelationIDFromContext(ctx))

	if err := p.kafka.Publish(ctx, TopicUserRegistered, event); err != nil {
		return fmt.Errorf("publish user.registered event: %w", err)
	}

	p.logger.DebugContext(ctx, "published user.registered event",
		slog.Int64("user_id", user.ID),
		slog.String("username", user.Username),
	)

	return nil
}

// PublishUserDeleted publishes a user.deleted event.
func (p *Producer) PublishUserDeleted(ctx context.Context, user *domain.User) error {
	data := UserDeletedData{
		ID:       user.ID,
		Username: user.Username,
	}

	event, err := pkgkafka.NewEvent(TopicUserDeleted, strconv.FormatInt(user.ID, 10), AggregateTypeUser, SourceDrinkAlmanac, data)
	if err != nil {
		return fmt.Errorf("create user.deleted event: %w", err)
	}
	event.WithCorrelationID(logger.CorrelationIDFromContext(ctx))

	if err := p.kafka.Publish(ctx, TopicUserDeleted, event); err != nil {
		return fmt.Errorf("publish user.deleted event: %w", err)
	}

	p.logger.DebugContext(ctx, "published user.deleted event",
		slog.Int64("user_id", user.ID),
	)

	return nil
}

// PublishFavoriteAdded publishes a favorite.added event.
func (p *Producer) PublishFavoriteAdded(ctx context.Context, favorite *domain.Favorite) error {
	data := FavoriteData{
		ID:      favorite.ID,
		UserID:  favorite.UserID,
		DrinkID: favorite.DrinkID,
	}

	event, err := pkgkafka.NewEvent(TopicFavoriteAdded, strconv.FormatInt(favorite.ID, 10), AggregateTypeFavorite, SourceDrinkAlmanac, data)
	if err != nil {
		return fmt.Errorf("create favorite.added event: %w", err)
	}
	event.WithCorrelationID(logger.CorrelationIDFromContext(ctx))

	if err := p.kafka.Publish(ctx, TopicFavoriteAdded, event); err != nil {
		return fmt.Errorf("publish favorite.added event: %w", err)
	}

	p.logger.DebugContext(ctx, "published favorite.added event",
		slog.Int64("user_id", favorite.UserID),
		slog.Int64("drink_id", favorite.DrinkID),
	)

	return nil
}

// PublishFavoriteRemoved publishes a favorite.removed event.
func (p *Producer) PublishFavoriteRemoved(ctx context.Context, userID, drinkID int64) error {
	data := FavoriteData{
		UserID:  userID,
		DrinkID: drinkID,
	}

	event, err := pkgkafka.NewEvent(TopicFavoriteRemoved, strconv.FormatInt(userID, 10), AggregateTypeFavorite, SourceDrinkAlmanac, data)
	if err != nil {
		return fmt.Errorf("create favorite.removed event: %w", err)
	}
	event.WithCorrelationID(logger.CorrelationIDFromContext(ctx))

	if err := p.kafka.Publish(ctx, TopicFavoriteRemoved, event); err != nil {
		return fmt.Errorf("publish favorite.removed event: %w", err)
	}

	p.logger.DebugContext(ctx, "published favorite.removed event",
		slog.Int64("user_id", userID),
		slog.Int64("drink_id", drinkID),
	)

	return nil
}
