package preferences

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/KirkDiggler/grubvote/internal/models"
	"github.com/redis/go-redis/v9"
)

const (
	// Key prefix for Redis
	preferencesKeyPrefix = "preferences:"
)

// ErrPreferencesNotFound is returned when a user has no stored preferences
var ErrPreferencesNotFound = errors.New("preferences not found")

// Config holds configuration for the Redis preference repository
type Config struct {
	// Redis client
	RedisClient *redis.Client
}

// redisRepository implements the Repository interface using Redis
type redisRepository struct {
	client *redis.Client
}

// NewRedis creates a new Redis-backed preference repository
func NewRedis(cfg *Config) (*redisRepository, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.RedisClient == nil {
		return nil, errors.New("redis client cannot be nil")
	}

	// Test connection
	if err := cfg.RedisClient.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &redisRepository{
		client: cfg.RedisClient,
	}, nil
}

func preferencesKey(userID string) string {
	return fmt.Sprintf("%s%s", preferencesKeyPrefix, userID)
}

// SavePreferences persists a user's preferences to Redis
func (r *redisRepository) SavePreferences(ctx context.Context, input *SavePreferencesInput) error {
	if input == nil || input.Preferences == nil {
		return errors.New("input and preferences cannot be nil")
	}

	if input.Preferences.UserID == "" {
		return errors.New("user ID cannot be empty")
	}

	prefsJSON, err := json.Marshal(input.Preferences)
	if err != nil {
		return fmt.Errorf("failed to marshal preferences: %w", err)
	}

	if err := r.client.Set(ctx, preferencesKey(input.Preferences.UserID), prefsJSON, 0).Err(); err != nil {
		return fmt.Errorf("failed to save preferences: %w", err)
	}

	return nil
}

// GetPreferences retrieves a user's preferences from Redis
func (r *redisRepository) GetPreferences(ctx context.Context, input *GetPreferencesInput) (*models.UserPreferences, error) {
	if input == nil || input.UserID == "" {
		return nil, errors.New("input and user ID cannot be empty")
	}

	prefsJSON, err := r.client.Get(ctx, preferencesKey(input.UserID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrPreferencesNotFound
		}
		return nil, fmt.Errorf("failed to get preferences: %w", err)
	}

	var prefs models.UserPreferences
	if err := json.Unmarshal([]byte(prefsJSON), &prefs); err != nil {
		return nil, fmt.Errorf("failed to unmarshal preferences: %w", err)
	}

	return &prefs, nil
}

// DeletePreferences removes a user's preferences from Redis
func (r *redisRepository) DeletePreferences(ctx context.Context, input *DeletePreferencesInput) error {
	if input == nil || input.UserID == "" {
		return errors.New("input and user ID cannot be empty")
	}

	deleted, err := r.client.Del(ctx, preferencesKey(input.UserID)).Result()
	if err != nil {
		return fmt.Errorf("failed to delete preferences: %w", err)
	}
	if deleted == 0 {
		return ErrPreferencesNotFound
	}

	return nil
}
