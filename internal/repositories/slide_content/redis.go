package slide_content

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/KirkDiggler/lectern/internal/models"
	"github.com/redis/go-redis/v9"
)

const (
	// Key prefix for Redis
	sessionKeyPrefix = "lectern:session:"
)

var (
	// ErrSlideContentNotFound is returned when no content was projected for a slide
	ErrSlideContentNotFound = errors.New("slide content not found")
)

// Config holds configuration for the Redis slide content repository
type Config struct {
	// Redis client
	RedisClient *redis.Client
}

// redisRepository implements the Repository interface using Redis
type redisRepository struct {
	client *redis.Client
}

// NewRedis creates a new Redis-backed slide content repository
func NewRedis(cfg *Config) (*redisRepository, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.RedisClient == nil {
		return nil, errors.New("redis client cannot be nil")
	}

	return &redisRepository{
		client: cfg.RedisClient,
	}, nil
}

func slidesKey(code string) string {
	return sessionKeyPrefix + code + ":slides"
}

// SaveSlideContent replaces any earlier content for the same slide
func (r *redisRepository) SaveSlideContent(ctx context.Context, input *SaveSlideContentInput) error {
	if input == nil || input.Content == nil {
		return errors.New("input and content cannot be nil")
	}
	if input.SessionCode == "" {
		return errors.New("session code cannot be empty")
	}

	contentJSON, err := json.Marshal(input.Content)
	if err != nil {
		return fmt.Errorf("failed to marshal slide content: %w", err)
	}

	field := strconv.Itoa(input.Content.SlideNumber)
	if err := r.client.HSet(ctx, slidesKey(input.SessionCode), field, contentJSON).Err(); err != nil {
		return fmt.Errorf("failed to save slide content: %w", err)
	}

	return nil
}

// GetSlideContent retrieves the stored content of a slide
func (r *redisRepository) GetSlideContent(ctx context.Context, input *GetSlideContentInput) (*models.SlideContent, error) {
	if input == nil || input.SessionCode == "" {
		return nil, errors.New("input and session code cannot be empty")
	}

	contentJSON, err := r.client.HGet(ctx, slidesKey(input.SessionCode), strconv.Itoa(input.SlideNumber)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrSlideContentNotFound
		}
		return nil, fmt.Errorf("failed to get slide content: %w", err)
	}

	var content models.SlideContent
	if err := json.Unmarshal([]byte(contentJSON), &content); err != nil {
		return nil, fmt.Errorf("failed to unmarshal slide content: %w", err)
	}

	return &content, nil
}

// ExpireSession sets a TTL on the slide content hash
func (r *redisRepository) ExpireSession(ctx context.Context, code string, ttl time.Duration) error {
	if err := r.client.Expire(ctx, slidesKey(code), ttl).Err(); err != nil {
		return fmt.Errorf("failed to expire slide content: %w", err)
	}
	return nil
}
