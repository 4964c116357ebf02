package session

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/KirkDiggler/lectern/internal/models"
	"github.com/redis/go-redis/v9"
)

const (
	// Key prefixes for Redis
	sessionKeyPrefix  = "lectern:session:"
	activeSessionsKey = "lectern:sessions:active"

	// maxUpdateRetries bounds optimistic retries of UpdateSession
	maxUpdateRetries = 5
)

var (
	// ErrSessionNotFound is returned when no session exists for a code
	ErrSessionNotFound = errors.New("session not found")

	// ErrCodeTaken is returned when a new session's code is already in use
	ErrCodeTaken = errors.New("session code already in use")
)

// Config holds configuration for the Redis session repository
type Config struct {
	// Redis client
	RedisClient *redis.Client
}

// redisRepository implements the Repository interface using Redis
type redisRepository struct {
	client *redis.Client
}

// NewRedis creates a new Redis-backed session repository
func NewRedis(cfg *Config) (*redisRepository, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.RedisClient == nil {
		return nil, errors.New("redis client cannot be nil")
	}

	if err := cfg.RedisClient.Ping(context.Background()).Err(); err != nil {
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return &redisRepository{
		client: cfg.RedisClient,
	}, nil
}

func sessionKey(code string) string {
	return sessionKeyPrefix + code
}

// CreateSession stores a session only if its code is free
func (r *redisRepository) CreateSession(ctx context.Context, input *CreateSessionInput) error {
	if input == nil || input.Session == nil {
		return errors.New("input and session cannot be nil")
	}
	if input.Session.Code == "" {
		return errors.New("session code cannot be empty")
	}

	sessionJSON, err := json.Marshal(input.Session)
	if err != nil {
		return fmt.Errorf("failed to marshal session: %w", err)
	}

	created, err := r.client.SetNX(ctx, sessionKey(input.Session.Code), sessionJSON, 0).Result()
	if err != nil {
		return fmt.Errorf("failed to create session: %w", err)
	}
	if !created {
		return ErrCodeTaken
	}

	if input.Session.IsActive {
		if err := r.client.SAdd(ctx, activeSessionsKey, input.Session.Code).Err(); err != nil {
			return fmt.Errorf("failed to index active session: %w", err)
		}
	}

	return nil
}

// GetSession retrieves a session by code from Redis
func (r *redisRepository) GetSession(ctx context.Context, input *GetSessionInput) (*models.Session, error) {
	if input == nil || input.Code == "" {
		return nil, errors.New("input and code cannot be empty")
	}

	sessionJSON, err := r.client.Get(ctx, sessionKey(input.Code)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrSessionNotFound
		}
		return nil, fmt.Errorf("failed to get session: %w", err)
	}

	var session models.Session
	if err := json.Unmarshal([]byte(sessionJSON), &session); err != nil {
		return nil, fmt.Errorf("failed to unmarshal session: %w", err)
	}

	return &session, nil
}

// UpdateSession re-reads the session inside a watched transaction, applies
// the change and writes it back with its expiry intact
func (r *redisRepository) UpdateSession(ctx context.Context, input *UpdateSessionInput) (*models.Session, error) {
	if input == nil || input.Code == "" || input.Apply == nil {
		return nil, errors.New("input, code and apply cannot be empty")
	}

	key := sessionKey(input.Code)
	var updated *models.Session
	txf := func(tx *redis.Tx) error {
		sessionJSON, err := tx.Get(ctx, key).Result()
		if err != nil {
			if errors.Is(err, redis.Nil) {
				return ErrSessionNotFound
			}
			return err
		}

		var session models.Session
		if err := json.Unmarshal([]byte(sessionJSON), &session); err != nil {
			return fmt.Errorf("failed to unmarshal session: %w", err)
		}
		if err := input.Apply(&session); err != nil {
			return err
		}

		changed, err := json.Marshal(&session)
		if err != nil {
			return fmt.Errorf("failed to marshal session: %w", err)
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, changed, redis.KeepTTL)
			if session.IsActive {
				pipe.SAdd(ctx, activeSessionsKey, session.Code)
			} else {
				pipe.SRem(ctx, activeSessionsKey, session.Code)
			}
			return nil
		})
		if err != nil {
			return err
		}

		updated = &session
		return nil
	}

	for i := 0; i < maxUpdateRetries; i++ {
		err := r.client.Watch(ctx, txf, key)
		if err == nil {
			return updated, nil
		}
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		// ErrSessionNotFound and errors from Apply reach the caller as is
		return nil, err
	}

	return nil, fmt.Errorf("failed to update session: too many concurrent updates")
}

// ListActiveSessions retrieves all active sessions, oldest first
func (r *redisRepository) ListActiveSessions(ctx context.Context, input *ListActiveSessionsInput) (*ListActiveSessionsOutput, error) {
	codes, err := r.client.SMembers(ctx, activeSessionsKey).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to get active session codes: %w", err)
	}

	if len(codes) == 0 {
		return &ListActiveSessionsOutput{
			Sessions: []*models.Session{},
		}, nil
	}

	pipe := r.client.Pipeline()
	commands := make(map[string]*redis.StringCmd, len(codes))
	for _, code := range codes {
		commands[code] = pipe.Get(ctx, sessionKey(code))
	}

	// redis.Nil for individual keys is handled per command below
	if _, err := pipe.Exec(ctx); err != nil && !errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("failed to get active sessions: %w", err)
	}

	sessions := make([]*models.Session, 0, len(codes))
	for code, cmd := range commands {
		sessionJSON, err := cmd.Result()
		if err != nil {
			if errors.Is(err, redis.Nil) {
				// Expired between reading the index and the session
				r.client.SRem(ctx, activeSessionsKey, code)
				continue
			}
			return nil, fmt.Errorf("failed to get session %s: %w", code, err)
		}

		var session models.Session
		if err := json.Unmarshal([]byte(sessionJSON), &session); err != nil {
			return nil, fmt.Errorf("failed to unmarshal session %s: %w", code, err)
		}
		if !session.IsActive {
			continue
		}
		sessions = append(sessions, &session)
	}

	sort.Slice(sessions, func(i, j int) bool {
		return sessions[i].StartedAt.Before(sessions[j].StartedAt)
	})

	return &ListActiveSessionsOutput{
		Sessions: sessions,
	}, nil
}

// ExpireSession sets a TTL on the session and drops it from the active index
func (r *redisRepository) ExpireSession(ctx context.Context, code string, ttl time.Duration) error {
	pipe := r.client.Pipeline()
	pipe.Expire(ctx, sessionKey(code), ttl)
	pipe.SRem(ctx, activeSessionsKey, code)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to expire session: %w", err)
	}

	return nil
}
