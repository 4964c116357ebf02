package presence

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
	// Key prefix for Redis
	sessionKeyPrefix = "lectern:session:"
)

// addScript counts a connection and stores the participant on the first one
var addScript = redis.NewScript(`
local n = redis.call('HINCRBY', KEYS[2], ARGV[1], 1)
redis.call('HSETNX', KEYS[1], ARGV[1], ARGV[2])
return n
`)

// removeScript drops a connection and the participant with the last one.
// Returns 1 when the participant was removed.
var removeScript = redis.NewScript(`
local n = 0
if ARGV[2] ~= '1' then
	n = redis.call('HINCRBY', KEYS[2], ARGV[1], -1)
end
if n <= 0 then
	redis.call('HDEL', KEYS[2], ARGV[1])
	return redis.call('HDEL', KEYS[1], ARGV[1])
end
return 0
`)

// Config holds configuration for the Redis presence repository
type Config struct {
	// Redis client
	RedisClient *redis.Client
}

// redisRepository implements the Repository interface using Redis
type redisRepository struct {
	client *redis.Client
}

// NewRedis creates a new Redis-backed presence repository
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

func presenceKey(code string) string {
	return sessionKeyPrefix + code + ":presence"
}

func connectionsKey(code string) string {
	return sessionKeyPrefix + code + ":presence:connections"
}

// AddParticipant counts a connection and stores the participant under its user id
func (r *redisRepository) AddParticipant(ctx context.Context, input *AddParticipantInput) (*AddParticipantOutput, error) {
	if input == nil || input.Participant == nil {
		return nil, errors.New("input and participant cannot be nil")
	}
	if input.SessionCode == "" || input.Participant.UserID == "" {
		return nil, errors.New("session code and user id cannot be empty")
	}

	participantJSON, err := json.Marshal(input.Participant)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal participant: %w", err)
	}

	connections, err := addScript.Run(ctx, r.client,
		[]string{presenceKey(input.SessionCode), connectionsKey(input.SessionCode)},
		input.Participant.UserID, string(participantJSON),
	).Int()
	if err != nil {
		return nil, fmt.Errorf("failed to add participant: %w", err)
	}

	return &AddParticipantOutput{
		Added: connections == 1,
	}, nil
}

// RemoveParticipant releases a connection of the participant
func (r *redisRepository) RemoveParticipant(ctx context.Context, input *RemoveParticipantInput) (*RemoveParticipantOutput, error) {
	if input == nil || input.SessionCode == "" || input.UserID == "" {
		return nil, errors.New("input, session code and user id cannot be empty")
	}

	force := "0"
	if input.Force {
		force = "1"
	}

	removed, err := removeScript.Run(ctx, r.client,
		[]string{presenceKey(input.SessionCode), connectionsKey(input.SessionCode)},
		input.UserID, force,
	).Int()
	if err != nil {
		return nil, fmt.Errorf("failed to remove participant: %w", err)
	}

	return &RemoveParticipantOutput{
		Removed: removed > 0,
	}, nil
}

// ListParticipants retrieves participants ordered by join time, then user id
func (r *redisRepository) ListParticipants(ctx context.Context, input *ListParticipantsInput) (*ListParticipantsOutput, error) {
	if input == nil || input.SessionCode == "" {
		return nil, errors.New("input and session code cannot be empty")
	}

	entries, err := r.client.HGetAll(ctx, presenceKey(input.SessionCode)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list participants: %w", err)
	}

	participants := make([]*models.Participant, 0, len(entries))
	for userID, participantJSON := range entries {
		var participant models.Participant
		if err := json.Unmarshal([]byte(participantJSON), &participant); err != nil {
			return nil, fmt.Errorf("failed to unmarshal participant %s: %w", userID, err)
		}
		participants = append(participants, &participant)
	}

	sort.Slice(participants, func(i, j int) bool {
		if !participants[i].JoinedAt.Equal(participants[j].JoinedAt) {
			return participants[i].JoinedAt.Before(participants[j].JoinedAt)
		}
		return participants[i].UserID < participants[j].UserID
	})

	return &ListParticipantsOutput{
		Participants: participants,
	}, nil
}

// ExpireSession sets a TTL on the presence hashes
func (r *redisRepository) ExpireSession(ctx context.Context, code string, ttl time.Duration) error {
	pipe := r.client.Pipeline()
	pipe.Expire(ctx, presenceKey(code), ttl)
	pipe.Expire(ctx, connectionsKey(code), ttl)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to expire presence: %w", err)
	}
	return nil
}
