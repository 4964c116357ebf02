package bus

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/KirkDiggler/lectern/internal/models"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog/log"
)

const (
	// Key prefixes for Redis
	channelPrefix = "lectern:events:"
	seqPrefix     = "lectern:seq:"
)

// publishScript sequences and publishes in one step so every replica
// observes the same order. Messages are "seq|event-json".
var publishScript = redis.NewScript(`
local seq = redis.call('INCR', KEYS[1])
redis.call('PUBLISH', ARGV[2], seq .. '|' .. ARGV[1])
return seq
`)

// RedisConfig holds configuration for the Redis pub/sub bus
type RedisConfig struct {
	RedisClient *redis.Client
}

// RedisBus fans events out through Redis pub/sub so every server replica
// delivers the same ordered stream
type RedisBus struct {
	client *redis.Client
}

// NewRedis creates a new Redis-backed bus
func NewRedis(cfg *RedisConfig) (*RedisBus, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}

	if cfg.RedisClient == nil {
		return nil, errors.New("redis client cannot be nil")
	}

	return &RedisBus{
		client: cfg.RedisClient,
	}, nil
}

func channelName(code string) string {
	return channelPrefix + code
}

func seqKey(code string) string {
	return seqPrefix + code
}

// Publish sequences the event and publishes it on the session channel
func (b *RedisBus) Publish(ctx context.Context, input *PublishInput) (*PublishOutput, error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	// Seq is filled in by subscribers from the message prefix
	input.Event.Seq = 0
	eventJSON, err := json.Marshal(input.Event)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal event: %w", err)
	}

	seq, err := publishScript.Run(ctx, b.client,
		[]string{seqKey(input.Code)},
		string(eventJSON), channelName(input.Code),
	).Int64()
	if err != nil {
		return nil, fmt.Errorf("failed to publish event: %w", err)
	}

	input.Event.Seq = seq

	return &PublishOutput{
		Seq: seq,
	}, nil
}

// Subscribe listens on the session channel and returns once Redis has
// confirmed the subscription
func (b *RedisBus) Subscribe(ctx context.Context, input *SubscribeInput) (func(), error) {
	if err := input.validate(); err != nil {
		return nil, err
	}

	pubsub := b.client.Subscribe(ctx, channelName(input.Code))

	// Anything published after the confirmation reaches this subscriber
	if _, err := pubsub.Receive(ctx); err != nil {
		pubsub.Close()
		return nil, fmt.Errorf("failed to subscribe: %w", err)
	}

	sub := &subscriber{handler: input.Handler}

	var lastSeq int64
	messages := pubsub.Channel()
	go func() {
		for msg := range messages {
			event, err := decodeMessage(msg.Payload)
			if err != nil {
				log.Warn().Err(err).Str("module", "bus").Str("code", input.Code).Msg("dropping undecodable event")
				continue
			}
			if event.Seq <= lastSeq {
				continue
			}
			lastSeq = event.Seq
			sub.deliver(event)
		}
	}()

	var once sync.Once
	return func() {
		once.Do(func() {
			sub.close()
			if err := pubsub.Close(); err != nil {
				log.Warn().Err(err).Str("module", "bus").Str("code", input.Code).Msg("failed to close subscription")
			}
		})
	}, nil
}

// LastSeq reads the session's sequence counter
func (b *RedisBus) LastSeq(ctx context.Context, code string) (int64, error) {
	seq, err := b.client.Get(ctx, seqKey(code)).Int64()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, nil
		}
		return 0, fmt.Errorf("failed to get sequence: %w", err)
	}

	return seq, nil
}

// Expire sets a TTL on the session's sequence
func (b *RedisBus) Expire(ctx context.Context, code string, ttl time.Duration) error {
	if err := b.client.Expire(ctx, seqKey(code), ttl).Err(); err != nil {
		return fmt.Errorf("failed to expire bus keys: %w", err)
	}

	return nil
}

// decodeMessage parses a "seq|event-json" pub/sub payload
func decodeMessage(payload string) (*models.Event, error) {
	seqText, eventJSON, ok := strings.Cut(payload, "|")
	if !ok {
		return nil, errors.New("missing sequence prefix")
	}

	seq, err := strconv.ParseInt(seqText, 10, 64)
	if err != nil {
		return nil, fmt.Errorf("invalid sequence: %w", err)
	}

	var event models.Event
	if err := json.Unmarshal([]byte(eventJSON), &event); err != nil {
		return nil, fmt.Errorf("failed to unmarshal event: %w", err)
	}
	event.Seq = seq

	return &event, nil
}
