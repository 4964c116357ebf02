package poll

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strconv"
	"time"

	"github.com/KirkDiggler/lectern/internal/models"
	"github.com/redis/go-redis/v9"
)

const (
	// Key prefixes for Redis
	pollKeyPrefix    = "lectern:poll:"
	sessionKeyPrefix = "lectern:session:"
)

var (
	// ErrPollNotFound is returned when a poll does not exist
	ErrPollNotFound = errors.New("poll not found")

	// ErrPollClosed is returned when voting in a poll that no longer accepts votes
	ErrPollClosed = errors.New("poll is closed")
)

// recordVoteScript stores the vote only while the poll's open flag exists.
// Returns -1 when closed, 1 when stored and 0 for a repeat voter.
var recordVoteScript = redis.NewScript(`
if redis.call('EXISTS', KEYS[1]) == 0 then
	return -1
end
return redis.call('HSETNX', KEYS[2], ARGV[1], ARGV[2])
`)

// createPollScript stores the poll and, for an open poll, swaps it in as the
// session's active poll. The previous active poll stops taking votes in the
// same step and its id is returned so the caller can close it.
var createPollScript = redis.NewScript(`
redis.call('SET', KEYS[1], ARGV[1])
redis.call('ZADD', KEYS[3], ARGV[3], ARGV[2])
if ARGV[4] ~= '1' then
	return false
end
redis.call('SET', KEYS[2], '1')
local previous = redis.call('GETSET', KEYS[4], ARGV[2])
if previous and previous ~= ARGV[2] then
	redis.call('DEL', ARGV[5] .. previous .. ':open')
	return previous
end
return false
`)

// clearActiveScript removes the active pointer only if it still names this poll
var clearActiveScript = redis.NewScript(`
if redis.call('GET', KEYS[1]) == ARGV[1] then
	return redis.call('DEL', KEYS[1])
end
return 0
`)

// Config holds configuration for the Redis poll repository
type Config struct {
	// Redis client
	RedisClient *redis.Client
}

// redisRepository implements the Repository interface using Redis
type redisRepository struct {
	client *redis.Client
}

// NewRedis creates a new Redis-backed poll repository
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

func pollKey(pollID string) string {
	return pollKeyPrefix + pollID
}

func votersKey(pollID string) string {
	return pollKeyPrefix + pollID + ":voters"
}

func openKey(pollID string) string {
	return pollKeyPrefix + pollID + ":open"
}

func sessionPollsKey(code string) string {
	return sessionKeyPrefix + code + ":polls"
}

func activePollKey(code string) string {
	return sessionKeyPrefix + code + ":active_poll"
}

// marshalMeta stores the poll without voters; those live in the voters hash
func marshalMeta(poll *models.Poll) ([]byte, error) {
	meta := poll.Clone()
	for _, option := range meta.Options {
		option.Voters = []string{}
		option.Votes = 0
	}
	meta.TotalVotes = 0
	return json.Marshal(meta)
}

// CreatePoll stores the poll and points the session at it
func (r *redisRepository) CreatePoll(ctx context.Context, input *CreatePollInput) (*CreatePollOutput, error) {
	if input == nil || input.Poll == nil {
		return nil, errors.New("input and poll cannot be nil")
	}
	poll := input.Poll
	if poll.ID == "" || poll.SessionCode == "" {
		return nil, errors.New("poll id and session code cannot be empty")
	}

	metaJSON, err := marshalMeta(poll)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal poll: %w", err)
	}

	active := "0"
	if poll.IsActive {
		active = "1"
	}

	previousID, err := createPollScript.Run(ctx, r.client,
		[]string{pollKey(poll.ID), openKey(poll.ID), sessionPollsKey(poll.SessionCode), activePollKey(poll.SessionCode)},
		metaJSON, poll.ID, strconv.FormatInt(poll.CreatedAt.UnixNano(), 10), active, pollKeyPrefix,
	).Text()
	if err != nil && !errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("failed to create poll: %w", err)
	}

	return &CreatePollOutput{
		PreviousID: previousID,
	}, nil
}

// GetPoll retrieves a poll and rebuilds its tallies from the voters hash
func (r *redisRepository) GetPoll(ctx context.Context, input *GetPollInput) (*models.Poll, error) {
	if input == nil || input.PollID == "" {
		return nil, errors.New("input and poll id cannot be empty")
	}

	polls, err := r.getPolls(ctx, []string{input.PollID})
	if err != nil {
		return nil, err
	}
	if len(polls) == 0 {
		return nil, ErrPollNotFound
	}

	return polls[0], nil
}

// GetActivePoll retrieves the poll the session currently displays
func (r *redisRepository) GetActivePoll(ctx context.Context, input *GetActivePollInput) (*models.Poll, error) {
	if input == nil || input.SessionCode == "" {
		return nil, errors.New("input and session code cannot be empty")
	}

	pollID, err := r.client.Get(ctx, activePollKey(input.SessionCode)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, ErrPollNotFound
		}
		return nil, fmt.Errorf("failed to get active poll: %w", err)
	}

	return r.GetPoll(ctx, &GetPollInput{PollID: pollID})
}

// ListPolls retrieves all polls of a session ordered by creation
func (r *redisRepository) ListPolls(ctx context.Context, input *ListPollsInput) (*ListPollsOutput, error) {
	if input == nil || input.SessionCode == "" {
		return nil, errors.New("input and session code cannot be empty")
	}

	pollIDs, err := r.client.ZRange(ctx, sessionPollsKey(input.SessionCode), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list polls: %w", err)
	}

	polls, err := r.getPolls(ctx, pollIDs)
	if err != nil {
		return nil, err
	}

	return &ListPollsOutput{
		Polls: polls,
	}, nil
}

// getPolls loads meta and voters for every id in one pipeline, skipping missing polls
func (r *redisRepository) getPolls(ctx context.Context, pollIDs []string) ([]*models.Poll, error) {
	if len(pollIDs) == 0 {
		return []*models.Poll{}, nil
	}

	pipe := r.client.Pipeline()
	metaCmds := make([]*redis.StringCmd, len(pollIDs))
	voterCmds := make([]*redis.MapStringStringCmd, len(pollIDs))
	for i, pollID := range pollIDs {
		metaCmds[i] = pipe.Get(ctx, pollKey(pollID))
		voterCmds[i] = pipe.HGetAll(ctx, votersKey(pollID))
	}

	if _, err := pipe.Exec(ctx); err != nil && !errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("failed to get polls: %w", err)
	}

	polls := make([]*models.Poll, 0, len(pollIDs))
	for i, pollID := range pollIDs {
		metaJSON, err := metaCmds[i].Result()
		if err != nil {
			if errors.Is(err, redis.Nil) {
				continue
			}
			return nil, fmt.Errorf("failed to get poll %s: %w", pollID, err)
		}

		var poll models.Poll
		if err := json.Unmarshal([]byte(metaJSON), &poll); err != nil {
			return nil, fmt.Errorf("failed to unmarshal poll %s: %w", pollID, err)
		}

		voters, err := voterCmds[i].Result()
		if err != nil {
			return nil, fmt.Errorf("failed to get voters of poll %s: %w", pollID, err)
		}
		applyVoters(&poll, voters)

		polls = append(polls, &poll)
	}

	return polls, nil
}

// applyVoters fills option voter lists from a user to option index map
func applyVoters(poll *models.Poll, voters map[string]string) {
	for _, option := range poll.Options {
		option.Voters = []string{}
	}

	userIDs := make([]string, 0, len(voters))
	for userID := range voters {
		userIDs = append(userIDs, userID)
	}
	sort.Strings(userIDs)

	for _, userID := range userIDs {
		index, err := strconv.Atoi(voters[userID])
		if err != nil || index < 0 || index >= len(poll.Options) {
			continue
		}
		poll.Options[index].Voters = append(poll.Options[index].Voters, userID)
	}

	poll.Recount()
}

// RecordVote stores the vote once per user while the poll is open
func (r *redisRepository) RecordVote(ctx context.Context, input *RecordVoteInput) (*RecordVoteOutput, error) {
	if input == nil || input.PollID == "" || input.UserID == "" {
		return nil, errors.New("input, poll id and user id cannot be empty")
	}

	result, err := recordVoteScript.Run(ctx, r.client,
		[]string{openKey(input.PollID), votersKey(input.PollID)},
		input.UserID, input.OptionIndex,
	).Int()
	if err != nil {
		return nil, fmt.Errorf("failed to record vote: %w", err)
	}

	if result < 0 {
		return nil, ErrPollClosed
	}

	return &RecordVoteOutput{
		Recorded: result == 1,
	}, nil
}

// ClosePoll saves the closed poll and removes its open flag
func (r *redisRepository) ClosePoll(ctx context.Context, input *ClosePollInput) error {
	if input == nil || input.Poll == nil {
		return errors.New("input and poll cannot be nil")
	}
	poll := input.Poll

	metaJSON, err := marshalMeta(poll)
	if err != nil {
		return fmt.Errorf("failed to marshal poll: %w", err)
	}

	pipe := r.client.TxPipeline()
	pipe.Set(ctx, pollKey(poll.ID), metaJSON, redis.KeepTTL)
	pipe.Del(ctx, openKey(poll.ID))
	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to close poll: %w", err)
	}

	if err := clearActiveScript.Run(ctx, r.client, []string{activePollKey(poll.SessionCode)}, poll.ID).Err(); err != nil {
		return fmt.Errorf("failed to clear active poll: %w", err)
	}

	return nil
}

// ExpireSession sets a TTL on every poll key belonging to the session
func (r *redisRepository) ExpireSession(ctx context.Context, code string, ttl time.Duration) error {
	pollIDs, err := r.client.ZRange(ctx, sessionPollsKey(code), 0, -1).Result()
	if err != nil {
		return fmt.Errorf("failed to list polls: %w", err)
	}

	pipe := r.client.Pipeline()
	for _, pollID := range pollIDs {
		pipe.Expire(ctx, pollKey(pollID), ttl)
		pipe.Expire(ctx, votersKey(pollID), ttl)
		pipe.Expire(ctx, openKey(pollID), ttl)
	}
	pipe.Expire(ctx, sessionPollsKey(code), ttl)
	pipe.Expire(ctx, activePollKey(code), ttl)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to expire polls: %w", err)
	}

	return nil
}
