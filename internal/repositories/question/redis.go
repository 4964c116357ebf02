package question

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
	questionKeyPrefix = "lectern:question:"
	sessionKeyPrefix  = "lectern:session:"

	// maxAnswerRetries bounds optimistic retries of SetAnswered
	maxAnswerRetries = 5
)

var (
	// ErrQuestionNotFound is returned when a question does not exist
	ErrQuestionNotFound = errors.New("question not found")

	// ErrQuestionExists is returned when adding a question id that is already stored
	ErrQuestionExists = errors.New("question already exists")
)

// addUpvoteScript adds the upvoter only if the question exists.
// Returns -1 for a missing question, otherwise the SADD result.
var addUpvoteScript = redis.NewScript(`
if redis.call('EXISTS', KEYS[1]) == 0 then
	return -1
end
return redis.call('SADD', KEYS[2], ARGV[1])
`)

// Config holds configuration for the Redis question repository
type Config struct {
	// Redis client
	RedisClient *redis.Client
}

// redisRepository implements the Repository interface using Redis
type redisRepository struct {
	client *redis.Client
}

// NewRedis creates a new Redis-backed question repository
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

func questionKey(questionID string) string {
	return questionKeyPrefix + questionID
}

func upvotersKey(questionID string) string {
	return questionKeyPrefix + questionID + ":upvoters"
}

func sessionQuestionsKey(code string) string {
	return sessionKeyPrefix + code + ":questions"
}

// marshalMeta stores the question without upvoters; those live in a set
func marshalMeta(question *models.Question) ([]byte, error) {
	meta := *question
	meta.Upvoters = []string{}
	meta.Upvotes = 0
	return json.Marshal(&meta)
}

// AddQuestion stores the question and indexes it under its session
func (r *redisRepository) AddQuestion(ctx context.Context, input *AddQuestionInput) error {
	if input == nil || input.Question == nil {
		return errors.New("input and question cannot be nil")
	}
	question := input.Question
	if question.ID == "" || question.SessionCode == "" {
		return errors.New("question id and session code cannot be empty")
	}

	metaJSON, err := marshalMeta(question)
	if err != nil {
		return fmt.Errorf("failed to marshal question: %w", err)
	}

	created, err := r.client.SetNX(ctx, questionKey(question.ID), metaJSON, 0).Result()
	if err != nil {
		return fmt.Errorf("failed to add question: %w", err)
	}
	if !created {
		return ErrQuestionExists
	}

	pipe := r.client.TxPipeline()
	for _, userID := range question.Upvoters {
		pipe.SAdd(ctx, upvotersKey(question.ID), userID)
	}
	pipe.ZAdd(ctx, sessionQuestionsKey(question.SessionCode), redis.Z{
		Score:  float64(question.CreatedAt.UnixNano()),
		Member: question.ID,
	})

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to add question: %w", err)
	}

	return nil
}

// GetQuestion retrieves a single question
func (r *redisRepository) GetQuestion(ctx context.Context, input *GetQuestionInput) (*models.Question, error) {
	if input == nil || input.QuestionID == "" {
		return nil, errors.New("input and question id cannot be empty")
	}

	questions, err := r.getQuestions(ctx, []string{input.QuestionID})
	if err != nil {
		return nil, err
	}
	if len(questions) == 0 {
		return nil, ErrQuestionNotFound
	}

	return questions[0], nil
}

// ListQuestions retrieves the session's questions sorted for display
func (r *redisRepository) ListQuestions(ctx context.Context, input *ListQuestionsInput) (*ListQuestionsOutput, error) {
	if input == nil || input.SessionCode == "" {
		return nil, errors.New("input and session code cannot be empty")
	}

	questionIDs, err := r.client.ZRange(ctx, sessionQuestionsKey(input.SessionCode), 0, -1).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list questions: %w", err)
	}

	questions, err := r.getQuestions(ctx, questionIDs)
	if err != nil {
		return nil, err
	}
	models.SortQuestions(questions)

	return &ListQuestionsOutput{
		Questions: questions,
	}, nil
}

// getQuestions loads meta and upvoters in one pipeline, skipping missing ones
func (r *redisRepository) getQuestions(ctx context.Context, questionIDs []string) ([]*models.Question, error) {
	if len(questionIDs) == 0 {
		return []*models.Question{}, nil
	}

	pipe := r.client.Pipeline()
	metaCmds := make([]*redis.StringCmd, len(questionIDs))
	upvoterCmds := make([]*redis.StringSliceCmd, len(questionIDs))
	for i, questionID := range questionIDs {
		metaCmds[i] = pipe.Get(ctx, questionKey(questionID))
		upvoterCmds[i] = pipe.SMembers(ctx, upvotersKey(questionID))
	}

	if _, err := pipe.Exec(ctx); err != nil && !errors.Is(err, redis.Nil) {
		return nil, fmt.Errorf("failed to get questions: %w", err)
	}

	questions := make([]*models.Question, 0, len(questionIDs))
	for i, questionID := range questionIDs {
		metaJSON, err := metaCmds[i].Result()
		if err != nil {
			if errors.Is(err, redis.Nil) {
				continue
			}
			return nil, fmt.Errorf("failed to get question %s: %w", questionID, err)
		}

		var question models.Question
		if err := json.Unmarshal([]byte(metaJSON), &question); err != nil {
			return nil, fmt.Errorf("failed to unmarshal question %s: %w", questionID, err)
		}

		upvoters, err := upvoterCmds[i].Result()
		if err != nil {
			return nil, fmt.Errorf("failed to get upvoters of question %s: %w", questionID, err)
		}
		sort.Strings(upvoters)
		question.Upvoters = upvoters
		question.Upvotes = len(upvoters)

		questions = append(questions, &question)
	}

	return questions, nil
}

// AddUpvote records the upvote once per user
func (r *redisRepository) AddUpvote(ctx context.Context, input *AddUpvoteInput) (*AddUpvoteOutput, error) {
	if input == nil || input.QuestionID == "" || input.UserID == "" {
		return nil, errors.New("input, question id and user id cannot be empty")
	}

	result, err := addUpvoteScript.Run(ctx, r.client,
		[]string{questionKey(input.QuestionID), upvotersKey(input.QuestionID)},
		input.UserID,
	).Int()
	if err != nil {
		return nil, fmt.Errorf("failed to add upvote: %w", err)
	}

	if result < 0 {
		return nil, ErrQuestionNotFound
	}

	return &AddUpvoteOutput{
		Recorded: result == 1,
	}, nil
}

// SetAnswered rewrites the answered flag inside a watched transaction
func (r *redisRepository) SetAnswered(ctx context.Context, input *SetAnsweredInput) (*models.Question, error) {
	if input == nil || input.QuestionID == "" {
		return nil, errors.New("input and question id cannot be empty")
	}

	key := questionKey(input.QuestionID)
	txf := func(tx *redis.Tx) error {
		metaJSON, err := tx.Get(ctx, key).Result()
		if err != nil {
			if errors.Is(err, redis.Nil) {
				return ErrQuestionNotFound
			}
			return err
		}

		var question models.Question
		if err := json.Unmarshal([]byte(metaJSON), &question); err != nil {
			return fmt.Errorf("failed to unmarshal question: %w", err)
		}
		question.IsAnswered = input.IsAnswered

		updated, err := marshalMeta(&question)
		if err != nil {
			return fmt.Errorf("failed to marshal question: %w", err)
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, updated, redis.KeepTTL)
			return nil
		})
		return err
	}

	for i := 0; i < maxAnswerRetries; i++ {
		err := r.client.Watch(ctx, txf, key)
		if err == nil {
			return r.GetQuestion(ctx, &GetQuestionInput{QuestionID: input.QuestionID})
		}
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		if errors.Is(err, ErrQuestionNotFound) {
			return nil, err
		}
		return nil, fmt.Errorf("failed to set answered: %w", err)
	}

	return nil, fmt.Errorf("failed to set answered: too many concurrent updates")
}

// ExpireSession sets a TTL on every question key belonging to the session
func (r *redisRepository) ExpireSession(ctx context.Context, code string, ttl time.Duration) error {
	questionIDs, err := r.client.ZRange(ctx, sessionQuestionsKey(code), 0, -1).Result()
	if err != nil {
		return fmt.Errorf("failed to list questions: %w", err)
	}

	pipe := r.client.Pipeline()
	for _, questionID := range questionIDs {
		pipe.Expire(ctx, questionKey(questionID), ttl)
		pipe.Expire(ctx, upvotersKey(questionID), ttl)
	}
	pipe.Expire(ctx, sessionQuestionsKey(code), ttl)

	if _, err := pipe.Exec(ctx); err != nil {
		return fmt.Errorf("failed to expire questions: %w", err)
	}

	return nil
}
