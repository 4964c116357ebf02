package question

//go:generate mockgen -package=mocks -destination=mocks/mock_repository.go github.com/KirkDiggler/lectern/internal/repositories/question Repository

import (
	"context"
	"time"

	"github.com/KirkDiggler/lectern/internal/models"
)

// Repository defines the interface for Q&A persistence
type Repository interface {
	// AddQuestion appends a question to the session's Q&A, failing with
	// ErrQuestionExists if the id is already stored
	AddQuestion(ctx context.Context, input *AddQuestionInput) error

	// GetQuestion retrieves a question with its upvoters
	GetQuestion(ctx context.Context, input *GetQuestionInput) (*models.Question, error)

	// ListQuestions retrieves a session's questions in display order
	ListQuestions(ctx context.Context, input *ListQuestionsInput) (*ListQuestionsOutput, error)

	// AddUpvote atomically counts a user's first upvote of a question
	AddUpvote(ctx context.Context, input *AddUpvoteInput) (*AddUpvoteOutput, error)

	// SetAnswered sets the answered flag of a question
	SetAnswered(ctx context.Context, input *SetAnsweredInput) (*models.Question, error)

	// ExpireSession schedules every question key of the session for deletion after ttl
	ExpireSession(ctx context.Context, code string, ttl time.Duration) error
}
