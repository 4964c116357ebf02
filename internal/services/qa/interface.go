package qa

//go:generate mockgen -package=mocks -destination=mocks/mock_service.go github.com/KirkDiggler/lectern/internal/services/qa Service

import "context"

// Service defines the interface for the audience Q&A
type Service interface {
	// SubmitQuestion adds an audience question
	SubmitQuestion(ctx context.Context, input *SubmitQuestionInput) (*SubmitQuestionOutput, error)

	// Upvote counts a user's upvote of a question once
	Upvote(ctx context.Context, input *UpvoteInput) (*UpvoteOutput, error)

	// ToggleAnswered flips the answered flag of a question
	ToggleAnswered(ctx context.Context, input *ToggleAnsweredInput) (*ToggleAnsweredOutput, error)

	// ListQuestions returns the questions in display order
	ListQuestions(ctx context.Context, input *ListQuestionsInput) (*ListQuestionsOutput, error)
}
