package qa

import (
	"github.com/KirkDiggler/lectern/internal/common/clock"
	"github.com/KirkDiggler/lectern/internal/common/token"
	"github.com/KirkDiggler/lectern/internal/common/uuid"
	"github.com/KirkDiggler/lectern/internal/models"
	questionRepo "github.com/KirkDiggler/lectern/internal/repositories/question"
	sessionRepo "github.com/KirkDiggler/lectern/internal/repositories/session"
	"github.com/KirkDiggler/lectern/internal/services/broadcast"
)

// Config holds configuration for the Q&A service
type Config struct {
	// Repository dependencies
	SessionRepo  sessionRepo.Repository
	QuestionRepo questionRepo.Repository

	// Service dependencies
	Broadcaster   broadcast.Service
	TokenIssuer   token.Issuer
	Clock         clock.Clock
	UUIDGenerator uuid.UUID
}

type SubmitQuestionInput struct {
	Code string

	// QuestionID is optional. Clients that apply their question locally
	// before sending pass their id so retries and echoes dedupe.
	QuestionID string

	Text      string
	AskerID   string
	AskerName string
}

type SubmitQuestionOutput struct {
	Question *models.Question

	// Created is false when the question id had already been submitted
	Created bool
}

type UpvoteInput struct {
	Code       string
	QuestionID string
	UserID     string
}

type UpvoteOutput struct {
	// Recorded is false when the user had already upvoted
	Recorded  bool
	Questions []*models.Question
}

type ToggleAnsweredInput struct {
	Code           string
	PresenterToken string
	QuestionID     string
}

type ToggleAnsweredOutput struct {
	Question *models.Question
}

type ListQuestionsInput struct {
	Code string
}

type ListQuestionsOutput struct {
	Questions []*models.Question
}
