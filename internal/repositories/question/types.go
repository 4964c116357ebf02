package question

import "github.com/KirkDiggler/lectern/internal/models"

type AddQuestionInput struct {
	Question *models.Question
}

type GetQuestionInput struct {
	QuestionID string
}

type ListQuestionsInput struct {
	SessionCode string
}

type ListQuestionsOutput struct {
	Questions []*models.Question
}

type AddUpvoteInput struct {
	QuestionID string
	UserID     string
}

type AddUpvoteOutput struct {
	// Recorded is false when the user had already upvoted
	Recorded bool
}

type SetAnsweredInput struct {
	QuestionID string
	IsAnswered bool
}
