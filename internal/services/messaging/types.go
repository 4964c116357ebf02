package messaging

import (
	"github.com/KirkDiggler/lectern/internal/models"
)

// MessageTone represents the tone of a message
type MessageTone string

const (
	// ToneNeutral is a neutral tone
	ToneNeutral MessageTone = "neutral"

	// ToneFriendly is a warm tone for audiences
	ToneFriendly MessageTone = "friendly"
)

// ErrorType names a user-facing failure
type ErrorType string

const (
	ErrorTypeSessionNotFound  ErrorType = "session_not_found"
	ErrorTypeSessionEnded     ErrorType = "session_ended"
	ErrorTypeNotPresenter     ErrorType = "not_presenter"
	ErrorTypePollNotFound     ErrorType = "poll_not_found"
	ErrorTypePollClosed       ErrorType = "poll_closed"
	ErrorTypeInvalidOption    ErrorType = "invalid_option"
	ErrorTypeQuestionNotFound ErrorType = "question_not_found"
	ErrorTypeEmptyQuestion    ErrorType = "empty_question"
	ErrorTypeQuestionTooLong  ErrorType = "question_too_long"
	ErrorTypeUnknownEmoji     ErrorType = "unknown_emoji"
	ErrorTypeRateLimited      ErrorType = "rate_limited"
	ErrorTypeInvalidInput     ErrorType = "invalid_input"
	ErrorTypeUnknown          ErrorType = "unknown"
)

// GetJoinMessageInput contains parameters for getting a join message
type GetJoinMessageInput struct {
	// UserName is the name of the person joining
	UserName string

	// SessionTitle is the title of the presentation
	SessionTitle string

	// AlreadyJoined is true when the user is attached on another connection
	AlreadyJoined bool

	// PreferredTone is the preferred tone for the message (optional)
	PreferredTone MessageTone
}

// GetJoinMessageOutput contains the result of getting a join message
type GetJoinMessageOutput struct {
	// Message is the generated message
	Message string

	// Tone is the tone of the message
	Tone MessageTone
}

// GetSessionStatusMessageInput is the input for GetSessionStatusMessage
type GetSessionStatusMessageInput struct {
	Session          *models.Session
	ParticipantCount int
	ActivePoll       *models.Poll
	OpenQuestions    int
}

// GetSessionStatusMessageOutput is the output for GetSessionStatusMessage
type GetSessionStatusMessageOutput struct {
	Title   string
	Message string
}

// GetErrorMessageInput contains parameters for getting an error message
type GetErrorMessageInput struct {
	// ErrorType is the type of error, see ErrorTypeOf
	ErrorType ErrorType

	// PreferredTone is the preferred tone for the message (optional)
	PreferredTone MessageTone
}

// GetErrorMessageOutput contains the result of getting an error message
type GetErrorMessageOutput struct {
	// Message is the generated message
	Message string

	// Tone is the tone of the message
	Tone MessageTone
}

// ServiceConfig contains configuration for the messaging service
type ServiceConfig struct {
	// Seed fixes message selection, a time based seed is used when zero
	Seed int64
}
