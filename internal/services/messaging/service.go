package messaging

import (
	"context"
	"errors"
	"fmt"
	"math/rand"
	"strings"
	"sync"
	"time"

	"github.com/KirkDiggler/lectern/internal/services/broadcast"
	"github.com/KirkDiggler/lectern/internal/services/poll"
	"github.com/KirkDiggler/lectern/internal/services/presence"
	"github.com/KirkDiggler/lectern/internal/services/qa"
	"github.com/KirkDiggler/lectern/internal/services/reaction"
	"github.com/KirkDiggler/lectern/internal/services/session"
)

// SessionNotFoundMessage is shown whenever a code does not resolve
const SessionNotFoundMessage = "We couldn't find that session. Check the code and try again."

// service implements the Service interface
type service struct {
	// Random number generator for selecting random messages
	mu   sync.Mutex
	rand *rand.Rand
}

// NewService creates a new messaging service
func NewService(config *ServiceConfig) (Service, error) {
	seed := time.Now().UnixNano()
	if config != nil && config.Seed != 0 {
		seed = config.Seed
	}

	return &service{
		rand: rand.New(rand.NewSource(seed)),
	}, nil
}

// GetJoinMessage returns a greeting for a new follower
func (s *service) GetJoinMessage(ctx context.Context, input *GetJoinMessageInput) (*GetJoinMessageOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	tone := input.PreferredTone
	if tone == "" {
		tone = ToneFriendly
	}

	name := strings.TrimSpace(input.UserName)
	if name == "" {
		name = "there"
	}
	title := strings.TrimSpace(input.SessionTitle)
	if title == "" {
		title = "the session"
	}

	var messages []string
	if input.AlreadyJoined {
		messages = []string{
			fmt.Sprintf("Welcome back, %s! You're already following %s.", name, title),
			fmt.Sprintf("%s, you're following %s in another tab too.", name, title),
		}
	} else if tone == ToneNeutral {
		messages = []string{
			fmt.Sprintf("You joined %s.", title),
		}
	} else {
		messages = []string{
			fmt.Sprintf("Welcome, %s! Slides from %s will follow along here.", name, title),
			fmt.Sprintf("Hi %s, you're in. Polls and Q&A for %s show up here.", name, title),
			fmt.Sprintf("Glad you're here, %s! Got a question? Ask it anytime during %s.", name, title),
		}
	}

	return &GetJoinMessageOutput{
		Message: s.pick(messages),
		Tone:    tone,
	}, nil
}

// GetSessionStatusMessage summarises a session for chat surfaces
func (s *service) GetSessionStatusMessage(ctx context.Context, input *GetSessionStatusMessageInput) (*GetSessionStatusMessageOutput, error) {
	if input == nil || input.Session == nil {
		return nil, errors.New("input and session cannot be nil")
	}
	sess := input.Session

	if !sess.IsActive {
		return &GetSessionStatusMessageOutput{
			Title:   sess.Title,
			Message: "This session has ended. Thanks for following along!",
		}, nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Slide %d of %d", sess.CurrentSlide+1, sess.TotalSlides)

	switch input.ParticipantCount {
	case 0:
		b.WriteString(", nobody following yet")
	case 1:
		b.WriteString(", 1 person following")
	default:
		fmt.Fprintf(&b, ", %d people following", input.ParticipantCount)
	}

	if input.ActivePoll != nil {
		fmt.Fprintf(&b, ". Poll open: %q (%d votes)", input.ActivePoll.Question, input.ActivePoll.TotalVotes)
	}
	if input.OpenQuestions > 0 {
		fmt.Fprintf(&b, ". %d unanswered questions", input.OpenQuestions)
	}
	b.WriteString(".")

	return &GetSessionStatusMessageOutput{
		Title:   sess.Title,
		Message: b.String(),
	}, nil
}

// GetErrorMessage returns a user-friendly error message
func (s *service) GetErrorMessage(ctx context.Context, input *GetErrorMessageInput) (*GetErrorMessageOutput, error) {
	if input == nil {
		return nil, errors.New("input cannot be nil")
	}

	tone := input.PreferredTone
	if tone == "" {
		tone = ToneFriendly
	}

	var messages []string
	switch input.ErrorType {
	case ErrorTypeSessionNotFound:
		messages = []string{SessionNotFoundMessage}
	case ErrorTypeSessionEnded:
		messages = []string{
			"This session has ended. Thanks for following along!",
			"The presenter has wrapped up this session.",
		}
	case ErrorTypeNotPresenter:
		messages = []string{
			"Only the presenter can do that.",
		}
	case ErrorTypePollNotFound:
		messages = []string{
			"That poll isn't part of this session.",
		}
	case ErrorTypePollClosed:
		messages = []string{
			"Voting has closed for this poll.",
			"Too late, this poll is closed.",
		}
	case ErrorTypeInvalidOption:
		messages = []string{
			"That option isn't on the ballot.",
		}
	case ErrorTypeQuestionNotFound:
		messages = []string{
			"We couldn't find that question.",
		}
	case ErrorTypeEmptyQuestion:
		messages = []string{
			"Type a question before sending.",
			"Your question looks empty.",
		}
	case ErrorTypeQuestionTooLong:
		messages = []string{
			"That question is a bit long. Try trimming it to 500 characters.",
		}
	case ErrorTypeUnknownEmoji:
		messages = []string{
			"That reaction isn't available here.",
		}
	case ErrorTypeRateLimited:
		messages = []string{
			"Easy there! Give your reactions a moment.",
			"Whoa, that's a lot of reactions. Try again in a few seconds.",
		}
	case ErrorTypeInvalidInput:
		messages = []string{
			"Something about that request didn't look right.",
		}
	default:
		messages = []string{
			"Something went wrong. Try again in a moment.",
			"We hit a snag. Please try again.",
		}
	}

	if tone == ToneNeutral {
		messages = messages[:1]
	}

	return &GetErrorMessageOutput{
		Message: s.pick(messages),
		Tone:    tone,
	}, nil
}

func (s *service) pick(messages []string) string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return messages[s.rand.Intn(len(messages))]
}

// ErrorTypeOf maps service errors onto user-facing error types
func ErrorTypeOf(err error) ErrorType {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, session.ErrSessionNotFound),
		errors.Is(err, poll.ErrSessionNotFound),
		errors.Is(err, qa.ErrSessionNotFound),
		errors.Is(err, reaction.ErrSessionNotFound),
		errors.Is(err, presence.ErrSessionNotFound),
		errors.Is(err, broadcast.ErrSessionNotFound):
		return ErrorTypeSessionNotFound
	case errors.Is(err, session.ErrSessionInactive),
		errors.Is(err, poll.ErrSessionInactive),
		errors.Is(err, qa.ErrSessionInactive),
		errors.Is(err, reaction.ErrSessionInactive):
		return ErrorTypeSessionEnded
	case errors.Is(err, session.ErrNotPresenter),
		errors.Is(err, poll.ErrNotPresenter),
		errors.Is(err, qa.ErrNotPresenter):
		return ErrorTypeNotPresenter
	case errors.Is(err, poll.ErrPollNotFound):
		return ErrorTypePollNotFound
	case errors.Is(err, poll.ErrPollClosed):
		return ErrorTypePollClosed
	case errors.Is(err, poll.ErrOptionOutOfRange):
		return ErrorTypeInvalidOption
	case errors.Is(err, qa.ErrQuestionNotFound):
		return ErrorTypeQuestionNotFound
	case errors.Is(err, qa.ErrEmptyQuestion),
		errors.Is(err, poll.ErrEmptyQuestion):
		return ErrorTypeEmptyQuestion
	case errors.Is(err, qa.ErrQuestionTooLong):
		return ErrorTypeQuestionTooLong
	case errors.Is(err, reaction.ErrUnknownEmoji):
		return ErrorTypeUnknownEmoji
	case errors.Is(err, reaction.ErrRateLimited):
		return ErrorTypeRateLimited
	case errors.Is(err, session.ErrInvalidInput),
		errors.Is(err, session.ErrSlideOutOfRange),
		errors.Is(err, poll.ErrInvalidInput),
		errors.Is(err, poll.ErrTooFewOptions),
		errors.Is(err, qa.ErrInvalidInput),
		errors.Is(err, qa.ErrQuestionIDTaken),
		errors.Is(err, reaction.ErrInvalidInput),
		errors.Is(err, reaction.ErrInvalidID),
		errors.Is(err, reaction.ErrInvalidPosition),
		errors.Is(err, presence.ErrInvalidInput):
		return ErrorTypeInvalidInput
	default:
		return ErrorTypeUnknown
	}
}
