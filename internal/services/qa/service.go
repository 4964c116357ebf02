package qa

import (
	"context"
	"errors"
	"strings"
	"unicode/utf8"

	"github.com/KirkDiggler/lectern/internal/codegen"
	"github.com/KirkDiggler/lectern/internal/common/clock"
	"github.com/KirkDiggler/lectern/internal/common/token"
	"github.com/KirkDiggler/lectern/internal/common/uuid"
	"github.com/KirkDiggler/lectern/internal/models"
	questionRepo "github.com/KirkDiggler/lectern/internal/repositories/question"
	sessionRepo "github.com/KirkDiggler/lectern/internal/repositories/session"
	"github.com/KirkDiggler/lectern/internal/services/broadcast"
	"github.com/rs/zerolog/log"
)

// service implements the Service interface
type service struct {
	sessionRepo   sessionRepo.Repository
	questionRepo  questionRepo.Repository
	broadcaster   broadcast.Service
	tokenIssuer   token.Issuer
	clock         clock.Clock
	uuidGenerator uuid.UUID
}

// New creates a new Q&A service
func New(cfg *Config) (*service, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}
	if cfg.SessionRepo == nil {
		return nil, ErrNilSessionRepo
	}
	if cfg.QuestionRepo == nil {
		return nil, ErrNilQuestionRepo
	}
	if cfg.Broadcaster == nil {
		return nil, ErrNilBroadcaster
	}
	if cfg.TokenIssuer == nil {
		return nil, ErrNilTokenIssuer
	}
	if cfg.Clock == nil {
		return nil, ErrNilClock
	}
	if cfg.UUIDGenerator == nil {
		return nil, ErrNilUUIDGenerator
	}

	return &service{
		sessionRepo:   cfg.SessionRepo,
		questionRepo:  cfg.QuestionRepo,
		broadcaster:   cfg.Broadcaster,
		tokenIssuer:   cfg.TokenIssuer,
		clock:         cfg.Clock,
		uuidGenerator: cfg.UUIDGenerator,
	}, nil
}

// SubmitQuestion stores a new question and announces it. Resubmitting a
// known question id returns the stored question without a second broadcast,
// as long as the same asker sent it.
func (s *service) SubmitQuestion(ctx context.Context, input *SubmitQuestionInput) (*SubmitQuestionOutput, error) {
	if input == nil {
		return nil, ErrInvalidInput
	}

	questionID := strings.TrimSpace(input.QuestionID)
	if questionID != "" && !models.ValidClientID(questionID) {
		return nil, ErrInvalidInput
	}

	text := strings.TrimSpace(input.Text)
	if text == "" {
		return nil, ErrEmptyQuestion
	}
	if utf8.RuneCountInString(text) > models.MaxQuestionLength {
		return nil, ErrQuestionTooLong
	}

	code := codegen.Normalize(input.Code)
	if _, err := s.activeSession(ctx, code); err != nil {
		return nil, err
	}

	askerName := strings.TrimSpace(input.AskerName)
	if askerName == "" {
		askerName = models.AnonymousAsker
	}

	if questionID == "" {
		questionID = s.uuidGenerator.NewUUID()
	}

	question := &models.Question{
		ID:          questionID,
		SessionCode: code,
		Text:        text,
		AskerID:     input.AskerID,
		AskerName:   askerName,
		Upvoters:    []string{},
		CreatedAt:   s.clock.Now(),
	}

	err := s.questionRepo.AddQuestion(ctx, &questionRepo.AddQuestionInput{
		Question: question,
	})
	if err != nil {
		if errors.Is(err, questionRepo.ErrQuestionExists) {
			existing, err := s.getQuestion(ctx, code, questionID)
			if err != nil {
				if errors.Is(err, ErrQuestionNotFound) {
					return nil, ErrQuestionIDTaken
				}
				return nil, err
			}
			if existing.AskerID != input.AskerID {
				return nil, ErrQuestionIDTaken
			}
			return &SubmitQuestionOutput{Question: existing}, nil
		}
		return nil, err
	}

	log.Info().Str("module", "qa").Str("code", code).Str("question_id", question.ID).Msg("question submitted")
	s.broadcast(ctx, code, models.EventQuestion, input.AskerID, question)

	return &SubmitQuestionOutput{
		Question: question,
		Created:  true,
	}, nil
}

// Upvote counts the upvote once and returns the re-sorted questions
func (s *service) Upvote(ctx context.Context, input *UpvoteInput) (*UpvoteOutput, error) {
	if input == nil || strings.TrimSpace(input.UserID) == "" || !models.ValidClientID(input.QuestionID) {
		return nil, ErrInvalidInput
	}

	code := codegen.Normalize(input.Code)
	if _, err := s.activeSession(ctx, code); err != nil {
		return nil, err
	}

	if _, err := s.getQuestion(ctx, code, input.QuestionID); err != nil {
		return nil, err
	}

	upvote, err := s.questionRepo.AddUpvote(ctx, &questionRepo.AddUpvoteInput{
		QuestionID: input.QuestionID,
		UserID:     input.UserID,
	})
	if err != nil {
		if errors.Is(err, questionRepo.ErrQuestionNotFound) {
			return nil, ErrQuestionNotFound
		}
		return nil, err
	}

	if upvote.Recorded {
		s.broadcast(ctx, code, models.EventUpvote, input.UserID, &models.UpvotePayload{
			QuestionID: input.QuestionID,
			UserID:     input.UserID,
		})
	}

	questions, err := s.list(ctx, code)
	if err != nil {
		return nil, err
	}

	return &UpvoteOutput{
		Recorded:  upvote.Recorded,
		Questions: questions,
	}, nil
}

// ToggleAnswered flips the answered flag. Display order does not change.
func (s *service) ToggleAnswered(ctx context.Context, input *ToggleAnsweredInput) (*ToggleAnsweredOutput, error) {
	if input == nil || !models.ValidClientID(input.QuestionID) {
		return nil, ErrInvalidInput
	}

	code := codegen.Normalize(input.Code)
	if input.PresenterToken == "" {
		return nil, ErrNotPresenter
	}
	if err := s.tokenIssuer.Verify(code, input.PresenterToken); err != nil {
		log.Debug().Err(err).Str("module", "qa").Str("code", code).Msg("presenter token rejected")
		return nil, ErrNotPresenter
	}

	if _, err := s.lookup(ctx, code); err != nil {
		return nil, err
	}

	current, err := s.getQuestion(ctx, code, input.QuestionID)
	if err != nil {
		return nil, err
	}

	question, err := s.questionRepo.SetAnswered(ctx, &questionRepo.SetAnsweredInput{
		QuestionID: current.ID,
		IsAnswered: !current.IsAnswered,
	})
	if err != nil {
		if errors.Is(err, questionRepo.ErrQuestionNotFound) {
			return nil, ErrQuestionNotFound
		}
		return nil, err
	}

	s.broadcast(ctx, code, models.EventAnswered, "presenter", &models.AnsweredPayload{
		QuestionID: question.ID,
		IsAnswered: question.IsAnswered,
	})

	return &ToggleAnsweredOutput{
		Question: question,
	}, nil
}

// ListQuestions returns the session's questions in display order
func (s *service) ListQuestions(ctx context.Context, input *ListQuestionsInput) (*ListQuestionsOutput, error) {
	if input == nil {
		return nil, ErrInvalidInput
	}

	code := codegen.Normalize(input.Code)
	if _, err := s.lookup(ctx, code); err != nil {
		return nil, err
	}

	questions, err := s.list(ctx, code)
	if err != nil {
		return nil, err
	}

	return &ListQuestionsOutput{
		Questions: questions,
	}, nil
}

func (s *service) list(ctx context.Context, code string) ([]*models.Question, error) {
	output, err := s.questionRepo.ListQuestions(ctx, &questionRepo.ListQuestionsInput{
		SessionCode: code,
	})
	if err != nil {
		return nil, err
	}
	return output.Questions, nil
}

func (s *service) getQuestion(ctx context.Context, code, questionID string) (*models.Question, error) {
	question, err := s.questionRepo.GetQuestion(ctx, &questionRepo.GetQuestionInput{
		QuestionID: questionID,
	})
	if err != nil {
		if errors.Is(err, questionRepo.ErrQuestionNotFound) {
			return nil, ErrQuestionNotFound
		}
		return nil, err
	}

	if question.SessionCode != code {
		return nil, ErrQuestionNotFound
	}

	return question, nil
}

func (s *service) lookup(ctx context.Context, code string) (*models.Session, error) {
	if !codegen.Valid(code) {
		return nil, ErrSessionNotFound
	}

	session, err := s.sessionRepo.GetSession(ctx, &sessionRepo.GetSessionInput{
		Code: code,
	})
	if err != nil {
		if errors.Is(err, sessionRepo.ErrSessionNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}

	return session, nil
}

func (s *service) activeSession(ctx context.Context, code string) (*models.Session, error) {
	session, err := s.lookup(ctx, code)
	if err != nil {
		return nil, err
	}
	if !session.IsActive {
		return nil, ErrSessionInactive
	}
	return session, nil
}

func (s *service) broadcast(ctx context.Context, code string, eventType models.EventType, senderID string, payload any) {
	_, err := s.broadcaster.Broadcast(ctx, &broadcast.BroadcastInput{
		Code:     code,
		Type:     eventType,
		SenderID: senderID,
		Payload:  payload,
	})
	if err != nil {
		log.Warn().Err(err).Str("module", "qa").Str("code", code).Str("type", string(eventType)).Msg("broadcast failed")
	}
}
