package broadcast

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/KirkDiggler/lectern/internal/bus"
	"github.com/KirkDiggler/lectern/internal/common/clock"
	"github.com/KirkDiggler/lectern/internal/common/uuid"
	"github.com/KirkDiggler/lectern/internal/models"
	pollRepo "github.com/KirkDiggler/lectern/internal/repositories/poll"
	presenceRepo "github.com/KirkDiggler/lectern/internal/repositories/presence"
	questionRepo "github.com/KirkDiggler/lectern/internal/repositories/question"
	sessionRepo "github.com/KirkDiggler/lectern/internal/repositories/session"
	slideContentRepo "github.com/KirkDiggler/lectern/internal/repositories/slide_content"
)

// service implements the Service interface
type service struct {
	bus              bus.Bus
	sessionRepo      sessionRepo.Repository
	presenceRepo     presenceRepo.Repository
	slideContentRepo slideContentRepo.Repository
	pollRepo         pollRepo.Repository
	questionRepo     questionRepo.Repository
	clock            clock.Clock
	uuidGenerator    uuid.UUID
}

// New creates a new broadcast service
func New(cfg *Config) (*service, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}
	if cfg.Bus == nil {
		return nil, ErrNilBus
	}
	if cfg.SessionRepo == nil {
		return nil, ErrNilSessionRepo
	}
	if cfg.PresenceRepo == nil {
		return nil, ErrNilPresenceRepo
	}
	if cfg.SlideContentRepo == nil {
		return nil, ErrNilSlideContentRepo
	}
	if cfg.PollRepo == nil {
		return nil, ErrNilPollRepo
	}
	if cfg.QuestionRepo == nil {
		return nil, ErrNilQuestionRepo
	}
	if cfg.Clock == nil {
		return nil, ErrNilClock
	}
	if cfg.UUIDGenerator == nil {
		return nil, ErrNilUUIDGenerator
	}

	return &service{
		bus:              cfg.Bus,
		sessionRepo:      cfg.SessionRepo,
		presenceRepo:     cfg.PresenceRepo,
		slideContentRepo: cfg.SlideContentRepo,
		pollRepo:         cfg.PollRepo,
		questionRepo:     cfg.QuestionRepo,
		clock:            cfg.Clock,
		uuidGenerator:    cfg.UUIDGenerator,
	}, nil
}

// Broadcast publishes an event after its change has been stored
func (s *service) Broadcast(ctx context.Context, input *BroadcastInput) (*BroadcastOutput, error) {
	if input == nil || input.Code == "" || input.Type == "" {
		return nil, errors.New("input, code and type cannot be empty")
	}

	eventID := input.EventID
	if eventID == "" {
		eventID = s.uuidGenerator.NewUUID()
	}

	event, err := models.NewEvent(eventID, input.Type, input.Code, input.Payload, s.clock.Now())
	if err != nil {
		return nil, err
	}
	event.SenderID = input.SenderID

	_, err = s.bus.Publish(ctx, &bus.PublishInput{
		Code:  input.Code,
		Event: event,
	})
	if err != nil {
		return nil, err
	}

	return &BroadcastOutput{
		Event: event,
	}, nil
}

// GetState reads every part of the session a follower renders
func (s *service) GetState(ctx context.Context, input *GetStateInput) (*models.SessionState, error) {
	if input == nil || input.Code == "" {
		return nil, errors.New("input and code cannot be empty")
	}

	session, err := s.sessionRepo.GetSession(ctx, &sessionRepo.GetSessionInput{
		Code: input.Code,
	})
	if err != nil {
		if errors.Is(err, sessionRepo.ErrSessionNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}

	participants, err := s.presenceRepo.ListParticipants(ctx, &presenceRepo.ListParticipantsInput{
		SessionCode: input.Code,
	})
	if err != nil {
		return nil, err
	}

	content, err := s.slideContentRepo.GetSlideContent(ctx, &slideContentRepo.GetSlideContentInput{
		SessionCode: input.Code,
		SlideNumber: session.CurrentSlide,
	})
	if err != nil && !errors.Is(err, slideContentRepo.ErrSlideContentNotFound) {
		return nil, err
	}

	polls, err := s.pollRepo.ListPolls(ctx, &pollRepo.ListPollsInput{
		SessionCode: input.Code,
	})
	if err != nil {
		return nil, err
	}

	questions, err := s.questionRepo.ListQuestions(ctx, &questionRepo.ListQuestionsInput{
		SessionCode: input.Code,
	})
	if err != nil {
		return nil, err
	}

	state := &models.SessionState{
		Session:      session,
		Participants: participants.Participants,
		SlideContent: content,
		PollHistory:  []*models.Poll{},
		Questions:    questions.Questions,
	}
	for _, poll := range polls.Polls {
		if poll.IsActive && state.ActivePoll == nil {
			state.ActivePoll = poll
			continue
		}
		if !poll.IsActive {
			state.PollHistory = append(state.PollHistory, poll)
		}
	}

	return state, nil
}

// Subscribe attaches to the session stream, then hands the handler a
// snapshot of the current state ahead of every later event
func (s *service) Subscribe(ctx context.Context, input *SubscribeInput) (*SubscribeOutput, error) {
	if input == nil || input.Code == "" || input.Handler == nil {
		return nil, errors.New("input, code and handler cannot be empty")
	}

	_, err := s.sessionRepo.GetSession(ctx, &sessionRepo.GetSessionInput{
		Code: input.Code,
	})
	if err != nil {
		if errors.Is(err, sessionRepo.ErrSessionNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}

	gate := &replayGate{handler: input.Handler}
	unsubscribe, err := s.bus.Subscribe(ctx, &bus.SubscribeInput{
		Code:    input.Code,
		Handler: gate.deliver,
	})
	if err != nil {
		return nil, err
	}

	// Every event up to seq was published after its change was stored,
	// so the state read below already holds it
	seq, err := s.bus.LastSeq(ctx, input.Code)
	if err != nil {
		unsubscribe()
		return nil, err
	}

	state, err := s.GetState(ctx, &GetStateInput{Code: input.Code})
	if err != nil {
		unsubscribe()
		return nil, err
	}
	state.Seq = seq

	snapshot, err := models.NewEvent(
		fmt.Sprintf("snapshot-%s-%d", input.Code, seq),
		models.EventSnapshot,
		input.Code,
		state,
		s.clock.Now(),
	)
	if err != nil {
		unsubscribe()
		return nil, err
	}
	snapshot.Seq = seq
	gate.open(snapshot)

	return &SubscribeOutput{
		Unsubscribe: unsubscribe,
	}, nil
}

// ExpireSession expires the bus sequence along with the session
func (s *service) ExpireSession(ctx context.Context, code string, ttl time.Duration) error {
	return s.bus.Expire(ctx, code, ttl)
}
