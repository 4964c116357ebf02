package poll

import (
	"context"
	"errors"
	"strings"

	"github.com/KirkDiggler/lectern/internal/codegen"
	"github.com/KirkDiggler/lectern/internal/common/clock"
	"github.com/KirkDiggler/lectern/internal/common/token"
	"github.com/KirkDiggler/lectern/internal/common/uuid"
	"github.com/KirkDiggler/lectern/internal/models"
	pollRepo "github.com/KirkDiggler/lectern/internal/repositories/poll"
	sessionRepo "github.com/KirkDiggler/lectern/internal/repositories/session"
	"github.com/KirkDiggler/lectern/internal/services/broadcast"
	"github.com/rs/zerolog/log"
)

// service implements the Service interface
type service struct {
	sessionRepo   sessionRepo.Repository
	pollRepo      pollRepo.Repository
	broadcaster   broadcast.Service
	tokenIssuer   token.Issuer
	clock         clock.Clock
	uuidGenerator uuid.UUID
}

// New creates a new poll service
func New(cfg *Config) (*service, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}
	if cfg.SessionRepo == nil {
		return nil, ErrNilSessionRepo
	}
	if cfg.PollRepo == nil {
		return nil, ErrNilPollRepo
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
		pollRepo:      cfg.PollRepo,
		broadcaster:   cfg.Broadcaster,
		tokenIssuer:   cfg.TokenIssuer,
		clock:         cfg.Clock,
		uuidGenerator: cfg.UUIDGenerator,
	}, nil
}

// CreatePoll opens a new poll. Nothing is stored or broadcast when the
// question or options are invalid.
func (s *service) CreatePoll(ctx context.Context, input *CreatePollInput) (*CreatePollOutput, error) {
	if input == nil {
		return nil, ErrInvalidInput
	}

	code := codegen.Normalize(input.Code)
	if err := s.verifyPresenter(code, input.PresenterToken); err != nil {
		return nil, err
	}

	question := strings.TrimSpace(input.Question)
	if question == "" {
		return nil, ErrEmptyQuestion
	}
	options := models.NewPollOptions(input.Options)
	if len(options) < models.MinPollOptions {
		return nil, ErrTooFewOptions
	}

	if _, err := s.activeSession(ctx, code); err != nil {
		return nil, err
	}

	poll := &models.Poll{
		ID:          s.uuidGenerator.NewUUID(),
		SessionCode: code,
		Question:    question,
		Options:     options,
		IsActive:    true,
		CreatedAt:   s.clock.Now(),
	}

	// The repository swaps the active poll in one step, so concurrent creates
	// each displace a different poll and exactly one stays active
	created, err := s.pollRepo.CreatePoll(ctx, &pollRepo.CreatePollInput{Poll: poll})
	if err != nil {
		return nil, err
	}

	output := &CreatePollOutput{}
	if created.PreviousID != "" {
		// The displaced poll already refuses votes; a failed close only
		// leaves its stored flag stale
		closed, err := s.closeDisplaced(ctx, created.PreviousID)
		if err != nil {
			log.Error().Err(err).Str("module", "poll").Str("code", code).Str("poll_id", created.PreviousID).Msg("failed to close displaced poll")
		}
		output.Closed = closed
	}

	log.Info().Str("module", "poll").Str("code", code).Str("poll_id", poll.ID).Int("options", len(options)).Msg("poll created")
	s.broadcast(ctx, code, models.EventPollCreated, "presenter", poll)

	output.Poll = poll
	return output, nil
}

// Vote records the first vote of a user. Repeat votes succeed with
// Recorded false and are not broadcast.
func (s *service) Vote(ctx context.Context, input *VoteInput) (*VoteOutput, error) {
	if input == nil || strings.TrimSpace(input.UserID) == "" || input.PollID == "" {
		return nil, ErrInvalidInput
	}

	code := codegen.Normalize(input.Code)
	if _, err := s.activeSession(ctx, code); err != nil {
		return nil, err
	}

	poll, err := s.getPoll(ctx, code, input.PollID)
	if err != nil {
		return nil, err
	}
	if !poll.IsActive {
		return nil, ErrPollClosed
	}
	if input.OptionIndex < 0 || input.OptionIndex >= len(poll.Options) {
		return nil, ErrOptionOutOfRange
	}

	recorded, err := s.pollRepo.RecordVote(ctx, &pollRepo.RecordVoteInput{
		PollID:      poll.ID,
		OptionIndex: input.OptionIndex,
		UserID:      input.UserID,
	})
	if err != nil {
		if errors.Is(err, pollRepo.ErrPollClosed) {
			return nil, ErrPollClosed
		}
		return nil, err
	}

	if recorded.Recorded {
		s.broadcast(ctx, code, models.EventPollVote, input.UserID, &models.PollVotePayload{
			PollID:      poll.ID,
			OptionIndex: input.OptionIndex,
			UserID:      input.UserID,
		})
	}

	// Reread so tallies reflect every vote stored so far
	updated, err := s.getPoll(ctx, code, poll.ID)
	if err != nil {
		return nil, err
	}

	return &VoteOutput{
		Recorded: recorded.Recorded,
		Poll:     updated,
	}, nil
}

// ClosePoll closes a poll. Closing a closed poll returns it unchanged.
func (s *service) ClosePoll(ctx context.Context, input *ClosePollInput) (*ClosePollOutput, error) {
	if input == nil || input.PollID == "" {
		return nil, ErrInvalidInput
	}

	code := codegen.Normalize(input.Code)
	if err := s.verifyPresenter(code, input.PresenterToken); err != nil {
		return nil, err
	}

	if _, err := s.lookup(ctx, code); err != nil {
		return nil, err
	}

	poll, err := s.getPoll(ctx, code, input.PollID)
	if err != nil {
		return nil, err
	}

	if !poll.IsActive {
		return &ClosePollOutput{Poll: poll}, nil
	}

	closed, err := s.close(ctx, poll)
	if err != nil {
		return nil, err
	}

	return &ClosePollOutput{Poll: closed}, nil
}

// ListPolls splits the session's polls into the active one and history
func (s *service) ListPolls(ctx context.Context, input *ListPollsInput) (*ListPollsOutput, error) {
	if input == nil {
		return nil, ErrInvalidInput
	}

	code := codegen.Normalize(input.Code)
	if _, err := s.lookup(ctx, code); err != nil {
		return nil, err
	}

	polls, err := s.pollRepo.ListPolls(ctx, &pollRepo.ListPollsInput{
		SessionCode: code,
	})
	if err != nil {
		return nil, err
	}

	output := &ListPollsOutput{
		History: make([]*models.Poll, 0, len(polls.Polls)),
	}
	for _, poll := range polls.Polls {
		if poll.IsActive && output.ActivePoll == nil {
			output.ActivePoll = poll
			continue
		}
		output.History = append(output.History, poll)
	}

	return output, nil
}

func (s *service) close(ctx context.Context, poll *models.Poll) (*models.Poll, error) {
	poll.Close(s.clock.Now())

	if err := s.pollRepo.ClosePoll(ctx, &pollRepo.ClosePollInput{Poll: poll}); err != nil {
		return nil, err
	}

	log.Info().Str("module", "poll").Str("code", poll.SessionCode).Str("poll_id", poll.ID).Int("votes", poll.TotalVotes).Msg("poll closed")
	s.broadcast(ctx, poll.SessionCode, models.EventPollClosed, "presenter", poll)

	return poll, nil
}

// closeDisplaced finishes closing a poll that a newer poll replaced
func (s *service) closeDisplaced(ctx context.Context, pollID string) (*models.Poll, error) {
	previous, err := s.pollRepo.GetPoll(ctx, &pollRepo.GetPollInput{
		PollID: pollID,
	})
	if err != nil {
		if errors.Is(err, pollRepo.ErrPollNotFound) {
			return nil, nil
		}
		return nil, err
	}
	if !previous.IsActive {
		return previous, nil
	}

	return s.close(ctx, previous)
}

func (s *service) getPoll(ctx context.Context, code, pollID string) (*models.Poll, error) {
	poll, err := s.pollRepo.GetPoll(ctx, &pollRepo.GetPollInput{
		PollID: pollID,
	})
	if err != nil {
		if errors.Is(err, pollRepo.ErrPollNotFound) {
			return nil, ErrPollNotFound
		}
		return nil, err
	}

	// Poll ids are global, so a poll of another session is not found here
	if poll.SessionCode != code {
		return nil, ErrPollNotFound
	}

	return poll, nil
}

func (s *service) verifyPresenter(code, presenterToken string) error {
	if presenterToken == "" {
		return ErrNotPresenter
	}
	if err := s.tokenIssuer.Verify(code, presenterToken); err != nil {
		log.Debug().Err(err).Str("module", "poll").Str("code", code).Msg("presenter token rejected")
		return ErrNotPresenter
	}
	return nil
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
		log.Warn().Err(err).Str("module", "poll").Str("code", code).Str("type", string(eventType)).Msg("broadcast failed")
	}
}
