package presence

import (
	"context"
	"errors"
	"strings"

	"github.com/KirkDiggler/lectern/internal/codegen"
	"github.com/KirkDiggler/lectern/internal/common/clock"
	"github.com/KirkDiggler/lectern/internal/models"
	presenceRepo "github.com/KirkDiggler/lectern/internal/repositories/presence"
	sessionRepo "github.com/KirkDiggler/lectern/internal/repositories/session"
	"github.com/KirkDiggler/lectern/internal/services/broadcast"
	"github.com/rs/zerolog/log"
)

// service implements the Service interface
type service struct {
	sessionRepo  sessionRepo.Repository
	presenceRepo presenceRepo.Repository
	broadcaster  broadcast.Service
	clock        clock.Clock
}

// New creates a new presence service
func New(cfg *Config) (*service, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}
	if cfg.SessionRepo == nil {
		return nil, ErrNilSessionRepo
	}
	if cfg.PresenceRepo == nil {
		return nil, ErrNilPresenceRepo
	}
	if cfg.Broadcaster == nil {
		return nil, ErrNilBroadcaster
	}
	if cfg.Clock == nil {
		return nil, ErrNilClock
	}

	return &service{
		sessionRepo:  cfg.SessionRepo,
		presenceRepo: cfg.PresenceRepo,
		broadcaster:  cfg.Broadcaster,
		clock:        cfg.Clock,
	}, nil
}

// Join attaches the user. The color is derived from the user id so every
// follower draws the same user the same way.
func (s *service) Join(ctx context.Context, input *JoinInput) (*JoinOutput, error) {
	if input == nil || strings.TrimSpace(input.UserID) == "" {
		return nil, ErrInvalidInput
	}

	code := codegen.Normalize(input.Code)
	session, err := s.sessionRepo.GetSession(ctx, &sessionRepo.GetSessionInput{
		Code: code,
	})
	if err != nil && !errors.Is(err, sessionRepo.ErrSessionNotFound) {
		return nil, err
	}
	if session == nil || !session.IsActive {
		return &JoinOutput{Success: false}, nil
	}

	userName := strings.TrimSpace(input.UserName)
	if userName == "" {
		userName = GuestName
	}

	participant := &models.Participant{
		UserID:   input.UserID,
		UserName: userName,
		Color:    models.ColorForUser(input.UserID),
		JoinedAt: s.clock.Now(),
	}

	added, err := s.presenceRepo.AddParticipant(ctx, &presenceRepo.AddParticipantInput{
		SessionCode: code,
		Participant: participant,
	})
	if err != nil {
		return nil, err
	}

	participants, err := s.list(ctx, code)
	if err != nil {
		return nil, err
	}

	if added.Added {
		s.announce(ctx, code, participants)
	}

	// A second connection of the same user reports the stored entry
	for _, p := range participants {
		if p.UserID == participant.UserID {
			participant = p
			break
		}
	}

	return &JoinOutput{
		Success:      true,
		Participant:  participant,
		Participants: participants,
	}, nil
}

// Leave detaches one connection of the user
func (s *service) Leave(ctx context.Context, input *LeaveInput) (*LeaveOutput, error) {
	if input == nil || strings.TrimSpace(input.UserID) == "" {
		return nil, ErrInvalidInput
	}

	code := codegen.Normalize(input.Code)
	removed, err := s.presenceRepo.RemoveParticipant(ctx, &presenceRepo.RemoveParticipantInput{
		SessionCode: code,
		UserID:      input.UserID,
		Force:       input.Force,
	})
	if err != nil {
		return nil, err
	}

	participants, err := s.list(ctx, code)
	if err != nil {
		return nil, err
	}

	if removed.Removed {
		s.announce(ctx, code, participants)
	}

	return &LeaveOutput{
		Removed:      removed.Removed,
		Participants: participants,
	}, nil
}

// List returns the participants of a known session
func (s *service) List(ctx context.Context, input *ListInput) (*ListOutput, error) {
	if input == nil {
		return nil, ErrSessionNotFound
	}

	code := codegen.Normalize(input.Code)
	_, err := s.sessionRepo.GetSession(ctx, &sessionRepo.GetSessionInput{
		Code: code,
	})
	if err != nil {
		if errors.Is(err, sessionRepo.ErrSessionNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}

	participants, err := s.list(ctx, code)
	if err != nil {
		return nil, err
	}

	return &ListOutput{
		Participants: participants,
	}, nil
}

func (s *service) list(ctx context.Context, code string) ([]*models.Participant, error) {
	output, err := s.presenceRepo.ListParticipants(ctx, &presenceRepo.ListParticipantsInput{
		SessionCode: code,
	})
	if err != nil {
		return nil, err
	}
	return output.Participants, nil
}

// announce sends the full list so receivers never have to merge deltas
func (s *service) announce(ctx context.Context, code string, participants []*models.Participant) {
	_, err := s.broadcaster.Broadcast(ctx, &broadcast.BroadcastInput{
		Code: code,
		Type: models.EventPresence,
		Payload: &models.PresencePayload{
			Participants: participants,
		},
	})
	if err != nil {
		log.Warn().Err(err).Str("module", "presence").Str("code", code).Msg("presence broadcast failed")
	}
}
