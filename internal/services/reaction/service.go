package reaction

import (
	"context"
	"errors"
	"strings"

	"github.com/KirkDiggler/lectern/internal/codegen"
	"github.com/KirkDiggler/lectern/internal/common/clock"
	"github.com/KirkDiggler/lectern/internal/common/uuid"
	"github.com/KirkDiggler/lectern/internal/models"
	sessionRepo "github.com/KirkDiggler/lectern/internal/repositories/session"
	"github.com/KirkDiggler/lectern/internal/services/broadcast"
	"github.com/rs/zerolog/log"
)

// service implements the Service interface
type service struct {
	sessionRepo   sessionRepo.Repository
	broadcaster   broadcast.Service
	clock         clock.Clock
	uuidGenerator uuid.UUID
	limiter       rateLimiter
}

// New creates a new reaction service
func New(cfg *Config) (*service, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}
	if cfg.SessionRepo == nil {
		return nil, ErrNilSessionRepo
	}
	if cfg.Broadcaster == nil {
		return nil, ErrNilBroadcaster
	}
	if cfg.Clock == nil {
		return nil, ErrNilClock
	}
	if cfg.UUIDGenerator == nil {
		return nil, ErrNilUUIDGenerator
	}

	limit := cfg.RateLimit
	if limit <= 0 {
		limit = DefaultRateLimit
	}
	window := cfg.RateWindow
	if window <= 0 {
		window = DefaultRateWindow
	}

	var limiter rateLimiter = newLimiter(limit, window, cfg.Clock)
	if cfg.RedisClient != nil {
		limiter = newRedisLimiter(cfg.RedisClient, limit, window, cfg.Clock)
	}

	return &service{
		sessionRepo:   cfg.SessionRepo,
		broadcaster:   cfg.Broadcaster,
		clock:         cfg.Clock,
		uuidGenerator: cfg.UUIDGenerator,
		limiter:       limiter,
	}, nil
}

// Send validates and broadcasts a reaction. The event id is the reaction
// id, which is how the sender spots its own echo.
func (s *service) Send(ctx context.Context, input *SendInput) (*SendOutput, error) {
	if input == nil || strings.TrimSpace(input.UserID) == "" {
		return nil, ErrInvalidInput
	}
	if !models.IsAllowedEmoji(input.Emoji) {
		return nil, ErrUnknownEmoji
	}
	reactionID := strings.TrimSpace(input.ReactionID)
	if reactionID != "" && !models.ValidClientID(reactionID) {
		return nil, ErrInvalidID
	}
	if !inUnitRange(input.X) || !inUnitRange(input.Y) {
		return nil, ErrInvalidPosition
	}

	code := codegen.Normalize(input.Code)
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
	if !session.IsActive {
		return nil, ErrSessionInactive
	}

	allowed, err := s.limiter.allow(ctx, code+":"+input.UserID)
	if err != nil {
		return nil, err
	}
	if !allowed {
		log.Debug().Str("module", "reaction").Str("code", code).Str("user_id", input.UserID).Msg("reaction rate limited")
		return nil, ErrRateLimited
	}

	if reactionID == "" {
		reactionID = s.uuidGenerator.NewUUID()
	}

	reaction := &models.Reaction{
		ID:       reactionID,
		Emoji:    models.Emoji(input.Emoji),
		X:        input.X,
		Y:        input.Y,
		UserID:   input.UserID,
		UserName: input.UserName,
		SentAt:   s.clock.Now(),
	}

	_, err = s.broadcaster.Broadcast(ctx, &broadcast.BroadcastInput{
		Code:     code,
		Type:     models.EventReaction,
		SenderID: input.UserID,
		EventID:  reaction.ID,
		Payload:  reaction,
	})
	if err != nil {
		log.Warn().Err(err).Str("module", "reaction").Str("code", code).Msg("broadcast failed")
	}

	return &SendOutput{
		Reaction: reaction,
	}, nil
}

// inUnitRange is false for NaN as well as out of range values
func inUnitRange(v float64) bool {
	return v >= 0 && v <= 1
}
