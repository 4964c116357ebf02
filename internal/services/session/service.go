package session

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/KirkDiggler/lectern/internal/codegen"
	"github.com/KirkDiggler/lectern/internal/common/clock"
	"github.com/KirkDiggler/lectern/internal/common/token"
	"github.com/KirkDiggler/lectern/internal/models"
	"github.com/KirkDiggler/lectern/internal/projector"
	sessionRepo "github.com/KirkDiggler/lectern/internal/repositories/session"
	slideContentRepo "github.com/KirkDiggler/lectern/internal/repositories/slide_content"
	"github.com/KirkDiggler/lectern/internal/services/broadcast"
	"github.com/rs/zerolog/log"
)

// service implements the Service interface
type service struct {
	endGrace         time.Duration
	publicOrigin     string
	sessionRepo      sessionRepo.Repository
	slideContentRepo slideContentRepo.Repository
	expirers         []Expirer
	broadcaster      broadcast.Service
	codeGenerator    codegen.Generator
	tokenIssuer      token.Issuer
	clock            clock.Clock
}

// New creates a new session service
func New(cfg *Config) (*service, error) {
	if cfg == nil {
		return nil, ErrNilConfig
	}
	if cfg.SessionRepo == nil {
		return nil, ErrNilSessionRepo
	}
	if cfg.SlideContentRepo == nil {
		return nil, ErrNilSlideContentRepo
	}
	if cfg.Broadcaster == nil {
		return nil, ErrNilBroadcaster
	}
	if cfg.CodeGenerator == nil {
		return nil, ErrNilCodeGenerator
	}
	if cfg.TokenIssuer == nil {
		return nil, ErrNilTokenIssuer
	}
	if cfg.Clock == nil {
		return nil, ErrNilClock
	}

	endGrace := cfg.EndGrace
	if endGrace <= 0 {
		endGrace = DefaultEndGrace
	}

	return &service{
		endGrace:         endGrace,
		publicOrigin:     strings.TrimRight(cfg.PublicOrigin, "/"),
		sessionRepo:      cfg.SessionRepo,
		slideContentRepo: cfg.SlideContentRepo,
		expirers:         cfg.Expirers,
		broadcaster:      cfg.Broadcaster,
		codeGenerator:    cfg.CodeGenerator,
		tokenIssuer:      cfg.TokenIssuer,
		clock:            cfg.Clock,
	}, nil
}

// CreateSession stores a new session under the first free generated code
func (s *service) CreateSession(ctx context.Context, input *CreateSessionInput) (*CreateSessionOutput, error) {
	if input == nil {
		return nil, ErrInvalidInput
	}

	title := strings.TrimSpace(input.Title)
	if title == "" || input.TotalSlides < 1 {
		return nil, ErrInvalidInput
	}

	session := &models.Session{
		Title:         title,
		TotalSlides:   input.TotalSlides,
		CurrentSlide:  0,
		IsActive:      true,
		StartedAt:     s.clock.Now(),
		PresenterName: strings.TrimSpace(input.PresenterName),
	}

	created := false
	for attempt := 0; attempt < MaxCodeAttempts; attempt++ {
		session.Code = s.codeGenerator.Generate()

		err := s.sessionRepo.CreateSession(ctx, &sessionRepo.CreateSessionInput{
			Session: session,
		})
		if errors.Is(err, sessionRepo.ErrCodeTaken) {
			continue
		}
		if err != nil {
			return nil, err
		}

		created = true
		break
	}
	if !created {
		return nil, ErrCodeSpaceExhausted
	}

	presenterToken, err := s.tokenIssuer.Issue(session.Code)
	if err != nil {
		return nil, err
	}

	// Open the stream on the starting slide
	s.broadcast(ctx, session.Code, models.EventSlideChange, &models.SlideChangePayload{
		CurrentSlide: session.CurrentSlide,
		TotalSlides:  session.TotalSlides,
	})

	log.Info().Str("module", "session").Str("code", session.Code).Str("title", session.Title).Msg("session created")

	return &CreateSessionOutput{
		Session:        session,
		PresenterToken: presenterToken,
		FollowURL:      s.followURL(session.Code),
	}, nil
}

// GetSession normalizes the code before looking it up
func (s *service) GetSession(ctx context.Context, input *GetSessionInput) (*GetSessionOutput, error) {
	if input == nil {
		return nil, ErrSessionNotFound
	}

	session, err := s.lookup(ctx, input.Code)
	if err != nil {
		return nil, err
	}

	return &GetSessionOutput{
		Session: session,
	}, nil
}

// ListActiveSessions returns all sessions still running
func (s *service) ListActiveSessions(ctx context.Context, input *ListActiveSessionsInput) (*ListActiveSessionsOutput, error) {
	output, err := s.sessionRepo.ListActiveSessions(ctx, &sessionRepo.ListActiveSessionsInput{})
	if err != nil {
		return nil, err
	}

	return &ListActiveSessionsOutput{
		Sessions: output.Sessions,
	}, nil
}

// UpdateSlide moves the session to a slide, stores its projected content and
// tells every follower
func (s *service) UpdateSlide(ctx context.Context, input *UpdateSlideInput) (*UpdateSlideOutput, error) {
	if input == nil {
		return nil, ErrInvalidInput
	}

	session, err := s.activePresenterSession(ctx, input.Code, input.PresenterToken)
	if err != nil {
		return nil, err
	}

	if !session.HasSlide(input.SlideNumber) {
		return nil, ErrSlideOutOfRange
	}

	// EndSession may have run since the lookup
	session, err = s.sessionRepo.UpdateSession(ctx, &sessionRepo.UpdateSessionInput{
		Code: session.Code,
		Apply: func(current *models.Session) error {
			if !current.IsActive {
				return ErrSessionInactive
			}
			current.CurrentSlide = input.SlideNumber
			return nil
		},
	})
	if err != nil {
		if errors.Is(err, sessionRepo.ErrSessionNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}

	var content *models.SlideContent
	if strings.TrimSpace(input.Markup) != "" {
		content = projector.Parse(input.Markup, input.SlideNumber)
		err = s.slideContentRepo.SaveSlideContent(ctx, &slideContentRepo.SaveSlideContentInput{
			SessionCode: session.Code,
			Content:     content,
		})
		if err != nil {
			return nil, err
		}
	}

	s.broadcast(ctx, session.Code, models.EventSlideChange, &models.SlideChangePayload{
		CurrentSlide: session.CurrentSlide,
		TotalSlides:  session.TotalSlides,
	})
	if content != nil {
		s.broadcast(ctx, session.Code, models.EventSlideContent, content)
	}

	return &UpdateSlideOutput{
		Session:      session,
		SlideContent: content,
	}, nil
}

// MoveCursor relays the pointer, clamped to slide coordinates
func (s *service) MoveCursor(ctx context.Context, input *MoveCursorInput) (*MoveCursorOutput, error) {
	if input == nil {
		return nil, ErrInvalidInput
	}

	session, err := s.activePresenterSession(ctx, input.Code, input.PresenterToken)
	if err != nil {
		return nil, err
	}

	cursor := &models.CursorPayload{
		X: clamp(input.X),
		Y: clamp(input.Y),
	}
	s.broadcast(ctx, session.Code, models.EventCursor, cursor)

	return &MoveCursorOutput{
		Cursor: cursor,
	}, nil
}

// EndSession marks the session inactive, sends the final state, then lets
// every store forget the session after the grace window
func (s *service) EndSession(ctx context.Context, input *EndSessionInput) (*EndSessionOutput, error) {
	if input == nil {
		return nil, ErrInvalidInput
	}

	if err := s.VerifyPresenter(ctx, &VerifyPresenterInput{Code: input.Code, PresenterToken: input.PresenterToken}); err != nil {
		return nil, err
	}

	session, err := s.lookup(ctx, input.Code)
	if err != nil {
		return nil, err
	}

	// Ending twice is harmless
	ended := false
	now := s.clock.Now()
	session, err = s.sessionRepo.UpdateSession(ctx, &sessionRepo.UpdateSessionInput{
		Code: session.Code,
		Apply: func(current *models.Session) error {
			ended = current.End(now)
			return nil
		},
	})
	if err != nil {
		if errors.Is(err, sessionRepo.ErrSessionNotFound) {
			return nil, ErrSessionNotFound
		}
		return nil, err
	}
	if !ended {
		return &EndSessionOutput{
			Session: session,
		}, nil
	}

	s.broadcast(ctx, session.Code, models.EventSessionEnded, session)

	if err := s.sessionRepo.ExpireSession(ctx, session.Code, s.endGrace); err != nil {
		return nil, err
	}
	for _, expirer := range s.expirers {
		if err := expirer.ExpireSession(ctx, session.Code, s.endGrace); err != nil {
			return nil, err
		}
	}

	log.Info().Str("module", "session").Str("code", session.Code).Dur("grace", s.endGrace).Msg("session ended")

	return &EndSessionOutput{
		Session: session,
	}, nil
}

// VerifyPresenter maps token failures to ErrNotPresenter
func (s *service) VerifyPresenter(ctx context.Context, input *VerifyPresenterInput) error {
	if input == nil || input.PresenterToken == "" {
		return ErrNotPresenter
	}

	if err := s.tokenIssuer.Verify(codegen.Normalize(input.Code), input.PresenterToken); err != nil {
		log.Debug().Err(err).Str("module", "session").Str("code", input.Code).Msg("presenter token rejected")
		return ErrNotPresenter
	}

	return nil
}

func (s *service) lookup(ctx context.Context, code string) (*models.Session, error) {
	code = codegen.Normalize(code)
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

func (s *service) activePresenterSession(ctx context.Context, code, presenterToken string) (*models.Session, error) {
	if err := s.VerifyPresenter(ctx, &VerifyPresenterInput{Code: code, PresenterToken: presenterToken}); err != nil {
		return nil, err
	}

	session, err := s.lookup(ctx, code)
	if err != nil {
		return nil, err
	}

	if !session.IsActive {
		return nil, ErrSessionInactive
	}

	return session, nil
}

// broadcast publishes and only logs failures: the stored change stands and
// followers catch up when they next subscribe
func (s *service) broadcast(ctx context.Context, code string, eventType models.EventType, payload any) {
	_, err := s.broadcaster.Broadcast(ctx, &broadcast.BroadcastInput{
		Code:     code,
		Type:     eventType,
		SenderID: "presenter",
		Payload:  payload,
	})
	if err != nil {
		log.Warn().Err(err).Str("module", "session").Str("code", code).Str("type", string(eventType)).Msg("broadcast failed")
	}
}

func (s *service) followURL(code string) string {
	return s.publicOrigin + "/follow/" + code
}

func clamp(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
