package session

import (
	"time"

	"github.com/KirkDiggler/lectern/internal/codegen"
	"github.com/KirkDiggler/lectern/internal/common/clock"
	"github.com/KirkDiggler/lectern/internal/common/token"
	"github.com/KirkDiggler/lectern/internal/models"
	sessionRepo "github.com/KirkDiggler/lectern/internal/repositories/session"
	slideContentRepo "github.com/KirkDiggler/lectern/internal/repositories/slide_content"
	"github.com/KirkDiggler/lectern/internal/services/broadcast"
)

const (
	// DefaultEndGrace is how long an ended session stays readable
	DefaultEndGrace = 60 * time.Second

	// MaxCodeAttempts bounds retries when a generated code is taken
	MaxCodeAttempts = 10
)

// Config holds configuration for the session service
type Config struct {
	// EndGrace is how long an ended session stays readable, DefaultEndGrace when zero
	EndGrace time.Duration

	// PublicOrigin prefixes follow-along links, e.g. https://lectern.example
	PublicOrigin string

	// Repository dependencies
	SessionRepo      sessionRepo.Repository
	SlideContentRepo slideContentRepo.Repository

	// Expirers are told to expire the session's state when it ends
	Expirers []Expirer

	// Service dependencies
	Broadcaster   broadcast.Service
	CodeGenerator codegen.Generator
	TokenIssuer   token.Issuer
	Clock         clock.Clock
}

type CreateSessionInput struct {
	Title         string
	TotalSlides   int
	PresenterName string
}

type CreateSessionOutput struct {
	Session        *models.Session
	PresenterToken string
	FollowURL      string
}

type GetSessionInput struct {
	Code string
}

type GetSessionOutput struct {
	Session *models.Session
}

type ListActiveSessionsInput struct {
}

type ListActiveSessionsOutput struct {
	Sessions []*models.Session
}

type UpdateSlideInput struct {
	Code           string
	PresenterToken string
	SlideNumber    int

	// Markup is the rendered slide; when empty the slide content is left alone
	Markup string
}

type UpdateSlideOutput struct {
	Session      *models.Session
	SlideContent *models.SlideContent
}

type MoveCursorInput struct {
	Code           string
	PresenterToken string
	X              float64
	Y              float64
}

type MoveCursorOutput struct {
	Cursor *models.CursorPayload
}

type EndSessionInput struct {
	Code           string
	PresenterToken string
}

type EndSessionOutput struct {
	Session *models.Session
}

type VerifyPresenterInput struct {
	Code           string
	PresenterToken string
}
