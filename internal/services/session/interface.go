package session

//go:generate mockgen -package=mocks -destination=mocks/mock_service.go github.com/KirkDiggler/lectern/internal/services/session Service

import (
	"context"
	"time"
)

// Service defines the interface for the session registry
type Service interface {
	// CreateSession starts a session under a fresh join code
	CreateSession(ctx context.Context, input *CreateSessionInput) (*CreateSessionOutput, error)

	// GetSession looks a session up by a case-insensitive code
	GetSession(ctx context.Context, input *GetSessionInput) (*GetSessionOutput, error)

	// ListActiveSessions returns every session that has not ended
	ListActiveSessions(ctx context.Context, input *ListActiveSessionsInput) (*ListActiveSessionsOutput, error)

	// UpdateSlide moves the presenter to a slide and projects its markup
	UpdateSlide(ctx context.Context, input *UpdateSlideInput) (*UpdateSlideOutput, error)

	// MoveCursor relays the presenter's pointer to followers
	MoveCursor(ctx context.Context, input *MoveCursorInput) (*MoveCursorOutput, error)

	// EndSession ends the session and schedules it to be forgotten
	EndSession(ctx context.Context, input *EndSessionInput) (*EndSessionOutput, error)

	// VerifyPresenter checks a presenter token against a session
	VerifyPresenter(ctx context.Context, input *VerifyPresenterInput) error
}

// Expirer is anything holding per-session state that must expire with it
type Expirer interface {
	ExpireSession(ctx context.Context, code string, ttl time.Duration) error
}
