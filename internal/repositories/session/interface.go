package session

//go:generate mockgen -package=mocks -destination=mocks/mock_repository.go github.com/KirkDiggler/lectern/internal/repositories/session Repository

import (
	"context"
	"time"

	"github.com/KirkDiggler/lectern/internal/models"
)

// Repository defines the interface for session persistence
type Repository interface {
	// CreateSession stores a new session, failing with ErrCodeTaken if the code is in use
	CreateSession(ctx context.Context, input *CreateSessionInput) error

	// GetSession retrieves a session by its normalized code
	GetSession(ctx context.Context, input *GetSessionInput) (*models.Session, error)

	// UpdateSession atomically applies a change to the stored session,
	// keeping any expiry already set
	UpdateSession(ctx context.Context, input *UpdateSessionInput) (*models.Session, error)

	// ListActiveSessions retrieves every session that has not been ended
	ListActiveSessions(ctx context.Context, input *ListActiveSessionsInput) (*ListActiveSessionsOutput, error)

	// ExpireSession schedules the session's keys for deletion after ttl
	ExpireSession(ctx context.Context, code string, ttl time.Duration) error
}
