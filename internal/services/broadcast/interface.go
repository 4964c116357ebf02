package broadcast

//go:generate mockgen -package=mocks -destination=mocks/mock_service.go github.com/KirkDiggler/lectern/internal/services/broadcast Service

import (
	"context"
	"time"

	"github.com/KirkDiggler/lectern/internal/models"
)

// Service publishes session events and hands new subscribers the current state
type Service interface {
	// Broadcast wraps the payload in an event and publishes it to the session
	Broadcast(ctx context.Context, input *BroadcastInput) (*BroadcastOutput, error)

	// GetState assembles the current SessionState from storage
	GetState(ctx context.Context, input *GetStateInput) (*models.SessionState, error)

	// Subscribe streams a session's events, starting with its snapshot
	Subscribe(ctx context.Context, input *SubscribeInput) (*SubscribeOutput, error)

	// ExpireSession drops the session's bus state after ttl
	ExpireSession(ctx context.Context, code string, ttl time.Duration) error
}
