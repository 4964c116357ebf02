package bus

//go:generate mockgen -package=mocks -destination=mocks/mock_bus.go github.com/KirkDiggler/lectern/internal/bus Bus

import (
	"context"
	"time"

	"github.com/KirkDiggler/lectern/internal/models"
)

// Handler receives events of one session in publish order
type Handler func(event *models.Event)

// Bus fans events of a session out to every subscriber of that session
type Bus interface {
	// Publish assigns the event the next sequence number of its session and
	// delivers it
	Publish(ctx context.Context, input *PublishInput) (*PublishOutput, error)

	// Subscribe delivers every event published after it returns. The
	// returned func stops delivery before it returns and must not be
	// called from inside the handler.
	Subscribe(ctx context.Context, input *SubscribeInput) (func(), error)

	// LastSeq is the sequence number of the session's latest event, 0 before any
	LastSeq(ctx context.Context, code string) (int64, error)

	// Expire drops the session's sequence after ttl
	Expire(ctx context.Context, code string, ttl time.Duration) error
}
