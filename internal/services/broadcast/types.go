package broadcast

import (
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

// Config holds configuration for the broadcast service
type Config struct {
	Bus bus.Bus

	// Repository dependencies
	SessionRepo      sessionRepo.Repository
	PresenceRepo     presenceRepo.Repository
	SlideContentRepo slideContentRepo.Repository
	PollRepo         pollRepo.Repository
	QuestionRepo     questionRepo.Repository

	// Service dependencies
	Clock         clock.Clock
	UUIDGenerator uuid.UUID
}

// BroadcastInput describes one event to publish
type BroadcastInput struct {
	Code     string
	Type     models.EventType
	SenderID string
	Payload  any

	// EventID overrides the generated id, so a client's own echo can be recognised
	EventID string
}

type BroadcastOutput struct {
	Event *models.Event
}

type GetStateInput struct {
	Code string
}

type SubscribeInput struct {
	Code    string
	Handler bus.Handler
}

type SubscribeOutput struct {
	// Unsubscribe stops delivery before returning
	Unsubscribe func()
}
