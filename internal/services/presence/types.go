package presence

import (
	"github.com/KirkDiggler/lectern/internal/common/clock"
	"github.com/KirkDiggler/lectern/internal/models"
	presenceRepo "github.com/KirkDiggler/lectern/internal/repositories/presence"
	sessionRepo "github.com/KirkDiggler/lectern/internal/repositories/session"
	"github.com/KirkDiggler/lectern/internal/services/broadcast"
)

// GuestName is shown for participants who join without a name
const GuestName = "Guest"

// Config holds configuration for the presence service
type Config struct {
	// Repository dependencies
	SessionRepo  sessionRepo.Repository
	PresenceRepo presenceRepo.Repository

	// Service dependencies
	Broadcaster broadcast.Service
	Clock       clock.Clock
}

type JoinInput struct {
	Code     string
	UserID   string
	UserName string
}

type JoinOutput struct {
	// Success is false when the session is unknown or has ended
	Success      bool
	Participant  *models.Participant
	Participants []*models.Participant
}

type LeaveInput struct {
	Code   string
	UserID string

	// Force removes the user even if other connections remain
	Force bool
}

type LeaveOutput struct {
	Removed      bool
	Participants []*models.Participant
}

type ListInput struct {
	Code string
}

type ListOutput struct {
	Participants []*models.Participant
}
