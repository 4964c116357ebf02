package reaction

import (
	"time"

	"github.com/KirkDiggler/lectern/internal/common/clock"
	"github.com/KirkDiggler/lectern/internal/common/uuid"
	"github.com/KirkDiggler/lectern/internal/models"
	sessionRepo "github.com/KirkDiggler/lectern/internal/repositories/session"
	"github.com/KirkDiggler/lectern/internal/services/broadcast"
	"github.com/redis/go-redis/v9"
)

const (
	// DefaultRateLimit is how many reactions one user may send per window
	DefaultRateLimit = 10

	// DefaultRateWindow is the sliding window of the rate limit
	DefaultRateWindow = 5 * time.Second
)

// Config holds configuration for the reaction service
type Config struct {
	// RateLimit and RateWindow bound reactions per user and session,
	// DefaultRateLimit per DefaultRateWindow when zero
	RateLimit  int
	RateWindow time.Duration

	// RedisClient backs the rate limit so it holds across replicas.
	// Without it the window is kept in process.
	RedisClient *redis.Client

	// Repository dependencies
	SessionRepo sessionRepo.Repository

	// Service dependencies
	Broadcaster   broadcast.Service
	Clock         clock.Clock
	UUIDGenerator uuid.UUID
}

type SendInput struct {
	Code string

	// ReactionID is optional. Senders that render their reaction locally
	// pass their id so the echo can be recognised.
	ReactionID string

	// X and Y are normalized screen coordinates in [0, 1]

	Emoji    string
	X        float64
	Y        float64
	UserID   string
	UserName string
}

type SendOutput struct {
	Reaction *models.Reaction
}
