package poll

import (
	"github.com/KirkDiggler/lectern/internal/common/clock"
	"github.com/KirkDiggler/lectern/internal/common/token"
	"github.com/KirkDiggler/lectern/internal/common/uuid"
	"github.com/KirkDiggler/lectern/internal/models"
	pollRepo "github.com/KirkDiggler/lectern/internal/repositories/poll"
	sessionRepo "github.com/KirkDiggler/lectern/internal/repositories/session"
	"github.com/KirkDiggler/lectern/internal/services/broadcast"
)

// Config holds configuration for the poll service
type Config struct {
	// Repository dependencies
	SessionRepo sessionRepo.Repository
	PollRepo    pollRepo.Repository

	// Service dependencies
	Broadcaster   broadcast.Service
	TokenIssuer   token.Issuer
	Clock         clock.Clock
	UUIDGenerator uuid.UUID
}

type CreatePollInput struct {
	Code           string
	PresenterToken string
	Question       string
	Options        []string
}

type CreatePollOutput struct {
	Poll *models.Poll

	// Closed is the previously active poll, if creating this one closed it
	Closed *models.Poll
}

type VoteInput struct {
	Code        string
	PollID      string
	OptionIndex int
	UserID      string
}

type VoteOutput struct {
	// Recorded is false when the user had already voted
	Recorded bool
	Poll     *models.Poll
}

type ClosePollInput struct {
	Code           string
	PresenterToken string
	PollID         string
}

type ClosePollOutput struct {
	Poll *models.Poll
}

type ListPollsInput struct {
	Code string
}

type ListPollsOutput struct {
	ActivePoll *models.Poll
	History    []*models.Poll
}
