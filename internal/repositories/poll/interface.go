package poll

//go:generate mockgen -package=mocks -destination=mocks/mock_repository.go github.com/KirkDiggler/lectern/internal/repositories/poll Repository

import (
	"context"
	"time"

	"github.com/KirkDiggler/lectern/internal/models"
)

// Repository defines the interface for poll persistence
type Repository interface {
	// CreatePoll stores an open poll and makes it the session's active poll,
	// returning the id of the poll it displaced
	CreatePoll(ctx context.Context, input *CreatePollInput) (*CreatePollOutput, error)

	// GetPoll retrieves a poll with tallies derived from its recorded votes
	GetPoll(ctx context.Context, input *GetPollInput) (*models.Poll, error)

	// GetActivePoll retrieves the session's open poll, if any
	GetActivePoll(ctx context.Context, input *GetActivePollInput) (*models.Poll, error)

	// ListPolls retrieves every poll of a session, oldest first
	ListPolls(ctx context.Context, input *ListPollsInput) (*ListPollsOutput, error)

	// RecordVote atomically stores a user's first vote in an open poll
	RecordVote(ctx context.Context, input *RecordVoteInput) (*RecordVoteOutput, error)

	// ClosePoll persists a closed poll and stops it accepting votes
	ClosePoll(ctx context.Context, input *ClosePollInput) error

	// ExpireSession schedules every poll key of the session for deletion after ttl
	ExpireSession(ctx context.Context, code string, ttl time.Duration) error
}
