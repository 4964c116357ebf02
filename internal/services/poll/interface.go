package poll

//go:generate mockgen -package=mocks -destination=mocks/mock_service.go github.com/KirkDiggler/lectern/internal/services/poll Service

import "context"

// Service defines the interface for live polls
type Service interface {
	// CreatePoll opens a poll, closing whichever poll was active before
	CreatePoll(ctx context.Context, input *CreatePollInput) (*CreatePollOutput, error)

	// Vote records a user's single vote in an open poll
	Vote(ctx context.Context, input *VoteInput) (*VoteOutput, error)

	// ClosePoll stops a poll accepting votes
	ClosePoll(ctx context.Context, input *ClosePollInput) (*ClosePollOutput, error)

	// ListPolls returns the active poll and the closed ones
	ListPolls(ctx context.Context, input *ListPollsInput) (*ListPollsOutput, error)
}
