package poll

import "github.com/KirkDiggler/lectern/internal/models"

type CreatePollInput struct {
	Poll *models.Poll
}

type CreatePollOutput struct {
	// PreviousID names the poll this one replaced as active. It no longer
	// accepts votes but is still stored as open until closed.
	PreviousID string
}

type GetPollInput struct {
	PollID string
}

type GetActivePollInput struct {
	SessionCode string
}

type ListPollsInput struct {
	SessionCode string
}

type ListPollsOutput struct {
	Polls []*models.Poll
}

type RecordVoteInput struct {
	PollID      string
	OptionIndex int
	UserID      string
}

type RecordVoteOutput struct {
	// Recorded is false when the user had already voted
	Recorded bool
}

type ClosePollInput struct {
	Poll *models.Poll
}
