package presence

//go:generate mockgen -package=mocks -destination=mocks/mock_repository.go github.com/KirkDiggler/lectern/internal/repositories/presence Repository

import (
	"context"
	"time"
)

// Repository defines the interface for tracking who is attached to a session
type Repository interface {
	// AddParticipant attaches one connection of a participant, keeping the
	// first join time while any connection of the user remains
	AddParticipant(ctx context.Context, input *AddParticipantInput) (*AddParticipantOutput, error)

	// RemoveParticipant detaches one connection, or all of them with Force
	RemoveParticipant(ctx context.Context, input *RemoveParticipantInput) (*RemoveParticipantOutput, error)

	// ListParticipants retrieves attached participants in join order
	ListParticipants(ctx context.Context, input *ListParticipantsInput) (*ListParticipantsOutput, error)

	// ExpireSession schedules the session's presence for deletion after ttl
	ExpireSession(ctx context.Context, code string, ttl time.Duration) error
}
