package presence

//go:generate mockgen -package=mocks -destination=mocks/mock_service.go github.com/KirkDiggler/lectern/internal/services/presence Service

import "context"

// Service defines the interface for tracking who follows a session
type Service interface {
	// Join attaches a user to a session and announces the new participant list
	Join(ctx context.Context, input *JoinInput) (*JoinOutput, error)

	// Leave detaches a user and announces the new participant list
	Leave(ctx context.Context, input *LeaveInput) (*LeaveOutput, error)

	// List returns the participants currently attached
	List(ctx context.Context, input *ListInput) (*ListOutput, error)
}
