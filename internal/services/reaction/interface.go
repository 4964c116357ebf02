package reaction

//go:generate mockgen -package=mocks -destination=mocks/mock_service.go github.com/KirkDiggler/lectern/internal/services/reaction Service

import "context"

// Service defines the interface for floating emoji reactions
type Service interface {
	// Send broadcasts a reaction to everyone in the session. Nothing is stored.
	Send(ctx context.Context, input *SendInput) (*SendOutput, error)
}
