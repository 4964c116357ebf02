package session

import "github.com/KirkDiggler/lectern/internal/models"

type CreateSessionInput struct {
	Session *models.Session
}

type GetSessionInput struct {
	Code string
}

type UpdateSessionInput struct {
	Code string

	// Apply changes the freshly read session in place. Returning an error
	// aborts the update. Apply may run more than once under contention.
	Apply func(session *models.Session) error
}

type ListActiveSessionsInput struct {
}

type ListActiveSessionsOutput struct {
	Sessions []*models.Session
}
