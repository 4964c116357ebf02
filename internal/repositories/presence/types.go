package presence

import "github.com/KirkDiggler/lectern/internal/models"

type AddParticipantInput struct {
	SessionCode string
	Participant *models.Participant
}

type AddParticipantOutput struct {
	// Added is false when the user was already attached on another connection
	Added bool
}

type RemoveParticipantInput struct {
	SessionCode string
	UserID      string
	Force       bool
}

type RemoveParticipantOutput struct {
	// Removed is true once the user has no connections left
	Removed bool
}

type ListParticipantsInput struct {
	SessionCode string
}

type ListParticipantsOutput struct {
	Participants []*models.Participant
}
