package reaction

// ReactionError is a custom error type for reaction errors
type ReactionError string

// Error implements the error interface
func (e ReactionError) Error() string {
	return string(e)
}

// Define errors
const (
	ErrSessionNotFound  ReactionError = "session not found"
	ErrSessionInactive  ReactionError = "session has ended"
	ErrInvalidInput     ReactionError = "user id is required"
	ErrInvalidID        ReactionError = "reaction id may only contain letters, digits and dashes"
	ErrInvalidPosition  ReactionError = "reaction position must be between 0 and 1"
	ErrUnknownEmoji     ReactionError = "unknown emoji"
	ErrRateLimited      ReactionError = "too many reactions, slow down"
	ErrNilConfig        ReactionError = "config cannot be nil"
	ErrNilSessionRepo   ReactionError = "session repository cannot be nil"
	ErrNilBroadcaster   ReactionError = "broadcast service cannot be nil"
	ErrNilClock         ReactionError = "clock cannot be nil"
	ErrNilUUIDGenerator ReactionError = "uuid generator cannot be nil"
)
