package presence

// PresenceError is a custom error type for presence errors
type PresenceError string

// Error implements the error interface
func (e PresenceError) Error() string {
	return string(e)
}

// Define errors
const (
	ErrInvalidInput    PresenceError = "user id is required"
	ErrSessionNotFound PresenceError = "session not found"
	ErrNilConfig       PresenceError = "config cannot be nil"
	ErrNilSessionRepo  PresenceError = "session repository cannot be nil"
	ErrNilPresenceRepo PresenceError = "presence repository cannot be nil"
	ErrNilBroadcaster  PresenceError = "broadcast service cannot be nil"
	ErrNilClock        PresenceError = "clock cannot be nil"
)
