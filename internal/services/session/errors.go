package session

// SessionError is a custom error type for session-related errors
type SessionError string

// Error implements the error interface
func (e SessionError) Error() string {
	return string(e)
}

// Define errors
const (
	ErrSessionNotFound     SessionError = "session not found"
	ErrSessionInactive     SessionError = "session has ended"
	ErrInvalidInput        SessionError = "invalid input"
	ErrSlideOutOfRange     SessionError = "slide number out of range"
	ErrNotPresenter        SessionError = "only the presenter can do that"
	ErrCodeSpaceExhausted  SessionError = "could not find a free session code"
	ErrNilConfig           SessionError = "config cannot be nil"
	ErrNilSessionRepo      SessionError = "session repository cannot be nil"
	ErrNilSlideContentRepo SessionError = "slide content repository cannot be nil"
	ErrNilBroadcaster      SessionError = "broadcast service cannot be nil"
	ErrNilCodeGenerator    SessionError = "code generator cannot be nil"
	ErrNilTokenIssuer      SessionError = "token issuer cannot be nil"
	ErrNilClock            SessionError = "clock cannot be nil"
)
