package broadcast

// BroadcastError is a custom error type for broadcast errors
type BroadcastError string

// Error implements the error interface
func (e BroadcastError) Error() string {
	return string(e)
}

// Define errors
const (
	ErrSessionNotFound     BroadcastError = "session not found"
	ErrNilConfig           BroadcastError = "config cannot be nil"
	ErrNilBus              BroadcastError = "bus cannot be nil"
	ErrNilSessionRepo      BroadcastError = "session repository cannot be nil"
	ErrNilPresenceRepo     BroadcastError = "presence repository cannot be nil"
	ErrNilSlideContentRepo BroadcastError = "slide content repository cannot be nil"
	ErrNilPollRepo         BroadcastError = "poll repository cannot be nil"
	ErrNilQuestionRepo     BroadcastError = "question repository cannot be nil"
	ErrNilClock            BroadcastError = "clock cannot be nil"
	ErrNilUUIDGenerator    BroadcastError = "UUID generator cannot be nil"
)
