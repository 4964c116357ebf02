package poll

// PollError is a custom error type for poll errors
type PollError string

// Error implements the error interface
func (e PollError) Error() string {
	return string(e)
}

// Define errors
const (
	ErrSessionNotFound  PollError = "session not found"
	ErrSessionInactive  PollError = "session has ended"
	ErrNotPresenter     PollError = "only the presenter can do that"
	ErrInvalidInput     PollError = "invalid input"
	ErrEmptyQuestion    PollError = "poll question cannot be empty"
	ErrTooFewOptions    PollError = "a poll needs at least two options"
	ErrPollNotFound     PollError = "poll not found"
	ErrPollClosed       PollError = "poll is closed"
	ErrOptionOutOfRange PollError = "option does not exist"
	ErrNilConfig        PollError = "config cannot be nil"
	ErrNilSessionRepo   PollError = "session repository cannot be nil"
	ErrNilPollRepo      PollError = "poll repository cannot be nil"
	ErrNilBroadcaster   PollError = "broadcast service cannot be nil"
	ErrNilTokenIssuer   PollError = "token issuer cannot be nil"
	ErrNilClock         PollError = "clock cannot be nil"
	ErrNilUUIDGenerator PollError = "uuid generator cannot be nil"
)
