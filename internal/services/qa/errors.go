package qa

// QAError is a custom error type for Q&A errors
type QAError string

// Error implements the error interface
func (e QAError) Error() string {
	return string(e)
}

// Define errors
const (
	ErrSessionNotFound  QAError = "session not found"
	ErrSessionInactive  QAError = "session has ended"
	ErrNotPresenter     QAError = "only the presenter can do that"
	ErrInvalidInput     QAError = "invalid input"
	ErrEmptyQuestion    QAError = "question cannot be empty"
	ErrQuestionTooLong  QAError = "question is too long"
	ErrQuestionNotFound QAError = "question not found"
	ErrQuestionIDTaken  QAError = "question id is already in use"
	ErrNilConfig        QAError = "config cannot be nil"
	ErrNilSessionRepo   QAError = "session repository cannot be nil"
	ErrNilQuestionRepo  QAError = "question repository cannot be nil"
	ErrNilBroadcaster   QAError = "broadcast service cannot be nil"
	ErrNilTokenIssuer   QAError = "token issuer cannot be nil"
	ErrNilClock         QAError = "clock cannot be nil"
	ErrNilUUIDGenerator QAError = "uuid generator cannot be nil"
)
