package models

// ClientMessageType identifies what a follower asks for over its socket
type ClientMessageType string

const (
	ClientVote     ClientMessageType = "vote"
	ClientUpvote   ClientMessageType = "upvote"
	ClientQuestion ClientMessageType = "question"
	ClientReaction ClientMessageType = "reaction"
	ClientCursor   ClientMessageType = "cursor"
	ClientPing     ClientMessageType = "ping"
)

// ClientMessage is a request sent by a follower or presenter socket.
// Which fields are read depends on Type.
type ClientMessage struct {
	Type ClientMessageType `json:"type"`

	// RequestID is echoed back in an error reply
	RequestID string `json:"requestId,omitempty"`

	PollID      string `json:"pollId,omitempty"`
	OptionIndex int    `json:"optionIndex"`

	// QuestionID names the question to upvote, or the client chosen id of a new one
	QuestionID string `json:"questionId,omitempty"`
	Text       string `json:"text,omitempty"`

	// ReactionID is the client chosen id of a reaction
	ReactionID string  `json:"reactionId,omitempty"`
	Emoji      string  `json:"emoji,omitempty"`
	X          float64 `json:"x,omitempty"`
	Y          float64 `json:"y,omitempty"`

	PresenterToken string `json:"presenterToken,omitempty"`
}

const (
	// EventError carries an ErrorPayload, sent only to the socket that failed
	EventError EventType = "error"

	// EventPong answers a ping
	EventPong EventType = "pong"
)

// ErrorPayload tells a socket why its request failed
type ErrorPayload struct {
	RequestID string `json:"requestId,omitempty"`
	Type      string `json:"type"`
	Message   string `json:"message"`
}
