package models

import (
	"encoding/json"
	"fmt"
	"time"
)

// EventType identifies what an Event carries
type EventType string

const (
	// EventSnapshot carries a full SessionState, sent first to every new subscriber
	EventSnapshot EventType = "snapshot"

	// EventSlideChange carries a SlideChangePayload
	EventSlideChange EventType = "slide_change"

	// EventSlideContent carries the SlideContent of the current slide
	EventSlideContent EventType = "slide_content"

	// EventCursor carries a CursorPayload from the presenter
	EventCursor EventType = "cursor"

	// EventReaction carries a Reaction
	EventReaction EventType = "reaction"

	// EventPollCreated carries the new Poll
	EventPollCreated EventType = "poll_created"

	// EventPollVote carries a PollVotePayload
	EventPollVote EventType = "poll_vote"

	// EventPollClosed carries the closed Poll
	EventPollClosed EventType = "poll_closed"

	// EventQuestion carries a new Question
	EventQuestion EventType = "qa_question"

	// EventUpvote carries an UpvotePayload
	EventUpvote EventType = "qa_upvote"

	// EventAnswered carries an AnsweredPayload
	EventAnswered EventType = "qa_answered"

	// EventPresence carries a PresencePayload with the full participant list
	EventPresence EventType = "presence"

	// EventSessionEnded carries the final Session
	EventSessionEnded EventType = "session_ended"
)

// Event is the envelope everything on the broadcast bus travels in
type Event struct {
	ID          string    `json:"id"`
	Type        EventType `json:"type"`
	SessionCode string    `json:"sessionCode"`
	// Seq increases by one per published event within a session
	Seq       int64           `json:"seq"`
	SenderID  string          `json:"senderId,omitempty"`
	Timestamp time.Time       `json:"timestamp"`
	Payload   json.RawMessage `json:"payload"`
}

// NewEvent marshals payload into a new event envelope
func NewEvent(id string, eventType EventType, code string, payload any, at time.Time) (*Event, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal %s payload: %w", eventType, err)
	}
	return &Event{
		ID:          id,
		Type:        eventType,
		SessionCode: code,
		Timestamp:   at,
		Payload:     raw,
	}, nil
}

// Decode unmarshals the payload into v
func (e *Event) Decode(v any) error {
	if err := json.Unmarshal(e.Payload, v); err != nil {
		return fmt.Errorf("failed to decode %s payload: %w", e.Type, err)
	}
	return nil
}

// SlideChangePayload is sent when the presenter navigates
type SlideChangePayload struct {
	CurrentSlide int `json:"currentSlide"`
	TotalSlides  int `json:"totalSlides"`
}

// CursorPayload is the presenter's pointer in slide coordinates (0..1)
type CursorPayload struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// PollVotePayload is an idempotent vote delta
type PollVotePayload struct {
	PollID      string `json:"pollId"`
	OptionIndex int    `json:"optionIndex"`
	UserID      string `json:"userId"`
}

// UpvotePayload is an idempotent upvote delta
type UpvotePayload struct {
	QuestionID string `json:"questionId"`
	UserID     string `json:"userId"`
}

// AnsweredPayload carries the new answered flag of a question
type AnsweredPayload struct {
	QuestionID string `json:"questionId"`
	IsAnswered bool   `json:"isAnswered"`
}

// PresencePayload is the full list of attached participants
type PresencePayload struct {
	Participants []*Participant `json:"participants"`
}
