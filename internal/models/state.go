package models

// SessionState is everything a follower needs to render a session. A new
// subscriber receives it first, so it never depends on replaying history.
type SessionState struct {
	Seq          int64          `json:"seq"`
	Session      *Session       `json:"session"`
	Participants []*Participant `json:"participants"`
	SlideContent *SlideContent  `json:"slideContent,omitempty"`
	ActivePoll   *Poll          `json:"activePoll,omitempty"`
	PollHistory  []*Poll        `json:"pollHistory"`
	Questions    []*Question    `json:"questions"`
}
