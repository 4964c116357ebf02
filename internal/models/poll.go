package models

import (
	"math"
	"strings"
	"time"
)

// MinPollOptions is the fewest non-empty options a poll may have
const MinPollOptions = 2

// PollOption is one answer of a poll together with who picked it
type PollOption struct {
	Text   string   `json:"text"`
	Votes  int      `json:"votes"`
	Voters []string `json:"voters"`
}

// Poll is a presenter-created multiple choice question. Polls are open when
// created and can only be closed, never reopened.
type Poll struct {
	ID          string        `json:"id"`
	SessionCode string        `json:"sessionCode"`
	Question    string        `json:"question"`
	Options     []*PollOption `json:"options"`
	IsActive    bool          `json:"isActive"`
	TotalVotes  int           `json:"totalVotes"`
	CreatedAt   time.Time     `json:"createdAt"`
	ClosedAt    *time.Time    `json:"closedAt,omitempty"`
}

// NewPollOptions trims the given texts and drops the empty ones
func NewPollOptions(texts []string) []*PollOption {
	options := make([]*PollOption, 0, len(texts))
	for _, text := range texts {
		text = strings.TrimSpace(text)
		if text == "" {
			continue
		}
		options = append(options, &PollOption{Text: text, Voters: []string{}})
	}
	return options
}

// VotedOption returns the option the user voted for
func (p *Poll) VotedOption(userID string) (int, bool) {
	for i, option := range p.Options {
		for _, voter := range option.Voters {
			if voter == userID {
				return i, true
			}
		}
	}
	return -1, false
}

// HasVoted reports whether the user already voted in this poll
func (p *Poll) HasVoted(userID string) bool {
	_, ok := p.VotedOption(userID)
	return ok
}

// ApplyVote records a vote once per user. It returns false, leaving the poll
// untouched, when the poll is closed, the option does not exist or the user
// already voted. The presenter's server and every follower apply votes
// through this method so all tallies converge.
func (p *Poll) ApplyVote(optionIndex int, userID string) bool {
	if !p.IsActive || userID == "" {
		return false
	}
	if optionIndex < 0 || optionIndex >= len(p.Options) {
		return false
	}
	if p.HasVoted(userID) {
		return false
	}

	option := p.Options[optionIndex]
	option.Voters = append(option.Voters, userID)
	option.Votes++
	p.TotalVotes++
	return true
}

// Close stops the poll accepting votes. It returns false if it was already closed.
func (p *Poll) Close(at time.Time) bool {
	if !p.IsActive {
		return false
	}
	p.IsActive = false
	p.ClosedAt = &at
	return true
}

// Recount derives every counter from the voter lists
func (p *Poll) Recount() {
	p.TotalVotes = 0
	for _, option := range p.Options {
		option.Votes = len(option.Voters)
		p.TotalVotes += option.Votes
	}
}

// Percentage is the rounded share of votes for an option, 0 with no votes
func (p *Poll) Percentage(optionIndex int) int {
	if p.TotalVotes <= 0 || optionIndex < 0 || optionIndex >= len(p.Options) {
		return 0
	}
	share := float64(p.Options[optionIndex].Votes) / float64(p.TotalVotes) * 100
	return int(math.Round(share))
}

// Clone returns a deep copy so callers can apply optimistic updates safely
func (p *Poll) Clone() *Poll {
	if p == nil {
		return nil
	}
	out := *p
	out.Options = make([]*PollOption, len(p.Options))
	for i, option := range p.Options {
		o := *option
		o.Voters = append([]string{}, option.Voters...)
		out.Options[i] = &o
	}
	if p.ClosedAt != nil {
		closedAt := *p.ClosedAt
		out.ClosedAt = &closedAt
	}
	return &out
}
