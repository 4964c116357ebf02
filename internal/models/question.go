package models

import (
	"sort"
	"time"
)

// MaxQuestionLength caps the text of an audience question
const MaxQuestionLength = 500

// AnonymousAsker is used when a question arrives without a name
const AnonymousAsker = "Anonymous"

// Question is an audience question in the session's Q&A. Questions are
// append-only: they are upvoted and marked answered but never deleted.
type Question struct {
	ID          string    `json:"id"`
	SessionCode string    `json:"sessionCode"`
	Text        string    `json:"question"`
	AskerID     string    `json:"askerId,omitempty"`
	AskerName   string    `json:"askerName"`
	Upvotes     int       `json:"upvotes"`
	Upvoters    []string  `json:"upvoters"`
	IsAnswered  bool      `json:"isAnswered"`
	CreatedAt   time.Time `json:"createdAt"`
}

// HasUpvoted reports whether the user already upvoted the question
func (q *Question) HasUpvoted(userID string) bool {
	for _, id := range q.Upvoters {
		if id == userID {
			return true
		}
	}
	return false
}

// ApplyUpvote counts a user's upvote once. It returns false for repeats.
func (q *Question) ApplyUpvote(userID string) bool {
	if userID == "" || q.HasUpvoted(userID) {
		return false
	}
	q.Upvoters = append(q.Upvoters, userID)
	q.Upvotes = len(q.Upvoters)
	return true
}

// QuestionBefore is the display order: most upvotes first, then oldest first.
// The id breaks exact ties so every client sorts identically.
func QuestionBefore(a, b *Question) bool {
	if a.Upvotes != b.Upvotes {
		return a.Upvotes > b.Upvotes
	}
	if !a.CreatedAt.Equal(b.CreatedAt) {
		return a.CreatedAt.Before(b.CreatedAt)
	}
	return a.ID < b.ID
}

// SortQuestions puts questions into display order in place
func SortQuestions(questions []*Question) {
	sort.Slice(questions, func(i, j int) bool {
		return QuestionBefore(questions[i], questions[j])
	})
}
