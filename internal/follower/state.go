package follower

import (
	"sync"

	"github.com/KirkDiggler/lectern/internal/models"
	"github.com/rs/zerolog/log"
)

// State is a follower's local copy of a session. It starts from a snapshot
// and applies events on top. Votes, upvotes and questions go through the
// same idempotent rules whether they were applied optimistically or arrive
// as an echo, so neither path can count twice.
type State struct {
	overlay *Overlay

	mu           sync.RWMutex
	seq          int64
	session      *models.Session
	participants []*models.Participant
	slideContent *models.SlideContent
	cursor       *models.CursorPayload
	activePoll   *models.Poll
	pollHistory  []*models.Poll
	questions    []*models.Question
}

// NewState creates an empty state rendering reactions into overlay
func NewState(overlay *Overlay) *State {
	return &State{
		overlay: overlay,
	}
}

// ApplySnapshot replaces everything with a server snapshot
func (s *State) ApplySnapshot(snapshot *models.SessionState) {
	if snapshot == nil {
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	s.seq = snapshot.Seq
	s.session = snapshot.Session
	s.participants = snapshot.Participants
	s.slideContent = snapshot.SlideContent
	s.activePoll = snapshot.ActivePoll
	s.pollHistory = snapshot.PollHistory
	s.questions = snapshot.Questions
	models.SortQuestions(s.questions)
}

// Apply folds one bus event into the state. Sequenced events at or below
// the last applied sequence are skipped.
func (s *State) Apply(event *models.Event) error {
	if event == nil {
		return nil
	}

	if event.Type == models.EventSnapshot {
		var snapshot models.SessionState
		if err := event.Decode(&snapshot); err != nil {
			return err
		}
		s.ApplySnapshot(&snapshot)
		return nil
	}

	// Reactions live only in the overlay
	if event.Type == models.EventReaction {
		var reaction models.Reaction
		if err := event.Decode(&reaction); err != nil {
			return err
		}
		s.trackSeq(event.Seq)
		if s.overlay != nil {
			s.overlay.Add(&reaction)
		}
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if event.Seq > 0 {
		if event.Seq <= s.seq {
			return nil
		}
		s.seq = event.Seq
	}

	switch event.Type {
	case models.EventSlideChange:
		var payload models.SlideChangePayload
		if err := event.Decode(&payload); err != nil {
			return err
		}
		if s.session != nil {
			s.session.CurrentSlide = payload.CurrentSlide
		}
		if s.slideContent != nil && s.slideContent.SlideNumber != payload.CurrentSlide {
			s.slideContent = nil
		}

	case models.EventSlideContent:
		var content models.SlideContent
		if err := event.Decode(&content); err != nil {
			return err
		}
		s.slideContent = &content

	case models.EventCursor:
		var cursor models.CursorPayload
		if err := event.Decode(&cursor); err != nil {
			return err
		}
		s.cursor = &cursor

	case models.EventPollCreated:
		var poll models.Poll
		if err := event.Decode(&poll); err != nil {
			return err
		}
		if s.activePoll != nil && s.activePoll.ID != poll.ID {
			s.archivePoll(s.activePoll)
		}
		s.activePoll = &poll

	case models.EventPollVote:
		var vote models.PollVotePayload
		if err := event.Decode(&vote); err != nil {
			return err
		}
		if poll := s.findPoll(vote.PollID); poll != nil {
			poll.ApplyVote(vote.OptionIndex, vote.UserID)
		}

	case models.EventPollClosed:
		var poll models.Poll
		if err := event.Decode(&poll); err != nil {
			return err
		}
		if s.activePoll != nil && s.activePoll.ID == poll.ID {
			s.activePoll = nil
		}
		s.archivePoll(&poll)

	case models.EventQuestion:
		var question models.Question
		if err := event.Decode(&question); err != nil {
			return err
		}
		s.confirmQuestion(&question)

	case models.EventUpvote:
		var upvote models.UpvotePayload
		if err := event.Decode(&upvote); err != nil {
			return err
		}
		if question := s.findQuestion(upvote.QuestionID); question != nil {
			if question.ApplyUpvote(upvote.UserID) {
				models.SortQuestions(s.questions)
			}
		}

	case models.EventAnswered:
		var answered models.AnsweredPayload
		if err := event.Decode(&answered); err != nil {
			return err
		}
		if question := s.findQuestion(answered.QuestionID); question != nil {
			question.IsAnswered = answered.IsAnswered
		}

	case models.EventPresence:
		var presence models.PresencePayload
		if err := event.Decode(&presence); err != nil {
			return err
		}
		s.participants = presence.Participants

	case models.EventSessionEnded:
		var session models.Session
		if err := event.Decode(&session); err != nil {
			return err
		}
		s.session = &session
		s.activePoll = nil

	default:
		log.Debug().Str("module", "follower").Str("type", string(event.Type)).Msg("ignoring event")
	}

	return nil
}

// LocalVote applies the user's vote before it is sent. It returns false
// when the vote would not count, in which case nothing should be sent.
func (s *State) LocalVote(pollID string, optionIndex int, userID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	poll := s.findPoll(pollID)
	if poll == nil {
		return false
	}
	return poll.ApplyVote(optionIndex, userID)
}

// LocalUpvote applies the user's upvote before it is sent
func (s *State) LocalUpvote(questionID, userID string) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	question := s.findQuestion(questionID)
	if question == nil || !question.ApplyUpvote(userID) {
		return false
	}
	models.SortQuestions(s.questions)
	return true
}

// LocalQuestion shows the user's question before the server confirms it
func (s *State) LocalQuestion(question *models.Question) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.insertQuestion(question)
}

// LocalReaction floats the user's reaction immediately
func (s *State) LocalReaction(reaction *models.Reaction) bool {
	if s.overlay == nil {
		return false
	}
	return s.overlay.Add(reaction)
}

func (s *State) trackSeq(seq int64) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if seq > s.seq {
		s.seq = seq
	}
}

func (s *State) findPoll(pollID string) *models.Poll {
	if s.activePoll != nil && s.activePoll.ID == pollID {
		return s.activePoll
	}
	for _, poll := range s.pollHistory {
		if poll.ID == pollID {
			return poll
		}
	}
	return nil
}

// archivePoll stores a closed poll in history, replacing an older copy
func (s *State) archivePoll(poll *models.Poll) {
	if poll.IsActive {
		poll.IsActive = false
	}
	for i, existing := range s.pollHistory {
		if existing.ID == poll.ID {
			s.pollHistory[i] = poll
			return
		}
	}
	s.pollHistory = append(s.pollHistory, poll)
}

func (s *State) findQuestion(questionID string) *models.Question {
	for _, question := range s.questions {
		if question.ID == questionID {
			return question
		}
	}
	return nil
}

func (s *State) insertQuestion(question *models.Question) bool {
	if question == nil || s.findQuestion(question.ID) != nil {
		return false
	}
	if question.Upvoters == nil {
		question.Upvoters = []string{}
	}
	s.questions = append(s.questions, question)
	models.SortQuestions(s.questions)
	return true
}

// confirmQuestion stores the server's copy of a question. A locally shown
// question is replaced so its creation time comes from the server clock and
// every follower sorts it the same way. Upvotes seen locally are kept.
func (s *State) confirmQuestion(question *models.Question) {
	for i, local := range s.questions {
		if local.ID != question.ID {
			continue
		}

		confirmed := *question
		confirmed.Upvoters = append([]string{}, question.Upvoters...)
		for _, userID := range local.Upvoters {
			confirmed.ApplyUpvote(userID)
		}
		confirmed.Upvotes = len(confirmed.Upvoters)

		s.questions[i] = &confirmed
		models.SortQuestions(s.questions)
		return
	}

	s.insertQuestion(question)
}

// Seq is the last applied sequence number
func (s *State) Seq() int64 {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.seq
}

// Session returns a copy of the session, nil before the first snapshot
func (s *State) Session() *models.Session {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if s.session == nil {
		return nil
	}
	session := *s.session
	return &session
}

func (s *State) Participants() []*models.Participant {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]*models.Participant{}, s.participants...)
}

func (s *State) SlideContent() *models.SlideContent {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.slideContent
}

func (s *State) Cursor() *models.CursorPayload {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.cursor
}

// ActivePoll returns a copy of the open poll
func (s *State) ActivePoll() *models.Poll {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.activePoll.Clone()
}

// PollHistory returns copies of the closed polls
func (s *State) PollHistory() []*models.Poll {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*models.Poll, len(s.pollHistory))
	for i, poll := range s.pollHistory {
		out[i] = poll.Clone()
	}
	return out
}

// Questions returns copies of the questions in display order
func (s *State) Questions() []*models.Question {
	s.mu.RLock()
	defer s.mu.RUnlock()
	out := make([]*models.Question, len(s.questions))
	for i, question := range s.questions {
		q := *question
		q.Upvoters = append([]string{}, question.Upvoters...)
		out[i] = &q
	}
	return out
}

// Overlay returns the reaction overlay
func (s *State) Overlay() *Overlay {
	return s.overlay
}
