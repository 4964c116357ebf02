package api

import (
	"net/http"

	"github.com/KirkDiggler/lectern/internal/models"
	"github.com/KirkDiggler/lectern/internal/services/poll"
	"github.com/KirkDiggler/lectern/internal/services/qa"
	"github.com/KirkDiggler/lectern/internal/services/reaction"
	"github.com/gorilla/mux"
)

type createPollRequest struct {
	Question string   `json:"question"`
	Options  []string `json:"options"`
}

type createPollResponse struct {
	Poll   *models.Poll `json:"poll"`
	Closed *models.Poll `json:"closed,omitempty"`
}

type voteRequest struct {
	UserID      string `json:"userId"`
	OptionIndex int    `json:"optionIndex"`
}

type voteResponse struct {
	Recorded bool         `json:"recorded"`
	Poll     *models.Poll `json:"poll"`
}

type listPollsResponse struct {
	ActivePoll *models.Poll   `json:"activePoll,omitempty"`
	History    []*models.Poll `json:"history"`
}

type submitQuestionRequest struct {
	QuestionID string `json:"questionId"`
	Text       string `json:"question"`
	AskerID    string `json:"askerId"`
	AskerName  string `json:"askerName"`
}

type upvoteRequest struct {
	UserID string `json:"userId"`
}

type upvoteResponse struct {
	Recorded  bool               `json:"recorded"`
	Questions []*models.Question `json:"questions"`
}

type reactionRequest struct {
	ReactionID string  `json:"reactionId"`
	Emoji      string  `json:"emoji"`
	X          float64 `json:"x"`
	Y          float64 `json:"y"`
	UserID     string  `json:"userId"`
	UserName   string  `json:"userName"`
}

func (h *Handler) createPoll(w http.ResponseWriter, r *http.Request) {
	var req createPollRequest
	if err := decodeBody(w, r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}

	output, err := h.polls.CreatePoll(r.Context(), &poll.CreatePollInput{
		Code:           mux.Vars(r)["code"],
		PresenterToken: bearerToken(r),
		Question:       req.Question,
		Options:        req.Options,
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, &createPollResponse{
		Poll:   output.Poll,
		Closed: output.Closed,
	})
}

func (h *Handler) vote(w http.ResponseWriter, r *http.Request) {
	var req voteRequest
	if err := decodeBody(w, r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}

	vars := mux.Vars(r)
	output, err := h.polls.Vote(r.Context(), &poll.VoteInput{
		Code:        vars["code"],
		PollID:      vars["pollID"],
		OptionIndex: req.OptionIndex,
		UserID:      req.UserID,
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, &voteResponse{
		Recorded: output.Recorded,
		Poll:     output.Poll,
	})
}

func (h *Handler) closePoll(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	output, err := h.polls.ClosePoll(r.Context(), &poll.ClosePollInput{
		Code:           vars["code"],
		PresenterToken: bearerToken(r),
		PollID:         vars["pollID"],
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, output.Poll)
}

func (h *Handler) listPolls(w http.ResponseWriter, r *http.Request) {
	output, err := h.polls.ListPolls(r.Context(), &poll.ListPollsInput{
		Code: mux.Vars(r)["code"],
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, &listPollsResponse{
		ActivePoll: output.ActivePoll,
		History:    output.History,
	})
}

func (h *Handler) submitQuestion(w http.ResponseWriter, r *http.Request) {
	var req submitQuestionRequest
	if err := decodeBody(w, r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}

	output, err := h.qa.SubmitQuestion(r.Context(), &qa.SubmitQuestionInput{
		Code:       mux.Vars(r)["code"],
		QuestionID: req.QuestionID,
		Text:       req.Text,
		AskerID:    req.AskerID,
		AskerName:  req.AskerName,
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	status := http.StatusCreated
	if !output.Created {
		status = http.StatusOK
	}
	writeJSON(w, status, output.Question)
}

func (h *Handler) upvote(w http.ResponseWriter, r *http.Request) {
	var req upvoteRequest
	if err := decodeBody(w, r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}

	vars := mux.Vars(r)
	output, err := h.qa.Upvote(r.Context(), &qa.UpvoteInput{
		Code:       vars["code"],
		QuestionID: vars["questionID"],
		UserID:     req.UserID,
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, &upvoteResponse{
		Recorded:  output.Recorded,
		Questions: output.Questions,
	})
}

func (h *Handler) toggleAnswered(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	output, err := h.qa.ToggleAnswered(r.Context(), &qa.ToggleAnsweredInput{
		Code:           vars["code"],
		PresenterToken: bearerToken(r),
		QuestionID:     vars["questionID"],
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, output.Question)
}

func (h *Handler) listQuestions(w http.ResponseWriter, r *http.Request) {
	output, err := h.qa.ListQuestions(r.Context(), &qa.ListQuestionsInput{
		Code: mux.Vars(r)["code"],
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, output.Questions)
}

func (h *Handler) sendReaction(w http.ResponseWriter, r *http.Request) {
	var req reactionRequest
	if err := decodeBody(w, r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}

	output, err := h.reactions.Send(r.Context(), &reaction.SendInput{
		Code:       mux.Vars(r)["code"],
		ReactionID: req.ReactionID,
		Emoji:      req.Emoji,
		X:          req.X,
		Y:          req.Y,
		UserID:     req.UserID,
		UserName:   req.UserName,
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusAccepted, output.Reaction)
}
