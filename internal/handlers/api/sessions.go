package api

import (
	"net/http"

	"github.com/KirkDiggler/lectern/internal/models"
	"github.com/KirkDiggler/lectern/internal/services/broadcast"
	"github.com/KirkDiggler/lectern/internal/services/messaging"
	"github.com/KirkDiggler/lectern/internal/services/presence"
	"github.com/KirkDiggler/lectern/internal/services/session"
	"github.com/gorilla/mux"
)

type createSessionRequest struct {
	Title         string `json:"title"`
	TotalSlides   int    `json:"totalSlides"`
	PresenterName string `json:"presenterName"`
}

type createSessionResponse struct {
	Session        *models.Session `json:"session"`
	PresenterToken string          `json:"presenterToken"`
	FollowURL      string          `json:"followUrl"`
}

type updateSlideRequest struct {
	SlideNumber int    `json:"slideNumber"`
	Markup      string `json:"markup"`
}

type cursorRequest struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

type updateSlideResponse struct {
	Session      *models.Session      `json:"session"`
	SlideContent *models.SlideContent `json:"slideContent,omitempty"`
}

type leaveResponse struct {
	Removed      bool                  `json:"removed"`
	Participants []*models.Participant `json:"participants"`
}

type joinRequest struct {
	UserID   string `json:"userId"`
	UserName string `json:"userName"`
}

type joinResponse struct {
	Success      bool                  `json:"success"`
	Message      string                `json:"message"`
	Participant  *models.Participant   `json:"participant,omitempty"`
	Participants []*models.Participant `json:"participants,omitempty"`
}

func (h *Handler) createSession(w http.ResponseWriter, r *http.Request) {
	var req createSessionRequest
	if err := decodeBody(w, r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}

	output, err := h.sessions.CreateSession(r.Context(), &session.CreateSessionInput{
		Title:         req.Title,
		TotalSlides:   req.TotalSlides,
		PresenterName: req.PresenterName,
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusCreated, &createSessionResponse{
		Session:        output.Session,
		PresenterToken: output.PresenterToken,
		FollowURL:      output.FollowURL,
	})
}

func (h *Handler) listSessions(w http.ResponseWriter, r *http.Request) {
	output, err := h.sessions.ListActiveSessions(r.Context(), &session.ListActiveSessionsInput{})
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, output.Sessions)
}

func (h *Handler) getSession(w http.ResponseWriter, r *http.Request) {
	output, err := h.sessions.GetSession(r.Context(), &session.GetSessionInput{
		Code: mux.Vars(r)["code"],
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, output.Session)
}

// follow backs the follow-along link shared with the audience
func (h *Handler) follow(w http.ResponseWriter, r *http.Request) {
	h.getSession(w, r)
}

func (h *Handler) getState(w http.ResponseWriter, r *http.Request) {
	state, err := h.broadcast.GetState(r.Context(), &broadcast.GetStateInput{
		Code: mux.Vars(r)["code"],
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, state)
}

func (h *Handler) updateSlide(w http.ResponseWriter, r *http.Request) {
	var req updateSlideRequest
	if err := decodeBody(w, r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}

	output, err := h.sessions.UpdateSlide(r.Context(), &session.UpdateSlideInput{
		Code:           mux.Vars(r)["code"],
		PresenterToken: bearerToken(r),
		SlideNumber:    req.SlideNumber,
		Markup:         req.Markup,
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, &updateSlideResponse{
		Session:      output.Session,
		SlideContent: output.SlideContent,
	})
}

func (h *Handler) moveCursor(w http.ResponseWriter, r *http.Request) {
	var req cursorRequest
	if err := decodeBody(w, r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}

	output, err := h.sessions.MoveCursor(r.Context(), &session.MoveCursorInput{
		Code:           mux.Vars(r)["code"],
		PresenterToken: bearerToken(r),
		X:              req.X,
		Y:              req.Y,
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, output.Cursor)
}

func (h *Handler) endSession(w http.ResponseWriter, r *http.Request) {
	output, err := h.sessions.EndSession(r.Context(), &session.EndSessionInput{
		Code:           mux.Vars(r)["code"],
		PresenterToken: bearerToken(r),
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, output.Session)
}

func (h *Handler) join(w http.ResponseWriter, r *http.Request) {
	var req joinRequest
	if err := decodeBody(w, r, &req); err != nil {
		h.writeError(w, r, err)
		return
	}

	output, err := h.presence.Join(r.Context(), &presence.JoinInput{
		Code:     mux.Vars(r)["code"],
		UserID:   req.UserID,
		UserName: req.UserName,
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	if !output.Success {
		h.writeError(w, r, presence.ErrSessionNotFound)
		return
	}

	greeting, err := h.messaging.GetJoinMessage(r.Context(), &messaging.GetJoinMessageInput{
		UserName: output.Participant.UserName,
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}

	writeJSON(w, http.StatusOK, &joinResponse{
		Success:      true,
		Message:      greeting.Message,
		Participant:  output.Participant,
		Participants: output.Participants,
	})
}

func (h *Handler) leave(w http.ResponseWriter, r *http.Request) {
	vars := mux.Vars(r)
	output, err := h.presence.Leave(r.Context(), &presence.LeaveInput{
		Code:   vars["code"],
		UserID: vars["userID"],
		Force:  r.URL.Query().Get("force") == "true",
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, &leaveResponse{
		Removed:      output.Removed,
		Participants: output.Participants,
	})
}

func (h *Handler) listParticipants(w http.ResponseWriter, r *http.Request) {
	output, err := h.presence.List(r.Context(), &presence.ListInput{
		Code: mux.Vars(r)["code"],
	})
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, output.Participants)
}
