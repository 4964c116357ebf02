package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/KirkDiggler/lectern/internal/services/broadcast"
	"github.com/KirkDiggler/lectern/internal/services/messaging"
	"github.com/KirkDiggler/lectern/internal/services/poll"
	"github.com/KirkDiggler/lectern/internal/services/presence"
	"github.com/KirkDiggler/lectern/internal/services/qa"
	"github.com/KirkDiggler/lectern/internal/services/reaction"
	"github.com/KirkDiggler/lectern/internal/services/session"
	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
)

const (
	// DefaultSendBuffer is how many events may queue for a slow socket
	// before it is disconnected
	DefaultSendBuffer = 64

	// DefaultPingInterval is how often idle sockets are pinged
	DefaultPingInterval = 30 * time.Second
)

// Config holds configuration for the API handler
type Config struct {
	SessionService  session.Service
	PresenceService presence.Service
	PollService     poll.Service
	QAService       qa.Service
	ReactionService reaction.Service
	Broadcaster     broadcast.Service
	Messaging       messaging.Service

	// AllowedOrigins lists origins allowed by CORS and the socket upgrade.
	// A single "*" allows any origin.
	AllowedOrigins []string

	// SendBuffer and PingInterval tune sockets, defaults when zero
	SendBuffer   int
	PingInterval time.Duration
}

// Handler serves the REST and websocket surface of the server
type Handler struct {
	sessions  session.Service
	presence  presence.Service
	polls     poll.Service
	qa        qa.Service
	reactions reaction.Service
	broadcast broadcast.Service
	messaging messaging.Service

	allowedOrigins []string
	sendBuffer     int
	pingInterval   time.Duration
	upgrader       websocket.Upgrader
}

// New creates a new API handler
func New(cfg *Config) (*Handler, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}
	if cfg.SessionService == nil {
		return nil, errors.New("session service cannot be nil")
	}
	if cfg.PresenceService == nil {
		return nil, errors.New("presence service cannot be nil")
	}
	if cfg.PollService == nil {
		return nil, errors.New("poll service cannot be nil")
	}
	if cfg.QAService == nil {
		return nil, errors.New("qa service cannot be nil")
	}
	if cfg.ReactionService == nil {
		return nil, errors.New("reaction service cannot be nil")
	}
	if cfg.Broadcaster == nil {
		return nil, errors.New("broadcast service cannot be nil")
	}
	if cfg.Messaging == nil {
		return nil, errors.New("messaging service cannot be nil")
	}

	h := &Handler{
		sessions:       cfg.SessionService,
		presence:       cfg.PresenceService,
		polls:          cfg.PollService,
		qa:             cfg.QAService,
		reactions:      cfg.ReactionService,
		broadcast:      cfg.Broadcaster,
		messaging:      cfg.Messaging,
		allowedOrigins: cfg.AllowedOrigins,
		sendBuffer:     cfg.SendBuffer,
		pingInterval:   cfg.PingInterval,
	}
	if h.sendBuffer <= 0 {
		h.sendBuffer = DefaultSendBuffer
	}
	if h.pingInterval <= 0 {
		h.pingInterval = DefaultPingInterval
	}
	h.upgrader = websocket.Upgrader{
		CheckOrigin: func(r *http.Request) bool {
			origin := r.Header.Get("Origin")
			return origin == "" || h.originAllowed(origin)
		},
	}

	return h, nil
}

// Router returns every route wrapped in logging and CORS middleware
func (h *Handler) Router() http.Handler {
	r := mux.NewRouter()

	r.HandleFunc("/healthz", h.health).Methods(http.MethodGet)
	r.HandleFunc("/follow/{code}", h.follow).Methods(http.MethodGet)
	r.HandleFunc("/ws/sessions/{code}", h.serveWS).Methods(http.MethodGet)

	api := r.PathPrefix("/api/sessions").Subrouter()
	api.HandleFunc("", h.createSession).Methods(http.MethodPost)
	api.HandleFunc("", h.listSessions).Methods(http.MethodGet)
	api.HandleFunc("/{code}", h.getSession).Methods(http.MethodGet)
	api.HandleFunc("/{code}/state", h.getState).Methods(http.MethodGet)
	api.HandleFunc("/{code}/slide", h.updateSlide).Methods(http.MethodPost)
	api.HandleFunc("/{code}/cursor", h.moveCursor).Methods(http.MethodPost)
	api.HandleFunc("/{code}/end", h.endSession).Methods(http.MethodPost)

	api.HandleFunc("/{code}/presence", h.join).Methods(http.MethodPost)
	api.HandleFunc("/{code}/presence", h.listParticipants).Methods(http.MethodGet)
	api.HandleFunc("/{code}/presence/{userID}", h.leave).Methods(http.MethodDelete)

	api.HandleFunc("/{code}/polls", h.createPoll).Methods(http.MethodPost)
	api.HandleFunc("/{code}/polls", h.listPolls).Methods(http.MethodGet)
	api.HandleFunc("/{code}/polls/{pollID}/votes", h.vote).Methods(http.MethodPost)
	api.HandleFunc("/{code}/polls/{pollID}/close", h.closePoll).Methods(http.MethodPost)

	api.HandleFunc("/{code}/questions", h.submitQuestion).Methods(http.MethodPost)
	api.HandleFunc("/{code}/questions", h.listQuestions).Methods(http.MethodGet)
	api.HandleFunc("/{code}/questions/{questionID}/upvotes", h.upvote).Methods(http.MethodPost)
	api.HandleFunc("/{code}/questions/{questionID}/answered", h.toggleAnswered).Methods(http.MethodPost)

	api.HandleFunc("/{code}/reactions", h.sendReaction).Methods(http.MethodPost)

	r.Use(logRequests)
	return h.cors(r)
}

func (h *Handler) originAllowed(origin string) bool {
	for _, allowed := range h.allowedOrigins {
		if allowed == "*" || allowed == origin {
			return true
		}
	}
	return false
}

func (h *Handler) health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
