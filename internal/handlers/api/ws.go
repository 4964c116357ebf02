package api

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/KirkDiggler/lectern/internal/models"
	"github.com/KirkDiggler/lectern/internal/services/broadcast"
	"github.com/KirkDiggler/lectern/internal/services/poll"
	"github.com/KirkDiggler/lectern/internal/services/presence"
	"github.com/KirkDiggler/lectern/internal/services/qa"
	"github.com/KirkDiggler/lectern/internal/services/reaction"
	"github.com/KirkDiggler/lectern/internal/services/session"
	"github.com/gorilla/mux"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

const (
	writeWait      = 5 * time.Second
	maxMessageSize = 64 * 1024
	leaveTimeout   = 5 * time.Second
)

// ErrBackpressure is returned when a socket's send buffer is full
var ErrBackpressure = errors.New("backpressure")

// socket is one upgraded connection. Frames queue on send and a single
// write pump owns the connection's writer.
type socket struct {
	conn *websocket.Conn
	send chan []byte

	code      string
	userID    string
	userName  string
	presenter string

	mu     sync.RWMutex
	closed bool
}

// TrySend queues a frame without blocking
func (c *socket) TrySend(frame []byte) error {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if c.closed {
		return errors.New("connection closed")
	}
	select {
	case c.send <- frame:
	default:
		return ErrBackpressure
	}
	return nil
}

func (c *socket) Close() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.closed {
		return
	}
	c.closed = true
	close(c.send)
	_ = c.conn.Close()
}

func (c *socket) sendEvent(event *models.Event) {
	data, err := json.Marshal(event)
	if err != nil {
		log.Error().Err(err).Str("module", "ws").Msg("failed to marshal event")
		return
	}
	if err := c.TrySend(data); err != nil {
		if errors.Is(err, ErrBackpressure) {
			log.Warn().Str("module", "ws").Str("code", c.code).Str("user_id", c.userID).Msg("slow socket dropped")
			c.Close()
		}
	}
}

func (h *Handler) serveWS(w http.ResponseWriter, r *http.Request) {
	code := mux.Vars(r)["code"]
	query := r.URL.Query()
	userID := query.Get("user_id")
	if userID == "" {
		h.writeError(w, r, presence.ErrInvalidInput)
		return
	}

	found, err := h.sessions.GetSession(r.Context(), &session.GetSessionInput{Code: code})
	if err != nil {
		h.writeError(w, r, err)
		return
	}
	code = found.Session.Code

	// A valid presenter token makes this the presenter's socket, which may
	// move the cursor and does not count as an audience member
	presenterToken := query.Get("presenter_token")
	if presenterToken != "" {
		if err := h.sessions.VerifyPresenter(r.Context(), &session.VerifyPresenterInput{
			Code:           code,
			PresenterToken: presenterToken,
		}); err != nil {
			h.writeError(w, r, err)
			return
		}
	}

	conn, err := h.upgrader.Upgrade(w, r, nil)
	if err != nil {
		log.Warn().Err(err).Str("module", "ws").Str("code", code).Msg("upgrade failed")
		return
	}

	c := &socket{
		conn:      conn,
		send:      make(chan []byte, h.sendBuffer),
		code:      code,
		userID:    userID,
		userName:  query.Get("user_name"),
		presenter: presenterToken,
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	go h.writePump(ctx, c)

	sub, err := h.broadcast.Subscribe(ctx, &broadcast.SubscribeInput{
		Code:    code,
		Handler: c.sendEvent,
	})
	if err != nil {
		log.Warn().Err(err).Str("module", "ws").Str("code", code).Msg("subscribe failed")
		h.sendError(ctx, c, "", err)
		c.Close()
		return
	}
	defer sub.Unsubscribe()

	if c.presenter == "" {
		joined, err := h.presence.Join(ctx, &presence.JoinInput{
			Code:     code,
			UserID:   userID,
			UserName: c.userName,
		})
		if err != nil || !joined.Success {
			if err == nil {
				err = presence.ErrSessionNotFound
			}
			h.sendError(ctx, c, "", err)
			c.Close()
			return
		}
		defer h.leaveSocket(code, userID)
	}

	log.Info().Str("module", "ws").Str("code", code).Str("user_id", userID).Bool("presenter", c.presenter != "").Msg("socket connected")
	h.readPump(ctx, c)
}

// leaveSocket runs after the request context is gone, so it gets its own
func (h *Handler) leaveSocket(code, userID string) {
	ctx, cancel := context.WithTimeout(context.Background(), leaveTimeout)
	defer cancel()

	if _, err := h.presence.Leave(ctx, &presence.LeaveInput{Code: code, UserID: userID}); err != nil {
		log.Warn().Err(err).Str("module", "ws").Str("code", code).Str("user_id", userID).Msg("leave failed")
	}
}

func (h *Handler) writePump(ctx context.Context, c *socket) {
	ticker := time.NewTicker(h.pingInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case data, ok := <-c.send:
			if !ok {
				return
			}
			if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
				c.Close()
				return
			}
			if err := c.conn.WriteMessage(websocket.TextMessage, data); err != nil {
				log.Debug().Err(err).Str("module", "ws").Str("code", c.code).Msg("write failed")
				c.Close()
				return
			}
		case <-ticker.C:
			if err := c.conn.WriteControl(websocket.PingMessage, nil, time.Now().Add(writeWait)); err != nil {
				c.Close()
				return
			}
		}
	}
}

func (h *Handler) readPump(ctx context.Context, c *socket) {
	defer c.Close()

	pongWait := h.pingInterval + h.pingInterval/2
	c.conn.SetReadLimit(maxMessageSize)
	_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))
	c.conn.SetPongHandler(func(string) error {
		return c.conn.SetReadDeadline(time.Now().Add(pongWait))
	})

	for {
		_, data, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				log.Debug().Err(err).Str("module", "ws").Str("code", c.code).Msg("read failed")
			}
			return
		}
		_ = c.conn.SetReadDeadline(time.Now().Add(pongWait))

		var msg models.ClientMessage
		if err := json.Unmarshal(data, &msg); err != nil {
			h.sendError(ctx, c, "", errBadBody)
			continue
		}
		if err := h.handleMessage(ctx, c, &msg); err != nil {
			h.sendError(ctx, c, msg.RequestID, err)
		}
	}
}

func (h *Handler) handleMessage(ctx context.Context, c *socket, msg *models.ClientMessage) error {
	switch msg.Type {
	case models.ClientVote:
		_, err := h.polls.Vote(ctx, &poll.VoteInput{
			Code:        c.code,
			PollID:      msg.PollID,
			OptionIndex: msg.OptionIndex,
			UserID:      c.userID,
		})
		return err

	case models.ClientUpvote:
		_, err := h.qa.Upvote(ctx, &qa.UpvoteInput{
			Code:       c.code,
			QuestionID: msg.QuestionID,
			UserID:     c.userID,
		})
		return err

	case models.ClientQuestion:
		_, err := h.qa.SubmitQuestion(ctx, &qa.SubmitQuestionInput{
			Code:       c.code,
			QuestionID: msg.QuestionID,
			Text:       msg.Text,
			AskerID:    c.userID,
			AskerName:  c.userName,
		})
		return err

	case models.ClientReaction:
		_, err := h.reactions.Send(ctx, &reaction.SendInput{
			Code:       c.code,
			ReactionID: msg.ReactionID,
			Emoji:      msg.Emoji,
			X:          msg.X,
			Y:          msg.Y,
			UserID:     c.userID,
			UserName:   c.userName,
		})
		return err

	case models.ClientCursor:
		token := msg.PresenterToken
		if token == "" {
			token = c.presenter
		}
		_, err := h.sessions.MoveCursor(ctx, &session.MoveCursorInput{
			Code:           c.code,
			PresenterToken: token,
			X:              msg.X,
			Y:              msg.Y,
		})
		return err

	case models.ClientPing:
		pong, err := models.NewEvent("", models.EventPong, c.code, struct{}{}, time.Now())
		if err != nil {
			return err
		}
		c.sendEvent(pong)
		return nil

	default:
		log.Debug().Str("module", "ws").Str("type", string(msg.Type)).Msg("unknown message")
		return errBadBody
	}
}

func (h *Handler) sendError(ctx context.Context, c *socket, requestID string, err error) {
	errorType, message := h.userError(ctx, err)
	event, marshalErr := models.NewEvent("", models.EventError, c.code, &models.ErrorPayload{
		RequestID: requestID,
		Type:      string(errorType),
		Message:   message,
	}, time.Now())
	if marshalErr != nil {
		return
	}
	c.sendEvent(event)
}
