package follower

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"sync"
	"time"

	"github.com/KirkDiggler/lectern/internal/common/clock"
	"github.com/KirkDiggler/lectern/internal/common/uuid"
	"github.com/KirkDiggler/lectern/internal/models"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog/log"
)

const writeWait = 5 * time.Second

var (
	// ErrClosed is returned when using a client after Close
	ErrClosed = errors.New("follower client closed")

	// ErrNotApplied is returned when a local action would not change anything,
	// such as voting twice; nothing is sent
	ErrNotApplied = errors.New("action already applied")
)

// ClientConfig holds configuration for a follower client
type ClientConfig struct {
	// ServerURL is the base url of the server, e.g. ws://localhost:8080
	ServerURL string
	Code      string
	UserID    string
	UserName  string

	// Dialer defaults to websocket.DefaultDialer
	Dialer *websocket.Dialer

	Clock         clock.Clock
	UUIDGenerator uuid.UUID

	// OnChange is called after every applied event or local action
	OnChange func()

	// OnError receives error replies from the server
	OnError func(*models.ErrorPayload)
}

// Client is a phone-side follower of a live session
type Client struct {
	code          string
	userID        string
	userName      string
	clock         clock.Clock
	uuidGenerator uuid.UUID
	onChange      func()
	onError       func(*models.ErrorPayload)

	conn  *websocket.Conn
	state *State

	writeMu sync.Mutex
	once    sync.Once
	done    chan struct{}
}

// Dial connects to a session and starts applying its events. The first
// event received is the session snapshot.
func Dial(ctx context.Context, cfg *ClientConfig) (*Client, error) {
	if cfg == nil {
		return nil, errors.New("config cannot be nil")
	}
	if cfg.ServerURL == "" || cfg.Code == "" || cfg.UserID == "" {
		return nil, errors.New("server url, code and user id are required")
	}
	if cfg.Clock == nil {
		return nil, errors.New("clock cannot be nil")
	}
	if cfg.UUIDGenerator == nil {
		return nil, errors.New("uuid generator cannot be nil")
	}

	target, err := sessionURL(cfg.ServerURL, cfg.Code, cfg.UserID, cfg.UserName)
	if err != nil {
		return nil, err
	}

	dialer := cfg.Dialer
	if dialer == nil {
		dialer = websocket.DefaultDialer
	}

	conn, resp, err := dialer.DialContext(ctx, target, nil)
	if err != nil {
		if resp != nil && resp.StatusCode == http.StatusNotFound {
			return nil, fmt.Errorf("session %s not found: %w", cfg.Code, err)
		}
		return nil, fmt.Errorf("failed to dial session: %w", err)
	}

	c := &Client{
		code:          strings.ToUpper(cfg.Code),
		userID:        cfg.UserID,
		userName:      cfg.UserName,
		clock:         cfg.Clock,
		uuidGenerator: cfg.UUIDGenerator,
		onChange:      cfg.OnChange,
		onError:       cfg.OnError,
		conn:          conn,
		done:          make(chan struct{}),
	}

	overlay, err := NewOverlay(&OverlayConfig{
		Clock:         cfg.Clock,
		UUIDGenerator: cfg.UUIDGenerator,
		OnChange:      c.changed,
	})
	if err != nil {
		conn.Close()
		return nil, err
	}
	c.state = NewState(overlay)

	go c.readLoop()

	return c, nil
}

func sessionURL(serverURL, code, userID, userName string) (string, error) {
	base, err := url.Parse(serverURL)
	if err != nil {
		return "", fmt.Errorf("invalid server url: %w", err)
	}
	switch base.Scheme {
	case "http":
		base.Scheme = "ws"
	case "https":
		base.Scheme = "wss"
	}

	base.Path = strings.TrimRight(base.Path, "/") + "/ws/sessions/" + url.PathEscape(strings.ToUpper(code))
	query := url.Values{}
	query.Set("user_id", userID)
	if userName != "" {
		query.Set("user_name", userName)
	}
	base.RawQuery = query.Encode()

	return base.String(), nil
}

func (c *Client) readLoop() {
	defer c.Close()

	for {
		var event models.Event
		if err := c.conn.ReadJSON(&event); err != nil {
			select {
			case <-c.done:
			default:
				log.Debug().Err(err).Str("module", "follower").Str("code", c.code).Msg("read loop ended")
			}
			return
		}

		switch event.Type {
		case models.EventError:
			var payload models.ErrorPayload
			if err := event.Decode(&payload); err == nil && c.onError != nil {
				c.onError(&payload)
			}
			continue
		case models.EventPong:
			continue
		}

		if err := c.state.Apply(&event); err != nil {
			log.Warn().Err(err).Str("module", "follower").Str("type", string(event.Type)).Msg("failed to apply event")
			continue
		}
		if event.Type != models.EventReaction {
			c.changed()
		}
	}
}

func (c *Client) send(msg *models.ClientMessage) error {
	select {
	case <-c.done:
		return ErrClosed
	default:
	}

	c.writeMu.Lock()
	defer c.writeMu.Unlock()

	if err := c.conn.SetWriteDeadline(time.Now().Add(writeWait)); err != nil {
		return err
	}
	return c.conn.WriteJSON(msg)
}

// Vote applies the vote locally, then sends it
func (c *Client) Vote(pollID string, optionIndex int) error {
	if !c.state.LocalVote(pollID, optionIndex, c.userID) {
		return ErrNotApplied
	}
	c.changed()

	return c.send(&models.ClientMessage{
		Type:        models.ClientVote,
		PollID:      pollID,
		OptionIndex: optionIndex,
	})
}

// Upvote applies the upvote locally, then sends it
func (c *Client) Upvote(questionID string) error {
	if !c.state.LocalUpvote(questionID, c.userID) {
		return ErrNotApplied
	}
	c.changed()

	return c.send(&models.ClientMessage{
		Type:       models.ClientUpvote,
		QuestionID: questionID,
	})
}

// Ask shows the question locally under a fresh id, then sends it with
// that id so the server's echo is recognised
func (c *Client) Ask(text string) (*models.Question, error) {
	text = strings.TrimSpace(text)
	if text == "" {
		return nil, errors.New("question cannot be empty")
	}

	askerName := c.userName
	if askerName == "" {
		askerName = models.AnonymousAsker
	}

	question := &models.Question{
		ID:          c.uuidGenerator.NewUUID(),
		SessionCode: c.code,
		Text:        text,
		AskerID:     c.userID,
		AskerName:   askerName,
		Upvoters:    []string{},
		CreatedAt:   c.clock.Now(),
	}
	c.state.LocalQuestion(question)
	c.changed()

	return question, c.send(&models.ClientMessage{
		Type:       models.ClientQuestion,
		QuestionID: question.ID,
		Text:       text,
	})
}

// React floats the reaction locally, then sends it with the same id
func (c *Client) React(emoji models.Emoji, x, y float64) (*models.Reaction, error) {
	if !models.IsAllowedEmoji(string(emoji)) {
		return nil, fmt.Errorf("unknown emoji %q", emoji)
	}
	if x < 0 || x > 1 || y < 0 || y > 1 {
		return nil, fmt.Errorf("reaction position (%v, %v) is outside the screen", x, y)
	}

	reaction := &models.Reaction{
		ID:       c.uuidGenerator.NewUUID(),
		Emoji:    emoji,
		X:        x,
		Y:        y,
		UserID:   c.userID,
		UserName: c.userName,
		SentAt:   c.clock.Now(),
	}
	c.state.LocalReaction(reaction)

	return reaction, c.send(&models.ClientMessage{
		Type:       models.ClientReaction,
		ReactionID: reaction.ID,
		Emoji:      string(emoji),
		X:          x,
		Y:          y,
	})
}

// Ping asks the server for a pong, keeping idle proxies from closing the socket
func (c *Client) Ping() error {
	return c.send(&models.ClientMessage{Type: models.ClientPing})
}

// State returns the client's local session state
func (c *Client) State() *State {
	return c.state
}

// Done is closed once the client stops
func (c *Client) Done() <-chan struct{} {
	return c.done
}

// Close disconnects and stops every overlay timer
func (c *Client) Close() error {
	var err error
	c.once.Do(func() {
		close(c.done)

		c.writeMu.Lock()
		_ = c.conn.WriteControl(
			websocket.CloseMessage,
			websocket.FormatCloseMessage(websocket.CloseNormalClosure, ""),
			time.Now().Add(writeWait),
		)
		c.writeMu.Unlock()

		err = c.conn.Close()
		c.state.Overlay().Close()
	})
	return err
}

func (c *Client) changed() {
	if c.onChange != nil {
		c.onChange()
	}
}
