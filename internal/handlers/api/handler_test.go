package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/KirkDiggler/lectern/internal/bus"
	"github.com/KirkDiggler/lectern/internal/codegen"
	"github.com/KirkDiggler/lectern/internal/common/clock"
	"github.com/KirkDiggler/lectern/internal/common/token"
	"github.com/KirkDiggler/lectern/internal/common/uuid"
	"github.com/KirkDiggler/lectern/internal/follower"
	"github.com/KirkDiggler/lectern/internal/models"
	pollRepo "github.com/KirkDiggler/lectern/internal/repositories/poll"
	presenceRepo "github.com/KirkDiggler/lectern/internal/repositories/presence"
	questionRepo "github.com/KirkDiggler/lectern/internal/repositories/question"
	sessionRepo "github.com/KirkDiggler/lectern/internal/repositories/session"
	slideContentRepo "github.com/KirkDiggler/lectern/internal/repositories/slide_content"
	"github.com/KirkDiggler/lectern/internal/services/broadcast"
	"github.com/KirkDiggler/lectern/internal/services/messaging"
	"github.com/KirkDiggler/lectern/internal/services/poll"
	"github.com/KirkDiggler/lectern/internal/services/presence"
	"github.com/KirkDiggler/lectern/internal/services/qa"
	"github.com/KirkDiggler/lectern/internal/services/reaction"
	"github.com/KirkDiggler/lectern/internal/services/session"
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"
)

const (
	waitFor = 2 * time.Second
	tick    = 10 * time.Millisecond
)

// HandlerTestSuite serves the real services on miniredis through httptest
type HandlerTestSuite struct {
	suite.Suite
	mr     *miniredis.Miniredis
	client *redis.Client
	server *httptest.Server
	ctx    context.Context
}

func (s *HandlerTestSuite) SetupTest() {
	mr, err := miniredis.Run()
	s.Require().NoError(err)
	s.mr = mr
	s.client = redis.NewClient(&redis.Options{Addr: mr.Addr()})
	s.ctx = context.Background()

	systemClock := &clock.DefaultClock{}
	ids := uuid.New()

	sessions, err := sessionRepo.NewRedis(&sessionRepo.Config{RedisClient: s.client})
	s.Require().NoError(err)
	participants, err := presenceRepo.NewRedis(&presenceRepo.Config{RedisClient: s.client})
	s.Require().NoError(err)
	slides, err := slideContentRepo.NewRedis(&slideContentRepo.Config{RedisClient: s.client})
	s.Require().NoError(err)
	polls, err := pollRepo.NewRedis(&pollRepo.Config{RedisClient: s.client})
	s.Require().NoError(err)
	questions, err := questionRepo.NewRedis(&questionRepo.Config{RedisClient: s.client})
	s.Require().NoError(err)

	memoryBus, err := bus.NewMemory(&bus.MemoryConfig{Clock: systemClock})
	s.Require().NoError(err)

	broadcaster, err := broadcast.New(&broadcast.Config{
		Bus:              memoryBus,
		SessionRepo:      sessions,
		PresenceRepo:     participants,
		SlideContentRepo: slides,
		PollRepo:         polls,
		QuestionRepo:     questions,
		Clock:            systemClock,
		UUIDGenerator:    ids,
	})
	s.Require().NoError(err)

	issuer, err := token.NewJWT(&token.Config{Secret: "handler-secret"})
	s.Require().NoError(err)

	sessionSvc, err := session.New(&session.Config{
		SessionRepo:      sessions,
		SlideContentRepo: slides,
		Expirers:         []session.Expirer{participants, slides, polls, questions, broadcaster},
		Broadcaster:      broadcaster,
		CodeGenerator:    codegen.New(&codegen.Config{Seed: 7}),
		TokenIssuer:      issuer,
		Clock:            systemClock,
	})
	s.Require().NoError(err)

	presenceSvc, err := presence.New(&presence.Config{
		SessionRepo:  sessions,
		PresenceRepo: participants,
		Broadcaster:  broadcaster,
		Clock:        systemClock,
	})
	s.Require().NoError(err)

	pollSvc, err := poll.New(&poll.Config{
		SessionRepo:   sessions,
		PollRepo:      polls,
		Broadcaster:   broadcaster,
		TokenIssuer:   issuer,
		Clock:         systemClock,
		UUIDGenerator: ids,
	})
	s.Require().NoError(err)

	qaSvc, err := qa.New(&qa.Config{
		SessionRepo:   sessions,
		QuestionRepo:  questions,
		Broadcaster:   broadcaster,
		TokenIssuer:   issuer,
		Clock:         systemClock,
		UUIDGenerator: ids,
	})
	s.Require().NoError(err)

	reactionSvc, err := reaction.New(&reaction.Config{
		RateLimit:     3,
		RateWindow:    time.Minute,
		RedisClient:   s.client,
		SessionRepo:   sessions,
		Broadcaster:   broadcaster,
		Clock:         systemClock,
		UUIDGenerator: ids,
	})
	s.Require().NoError(err)

	messages, err := messaging.NewService(&messaging.ServiceConfig{Seed: 1})
	s.Require().NoError(err)

	handler, err := New(&Config{
		SessionService:  sessionSvc,
		PresenceService: presenceSvc,
		PollService:     pollSvc,
		QAService:       qaSvc,
		ReactionService: reactionSvc,
		Broadcaster:     broadcaster,
		Messaging:       messages,
		AllowedOrigins:  []string{"*"},
	})
	s.Require().NoError(err)

	s.server = httptest.NewServer(handler.Router())
}

func (s *HandlerTestSuite) TearDownTest() {
	s.server.Close()
	s.client.Close()
	s.mr.Close()
}

func TestHandlerTestSuite(t *testing.T) {
	suite.Run(t, new(HandlerTestSuite))
}

func (s *HandlerTestSuite) do(method, path, presenterToken string, body any, out any) int {
	var reader *bytes.Reader
	if body != nil {
		data, err := json.Marshal(body)
		s.Require().NoError(err)
		reader = bytes.NewReader(data)
	} else {
		reader = bytes.NewReader(nil)
	}

	req, err := http.NewRequest(method, s.server.URL+path, reader)
	s.Require().NoError(err)
	req.Header.Set("Content-Type", "application/json")
	if presenterToken != "" {
		req.Header.Set("Authorization", "Bearer "+presenterToken)
	}

	resp, err := http.DefaultClient.Do(req)
	s.Require().NoError(err)
	defer resp.Body.Close()

	if out != nil {
		s.Require().NoError(json.NewDecoder(resp.Body).Decode(out))
	}
	return resp.StatusCode
}

func (s *HandlerTestSuite) createSession() *createSessionResponse {
	var created createSessionResponse
	status := s.do(http.MethodPost, "/api/sessions", "", &createSessionRequest{
		Title:       "Sepsis bundles",
		TotalSlides: 12,
	}, &created)
	s.Require().Equal(http.StatusCreated, status)
	s.Require().NotNil(created.Session)
	s.Require().NotEmpty(created.PresenterToken)
	return &created
}

func (s *HandlerTestSuite) TestCreateAndFollowSession() {
	created := s.createSession()

	var found models.Session
	status := s.do(http.MethodGet, "/follow/"+strings.ToLower(created.Session.Code), "", nil, &found)
	s.Equal(http.StatusOK, status)
	s.Equal(created.Session.Code, found.Code)
	s.True(found.IsActive)
}

func (s *HandlerTestSuite) TestFollowUnknownSession() {
	var body errorResponse
	status := s.do(http.MethodGet, "/follow/ZZZ999", "", nil, &body)
	s.Equal(http.StatusNotFound, status)
	s.Equal(string(messaging.ErrorTypeSessionNotFound), body.Error)
	s.Equal(messaging.SessionNotFoundMessage, body.Message)
}

func (s *HandlerTestSuite) TestSlideChangeRequiresPresenter() {
	created := s.createSession()
	path := "/api/sessions/" + created.Session.Code + "/slide"

	var body errorResponse
	status := s.do(http.MethodPost, path, "", &updateSlideRequest{SlideNumber: 3}, &body)
	s.Equal(http.StatusForbidden, status)
	s.Equal(string(messaging.ErrorTypeNotPresenter), body.Error)

	var updated updateSlideResponse
	status = s.do(http.MethodPost, path, created.PresenterToken, &updateSlideRequest{SlideNumber: 3}, &updated)
	s.Equal(http.StatusOK, status)
	s.Equal(3, updated.Session.CurrentSlide)
}

func (s *HandlerTestSuite) TestPollLifecycle() {
	created := s.createSession()
	base := "/api/sessions/" + created.Session.Code + "/polls"

	var opened createPollResponse
	status := s.do(http.MethodPost, base, created.PresenterToken, &createPollRequest{
		Question: "First-line vasopressor?",
		Options:  []string{"Norepinephrine", "Dopamine"},
	}, &opened)
	s.Require().Equal(http.StatusCreated, status)
	pollPath := base + "/" + opened.Poll.ID

	var first voteResponse
	status = s.do(http.MethodPost, pollPath+"/votes", "", &voteRequest{UserID: "u1", OptionIndex: 0}, &first)
	s.Equal(http.StatusOK, status)
	s.True(first.Recorded)
	s.Equal(1, first.Poll.TotalVotes)

	var repeat voteResponse
	status = s.do(http.MethodPost, pollPath+"/votes", "", &voteRequest{UserID: "u1", OptionIndex: 1}, &repeat)
	s.Equal(http.StatusOK, status)
	s.False(repeat.Recorded)
	s.Equal(1, repeat.Poll.TotalVotes)
	s.Equal(1, repeat.Poll.Options[0].Votes)

	status = s.do(http.MethodPost, pollPath+"/close", created.PresenterToken, nil, nil)
	s.Equal(http.StatusOK, status)

	var body errorResponse
	status = s.do(http.MethodPost, pollPath+"/votes", "", &voteRequest{UserID: "u2", OptionIndex: 0}, &body)
	s.Equal(http.StatusConflict, status)
	s.Equal(string(messaging.ErrorTypePollClosed), body.Error)

	var listed listPollsResponse
	status = s.do(http.MethodGet, base, "", nil, &listed)
	s.Equal(http.StatusOK, status)
	s.Nil(listed.ActivePoll)
	s.Require().Len(listed.History, 1)
	s.Equal(opened.Poll.ID, listed.History[0].ID)
}

func (s *HandlerTestSuite) TestSubmitQuestionTwiceReturnsExisting() {
	created := s.createSession()
	path := "/api/sessions/" + created.Session.Code + "/questions"
	req := &submitQuestionRequest{QuestionID: "q-1", Text: "Lactate threshold?", AskerID: "u1"}

	var first models.Question
	s.Equal(http.StatusCreated, s.do(http.MethodPost, path, "", req, &first))
	s.Equal("q-1", first.ID)
	s.Equal(models.AnonymousAsker, first.AskerName)

	var repeat models.Question
	s.Equal(http.StatusOK, s.do(http.MethodPost, path, "", req, &repeat))
	s.Equal("q-1", repeat.ID)

	var questions []*models.Question
	s.Equal(http.StatusOK, s.do(http.MethodGet, path, "", nil, &questions))
	s.Len(questions, 1)
}

func (s *HandlerTestSuite) TestReactionsAreValidatedAndLimited() {
	created := s.createSession()
	path := "/api/sessions/" + created.Session.Code + "/reactions"

	var body errorResponse
	status := s.do(http.MethodPost, path, "", &reactionRequest{Emoji: "🦄", UserID: "u1"}, &body)
	s.Equal(http.StatusBadRequest, status)
	s.Equal(string(messaging.ErrorTypeUnknownEmoji), body.Error)

	for i := 0; i < 3; i++ {
		status = s.do(http.MethodPost, path, "", &reactionRequest{Emoji: string(models.EmojiClap), UserID: "u1"}, nil)
		s.Equal(http.StatusAccepted, status)
	}

	status = s.do(http.MethodPost, path, "", &reactionRequest{Emoji: string(models.EmojiClap), UserID: "u1"}, &body)
	s.Equal(http.StatusTooManyRequests, status)
	s.Equal(string(messaging.ErrorTypeRateLimited), body.Error)
}

func (s *HandlerTestSuite) TestEndedSessionRejectsQuestions() {
	created := s.createSession()
	base := "/api/sessions/" + created.Session.Code

	s.Equal(http.StatusOK, s.do(http.MethodPost, base+"/end", created.PresenterToken, nil, nil))

	var body errorResponse
	status := s.do(http.MethodPost, base+"/questions", "", &submitQuestionRequest{Text: "Too late?"}, &body)
	s.Equal(http.StatusConflict, status)
	s.Equal(string(messaging.ErrorTypeSessionEnded), body.Error)
}

func (s *HandlerTestSuite) dial(code, userID string) *follower.Client {
	c, err := follower.Dial(s.ctx, &follower.ClientConfig{
		ServerURL:     s.server.URL,
		Code:          code,
		UserID:        userID,
		UserName:      "Dr " + userID,
		Clock:         &clock.DefaultClock{},
		UUIDGenerator: uuid.New(),
	})
	s.Require().NoError(err)
	return c
}

func (s *HandlerTestSuite) TestFollowerReceivesSnapshotAndPresence() {
	created := s.createSession()
	c := s.dial(created.Session.Code, "u1")

	s.Eventually(func() bool {
		sess := c.State().Session()
		return sess != nil && sess.Code == created.Session.Code
	}, waitFor, tick)
	s.Eventually(func() bool {
		participants := c.State().Participants()
		return len(participants) == 1 && participants[0].UserID == "u1"
	}, waitFor, tick)

	s.Require().NoError(c.Close())

	s.Eventually(func() bool {
		var participants []*models.Participant
		status := s.do(http.MethodGet, "/api/sessions/"+created.Session.Code+"/presence", "", nil, &participants)
		return status == http.StatusOK && len(participants) == 0
	}, waitFor, tick)
}

func (s *HandlerTestSuite) TestFollowerVoteIsCountedOnce() {
	created := s.createSession()
	c := s.dial(created.Session.Code, "u1")
	defer c.Close()

	s.Eventually(func() bool { return c.State().Session() != nil }, waitFor, tick)

	var opened createPollResponse
	status := s.do(http.MethodPost, "/api/sessions/"+created.Session.Code+"/polls", created.PresenterToken, &createPollRequest{
		Question: "Fluids first?",
		Options:  []string{"Yes", "No"},
	}, &opened)
	s.Require().Equal(http.StatusCreated, status)

	s.Eventually(func() bool {
		active := c.State().ActivePoll()
		return active != nil && active.ID == opened.Poll.ID
	}, waitFor, tick)

	s.Require().NoError(c.Vote(opened.Poll.ID, 1))
	s.Equal(1, c.State().ActivePoll().TotalVotes)

	s.Eventually(func() bool {
		var listed listPollsResponse
		s.do(http.MethodGet, "/api/sessions/"+created.Session.Code+"/polls", "", nil, &listed)
		return listed.ActivePoll != nil && listed.ActivePoll.TotalVotes == 1
	}, waitFor, tick)

	// the echo of our own vote must not count twice
	s.Never(func() bool {
		return c.State().ActivePoll().TotalVotes != 1
	}, 100*time.Millisecond, tick)
	s.Equal(1, c.State().ActivePoll().Options[1].Votes)
}

func (s *HandlerTestSuite) TestFollowerAskIsShownOnce() {
	created := s.createSession()
	c := s.dial(created.Session.Code, "u1")
	defer c.Close()

	s.Eventually(func() bool { return c.State().Session() != nil }, waitFor, tick)

	question, err := c.Ask("Steroids in septic shock?")
	s.Require().NoError(err)

	s.Eventually(func() bool {
		var questions []*models.Question
		s.do(http.MethodGet, "/api/sessions/"+created.Session.Code+"/questions", "", nil, &questions)
		return len(questions) == 1 && questions[0].ID == question.ID
	}, waitFor, tick)

	s.Never(func() bool {
		return len(c.State().Questions()) != 1
	}, 100*time.Millisecond, tick)
}

func (s *HandlerTestSuite) TestFollowerErrorsComeBackOnTheSocket() {
	created := s.createSession()

	errs := make(chan *models.ErrorPayload, 1)
	c, err := follower.Dial(s.ctx, &follower.ClientConfig{
		ServerURL:     s.server.URL,
		Code:          created.Session.Code,
		UserID:        "u1",
		Clock:         &clock.DefaultClock{},
		UUIDGenerator: uuid.New(),
		OnError: func(payload *models.ErrorPayload) {
			errs <- payload
		},
	})
	s.Require().NoError(err)
	defer c.Close()

	// the limit is three per minute, so the fourth reaction is refused
	for i := 0; i < 4; i++ {
		_, err := c.React(models.EmojiHeart, 0.5, 0.5)
		s.Require().NoError(err)
	}

	select {
	case payload := <-errs:
		s.Equal(string(messaging.ErrorTypeRateLimited), payload.Type)
		s.NotEmpty(payload.Message)
	case <-time.After(waitFor):
		s.Fail("no error event received")
	}
}

func (s *HandlerTestSuite) TestDialUnknownSessionFails() {
	_, err := follower.Dial(s.ctx, &follower.ClientConfig{
		ServerURL:     s.server.URL,
		Code:          "ZZZ999",
		UserID:        "u1",
		Clock:         &clock.DefaultClock{},
		UUIDGenerator: uuid.New(),
	})
	s.Error(err)
}
