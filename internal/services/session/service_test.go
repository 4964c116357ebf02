package session

import (
	"context"
	"errors"
	"testing"
	"time"

	codegenMocks "github.com/KirkDiggler/lectern/internal/codegen/mocks"
	"github.com/KirkDiggler/lectern/internal/common/clock/mocks"
	tokenMocks "github.com/KirkDiggler/lectern/internal/common/token/mocks"
	"github.com/KirkDiggler/lectern/internal/models"
	pollMocks "github.com/KirkDiggler/lectern/internal/repositories/poll/mocks"
	sessionRepo "github.com/KirkDiggler/lectern/internal/repositories/session"
	sessionMocks "github.com/KirkDiggler/lectern/internal/repositories/session/mocks"
	slideContentRepo "github.com/KirkDiggler/lectern/internal/repositories/slide_content"
	slideMocks "github.com/KirkDiggler/lectern/internal/repositories/slide_content/mocks"
	"github.com/KirkDiggler/lectern/internal/services/broadcast"
	broadcastMocks "github.com/KirkDiggler/lectern/internal/services/broadcast/mocks"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type SessionServiceTestSuite struct {
	suite.Suite
	mockCtrl        *gomock.Controller
	mockSessionRepo *sessionMocks.MockRepository
	mockSlideRepo   *slideMocks.MockRepository
	mockPollRepo    *pollMocks.MockRepository
	mockBroadcaster *broadcastMocks.MockService
	mockGenerator   *codegenMocks.MockGenerator
	mockIssuer      *tokenMocks.MockIssuer
	mockClock       *mocks.MockClock
	service         Service
	ctx             context.Context

	// Test data
	testTime    time.Time
	testCode    string
	testToken   string
	testSession *models.Session
}

func (s *SessionServiceTestSuite) SetupTest() {
	s.mockCtrl = gomock.NewController(s.T())
	s.mockSessionRepo = sessionMocks.NewMockRepository(s.mockCtrl)
	s.mockSlideRepo = slideMocks.NewMockRepository(s.mockCtrl)
	s.mockPollRepo = pollMocks.NewMockRepository(s.mockCtrl)
	s.mockBroadcaster = broadcastMocks.NewMockService(s.mockCtrl)
	s.mockGenerator = codegenMocks.NewMockGenerator(s.mockCtrl)
	s.mockIssuer = tokenMocks.NewMockIssuer(s.mockCtrl)
	s.mockClock = mocks.NewMockClock(s.mockCtrl)
	s.ctx = context.Background()

	s.testTime = time.Date(2025, 4, 19, 12, 0, 0, 0, time.UTC)
	s.testCode = "AB3D7H"
	s.testToken = "presenter-token"
	s.testSession = &models.Session{
		Code:         s.testCode,
		Title:        "Sepsis bundle",
		TotalSlides:  10,
		CurrentSlide: 0,
		IsActive:     true,
		StartedAt:    s.testTime,
	}

	s.mockClock.EXPECT().Now().Return(s.testTime).AnyTimes()

	svc, err := New(&Config{
		PublicOrigin:     "https://lectern.test/",
		SessionRepo:      s.mockSessionRepo,
		SlideContentRepo: s.mockSlideRepo,
		Expirers:         []Expirer{s.mockPollRepo},
		Broadcaster:      s.mockBroadcaster,
		CodeGenerator:    s.mockGenerator,
		TokenIssuer:      s.mockIssuer,
		Clock:            s.mockClock,
	})
	s.Require().NoError(err)
	s.service = svc
}

func (s *SessionServiceTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestSessionServiceTestSuite(t *testing.T) {
	suite.Run(t, new(SessionServiceTestSuite))
}

func (s *SessionServiceTestSuite) expectPresenter() {
	s.mockIssuer.EXPECT().Verify(s.testCode, s.testToken).Return(nil)
}

func (s *SessionServiceTestSuite) expectLookup() {
	s.mockSessionRepo.EXPECT().
		GetSession(gomock.Any(), &sessionRepo.GetSessionInput{Code: s.testCode}).
		Return(s.testSession, nil)
}

// expectUpdate runs the service's change against a copy of stored, the way
// the repository applies it to the freshly read session
func (s *SessionServiceTestSuite) expectUpdate(stored *models.Session) *gomock.Call {
	return s.mockSessionRepo.EXPECT().
		UpdateSession(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, input *sessionRepo.UpdateSessionInput) (*models.Session, error) {
			s.Equal(stored.Code, input.Code)
			current := *stored
			if err := input.Apply(&current); err != nil {
				return nil, err
			}
			return &current, nil
		})
}

func (s *SessionServiceTestSuite) expectBroadcast(eventType models.EventType) *gomock.Call {
	return s.mockBroadcaster.EXPECT().
		Broadcast(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, input *broadcast.BroadcastInput) (*broadcast.BroadcastOutput, error) {
			s.Equal(s.testCode, input.Code)
			s.Equal(eventType, input.Type)
			return &broadcast.BroadcastOutput{Event: &models.Event{Type: eventType}}, nil
		})
}

func (s *SessionServiceTestSuite) TestNewRequiresDependencies() {
	_, err := New(nil)
	s.ErrorIs(err, ErrNilConfig)

	_, err = New(&Config{SessionRepo: s.mockSessionRepo})
	s.ErrorIs(err, ErrNilSlideContentRepo)
}

func (s *SessionServiceTestSuite) TestCreateSession() {
	s.mockGenerator.EXPECT().Generate().Return(s.testCode)
	s.mockSessionRepo.EXPECT().
		CreateSession(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, input *sessionRepo.CreateSessionInput) error {
			s.Equal(s.testCode, input.Session.Code)
			s.Equal("Sepsis bundle", input.Session.Title)
			s.Equal(0, input.Session.CurrentSlide)
			s.True(input.Session.IsActive)
			s.Equal(s.testTime, input.Session.StartedAt)
			return nil
		})
	s.mockIssuer.EXPECT().Issue(s.testCode).Return(s.testToken, nil)
	s.expectBroadcast(models.EventSlideChange)

	output, err := s.service.CreateSession(s.ctx, &CreateSessionInput{
		Title:         "  Sepsis bundle ",
		TotalSlides:   10,
		PresenterName: "Dr. Osei",
	})
	s.Require().NoError(err)
	s.Equal(s.testCode, output.Session.Code)
	s.Equal("Dr. Osei", output.Session.PresenterName)
	s.Equal(s.testToken, output.PresenterToken)
	s.Equal("https://lectern.test/follow/AB3D7H", output.FollowURL)
}

func (s *SessionServiceTestSuite) TestCreateSessionRetriesTakenCode() {
	gomock.InOrder(
		s.mockGenerator.EXPECT().Generate().Return("AAAAAA"),
		s.mockGenerator.EXPECT().Generate().Return(s.testCode),
	)
	gomock.InOrder(
		s.mockSessionRepo.EXPECT().CreateSession(gomock.Any(), gomock.Any()).Return(sessionRepo.ErrCodeTaken),
		s.mockSessionRepo.EXPECT().CreateSession(gomock.Any(), gomock.Any()).Return(nil),
	)
	s.mockIssuer.EXPECT().Issue(s.testCode).Return(s.testToken, nil)
	s.expectBroadcast(models.EventSlideChange)

	output, err := s.service.CreateSession(s.ctx, &CreateSessionInput{Title: "Sepsis bundle", TotalSlides: 10})
	s.Require().NoError(err)
	s.Equal(s.testCode, output.Session.Code)
}

func (s *SessionServiceTestSuite) TestCreateSessionCodeSpaceExhausted() {
	s.mockGenerator.EXPECT().Generate().Return("AAAAAA").Times(MaxCodeAttempts)
	s.mockSessionRepo.EXPECT().CreateSession(gomock.Any(), gomock.Any()).Return(sessionRepo.ErrCodeTaken).Times(MaxCodeAttempts)

	_, err := s.service.CreateSession(s.ctx, &CreateSessionInput{Title: "Sepsis bundle", TotalSlides: 10})
	s.ErrorIs(err, ErrCodeSpaceExhausted)
}

func (s *SessionServiceTestSuite) TestCreateSessionInvalidInput() {
	_, err := s.service.CreateSession(s.ctx, &CreateSessionInput{Title: "   ", TotalSlides: 10})
	s.ErrorIs(err, ErrInvalidInput)

	_, err = s.service.CreateSession(s.ctx, &CreateSessionInput{Title: "Deck", TotalSlides: 0})
	s.ErrorIs(err, ErrInvalidInput)
}

func (s *SessionServiceTestSuite) TestGetSessionIsCaseInsensitive() {
	s.mockSessionRepo.EXPECT().
		GetSession(gomock.Any(), &sessionRepo.GetSessionInput{Code: "AB3D7H"}).
		Return(s.testSession, nil).
		Times(2)

	lower, err := s.service.GetSession(s.ctx, &GetSessionInput{Code: "ab3d7h"})
	s.Require().NoError(err)
	upper, err := s.service.GetSession(s.ctx, &GetSessionInput{Code: " AB3D7H "})
	s.Require().NoError(err)

	s.Equal(lower.Session, upper.Session)
}

func (s *SessionServiceTestSuite) TestGetSessionNotFound() {
	s.mockSessionRepo.EXPECT().
		GetSession(gomock.Any(), &sessionRepo.GetSessionInput{Code: "ZZZZZZ"}).
		Return(nil, sessionRepo.ErrSessionNotFound)

	_, err := s.service.GetSession(s.ctx, &GetSessionInput{Code: "zzzzzz"})
	s.ErrorIs(err, ErrSessionNotFound)
}

func (s *SessionServiceTestSuite) TestGetSessionMalformedCodeSkipsLookup() {
	_, err := s.service.GetSession(s.ctx, &GetSessionInput{Code: "O0I1"})
	s.ErrorIs(err, ErrSessionNotFound)
}

func (s *SessionServiceTestSuite) TestUpdateSlide() {
	s.expectPresenter()
	s.expectLookup()
	s.expectUpdate(s.testSession)
	s.expectBroadcast(models.EventSlideChange)

	output, err := s.service.UpdateSlide(s.ctx, &UpdateSlideInput{
		Code:           "ab3d7h",
		PresenterToken: s.testToken,
		SlideNumber:    3,
	})
	s.Require().NoError(err)
	s.Equal(3, output.Session.CurrentSlide)
	s.Nil(output.SlideContent)
}

func (s *SessionServiceTestSuite) TestUpdateSlideProjectsMarkup() {
	s.expectPresenter()
	s.expectLookup()
	s.expectUpdate(s.testSession)
	s.mockSlideRepo.EXPECT().
		SaveSlideContent(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, input *slideContentRepo.SaveSlideContentInput) error {
			s.Equal(s.testCode, input.SessionCode)
			s.Equal(2, input.Content.SlideNumber)
			s.Equal("Fluids", input.Content.Title)
			return nil
		})
	gomock.InOrder(
		s.expectBroadcast(models.EventSlideChange),
		s.expectBroadcast(models.EventSlideContent),
	)

	output, err := s.service.UpdateSlide(s.ctx, &UpdateSlideInput{
		Code:           s.testCode,
		PresenterToken: s.testToken,
		SlideNumber:    2,
		Markup:         `<h1>Fluids</h1><ul><li>30 mL/kg</li></ul>`,
	})
	s.Require().NoError(err)
	s.Require().NotNil(output.SlideContent)
	s.Equal([]string{"30 mL/kg"}, output.SlideContent.KeyPoints)
}

func (s *SessionServiceTestSuite) TestUpdateSlideOutOfRange() {
	s.expectPresenter()
	s.expectLookup()

	_, err := s.service.UpdateSlide(s.ctx, &UpdateSlideInput{Code: s.testCode, PresenterToken: s.testToken, SlideNumber: 10})
	s.ErrorIs(err, ErrSlideOutOfRange)
}

func (s *SessionServiceTestSuite) TestUpdateSlideRequiresPresenter() {
	s.mockIssuer.EXPECT().Verify(s.testCode, "forged").Return(errors.New("bad signature"))

	_, err := s.service.UpdateSlide(s.ctx, &UpdateSlideInput{Code: s.testCode, PresenterToken: "forged", SlideNumber: 1})
	s.ErrorIs(err, ErrNotPresenter)

	_, err = s.service.UpdateSlide(s.ctx, &UpdateSlideInput{Code: s.testCode, SlideNumber: 1})
	s.ErrorIs(err, ErrNotPresenter)
}

func (s *SessionServiceTestSuite) TestUpdateSlideRejectsEndedSession() {
	s.testSession.End(s.testTime)
	s.expectPresenter()
	s.expectLookup()

	_, err := s.service.UpdateSlide(s.ctx, &UpdateSlideInput{Code: s.testCode, PresenterToken: s.testToken, SlideNumber: 1})
	s.ErrorIs(err, ErrSessionInactive)
}

func (s *SessionServiceTestSuite) TestUpdateSlideLosesToConcurrentEnd() {
	s.expectPresenter()
	s.expectLookup()

	// The session ends between the lookup and the write
	ended := *s.testSession
	ended.End(s.testTime.Add(time.Minute))
	s.expectUpdate(&ended)

	_, err := s.service.UpdateSlide(s.ctx, &UpdateSlideInput{Code: s.testCode, PresenterToken: s.testToken, SlideNumber: 4})
	s.ErrorIs(err, ErrSessionInactive)
}

func (s *SessionServiceTestSuite) TestUpdateSlideSurvivesBroadcastFailure() {
	s.expectPresenter()
	s.expectLookup()
	s.expectUpdate(s.testSession)
	s.mockBroadcaster.EXPECT().Broadcast(gomock.Any(), gomock.Any()).Return(nil, errors.New("redis down"))

	output, err := s.service.UpdateSlide(s.ctx, &UpdateSlideInput{Code: s.testCode, PresenterToken: s.testToken, SlideNumber: 5})
	s.Require().NoError(err)
	s.Equal(5, output.Session.CurrentSlide)
}

func (s *SessionServiceTestSuite) TestMoveCursorClamps() {
	s.expectPresenter()
	s.expectLookup()
	s.mockBroadcaster.EXPECT().
		Broadcast(gomock.Any(), gomock.Any()).
		DoAndReturn(func(ctx context.Context, input *broadcast.BroadcastInput) (*broadcast.BroadcastOutput, error) {
			s.Equal(models.EventCursor, input.Type)
			s.Equal(&models.CursorPayload{X: 1, Y: 0}, input.Payload)
			return &broadcast.BroadcastOutput{}, nil
		})

	output, err := s.service.MoveCursor(s.ctx, &MoveCursorInput{Code: s.testCode, PresenterToken: s.testToken, X: 1.4, Y: -0.2})
	s.Require().NoError(err)
	s.Equal(1.0, output.Cursor.X)
	s.Equal(0.0, output.Cursor.Y)
}

func (s *SessionServiceTestSuite) TestEndSession() {
	s.expectPresenter()
	s.expectLookup()
	s.expectUpdate(s.testSession)
	gomock.InOrder(
		s.expectBroadcast(models.EventSessionEnded),
		s.mockSessionRepo.EXPECT().ExpireSession(gomock.Any(), s.testCode, DefaultEndGrace).Return(nil),
		s.mockPollRepo.EXPECT().ExpireSession(gomock.Any(), s.testCode, DefaultEndGrace).Return(nil),
	)

	output, err := s.service.EndSession(s.ctx, &EndSessionInput{Code: s.testCode, PresenterToken: s.testToken})
	s.Require().NoError(err)
	s.False(output.Session.IsActive)
	s.Require().NotNil(output.Session.EndedAt)
	s.Equal(s.testTime, *output.Session.EndedAt)
}

func (s *SessionServiceTestSuite) TestEndSessionTwiceIsNoOp() {
	s.testSession.End(s.testTime)
	s.expectPresenter()
	s.expectLookup()
	s.expectUpdate(s.testSession)

	output, err := s.service.EndSession(s.ctx, &EndSessionInput{Code: s.testCode, PresenterToken: s.testToken})
	s.Require().NoError(err)
	s.False(output.Session.IsActive)
}

func (s *SessionServiceTestSuite) TestListActiveSessions() {
	s.mockSessionRepo.EXPECT().
		ListActiveSessions(gomock.Any(), &sessionRepo.ListActiveSessionsInput{}).
		Return(&sessionRepo.ListActiveSessionsOutput{Sessions: []*models.Session{s.testSession}}, nil)

	output, err := s.service.ListActiveSessions(s.ctx, &ListActiveSessionsInput{})
	s.Require().NoError(err)
	s.Equal([]*models.Session{s.testSession}, output.Sessions)
}
