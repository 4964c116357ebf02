package bus

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/KirkDiggler/lectern/internal/common/clock/mocks"
	"github.com/KirkDiggler/lectern/internal/models"
	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"
)

type MemoryBusTestSuite struct {
	suite.Suite
	mockCtrl  *gomock.Controller
	mockClock *mocks.MockClock
	bus       *MemoryBus
	ctx       context.Context
	testNow   time.Time
}

func (s *MemoryBusTestSuite) SetupTest() {
	s.mockCtrl = gomock.NewController(s.T())
	s.mockClock = mocks.NewMockClock(s.mockCtrl)
	s.testNow = time.Date(2025, 4, 5, 10, 0, 0, 0, time.UTC)
	s.mockClock.EXPECT().Now().Return(s.testNow).AnyTimes()

	bus, err := NewMemory(&MemoryConfig{Clock: s.mockClock})
	s.Require().NoError(err)
	s.bus = bus
	s.ctx = context.Background()
}

func (s *MemoryBusTestSuite) TearDownTest() {
	s.mockCtrl.Finish()
}

func TestMemoryBusTestSuite(t *testing.T) {
	suite.Run(t, new(MemoryBusTestSuite))
}

// recorder collects delivered events
type recorder struct {
	mu     sync.Mutex
	events []*models.Event
}

func (r *recorder) handle(event *models.Event) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, event)
}

func (r *recorder) snapshot() []*models.Event {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]*models.Event{}, r.events...)
}

func (s *MemoryBusTestSuite) slideEvent(slide int) *models.Event {
	event, err := models.NewEvent("evt", models.EventSlideChange, "ABC234", &models.SlideChangePayload{CurrentSlide: slide, TotalSlides: 10}, s.testNow)
	s.Require().NoError(err)
	return event
}

func (s *MemoryBusTestSuite) publish(slide int) int64 {
	output, err := s.bus.Publish(s.ctx, &PublishInput{Code: "ABC234", Event: s.slideEvent(slide)})
	s.Require().NoError(err)
	return output.Seq
}

func (s *MemoryBusTestSuite) TestPublishAssignsIncreasingSeq() {
	s.Equal(int64(1), s.publish(1))
	s.Equal(int64(2), s.publish(2))
	s.Equal(int64(3), s.publish(3))
}

func (s *MemoryBusTestSuite) TestLateSubscriberOnlySeesLaterEvents() {
	s.publish(1)
	s.publish(3)

	rec := &recorder{}
	unsubscribe, err := s.bus.Subscribe(s.ctx, &SubscribeInput{Code: "ABC234", Handler: rec.handle})
	s.Require().NoError(err)
	defer unsubscribe()
	s.Empty(rec.snapshot())

	s.publish(4)
	events := rec.snapshot()
	s.Require().Len(events, 1)
	s.Equal(int64(3), events[0].Seq)
}

func (s *MemoryBusTestSuite) TestLastSeqTracksPublishes() {
	seq, err := s.bus.LastSeq(s.ctx, "ABC234")
	s.Require().NoError(err)
	s.Zero(seq)

	s.publish(1)
	reaction, err := models.NewEvent("r1", models.EventReaction, "ABC234", &models.Reaction{ID: "r1", Emoji: models.EmojiClap}, s.testNow)
	s.Require().NoError(err)
	_, err = s.bus.Publish(s.ctx, &PublishInput{Code: "ABC234", Event: reaction})
	s.Require().NoError(err)

	seq, err = s.bus.LastSeq(s.ctx, "ABC234")
	s.Require().NoError(err)
	s.Equal(int64(2), seq)

	seq, err = s.bus.LastSeq(s.ctx, "OTHER2")
	s.Require().NoError(err)
	s.Zero(seq)
}

func (s *MemoryBusTestSuite) TestEventsDeliveredInPublishOrder() {
	rec := &recorder{}
	unsubscribe, err := s.bus.Subscribe(s.ctx, &SubscribeInput{Code: "ABC234", Handler: rec.handle})
	s.Require().NoError(err)
	defer unsubscribe()

	for slide := 0; slide < 5; slide++ {
		s.publish(slide)
	}

	events := rec.snapshot()
	s.Require().Len(events, 5)
	for i, event := range events {
		s.Equal(int64(i+1), event.Seq)
		var payload models.SlideChangePayload
		s.Require().NoError(event.Decode(&payload))
		s.Equal(i, payload.CurrentSlide)
	}
}

func (s *MemoryBusTestSuite) TestSessionsAreIsolated() {
	rec := &recorder{}
	unsubscribe, err := s.bus.Subscribe(s.ctx, &SubscribeInput{Code: "OTHER2", Handler: rec.handle})
	s.Require().NoError(err)
	defer unsubscribe()

	s.publish(1)

	s.Empty(rec.snapshot())
}

func (s *MemoryBusTestSuite) TestUnsubscribeStopsDelivery() {
	rec := &recorder{}
	unsubscribe, err := s.bus.Subscribe(s.ctx, &SubscribeInput{Code: "ABC234", Handler: rec.handle})
	s.Require().NoError(err)

	s.publish(1)
	unsubscribe()
	s.publish(2)

	s.Len(rec.snapshot(), 1)
}

func (s *MemoryBusTestSuite) TestExpireResetsSequence() {
	s.publish(2)

	var expire func()
	timer := mocks.NewMockTimer(s.mockCtrl)
	s.mockClock.EXPECT().AfterFunc(time.Minute, gomock.Any()).DoAndReturn(func(d time.Duration, f func()) *mocks.MockTimer {
		expire = f
		return timer
	})

	s.Require().NoError(s.bus.Expire(s.ctx, "ABC234", time.Minute))
	s.Require().NotNil(expire)
	expire()

	seq, err := s.bus.LastSeq(s.ctx, "ABC234")
	s.Require().NoError(err)
	s.Zero(seq)
	s.Equal(int64(1), s.publish(3))
}

func (s *MemoryBusTestSuite) TestPublishValidatesInput() {
	_, err := s.bus.Publish(s.ctx, &PublishInput{Code: "ABC234"})
	s.Error(err)

	_, err = s.bus.Subscribe(s.ctx, &SubscribeInput{Code: "ABC234"})
	s.Error(err)
}
