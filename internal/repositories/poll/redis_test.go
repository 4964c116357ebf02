package poll

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/KirkDiggler/lectern/internal/models"
	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"
)

type RedisRepositoryTestSuite struct {
	suite.Suite
	mr      *miniredis.Miniredis
	client  *redis.Client
	repo    Repository
	ctx     context.Context
	testNow time.Time
}

func (s *RedisRepositoryTestSuite) SetupTest() {
	mr, err := miniredis.Run()
	s.Require().NoError(err)
	s.mr = mr

	s.client = redis.NewClient(&redis.Options{
		Addr: s.mr.Addr(),
	})

	repo, err := NewRedis(&Config{
		RedisClient: s.client,
	})
	s.Require().NoError(err)
	s.repo = repo

	s.ctx = context.Background()
	s.testNow = time.Date(2025, 4, 5, 10, 0, 0, 0, time.UTC)
}

func (s *RedisRepositoryTestSuite) TearDownTest() {
	s.client.Close()
	s.mr.Close()
}

func TestRedisRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(RedisRepositoryTestSuite))
}

func (s *RedisRepositoryTestSuite) newPoll(id string, createdAt time.Time) *models.Poll {
	return &models.Poll{
		ID:          id,
		SessionCode: "ABC234",
		Question:    "First-line therapy?",
		Options:     models.NewPollOptions([]string{"Metformin", "Insulin", "Diet only"}),
		IsActive:    true,
		CreatedAt:   createdAt,
	}
}

// create stores the poll and returns the id of the poll it displaced
func (s *RedisRepositoryTestSuite) create(poll *models.Poll) string {
	output, err := s.repo.CreatePoll(s.ctx, &CreatePollInput{Poll: poll})
	s.Require().NoError(err)
	return output.PreviousID
}

func (s *RedisRepositoryTestSuite) TestCreateAndGetActivePoll() {
	poll := s.newPoll("poll-1", s.testNow)
	s.create(poll)

	active, err := s.repo.GetActivePoll(s.ctx, &GetActivePollInput{SessionCode: "ABC234"})
	s.Require().NoError(err)
	s.Equal("poll-1", active.ID)
	s.True(active.IsActive)
	s.Len(active.Options, 3)
	s.Equal(0, active.TotalVotes)
}

func (s *RedisRepositoryTestSuite) TestGetActivePollNone() {
	_, err := s.repo.GetActivePoll(s.ctx, &GetActivePollInput{SessionCode: "ABC234"})
	s.ErrorIs(err, ErrPollNotFound)
}

func (s *RedisRepositoryTestSuite) TestRecordVoteOncePerUser() {
	s.create(s.newPoll("poll-1", s.testNow))

	first, err := s.repo.RecordVote(s.ctx, &RecordVoteInput{PollID: "poll-1", OptionIndex: 1, UserID: "u1"})
	s.Require().NoError(err)
	s.True(first.Recorded)

	// A second vote, even for a different option, is not counted
	second, err := s.repo.RecordVote(s.ctx, &RecordVoteInput{PollID: "poll-1", OptionIndex: 0, UserID: "u1"})
	s.Require().NoError(err)
	s.False(second.Recorded)

	poll, err := s.repo.GetPoll(s.ctx, &GetPollInput{PollID: "poll-1"})
	s.Require().NoError(err)
	s.Equal(1, poll.TotalVotes)
	s.Equal(0, poll.Options[0].Votes)
	s.Equal(1, poll.Options[1].Votes)
	s.Equal([]string{"u1"}, poll.Options[1].Voters)
}

func (s *RedisRepositoryTestSuite) TestConcurrentVotesKeepTalliesConsistent() {
	s.create(s.newPoll("poll-1", s.testNow))

	var wg sync.WaitGroup
	for i := 0; i < 30; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			// Every user votes twice for different options
			userID := fmt.Sprintf("u%d", i%10)
			_, _ = s.repo.RecordVote(s.ctx, &RecordVoteInput{PollID: "poll-1", OptionIndex: i % 3, UserID: userID})
		}(i)
	}
	wg.Wait()

	poll, err := s.repo.GetPoll(s.ctx, &GetPollInput{PollID: "poll-1"})
	s.Require().NoError(err)
	s.Equal(10, poll.TotalVotes)

	sum := 0
	for _, option := range poll.Options {
		s.Equal(len(option.Voters), option.Votes)
		sum += option.Votes
	}
	s.Equal(poll.TotalVotes, sum)
}

func (s *RedisRepositoryTestSuite) TestVoteAfterCloseRejected() {
	poll := s.newPoll("poll-1", s.testNow)
	s.create(poll)
	_, err := s.repo.RecordVote(s.ctx, &RecordVoteInput{PollID: "poll-1", OptionIndex: 2, UserID: "u1"})
	s.Require().NoError(err)

	poll.Close(s.testNow.Add(time.Minute))
	s.Require().NoError(s.repo.ClosePoll(s.ctx, &ClosePollInput{Poll: poll}))

	_, err = s.repo.RecordVote(s.ctx, &RecordVoteInput{PollID: "poll-1", OptionIndex: 0, UserID: "u2"})
	s.ErrorIs(err, ErrPollClosed)

	closed, err := s.repo.GetPoll(s.ctx, &GetPollInput{PollID: "poll-1"})
	s.Require().NoError(err)
	s.False(closed.IsActive)
	s.NotNil(closed.ClosedAt)
	s.Equal(1, closed.TotalVotes)

	_, err = s.repo.GetActivePoll(s.ctx, &GetActivePollInput{SessionCode: "ABC234"})
	s.ErrorIs(err, ErrPollNotFound)
}

func (s *RedisRepositoryTestSuite) TestClosingOldPollKeepsNewerActive() {
	old := s.newPoll("poll-1", s.testNow)
	s.create(old)
	s.create(s.newPoll("poll-2", s.testNow.Add(time.Minute)))

	old.Close(s.testNow.Add(2 * time.Minute))
	s.Require().NoError(s.repo.ClosePoll(s.ctx, &ClosePollInput{Poll: old}))

	active, err := s.repo.GetActivePoll(s.ctx, &GetActivePollInput{SessionCode: "ABC234"})
	s.Require().NoError(err)
	s.Equal("poll-2", active.ID)
}

func (s *RedisRepositoryTestSuite) TestListPollsOrderedByCreation() {
	s.create(s.newPoll("poll-b", s.testNow.Add(time.Minute)))
	s.create(s.newPoll("poll-a", s.testNow))

	output, err := s.repo.ListPolls(s.ctx, &ListPollsInput{SessionCode: "ABC234"})
	s.Require().NoError(err)
	s.Require().Len(output.Polls, 2)
	s.Equal("poll-a", output.Polls[0].ID)
	s.Equal("poll-b", output.Polls[1].ID)
}

func (s *RedisRepositoryTestSuite) TestExpireSessionRemovesPolls() {
	s.create(s.newPoll("poll-1", s.testNow))
	_, err := s.repo.RecordVote(s.ctx, &RecordVoteInput{PollID: "poll-1", OptionIndex: 0, UserID: "u1"})
	s.Require().NoError(err)

	s.Require().NoError(s.repo.ExpireSession(s.ctx, "ABC234", time.Minute))
	s.mr.FastForward(61 * time.Second)

	_, err = s.repo.GetPoll(s.ctx, &GetPollInput{PollID: "poll-1"})
	s.ErrorIs(err, ErrPollNotFound)
	s.False(s.mr.Exists(votersKey("poll-1")))

	output, err := s.repo.ListPolls(s.ctx, &ListPollsInput{SessionCode: "ABC234"})
	s.Require().NoError(err)
	s.Empty(output.Polls)
}

func (s *RedisRepositoryTestSuite) TestCreatePollReturnsDisplacedPoll() {
	s.Equal("", s.create(s.newPoll("poll-1", s.testNow)))
	s.Equal("poll-1", s.create(s.newPoll("poll-2", s.testNow.Add(time.Minute))))

	// The displaced poll stops taking votes before anyone closes it
	_, err := s.repo.RecordVote(s.ctx, &RecordVoteInput{PollID: "poll-1", OptionIndex: 0, UserID: "u1"})
	s.ErrorIs(err, ErrPollClosed)

	output, err := s.repo.RecordVote(s.ctx, &RecordVoteInput{PollID: "poll-2", OptionIndex: 0, UserID: "u1"})
	s.Require().NoError(err)
	s.True(output.Recorded)

	active, err := s.repo.GetActivePoll(s.ctx, &GetActivePollInput{SessionCode: "ABC234"})
	s.Require().NoError(err)
	s.Equal("poll-2", active.ID)
}

func (s *RedisRepositoryTestSuite) TestCreateClosedPollLeavesActiveAlone() {
	s.create(s.newPoll("poll-1", s.testNow))

	archived := s.newPoll("poll-0", s.testNow.Add(-time.Hour))
	archived.IsActive = false
	s.Equal("", s.create(archived))

	active, err := s.repo.GetActivePoll(s.ctx, &GetActivePollInput{SessionCode: "ABC234"})
	s.Require().NoError(err)
	s.Equal("poll-1", active.ID)
	s.False(s.mr.Exists(openKey("poll-0")))

	output, err := s.repo.ListPolls(s.ctx, &ListPollsInput{SessionCode: "ABC234"})
	s.Require().NoError(err)
	s.Len(output.Polls, 2)
}

func (s *RedisRepositoryTestSuite) TestConcurrentCreatesDisplaceEachPollOnce() {
	const creators = 12

	var wg sync.WaitGroup
	displaced := make(chan string, creators)
	for i := 0; i < creators; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			output, err := s.repo.CreatePoll(s.ctx, &CreatePollInput{
				Poll: s.newPoll(fmt.Sprintf("poll-%d", i), s.testNow.Add(time.Duration(i)*time.Second)),
			})
			if err != nil {
				displaced <- "error: " + err.Error()
				return
			}
			displaced <- output.PreviousID
		}(i)
	}
	wg.Wait()
	close(displaced)

	seen := make(map[string]bool)
	for id := range displaced {
		if id == "" {
			continue
		}
		s.False(seen[id], "poll %s displaced twice", id)
		seen[id] = true
	}

	// Every poll but the active one was displaced, and only it stays open
	active, err := s.repo.GetActivePoll(s.ctx, &GetActivePollInput{SessionCode: "ABC234"})
	s.Require().NoError(err)
	s.Len(seen, creators-1)
	s.False(seen[active.ID])
	for i := 0; i < creators; i++ {
		id := fmt.Sprintf("poll-%d", i)
		s.Equal(id == active.ID, s.mr.Exists(openKey(id)), id)
	}
}
