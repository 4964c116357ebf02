package presence

import (
	"context"
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

func (s *RedisRepositoryTestSuite) add(userID, userName string, joinedAt time.Time) bool {
	output, err := s.repo.AddParticipant(s.ctx, &AddParticipantInput{
		SessionCode: "ABC234",
		Participant: &models.Participant{
			UserID:   userID,
			UserName: userName,
			Color:    models.ColorForUser(userID),
			JoinedAt: joinedAt,
		},
	})
	s.Require().NoError(err)
	return output.Added
}

func (s *RedisRepositoryTestSuite) TestAddAndListParticipants() {
	s.True(s.add("u2", "Bea", s.testNow.Add(time.Second)))
	s.True(s.add("u1", "Ade", s.testNow))

	output, err := s.repo.ListParticipants(s.ctx, &ListParticipantsInput{SessionCode: "ABC234"})
	s.Require().NoError(err)
	s.Require().Len(output.Participants, 2)
	s.Equal("u1", output.Participants[0].UserID)
	s.Equal("u2", output.Participants[1].UserID)
	s.Equal(models.ColorForUser("u1"), output.Participants[0].Color)
}

func (s *RedisRepositoryTestSuite) TestAddParticipantKeepsFirstJoin() {
	s.True(s.add("u1", "Ade", s.testNow))
	s.False(s.add("u1", "Ade again", s.testNow.Add(time.Minute)))

	output, err := s.repo.ListParticipants(s.ctx, &ListParticipantsInput{SessionCode: "ABC234"})
	s.Require().NoError(err)
	s.Require().Len(output.Participants, 1)
	s.Equal("Ade", output.Participants[0].UserName)
	s.True(s.testNow.Equal(output.Participants[0].JoinedAt))
}

func (s *RedisRepositoryTestSuite) TestRemoveParticipant() {
	s.add("u1", "Ade", s.testNow)

	output, err := s.repo.RemoveParticipant(s.ctx, &RemoveParticipantInput{SessionCode: "ABC234", UserID: "u1"})
	s.Require().NoError(err)
	s.True(output.Removed)

	output, err = s.repo.RemoveParticipant(s.ctx, &RemoveParticipantInput{SessionCode: "ABC234", UserID: "u1"})
	s.Require().NoError(err)
	s.False(output.Removed)

	list, err := s.repo.ListParticipants(s.ctx, &ListParticipantsInput{SessionCode: "ABC234"})
	s.Require().NoError(err)
	s.Empty(list.Participants)
}

func (s *RedisRepositoryTestSuite) TestParticipantStaysWhileAnotherConnectionRemains() {
	s.True(s.add("u1", "Ade", s.testNow))
	s.False(s.add("u1", "Ade", s.testNow.Add(time.Second)))

	output, err := s.repo.RemoveParticipant(s.ctx, &RemoveParticipantInput{SessionCode: "ABC234", UserID: "u1"})
	s.Require().NoError(err)
	s.False(output.Removed)

	list, err := s.repo.ListParticipants(s.ctx, &ListParticipantsInput{SessionCode: "ABC234"})
	s.Require().NoError(err)
	s.Len(list.Participants, 1)

	output, err = s.repo.RemoveParticipant(s.ctx, &RemoveParticipantInput{SessionCode: "ABC234", UserID: "u1"})
	s.Require().NoError(err)
	s.True(output.Removed)
}

func (s *RedisRepositoryTestSuite) TestForceRemoveDropsAllConnections() {
	s.add("u1", "Ade", s.testNow)
	s.add("u1", "Ade", s.testNow)

	output, err := s.repo.RemoveParticipant(s.ctx, &RemoveParticipantInput{SessionCode: "ABC234", UserID: "u1", Force: true})
	s.Require().NoError(err)
	s.True(output.Removed)

	// A later connection starts from scratch
	s.True(s.add("u1", "Ade", s.testNow.Add(time.Minute)))
}

func (s *RedisRepositoryTestSuite) TestExpireSession() {
	s.add("u1", "Ade", s.testNow)
	s.Require().NoError(s.repo.ExpireSession(s.ctx, "ABC234", time.Minute))

	s.mr.FastForward(61 * time.Second)

	list, err := s.repo.ListParticipants(s.ctx, &ListParticipantsInput{SessionCode: "ABC234"})
	s.Require().NoError(err)
	s.Empty(list.Participants)
}
