package question

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

func (s *RedisRepositoryTestSuite) addQuestion(id, text string, createdAt time.Time) {
	err := s.repo.AddQuestion(s.ctx, &AddQuestionInput{Question: &models.Question{
		ID:          id,
		SessionCode: "ABC234",
		Text:        text,
		AskerName:   models.AnonymousAsker,
		Upvoters:    []string{},
		CreatedAt:   createdAt,
	}})
	s.Require().NoError(err)
}

func (s *RedisRepositoryTestSuite) TestAddAndGetQuestion() {
	s.addQuestion("q1", "Dosing in renal failure?", s.testNow)

	question, err := s.repo.GetQuestion(s.ctx, &GetQuestionInput{QuestionID: "q1"})
	s.Require().NoError(err)
	s.Equal("Dosing in renal failure?", question.Text)
	s.Equal(0, question.Upvotes)
	s.False(question.IsAnswered)
}

func (s *RedisRepositoryTestSuite) TestAddQuestionTwiceKeepsFirst() {
	s.addQuestion("q1", "Dosing in renal failure?", s.testNow)

	err := s.repo.AddQuestion(s.ctx, &AddQuestionInput{Question: &models.Question{
		ID:          "q1",
		SessionCode: "ABC234",
		Text:        "Different text",
		AskerName:   models.AnonymousAsker,
		Upvoters:    []string{},
		CreatedAt:   s.testNow,
	}})
	s.ErrorIs(err, ErrQuestionExists)

	question, err := s.repo.GetQuestion(s.ctx, &GetQuestionInput{QuestionID: "q1"})
	s.Require().NoError(err)
	s.Equal("Dosing in renal failure?", question.Text)
}

func (s *RedisRepositoryTestSuite) TestGetQuestionNotFound() {
	_, err := s.repo.GetQuestion(s.ctx, &GetQuestionInput{QuestionID: "missing"})
	s.ErrorIs(err, ErrQuestionNotFound)
}

func (s *RedisRepositoryTestSuite) TestAddUpvoteOncePerUser() {
	s.addQuestion("q1", "Dosing in renal failure?", s.testNow)

	first, err := s.repo.AddUpvote(s.ctx, &AddUpvoteInput{QuestionID: "q1", UserID: "u1"})
	s.Require().NoError(err)
	s.True(first.Recorded)

	repeat, err := s.repo.AddUpvote(s.ctx, &AddUpvoteInput{QuestionID: "q1", UserID: "u1"})
	s.Require().NoError(err)
	s.False(repeat.Recorded)

	question, err := s.repo.GetQuestion(s.ctx, &GetQuestionInput{QuestionID: "q1"})
	s.Require().NoError(err)
	s.Equal(1, question.Upvotes)
	s.Equal([]string{"u1"}, question.Upvoters)
}

func (s *RedisRepositoryTestSuite) TestAddUpvoteMissingQuestion() {
	_, err := s.repo.AddUpvote(s.ctx, &AddUpvoteInput{QuestionID: "missing", UserID: "u1"})
	s.ErrorIs(err, ErrQuestionNotFound)
}

func (s *RedisRepositoryTestSuite) TestListQuestionsInDisplayOrder() {
	s.addQuestion("q1", "first", s.testNow)
	s.addQuestion("q2", "second", s.testNow.Add(time.Second))
	s.addQuestion("q3", "third", s.testNow.Add(2*time.Second))

	for _, userID := range []string{"u1", "u2"} {
		_, err := s.repo.AddUpvote(s.ctx, &AddUpvoteInput{QuestionID: "q3", UserID: userID})
		s.Require().NoError(err)
	}
	_, err := s.repo.AddUpvote(s.ctx, &AddUpvoteInput{QuestionID: "q2", UserID: "u1"})
	s.Require().NoError(err)

	output, err := s.repo.ListQuestions(s.ctx, &ListQuestionsInput{SessionCode: "ABC234"})
	s.Require().NoError(err)
	s.Require().Len(output.Questions, 3)
	s.Equal("q3", output.Questions[0].ID)
	s.Equal("q2", output.Questions[1].ID)
	s.Equal("q1", output.Questions[2].ID)
}

func (s *RedisRepositoryTestSuite) TestSetAnsweredKeepsUpvotes() {
	s.addQuestion("q1", "first", s.testNow)
	_, err := s.repo.AddUpvote(s.ctx, &AddUpvoteInput{QuestionID: "q1", UserID: "u1"})
	s.Require().NoError(err)

	question, err := s.repo.SetAnswered(s.ctx, &SetAnsweredInput{QuestionID: "q1", IsAnswered: true})
	s.Require().NoError(err)
	s.True(question.IsAnswered)
	s.Equal(1, question.Upvotes)

	question, err = s.repo.SetAnswered(s.ctx, &SetAnsweredInput{QuestionID: "q1", IsAnswered: false})
	s.Require().NoError(err)
	s.False(question.IsAnswered)
}

func (s *RedisRepositoryTestSuite) TestSetAnsweredMissingQuestion() {
	_, err := s.repo.SetAnswered(s.ctx, &SetAnsweredInput{QuestionID: "missing", IsAnswered: true})
	s.ErrorIs(err, ErrQuestionNotFound)
}

func (s *RedisRepositoryTestSuite) TestExpireSessionRemovesQuestions() {
	s.addQuestion("q1", "first", s.testNow)
	s.Require().NoError(s.repo.ExpireSession(s.ctx, "ABC234", time.Minute))

	s.mr.FastForward(61 * time.Second)

	output, err := s.repo.ListQuestions(s.ctx, &ListQuestionsInput{SessionCode: "ABC234"})
	s.Require().NoError(err)
	s.Empty(output.Questions)
}
