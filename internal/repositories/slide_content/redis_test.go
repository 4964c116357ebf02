package slide_content

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
	mr     *miniredis.Miniredis
	client *redis.Client
	repo   Repository
	ctx    context.Context
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
}

func (s *RedisRepositoryTestSuite) TearDownTest() {
	s.client.Close()
	s.mr.Close()
}

func TestRedisRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(RedisRepositoryTestSuite))
}

func (s *RedisRepositoryTestSuite) TestSaveOverwritesSlide() {
	first := &models.SlideContent{SlideNumber: 2, Title: "Draft", KeyPoints: []string{"a", "b"}}
	s.Require().NoError(s.repo.SaveSlideContent(s.ctx, &SaveSlideContentInput{SessionCode: "ABC234", Content: first}))

	second := &models.SlideContent{SlideNumber: 2, Title: "Final", KeyPoints: []string{"c"}}
	s.Require().NoError(s.repo.SaveSlideContent(s.ctx, &SaveSlideContentInput{SessionCode: "ABC234", Content: second}))

	got, err := s.repo.GetSlideContent(s.ctx, &GetSlideContentInput{SessionCode: "ABC234", SlideNumber: 2})
	s.Require().NoError(err)
	s.Equal("Final", got.Title)
	s.Equal([]string{"c"}, got.KeyPoints)
}

func (s *RedisRepositoryTestSuite) TestGetMissingSlide() {
	_, err := s.repo.GetSlideContent(s.ctx, &GetSlideContentInput{SessionCode: "ABC234", SlideNumber: 0})
	s.ErrorIs(err, ErrSlideContentNotFound)
}

func (s *RedisRepositoryTestSuite) TestExpireSession() {
	content := &models.SlideContent{SlideNumber: 0, Title: "Intro", KeyPoints: []string{}}
	s.Require().NoError(s.repo.SaveSlideContent(s.ctx, &SaveSlideContentInput{SessionCode: "ABC234", Content: content}))
	s.Require().NoError(s.repo.ExpireSession(s.ctx, "ABC234", time.Minute))

	s.mr.FastForward(61 * time.Second)

	_, err := s.repo.GetSlideContent(s.ctx, &GetSlideContentInput{SessionCode: "ABC234", SlideNumber: 0})
	s.ErrorIs(err, ErrSlideContentNotFound)
}
