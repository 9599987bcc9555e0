//go:build integration

package ratelimit_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"hrcc/internal/ratelimit"
	"hrcc/pkg/testutil/containers"
)

type RedisStoreSuite struct {
	suite.Suite
	redis *containers.RedisContainer
	store *ratelimit.RedisStore
}

func TestRedisStoreSuite(t *testing.T) {
	if testing.Short() {
		t.Skip("skipping integration test in short mode")
	}
	suite.Run(t, new(RedisStoreSuite))
}

func (s *RedisStoreSuite) SetupSuite() {
	s.redis = containers.GetManager().GetRedis(s.T())
	s.store = ratelimit.NewRedisStore(s.redis.Client)
}

func (s *RedisStoreSuite) SetupTest() {
	s.Require().NoError(s.redis.FlushAll(context.Background()))
}

func (s *RedisStoreSuite) TestFixedWindow() {
	ctx := context.Background()
	for i := 0; i < 2; i++ {
		res, err := s.store.Allow(ctx, "login:ip:1.1.1.1", 2, time.Minute)
		s.Require().NoError(err)
		s.True(res.Allowed)
	}
	res, err := s.store.Allow(ctx, "login:ip:1.1.1.1", 2, time.Minute)
	s.Require().NoError(err)
	s.False(res.Allowed)
	s.Equal(0, res.Remaining)
	s.WithinDuration(time.Now().Add(time.Minute), res.ResetAt, 5*time.Second)
}
