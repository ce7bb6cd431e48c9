//go:build e2e

package redisstore_test

import (
	"context"
	"encoding/json"
	"log/slog"
	"testing"
	"time"

	"cancel-saga/internal/infra/redisstore"
	"cancel-saga/internal/pkg/clock"
	"cancel-saga/internal/pkg/config"
	"cancel-saga/internal/usecase/commands"

	"github.com/docker/go-connections/nat"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/require"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/wait"
)

type RedisStoreTestSuite struct {
	suite.Suite
	container testcontainers.Container
	client    *redis.Client
	cleanup   func()
}

func TestRedisStoreSuite(t *testing.T) {
	suite.Run(t, new(RedisStoreTestSuite))
}

func (s *RedisStoreTestSuite) SetupSuite() {
	ctx, cancel := context.WithTimeout(context.Background(), 90*time.Second)
	defer cancel()

	c, err := testcontainers.GenericContainer(ctx, testcontainers.GenericContainerRequest{
		ContainerRequest: testcontainers.ContainerRequest{
			Image:        "redis:7-alpine",
			ExposedPorts: []string{"6379/tcp"},
			WaitingFor:   wait.ForListeningPort(nat.Port("6379/tcp")).WithStartupTimeout(60 * time.Second),
			Labels:       map[string]string{"purpose": "e2e-tests"},
		},
		Started: true,
	})
	s.Require().NoError(err)
	s.container = c

	host, err := c.Host(ctx)
	s.Require().NoError(err)
	port, err := c.MappedPort(ctx, "6379/tcp")
	s.Require().NoError(err)

	s.client, s.cleanup, err = redisstore.Connect(ctx, config.RedisConfig{Addr: host + ":" + port.Port()})
	s.Require().NoError(err)
}

func (s *RedisStoreTestSuite) TearDownSuite() {
	if s.cleanup != nil {
		s.cleanup()
	}
	if s.container != nil {
		_ = s.container.Terminate(context.Background())
	}
}

func (s *RedisStoreTestSuite) SetupTest() {
	s.Require().NoError(s.client.FlushDB(context.Background()).Err())
}

func (s *RedisStoreTestSuite) TestPassLocker() {
	ctx := context.Background()

	s.Run("second holder is refused until release", func() {
		locker := redisstore.NewPassLocker(s.client, time.Minute, slog.Default())

		unlock, ok, err := locker.TryLock(ctx, "reaper:acme")
		s.Require().NoError(err)
		s.Require().True(ok)

		_, ok, err = locker.TryLock(ctx, "reaper:acme")
		s.Require().NoError(err)
		s.False(ok)

		_, ok, err = locker.TryLock(ctx, "reaper:globex")
		s.Require().NoError(err)
		s.True(ok, "locks are per key")

		unlock()

		unlock2, ok, err := locker.TryLock(ctx, "reaper:acme")
		s.Require().NoError(err)
		s.True(ok)
		unlock2()
	})

	s.Run("stale unlock does not release a newer holder", func() {
		locker := redisstore.NewPassLocker(s.client, 200*time.Millisecond, slog.Default())

		staleUnlock, ok, err := locker.TryLock(ctx, "reaper:acme")
		s.Require().NoError(err)
		s.Require().True(ok)

		s.Eventually(func() bool {
			_, ok, err := locker.TryLock(ctx, "reaper:acme")
			return err == nil && ok
		}, 3*time.Second, 50*time.Millisecond)

		staleUnlock()

		_, ok, err = locker.TryLock(ctx, "reaper:acme")
		s.Require().NoError(err)
		s.False(ok)
	})
}

func (s *RedisStoreTestSuite) TestAlerterAndNotifier() {
	ctx := context.Background()
	now := time.Date(2025, 3, 1, 12, 0, 0, 0, time.UTC)

	sub := s.client.Subscribe(ctx, "alerts:test", "notify:test")
	defer sub.Close()
	_, err := sub.Receive(ctx)
	s.Require().NoError(err)
	msgs := sub.Channel()

	alerter := redisstore.NewAlerter(s.client, "alerts:test", clock.NewMockClock(now), slog.Default())
	s.Require().NoError(alerter.Alert(ctx, commands.Alert{Store: "acme", Title: "Draft order orphaned", Message: "gid://shopify/DraftOrder/77"}))

	notifier := redisstore.NewNotifier(s.client, "notify:test")
	s.Require().NoError(notifier.CancellationConfirmed(ctx, commands.CancellationNotice{
		Store: "acme", Email: "jane@example.com", SubscriptionRef: "sub-1", CancelledAt: now,
	}))

	got := map[string]map[string]any{}
	for range 2 {
		select {
		case m := <-msgs:
			var body map[string]any
			require.NoError(s.T(), json.Unmarshal([]byte(m.Payload), &body))
			got[m.Channel] = body
		case <-time.After(5 * time.Second):
			s.FailNow("timed out waiting for published messages")
		}
	}

	s.Equal("Draft order orphaned", got["alerts:test"]["title"])
	s.Equal("acme", got["alerts:test"]["store"])
	s.Equal("subscription.cancelled", got["notify:test"]["type"])
	s.Equal("sub-1", got["notify:test"]["subscription"])
}
