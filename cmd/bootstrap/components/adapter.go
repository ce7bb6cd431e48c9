package components

import (
	"log/slog"
	"net/http"

	"cancel-saga/internal/infra/commerce"
	"cancel-saga/internal/infra/redisstore"
	"cancel-saga/internal/infra/subscriptionplatform"
	"cancel-saga/internal/pkg/clock"
	"cancel-saga/internal/pkg/config"
	"cancel-saga/internal/usecase/commands"

	"github.com/redis/go-redis/v9"
	"go.uber.org/fx"
)

var AdapterModule = fx.Module("adapter",
	fx.Provide(
		NewHTTPClient,
		fx.Annotate(
			NewCommerceClient,
			fx.As(new(commands.CommerceClient)),
		),
		fx.Annotate(
			NewSubscriptionClient,
			fx.As(new(commands.SubscriptionClient)),
		),
		fx.Annotate(
			NewPassLocker,
			fx.As(new(commands.PassLocker)),
		),
		fx.Annotate(
			NewAlerter,
			fx.As(new(commands.Alerter)),
		),
		fx.Annotate(
			NewNotifier,
			fx.As(new(commands.Notifier)),
		),
	),
)

// NewHTTPClient is shared by both platform clients. The client timeout backs up the per-call deadline.
func NewHTTPClient(cfg config.Config) *http.Client {
	return &http.Client{Timeout: 2 * cfg.Saga.ExternalTimeout}
}

func NewCommerceClient(stores commerce.StoreLookup, httpClient *http.Client, cfg config.Config, logger *slog.Logger) *commerce.Client {
	return commerce.NewClient(stores, httpClient, cfg.Saga.ExternalTimeout, logger)
}

func NewSubscriptionClient(stores subscriptionplatform.StoreLookup, httpClient *http.Client, cfg config.Config, logger *slog.Logger) *subscriptionplatform.Client {
	return subscriptionplatform.NewClient(stores, httpClient, cfg.Saga.ExternalTimeout, logger)
}

func NewPassLocker(client *redis.Client, cfg config.Config, logger *slog.Logger) *redisstore.PassLocker {
	return redisstore.NewPassLocker(client, cfg.Saga.ReaperLockTTL, logger)
}

func NewAlerter(client *redis.Client, cfg config.Config, clk clock.Clock, logger *slog.Logger) *redisstore.Alerter {
	return redisstore.NewAlerter(client, cfg.Saga.AlertChannel, clk, logger)
}

func NewNotifier(client *redis.Client, cfg config.Config) *redisstore.Notifier {
	return redisstore.NewNotifier(client, cfg.Saga.NotifyChannel)
}
