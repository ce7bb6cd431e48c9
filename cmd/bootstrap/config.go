package bootstrap

import (
	"cancel-saga/internal/pkg/config"
	"cancel-saga/internal/usecase/commands"

	"go.uber.org/fx"
)

var ConfigModule = fx.Module("config",
	fx.Provide(
		config.LoadConfig,
		NewSagaSettings,
	),
)

func NewSagaSettings(cfg config.Config) commands.SagaSettings {
	return commands.SagaSettings{
		PaymentWindow:      cfg.Saga.PaymentWindow,
		ProtectedProvinces: cfg.Saga.ProtectedProvinces,
		ReaperMaxRetries:   cfg.Saga.ReaperMaxRetries,
		ReaperStaleAfter:   cfg.Saga.ReaperLockTTL,
	}
}
