package bootstrap

import (
	"cancel-saga/internal/pkg/config"
	"cancel-saga/internal/pkg/jwt"

	"go.uber.org/fx"
)

var JWTModule = fx.Module("jwt",
	fx.Provide(
		NewJWTService,
	),
)

func NewJWTService(cfg config.Config) *jwt.Service {
	if cfg.Webhook.Secret == "" {
		panic("WEBHOOK_JWT_SECRET must not be empty")
	}
	return jwt.NewService(cfg.Webhook.Secret, cfg.Webhook.Issuer)
}
