package components

import (
	"cancel-saga/internal/handler"
	"cancel-saga/internal/handler/api"
	"cancel-saga/internal/handler/middleware"
	"cancel-saga/internal/pkg/jwt"

	"go.uber.org/fx"
)

var HandlerModule = fx.Module("handler",
	fx.Provide(
		api.NewCancellationHandler,
		api.NewWebhookHandler,
		func(svc *jwt.Service) middleware.WebhookTokenValidator { return svc },
		middleware.NewWebhookAuthMiddleware,
	),
	fx.Invoke(handler.NewRouter),
)
