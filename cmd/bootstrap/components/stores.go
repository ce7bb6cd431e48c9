package components

import (
	"cancel-saga/internal/handler"
	"cancel-saga/internal/handler/api"
	"cancel-saga/internal/infra/commerce"
	"cancel-saga/internal/infra/subscriptionplatform"
	"cancel-saga/internal/usecase/commands"

	"go.uber.org/fx"
)

// StoreModule exposes the registry under every lookup interface its consumers declare.
func StoreModule(constructor any) fx.Option {
	return fx.Module("stores",
		fx.Provide(
			fx.Annotate(
				constructor,
				fx.As(fx.Self()),
				fx.As(new(commands.StoreDirectory)),
				fx.As(new(api.StoreLookup)),
				fx.As(new(handler.StoreRegistry)),
				fx.As(new(commerce.StoreLookup)),
				fx.As(new(subscriptionplatform.StoreLookup)),
			),
		),
	)
}
