package bootstrap

import (
	"cancel-saga/cmd/bootstrap/components"

	"go.uber.org/fx"
)

// CoreModule is everything but the HTTP surface; the ops CLI runs on it.
var CoreModule = fx.Options(
	ConfigModule,
	LoggerModule,
	DBModule,
	RedisModule,
	components.StoreModule(NewStoreRegistry),
	components.AdapterModule,
	components.RepositoryModule,
	components.UseCaseModule,
)

var Module = fx.Options(
	CoreModule,
	JWTModule,
	components.HandlerModule,
)
