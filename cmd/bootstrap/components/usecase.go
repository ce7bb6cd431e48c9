package components

import (
	"cancel-saga/internal/domain/compensation"
	"cancel-saga/internal/pkg/clock"
	"cancel-saga/internal/usecase/commands"

	"go.uber.org/fx"
)

var UseCaseModule = fx.Module("usecase",
	usecaseBaseOption,
	usecaseCommandsModule,
)

var usecaseBaseOption = fx.Provide(
	clock.NewRealClock,
	fx.Annotate(
		compensation.NewDefaultCalculator,
		fx.As(new(compensation.Calculator)),
	),
)

var usecaseCommandsModule = fx.Module("usecase/commands",
	fx.Provide(
		commands.NewCancellationUseCase,
		commands.NewReaperUseCase,
	),
)
