package components

import (
	"log/slog"

	"cancel-saga/internal/infra/identity"
	"cancel-saga/internal/infra/repository"
	"cancel-saga/internal/pkg/clock"
	"cancel-saga/internal/usecase/commands"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/fx"
)

var RepositoryModule = fx.Module("repository",
	fx.Provide(
		fx.Annotate(
			NewDraftOrderQueries,
			fx.As(new(repository.DraftOrderQueries)),
		),
		fx.Annotate(
			repository.NewDraftOrderRepository,
			fx.As(new(commands.DraftOrderLedger)),
		),
		fx.Annotate(
			NewIdentityGate,
			fx.As(new(commands.IdentityGate)),
		),
	),
)

func NewDraftOrderQueries(pool *pgxpool.Pool) *repository.Queries {
	return repository.NewQueries(pool)
}

func NewIdentityGate(pool *pgxpool.Pool, clk clock.Clock, logger *slog.Logger) *identity.Gate {
	return identity.NewGate(pool, clk, logger)
}
