package bootstrap

import (
	"context"
	"log/slog"
	"time"

	"cancel-saga/internal/pkg/config"
	"cancel-saga/internal/usecase/commands"

	"go.uber.org/fx"
)

var SchedulerModule = fx.Module("scheduler",
	fx.Invoke(StartReaperSchedule),
)

// StartReaperSchedule sweeps every store on a fixed interval. Overlapping runs on other
// replicas are excluded by the per-store pass lock.
func StartReaperSchedule(lc fx.Lifecycle, reaper commands.ReaperCommands, cfg config.Config, logger *slog.Logger) {
	interval := cfg.Saga.ReaperInterval
	if interval <= 0 {
		logger.Info("in-process reaper disabled")
		return
	}

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan struct{})

	lc.Append(fx.Hook{
		OnStart: func(context.Context) error {
			go func() {
				defer close(done)
				ticker := time.NewTicker(interval)
				defer ticker.Stop()
				for {
					select {
					case <-ctx.Done():
						return
					case <-ticker.C:
						runReapPass(ctx, reaper, logger)
					}
				}
			}()
			logger.Info("reaper scheduled", "interval", interval)
			return nil
		},
		OnStop: func(stopCtx context.Context) error {
			cancel()
			select {
			case <-done:
			case <-stopCtx.Done():
			}
			return nil
		},
	})
}

func runReapPass(ctx context.Context, reaper commands.ReaperCommands, logger *slog.Logger) {
	reports, err := reaper.ReapAll(ctx)
	logger.Debug("scheduled reaper pass finished", "stores", len(reports))
	if err != nil {
		logger.Warn("reaper pass incomplete", "error", err)
	}
}
