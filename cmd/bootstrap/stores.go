package bootstrap

import (
	"log/slog"

	"cancel-saga/internal/pkg/config"
	"cancel-saga/internal/pkg/storeconfig"
)

func NewStoreRegistry(cfg config.Config) (*storeconfig.Registry, error) {
	reg, err := storeconfig.Load(cfg.Stores.File)
	if err != nil {
		return nil, err
	}
	slog.Info("store registry loaded", "file", cfg.Stores.File, "stores", reg.Aliases())
	return reg, nil
}
