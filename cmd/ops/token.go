package main

import (
	"fmt"
	"time"

	"cancel-saga/internal/pkg/config"
	"cancel-saga/internal/pkg/jwt"
	"cancel-saga/internal/pkg/storeconfig"

	"github.com/spf13/cobra"
)

func tokenCmd() *cobra.Command {
	var (
		store string
		ttl   time.Duration
	)

	cmd := &cobra.Command{
		Use:   "token",
		Short: "Issue a bearer token for a store's paid-order webhook forwarder",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			cfg, err := config.LoadConfig()
			if err != nil {
				return err
			}
			reg, err := storeconfig.Load(cfg.Stores.File)
			if err != nil {
				return err
			}
			if _, err := reg.ByAlias(store); err != nil {
				return err
			}
			token, err := jwt.NewService(cfg.Webhook.Secret, cfg.Webhook.Issuer).
				GenerateToken(store, jwt.ScopeWebhookPaid, ttl)
			if err != nil {
				return err
			}
			fmt.Println(token)
			return nil
		},
	}

	cmd.Flags().StringVar(&store, "store", "", "store alias the token acts for")
	cmd.Flags().DurationVar(&ttl, "ttl", 365*24*time.Hour, "token lifetime")
	_ = cmd.MarkFlagRequired("store")

	return cmd
}
