package main

import (
	"fmt"
	"strconv"

	"cancel-saga/internal/infra/migration"
	"cancel-saga/internal/pkg/config"

	"github.com/spf13/cobra"
)

func migrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage the ledger schema",
	}

	cmd.AddCommand(&cobra.Command{
		Use:   "up",
		Short: "Apply all pending migrations",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			url, err := migrateURL()
			if err != nil {
				return err
			}
			if err := migration.Up(url); err != nil {
				return err
			}
			return printVersion(url)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "down [steps]",
		Short: "Roll back migrations (one step by default)",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(_ *cobra.Command, args []string) error {
			steps := 1
			if len(args) == 1 {
				n, err := strconv.Atoi(args[0])
				if err != nil || n <= 0 {
					return fmt.Errorf("steps must be a positive integer, got %q", args[0])
				}
				steps = n
			}
			url, err := migrateURL()
			if err != nil {
				return err
			}
			if err := migration.Down(url, steps); err != nil {
				return err
			}
			return printVersion(url)
		},
	})

	cmd.AddCommand(&cobra.Command{
		Use:   "version",
		Short: "Print the applied schema version",
		Args:  cobra.NoArgs,
		RunE: func(_ *cobra.Command, _ []string) error {
			url, err := migrateURL()
			if err != nil {
				return err
			}
			return printVersion(url)
		},
	})

	return cmd
}

func migrateURL() (string, error) {
	cfg, err := config.LoadConfig()
	if err != nil {
		return "", err
	}
	return cfg.DB.BuildMigrateURL(), nil
}

func printVersion(url string) error {
	v, dirty, err := migration.Version(url)
	if err != nil {
		return err
	}
	fmt.Printf("schema version %d (dirty=%t)\n", v, dirty)
	return nil
}
