package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"cancel-saga/cmd/bootstrap"
	"cancel-saga/internal/usecase/commands"

	"github.com/spf13/cobra"
	"go.uber.org/fx"
)

func reapCmd() *cobra.Command {
	var (
		store string
		all   bool
	)

	cmd := &cobra.Command{
		Use:   "reap",
		Short: "Delete compensation orders whose payment window has passed",
		Long: `Runs one cleanup pass. Expired unpaid draft orders are deleted on the storefront
and their ledger rows removed. A draft order paid after its deadline is kept on the
storefront, its row is removed and an alert is raised so the subscription can be
cancelled by hand.

Examples:
  saga-ops reap --store acme
  saga-ops reap --all`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if all == (store != "") {
				return errors.New("exactly one of --store or --all is required")
			}
			return runReap(cmd.Context(), store, all)
		},
	}

	cmd.Flags().StringVar(&store, "store", "", "store alias to clean up")
	cmd.Flags().BoolVar(&all, "all", false, "clean up every configured store")

	return cmd
}

func runReap(ctx context.Context, store string, all bool) error {
	if ctx == nil {
		ctx = context.Background()
	}

	var reaper commands.ReaperCommands
	app := fx.New(
		bootstrap.CoreModule,
		fx.Populate(&reaper),
		fx.NopLogger,
	)
	if err := app.Start(ctx); err != nil {
		return fmt.Errorf("failed to start: %w", err)
	}
	defer func() { _ = app.Stop(context.Background()) }()

	var (
		reports []*commands.ReapReport
		err     error
	)
	if all {
		reports, err = reaper.ReapAll(ctx)
	} else {
		var r *commands.ReapReport
		r, err = reaper.Reap(ctx, store)
		if r != nil {
			reports = append(reports, r)
		}
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	if encErr := enc.Encode(reports); encErr != nil {
		return encErr
	}
	return err
}
