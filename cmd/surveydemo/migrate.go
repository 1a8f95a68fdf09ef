package main

import (
	"context"
	"fmt"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/DaanHessen/survey-demo-tui/internal/store"
)

var migrateCmd = &cobra.Command{
	Use:       "migrate up|down",
	Short:     "Apply or roll back the sandbox database schema",
	Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	ValidArgs: []string{"up", "down"},
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		migrator, err := store.NewMigrator(cfg.DSN)
		if err != nil {
			return err
		}
		ctx, cancel := context.WithTimeout(cmd.Context(), migrationTimeout)
		defer cancel()

		out := cmd.OutOrStdout()
		switch args[0] {
		case "up":
			if err := migrator.Up(ctx); err != nil && !errors.Is(err, store.ErrNoChange) {
				return err
			}
			fmt.Fprintln(out, "Migrations applied")
		case "down":
			if err := migrator.Down(ctx); err != nil && !errors.Is(err, store.ErrNoChange) {
				return err
			}
			fmt.Fprintln(out, "Migrations rolled back")
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
