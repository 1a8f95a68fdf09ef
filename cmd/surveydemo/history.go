package main

import (
	"fmt"
	"sort"

	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/DaanHessen/survey-demo-tui/internal/store"
)

var historyLimit int

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show the current sandbox person and its tracked actions",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig(cmd)
		if err != nil {
			return err
		}
		if cfg.EnvironmentID == "" {
			return fmt.Errorf("environment id is required")
		}
		ctx := cmd.Context()
		db, err := openDB(ctx, cfg)
		if err != nil {
			return err
		}
		defer db.Close()

		repo := store.NewPersonRepo(db)
		p, err := repo.Latest(ctx, cfg.EnvironmentID)
		if errors.Is(err, store.ErrNotFound) {
			fmt.Fprintf(cmd.OutOrStdout(), "No person yet for environment %s\n", cfg.EnvironmentID)
			return nil
		}
		if err != nil {
			return err
		}
		acts, err := repo.RecentActions(ctx, p.ID, historyLimit)
		if err != nil {
			return err
		}

		out := cmd.OutOrStdout()
		fmt.Fprintf(out, "Person %s (created %s)\n", p.ID, p.CreatedAt.Format("2006-01-02 15:04:05"))
		if p.UserID != "" {
			fmt.Fprintf(out, "User ID: %s\n", p.UserID)
		}
		keys := make([]string, 0, len(p.Attributes))
		for k := range p.Attributes {
			keys = append(keys, k)
		}
		sort.Strings(keys)
		for _, k := range keys {
			fmt.Fprintf(out, "  %s = %s\n", k, p.Attributes[k])
		}
		if len(acts) == 0 {
			fmt.Fprintln(out, "(no actions)")
		}
		for _, a := range acts {
			fmt.Fprintf(out, "- %s  %s\n", a.CreatedAt.Format("15:04:05"), a.Name)
		}
		return nil
	},
}

func init() {
	historyCmd.Flags().IntVar(&historyLimit, "limit", 20, "number of actions to show")
	rootCmd.AddCommand(historyCmd)
}
