package ui

import (
	"context"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/log"

	"github.com/DaanHessen/survey-demo-tui/internal/sdk"
	"github.com/DaanHessen/survey-demo-tui/internal/util"
)

// Run boots the TUI program and blocks until it exits.
func Run(ctx context.Context, client sdk.Client, journal *sdk.Journal, cfg util.Config, logger *log.Logger) error {
	m := newModel(ctx, Options{
		EnvironmentID: cfg.EnvironmentID,
		Client:        client,
		Journal:       journal,
		Theme:         cfg.Theme,
		Logger:        logger,
	})
	program := tea.NewProgram(m, tea.WithContext(ctx), tea.WithAltScreen())
	_, err := program.Run()
	return err
}
