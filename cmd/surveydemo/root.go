package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/charmbracelet/log"
	"github.com/pkg/errors"
	"github.com/spf13/cobra"

	"github.com/DaanHessen/survey-demo-tui/internal/sdk"
	"github.com/DaanHessen/survey-demo-tui/internal/store"
	"github.com/DaanHessen/survey-demo-tui/internal/ui"
	"github.com/DaanHessen/survey-demo-tui/internal/util"
)

const migrationTimeout = 30 * time.Second

var (
	cfgFile string
	dsn     string
	envID   string
	theme   string
	logFile string
	offline bool
)

var rootCmd = &cobra.Command{
	Use:   "surveydemo",
	Short: "In-product survey SDK demo app",
	Long: `surveydemo helps you test your in-app surveys from the terminal. Each button
sends one SDK call (logout, track, set attribute, set email, set user id) for the
environment configured in .env or .surveydemo.yml.`,
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE:          runDemo,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", util.DefaultConfigFile, "config file path")
	rootCmd.PersistentFlags().StringVar(&dsn, "dsn", "", "PostgreSQL DSN (default $DATABASE_URL)")
	rootCmd.PersistentFlags().StringVar(&envID, "env-id", "", "environment id (default $FORMBRICKS_ENVIRONMENT_ID)")
	rootCmd.PersistentFlags().StringVar(&logFile, "log-file", "", "log file path")
	rootCmd.Flags().StringVar(&theme, "theme", "", "dark mode palette: gray|slate|zinc")
	rootCmd.Flags().BoolVar(&offline, "offline", false, "keep sandbox people in memory instead of postgres")
}

// loadConfig layers flags over the file and environment.
func loadConfig(cmd *cobra.Command) (*util.Config, error) {
	cfg, err := util.Load(cfgFile)
	if err != nil {
		return nil, err
	}
	flags := cmd.Flags()
	if flags.Changed("dsn") {
		cfg.DSN = dsn
	}
	if flags.Changed("env-id") {
		cfg.EnvironmentID = envID
	}
	if flags.Changed("log-file") {
		cfg.LogFile = logFile
	}
	if flags.Changed("theme") {
		cfg.Theme = theme
	}
	if flags.Changed("offline") {
		cfg.Offline = offline
	}
	return cfg, nil
}

func openLogger(cfg *util.Config) (*log.Logger, func(), error) {
	f, err := os.OpenFile(cfg.LogFile, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
	if err != nil {
		return nil, func() {}, errors.Wrap(err, "open log file")
	}
	logger := log.NewWithOptions(f, log.Options{ReportTimestamp: true, Prefix: "surveydemo"})
	if lvl, err := log.ParseLevel(cfg.LogLevel); err == nil {
		logger.SetLevel(lvl)
	}
	return logger, func() { f.Close() }, nil
}

// openDB applies pending migrations before handing out a connection.
func openDB(ctx context.Context, cfg *util.Config) (*store.DB, error) {
	mig, err := store.NewMigrator(cfg.DSN)
	if err != nil {
		return nil, err
	}
	migCtx, cancel := context.WithTimeout(ctx, migrationTimeout)
	defer cancel()
	if err := mig.Up(migCtx); err != nil && !errors.Is(err, store.ErrNoChange) {
		return nil, errors.Wrap(err, "migrations failed")
	}
	return store.Open(ctx, *cfg)
}

func runDemo(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig(cmd)
	if err != nil {
		return err
	}
	if err := cfg.Validate(); err != nil {
		return err
	}
	logger, closeLog, err := openLogger(cfg)
	if err != nil {
		return err
	}
	defer closeLog()

	ctx := cmd.Context()
	var people sdk.People
	if cfg.Offline {
		people = sdk.NewMemoryPeople()
		logger.Info("sandbox running in memory")
	} else {
		db, err := openDB(ctx, cfg)
		if err != nil {
			return fmt.Errorf("failed to open database: %w", err)
		}
		defer db.Close()
		people = store.NewPersonRepo(db)
	}

	journal := sdk.NewJournal(cfg.JournalSize)
	client := sdk.NewLogged(sdk.NewSandbox(people, cfg.EnvironmentID), logger, journal)
	logger.Info("starting demo", "environment", cfg.EnvironmentID, "version", Version)
	return ui.Run(ctx, client, journal, *cfg, logger)
}
