package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/spf13/cobra"

	"github.com/abhisek/scorebook/internal/config"
	"github.com/abhisek/scorebook/internal/logger"
	"github.com/abhisek/scorebook/internal/scores"
	"github.com/abhisek/scorebook/internal/store"
)

var rootCmd = &cobra.Command{
	Use:           "scorebook",
	Short:         "Track test scores per subject",
	Long:          "Scorebook records test scores per subject and charts how they move over time.",
	SilenceUsage:  true,
	SilenceErrors: true,
	RunE: func(cmd *cobra.Command, args []string) error {
		return runApp(cmd)
	},
}

// Execute runs the root command. Interrupts cancel the command context.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()
	err := rootCmd.ExecuteContext(ctx)
	if err != nil {
		printError(rootCmd.ErrOrStderr(), err)
	}
	return err
}

func init() {
	rootCmd.PersistentFlags().String("db", "", "Path to SQLite database file (overrides SCOREBOOK_DB env var)")
	rootCmd.PersistentFlags().String("config", "", "Path to config file (overrides SCOREBOOK_CONFIG env var)")

	rootCmd.AddCommand(runCmd)
	rootCmd.AddCommand(subjectsCmd)
	rootCmd.AddCommand(testsCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(exportCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(versionCmd)
}

// deps is everything a command needs to reach the stored state.
type deps struct {
	cfg     config.Config
	log     *logger.Logger
	store   *store.Store
	repo    store.StateRepo
	tracker *scores.Tracker
}

// openDeps loads configuration, opens the log and the database, and
// hydrates a tracker. Callers must Close the result.
func openDeps(cmd *cobra.Command) (*deps, error) {
	cfgPath, _ := cmd.Flags().GetString("config")
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return nil, fmt.Errorf("load config: %w", err)
	}

	logPath := cfg.LogPath
	if logPath == "" {
		if logPath, err = logger.DefaultLogPath(); err != nil {
			return nil, fmt.Errorf("resolve log path: %w", err)
		}
	}
	log, err := logger.New(logger.Options{Mode: cfg.LogMode, Level: cfg.LogLevel, Path: logPath})
	if err != nil {
		return nil, fmt.Errorf("open log: %w", err)
	}

	dbPath, err := resolveDBPath(cmd, cfg)
	if err != nil {
		log.Sync()
		return nil, fmt.Errorf("resolve DB path: %w", err)
	}
	st, err := store.Open(dbPath)
	if err != nil {
		log.Sync()
		return nil, fmt.Errorf("open store: %w", err)
	}
	log = log.With("command", cmd.Name())
	log.Debug("store opened", "path", dbPath)

	repo := st.StateRepo(log)
	tracker := scores.NewTracker(cmd.Context(), repo, cfg.DefaultSubjects, scores.WithLogger(log))
	return &deps{cfg: cfg, log: log, store: st, repo: repo, tracker: tracker}, nil
}

func (d *deps) Close() {
	if err := d.store.Close(); err != nil {
		d.log.Warn("close store failed", "error", err)
	}
	d.log.Sync()
}

// resolveDBPath returns the database path using --db flag (highest priority),
// then the configured path (file or SCOREBOOK_DB), then the default XDG path.
func resolveDBPath(cmd *cobra.Command, cfg config.Config) (string, error) {
	if p, _ := cmd.Flags().GetString("db"); p != "" {
		return p, store.EnsureDir(p)
	}
	if cfg.DBPath != "" {
		return cfg.DBPath, store.EnsureDir(cfg.DBPath)
	}
	return store.DefaultDBPath()
}
