// Package cli defines the rowloom command tree. The bare command runs
// the TUI; subcommands cover scripted import, listing, and export.
package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"rowloom/internal/config"
	"rowloom/internal/domain"
	"rowloom/internal/logging"
	"rowloom/internal/persist"
	"rowloom/internal/store"
	"rowloom/internal/ui"
	"rowloom/internal/watch"
)

var (
	// Global flags
	verbose   bool
	configDir string

	// Resolved per run
	paths  config.Paths
	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "rowloom",
	Short: "rowloom - track your place in beading patterns from the terminal",
	Long: `rowloom keeps loom and peyote patterns and your position in them.

Import a BeadTool word chart or a plain text pattern, then step through
it bead by bead. Position, done rows, and display settings persist
between sessions.

Run without arguments to open the interactive tracker.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if configDir != "" {
			paths = config.PathsIn(configDir)
		} else {
			paths = config.DefaultPaths()
		}
		var err error
		logger, err = logging.New(paths.LogPath, verbose)
		if err != nil {
			return fmt.Errorf("failed to initialize logger: %w", err)
		}
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return runTracker(cmd.Context())
	},
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "debug logging")
	rootCmd.PersistentFlags().StringVar(&configDir, "config-dir", "", "override the config directory")

	rootCmd.AddCommand(importCmd)
	rootCmd.AddCommand(projectsCmd)
	rootCmd.AddCommand(exportCmd)
}

// Execute runs the command tree.
func Execute() error {
	return rootCmd.Execute()
}

// runTracker wires the store, services, and watcher, then hands the
// terminal to the TUI until it exits.
func runTracker(ctx context.Context) error {
	db, err := persist.Open(ctx, paths.DBPath)
	if err != nil {
		return fmt.Errorf("open project database: %w", err)
	}
	defer db.Close()

	st := store.New(logger)
	st.AddMiddleware(store.LoggingMiddleware(logger))
	st.AddMiddleware(store.NotificationIDMiddleware())

	settings := config.NewSettingsService(config.NewSettingsStore(paths.SettingsPath), st, logger)
	settings.Start()
	defer settings.Stop()

	projects := persist.NewProjectsService(db, st, logger)
	projects.LoadProjects(ctx)

	watcher, err := watch.New(st, projects, logger)
	if err != nil {
		return fmt.Errorf("start file watcher: %w", err)
	}
	if err := watcher.Start(ctx); err != nil {
		return err
	}
	defer watcher.Stop()

	st.Dispatch(domain.SetReadyAction{Ready: true})

	logger.Info("starting tracker", zap.String("db", paths.DBPath))
	return ui.Run(st, projects, logger)
}
