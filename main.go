package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/mrlokans/sleeptracker/internal/cli"
	"github.com/mrlokans/sleeptracker/internal/config"
	"github.com/mrlokans/sleeptracker/internal/entrypoint"
)

// Version information - set at build time via ldflags
var (
	Version = "dev"
	Commit  = "unknown"
)

var (
	// cfg is loaded from the environment before any command runs.
	cfg *config.Config

	// dbPath overrides DATABASE_PATH for the store commands.
	dbPath string
)

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:           "sleeptracker",
	Short:         "Sleeptracker records nightly sleep with tags and comments",
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		cfg = config.NewConfig()
		if dbPath != "" {
			cfg.Database.Path = dbPath
		}
	},
	// Running without a subcommand starts the server.
	RunE: func(cmd *cobra.Command, args []string) error {
		return entrypoint.Run(cfg, Version)
	},
}

func init() {
	rootCmd.PersistentFlags().StringVar(&dbPath, "db", "", "path to the sleep store (default: $DATABASE_PATH or "+config.DefaultDatabasePath+")")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(initCmd)
	rootCmd.AddCommand(repairCmd)
	rootCmd.AddCommand(versionCmd)
}

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP API",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return entrypoint.Run(cfg, Version)
	},
}

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create the sleep store if it does not exist",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		log, err := entrypoint.NewLogger(cfg)
		if err != nil {
			return err
		}
		defer func() { _ = log.Sync() }()
		return cli.NewInitCommand(cfg.Database.Path, cmd.OutOrStdout(), log).Run(cmd.Context())
	},
}

var repairCmd = &cobra.Command{
	Use:   "repair",
	Short: "Delete tag links and comments left behind by removed sleeps or tags",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		log, err := entrypoint.NewLogger(cfg)
		if err != nil {
			return err
		}
		defer func() { _ = log.Sync() }()
		log.Info("Running repair", zap.String("path", cfg.Database.Path))
		return cli.NewRepairCommand(cfg.Database.Path, cmd.OutOrStdout(), log).Run(cmd.Context())
	},
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version number",
	Run: func(cmd *cobra.Command, args []string) {
		fmt.Fprintf(cmd.OutOrStdout(), "sleeptracker %s (%s)\n", Version, Commit)
	},
}
