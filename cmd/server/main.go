package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"

	"github.com/JonMunkholm/swimmeet/internal/config"
	"github.com/JonMunkholm/swimmeet/internal/logging"
)

var (
	// Global flags
	envFile string

	cfg *config.Config
)

// rootCmd serves the web UI when run without a subcommand.
var rootCmd = &cobra.Command{
	Use:   "swimmeet",
	Short: "Swim meet roster server",
	Long: `swimmeet serves the swim meet web UI: the swimmer roster with add and
edit forms, photo uploads and the status reference page.

Configuration comes from the environment, after loading .env (or --env-file)
over it. Run without a subcommand to start the server.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		loadEnv(envFile)

		var err error
		cfg, err = config.Load()
		if err != nil {
			return fmt.Errorf("load configuration: %w", err)
		}
		logging.Setup(cfg.Logging.Level, cfg.Logging.Format)
		return nil
	},
	RunE: runServe,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "dotenv file loaded over the environment")
	rootCmd.AddCommand(serveCmd, rosterCmd)
}

// loadEnv loads a .env file if it exists. Overload overwrites existing env
// vars so the file wins over a stale shell.
func loadEnv(path string) {
	if err := godotenv.Overload(path); err != nil {
		slog.Debug("no env file loaded, using environment variables", "path", path)
		return
	}
	slog.Debug("loaded env file (overwriting existing env vars)", "path", path)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		slog.Error("command failed", "error", err)
		os.Exit(1)
	}
}
