package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"universe-builder/internal/shared/config"
	"universe-builder/internal/shared/logger"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// app carries what every subcommand needs once the root command has loaded
// the configuration.
type app struct {
	configPath string
	logLevel   string
	logFormat  string

	cfg    *config.Config
	logger *slog.Logger
}

func main() {
	a := &app{}

	rootCmd := &cobra.Command{
		Use:           "universe-builder",
		Short:         "Procedural star catalog and star system generator",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			return a.init(cmd)
		},
	}

	rootCmd.PersistentFlags().StringVar(&a.configPath, "config", "", "YAML configuration file")
	rootCmd.PersistentFlags().StringVar(&a.logLevel, "log-level", "", "log level (debug, info, warn, error)")
	rootCmd.PersistentFlags().StringVar(&a.logFormat, "log-format", "", "log format (text, json)")

	rootCmd.AddCommand(a.catalogCmd())
	rootCmd.AddCommand(a.objectsCmd())
	rootCmd.AddCommand(a.artifactsCmd())
	rootCmd.AddCommand(a.buildCmd())
	rootCmd.AddCommand(a.publishCmd())
	rootCmd.AddCommand(a.serveCmd())
	rootCmd.AddCommand(a.tokenCmd())

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()
	if err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func (a *app) init(cmd *cobra.Command) error {
	envErr := godotenv.Load()

	cfg, err := config.Load(a.configPath)
	if err != nil {
		return err
	}
	if a.logLevel != "" {
		cfg.Logging.Level = a.logLevel
	}
	if a.logFormat != "" {
		cfg.Logging.Format = a.logFormat
	}

	a.cfg = cfg
	a.logger = logger.Init(cfg.Logging, os.Stderr).With("command", cmd.Name())
	if envErr != nil {
		a.logger.Debug("No .env file found, using system environment variables")
	}
	return nil
}
