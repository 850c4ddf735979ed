// Package main is the entry point for the loot command line tool
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/rpg-loot/internal/config"
	"github.com/KirkDiggler/rpg-loot/internal/errors"
	"github.com/KirkDiggler/rpg-loot/internal/logger"
)

var (
	cfg *config.Config

	// Global flags
	modelName string
	logLevel  string
)

var rootCmd = &cobra.Command{
	Use:   "loot",
	Short: "Procedural fantasy loot generator",
	Long: `loot asks a local text generation model for fantasy items, reconciles the
answers against tier-scaled stat tables and keeps a deduplicated collection.`,
	SilenceUsage:      true,
	SilenceErrors:     true,
	PersistentPreRunE: loadConfig,
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	err := rootCmd.ExecuteContext(ctx)
	stop()

	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(errors.GetCode(err).ExitCode())
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&modelName, "model", "", "text generation model (overrides LOOT_MODEL)")
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (overrides LOG_LEVEL)")

	rootCmd.AddCommand(generateCmd)
	rootCmd.AddCommand(setCmd)
	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(showCmd)
	rootCmd.AddCommand(statsCmd)
	rootCmd.AddCommand(modelsCmd)
	rootCmd.AddCommand(pingCmd)
}

func loadConfig(cmd *cobra.Command, _ []string) error {
	loaded, err := config.Load()
	if err != nil {
		return errors.Wrap(err, "invalid configuration")
	}
	if modelName != "" {
		loaded.Model = modelName
	}
	if logLevel != "" {
		loaded.LogLevel = logLevel
	}
	cfg = loaded

	logger.Setup(os.Stderr, logger.Config{
		Level:  cfg.LogLevel,
		Format: cfg.LogFormat,
	})

	ctx := logger.WithRequestID(cmd.Context(), logger.GenerateRequestID())
	cmd.SetContext(ctx)
	logger.FromContext(ctx).DebugContext(ctx, "configuration loaded", "config", cfg.String())

	return nil
}
