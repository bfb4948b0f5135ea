// Package main is the entry point for the tabletop engine CLI
package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/KirkDiggler/tabletop-engine/internal/config"
	"github.com/KirkDiggler/tabletop-engine/internal/logging"
)

var (
	cfg    *config.Config
	logger *zap.Logger
)

var rootCmd = &cobra.Command{
	Use:   "engine",
	Short: "Tabletop RPG rules engine",
	Long: `Resolves dice, character progression and turn-based combat for a D&D 5e style game.
Configuration is read from the environment and an optional .env file.`,
	SilenceUsage:      true,
	PersistentPreRunE: setup,
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.AddCommand(rollCmd)
	rootCmd.AddCommand(duelCmd)
	rootCmd.AddCommand(simulateCmd)
	rootCmd.AddCommand(createCharacterCmd)
	rootCmd.AddCommand(awardCmd)
	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(classesCmd)
}

func setup(cmd *cobra.Command, args []string) error {
	envLoaded := godotenv.Load() == nil

	var err error
	cfg, err = config.Load()
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	logger, err = logging.New(logging.Config{
		Level:       cfg.Log.Level,
		Development: cfg.Log.Development,
	})
	if err != nil {
		return err
	}

	logger.Debug("configuration loaded",
		zap.Bool("dotenv", envLoaded),
		zap.Bool("redis", cfg.UseRedis()),
		zap.String("classes_file", cfg.Engine.ClassesFile))

	return nil
}
