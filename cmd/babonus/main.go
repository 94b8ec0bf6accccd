// Package main is the entry point for the babonus CLI and gRPC server
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/KirkDiggler/babonus/internal/config"
)

var (
	cfg *config.Config

	logLevel  string
	scenePath string
	store     string
)

var rootCmd = &cobra.Command{
	Use:   "babonus",
	Short: "Conditional roll bonuses for D&D 5e scenes",
	Long: `babonus evaluates data-driven bonuses against rolls made on a scene,
measures aura ranges between tokens and manages the bonuses embedded on
actors, items and effects.`,
	SilenceUsage:      true,
	PersistentPreRunE: loadConfig,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "", "log level (overrides BABONUS_LOG_LEVEL)")
	rootCmd.PersistentFlags().StringVar(&scenePath, "scene", "", "scene JSON file (overrides BABONUS_SCENE_PATH)")
	rootCmd.PersistentFlags().StringVar(&store, "store", "", "bonus store, memory or redis (overrides BABONUS_STORE)")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(rollCmd)
	rootCmd.AddCommand(auraCmd)
	rootCmd.AddCommand(distanceCmd)
	rootCmd.AddCommand(proficiencyCmd)
	rootCmd.AddCommand(bonusCmd)
}

func loadConfig(cmd *cobra.Command, _ []string) error {
	loaded, err := config.Load()
	if err != nil {
		return err
	}

	if cmd.Flags().Changed("log-level") {
		loaded.LogLevel = logLevel
	}
	if cmd.Flags().Changed("scene") {
		loaded.ScenePath = scenePath
	}
	if cmd.Flags().Changed("store") {
		loaded.Store = store
	}
	if err := loaded.Validate(); err != nil {
		return err
	}

	slog.SetDefault(slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
		Level: loaded.SlogLevel(),
	})))

	cfg = loaded
	return nil
}
