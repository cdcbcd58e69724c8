package main

import (
	"os"

	"github.com/spf13/cobra"

	"MultiplierSentinel/internal/config"
	"MultiplierSentinel/internal/logger"
)

var rootCmd = &cobra.Command{
	Use:          "sentinel",
	Short:        "Classify multiplier histories",
	Long:         "MultiplierSentinel classifies recent multiplier histories into BREAKOUT, COOLDOWN, STABLE or LOW.",
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().String("config", "", "Path to YAML config (overrides CONFIG_PATH env var)")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(classifyCmd)
	rootCmd.AddCommand(profilesCmd)
	rootCmd.AddCommand(summaryCmd)
}

// loadConfig resolves the config path from --config, then CONFIG_PATH, then
// configs/config.yaml, and sets up the global logger.
func loadConfig(cmd *cobra.Command) (*config.Config, error) {
	path, _ := cmd.Flags().GetString("config")
	if path == "" {
		path = os.Getenv("CONFIG_PATH")
	}
	if path == "" {
		path = "configs/config.yaml"
	}

	cfg, err := config.Load(path)
	if err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if err := logger.Setup(cfg.Log.Level, cfg.Log.Format); err != nil {
		return nil, err
	}
	return cfg, nil
}
