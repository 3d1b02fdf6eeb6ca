package main

import (
	"fmt"
	"os"

	"github.com/newthinker/natal/internal/config"
	"github.com/newthinker/natal/internal/logger"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	cfgFile string
	debug   bool
)

var rootCmd = &cobra.Command{
	Use:   "natal",
	Short: "Natal chart calculator",
	Long: `natal computes the sidereal sun and moon signs, the ascendant and the
chart ruler for a birth date, time and place, as a one-off command or an
HTTP service.`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "config file path")
	rootCmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "enable debug mode")
}

// setup loads and validates the configuration and builds the logger.
func setup() (*config.Config, *zap.Logger, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, nil, fmt.Errorf("loading config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, nil, fmt.Errorf("config validation failed: %w", err)
	}

	opts := logger.Options{
		Development: debug || cfg.Server.Mode == "debug",
		Level:       cfg.Log.Level,
	}
	if debug {
		opts.Level = "debug"
	}
	log, err := logger.New(opts)
	if err != nil {
		return nil, nil, fmt.Errorf("creating logger: %w", err)
	}

	if cfgFile == "" {
		log.Debug("no config file specified, using defaults and environment")
	}
	return cfg, log, nil
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
