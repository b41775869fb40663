package main

import (
	"fmt"
	"os"
	"time"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/diffeners/deepinsight/pkg/config"
)

var version = "dev"

func main() {
	root := &cobra.Command{
		Use:     "deepinsight",
		Short:   "Cost-aware AI fund analysis",
		Version: version,
	}

	root.AddCommand(
		newAnalyzeCmd(),
		newWatchCmd(),
		newCostCmd(),
		newCacheCmd(),
		newFavoritesCmd(),
	)

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		return config.Default(), nil
	}
	return config.Load(path)
}

func newLogger(cfg *config.Config) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(cfg.Logging.Level)
	if err != nil {
		lvl = zerolog.InfoLevel
	}
	return zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr, TimeFormat: time.RFC3339}).
		Level(lvl).
		With().Timestamp().Logger()
}
