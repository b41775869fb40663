package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/diffeners/deepinsight/pkg/store"
)

func newCacheCmd() *cobra.Command {
	var configPath string

	cmd := &cobra.Command{
		Use:   "cache",
		Short: "Inspect and maintain the analysis cache",
	}
	cmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to config file")

	stats := &cobra.Command{
		Use:   "stats",
		Short: "Show cache entry count and hit/miss counters",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(configPath)
			if err != nil {
				return err
			}
			st, err := store.New(cfg.DBPath)
			if err != nil {
				return err
			}
			defer func() { _ = st.Close() }()

			s, err := st.CacheStats(cmd.Context())
			if err != nil {
				return err
			}
			fmt.Printf("entries: %d\nhits: %d\nmisses: %d\n", s.Entries, s.Hits, s.Misses)
			return nil
		},
	}

	sweep := &cobra.Command{
		Use:   "sweep",
		Short: "Delete cache entries older than the retention window",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(configPath)
			if err != nil {
				return err
			}
			st, err := store.New(cfg.DBPath)
			if err != nil {
				return err
			}
			defer func() { _ = st.Close() }()

			n, err := st.Sweep(cmd.Context(), cfg.Cache.Retention)
			if err != nil {
				return err
			}
			fmt.Printf("removed %d expired entries\n", n)
			return nil
		},
	}

	cmd.AddCommand(stats, sweep)
	return cmd
}
