package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/diffeners/deepinsight/pkg/analyzer"
	"github.com/diffeners/deepinsight/pkg/models"
	"github.com/diffeners/deepinsight/pkg/store"
)

func newWatchCmd() *cobra.Command {
	var (
		configPath string
		interval   time.Duration
	)

	cmd := &cobra.Command{
		Use:   "watch",
		Short: "Periodically analyze all favorite funds",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(configPath)
			if err != nil {
				return err
			}
			log := newLogger(cfg)

			st, err := store.New(cfg.DBPath)
			if err != nil {
				return err
			}
			defer func() { _ = st.Close() }()

			a := buildAnalyzer(cfg, st, log)
			ctx := cmd.Context()

			// Age-based cache cleanup runs alongside the analysis loop and
			// never blocks it.
			go a.RunSweeper(ctx, cfg.Cache.SweepInterval, cfg.Cache.Retention)

			runOnce := func() {
				favs, err := st.Favorites(ctx)
				if err != nil {
					log.Error().Err(err).Msg("load favorites")
					return
				}
				if len(favs) == 0 {
					log.Info().Msg("no favorites to watch; add some with 'deepinsight favorites add'")
					return
				}
				for _, f := range favs {
					req, err := buildRequest(ctx, cfg, log, f.Code, models.KindMovement, false)
					if err != nil {
						log.Warn().Err(err).Str("fund", f.Code).Msg("skipping fund")
						continue
					}
					result, err := a.Analyze(ctx, *req)
					if err != nil {
						log.Error().Err(err).Str("fund", f.Code).Msg("analysis failed")
						continue
					}
					fmt.Printf("[%s] %s (%s) %+.2f%%: %s\n",
						result.Source, result.FundName, result.FundCode,
						result.ChangePct, analyzer.Summary(result))
				}
			}

			runOnce()
			ticker := time.NewTicker(interval)
			defer ticker.Stop()
			for {
				select {
				case <-ctx.Done():
					return nil
				case <-ticker.C:
					runOnce()
				}
			}
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "path to config file")
	cmd.Flags().DurationVar(&interval, "interval", 15*time.Minute, "refresh interval")

	return cmd
}
