package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/diffeners/deepinsight/pkg/budget"
	"github.com/diffeners/deepinsight/pkg/pricing"
	"github.com/diffeners/deepinsight/pkg/store"
)

func newCostCmd() *cobra.Command {
	var (
		configPath    string
		days          int
		savingsTokens int64
	)

	cmd := &cobra.Command{
		Use:   "cost",
		Short: "Show inference spend for today and the trailing window",
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

			ctx := cmd.Context()

			tokens, cost, err := st.TodayCost(ctx)
			if err != nil {
				return err
			}
			fmt.Printf("today: %d tokens, cost %s\n", tokens, cost.StringFixed(4))

			if cfg.Budget.Enabled {
				enforcer := budget.New(cfg.Budget, st)
				spent, remaining, err := enforcer.Status(ctx)
				if err != nil {
					return err
				}
				fmt.Printf("budget: spent %s, remaining %s\n", spent.StringFixed(4), remaining.StringFixed(4))
			}

			history, err := st.CostHistory(ctx, days)
			if err != nil {
				return err
			}
			if len(history) > 0 {
				fmt.Printf("\n%-12s %12s %12s\n", "DATE", "TOKENS", "COST")
				fmt.Println(strings.Repeat("-", 38))
				for _, day := range history {
					fmt.Printf("%-12s %12d %12s\n", day.Date, day.Tokens, day.Cost.StringFixed(4))
				}
			}

			if savingsTokens > 0 {
				estimator := pricing.NewEstimator(cfg.Pricing)
				savings, err := estimator.EstimateSavings(savingsTokens, cfg.Analysis.CacheHitRate)
				if err != nil {
					return err
				}
				fmt.Printf("\nat a %.0f%% cache hit rate, %d of %d tokens would be cached, saving %s\n",
					savings.CacheHitRate*100, savings.CachedTokens, savings.TotalTokens,
					savings.SavedCost.StringFixed(4))
			}

			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "path to config file")
	cmd.Flags().IntVar(&days, "days", 7, "history window in days")
	cmd.Flags().Int64Var(&savingsTokens, "savings-tokens", 0, "estimate savings for this many tokens")

	return cmd
}
