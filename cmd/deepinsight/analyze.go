package main

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/diffeners/deepinsight/pkg/analyzer"
	"github.com/diffeners/deepinsight/pkg/budget"
	"github.com/diffeners/deepinsight/pkg/cache"
	"github.com/diffeners/deepinsight/pkg/config"
	"github.com/diffeners/deepinsight/pkg/deepseek"
	"github.com/diffeners/deepinsight/pkg/models"
	"github.com/diffeners/deepinsight/pkg/pricing"
	"github.com/diffeners/deepinsight/pkg/store"
)

func newAnalyzeCmd() *cobra.Command {
	var (
		configPath string
		kind       string
		force      bool
		mock       bool
	)

	cmd := &cobra.Command{
		Use:   "analyze <fund-code>",
		Short: "Analyze a fund's daily movement",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadConfig(configPath)
			if err != nil {
				return err
			}
			if mock {
				cfg.Analysis.MockMode = true
			}
			log := newLogger(cfg)

			st, err := store.New(cfg.DBPath)
			if err != nil {
				return err
			}
			defer func() { _ = st.Close() }()

			a := buildAnalyzer(cfg, st, log)
			ctx := cmd.Context()

			req, err := buildRequest(ctx, cfg, log, args[0], models.AnalysisKind(kind), force)
			if err != nil {
				return err
			}

			result, err := a.Analyze(ctx, *req)
			if err != nil {
				return err
			}

			printResult(result)
			return nil
		},
	}

	cmd.Flags().StringVarP(&configPath, "config", "c", "", "path to config file")
	cmd.Flags().StringVar(&kind, "kind", string(models.KindMovement), "analysis kind (movement, holdings, news_summary)")
	cmd.Flags().BoolVar(&force, "force", false, "bypass the cache and recompute")
	cmd.Flags().BoolVar(&mock, "mock", false, "never call the external provider")

	return cmd
}

// buildAnalyzer wires the orchestrator and its collaborators from config.
func buildAnalyzer(cfg *config.Config, st *store.Store, log zerolog.Logger) *analyzer.Analyzer {
	policy := cache.NewPolicy(cfg.Cache, cfg.Analysis.VolatilityThreshold, st, log)
	estimator := pricing.NewEstimator(cfg.Pricing)
	enforcer := budget.New(cfg.Budget, st)

	var client analyzer.InferenceClient
	if cfg.Provider.APIKey != "" {
		client = deepseek.NewClient(cfg.Provider.URL, cfg.Provider.APIKey, cfg.Provider.Model,
			deepseek.WithHTTPClient(&http.Client{Timeout: cfg.Provider.Timeout}))
	}

	return analyzer.New(cfg, st, policy, estimator, enforcer, client, log)
}

// buildRequest gathers market context for a fund. Holdings and news failures
// degrade to empty context rather than aborting the analysis.
func buildRequest(ctx context.Context, cfg *config.Config, log zerolog.Logger, fundCode string, kind models.AnalysisKind, force bool) (*analyzer.Request, error) {
	provider := newDataProvider()

	snap, err := provider.Snapshot(ctx, fundCode)
	if err != nil {
		return nil, fmt.Errorf("fetch fund data: %w", err)
	}

	holdings, err := provider.Holdings(ctx, fundCode)
	if err != nil {
		log.Warn().Err(err).Str("fund", fundCode).Msg("holdings unavailable, continuing without")
		holdings = nil
	}

	news, err := provider.News(ctx, cfg.Analysis.MaxNews)
	if err != nil {
		log.Warn().Err(err).Msg("news unavailable, continuing without")
		news = nil
	}

	return &analyzer.Request{
		FundCode:     snap.Code,
		FundName:     snap.Name,
		ChangePct:    snap.ChangePct,
		Holdings:     rankHoldings(holdings),
		News:         news,
		Kind:         kind,
		ForceRefresh: force,
	}, nil
}

func printResult(r *models.AnalysisResult) {
	fmt.Printf("%s (%s)  %+.2f%%  [%s]\n", r.FundName, r.FundCode, r.ChangePct, r.Source)
	fmt.Println(strings.Repeat("-", 60))
	if r.Thinking != "" {
		fmt.Println(r.Thinking)
	}
	if r.Source == models.SourceExternal {
		fmt.Println(r.Assessment)
	}
	fmt.Println(strings.Repeat("-", 60))
	fmt.Printf("summary: %s\n", analyzer.Summary(r))
	fmt.Printf("tokens: %d  cost: %s\n", r.TokensUsed, r.EstimatedCost.StringFixed(4))
}
