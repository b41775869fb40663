// Package analyzer orchestrates fund analysis: cache reuse, the local
// deterministic fallback, and paid external inference, with spend recorded
// in the cost ledger.
package analyzer

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"math"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/singleflight"

	"github.com/diffeners/deepinsight/pkg/budget"
	"github.com/diffeners/deepinsight/pkg/cache"
	"github.com/diffeners/deepinsight/pkg/config"
	"github.com/diffeners/deepinsight/pkg/deepseek"
	"github.com/diffeners/deepinsight/pkg/models"
	"github.com/diffeners/deepinsight/pkg/pricing"
	"github.com/diffeners/deepinsight/pkg/store"
)

// ledgerOperation labels external-inference rows in the cost ledger.
const ledgerOperation = "deepseek_analysis"

// InferenceClient is the external provider boundary.
type InferenceClient interface {
	Complete(ctx context.Context, prompt string, maxOutputTokens int) (deepseek.Completion, error)
}

// Request describes one analysis invocation.
type Request struct {
	FundCode     string
	FundName     string
	ChangePct    float64
	Holdings     []models.Holding
	News         []models.NewsItem
	Kind         models.AnalysisKind
	ForceRefresh bool
}

// Analyzer is the orchestration entry point. Concurrent calls for the same
// (fund, kind) pair are coalesced so at most one external call is in flight
// per key; different keys proceed in parallel.
type Analyzer struct {
	store     *store.Store
	policy    *cache.Policy
	estimator *pricing.Estimator
	enforcer  *budget.Enforcer
	client    InferenceClient

	analysisCfg     config.AnalysisConfig
	providerTimeout time.Duration
	maxOutputTokens int

	log   zerolog.Logger
	group singleflight.Group
}

// New wires an Analyzer. client may be nil, in which case every miss takes
// the local fallback path.
func New(cfg *config.Config, st *store.Store, pol *cache.Policy, est *pricing.Estimator, enf *budget.Enforcer, client InferenceClient, log zerolog.Logger) *Analyzer {
	return &Analyzer{
		store:           st,
		policy:          pol,
		estimator:       est,
		enforcer:        enf,
		client:          client,
		analysisCfg:     cfg.Analysis,
		providerTimeout: cfg.Provider.Timeout,
		maxOutputTokens: cfg.Provider.MaxOutputTokens,
		log:             log,
	}
}

// Analyze produces an analysis for the request, reusing a fresh cached result
// when policy permits, otherwise computing locally or via external inference.
// It always returns a usable result for valid input; only persistence
// failures surface as errors.
func (a *Analyzer) Analyze(ctx context.Context, req Request) (*models.AnalysisResult, error) {
	if req.Kind == "" {
		req.Kind = models.KindMovement
	}

	key := req.FundCode + "|" + string(req.Kind)
	v, err, _ := a.group.Do(key, func() (any, error) {
		return a.analyze(ctx, req)
	})
	if err != nil {
		return nil, err
	}
	return v.(*models.AnalysisResult), nil
}

func (a *Analyzer) analyze(ctx context.Context, req Request) (*models.AnalysisResult, error) {
	if !req.ForceRefresh && a.policy.ShouldUseCache(ctx, req.FundCode, req.Kind, req.ChangePct) {
		if res := a.fromCache(ctx, req); res != nil {
			return res, nil
		}
	}

	result := a.compute(ctx, req)

	payload, err := json.Marshal(result)
	if err != nil {
		return nil, fmt.Errorf("encode analysis: %w", err)
	}
	if err := a.store.PutAnalysis(ctx, req.FundCode, req.Kind, payload); err != nil {
		return nil, err
	}
	if result.Source == models.SourceExternal {
		tokens := int64(result.TokensUsed)
		if err := a.store.RecordCost(ctx, tokens, result.EstimatedCost, ledgerOperation); err != nil {
			return nil, err
		}
	}
	return result, nil
}

// fromCache re-serves a stored result, returning nil on any problem so the
// caller falls through to the compute path. Re-served results carry zero
// tokens and cost: the spend was ledgered when the entry was first written.
func (a *Analyzer) fromCache(ctx context.Context, req Request) *models.AnalysisResult {
	payload, ok, err := a.store.GetAnalysis(ctx, req.FundCode, req.Kind, a.policy.TTLFor(req.Kind))
	if err != nil {
		a.log.Warn().Err(err).Str("fund", req.FundCode).Msg("cache read failed, recomputing")
		return nil
	}
	if !ok {
		return nil
	}

	var result models.AnalysisResult
	if err := json.Unmarshal(payload, &result); err != nil {
		a.log.Warn().Err(err).Str("fund", req.FundCode).Msg("cached payload unreadable, recomputing")
		return nil
	}

	result.Source = models.SourceCacheHit
	result.TokensUsed = 0
	result.InputTokens = 0
	result.OutputTokens = 0
	result.EstimatedCost = decimal.Zero

	a.log.Debug().Str("fund", req.FundCode).Str("kind", string(req.Kind)).Msg("serving cached analysis")
	return &result
}

// compute routes between the local fallback and external inference. The
// polarity is the inverse of the cache rule: a quiet signal is not worth
// paying for, so only moves at or beyond the threshold reach the provider.
func (a *Analyzer) compute(ctx context.Context, req Request) *models.AnalysisResult {
	if a.client == nil || a.analysisCfg.MockMode || math.Abs(req.ChangePct) < a.analysisCfg.VolatilityThreshold {
		return a.localAnalysis(req)
	}

	if a.enforcer != nil {
		if err := a.enforcer.Check(ctx); err != nil {
			if errors.Is(err, budget.ErrBudgetExceeded) {
				a.log.Info().Str("fund", req.FundCode).Msg("daily budget exhausted, using local analysis")
			} else {
				a.log.Warn().Err(err).Msg("budget check failed, using local analysis")
			}
			return a.localAnalysis(req)
		}
	}

	result, err := a.externalAnalysis(ctx, req)
	if err != nil {
		a.log.Warn().Err(err).Str("fund", req.FundCode).Msg("external inference failed, falling back to local analysis")
		return a.localAnalysis(req)
	}
	return result
}

func (a *Analyzer) externalAnalysis(ctx context.Context, req Request) (*models.AnalysisResult, error) {
	prompt := buildPrompt(req, a.analysisCfg.MaxHoldings, a.analysisCfg.MaxNews, a.analysisCfg.NewsCharBudget)

	callCtx := ctx
	if a.providerTimeout > 0 {
		var cancel context.CancelFunc
		callCtx, cancel = context.WithTimeout(ctx, a.providerTimeout)
		defer cancel()
	}

	comp, err := a.client.Complete(callCtx, prompt, a.maxOutputTokens)
	if err != nil {
		return nil, err
	}

	cost, err := a.estimator.EstimateCost(comp.InputTokens, comp.OutputTokens)
	if err != nil {
		return nil, fmt.Errorf("malformed usage from provider: %w", err)
	}

	a.log.Info().
		Str("fund", req.FundCode).
		Int("input_tokens", comp.InputTokens).
		Int("output_tokens", comp.OutputTokens).
		Str("cost", cost.String()).
		Msg("external analysis complete")

	return &models.AnalysisResult{
		ID:            uuid.NewString(),
		FundCode:      req.FundCode,
		FundName:      req.FundName,
		ChangePct:     req.ChangePct,
		AnalyzedAt:    time.Now().UTC(),
		Thinking:      comp.Reasoning,
		Assessment:    comp.Text,
		InputTokens:   comp.InputTokens,
		OutputTokens:  comp.OutputTokens,
		TokensUsed:    comp.InputTokens + comp.OutputTokens,
		EstimatedCost: cost,
		Source:        models.SourceExternal,
	}, nil
}

// RunSweeper deletes cache entries older than retention every interval until
// ctx is cancelled. It takes no locks shared with orchestration.
func (a *Analyzer) RunSweeper(ctx context.Context, interval, retention time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			n, err := a.store.Sweep(ctx, retention)
			if err != nil {
				a.log.Warn().Err(err).Msg("cache sweep failed")
				continue
			}
			if n > 0 {
				a.log.Info().Int64("removed", n).Msg("cache sweep complete")
			}
		}
	}
}
