package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// SourceKind tags how an AnalysisResult was produced.
type SourceKind string

const (
	// SourceExternal means a paid inference call produced the result.
	SourceExternal SourceKind = "external_inference"
	// SourceLocalFallback means the deterministic local heuristic produced it.
	SourceLocalFallback SourceKind = "local_fallback"
	// SourceCacheHit means a previously computed result was re-served.
	SourceCacheHit SourceKind = "cache_hit"
)

// AnalysisKind selects the caching strategy and prompt template for an analysis.
type AnalysisKind string

const (
	KindMovement    AnalysisKind = "movement"
	KindHoldings    AnalysisKind = "holdings"
	KindNewsSummary AnalysisKind = "news_summary"
)

// AnalysisResult is the outcome of one orchestration call. It is returned to
// callers and stored as the cache payload.
type AnalysisResult struct {
	ID             string          `json:"id"`
	FundCode       string          `json:"fund_code"`
	FundName       string          `json:"fund_name"`
	ChangePct      float64         `json:"daily_change_pct"`
	AnalyzedAt     time.Time       `json:"analyzed_at"`
	VolatilityBand string          `json:"volatility_band,omitempty"`
	Thinking       string          `json:"thinking,omitempty"`
	Assessment     string          `json:"assessment"`
	RiskWarning    string          `json:"risk_warning,omitempty"`
	Recommendation string          `json:"recommendation,omitempty"`
	InputTokens    int             `json:"input_tokens"`
	OutputTokens   int             `json:"output_tokens"`
	TokensUsed     int             `json:"tokens_used"`
	EstimatedCost  decimal.Decimal `json:"estimated_cost"`
	Source         SourceKind      `json:"source"`
}

// FundSnapshot is a point-in-time quote for a fund.
type FundSnapshot struct {
	Code      string    `json:"code"`
	Name      string    `json:"name"`
	Value     float64   `json:"current_value"`
	ChangePct float64   `json:"daily_change_pct"`
	Timestamp time.Time `json:"timestamp"`
}

// Holding is one position in a fund with its contribution to the day's move.
type Holding struct {
	Stock           string  `json:"stock"`
	Code            string  `json:"code"`
	WeightPct       float64 `json:"weight"`
	ChangePct       float64 `json:"change"`
	ContributionPct float64 `json:"contribution"`
}

// NewsItem is one piece of recent market news.
type NewsItem struct {
	Title       string    `json:"title"`
	Summary     string    `json:"summary"`
	Source      string    `json:"source"`
	PublishedAt time.Time `json:"time"`
}

// Favorite is a fund the user tracks. Orchestration reads these as input.
type Favorite struct {
	Code      string    `json:"code"`
	Name      string    `json:"name"`
	CreatedAt time.Time `json:"created_at"`
}
