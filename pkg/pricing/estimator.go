// Package pricing converts token counts into monetary cost.
package pricing

import (
	"errors"

	"github.com/shopspring/decimal"

	"github.com/diffeners/deepinsight/pkg/config"
	"github.com/diffeners/deepinsight/pkg/models"
)

// ErrNegativeTokens is returned when a token count is negative.
var ErrNegativeTokens = errors.New("token counts must be non-negative")

// ErrInvalidHitRate is returned when a cache hit rate is outside [0, 1].
var ErrInvalidHitRate = errors.New("cache hit rate must be between 0 and 1")

// costScale is the number of decimal places monetary amounts are rounded to.
const costScale = 4

// Estimator computes spend from token usage using per-direction rates.
// All methods are pure; rates are fixed at construction.
type Estimator struct {
	inputRate  decimal.Decimal // currency per input token
	outputRate decimal.Decimal // currency per output token
}

// NewEstimator builds an Estimator from per-million-token pricing.
func NewEstimator(cfg config.PricingConfig) *Estimator {
	million := decimal.NewFromInt(1_000_000)
	return &Estimator{
		inputRate:  decimal.NewFromFloat(cfg.InputPerMillion).Div(million),
		outputRate: decimal.NewFromFloat(cfg.OutputPerMillion).Div(million),
	}
}

// EstimateCost returns the exact cost of a call given its real input/output
// token split, rounded to 4 decimal places.
func (e *Estimator) EstimateCost(inputTokens, outputTokens int) (decimal.Decimal, error) {
	if inputTokens < 0 || outputTokens < 0 {
		return decimal.Zero, ErrNegativeTokens
	}
	cost := e.inputRate.Mul(decimal.NewFromInt(int64(inputTokens))).
		Add(e.outputRate.Mul(decimal.NewFromInt(int64(outputTokens))))
	return cost.Round(costScale), nil
}

// EstimateSavings projects what a given cache hit rate saves on a token
// volume. Cached tokens are floor(tokens × hitRate). The cost uses a blended
// rate, (input + 2×output)/3, assuming output runs at twice input volume.
// This is a reporting approximation only; real billing always uses
// EstimateCost with the exact split.
func (e *Estimator) EstimateSavings(originalTokens int64, cacheHitRate float64) (models.Savings, error) {
	if originalTokens < 0 {
		return models.Savings{}, ErrNegativeTokens
	}
	if cacheHitRate < 0 || cacheHitRate > 1 {
		return models.Savings{}, ErrInvalidHitRate
	}

	cached := decimal.NewFromInt(originalTokens).
		Mul(decimal.NewFromFloat(cacheHitRate)).
		Floor().IntPart()

	blended := e.inputRate.
		Add(e.outputRate.Mul(decimal.NewFromInt(2))).
		Div(decimal.NewFromInt(3))

	return models.Savings{
		TotalTokens:  originalTokens,
		CachedTokens: cached,
		SavedCost:    blended.Mul(decimal.NewFromInt(cached)).Round(costScale),
		CacheHitRate: cacheHitRate,
	}, nil
}
