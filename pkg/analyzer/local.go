package analyzer

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/diffeners/deepinsight/pkg/models"
)

// Volatility bands for the local heuristic.
const (
	bandLow    = "low"
	bandNormal = "normal"
	bandHigh   = "high"

	lowVolatilityCutoff = 0.5
)

// localAnalysis is the deterministic zero-cost path: classify the move into a
// volatility band and synthesize a templated narrative. It cannot fail.
func (a *Analyzer) localAnalysis(req Request) *models.AnalysisResult {
	threshold := a.analysisCfg.VolatilityThreshold
	magnitude := math.Abs(req.ChangePct)

	var band, assessment string
	switch {
	case magnitude < lowVolatilityCutoff:
		band = bandLow
		assessment = "Market sentiment is calm and the fund is performing steadily."
	case magnitude < threshold:
		band = bandNormal
		assessment = "Volatility is within the normal range; no material change in the holding structure."
	default:
		band = bandHigh
		assessment = "The market is moving sharply; watch the fund's holdings for changes."
	}

	riskWarning := "No obvious risk signals."
	if magnitude >= threshold {
		riskWarning = "Elevated market risk; monitor closely."
	}

	recommendation := "hold"
	if req.ChangePct <= -1 {
		recommendation = "reassess"
	}

	var thinking strings.Builder
	fmt.Fprintf(&thinking, "## Local analysis\n\n")
	fmt.Fprintf(&thinking, "### 1. Observations\n")
	fmt.Fprintf(&thinking, "- Fund: %s (%s)\n", req.FundName, req.FundCode)
	fmt.Fprintf(&thinking, "- Daily change: %+.2f%%\n", req.ChangePct)
	fmt.Fprintf(&thinking, "- Volatility band: %s\n", band)

	if len(req.Holdings) > 0 {
		fmt.Fprintf(&thinking, "\n### 2. Holdings contribution\n")
		top := req.Holdings
		if len(top) > 3 {
			top = top[:3]
		}
		for _, h := range top {
			fmt.Fprintf(&thinking, "- %s: %+.3f%% contribution\n", h.Stock, h.ContributionPct)
		}
	}

	fmt.Fprintf(&thinking, "\n### 3. Conclusion\n%s\n", assessment)
	fmt.Fprintf(&thinking, "\n### 4. Recommendation\n%s\n", recommendation)

	return &models.AnalysisResult{
		ID:             uuid.NewString(),
		FundCode:       req.FundCode,
		FundName:       req.FundName,
		ChangePct:      req.ChangePct,
		AnalyzedAt:     time.Now().UTC(),
		VolatilityBand: band,
		Thinking:       thinking.String(),
		Assessment:     assessment,
		RiskWarning:    riskWarning,
		Recommendation: recommendation,
		TokensUsed:     0,
		EstimatedCost:  decimal.Zero,
		Source:         models.SourceLocalFallback,
	}
}
