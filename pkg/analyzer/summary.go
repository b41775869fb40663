package analyzer

import (
	"strings"

	"github.com/diffeners/deepinsight/pkg/models"
)

// summaryKeywords mark narrative lines worth surfacing in a short digest.
var summaryKeywords = []string{"recommend", "risk", "assessment", "judgment", "reversal"}

// Summary condenses an analysis into a few display lines. Local results (a
// volatility band is only ever set by the local path) return their assessment
// directly; external narratives are scanned for their key lines, including
// when re-served from cache.
func Summary(result *models.AnalysisResult) string {
	if result.Source == models.SourceLocalFallback || result.VolatilityBand != "" {
		return result.Assessment
	}

	var picked []string
	for _, line := range strings.Split(result.Assessment, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			continue
		}
		lower := strings.ToLower(line)
		for _, kw := range summaryKeywords {
			if strings.Contains(lower, kw) {
				picked = append(picked, line)
				break
			}
		}
		if len(picked) == 3 {
			break
		}
	}

	if len(picked) == 0 {
		return "Analysis complete."
	}
	return strings.Join(picked, "\n")
}
