// Package marketdata supplies fund quotes, holdings, and news.
package marketdata

import (
	"context"
	"math"
	"sort"

	"github.com/diffeners/deepinsight/pkg/models"
)

// Provider is the quote/holdings data source consumed by orchestration.
// Implementations may fail; callers treat failures as empty context
// (degraded, not fatal).
type Provider interface {
	// Snapshot returns the point-in-time quote for a fund.
	Snapshot(ctx context.Context, fundCode string) (models.FundSnapshot, error)
	// Holdings returns the fund's top positions, heaviest first.
	Holdings(ctx context.Context, fundCode string) ([]models.Holding, error)
	// News returns recent market news, at most limit items.
	News(ctx context.Context, limit int) ([]models.NewsItem, error)
}

// RankContributions computes each holding's contribution to the day's move
// (weight × change, both in percent) and orders the result by absolute
// contribution, largest first. The input slice is not modified.
func RankContributions(holdings []models.Holding) []models.Holding {
	ranked := make([]models.Holding, len(holdings))
	copy(ranked, holdings)

	for i := range ranked {
		contribution := (ranked[i].WeightPct / 100) * ranked[i].ChangePct
		ranked[i].ContributionPct = math.Round(contribution*1000) / 1000
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return math.Abs(ranked[i].ContributionPct) > math.Abs(ranked[j].ContributionPct)
	})
	return ranked
}
