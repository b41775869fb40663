package marketdata

import (
	"context"
	"fmt"
	"time"

	"github.com/diffeners/deepinsight/pkg/models"
)

// MockProvider serves deterministic demo data, for offline use and tests.
type MockProvider struct{}

// NewMockProvider returns a Provider backed by seeded demo funds.
func NewMockProvider() *MockProvider {
	return &MockProvider{}
}

type mockFund struct {
	name      string
	value     float64
	changePct float64
	holdings  []models.Holding
}

var mockFunds = map[string]mockFund{
	"005827": {
		name:      "E Fund Blue Chip Select",
		value:     2.8534,
		changePct: -0.45,
		holdings: []models.Holding{
			{Stock: "Kweichow Moutai", Code: "600519", WeightPct: 8.5, ChangePct: -1.2},
			{Stock: "Ping An Insurance", Code: "601318", WeightPct: 7.2, ChangePct: 0.8},
			{Stock: "China Merchants Bank", Code: "600036", WeightPct: 6.1, ChangePct: 1.5},
			{Stock: "Midea Group", Code: "000333", WeightPct: 5.8, ChangePct: -0.3},
			{Stock: "Gree Electric", Code: "000651", WeightPct: 5.2, ChangePct: -2.1},
		},
	},
	"513100": {
		name:      "NASDAQ-100 ETF",
		value:     3.2156,
		changePct: 1.23,
		holdings: []models.Holding{
			{Stock: "Microsoft", Code: "MSFT", WeightPct: 12.3, ChangePct: 2.1},
			{Stock: "Apple", Code: "AAPL", WeightPct: 11.8, ChangePct: 1.5},
			{Stock: "NVIDIA", Code: "NVDA", WeightPct: 10.2, ChangePct: 3.2},
			{Stock: "Amazon", Code: "AMZN", WeightPct: 9.5, ChangePct: 0.8},
			{Stock: "Tesla", Code: "TSLA", WeightPct: 8.1, ChangePct: -1.5},
		},
	},
}

// Snapshot returns the seeded quote for a fund. Unknown codes get a flat
// synthetic quote rather than an error, mirroring degraded-not-fatal handling.
func (m *MockProvider) Snapshot(_ context.Context, fundCode string) (models.FundSnapshot, error) {
	now := time.Now().UTC()
	fund, ok := mockFunds[fundCode]
	if !ok {
		return models.FundSnapshot{
			Code:      fundCode,
			Name:      fmt.Sprintf("Fund %s", fundCode),
			Value:     1.0,
			ChangePct: 0,
			Timestamp: now,
		}, nil
	}
	return models.FundSnapshot{
		Code:      fundCode,
		Name:      fund.name,
		Value:     fund.value,
		ChangePct: fund.changePct,
		Timestamp: now,
	}, nil
}

// Holdings returns the seeded top positions for a fund, empty when unknown.
func (m *MockProvider) Holdings(_ context.Context, fundCode string) ([]models.Holding, error) {
	fund, ok := mockFunds[fundCode]
	if !ok {
		return nil, nil
	}
	holdings := make([]models.Holding, len(fund.holdings))
	copy(holdings, fund.holdings)
	return holdings, nil
}

// News returns canned recent market headlines, at most limit items.
func (m *MockProvider) News(_ context.Context, limit int) ([]models.NewsItem, error) {
	now := time.Now().UTC()
	items := []models.NewsItem{
		{
			Title:       "Central bank injects liquidity in open market operations",
			Summary:     "The central bank conducted open market operations today, adding liquidity to steady market expectations.",
			Source:      "Xinhua",
			PublishedAt: now.Add(-2 * time.Hour),
		},
		{
			Title:       "Tech stocks rally as AI theme stays hot",
			Summary:     "Driven by global AI momentum, technology shares posted strong gains and the NASDAQ set a new high.",
			Source:      "Caijing",
			PublishedAt: now.Add(-4 * time.Hour),
		},
		{
			Title:       "Consumer sector under pressure on soft retail data",
			Summary:     "Latest retail sales figures came in below expectations, weighing on consumer stocks.",
			Source:      "Securities Times",
			PublishedAt: now.Add(-6 * time.Hour),
		},
		{
			Title:       "Property policy easing lifts real estate chain",
			Summary:     "Favorable policy signals sparked a rebound in real estate and related supply chain shares.",
			Source:      "Economic Observer",
			PublishedAt: now.Add(-8 * time.Hour),
		},
	}
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items, nil
}
