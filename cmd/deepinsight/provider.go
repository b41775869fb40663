package main

import (
	"github.com/diffeners/deepinsight/pkg/marketdata"
	"github.com/diffeners/deepinsight/pkg/models"
)

// newDataProvider returns the market data source. Only the seeded offline
// provider ships today; a live feed plugs in here.
func newDataProvider() marketdata.Provider {
	return marketdata.NewMockProvider()
}

func rankHoldings(holdings []models.Holding) []models.Holding {
	return marketdata.RankContributions(holdings)
}
