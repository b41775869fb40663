package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// CostEntry is one append-only row in the cost ledger.
type CostEntry struct {
	ID            int64           `json:"id"`
	Date          string          `json:"date"`
	TokensUsed    int64           `json:"tokens_used"`
	EstimatedCost decimal.Decimal `json:"estimated_cost"`
	OperationType string          `json:"operation_type"`
	CreatedAt     time.Time       `json:"created_at"`
}

// DailyCost aggregates ledger rows for one calendar day.
type DailyCost struct {
	Date   string          `json:"date"`
	Tokens int64           `json:"tokens"`
	Cost   decimal.Decimal `json:"cost"`
}

// Savings estimates what a given cache hit rate saves.
type Savings struct {
	TotalTokens  int64           `json:"total_tokens"`
	CachedTokens int64           `json:"cached_tokens"`
	SavedCost    decimal.Decimal `json:"saved_cost"`
	CacheHitRate float64         `json:"cache_hit_rate"`
}
