package models

import "time"

// CacheEntry is one live cached analysis. At most one entry exists per
// (fund code, analysis kind) pair; writes overwrite.
type CacheEntry struct {
	FundCode  string       `json:"fund_code"`
	Kind      AnalysisKind `json:"analysis_kind"`
	Payload   []byte       `json:"payload"`
	CreatedAt time.Time    `json:"created_at"`
}

// CacheStats reports cache contents and hit/miss counters.
type CacheStats struct {
	Entries int64 `json:"entries"`
	Hits    int64 `json:"hits"`
	Misses  int64 `json:"misses"`
}
