// Package cache decides when a cached analysis may be reused.
package cache

import (
	"context"
	"math"
	"time"

	"github.com/rs/zerolog"

	"github.com/diffeners/deepinsight/pkg/config"
	"github.com/diffeners/deepinsight/pkg/models"
)

// FreshnessChecker reports whether a fresh cache entry exists for a pair.
type FreshnessChecker interface {
	HasFresh(ctx context.Context, fundCode string, kind models.AnalysisKind, maxAge time.Duration) (bool, error)
}

// Policy decides whether a cache lookup is permitted for a given fund and
// analysis kind, based on current volatility and per-kind TTLs.
type Policy struct {
	threshold  float64
	ttls       map[models.AnalysisKind]time.Duration
	defaultTTL time.Duration
	store      FreshnessChecker
	log        zerolog.Logger
}

// NewPolicy builds a Policy from the cache config and volatility threshold.
func NewPolicy(cfg config.CacheConfig, volatilityThreshold float64, store FreshnessChecker, log zerolog.Logger) *Policy {
	ttls := make(map[models.AnalysisKind]time.Duration, len(cfg.TTL))
	for kind, ttl := range cfg.TTL {
		ttls[models.AnalysisKind(kind)] = ttl
	}
	defaultTTL := cfg.DefaultTTL
	if defaultTTL <= 0 {
		defaultTTL = time.Hour
	}
	return &Policy{
		threshold:  volatilityThreshold,
		ttls:       ttls,
		defaultTTL: defaultTTL,
		store:      store,
		log:        log,
	}
}

// TTLFor resolves the freshness window for an analysis kind. Unknown kinds
// fall back to the default TTL rather than erroring; the kind space is
// open-ended.
func (p *Policy) TTLFor(kind models.AnalysisKind) time.Duration {
	if ttl, ok := p.ttls[kind]; ok {
		return ttl
	}
	return p.defaultTTL
}

// ShouldUseCache reports whether a cached analysis may be served. A move
// beyond the volatility threshold disables caching unconditionally, whatever
// the entry's age: fast-moving funds must never be read stale. Otherwise the
// cache is usable iff a fresh entry exists within the kind's TTL, where an
// entry aged exactly the TTL still counts as fresh. A store failure is
// treated as no usable cache, never surfaced.
func (p *Policy) ShouldUseCache(ctx context.Context, fundCode string, kind models.AnalysisKind, volatilityPct float64) bool {
	if math.Abs(volatilityPct) > p.threshold {
		p.log.Debug().
			Str("fund", fundCode).
			Float64("volatility_pct", volatilityPct).
			Msg("volatility above threshold, bypassing cache")
		return false
	}

	fresh, err := p.store.HasFresh(ctx, fundCode, kind, p.TTLFor(kind))
	if err != nil {
		p.log.Warn().Err(err).Str("fund", fundCode).Msg("cache freshness check failed, treating as miss")
		return false
	}
	return fresh
}
