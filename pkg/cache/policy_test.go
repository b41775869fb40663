package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"

	"github.com/diffeners/deepinsight/pkg/config"
	"github.com/diffeners/deepinsight/pkg/models"
)

type fakeChecker struct {
	fresh     bool
	err       error
	gotMaxAge time.Duration
	calls     int
}

func (f *fakeChecker) HasFresh(_ context.Context, _ string, _ models.AnalysisKind, maxAge time.Duration) (bool, error) {
	f.calls++
	f.gotMaxAge = maxAge
	return f.fresh, f.err
}

func newTestPolicy(store FreshnessChecker) *Policy {
	cfg := config.Default()
	return NewPolicy(cfg.Cache, cfg.Analysis.VolatilityThreshold, store, zerolog.Nop())
}

func TestVolatilityBypassesCache(t *testing.T) {
	checker := &fakeChecker{fresh: true}
	p := newTestPolicy(checker)
	ctx := context.Background()

	// A big move disables caching even with a fresh entry, in both directions.
	if p.ShouldUseCache(ctx, "005827", models.KindMovement, 2.1) {
		t.Error("expected cache bypass for +2.1%")
	}
	if p.ShouldUseCache(ctx, "005827", models.KindMovement, -2.1) {
		t.Error("expected cache bypass for -2.1%")
	}
	if checker.calls != 0 {
		t.Error("freshness must not be consulted above the threshold")
	}
}

func TestThresholdBoundaryAllowsCache(t *testing.T) {
	p := newTestPolicy(&fakeChecker{fresh: true})

	// Exactly at the threshold the hard cutoff does not apply.
	if !p.ShouldUseCache(context.Background(), "005827", models.KindMovement, 1.5) {
		t.Error("expected cache allowed at exactly the threshold")
	}
}

func TestFreshEntryAllowsCache(t *testing.T) {
	checker := &fakeChecker{fresh: true}
	p := newTestPolicy(checker)

	if !p.ShouldUseCache(context.Background(), "005827", models.KindMovement, 0.3) {
		t.Error("expected cache use for quiet signal with fresh entry")
	}
	if checker.gotMaxAge != time.Hour {
		t.Errorf("expected movement TTL 1h, got %v", checker.gotMaxAge)
	}
}

func TestStaleEntryDeniesCache(t *testing.T) {
	p := newTestPolicy(&fakeChecker{fresh: false})

	if p.ShouldUseCache(context.Background(), "005827", models.KindMovement, 0.3) {
		t.Error("expected no cache use without a fresh entry")
	}
}

func TestStoreErrorDeniesCache(t *testing.T) {
	p := newTestPolicy(&fakeChecker{err: errors.New("db locked")})

	if p.ShouldUseCache(context.Background(), "005827", models.KindMovement, 0.3) {
		t.Error("store failure must degrade to the compute path")
	}
}

func TestTTLFor(t *testing.T) {
	p := newTestPolicy(&fakeChecker{})

	cases := []struct {
		kind models.AnalysisKind
		want time.Duration
	}{
		{models.KindMovement, time.Hour},
		{models.KindHoldings, 4 * time.Hour},
		{models.KindNewsSummary, 2 * time.Hour},
		{models.AnalysisKind("sector_rotation"), time.Hour}, // unknown kinds use the default
	}
	for _, tc := range cases {
		if got := p.TTLFor(tc.kind); got != tc.want {
			t.Errorf("TTLFor(%s) = %v, want %v", tc.kind, got, tc.want)
		}
	}
}
