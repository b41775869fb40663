package marketdata

import (
	"context"
	"math"
	"testing"

	"github.com/diffeners/deepinsight/pkg/models"
)

func TestRankContributions(t *testing.T) {
	holdings := []models.Holding{
		{Stock: "Kweichow Moutai", WeightPct: 8.5, ChangePct: -1.2},
		{Stock: "Ping An Insurance", WeightPct: 7.2, ChangePct: 0.8},
		{Stock: "Gree Electric", WeightPct: 5.2, ChangePct: -2.1},
	}

	ranked := RankContributions(holdings)

	// Gree: 5.2%×-2.1 = -0.109 beats Moutai: 8.5%×-1.2 = -0.102 on magnitude.
	if ranked[0].Stock != "Gree Electric" {
		t.Errorf("expected Gree first, got %s", ranked[0].Stock)
	}
	if ranked[1].Stock != "Kweichow Moutai" {
		t.Errorf("expected Moutai second, got %s", ranked[1].Stock)
	}

	if math.Abs(ranked[0].ContributionPct-(-0.109)) > 1e-9 {
		t.Errorf("expected contribution -0.109, got %v", ranked[0].ContributionPct)
	}

	// Input must not be reordered.
	if holdings[0].Stock != "Kweichow Moutai" {
		t.Error("input slice was mutated")
	}
}

func TestRankContributionsEmpty(t *testing.T) {
	if got := RankContributions(nil); len(got) != 0 {
		t.Errorf("expected empty result, got %v", got)
	}
}

func TestMockSnapshot(t *testing.T) {
	p := NewMockProvider()
	ctx := context.Background()

	snap, err := p.Snapshot(ctx, "005827")
	if err != nil {
		t.Fatal(err)
	}
	if snap.Name != "E Fund Blue Chip Select" {
		t.Errorf("unexpected name: %s", snap.Name)
	}
	if snap.ChangePct != -0.45 {
		t.Errorf("unexpected change: %v", snap.ChangePct)
	}

	// Unknown codes degrade to a synthetic quote, not an error.
	snap, err = p.Snapshot(ctx, "999999")
	if err != nil {
		t.Fatal(err)
	}
	if snap.Code != "999999" || snap.ChangePct != 0 {
		t.Errorf("unexpected fallback snapshot: %+v", snap)
	}
}

func TestMockHoldings(t *testing.T) {
	p := NewMockProvider()

	holdings, err := p.Holdings(context.Background(), "513100")
	if err != nil {
		t.Fatal(err)
	}
	if len(holdings) != 5 {
		t.Fatalf("expected 5 holdings, got %d", len(holdings))
	}
	if holdings[0].Stock != "Microsoft" {
		t.Errorf("expected heaviest holding first, got %s", holdings[0].Stock)
	}

	holdings, err = p.Holdings(context.Background(), "999999")
	if err != nil {
		t.Fatal(err)
	}
	if len(holdings) != 0 {
		t.Errorf("expected no holdings for unknown fund, got %d", len(holdings))
	}
}

func TestMockNewsLimit(t *testing.T) {
	p := NewMockProvider()

	news, err := p.News(context.Background(), 3)
	if err != nil {
		t.Fatal(err)
	}
	if len(news) != 3 {
		t.Errorf("expected 3 items, got %d", len(news))
	}
}
