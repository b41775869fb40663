package budget

import (
	"context"
	"errors"
	"path/filepath"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/diffeners/deepinsight/pkg/config"
	"github.com/diffeners/deepinsight/pkg/store"
)

func setup(t *testing.T) (*store.Store, context.Context) {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "budget_test.db")
	st, err := store.New(dbPath)
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { _ = st.Close() })
	return st, context.Background()
}

func TestCheckUnderBudget(t *testing.T) {
	st, ctx := setup(t)

	if err := st.RecordCost(ctx, 800, decimal.RequireFromString("0.0009"), "deepseek_analysis"); err != nil {
		t.Fatal(err)
	}

	e := New(config.BudgetConfig{Enabled: true, DailyCostLimit: 1.0}, st)
	if err := e.Check(ctx); err != nil {
		t.Errorf("expected no error, got %v", err)
	}
}

func TestCheckExceeded(t *testing.T) {
	st, ctx := setup(t)

	if err := st.RecordCost(ctx, 500000, decimal.RequireFromString("1.25"), "deepseek_analysis"); err != nil {
		t.Fatal(err)
	}

	e := New(config.BudgetConfig{Enabled: true, DailyCostLimit: 1.0}, st)
	if err := e.Check(ctx); !errors.Is(err, ErrBudgetExceeded) {
		t.Errorf("expected ErrBudgetExceeded, got %v", err)
	}
}

func TestCheckDisabledNeverBlocks(t *testing.T) {
	st, ctx := setup(t)

	if err := st.RecordCost(ctx, 500000, decimal.RequireFromString("99.99"), "deepseek_analysis"); err != nil {
		t.Fatal(err)
	}

	e := New(config.BudgetConfig{Enabled: false, DailyCostLimit: 1.0}, st)
	if err := e.Check(ctx); err != nil {
		t.Errorf("disabled budget must not block, got %v", err)
	}
}

func TestStatus(t *testing.T) {
	st, ctx := setup(t)

	if err := st.RecordCost(ctx, 800, decimal.RequireFromString("0.40"), "deepseek_analysis"); err != nil {
		t.Fatal(err)
	}

	e := New(config.BudgetConfig{Enabled: true, DailyCostLimit: 1.0}, st)
	spent, remaining, err := e.Status(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if !spent.Equal(decimal.RequireFromString("0.40")) {
		t.Errorf("expected spent 0.40, got %s", spent)
	}
	if !remaining.Equal(decimal.RequireFromString("0.60")) {
		t.Errorf("expected remaining 0.60, got %s", remaining)
	}
}

func TestStatusClampsRemaining(t *testing.T) {
	st, ctx := setup(t)

	if err := st.RecordCost(ctx, 500000, decimal.RequireFromString("2.00"), "deepseek_analysis"); err != nil {
		t.Fatal(err)
	}

	e := New(config.BudgetConfig{Enabled: true, DailyCostLimit: 1.0}, st)
	_, remaining, err := e.Status(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if !remaining.IsZero() {
		t.Errorf("expected remaining clamped to zero, got %s", remaining)
	}
}
