// Package budget gates external inference spend against a daily cost limit.
package budget

import (
	"context"
	"errors"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/diffeners/deepinsight/pkg/config"
)

// ErrBudgetExceeded is returned when today's spend has reached the limit.
var ErrBudgetExceeded = errors.New("daily cost budget exceeded")

// Ledger exposes the spend query the enforcer needs.
type Ledger interface {
	TodayCost(ctx context.Context) (int64, decimal.Decimal, error)
}

// Enforcer checks ledgered spend against the configured daily limit.
type Enforcer struct {
	enabled bool
	limit   decimal.Decimal
	ledger  Ledger
}

// New creates an Enforcer. A disabled or non-positive budget never blocks.
func New(cfg config.BudgetConfig, ledger Ledger) *Enforcer {
	return &Enforcer{
		enabled: cfg.Enabled && cfg.DailyCostLimit > 0,
		limit:   decimal.NewFromFloat(cfg.DailyCostLimit),
		ledger:  ledger,
	}
}

// Check returns ErrBudgetExceeded if today's ledgered spend has reached the
// daily limit.
func (e *Enforcer) Check(ctx context.Context) error {
	if !e.enabled {
		return nil
	}
	_, spent, err := e.ledger.TodayCost(ctx)
	if err != nil {
		return fmt.Errorf("budget check: %w", err)
	}
	if spent.GreaterThanOrEqual(e.limit) {
		return ErrBudgetExceeded
	}
	return nil
}

// Status returns today's spend and the remaining headroom. Remaining is zero
// when the budget is exhausted and the full limit when enforcement is off.
func (e *Enforcer) Status(ctx context.Context) (spent, remaining decimal.Decimal, err error) {
	_, spent, err = e.ledger.TodayCost(ctx)
	if err != nil {
		return decimal.Zero, decimal.Zero, fmt.Errorf("budget status: %w", err)
	}
	remaining = e.limit.Sub(spent)
	if remaining.IsNegative() {
		remaining = decimal.Zero
	}
	return spent, remaining, nil
}
