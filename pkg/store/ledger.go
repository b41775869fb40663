package store

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/diffeners/deepinsight/pkg/models"
)

const ledgerDateFormat = "2006-01-02"

// RecordCost appends one ledger row tagged with the current calendar day.
// Rows are never updated or deleted; aggregation happens on read.
func (s *Store) RecordCost(ctx context.Context, tokensUsed int64, cost decimal.Decimal, operationType string) error {
	now := s.now().UTC()
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO cost_ledger (date, tokens_used, estimated_cost, operation_type, created_at)
		 VALUES (?, ?, ?, ?, ?)`,
		now.Format(ledgerDateFormat), tokensUsed, cost.String(), operationType, now,
	)
	if err != nil {
		return fmt.Errorf("record cost: %w", err)
	}
	return nil
}

// TodayCost sums tokens and spend for the current calendar day. An empty
// ledger yields (0, 0), not an error.
func (s *Store) TodayCost(ctx context.Context) (int64, decimal.Decimal, error) {
	today := s.now().UTC().Format(ledgerDateFormat)

	rows, err := s.db.QueryContext(ctx,
		`SELECT tokens_used, estimated_cost FROM cost_ledger WHERE date = ?`, today,
	)
	if err != nil {
		return 0, decimal.Zero, fmt.Errorf("today cost: %w", err)
	}
	defer rows.Close()

	var tokens int64
	cost := decimal.Zero
	for rows.Next() {
		var t int64
		var c string
		if err := rows.Scan(&t, &c); err != nil {
			return 0, decimal.Zero, fmt.Errorf("scan cost row: %w", err)
		}
		d, err := decimal.NewFromString(c)
		if err != nil {
			return 0, decimal.Zero, fmt.Errorf("parse cost %q: %w", c, err)
		}
		tokens += t
		cost = cost.Add(d)
	}
	return tokens, cost, rows.Err()
}

// CostHistory aggregates ledger rows by day over the trailing window, most
// recent day first. Days with no activity are omitted.
func (s *Store) CostHistory(ctx context.Context, days int) ([]models.DailyCost, error) {
	start := s.now().UTC().AddDate(0, 0, -days).Format(ledgerDateFormat)

	rows, err := s.db.QueryContext(ctx,
		`SELECT date, tokens_used, estimated_cost FROM cost_ledger WHERE date >= ? ORDER BY date DESC`,
		start,
	)
	if err != nil {
		return nil, fmt.Errorf("cost history: %w", err)
	}
	defer rows.Close()

	var history []models.DailyCost
	for rows.Next() {
		var date, costStr string
		var tokens int64
		if err := rows.Scan(&date, &tokens, &costStr); err != nil {
			return nil, fmt.Errorf("scan history row: %w", err)
		}
		cost, err := decimal.NewFromString(costStr)
		if err != nil {
			return nil, fmt.Errorf("parse cost %q: %w", costStr, err)
		}

		if n := len(history); n > 0 && history[n-1].Date == date {
			history[n-1].Tokens += tokens
			history[n-1].Cost = history[n-1].Cost.Add(cost)
			continue
		}
		history = append(history, models.DailyCost{Date: date, Tokens: tokens, Cost: cost})
	}
	return history, rows.Err()
}
