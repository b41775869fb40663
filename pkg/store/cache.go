package store

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/diffeners/deepinsight/pkg/models"
)

// PutAnalysis upserts the cached payload for a (fund, kind) pair,
// overwriting any prior entry and resetting its timestamp.
func (s *Store) PutAnalysis(ctx context.Context, fundCode string, kind models.AnalysisKind, payload []byte) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO analysis_cache (fund_code, analysis_kind, payload, created_at)
		 VALUES (?, ?, ?, ?)`,
		fundCode, string(kind), payload, s.now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("cache put: %w", err)
	}
	return nil
}

// GetAnalysis returns the cached payload for a (fund, kind) pair if its age
// is within maxAge. Absence and expiry are reported as ok=false, not as an
// error; a non-nil error means the store itself failed. An entry aged
// exactly maxAge is still fresh.
func (s *Store) GetAnalysis(ctx context.Context, fundCode string, kind models.AnalysisKind, maxAge time.Duration) ([]byte, bool, error) {
	var payload []byte
	var createdAt time.Time

	err := s.db.QueryRowContext(ctx,
		`SELECT payload, created_at FROM analysis_cache WHERE fund_code = ? AND analysis_kind = ?`,
		fundCode, string(kind),
	).Scan(&payload, &createdAt)

	if errors.Is(err, sql.ErrNoRows) {
		s.misses.Add(1)
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("cache get: %w", err)
	}

	if s.now().Sub(createdAt) > maxAge {
		s.misses.Add(1)
		return nil, false, nil
	}

	s.hits.Add(1)
	return payload, true, nil
}

// HasFresh reports whether a cache entry exists for the pair with age within
// maxAge, without counting toward hit/miss statistics.
func (s *Store) HasFresh(ctx context.Context, fundCode string, kind models.AnalysisKind, maxAge time.Duration) (bool, error) {
	var createdAt time.Time
	err := s.db.QueryRowContext(ctx,
		`SELECT created_at FROM analysis_cache WHERE fund_code = ? AND analysis_kind = ?`,
		fundCode, string(kind),
	).Scan(&createdAt)

	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	if err != nil {
		return false, fmt.Errorf("cache freshness: %w", err)
	}
	return s.now().Sub(createdAt) <= maxAge, nil
}

// Sweep deletes entries strictly older than retention and returns the number
// removed. The cutoff is computed once up front so an entry written while the
// delete runs can never fall behind it. Idempotent.
func (s *Store) Sweep(ctx context.Context, retention time.Duration) (int64, error) {
	cutoff := s.now().UTC().Add(-retention)
	res, err := s.db.ExecContext(ctx,
		`DELETE FROM analysis_cache WHERE created_at < ?`, cutoff,
	)
	if err != nil {
		return 0, fmt.Errorf("cache sweep: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("cache sweep: %w", err)
	}
	return n, nil
}

// CacheStats returns entry count and process-lifetime hit/miss counters.
func (s *Store) CacheStats(ctx context.Context) (models.CacheStats, error) {
	var count int64
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM analysis_cache`).Scan(&count)
	if err != nil {
		return models.CacheStats{}, fmt.Errorf("cache stats: %w", err)
	}
	return models.CacheStats{
		Entries: count,
		Hits:    s.hits.Load(),
		Misses:  s.misses.Load(),
	}, nil
}
