package store

import (
	"context"
	"errors"
	"fmt"

	"github.com/diffeners/deepinsight/pkg/models"
)

// ErrDuplicateFavorite is returned when a fund is already tracked.
var ErrDuplicateFavorite = errors.New("favorite already exists")

// AddFavorite starts tracking a fund.
func (s *Store) AddFavorite(ctx context.Context, code, name string) error {
	res, err := s.db.ExecContext(ctx,
		`INSERT OR IGNORE INTO favorites (fund_code, fund_name, created_at) VALUES (?, ?, ?)`,
		code, name, s.now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("add favorite: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return fmt.Errorf("add favorite: %w", err)
	}
	if n == 0 {
		return ErrDuplicateFavorite
	}
	return nil
}

// RemoveFavorite stops tracking a fund. Returns false if it was not tracked.
func (s *Store) RemoveFavorite(ctx context.Context, code string) (bool, error) {
	res, err := s.db.ExecContext(ctx, `DELETE FROM favorites WHERE fund_code = ?`, code)
	if err != nil {
		return false, fmt.Errorf("remove favorite: %w", err)
	}
	n, err := res.RowsAffected()
	if err != nil {
		return false, fmt.Errorf("remove favorite: %w", err)
	}
	return n > 0, nil
}

// Favorites returns all tracked funds, most recently added first.
func (s *Store) Favorites(ctx context.Context) ([]models.Favorite, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT fund_code, fund_name, created_at FROM favorites ORDER BY created_at DESC`,
	)
	if err != nil {
		return nil, fmt.Errorf("list favorites: %w", err)
	}
	defer rows.Close()

	var favs []models.Favorite
	for rows.Next() {
		var f models.Favorite
		if err := rows.Scan(&f.Code, &f.Name, &f.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan favorite: %w", err)
		}
		favs = append(favs, f)
	}
	return favs, rows.Err()
}
