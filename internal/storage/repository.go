package storage

import (
	"context"
	"database/sql"
	"errors"
	"sort"

	pq "github.com/lib/pq"
)

const versionKey = "version"

// WatchlistRepository persists the category → symbols watchlist.
type WatchlistRepository interface {
	Load(ctx context.Context) (map[string][]string, error)
	Save(ctx context.Context, category string, symbols []string) error
	Version(ctx context.Context) (string, error)
	ReplaceAll(ctx context.Context, version string, lists map[string][]string) error
}

type watchlistRepository struct {
	db *sql.DB
}

func NewWatchlistRepository(db *sql.DB) WatchlistRepository {
	return &watchlistRepository{db: db}
}

// Load returns every stored category with its symbols in stored order.
func (r *watchlistRepository) Load(ctx context.Context) (map[string][]string, error) {
	rows, err := r.db.QueryContext(ctx, `SELECT category, symbols FROM watchlist ORDER BY category`)
	if err != nil {
		return nil, err
	}
	defer func() { _ = rows.Close() }()

	out := make(map[string][]string)
	for rows.Next() {
		var category string
		var symbols []string
		if err := rows.Scan(&category, pq.Array(&symbols)); err != nil {
			return nil, err
		}
		if symbols == nil {
			symbols = []string{}
		}
		out[category] = symbols
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// Save upserts a single category.
func (r *watchlistRepository) Save(ctx context.Context, category string, symbols []string) error {
	if symbols == nil {
		symbols = []string{}
	}
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO watchlist (category, symbols, updated_at)
		VALUES ($1, $2, NOW())
		ON CONFLICT (category)
		DO UPDATE SET symbols = EXCLUDED.symbols,
					  updated_at = NOW()
	`, category, pq.Array(symbols))
	return err
}

// Version returns the stored catalog version, or "" when none was recorded.
func (r *watchlistRepository) Version(ctx context.Context) (string, error) {
	var v string
	err := r.db.QueryRowContext(ctx, `SELECT value FROM watchlist_meta WHERE key = $1`, versionKey).Scan(&v)
	if errors.Is(err, sql.ErrNoRows) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return v, nil
}

// ReplaceAll swaps the whole watchlist and records version in one transaction.
func (r *watchlistRepository) ReplaceAll(ctx context.Context, version string, lists map[string][]string) error {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM watchlist`); err != nil {
		_ = tx.Rollback()
		return err
	}

	categories := make([]string, 0, len(lists))
	for c := range lists {
		categories = append(categories, c)
	}
	sort.Strings(categories)

	for _, c := range categories {
		symbols := lists[c]
		if symbols == nil {
			symbols = []string{}
		}
		if _, err := tx.ExecContext(ctx,
			`INSERT INTO watchlist (category, symbols, updated_at) VALUES ($1, $2, NOW())`,
			c, pq.Array(symbols),
		); err != nil {
			_ = tx.Rollback()
			return err
		}
	}

	if _, err := tx.ExecContext(ctx, `
		INSERT INTO watchlist_meta (key, value)
		VALUES ($1, $2)
		ON CONFLICT (key) DO UPDATE SET value = EXCLUDED.value
	`, versionKey, version); err != nil {
		_ = tx.Rollback()
		return err
	}

	return tx.Commit()
}
