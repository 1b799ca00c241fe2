package monitor

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/wonny/vulture/internal/contracts"
)

// WatchlistEntry is one monitored instrument
type WatchlistEntry struct {
	Code    string    `json:"code"`
	Name    string    `json:"name"`
	Enabled bool      `json:"enabled"`
	AddedAt time.Time `json:"added_at"`
}

// ScoreRecord is one persisted M&A score observation
type ScoreRecord struct {
	Code     string    `json:"code"`
	Total    int       `json:"total_score"`
	Tier     string    `json:"tier"`
	ScoredAt time.Time `json:"scored_at"`
}

// Repository handles watchlist and score history persistence
type Repository struct {
	db *pgxpool.Pool
}

// NewRepository creates a new Repository instance
func NewRepository(db *pgxpool.Pool) *Repository {
	return &Repository{db: db}
}

// AddToWatchlist inserts or re-enables a watchlist entry
func (r *Repository) AddToWatchlist(ctx context.Context, code, name string) error {
	query := `
		INSERT INTO monitor.watchlist (stock_code, stock_name, enabled, added_at)
		VALUES ($1, $2, TRUE, NOW())
		ON CONFLICT (stock_code) DO UPDATE SET
			stock_name = EXCLUDED.stock_name,
			enabled = TRUE
	`
	if _, err := r.db.Exec(ctx, query, code, name); err != nil {
		return fmt.Errorf("insert watchlist entry: %w", err)
	}
	return nil
}

// RemoveFromWatchlist disables an entry; history rows stay
func (r *Repository) RemoveFromWatchlist(ctx context.Context, code string) error {
	tag, err := r.db.Exec(ctx, `UPDATE monitor.watchlist SET enabled = FALSE WHERE stock_code = $1`, code)
	if err != nil {
		return fmt.Errorf("disable watchlist entry: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("watchlist entry %s not found", code)
	}
	return nil
}

// GetWatchlist returns all enabled entries, oldest first
func (r *Repository) GetWatchlist(ctx context.Context) ([]WatchlistEntry, error) {
	query := `
		SELECT stock_code, stock_name, enabled, added_at
		FROM monitor.watchlist
		WHERE enabled = TRUE
		ORDER BY added_at
	`
	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("query watchlist: %w", err)
	}
	defer rows.Close()

	var entries []WatchlistEntry
	for rows.Next() {
		var e WatchlistEntry
		if err := rows.Scan(&e.Code, &e.Name, &e.Enabled, &e.AddedAt); err != nil {
			return nil, fmt.Errorf("scan watchlist entry: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// SaveScore appends one score observation
func (r *Repository) SaveScore(ctx context.Context, score *contracts.MAScore) error {
	query := `
		INSERT INTO monitor.score_history (stock_code, total_score, tier, scored_at)
		VALUES ($1, $2, $3, $4)
	`
	if _, err := r.db.Exec(ctx, query, score.Code, score.Total, string(score.Tier), score.ScoredAt); err != nil {
		return fmt.Errorf("insert score record: %w", err)
	}
	return nil
}

// LatestScore returns the most recent score for a code, or nil when the
// instrument has never been scored
func (r *Repository) LatestScore(ctx context.Context, code string) (*ScoreRecord, error) {
	query := `
		SELECT stock_code, total_score, tier, scored_at
		FROM monitor.score_history
		WHERE stock_code = $1
		ORDER BY scored_at DESC
		LIMIT 1
	`
	var rec ScoreRecord
	err := r.db.QueryRow(ctx, query, code).Scan(&rec.Code, &rec.Total, &rec.Tier, &rec.ScoredAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query latest score: %w", err)
	}
	return &rec, nil
}

// ScoreHistory returns recent observations for a code, newest first
func (r *Repository) ScoreHistory(ctx context.Context, code string, limit int) ([]ScoreRecord, error) {
	query := `
		SELECT stock_code, total_score, tier, scored_at
		FROM monitor.score_history
		WHERE stock_code = $1
		ORDER BY scored_at DESC
		LIMIT $2
	`
	rows, err := r.db.Query(ctx, query, code, limit)
	if err != nil {
		return nil, fmt.Errorf("query score history: %w", err)
	}
	defer rows.Close()

	var records []ScoreRecord
	for rows.Next() {
		var rec ScoreRecord
		if err := rows.Scan(&rec.Code, &rec.Total, &rec.Tier, &rec.ScoredAt); err != nil {
			return nil, fmt.Errorf("scan score record: %w", err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}
