package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/vncsmyrnk/curator/internal/core/domain"
	"github.com/vncsmyrnk/curator/internal/core/ports"
)

type watchlistRepository struct {
	db *sql.DB
}

func NewWatchlistRepository(db *sql.DB) ports.WatchlistRepository {
	return &watchlistRepository{db: db}
}

func (r *watchlistRepository) Exists(ctx context.Context, userID uuid.UUID, contentID string) (bool, error) {
	query := `SELECT 1 FROM watchlist_items WHERE user_id = $1 AND content_id = $2 LIMIT 1`
	var exists int
	err := r.db.QueryRowContext(ctx, query, userID, contentID).Scan(&exists)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("failed to check watchlist: %w", err)
	}
	return true, nil
}

func (r *watchlistRepository) Save(ctx context.Context, item *domain.WatchlistItem) error {
	query := `
		INSERT INTO watchlist_items (id, user_id, content_id, added_at)
		VALUES ($1, $2, $3, $4)
	`
	_, err := r.db.ExecContext(ctx, query, item.ID, item.UserID, item.ContentID, item.AddedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrAlreadyInWatchlist
		}
		return fmt.Errorf("failed to save watchlist item: %w", err)
	}
	return nil
}

func (r *watchlistRepository) Delete(ctx context.Context, userID uuid.UUID, contentID string) error {
	query := `DELETE FROM watchlist_items WHERE user_id = $1 AND content_id = $2`
	_, err := r.db.ExecContext(ctx, query, userID, contentID)
	if err != nil {
		return fmt.Errorf("failed to delete watchlist item: %w", err)
	}
	return nil
}

func (r *watchlistRepository) GetByUser(ctx context.Context, userID uuid.UUID) ([]domain.WatchlistItem, error) {
	query := `
		SELECT id, user_id, content_id, added_at
		FROM watchlist_items WHERE user_id = $1 ORDER BY added_at DESC
	`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch watchlist: %w", err)
	}
	defer rows.Close()

	var items []domain.WatchlistItem
	for rows.Next() {
		var item domain.WatchlistItem
		if err := rows.Scan(&item.ID, &item.UserID, &item.ContentID, &item.AddedAt); err != nil {
			return nil, fmt.Errorf("failed to scan watchlist item: %w", err)
		}
		items = append(items, item)
	}
	return items, rows.Err()
}
