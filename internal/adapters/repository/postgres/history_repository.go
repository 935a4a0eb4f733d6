package postgres

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/google/uuid"
	"github.com/vncsmyrnk/curator/internal/core/domain"
	"github.com/vncsmyrnk/curator/internal/core/ports"
)

type historyRepository struct {
	db *sql.DB
}

func NewHistoryRepository(db *sql.DB) ports.HistoryRepository {
	return &historyRepository{db: db}
}

func (r *historyRepository) Save(ctx context.Context, record *domain.HistoryRecord) error {
	query := `
		INSERT INTO watch_history (id, user_id, content_id, rating, review_text, watched_at)
		VALUES ($1, $2, $3, $4, $5, $6)
	`
	_, err := r.db.ExecContext(ctx, query,
		record.ID, record.UserID, record.ContentID, record.Rating, record.ReviewText, record.WatchedAt)
	if err != nil {
		return fmt.Errorf("failed to save watch history: %w", err)
	}
	return nil
}

func (r *historyRepository) GetByUser(ctx context.Context, userID uuid.UUID) ([]domain.HistoryRecord, error) {
	query := `
		SELECT id, user_id, content_id, rating, review_text, watched_at
		FROM watch_history WHERE user_id = $1 ORDER BY watched_at DESC
	`
	rows, err := r.db.QueryContext(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch watch history: %w", err)
	}
	defer rows.Close()

	var records []domain.HistoryRecord
	for rows.Next() {
		var rec domain.HistoryRecord
		if err := rows.Scan(&rec.ID, &rec.UserID, &rec.ContentID, &rec.Rating, &rec.ReviewText, &rec.WatchedAt); err != nil {
			return nil, fmt.Errorf("failed to scan watch history: %w", err)
		}
		records = append(records, rec)
	}
	return records, rows.Err()
}
