package ports

import (
	"context"

	"github.com/google/uuid"
	"github.com/vncsmyrnk/curator/internal/core/domain"
)

type HistoryRepository interface {
	Save(ctx context.Context, record *domain.HistoryRecord) error
	GetByUser(ctx context.Context, userID uuid.UUID) ([]domain.HistoryRecord, error)
}

type WatchlistRepository interface {
	Exists(ctx context.Context, userID uuid.UUID, contentID string) (bool, error)
	Save(ctx context.Context, item *domain.WatchlistItem) error
	Delete(ctx context.Context, userID uuid.UUID, contentID string) error
	GetByUser(ctx context.Context, userID uuid.UUID) ([]domain.WatchlistItem, error)
}

// ContentClient is the synchronous boundary to the content service. Callers
// are expected to substitute fallback metadata when the lookup fails.
type ContentClient interface {
	GetByID(ctx context.Context, contentID string) (*domain.ContentDetails, error)
}

type ActivityInput struct {
	UserID     uuid.UUID
	ContentID  string
	Rating     *int
	ReviewText string
}

type ActivityService interface {
	RecordActivity(ctx context.Context, input ActivityInput) (*domain.HistoryRecord, error)
	GetHistory(ctx context.Context, userID uuid.UUID) ([]domain.HistoryRecord, error)
	AddToWatchlist(ctx context.Context, userID uuid.UUID, contentID string) (*domain.WatchlistItem, error)
	RemoveFromWatchlist(ctx context.Context, userID uuid.UUID, contentID string) error
	GetWatchlist(ctx context.Context, userID uuid.UUID) ([]domain.WatchlistItem, error)
}
