package domain

import (
	"time"

	"github.com/google/uuid"
)

// HistoryRecord is an append-only watch-history entry. Rating is optional;
// an empty ReviewText means no review was written.
type HistoryRecord struct {
	ID         uuid.UUID `json:"id"`
	UserID     uuid.UUID `json:"user_id"`
	ContentID  string    `json:"content_id"`
	Rating     *int      `json:"rating,omitempty"`
	ReviewText string    `json:"review_text,omitempty"`
	WatchedAt  time.Time `json:"watched_at"`
}

// WatchlistItem is unique per (user, content) pair.
type WatchlistItem struct {
	ID        uuid.UUID `json:"id"`
	UserID    uuid.UUID `json:"user_id"`
	ContentID string    `json:"content_id"`
	AddedAt   time.Time `json:"added_at"`
}

// ContentDetails is the metadata fetched from the content service to enrich
// activity events.
type ContentDetails struct {
	ID          string   `json:"id"`
	Title       string   `json:"title"`
	Description string   `json:"description"`
	Genres      []string `json:"genres"`
}
