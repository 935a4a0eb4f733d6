package domain

import "github.com/google/uuid"

// Activity event types, classified by fixed precedence: a non-empty review
// wins over a rating, a rating wins over a plain view.
const (
	EventReviewAdded      = "review_added"
	EventRatingAdded      = "rating_added"
	EventWatchlistAdded   = "watchlist_added"
	EventWatchlistRemoved = "watchlist_removed"
	EventContentViewed    = "content_viewed"
)

// UserRegisteredEvent is published once per successful registration and may
// be delivered to consumers more than once.
type UserRegisteredEvent struct {
	UserID   uuid.UUID `json:"user_id"`
	Username string    `json:"username"`
	Email    string    `json:"email"`
}

// ActivityEvent is the enriched user-activity envelope published after the
// primary write committed. It is never published before, or despite failure
// of, the underlying write.
type ActivityEvent struct {
	Type                   string    `json:"type"`
	UserID                 uuid.UUID `json:"user_id"`
	ContentID              string    `json:"content_id"`
	ContentType            string    `json:"content_type"`
	ContentTitle           string    `json:"content_title"`
	Rating                 *int      `json:"rating,omitempty"`
	ReviewText             string    `json:"review_text,omitempty"`
	Action                 string    `json:"action,omitempty"`
	SynthesizedDescription string    `json:"synthesized_description"`
	Timestamp              string    `json:"timestamp"`
}
