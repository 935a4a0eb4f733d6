package services

import (
	"fmt"
	"strings"

	"github.com/vncsmyrnk/curator/internal/core/domain"
)

var (
	positiveWords = []string{"love", "amazing", "excellent", "awesome"}
	negativeWords = []string{"hate", "terrible", "boring", "disappointing"}
)

// synthesizeDescription renders a deterministic natural-language summary of
// an activity event using fixed per-type templates. It is the payload the
// downstream recommendation consumer reads, so the structure matters more
// than the prose.
func synthesizeDescription(event domain.ActivityEvent, details *domain.ContentDetails) string {
	actor := fmt.Sprintf("User %s", event.UserID)

	switch event.Type {
	case domain.EventReviewAdded:
		return fmt.Sprintf("%s wrote a %s review for '%s' (id %s). %s Review: %q.%s %s",
			actor, event.ContentType, details.Title, event.ContentID,
			ratingNote(event.Rating), event.ReviewText,
			sentimentNote(event.ReviewText), details.Description)

	case domain.EventRatingAdded:
		return fmt.Sprintf("%s rated '%s' (id %s) %d out of 10. %s %s",
			actor, details.Title, event.ContentID, *event.Rating,
			reviewNote(event.ReviewText), details.Description)

	case domain.EventWatchlistAdded, domain.EventWatchlistRemoved:
		preposition := "to"
		if event.Action == "removed" {
			preposition = "from"
		}
		return fmt.Sprintf("%s %s '%s' (id %s) %s watchlist. %s %s indicates interest in %s content.",
			actor, event.Action, details.Title, event.ContentID, preposition,
			details.Description, ratingNote(event.Rating), strings.Join(details.Genres, ", "))

	default: // content_viewed
		return fmt.Sprintf("%s viewed '%s' (id %s). %s %s",
			actor, details.Title, event.ContentID, details.Description, ratingNote(event.Rating))
	}
}

func ratingNote(rating *int) string {
	if rating == nil {
		return "No rating given."
	}
	return fmt.Sprintf("Rating: %d/10.", *rating)
}

func reviewNote(reviewText string) string {
	if strings.TrimSpace(reviewText) == "" {
		return "No review provided."
	}
	return fmt.Sprintf("Review: %q.", reviewText)
}

// sentimentNote tags the review with a coarse keyword-based sentiment hint.
// An empty string means no tag.
func sentimentNote(reviewText string) string {
	lower := strings.ToLower(reviewText)
	for _, w := range positiveWords {
		if strings.Contains(lower, w) {
			return " (positive sentiment detected)"
		}
	}
	for _, w := range negativeWords {
		if strings.Contains(lower, w) {
			return " (negative sentiment detected)"
		}
	}
	return ""
}
