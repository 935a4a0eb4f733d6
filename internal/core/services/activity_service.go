package services

import (
	"context"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/vncsmyrnk/curator/internal/core/domain"
	"github.com/vncsmyrnk/curator/internal/core/ports"
)

const defaultPublishTimeout = 5 * time.Second

type activityService struct {
	historyRepo    ports.HistoryRepository
	watchlistRepo  ports.WatchlistRepository
	contentClient  ports.ContentClient
	publisher      ports.EventPublisher
	routingKey     string
	publishTimeout time.Duration
	log            *slog.Logger
}

func NewActivityService(
	historyRepo ports.HistoryRepository,
	watchlistRepo ports.WatchlistRepository,
	contentClient ports.ContentClient,
	publisher ports.EventPublisher,
	routingKey string,
	log *slog.Logger,
) ports.ActivityService {
	return &activityService{
		historyRepo:    historyRepo,
		watchlistRepo:  watchlistRepo,
		contentClient:  contentClient,
		publisher:      publisher,
		routingKey:     routingKey,
		publishTimeout: defaultPublishTimeout,
		log:            log,
	}
}

// RecordActivity persists the history record first; enrichment and publish
// run only after the write committed and can never fail the request.
func (s *activityService) RecordActivity(ctx context.Context, input ports.ActivityInput) (*domain.HistoryRecord, error) {
	record := &domain.HistoryRecord{
		ID:         uuid.New(),
		UserID:     input.UserID,
		ContentID:  input.ContentID,
		Rating:     input.Rating,
		ReviewText: input.ReviewText,
		WatchedAt:  time.Now(),
	}
	if err := s.historyRepo.Save(ctx, record); err != nil {
		s.log.Error("failed to save watch history", "user_id", input.UserID, "content_id", input.ContentID, "error", err)
		return nil, fmt.Errorf("%w: %v", domain.ErrInternal, err)
	}
	s.log.Info("saved watch history", "record_id", record.ID, "user_id", record.UserID)

	s.publishActivityEvent(ctx, record)
	return record, nil
}

func (s *activityService) GetHistory(ctx context.Context, userID uuid.UUID) ([]domain.HistoryRecord, error) {
	records, err := s.historyRepo.GetByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch watch history: %w", err)
	}
	return records, nil
}

func (s *activityService) AddToWatchlist(ctx context.Context, userID uuid.UUID, contentID string) (*domain.WatchlistItem, error) {
	exists, err := s.watchlistRepo.Exists(ctx, userID, contentID)
	if err != nil {
		return nil, fmt.Errorf("failed to check watchlist: %w", err)
	}
	if exists {
		return nil, domain.ErrAlreadyInWatchlist
	}

	item := &domain.WatchlistItem{
		ID:        uuid.New(),
		UserID:    userID,
		ContentID: contentID,
		AddedAt:   time.Now(),
	}
	if err := s.watchlistRepo.Save(ctx, item); err != nil {
		return nil, fmt.Errorf("failed to add to watchlist: %w", err)
	}
	s.log.Info("added to watchlist", "user_id", userID, "content_id", contentID)

	s.publishWatchlistEvent(ctx, userID, contentID, "added")
	return item, nil
}

func (s *activityService) RemoveFromWatchlist(ctx context.Context, userID uuid.UUID, contentID string) error {
	exists, err := s.watchlistRepo.Exists(ctx, userID, contentID)
	if err != nil {
		return fmt.Errorf("failed to check watchlist: %w", err)
	}
	if !exists {
		return domain.ErrNotInWatchlist
	}

	if err := s.watchlistRepo.Delete(ctx, userID, contentID); err != nil {
		return fmt.Errorf("failed to remove from watchlist: %w", err)
	}
	s.log.Info("removed from watchlist", "user_id", userID, "content_id", contentID)

	s.publishWatchlistEvent(ctx, userID, contentID, "removed")
	return nil
}

func (s *activityService) GetWatchlist(ctx context.Context, userID uuid.UUID) ([]domain.WatchlistItem, error) {
	items, err := s.watchlistRepo.GetByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to fetch watchlist: %w", err)
	}
	return items, nil
}

// publishActivityEvent is best effort: content lookup failures fall back to
// placeholder metadata and publish failures are logged and swallowed.
func (s *activityService) publishActivityEvent(ctx context.Context, record *domain.HistoryRecord) {
	ctx, cancel := s.publishContext(ctx)
	defer cancel()

	details := s.fetchContentDetails(ctx, record.ContentID)

	event := domain.ActivityEvent{
		Type:         classifyActivity(record),
		UserID:       record.UserID,
		ContentID:    record.ContentID,
		ContentType:  "movie",
		ContentTitle: details.Title,
		Rating:       record.Rating,
		ReviewText:   record.ReviewText,
		Timestamp:    time.Now().UTC().Format(time.RFC3339),
	}
	event.SynthesizedDescription = synthesizeDescription(event, details)

	if err := s.publisher.Publish(ctx, s.routingKey, event); err != nil {
		s.log.Error("failed to publish activity event", "user_id", record.UserID, "type", event.Type, "error", err)
		return
	}
	s.log.Info("published activity event", "user_id", record.UserID, "type", event.Type, "content_title", details.Title)
}

func (s *activityService) publishWatchlistEvent(ctx context.Context, userID uuid.UUID, contentID, action string) {
	ctx, cancel := s.publishContext(ctx)
	defer cancel()

	details := s.fetchContentDetails(ctx, contentID)

	event := domain.ActivityEvent{
		Type:         "watchlist_" + action,
		UserID:       userID,
		ContentID:    contentID,
		ContentType:  "movie",
		ContentTitle: details.Title,
		Action:       action,
		Timestamp:    time.Now().UTC().Format(time.RFC3339),
	}
	event.SynthesizedDescription = synthesizeDescription(event, details)

	if err := s.publisher.Publish(ctx, s.routingKey, event); err != nil {
		s.log.Error("failed to publish watchlist event", "user_id", userID, "action", action, "error", err)
		return
	}
	s.log.Info("published watchlist event", "user_id", userID, "action", action, "content_title", details.Title)
}

// publishContext detaches from the caller's cancellation: a client
// disconnecting mid-request must not cancel an enrichment already underway.
// The timeout bounds how long a slow bus or content service can hold us.
func (s *activityService) publishContext(ctx context.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(context.WithoutCancel(ctx), s.publishTimeout)
}

func (s *activityService) fetchContentDetails(ctx context.Context, contentID string) *domain.ContentDetails {
	details, err := s.contentClient.GetByID(ctx, contentID)
	if err != nil || details == nil || details.Title == "" {
		s.log.Warn("content lookup failed, using fallback", "content_id", contentID, "error", err)
		return fallbackContentDetails(contentID)
	}
	return details
}

func fallbackContentDetails(contentID string) *domain.ContentDetails {
	return &domain.ContentDetails{
		ID:          contentID,
		Title:       "Unknown Movie",
		Description: "Content details not available",
		Genres:      []string{"Unknown"},
	}
}

// classifyActivity applies the fixed precedence: review beats rating beats
// plain view.
func classifyActivity(record *domain.HistoryRecord) string {
	switch {
	case strings.TrimSpace(record.ReviewText) != "":
		return domain.EventReviewAdded
	case record.Rating != nil:
		return domain.EventRatingAdded
	default:
		return domain.EventContentViewed
	}
}
