package services

import (
	"context"
	"errors"
	"io"
	"log/slog"
	"sync"

	"github.com/google/uuid"
	"github.com/vncsmyrnk/curator/internal/core/domain"
)

func testLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

type fakeCredsRepo struct {
	mu    sync.Mutex
	creds map[string]*domain.Credentials // by username
}

func newFakeCredsRepo() *fakeCredsRepo {
	return &fakeCredsRepo{creds: make(map[string]*domain.Credentials)}
}

func (r *fakeCredsRepo) GetByUsername(_ context.Context, username string) (*domain.Credentials, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.creds[username], nil
}

func (r *fakeCredsRepo) ExistsByUsername(_ context.Context, username string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.creds[username]
	return ok, nil
}

func (r *fakeCredsRepo) ExistsByEmail(_ context.Context, email string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, c := range r.creds {
		if c.Email == email {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeCredsRepo) Create(_ context.Context, creds *domain.Credentials) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.creds[creds.Username] = creds
	return nil
}

func (r *fakeCredsRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.creds)
}

type fakePublisher struct {
	mu     sync.Mutex
	events []publishedEvent
	err    error
}

type publishedEvent struct {
	routingKey string
	event      any
}

func (p *fakePublisher) Publish(_ context.Context, routingKey string, event any) error {
	if p.err != nil {
		return p.err
	}
	p.mu.Lock()
	defer p.mu.Unlock()
	p.events = append(p.events, publishedEvent{routingKey: routingKey, event: event})
	return nil
}

func (p *fakePublisher) published() []publishedEvent {
	p.mu.Lock()
	defer p.mu.Unlock()
	return append([]publishedEvent(nil), p.events...)
}

type fakeProfileClient struct {
	displayName string
	err         error
}

func (c *fakeProfileClient) GetDisplayName(_ context.Context, _ uuid.UUID) (string, error) {
	if c.err != nil {
		return "", c.err
	}
	return c.displayName, nil
}

type fakeProfileRepo struct {
	mu       sync.Mutex
	profiles map[uuid.UUID]*domain.Profile
}

func newFakeProfileRepo() *fakeProfileRepo {
	return &fakeProfileRepo{profiles: make(map[uuid.UUID]*domain.Profile)}
}

func (r *fakeProfileRepo) GetByID(_ context.Context, id uuid.UUID) (*domain.Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if p, ok := r.profiles[id]; ok {
		cp := *p
		return &cp, nil
	}
	return nil, nil
}

func (r *fakeProfileRepo) ExistsByID(_ context.Context, id uuid.UUID) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.profiles[id]
	return ok, nil
}

func (r *fakeProfileRepo) Create(_ context.Context, profile *domain.Profile) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.profiles[profile.ID]; ok {
		return domain.ErrProfileExists
	}
	cp := *profile
	r.profiles[profile.ID] = &cp
	return nil
}

func (r *fakeProfileRepo) Update(_ context.Context, profile *domain.Profile) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	cp := *profile
	r.profiles[profile.ID] = &cp
	return nil
}

func (r *fakeProfileRepo) GetAll(_ context.Context) ([]domain.Profile, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.Profile
	for _, p := range r.profiles {
		out = append(out, *p)
	}
	return out, nil
}

func (r *fakeProfileRepo) count() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.profiles)
}

type fakeHistoryRepo struct {
	mu      sync.Mutex
	records []domain.HistoryRecord
	err     error
}

func (r *fakeHistoryRepo) Save(_ context.Context, record *domain.HistoryRecord) error {
	if r.err != nil {
		return r.err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.records = append(r.records, *record)
	return nil
}

func (r *fakeHistoryRepo) GetByUser(_ context.Context, userID uuid.UUID) ([]domain.HistoryRecord, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.HistoryRecord
	for _, rec := range r.records {
		if rec.UserID == userID {
			out = append(out, rec)
		}
	}
	return out, nil
}

type fakeWatchlistRepo struct {
	mu    sync.Mutex
	items map[string]domain.WatchlistItem // key userID/contentID
}

func newFakeWatchlistRepo() *fakeWatchlistRepo {
	return &fakeWatchlistRepo{items: make(map[string]domain.WatchlistItem)}
}

func watchlistKey(userID uuid.UUID, contentID string) string {
	return userID.String() + "/" + contentID
}

func (r *fakeWatchlistRepo) Exists(_ context.Context, userID uuid.UUID, contentID string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	_, ok := r.items[watchlistKey(userID, contentID)]
	return ok, nil
}

func (r *fakeWatchlistRepo) Save(_ context.Context, item *domain.WatchlistItem) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	key := watchlistKey(item.UserID, item.ContentID)
	if _, ok := r.items[key]; ok {
		return domain.ErrAlreadyInWatchlist
	}
	r.items[key] = *item
	return nil
}

func (r *fakeWatchlistRepo) Delete(_ context.Context, userID uuid.UUID, contentID string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.items, watchlistKey(userID, contentID))
	return nil
}

func (r *fakeWatchlistRepo) GetByUser(_ context.Context, userID uuid.UUID) ([]domain.WatchlistItem, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var out []domain.WatchlistItem
	for _, item := range r.items {
		if item.UserID == userID {
			out = append(out, item)
		}
	}
	return out, nil
}

type fakeContentClient struct {
	details *domain.ContentDetails
	err     error
	calls   int
}

func (c *fakeContentClient) GetByID(_ context.Context, _ string) (*domain.ContentDetails, error) {
	c.calls++
	if c.err != nil {
		return nil, c.err
	}
	return c.details, nil
}

var errBoom = errors.New("boom")
