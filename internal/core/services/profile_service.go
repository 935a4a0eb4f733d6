package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/vncsmyrnk/curator/internal/core/domain"
	"github.com/vncsmyrnk/curator/internal/core/ports"
)

type profileService struct {
	repo ports.ProfileRepository
	log  *slog.Logger
}

func NewProfileService(repo ports.ProfileRepository, log *slog.Logger) ports.ProfileService {
	return &profileService{
		repo: repo,
		log:  log,
	}
}

// CreateFromEvent provisions a profile for a registration event. Delivery is
// at-least-once, so the operation is idempotent: an existing profile means a
// duplicate delivery and is ignored. The storage-layer primary key backs the
// existence check against concurrent redeliveries.
func (s *profileService) CreateFromEvent(ctx context.Context, event domain.UserRegisteredEvent) error {
	if event.UserID == uuid.Nil || event.Username == "" {
		s.log.Warn("discarding malformed registration event", "user_id", event.UserID)
		return nil
	}

	exists, err := s.repo.ExistsByID(ctx, event.UserID)
	if err != nil {
		return fmt.Errorf("failed to check profile existence: %w", err)
	}
	if exists {
		s.log.Warn("profile already exists, ignoring event", "user_id", event.UserID)
		return nil
	}

	profile := &domain.Profile{
		ID:            event.UserID,
		Username:      event.Username,
		Email:         event.Email,
		DisplayName:   event.Username,
		Subscriptions: []string{},
	}
	if err := s.repo.Create(ctx, profile); err != nil {
		// A concurrent consumer for the same user won the race; the profile
		// exists, which is all this operation promises.
		if errors.Is(err, domain.ErrProfileExists) {
			s.log.Warn("profile created concurrently, ignoring event", "user_id", event.UserID)
			return nil
		}
		return fmt.Errorf("failed to create profile: %w", err)
	}

	s.log.Info("provisioned profile", "user_id", event.UserID)
	return nil
}

func (s *profileService) GetByID(ctx context.Context, id uuid.UUID) (*domain.Profile, error) {
	profile, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}
	if profile == nil {
		return nil, domain.ErrProfileNotFound
	}
	return profile, nil
}

// Update applies a partial update: only non-nil fields overwrite.
func (s *profileService) Update(ctx context.Context, id uuid.UUID, input ports.ProfileUpdateInput) (*domain.Profile, error) {
	profile, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}
	if profile == nil {
		return nil, domain.ErrProfileNotFound
	}

	if input.DisplayName != nil {
		profile.DisplayName = *input.DisplayName
	}
	if input.Email != nil {
		profile.Email = *input.Email
	}
	if input.Subscriptions != nil {
		profile.Subscriptions = input.Subscriptions
	}

	if err := s.repo.Update(ctx, profile); err != nil {
		return nil, fmt.Errorf("failed to update profile: %w", err)
	}
	s.log.Info("updated profile", "user_id", id)
	return profile, nil
}

func (s *profileService) GetAll(ctx context.Context) ([]domain.Profile, error) {
	profiles, err := s.repo.GetAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list profiles: %w", err)
	}
	return profiles, nil
}
