package ports

import (
	"context"

	"github.com/google/uuid"
	"github.com/vncsmyrnk/curator/internal/core/domain"
)

type ProfileRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Profile, error)
	ExistsByID(ctx context.Context, id uuid.UUID) (bool, error)
	Create(ctx context.Context, profile *domain.Profile) error
	Update(ctx context.Context, profile *domain.Profile) error
	GetAll(ctx context.Context) ([]domain.Profile, error)
}

// ProfileUpdateInput carries a partial update: only non-nil fields overwrite.
type ProfileUpdateInput struct {
	DisplayName   *string
	Email         *string
	Subscriptions []string
}

type ProfileService interface {
	CreateFromEvent(ctx context.Context, event domain.UserRegisteredEvent) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Profile, error)
	Update(ctx context.Context, id uuid.UUID, input ProfileUpdateInput) (*domain.Profile, error)
	GetAll(ctx context.Context) ([]domain.Profile, error)
}
