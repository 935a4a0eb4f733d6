package ports

import (
	"context"

	"github.com/google/uuid"
	"github.com/vncsmyrnk/curator/internal/core/domain"
)

type CredentialsRepository interface {
	GetByUsername(ctx context.Context, username string) (*domain.Credentials, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	Create(ctx context.Context, creds *domain.Credentials) error
}

// TokenService issues and verifies signed, time-bounded access tokens.
// Both operations are pure functions of the token, key and clock.
type TokenService interface {
	Issue(userID uuid.UUID) (string, error)
	Verify(token string) (uuid.UUID, error)
}

type RegisterInput struct {
	Username string
	Email    string
	Password string
}

type LoginResult struct {
	AccessToken string
	DisplayName string
	UserID      uuid.UUID
}

type AuthService interface {
	Register(ctx context.Context, input RegisterInput) (uuid.UUID, error)
	Login(ctx context.Context, username, password string) (*LoginResult, error)
	Validate(ctx context.Context, token string) (uuid.UUID, error)
}

// ProfileClient is the synchronous boundary to the user service used during
// login to fetch the display name.
type ProfileClient interface {
	GetDisplayName(ctx context.Context, userID uuid.UUID) (string, error)
}
