package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"github.com/vncsmyrnk/curator/internal/core/domain"
	"github.com/vncsmyrnk/curator/internal/core/ports"
	"golang.org/x/crypto/bcrypt"
)

type authService struct {
	credsRepo     ports.CredentialsRepository
	tokenService  ports.TokenService
	publisher     ports.EventPublisher
	profileClient ports.ProfileClient
	routingKey    string
	log           *slog.Logger
}

func NewAuthService(
	credsRepo ports.CredentialsRepository,
	tokenService ports.TokenService,
	publisher ports.EventPublisher,
	profileClient ports.ProfileClient,
	routingKey string,
	log *slog.Logger,
) ports.AuthService {
	return &authService{
		credsRepo:     credsRepo,
		tokenService:  tokenService,
		publisher:     publisher,
		profileClient: profileClient,
		routingKey:    routingKey,
		log:           log,
	}
}

// Register checks both uniqueness constraints before writing anything, then
// persists the credential and publishes a registration event. The event is
// how the user service learns to provision a profile; if the bus is down the
// registration still succeeds because the credential write already committed.
func (s *authService) Register(ctx context.Context, input ports.RegisterInput) (uuid.UUID, error) {
	taken, err := s.credsRepo.ExistsByUsername(ctx, input.Username)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to check username: %w", err)
	}
	if taken {
		return uuid.Nil, domain.ErrUsernameTaken
	}

	inUse, err := s.credsRepo.ExistsByEmail(ctx, input.Email)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to check email: %w", err)
	}
	if inUse {
		return uuid.Nil, domain.ErrEmailTaken
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(input.Password), bcrypt.DefaultCost)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to hash password: %w", err)
	}

	creds := &domain.Credentials{
		ID:           uuid.New(),
		Username:     input.Username,
		Email:        input.Email,
		PasswordHash: string(hash),
	}
	if err := s.credsRepo.Create(ctx, creds); err != nil {
		return uuid.Nil, fmt.Errorf("failed to create credentials: %w", err)
	}
	s.log.Info("user registered", "user_id", creds.ID)

	event := domain.UserRegisteredEvent{
		UserID:   creds.ID,
		Username: creds.Username,
		Email:    creds.Email,
	}
	if err := s.publisher.Publish(ctx, s.routingKey, event); err != nil {
		// The credential is already committed; the lost event is a known
		// consistency gap closed only by a reconciliation sweep.
		s.log.Error("failed to publish registration event", "user_id", creds.ID, "error", err)
	} else {
		s.log.Info("published registration event", "user_id", creds.ID)
	}

	return creds.ID, nil
}

// Login authenticates, issues a token and fetches the display name from the
// user service. The profile fetch is a strict dependency: if it fails the
// whole login fails.
func (s *authService) Login(ctx context.Context, username, password string) (*ports.LoginResult, error) {
	creds, err := s.credsRepo.GetByUsername(ctx, username)
	if err != nil {
		return nil, fmt.Errorf("failed to get credentials: %w", err)
	}
	// Unknown user and wrong password are indistinguishable to the caller.
	if creds == nil {
		return nil, domain.ErrInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(creds.PasswordHash), []byte(password)); err != nil {
		return nil, domain.ErrInvalidCredentials
	}

	accessToken, err := s.tokenService.Issue(creds.ID)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}

	displayName, err := s.profileClient.GetDisplayName(ctx, creds.ID)
	if err != nil {
		s.log.Error("profile lookup failed during login", "user_id", creds.ID, "error", err)
		return nil, fmt.Errorf("%w: %v", domain.ErrDependencyFailed, err)
	}

	s.log.Info("login successful", "user_id", creds.ID)
	return &ports.LoginResult{
		AccessToken: accessToken,
		DisplayName: displayName,
		UserID:      creds.ID,
	}, nil
}

func (s *authService) Validate(ctx context.Context, token string) (uuid.UUID, error) {
	userID, err := s.tokenService.Verify(token)
	if err != nil {
		// Expired vs malformed matters for the logs only; callers see a
		// single unauthorized outcome.
		s.log.Warn("token validation failed", "error", err)
		return uuid.Nil, err
	}
	return userID, nil
}
