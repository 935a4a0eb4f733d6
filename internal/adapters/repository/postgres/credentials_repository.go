package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/vncsmyrnk/curator/internal/core/domain"
	"github.com/vncsmyrnk/curator/internal/core/ports"
)

type credentialsRepository struct {
	db *sql.DB
}

func NewCredentialsRepository(db *sql.DB) ports.CredentialsRepository {
	return &credentialsRepository{db: db}
}

func (r *credentialsRepository) GetByUsername(ctx context.Context, username string) (*domain.Credentials, error) {
	query := `SELECT id, username, email, password_hash, created_at FROM user_credentials WHERE username = $1`
	creds := &domain.Credentials{}
	err := r.db.QueryRowContext(ctx, query, username).
		Scan(&creds.ID, &creds.Username, &creds.Email, &creds.PasswordHash, &creds.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return creds, nil
}

func (r *credentialsRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	query := `SELECT 1 FROM user_credentials WHERE username = $1 LIMIT 1`
	var exists int
	err := r.db.QueryRowContext(ctx, query, username).Scan(&exists)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("failed to check username: %w", err)
	}
	return true, nil
}

func (r *credentialsRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	query := `SELECT 1 FROM user_credentials WHERE email = $1 LIMIT 1`
	var exists int
	err := r.db.QueryRowContext(ctx, query, email).Scan(&exists)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("failed to check email: %w", err)
	}
	return true, nil
}

func (r *credentialsRepository) Create(ctx context.Context, creds *domain.Credentials) error {
	query := `
		INSERT INTO user_credentials (id, username, email, password_hash)
		VALUES ($1, $2, $3, $4) RETURNING created_at
	`
	err := r.db.QueryRowContext(ctx, query, creds.ID, creds.Username, creds.Email, creds.PasswordHash).
		Scan(&creds.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrUsernameTaken
		}
		return fmt.Errorf("failed to create credentials: %w", err)
	}
	return nil
}
