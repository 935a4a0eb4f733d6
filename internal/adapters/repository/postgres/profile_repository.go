package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/vncsmyrnk/curator/internal/core/domain"
	"github.com/vncsmyrnk/curator/internal/core/ports"
)

type profileRepository struct {
	db *sql.DB
}

func NewProfileRepository(db *sql.DB) ports.ProfileRepository {
	return &profileRepository{db: db}
}

func (r *profileRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Profile, error) {
	query := `
		SELECT id, username, email, display_name, subscriptions, created_at, updated_at
		FROM user_profiles WHERE id = $1
	`
	profile := &domain.Profile{}
	err := r.db.QueryRowContext(ctx, query, id).Scan(
		&profile.ID, &profile.Username, &profile.Email, &profile.DisplayName,
		pq.Array(&profile.Subscriptions), &profile.CreatedAt, &profile.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return profile, nil
}

func (r *profileRepository) ExistsByID(ctx context.Context, id uuid.UUID) (bool, error) {
	query := `SELECT 1 FROM user_profiles WHERE id = $1 LIMIT 1`
	var exists int
	err := r.db.QueryRowContext(ctx, query, id).Scan(&exists)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return false, nil
		}
		return false, fmt.Errorf("failed to check profile: %w", err)
	}
	return true, nil
}

// Create relies on the primary key to serialize concurrent provisioning
// attempts for the same user; the loser gets ErrProfileExists.
func (r *profileRepository) Create(ctx context.Context, profile *domain.Profile) error {
	query := `
		INSERT INTO user_profiles (id, username, email, display_name, subscriptions)
		VALUES ($1, $2, $3, $4, $5) RETURNING created_at, updated_at
	`
	err := r.db.QueryRowContext(ctx, query,
		profile.ID, profile.Username, profile.Email, profile.DisplayName,
		pq.Array(profile.Subscriptions),
	).Scan(&profile.CreatedAt, &profile.UpdatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrProfileExists
		}
		return fmt.Errorf("failed to create profile: %w", err)
	}
	return nil
}

func (r *profileRepository) Update(ctx context.Context, profile *domain.Profile) error {
	query := `
		UPDATE user_profiles
		SET email = $2, display_name = $3, subscriptions = $4, updated_at = NOW()
		WHERE id = $1
	`
	_, err := r.db.ExecContext(ctx, query,
		profile.ID, profile.Email, profile.DisplayName, pq.Array(profile.Subscriptions))
	if err != nil {
		return fmt.Errorf("failed to update profile: %w", err)
	}
	return nil
}

func (r *profileRepository) GetAll(ctx context.Context) ([]domain.Profile, error) {
	query := `
		SELECT id, username, email, display_name, subscriptions, created_at, updated_at
		FROM user_profiles ORDER BY created_at
	`
	rows, err := r.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list profiles: %w", err)
	}
	defer rows.Close()

	var profiles []domain.Profile
	for rows.Next() {
		var p domain.Profile
		if err := rows.Scan(&p.ID, &p.Username, &p.Email, &p.DisplayName,
			pq.Array(&p.Subscriptions), &p.CreatedAt, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan profile: %w", err)
		}
		profiles = append(profiles, p)
	}
	return profiles, rows.Err()
}
