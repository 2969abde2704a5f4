package repository

import (
	"context"
	"database/sql"

	"github.com/platefront/backoffice-backend/internal/user/domain"
	"github.com/platefront/backoffice-backend/pkg/database"
	"github.com/platefront/backoffice-backend/pkg/errors"
)

// ProfileRepository handles profile persistence
type ProfileRepository struct {
	db *database.DB
}

// NewProfileRepository creates a new profile repository
func NewProfileRepository(db *database.DB) *ProfileRepository {
	return &ProfileRepository{db: db}
}

// Create inserts a profile row for a freshly provisioned identity.
func (r *ProfileRepository) Create(ctx context.Context, profile *domain.Profile) error {
	query := `
		INSERT INTO profiles (identity_id, company_code, role, store_name, user_group)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at, updated_at
	`

	err := r.db.QueryRowxContext(ctx, query,
		profile.IdentityID,
		profile.CompanyCode,
		profile.Role,
		profile.StoreName,
		profile.Group,
	).Scan(&profile.CreatedAt, &profile.UpdatedAt)

	if err != nil {
		if appErr := database.MapPQError(err); appErr != nil {
			return appErr
		}
		return err
	}

	return nil
}

// GetByIdentityID gets a profile by its identity id
func (r *ProfileRepository) GetByIdentityID(ctx context.Context, identityID string) (*domain.Profile, error) {
	var profile domain.Profile
	query := `
		SELECT identity_id, company_code, role, store_name, user_group, created_at, updated_at
		FROM profiles
		WHERE identity_id = $1
	`

	err := r.db.GetContext(ctx, &profile, query, identityID)
	if err == sql.ErrNoRows {
		return nil, errors.NotFound("profile")
	}
	if err != nil {
		return nil, err
	}

	return &profile, nil
}

// List lists all profiles ordered by company code
func (r *ProfileRepository) List(ctx context.Context) ([]*domain.Profile, error) {
	profiles := []*domain.Profile{}
	query := `
		SELECT identity_id, company_code, role, store_name, user_group, created_at, updated_at
		FROM profiles
		ORDER BY company_code ASC
	`

	if err := r.db.SelectContext(ctx, &profiles, query); err != nil {
		return nil, err
	}

	return profiles, nil
}

// Update persists the full profile row
func (r *ProfileRepository) Update(ctx context.Context, profile *domain.Profile) error {
	query := `
		UPDATE profiles
		SET company_code = $2, role = $3, store_name = $4, user_group = $5, updated_at = NOW()
		WHERE identity_id = $1
		RETURNING updated_at
	`

	err := r.db.QueryRowxContext(ctx, query,
		profile.IdentityID,
		profile.CompanyCode,
		profile.Role,
		profile.StoreName,
		profile.Group,
	).Scan(&profile.UpdatedAt)

	if err == sql.ErrNoRows {
		return errors.NotFound("profile")
	}
	if err != nil {
		if appErr := database.MapPQError(err); appErr != nil {
			return appErr
		}
		return err
	}

	return nil
}

// Delete removes a profile row
func (r *ProfileRepository) Delete(ctx context.Context, identityID string) error {
	result, err := r.db.ExecContext(ctx, `DELETE FROM profiles WHERE identity_id = $1`, identityID)
	if err != nil {
		return err
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return errors.NotFound("profile")
	}

	return nil
}
