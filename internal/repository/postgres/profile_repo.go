package postgres

import (
	"context"
	"database/sql"
	"errors"

	"campusparties/internal/domain"
)

type profileRepository struct {
	DB *sql.DB
}

// NewProfileRepository creates a ProfileRepository backed by Postgres.
func NewProfileRepository(db *sql.DB) domain.ProfileRepository {
	return &profileRepository{DB: db}
}

func (r *profileRepository) GetByID(ctx context.Context, id string) (*domain.Profile, error) {
	query := `
		SELECT id, COALESCE(username, ''), is_admin, created_at
		FROM user_profiles
		WHERE id = $1
	`
	p := &domain.Profile{}
	err := r.DB.QueryRowContext(ctx, query, id).Scan(&p.ID, &p.Username, &p.IsAdmin, &p.CreatedAt)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrProfileNotFound
		}
		return nil, err
	}
	return p, nil
}

func (r *profileRepository) Create(ctx context.Context, p *domain.Profile) error {
	query := `
		INSERT INTO user_profiles (id, username, is_admin, created_at)
		VALUES ($1, $2, $3, $4)
	`
	_, err := r.DB.ExecContext(ctx, query, p.ID, p.Username, p.IsAdmin, p.CreatedAt)
	return err
}

func (r *profileRepository) UpdateUsername(ctx context.Context, id, username string) error {
	res, err := r.DB.ExecContext(ctx, `UPDATE user_profiles SET username = $1 WHERE id = $2`, username, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrProfileNotFound
	}
	return nil
}
