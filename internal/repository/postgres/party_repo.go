package postgres

import (
	"context"
	"database/sql"
	"errors"
	"time"

	"campusparties/internal/domain"
)

type partyRepository struct {
	DB *sql.DB
}

// NewPartyRepository creates a PartyRepository backed by Postgres.
func NewPartyRepository(db *sql.DB) domain.PartyRepository {
	return &partyRepository{DB: db}
}

const partyColumns = `id, title, host, category, day, doors_open, address, latitude, longitude, going_count, created_by, status, created_at, weekend_of`

func scanParty(row interface{ Scan(...any) error }) (*domain.Party, error) {
	p := &domain.Party{}
	err := row.Scan(
		&p.ID, &p.Title, &p.Host, &p.Category, &p.Day, &p.DoorsOpen, &p.Address,
		&p.Latitude, &p.Longitude, &p.GoingCount, &p.CreatedBy, &p.Status,
		&p.CreatedAt, &p.WeekendOf,
	)
	if err != nil {
		return nil, err
	}
	return p, nil
}

func (r *partyRepository) Create(ctx context.Context, p *domain.Party) error {
	query := `
		INSERT INTO parties (id, title, host, category, day, doors_open, address, latitude, longitude, going_count, created_by, status, created_at, weekend_of)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)
	`
	_, err := r.DB.ExecContext(ctx, query,
		p.ID, p.Title, p.Host, p.Category, string(p.Day), p.DoorsOpen, p.Address,
		p.Latitude, p.Longitude, p.GoingCount, p.CreatedBy, string(p.Status),
		p.CreatedAt, p.WeekendOf,
	)
	return err
}

func (r *partyRepository) GetByID(ctx context.Context, id string) (*domain.Party, error) {
	query := `
		SELECT ` + partyColumns + `
		FROM parties
		WHERE id = $1
	`
	p, err := scanParty(r.DB.QueryRowContext(ctx, query, id))
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrNotFound
		}
		return nil, err
	}
	return p, nil
}

func (r *partyRepository) ListApproved(ctx context.Context, weekendOf time.Time, day domain.Day) ([]*domain.Party, error) {
	query := `
		SELECT ` + partyColumns + `
		FROM parties
		WHERE status = $1 AND weekend_of = $2
	`
	args := []any{string(domain.StatusApproved), weekendOf}
	if day != "" {
		query += ` AND day = $3`
		args = append(args, string(day))
	}
	query += ` ORDER BY going_count DESC`

	rows, err := r.DB.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectParties(rows)
}

func (r *partyRepository) ListByStatus(ctx context.Context, status domain.Status) ([]*domain.Party, error) {
	query := `
		SELECT ` + partyColumns + `
		FROM parties
		WHERE status = $1
		ORDER BY created_at DESC
	`
	rows, err := r.DB.QueryContext(ctx, query, string(status))
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	return collectParties(rows)
}

func collectParties(rows *sql.Rows) ([]*domain.Party, error) {
	var parties []*domain.Party
	for rows.Next() {
		p, err := scanParty(rows)
		if err != nil {
			return nil, err
		}
		parties = append(parties, p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if parties == nil {
		parties = []*domain.Party{}
	}
	return parties, nil
}

func (r *partyRepository) Delete(ctx context.Context, id string) error {
	// Roster rows go with the party via ON DELETE CASCADE.
	res, err := r.DB.ExecContext(ctx, `DELETE FROM parties WHERE id = $1`, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *partyRepository) UpdateStatus(ctx context.Context, id string, status domain.Status) error {
	res, err := r.DB.ExecContext(ctx, `UPDATE parties SET status = $1 WHERE id = $2`, string(status), id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *partyRepository) UpdateGoingCount(ctx context.Context, id string, count int) error {
	res, err := r.DB.ExecContext(ctx, `UPDATE parties SET going_count = $1 WHERE id = $2`, count, id)
	if err != nil {
		return err
	}
	n, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if n == 0 {
		return domain.ErrNotFound
	}
	return nil
}
