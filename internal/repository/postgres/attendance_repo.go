package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/lib/pq"

	"campusparties/internal/domain"
)

// uniqueViolation is the Postgres error code for a unique constraint violation.
const uniqueViolation = "23505"

type attendanceRepository struct {
	DB *sql.DB
}

// NewAttendanceRepository creates an AttendanceRepository backed by Postgres.
func NewAttendanceRepository(db *sql.DB) domain.AttendanceRepository {
	return &attendanceRepository{DB: db}
}

func (r *attendanceRepository) Exists(ctx context.Context, partyID, userID string) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM party_going WHERE party_id = $1 AND user_id = $2
		)
	`
	var exists bool
	if err := r.DB.QueryRowContext(ctx, query, partyID, userID).Scan(&exists); err != nil {
		return false, err
	}
	return exists, nil
}

func (r *attendanceRepository) Insert(ctx context.Context, partyID, userID string) error {
	query := `
		INSERT INTO party_going (party_id, user_id, created_at)
		VALUES ($1, $2, now())
		ON CONFLICT (party_id, user_id) DO NOTHING
	`
	_, err := r.DB.ExecContext(ctx, query, partyID, userID)
	if err != nil {
		// A second identical row is semantically redundant, so a lost race
		// against a concurrent insert is not an error.
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == uniqueViolation {
			return nil
		}
		return err
	}
	return nil
}

func (r *attendanceRepository) Delete(ctx context.Context, partyID, userID string) error {
	_, err := r.DB.ExecContext(ctx, `DELETE FROM party_going WHERE party_id = $1 AND user_id = $2`, partyID, userID)
	return err
}

func (r *attendanceRepository) CountByParty(ctx context.Context, partyID string) (int, error) {
	var count int
	err := r.DB.QueryRowContext(ctx, `SELECT COUNT(*) FROM party_going WHERE party_id = $1`, partyID).Scan(&count)
	if err != nil {
		return 0, err
	}
	return count, nil
}

func (r *attendanceRepository) ListPartyIDsByUser(ctx context.Context, userID string) ([]string, error) {
	rows, err := r.DB.QueryContext(ctx, `SELECT party_id FROM party_going WHERE user_id = $1`, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var ids []string
	for rows.Next() {
		var id string
		if err := rows.Scan(&id); err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if ids == nil {
		ids = []string{}
	}
	return ids, nil
}
