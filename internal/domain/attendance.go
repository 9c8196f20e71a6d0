package domain

import "context"

// AttendanceRepository defines storage operations for the attendance roster.
// Rows are keyed by (party_id, user_id) with no payload beyond existence.
type AttendanceRepository interface {
	Exists(ctx context.Context, partyID, userID string) (bool, error)
	// Insert adds a roster row. A concurrent duplicate insert is treated as a
	// no-op, not an error.
	Insert(ctx context.Context, partyID, userID string) error
	Delete(ctx context.Context, partyID, userID string) error
	// CountByParty returns the roster cardinality for a party. This is the
	// authoritative attendance count.
	CountByParty(ctx context.Context, partyID string) (int, error)
	ListPartyIDsByUser(ctx context.Context, userID string) ([]string, error)
}

// AttendanceService defines attendance business logic.
type AttendanceService interface {
	// Toggle flips the caller's membership for a party and returns the new
	// membership state and the recomputed authoritative count.
	Toggle(ctx context.Context, partyID, userID string) (going bool, count int, err error)
	// AnonymousGoing bumps the counter for an unauthenticated caller without a
	// roster row. Best-effort only: concurrent anonymous bumps can race.
	AnonymousGoing(ctx context.Context, partyID string) (count int, err error)
	ListPartyIDsByUser(ctx context.Context, userID string) ([]string, error)
}
