package services

import (
	"context"
	"errors"
	"fmt"

	"campusparties/internal/domain"
)

type attendanceService struct {
	partyRepo      domain.PartyRepository
	attendanceRepo domain.AttendanceRepository
}

// NewAttendanceService creates an AttendanceService with the given repositories.
func NewAttendanceService(partyRepo domain.PartyRepository, attendanceRepo domain.AttendanceRepository) domain.AttendanceService {
	return &attendanceService{
		partyRepo:      partyRepo,
		attendanceRepo: attendanceRepo,
	}
}

func (s *attendanceService) Toggle(ctx context.Context, partyID, userID string) (bool, int, error) {
	if _, err := s.partyRepo.GetByID(ctx, partyID); err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return false, 0, domain.ErrNotFound
		}
		return false, 0, fmt.Errorf("get party: %w", err)
	}

	going, err := s.attendanceRepo.Exists(ctx, partyID, userID)
	if err != nil {
		return false, 0, fmt.Errorf("check attendance: %w", err)
	}

	if going {
		if err := s.attendanceRepo.Delete(ctx, partyID, userID); err != nil {
			return false, 0, fmt.Errorf("delete attendance: %w", err)
		}
	} else {
		if err := s.attendanceRepo.Insert(ctx, partyID, userID); err != nil {
			return false, 0, fmt.Errorf("insert attendance: %w", err)
		}
	}

	// The counter is always overwritten with a fresh roster count, never
	// derived from its own prior value, so concurrent toggles by different
	// users cannot lose updates.
	count, err := s.attendanceRepo.CountByParty(ctx, partyID)
	if err != nil {
		return false, 0, fmt.Errorf("count attendance: %w", err)
	}
	if err := s.partyRepo.UpdateGoingCount(ctx, partyID, count); err != nil {
		return false, 0, fmt.Errorf("update going count: %w", err)
	}

	return !going, count, nil
}

func (s *attendanceService) AnonymousGoing(ctx context.Context, partyID string) (int, error) {
	party, err := s.partyRepo.GetByID(ctx, partyID)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return 0, domain.ErrNotFound
		}
		return 0, fmt.Errorf("get party: %w", err)
	}

	// The roster cardinality is the floor; anything above it in the stored
	// counter is accumulated anonymous interest. Concurrent anonymous bumps
	// can race and undercount, which is acceptable for this signal.
	floor, err := s.attendanceRepo.CountByParty(ctx, partyID)
	if err != nil {
		return 0, fmt.Errorf("count attendance: %w", err)
	}
	excess := party.GoingCount - floor
	if excess < 0 {
		excess = 0
	}
	count := floor + excess + 1
	if err := s.partyRepo.UpdateGoingCount(ctx, partyID, count); err != nil {
		return 0, fmt.Errorf("update going count: %w", err)
	}
	return count, nil
}

func (s *attendanceService) ListPartyIDsByUser(ctx context.Context, userID string) ([]string, error) {
	ids, err := s.attendanceRepo.ListPartyIDsByUser(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("list attendance: %w", err)
	}
	return ids, nil
}
