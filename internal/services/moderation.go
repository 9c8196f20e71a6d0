package services

import (
	"context"
	"errors"
	"fmt"

	"campusparties/internal/domain"
)

type moderationService struct {
	partyRepo domain.PartyRepository
}

// NewModerationService creates a ModerationService with the given repository.
func NewModerationService(partyRepo domain.PartyRepository) domain.ModerationService {
	return &moderationService{partyRepo: partyRepo}
}

func (s *moderationService) ListPending(ctx context.Context) ([]*domain.Party, error) {
	parties, err := s.partyRepo.ListByStatus(ctx, domain.StatusPending)
	if err != nil {
		return nil, fmt.Errorf("list pending parties: %w", err)
	}
	return parties, nil
}

func (s *moderationService) Approve(ctx context.Context, id string) error {
	return s.transition(ctx, id, domain.StatusApproved)
}

func (s *moderationService) Reject(ctx context.Context, id string) error {
	return s.transition(ctx, id, domain.StatusRejected)
}

// transition performs the single permitted move out of pending. Approved and
// rejected are terminal.
func (s *moderationService) transition(ctx context.Context, id string, to domain.Status) error {
	party, err := s.partyRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("get party: %w", err)
	}
	if party.Status != domain.StatusPending {
		return fmt.Errorf("%w: party is not pending", domain.ErrInvalidState)
	}
	if err := s.partyRepo.UpdateStatus(ctx, id, to); err != nil {
		return fmt.Errorf("update status: %w", err)
	}
	return nil
}
