package services

import (
	"context"
	"errors"
	"fmt"
	"log"
	"math"
	"math/rand/v2"
	"time"
	"unicode/utf8"

	"github.com/google/uuid"

	"campusparties/internal/domain"
)

// Campus-area bounding box used when a party is created without coordinates.
const (
	campusMinLat = 39.978
	campusMaxLat = 39.985
	campusMinLng = -75.162
	campusMaxLng = -75.148
)

type partyService struct {
	partyRepo       domain.PartyRepository
	emailService    domain.EmailService
	moderationInbox string
}

// NewPartyService creates a PartyService. emailService may be nil; when set,
// a moderation notice is sent to moderationInbox for each new party.
func NewPartyService(partyRepo domain.PartyRepository, emailService domain.EmailService, moderationInbox string) domain.PartyService {
	return &partyService{
		partyRepo:       partyRepo,
		emailService:    emailService,
		moderationInbox: moderationInbox,
	}
}

// CurrentWeekendFriday returns the Friday anchoring the current weekend.
// Mon-Fri map to the upcoming (or same-day) Friday; Sat and Sun map back to
// the Friday that has just passed, so a weekend in progress never rolls over
// to the next one.
func CurrentWeekendFriday(today time.Time) time.Time {
	// time.Weekday counts from Sunday; shift to a Monday=0 scheme.
	weekday := (int(today.Weekday()) + 6) % 7
	days := 4 - weekday // negative on Sat/Sun
	anchor := today.AddDate(0, 0, days)
	return time.Date(anchor.Year(), anchor.Month(), anchor.Day(), 0, 0, 0, 0, time.UTC)
}

// generateCoordinates picks a pseudo-random point inside the campus bounding
// box, rounded to 8 decimal places.
func generateCoordinates() (lat, lng float64) {
	lat = campusMinLat + rand.Float64()*(campusMaxLat-campusMinLat)
	lng = campusMinLng + rand.Float64()*(campusMaxLng-campusMinLng)
	return round8(lat), round8(lng)
}

func round8(v float64) float64 {
	return math.Round(v*1e8) / 1e8
}

// Bounds count characters, not bytes, to match the VARCHAR column limits.
func validateCreateInput(input domain.CreatePartyInput) error {
	switch {
	case input.Title == "":
		return fmt.Errorf("%w: title is required", domain.ErrInvalidInput)
	case utf8.RuneCountInString(input.Title) > domain.MaxTitleLen:
		return fmt.Errorf("%w: title must be %d characters or less", domain.ErrInvalidInput, domain.MaxTitleLen)
	case input.Host == "":
		return fmt.Errorf("%w: host is required", domain.ErrInvalidInput)
	case utf8.RuneCountInString(input.Host) > domain.MaxHostLen:
		return fmt.Errorf("%w: host must be %d characters or less", domain.ErrInvalidInput, domain.MaxHostLen)
	case utf8.RuneCountInString(input.Category) > domain.MaxCategoryLen:
		return fmt.Errorf("%w: category must be %d characters or less", domain.ErrInvalidInput, domain.MaxCategoryLen)
	case utf8.RuneCountInString(input.DoorsOpen) > domain.MaxDoorsOpenLen:
		return fmt.Errorf("%w: doorsOpen must be %d characters or less", domain.ErrInvalidInput, domain.MaxDoorsOpenLen)
	case utf8.RuneCountInString(input.Address) > domain.MaxAddressLen:
		return fmt.Errorf("%w: address must be %d characters or less", domain.ErrInvalidInput, domain.MaxAddressLen)
	case !input.Day.Valid():
		return fmt.Errorf("%w: day must be friday or saturday", domain.ErrInvalidInput)
	}
	if input.Latitude != nil && (*input.Latitude < -90 || *input.Latitude > 90) {
		return fmt.Errorf("%w: latitude must be between -90 and 90", domain.ErrInvalidInput)
	}
	if input.Longitude != nil && (*input.Longitude < -180 || *input.Longitude > 180) {
		return fmt.Errorf("%w: longitude must be between -180 and 180", domain.ErrInvalidInput)
	}
	return nil
}

func (s *partyService) List(ctx context.Context, day string) ([]*domain.Party, error) {
	var filter domain.Day
	if day != "" {
		filter = domain.Day(day)
		if !filter.Valid() {
			// Unknown day filters match nothing rather than failing.
			return []*domain.Party{}, nil
		}
	}
	weekend := CurrentWeekendFriday(time.Now())
	parties, err := s.partyRepo.ListApproved(ctx, weekend, filter)
	if err != nil {
		return nil, fmt.Errorf("list approved parties: %w", err)
	}
	return parties, nil
}

func (s *partyService) GetByID(ctx context.Context, id string) (*domain.Party, error) {
	party, err := s.partyRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return nil, domain.ErrNotFound
		}
		return nil, fmt.Errorf("get party: %w", err)
	}
	return party, nil
}

func (s *partyService) Create(ctx context.Context, input domain.CreatePartyInput, creatorID string) (*domain.Party, error) {
	if err := validateCreateInput(input); err != nil {
		return nil, err
	}

	var lat, lng float64
	if input.Latitude != nil && input.Longitude != nil {
		lat, lng = *input.Latitude, *input.Longitude
	} else {
		lat, lng = generateCoordinates()
	}

	now := time.Now()
	party := &domain.Party{
		ID:         uuid.NewString(),
		Title:      input.Title,
		Host:       input.Host,
		Category:   input.Category,
		Day:        input.Day,
		DoorsOpen:  input.DoorsOpen,
		Address:    input.Address,
		Latitude:   lat,
		Longitude:  lng,
		GoingCount: 0,
		CreatedBy:  creatorID,
		Status:     domain.StatusPending,
		CreatedAt:  now,
		WeekendOf:  CurrentWeekendFriday(now),
	}
	if err := s.partyRepo.Create(ctx, party); err != nil {
		return nil, fmt.Errorf("create party: %w", err)
	}

	s.notifyModerators(ctx, party)

	return party, nil
}

// notifyModerators sends the pending-review notice. Delivery is best-effort;
// a failure never fails the create.
func (s *partyService) notifyModerators(ctx context.Context, party *domain.Party) {
	if s.emailService == nil || s.moderationInbox == "" {
		return
	}
	data := &domain.PendingPartyEmailData{
		Title:     party.Title,
		Host:      party.Host,
		Day:       string(party.Day),
		DoorsOpen: party.DoorsOpen,
		Address:   party.Address,
		WeekendOf: party.WeekendOf.Format("2006-01-02"),
	}
	if err := s.emailService.SendPendingPartyNotice(ctx, s.moderationInbox, data); err != nil {
		log.Printf("[EMAIL] Pending party notice failed for %s: %v", party.ID, err)
	}
}

func (s *partyService) Delete(ctx context.Context, id, callerID string) error {
	party, err := s.partyRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, domain.ErrNotFound) {
			return domain.ErrNotFound
		}
		return fmt.Errorf("get party: %w", err)
	}
	if party.CreatedBy != callerID {
		return domain.ErrForbidden
	}
	if err := s.partyRepo.Delete(ctx, id); err != nil {
		return fmt.Errorf("delete party: %w", err)
	}
	return nil
}
