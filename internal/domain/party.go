package domain

import (
	"context"
	"time"
)

// Day is one of the two nights of a weekend a party can be listed for.
type Day string

const (
	DayFriday   Day = "friday"
	DaySaturday Day = "saturday"
)

// Valid reports whether the day is one of the two known values.
func (d Day) Valid() bool {
	return d == DayFriday || d == DaySaturday
}

// Status is the moderation status of a party. New parties start as pending and
// move exactly once to approved or rejected.
type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

// Field length bounds enforced before any write.
const (
	MaxTitleLen     = 50
	MaxHostLen      = 30
	MaxCategoryLen  = 50
	MaxDoorsOpenLen = 20
	MaxAddressLen   = 500
)

// Party represents an event listing. GoingCount is a cached projection of the
// attendance roster; the roster is the source of truth.
type Party struct {
	ID         string
	Title      string
	Host       string
	Category   string
	Day        Day
	DoorsOpen  string
	Address    string
	Latitude   float64
	Longitude  float64
	GoingCount int
	CreatedBy  string
	Status     Status
	CreatedAt  time.Time
	WeekendOf  time.Time
}

// CreatePartyInput carries the client-supplied fields for a new party.
// Identity, counter, status, and weekend fields are always assigned server-side.
type CreatePartyInput struct {
	Title     string
	Host      string
	Category  string
	Day       Day
	DoorsOpen string
	Address   string
	Latitude  *float64
	Longitude *float64
}

// PartyRepository defines storage operations for parties.
type PartyRepository interface {
	Create(ctx context.Context, party *Party) error
	GetByID(ctx context.Context, id string) (*Party, error)
	// ListApproved returns approved parties for the given weekend ordered by
	// going_count descending. An empty day means no day filter.
	ListApproved(ctx context.Context, weekendOf time.Time, day Day) ([]*Party, error)
	// ListByStatus returns parties with the given status ordered by
	// created_at descending.
	ListByStatus(ctx context.Context, status Status) ([]*Party, error)
	Delete(ctx context.Context, id string) error
	UpdateStatus(ctx context.Context, id string, status Status) error
	UpdateGoingCount(ctx context.Context, id string, count int) error
}

// PartyService defines party listing business logic.
type PartyService interface {
	// List returns approved parties for the current weekend. An unknown day
	// filter yields an empty result rather than an error.
	List(ctx context.Context, day string) ([]*Party, error)
	GetByID(ctx context.Context, id string) (*Party, error)
	Create(ctx context.Context, input CreatePartyInput, creatorID string) (*Party, error)
	// Delete removes a party. Only the creator may delete, at any status.
	Delete(ctx context.Context, id, callerID string) error
}

// ModerationService gates party visibility. Pending parties transition exactly
// once to approved or rejected.
type ModerationService interface {
	ListPending(ctx context.Context) ([]*Party, error)
	Approve(ctx context.Context, id string) error
	Reject(ctx context.Context, id string) error
}
