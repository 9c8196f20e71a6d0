package services

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"campusparties/internal/domain"
)

func TestCurrentWeekendFriday(t *testing.T) {
	tests := []struct {
		name  string
		today string
		want  string
	}{
		{"monday maps forward", "2026-08-24", "2026-08-28"},
		{"tuesday maps forward", "2026-08-25", "2026-08-28"},
		{"wednesday maps forward", "2026-08-26", "2026-08-28"},
		{"thursday maps forward", "2026-08-27", "2026-08-28"},
		{"friday maps to itself", "2026-08-28", "2026-08-28"},
		{"saturday maps back", "2026-08-29", "2026-08-28"},
		{"sunday maps back", "2026-08-30", "2026-08-28"},
		{"next monday rolls over", "2026-08-31", "2026-09-04"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			today, err := time.Parse("2006-01-02", tt.today)
			require.NoError(t, err)
			got := CurrentWeekendFriday(today)
			assert.Equal(t, tt.want, got.Format("2006-01-02"))
			assert.Equal(t, time.Friday, got.Weekday())
		})
	}
}

func TestPartyService_Create_Validation(t *testing.T) {
	valid := domain.CreatePartyInput{
		Title: "House Party",
		Host:  "Sam",
		Day:   domain.DayFriday,
	}
	outOfRangeLat := 91.0
	outOfRangeLng := -181.0

	tests := []struct {
		name    string
		mutate  func(in *domain.CreatePartyInput)
		wantMsg string
	}{
		{"empty title", func(in *domain.CreatePartyInput) { in.Title = "" }, "title is required"},
		{"title too long", func(in *domain.CreatePartyInput) { in.Title = strings.Repeat("a", 51) }, "title must be 50 characters or less"},
		{"empty host", func(in *domain.CreatePartyInput) { in.Host = "" }, "host is required"},
		{"host too long", func(in *domain.CreatePartyInput) { in.Host = strings.Repeat("a", 31) }, "host must be 30 characters or less"},
		{"category too long", func(in *domain.CreatePartyInput) { in.Category = strings.Repeat("a", 51) }, "category must be 50 characters or less"},
		{"doors open too long", func(in *domain.CreatePartyInput) { in.DoorsOpen = strings.Repeat("a", 21) }, "doorsOpen must be 20 characters or less"},
		{"address too long", func(in *domain.CreatePartyInput) { in.Address = strings.Repeat("a", 501) }, "address must be 500 characters or less"},
		{"multibyte title over bound", func(in *domain.CreatePartyInput) { in.Title = strings.Repeat("é", 51) }, "title must be 50 characters or less"},
		{"invalid day", func(in *domain.CreatePartyInput) { in.Day = "sunday" }, "day must be friday or saturday"},
		{"latitude out of range", func(in *domain.CreatePartyInput) { in.Latitude = &outOfRangeLat }, "latitude must be between -90 and 90"},
		{"longitude out of range", func(in *domain.CreatePartyInput) { in.Longitude = &outOfRangeLng }, "longitude must be between -180 and 180"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			repo := newFakePartyRepo()
			svc := NewPartyService(repo, nil, "")

			in := valid
			tt.mutate(&in)
			_, err := svc.Create(context.Background(), in, "user-1")
			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
			assert.Contains(t, err.Error(), tt.wantMsg)
			assert.Empty(t, repo.byID)
		})
	}
}

func TestPartyService_Create(t *testing.T) {
	repo := newFakePartyRepo()
	emails := &fakeEmailService{}
	svc := NewPartyService(repo, emails, "mods@example.edu")

	party, err := svc.Create(context.Background(), domain.CreatePartyInput{
		Title:     "Basement Show",
		Host:      "Alex",
		Category:  "house",
		Day:       domain.DaySaturday,
		DoorsOpen: "10pm",
		Address:   "123 Main St",
	}, "user-1")
	require.NoError(t, err)

	assert.NotEmpty(t, party.ID)
	assert.Equal(t, domain.StatusPending, party.Status)
	assert.Equal(t, 0, party.GoingCount)
	assert.Equal(t, "user-1", party.CreatedBy)
	assert.Equal(t, CurrentWeekendFriday(time.Now()), party.WeekendOf)

	// Missing coordinates are filled in from the campus area.
	assert.GreaterOrEqual(t, party.Latitude, campusMinLat)
	assert.LessOrEqual(t, party.Latitude, campusMaxLat)
	assert.GreaterOrEqual(t, party.Longitude, campusMinLng)
	assert.LessOrEqual(t, party.Longitude, campusMaxLng)

	require.Contains(t, repo.byID, party.ID)
	require.Len(t, emails.sentTo, 1)
	assert.Equal(t, "mods@example.edu", emails.sentTo[0])
	assert.Equal(t, "Basement Show", emails.data[0].Title)
}

func TestPartyService_Create_MultibyteBoundsCountCharacters(t *testing.T) {
	repo := newFakePartyRepo()
	svc := NewPartyService(repo, nil, "")

	// 50 two-byte characters are 100 bytes but exactly at the character bound.
	party, err := svc.Create(context.Background(), domain.CreatePartyInput{
		Title: strings.Repeat("é", 50),
		Host:  strings.Repeat("ü", 30),
		Day:   domain.DayFriday,
	}, "user-1")
	require.NoError(t, err)
	assert.Contains(t, repo.byID, party.ID)
}

func TestPartyService_Create_ExplicitCoordinates(t *testing.T) {
	repo := newFakePartyRepo()
	svc := NewPartyService(repo, nil, "")

	lat, lng := 40.0, -75.0
	party, err := svc.Create(context.Background(), domain.CreatePartyInput{
		Title:     "Rooftop",
		Host:      "Jo",
		Day:       domain.DayFriday,
		Latitude:  &lat,
		Longitude: &lng,
	}, "user-1")
	require.NoError(t, err)
	assert.Equal(t, lat, party.Latitude)
	assert.Equal(t, lng, party.Longitude)
}

func TestPartyService_Create_EmailFailureDoesNotFail(t *testing.T) {
	repo := newFakePartyRepo()
	emails := &fakeEmailService{err: errors.New("smtp down")}
	svc := NewPartyService(repo, emails, "mods@example.edu")

	party, err := svc.Create(context.Background(), domain.CreatePartyInput{
		Title: "Quiet One",
		Host:  "Pat",
		Day:   domain.DayFriday,
	}, "user-1")
	require.NoError(t, err)
	assert.Contains(t, repo.byID, party.ID)
}

func TestPartyService_List_UnknownDayIsEmpty(t *testing.T) {
	repo := newFakePartyRepo()
	repo.byID["p1"] = &domain.Party{
		ID:        "p1",
		Status:    domain.StatusApproved,
		Day:       domain.DayFriday,
		WeekendOf: CurrentWeekendFriday(time.Now()),
	}
	svc := NewPartyService(repo, nil, "")

	parties, err := svc.List(context.Background(), "sunday")
	require.NoError(t, err)
	assert.Empty(t, parties)

	parties, err = svc.List(context.Background(), "friday")
	require.NoError(t, err)
	assert.Len(t, parties, 1)

	parties, err = svc.List(context.Background(), "")
	require.NoError(t, err)
	assert.Len(t, parties, 1)
}

func TestPartyService_Delete(t *testing.T) {
	repo := newFakePartyRepo()
	repo.byID["p1"] = &domain.Party{ID: "p1", CreatedBy: "owner"}
	svc := NewPartyService(repo, nil, "")

	err := svc.Delete(context.Background(), "p1", "someone-else")
	assert.ErrorIs(t, err, domain.ErrForbidden)
	assert.Contains(t, repo.byID, "p1")

	err = svc.Delete(context.Background(), "missing", "owner")
	assert.ErrorIs(t, err, domain.ErrNotFound)

	err = svc.Delete(context.Background(), "p1", "owner")
	require.NoError(t, err)
	assert.NotContains(t, repo.byID, "p1")
}
