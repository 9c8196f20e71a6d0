package services

import (
	"context"
	"sync"
	"time"

	"campusparties/internal/domain"
)

// fakePartyRepo implements domain.PartyRepository for tests. Calls are
// synchronized so concurrency tests can share one instance across goroutines.
type fakePartyRepo struct {
	mu        sync.Mutex
	byID      map[string]*domain.Party
	createErr error
	updateErr error
	deleted   []string
}

func newFakePartyRepo() *fakePartyRepo {
	return &fakePartyRepo{byID: make(map[string]*domain.Party)}
}

func (f *fakePartyRepo) Create(ctx context.Context, party *domain.Party) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.createErr != nil {
		return f.createErr
	}
	f.byID[party.ID] = party
	return nil
}

func (f *fakePartyRepo) GetByID(ctx context.Context, id string) (*domain.Party, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if p, ok := f.byID[id]; ok {
		cp := *p
		return &cp, nil
	}
	return nil, domain.ErrNotFound
}

func (f *fakePartyRepo) ListApproved(ctx context.Context, weekendOf time.Time, day domain.Day) ([]*domain.Party, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*domain.Party
	for _, p := range f.byID {
		if p.Status != domain.StatusApproved || !p.WeekendOf.Equal(weekendOf) {
			continue
		}
		if day != "" && p.Day != day {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

func (f *fakePartyRepo) ListByStatus(ctx context.Context, status domain.Status) ([]*domain.Party, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	var out []*domain.Party
	for _, p := range f.byID {
		if p.Status == status {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakePartyRepo) Delete(ctx context.Context, id string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if _, ok := f.byID[id]; !ok {
		return domain.ErrNotFound
	}
	delete(f.byID, id)
	f.deleted = append(f.deleted, id)
	return nil
}

func (f *fakePartyRepo) UpdateStatus(ctx context.Context, id string, status domain.Status) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.updateErr != nil {
		return f.updateErr
	}
	p, ok := f.byID[id]
	if !ok {
		return domain.ErrNotFound
	}
	p.Status = status
	return nil
}

func (f *fakePartyRepo) UpdateGoingCount(ctx context.Context, id string, count int) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.updateErr != nil {
		return f.updateErr
	}
	p, ok := f.byID[id]
	if !ok {
		return domain.ErrNotFound
	}
	p.GoingCount = count
	return nil
}

// fakeAttendanceRepo implements domain.AttendanceRepository for tests. Calls
// are synchronized like fakePartyRepo's.
type fakeAttendanceRepo struct {
	mu     sync.Mutex
	rows   map[string]map[string]bool // partyID -> userID -> present
	errOut error
}

func newFakeAttendanceRepo() *fakeAttendanceRepo {
	return &fakeAttendanceRepo{rows: make(map[string]map[string]bool)}
}

func (f *fakeAttendanceRepo) Exists(ctx context.Context, partyID, userID string) (bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.errOut != nil {
		return false, f.errOut
	}
	return f.rows[partyID][userID], nil
}

func (f *fakeAttendanceRepo) Insert(ctx context.Context, partyID, userID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.errOut != nil {
		return f.errOut
	}
	if f.rows[partyID] == nil {
		f.rows[partyID] = make(map[string]bool)
	}
	f.rows[partyID][userID] = true
	return nil
}

func (f *fakeAttendanceRepo) Delete(ctx context.Context, partyID, userID string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.errOut != nil {
		return f.errOut
	}
	delete(f.rows[partyID], userID)
	return nil
}

func (f *fakeAttendanceRepo) CountByParty(ctx context.Context, partyID string) (int, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.errOut != nil {
		return 0, f.errOut
	}
	return len(f.rows[partyID]), nil
}

func (f *fakeAttendanceRepo) ListPartyIDsByUser(ctx context.Context, userID string) ([]string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.errOut != nil {
		return nil, f.errOut
	}
	ids := []string{}
	for partyID, users := range f.rows {
		if users[userID] {
			ids = append(ids, partyID)
		}
	}
	return ids, nil
}

// fakeProfileRepo implements domain.ProfileRepository for tests.
type fakeProfileRepo struct {
	byID      map[string]*domain.Profile
	getErr    error
	createErr error
	updated   map[string]string
}

func newFakeProfileRepo() *fakeProfileRepo {
	return &fakeProfileRepo{
		byID:    make(map[string]*domain.Profile),
		updated: make(map[string]string),
	}
}

func (f *fakeProfileRepo) GetByID(ctx context.Context, id string) (*domain.Profile, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	if p, ok := f.byID[id]; ok {
		cp := *p
		return &cp, nil
	}
	return nil, domain.ErrProfileNotFound
}

func (f *fakeProfileRepo) Create(ctx context.Context, profile *domain.Profile) error {
	if f.createErr != nil {
		return f.createErr
	}
	f.byID[profile.ID] = profile
	return nil
}

func (f *fakeProfileRepo) UpdateUsername(ctx context.Context, id, username string) error {
	p, ok := f.byID[id]
	if !ok {
		return domain.ErrProfileNotFound
	}
	p.Username = username
	f.updated[id] = username
	return nil
}

// fakeIdentityProvider implements domain.IdentityProvider for tests.
type fakeIdentityProvider struct {
	sentTo []string
	err    error
}

func (f *fakeIdentityProvider) SendMagicLink(ctx context.Context, email string) error {
	if f.err != nil {
		return f.err
	}
	f.sentTo = append(f.sentTo, email)
	return nil
}

// fakeEmailService implements domain.EmailService for tests.
type fakeEmailService struct {
	sentTo []string
	data   []*domain.PendingPartyEmailData
	err    error
}

func (f *fakeEmailService) SendPendingPartyNotice(ctx context.Context, to string, data *domain.PendingPartyEmailData) error {
	if f.err != nil {
		return f.err
	}
	f.sentTo = append(f.sentTo, to)
	f.data = append(f.data, data)
	return nil
}
