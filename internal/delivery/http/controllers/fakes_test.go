package controllers

import (
	"context"
	"io"
	"log/slog"
	"net/http"

	"campusparties/internal/delivery/http/middleware"
	"campusparties/internal/domain"
)

// testLogger is a no-op logger for controller tests so we don't assert on log output.
var testLogger = slog.New(slog.NewTextHandler(io.Discard, &slog.HandlerOptions{Level: slog.LevelError}))

// withIdentity sets a verified identity on the request context, as the auth
// middleware would.
func withIdentity(r *http.Request, id, email string) *http.Request {
	return r.WithContext(middleware.SetIdentity(r.Context(), &domain.Identity{ID: id, Email: email}))
}

// fakeProfileService implements domain.ProfileService for controller tests.
type fakeProfileService struct {
	signupErr      error
	setUsernameErr error
	profile        *domain.Profile
	getErr         error
	admins         map[string]bool
	isAdminErr     error
	lastSignup     string
	lastUsername   string
}

func (f *fakeProfileService) Signup(ctx context.Context, email string) error {
	f.lastSignup = email
	return f.signupErr
}

func (f *fakeProfileService) SetUsername(ctx context.Context, identityID, username string) (string, error) {
	if f.setUsernameErr != nil {
		return "", f.setUsernameErr
	}
	f.lastUsername = username
	return username, nil
}

func (f *fakeProfileService) GetByID(ctx context.Context, identityID string) (*domain.Profile, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.profile, nil
}

func (f *fakeProfileService) IsAdmin(ctx context.Context, identityID string) (bool, error) {
	if f.isAdminErr != nil {
		return false, f.isAdminErr
	}
	return f.admins[identityID], nil
}

// fakePartyService implements domain.PartyService for controller tests.
type fakePartyService struct {
	parties   []*domain.Party
	listErr   error
	party     *domain.Party
	getErr    error
	created   *domain.Party
	createErr error
	deleteErr error
	lastInput domain.CreatePartyInput
	lastDay   string
}

func (f *fakePartyService) List(ctx context.Context, day string) ([]*domain.Party, error) {
	f.lastDay = day
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.parties, nil
}

func (f *fakePartyService) GetByID(ctx context.Context, id string) (*domain.Party, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.party, nil
}

func (f *fakePartyService) Create(ctx context.Context, input domain.CreatePartyInput, creatorID string) (*domain.Party, error) {
	f.lastInput = input
	if f.createErr != nil {
		return nil, f.createErr
	}
	return f.created, nil
}

func (f *fakePartyService) Delete(ctx context.Context, id, callerID string) error {
	return f.deleteErr
}

// fakeAttendanceService implements domain.AttendanceService for controller tests.
type fakeAttendanceService struct {
	going     bool
	count     int
	toggleErr error
	anonErr   error
	ids       []string
	listErr   error
}

func (f *fakeAttendanceService) Toggle(ctx context.Context, partyID, userID string) (bool, int, error) {
	if f.toggleErr != nil {
		return false, 0, f.toggleErr
	}
	return f.going, f.count, nil
}

func (f *fakeAttendanceService) AnonymousGoing(ctx context.Context, partyID string) (int, error) {
	if f.anonErr != nil {
		return 0, f.anonErr
	}
	return f.count, nil
}

func (f *fakeAttendanceService) ListPartyIDsByUser(ctx context.Context, userID string) ([]string, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.ids, nil
}

// fakeModerationService implements domain.ModerationService for controller tests.
type fakeModerationService struct {
	pending    []*domain.Party
	listErr    error
	approveErr error
	rejectErr  error
	approved   []string
	rejected   []string
}

func (f *fakeModerationService) ListPending(ctx context.Context) ([]*domain.Party, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.pending, nil
}

func (f *fakeModerationService) Approve(ctx context.Context, id string) error {
	if f.approveErr != nil {
		return f.approveErr
	}
	f.approved = append(f.approved, id)
	return nil
}

func (f *fakeModerationService) Reject(ctx context.Context, id string) error {
	if f.rejectErr != nil {
		return f.rejectErr
	}
	f.rejected = append(f.rejected, id)
	return nil
}
