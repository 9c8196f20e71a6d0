package domain

import (
	"context"
	"errors"
	"time"
)

// ErrProfileNotFound is returned when no profile row exists for an identity.
var ErrProfileNotFound = errors.New("profile not found")

// Profile is the application-level record for an identity. IsAdmin is fixed
// server-side at creation and is never settable through the API.
type Profile struct {
	ID        string    `json:"id"`
	Username  string    `json:"username"`
	IsAdmin   bool      `json:"isAdmin"`
	CreatedAt time.Time `json:"createdAt"`
}

// ProfileRepository defines storage operations for profiles.
type ProfileRepository interface {
	GetByID(ctx context.Context, id string) (*Profile, error)
	Create(ctx context.Context, profile *Profile) error
	UpdateUsername(ctx context.Context, id, username string) error
}

// ProfileService defines profile and signup business logic.
type ProfileService interface {
	// Signup asks the identity provider to send a magic link. Only emails on
	// the institutional domain are accepted.
	Signup(ctx context.Context, email string) error
	// SetUsername creates the profile on first use (is_admin always false)
	// or updates the username of an existing profile.
	SetUsername(ctx context.Context, identityID, username string) (string, error)
	// GetByID returns the profile for an identity, or ErrProfileNotFound.
	GetByID(ctx context.Context, identityID string) (*Profile, error)
	// IsAdmin reports whether the identity has a profile with the admin flag
	// set. Identities without a profile are never admins.
	IsAdmin(ctx context.Context, identityID string) (bool, error)
}
