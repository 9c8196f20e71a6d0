package services

import (
	"context"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"

	"campusparties/internal/domain"
)

const (
	minUsernameLen = 2
	maxUsernameLen = 50
)

var emailRegexp = regexp.MustCompile(`^[a-zA-Z0-9._%+-]+@[a-zA-Z0-9.-]+\.[a-zA-Z]{2,}$`)

type profileService struct {
	profileRepo      domain.ProfileRepository
	identityProvider domain.IdentityProvider
	allowedDomain    string
}

// NewProfileService creates a ProfileService. allowedDomain is the
// institutional email domain (e.g. "temple.edu") that signup is restricted to.
func NewProfileService(profileRepo domain.ProfileRepository, identityProvider domain.IdentityProvider, allowedDomain string) domain.ProfileService {
	return &profileService{
		profileRepo:      profileRepo,
		identityProvider: identityProvider,
		allowedDomain:    strings.ToLower(allowedDomain),
	}
}

func (s *profileService) Signup(ctx context.Context, email string) error {
	email = strings.TrimSpace(strings.ToLower(email))
	if !emailRegexp.MatchString(email) {
		return fmt.Errorf("%w: invalid email format", domain.ErrInvalidInput)
	}
	// Exact suffix match including the "@" so subdomains and lookalike
	// domains are rejected.
	if !strings.HasSuffix(email, "@"+s.allowedDomain) {
		return fmt.Errorf("%w: only @%s email addresses are allowed", domain.ErrInvalidInput, s.allowedDomain)
	}
	if err := s.identityProvider.SendMagicLink(ctx, email); err != nil {
		return fmt.Errorf("send magic link: %w", err)
	}
	return nil
}

func (s *profileService) SetUsername(ctx context.Context, identityID, username string) (string, error) {
	username = strings.TrimSpace(username)
	// Character bounds, not bytes, matching the VARCHAR(50) column.
	if utf8.RuneCountInString(username) < minUsernameLen {
		return "", fmt.Errorf("%w: username must be at least %d characters", domain.ErrInvalidInput, minUsernameLen)
	}
	if utf8.RuneCountInString(username) > maxUsernameLen {
		return "", fmt.Errorf("%w: username must be %d characters or less", domain.ErrInvalidInput, maxUsernameLen)
	}

	_, err := s.profileRepo.GetByID(ctx, identityID)
	switch {
	case err == nil:
		if err := s.profileRepo.UpdateUsername(ctx, identityID, username); err != nil {
			return "", fmt.Errorf("update username: %w", err)
		}
	case errors.Is(err, domain.ErrProfileNotFound):
		// First username assignment creates the profile. The admin flag is
		// hardcoded here and never copied from client input.
		profile := &domain.Profile{
			ID:        identityID,
			Username:  username,
			IsAdmin:   false,
			CreatedAt: time.Now(),
		}
		if err := s.profileRepo.Create(ctx, profile); err != nil {
			return "", fmt.Errorf("create profile: %w", err)
		}
	default:
		return "", fmt.Errorf("get profile: %w", err)
	}
	return username, nil
}

func (s *profileService) GetByID(ctx context.Context, identityID string) (*domain.Profile, error) {
	profile, err := s.profileRepo.GetByID(ctx, identityID)
	if err != nil {
		if errors.Is(err, domain.ErrProfileNotFound) {
			return nil, domain.ErrProfileNotFound
		}
		return nil, fmt.Errorf("get profile: %w", err)
	}
	return profile, nil
}

func (s *profileService) IsAdmin(ctx context.Context, identityID string) (bool, error) {
	profile, err := s.profileRepo.GetByID(ctx, identityID)
	if err != nil {
		if errors.Is(err, domain.ErrProfileNotFound) {
			// Identities without a profile are never admins.
			return false, nil
		}
		return false, fmt.Errorf("get profile: %w", err)
	}
	return profile.IsAdmin, nil
}
