package domain

import "context"

// Identity is the verified caller extracted from a bearer token. The identity
// provider owns the account; this service never stores emails or credentials.
type Identity struct {
	ID    string `json:"id"`
	Email string `json:"email"`
}

// IdentityVerifier verifies a bearer token and returns the identity it carries.
type IdentityVerifier interface {
	Verify(token string) (*Identity, error)
}

// IdentityProvider covers the outbound calls made to the external identity
// service. SendMagicLink asks the provider to email a sign-in link, creating
// the account on first use.
type IdentityProvider interface {
	SendMagicLink(ctx context.Context, email string) error
}
