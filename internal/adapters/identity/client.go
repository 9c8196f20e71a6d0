package identity

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"

	"campusparties/internal/domain"
)

type httpProvider struct {
	client  *http.Client
	baseURL string
	apiKey  string
}

// NewHTTPProvider returns an IdentityProvider that calls the external identity
// service's REST API. baseURL is the auth endpoint root (e.g.
// "https://xyz.supabase.co/auth/v1"); apiKey is sent with every request.
func NewHTTPProvider(client *http.Client, baseURL, apiKey string) domain.IdentityProvider {
	if client == nil {
		client = http.DefaultClient
	}
	return &httpProvider{client: client, baseURL: baseURL, apiKey: apiKey}
}

type otpRequest struct {
	Email      string `json:"email"`
	CreateUser bool   `json:"create_user"`
}

type providerError struct {
	Msg     string `json:"msg"`
	Message string `json:"message"`
}

func (p *httpProvider) SendMagicLink(ctx context.Context, email string) error {
	body, err := json.Marshal(otpRequest{Email: email, CreateUser: true})
	if err != nil {
		return fmt.Errorf("failed to encode otp request: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.baseURL+"/otp", bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if p.apiKey != "" {
		req.Header.Set("apikey", p.apiKey)
	}

	resp, err := p.client.Do(req)
	if err != nil {
		return fmt.Errorf("failed to reach identity provider: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	var pe providerError
	if err := json.NewDecoder(resp.Body).Decode(&pe); err == nil {
		if pe.Msg != "" {
			return fmt.Errorf("identity provider: %s", pe.Msg)
		}
		if pe.Message != "" {
			return fmt.Errorf("identity provider: %s", pe.Message)
		}
	}
	return fmt.Errorf("identity provider returned status: %d", resp.StatusCode)
}
