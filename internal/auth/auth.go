// Package auth implements social sign-in against Google and GitHub.
//
// It builds [oauth2.Config] values from credentials in the application
// config, resolves user profiles after the authorization code exchange,
// and persists sessions to disk so sign-in survives across runs. The
// local callback server lives in the server package; the CLI wires the
// two together.
package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/hanshat/infinitunes/internal/shared"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/endpoints"
)

// Provider identifies a supported sign-in provider.
type Provider string

const (
	ProviderGoogle Provider = "google"
	ProviderGitHub Provider = "github"
)

// ParseProvider converts a user-supplied provider name into a [Provider].
func ParseProvider(s string) (Provider, error) {
	switch Provider(s) {
	case ProviderGoogle, ProviderGitHub:
		return Provider(s), nil
	default:
		return "", fmt.Errorf("%w: %q (expected google or github)", shared.ErrUnknownProvider, s)
	}
}

// Profile is the identity a provider reports after sign-in.
type Profile struct {
	Provider Provider `json:"provider"`
	ID       string   `json:"id"`
	Name     string   `json:"name"`
	Email    string   `json:"email"`
	Avatar   string   `json:"avatar,omitempty"`
}

// Authenticator resolves OAuth2 configs and user profiles for the
// supported providers.
type Authenticator struct {
	httpClient *http.Client
	profileURL map[Provider]string
}

// NewAuthenticator creates an [Authenticator]. A nil client defaults to
// one with a 15 second timeout.
func NewAuthenticator(client *http.Client) *Authenticator {
	if client == nil {
		client = &http.Client{Timeout: 15 * time.Second}
	}
	return &Authenticator{
		httpClient: client,
		profileURL: map[Provider]string{
			ProviderGoogle: "https://www.googleapis.com/oauth2/v2/userinfo",
			ProviderGitHub: "https://api.github.com/user",
		},
	}
}

// Config builds the [oauth2.Config] for the given provider from the
// application config. Client ID and secret must both be set.
func (a *Authenticator) Config(p Provider, cfg *shared.Config) (*oauth2.Config, error) {
	var creds shared.ProviderConfig
	var endpoint oauth2.Endpoint
	var scopes []string

	switch p {
	case ProviderGoogle:
		creds = cfg.Credentials.Google
		endpoint = endpoints.Google
		scopes = []string{"openid", "email", "profile"}
	case ProviderGitHub:
		creds = cfg.Credentials.GitHub
		endpoint = endpoints.GitHub
		scopes = []string{"read:user", "user:email"}
	default:
		return nil, fmt.Errorf("%w: %q", shared.ErrUnknownProvider, p)
	}

	if creds.ClientID == "" || creds.ClientSecret == "" {
		return nil, fmt.Errorf("%w: %s client_id and client_secret are required", shared.ErrMissingCredentials, p)
	}

	redirect := creds.RedirectURI
	if redirect == "" {
		redirect = fmt.Sprintf("http://%s:%d/callback", cfg.Server.Host, cfg.Server.Port)
	}

	return &oauth2.Config{
		ClientID:     creds.ClientID,
		ClientSecret: creds.ClientSecret,
		Endpoint:     endpoint,
		RedirectURL:  redirect,
		Scopes:       scopes,
	}, nil
}

// Profile fetches the signed-in user's profile from the provider using
// the exchanged token.
func (a *Authenticator) Profile(ctx context.Context, p Provider, token *oauth2.Token) (*Profile, error) {
	url, ok := a.profileURL[p]
	if !ok {
		return nil, fmt.Errorf("%w: %q", shared.ErrUnknownProvider, p)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create profile request: %w", err)
	}
	token.SetAuthHeader(req)
	req.Header.Set("Accept", "application/json")

	resp, err := a.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", shared.ErrAuthFailed, err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read profile response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, fmt.Errorf("%w: profile request returned %d", shared.ErrAuthFailed, resp.StatusCode)
	}

	return decodeProfile(p, body)
}

// decodeProfile maps a provider's user payload onto [Profile].
func decodeProfile(p Provider, body []byte) (*Profile, error) {
	switch p {
	case ProviderGoogle:
		var raw struct {
			ID      string `json:"id"`
			Name    string `json:"name"`
			Email   string `json:"email"`
			Picture string `json:"picture"`
		}
		if err := json.Unmarshal(body, &raw); err != nil {
			return nil, fmt.Errorf("failed to decode google profile: %w", err)
		}
		return &Profile{Provider: p, ID: raw.ID, Name: raw.Name, Email: raw.Email, Avatar: raw.Picture}, nil
	case ProviderGitHub:
		var raw struct {
			ID        int64  `json:"id"`
			Login     string `json:"login"`
			Name      string `json:"name"`
			Email     string `json:"email"`
			AvatarURL string `json:"avatar_url"`
		}
		if err := json.Unmarshal(body, &raw); err != nil {
			return nil, fmt.Errorf("failed to decode github profile: %w", err)
		}
		name := raw.Name
		if name == "" {
			name = raw.Login
		}
		return &Profile{
			Provider: p,
			ID:       fmt.Sprintf("%d", raw.ID),
			Name:     name,
			Email:    raw.Email,
			Avatar:   raw.AvatarURL,
		}, nil
	default:
		return nil, fmt.Errorf("%w: %q", shared.ErrUnknownProvider, p)
	}
}

// SetProfileURL overrides the profile endpoint for a provider.
func (a *Authenticator) SetProfileURL(p Provider, url string) {
	a.profileURL[p] = url
}
