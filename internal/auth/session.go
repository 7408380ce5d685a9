package auth

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/hanshat/infinitunes/internal/shared"
	"golang.org/x/oauth2"
)

// Session couples a provider token with the resolved profile so a
// sign-in survives across runs.
type Session struct {
	Profile  Profile       `json:"profile"`
	Token    *oauth2.Token `json:"token"`
	SignedIn time.Time     `json:"signed_in"`
}

// sessionDir returns the directory sessions are stored in, creating it
// when missing.
func sessionDir() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve home directory: %w", err)
	}

	dir := filepath.Join(home, ".infinitunes")
	if err := os.MkdirAll(dir, 0700); err != nil {
		return "", fmt.Errorf("failed to create session directory: %w", err)
	}

	return dir, nil
}

// SessionPath returns the on-disk path for a provider's session file.
func SessionPath(p Provider) (string, error) {
	dir, err := sessionDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(dir, fmt.Sprintf("session_%s.json", p)), nil
}

// SaveSession writes the session to disk with owner-only permissions.
func SaveSession(s *Session) error {
	path, err := SessionPath(s.Profile.Provider)
	if err != nil {
		return err
	}

	data, err := shared.MarshalJSON(s, true)
	if err != nil {
		return err
	}

	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to save session: %w", err)
	}

	return nil
}

// LoadSession reads a stored session for the provider. Returns
// [shared.ErrAuthFailed] when no session exists.
func LoadSession(p Provider) (*Session, error) {
	path, err := SessionPath(p)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: not signed in with %s", shared.ErrAuthFailed, p)
		}
		return nil, fmt.Errorf("failed to read session: %w", err)
	}

	var session Session
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, fmt.Errorf("failed to parse session: %w", err)
	}

	return &session, nil
}

// ClearSession removes a stored session. Removing a session that does
// not exist is not an error.
func ClearSession(p Provider) error {
	path, err := SessionPath(p)
	if err != nil {
		return err
	}

	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("failed to remove session: %w", err)
	}

	return nil
}
