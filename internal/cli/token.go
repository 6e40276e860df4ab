package cli

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// TokenStore keeps the access token between invocations under Dir.
type TokenStore struct {
	Dir string
}

// DefaultTokenStore stores the token in $HOME/.marketctl.
func DefaultTokenStore() (*TokenStore, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return nil, fmt.Errorf("locate home directory: %w", err)
	}
	return &TokenStore{Dir: filepath.Join(home, ".marketctl")}, nil
}

func (s *TokenStore) path() string { return filepath.Join(s.Dir, "token") }

func (s *TokenStore) Save(token string) error {
	if err := os.MkdirAll(s.Dir, 0o700); err != nil {
		return fmt.Errorf("create token dir: %w", err)
	}
	return os.WriteFile(s.path(), []byte(strings.TrimSpace(token)+"\n"), 0o600)
}

// Load returns the stored token, or "" when none was saved yet.
func (s *TokenStore) Load() (string, error) {
	b, err := os.ReadFile(s.path())
	if errors.Is(err, os.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", fmt.Errorf("read token: %w", err)
	}
	return strings.TrimSpace(string(b)), nil
}
