package client

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// ErrNoSession is returned by TokenStore.Load when nobody is logged in.
var ErrNoSession = errors.New("no saved session, run signup or login first")

// Session is the locally persisted login state.
type Session struct {
	URL   string `json:"url"`
	Email string `json:"email"`
	Token string `json:"token"`
}

// TokenStore keeps a Session in a JSON file readable only by its owner.
type TokenStore struct {
	Path string
}

// DefaultTokenPath returns ~/.workouts/session.json, or session.json in the
// working directory when the home directory is unknown.
func DefaultTokenPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "session.json"
	}
	return filepath.Join(home, ".workouts", "session.json")
}

func (s *TokenStore) Load() (*Session, error) {
	data, err := os.ReadFile(s.Path)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return nil, ErrNoSession
		}
		return nil, err
	}

	var sess Session
	if err := json.Unmarshal(data, &sess); err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", s.Path, err)
	}
	if sess.Token == "" {
		return nil, ErrNoSession
	}
	return &sess, nil
}

func (s *TokenStore) Save(sess *Session) error {
	if dir := filepath.Dir(s.Path); dir != "." {
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return err
		}
	}
	data, err := json.MarshalIndent(sess, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.Path, data, 0o600)
}

// Clear removes the saved session. A missing file is not an error.
func (s *TokenStore) Clear() error {
	if err := os.Remove(s.Path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}
