// Package credstore holds the current access and refresh token strings.
//
// Tokens are opaque: the store never inspects or validates them. Either both
// tokens are empty (logged out) or the access token is non-empty (logged
// in); the refresh token may be empty even when logged in, when the server
// did not issue one.
package credstore

import (
	"encoding/json"
	"os"
	"path/filepath"

	"golang.org/x/oauth2"
)

// Kind selects one of the two stored tokens.
type Kind string

const (
	// Access is the short-lived token sent as the bearer header.
	Access Kind = "access"

	// Refresh is the longer-lived token used to renew the access token.
	Refresh Kind = "refresh"
)

// Store is the credential holder shared by the request client and the
// session manager.
//
// Get is best-effort: a missing or unreadable backing file reads as empty,
// mirroring how the browser original read absent localStorage keys.
type Store interface {
	// Get returns the stored token of the given kind, or "" if unset.
	Get(kind Kind) string

	// Set stores a token. An empty value deletes that token.
	Set(kind Kind, value string) error

	// Clear removes both tokens unconditionally.
	Clear() error
}

// FileStore persists tokens as a JSON file in the oauth2 token shape,
// mode 0600. It survives process restarts within the same config dir.
// Writes are last-writer-wins; there is no cross-process locking.
type FileStore struct {
	path string
}

// NewFileStore creates a store backed by the file at path.
func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

// Get implements Store.
func (s *FileStore) Get(kind Kind) string {
	tok := s.load()
	switch kind {
	case Refresh:
		return tok.RefreshToken
	default:
		return tok.AccessToken
	}
}

// Set implements Store.
func (s *FileStore) Set(kind Kind, value string) error {
	tok := s.load()
	switch kind {
	case Refresh:
		tok.RefreshToken = value
	default:
		tok.AccessToken = value
	}
	return s.save(tok)
}

// Clear implements Store.
func (s *FileStore) Clear() error {
	err := os.Remove(s.path)
	if os.IsNotExist(err) {
		return nil
	}
	return err
}

func (s *FileStore) load() oauth2.Token {
	var tok oauth2.Token
	data, err := os.ReadFile(s.path)
	if err != nil {
		return tok
	}
	// Corrupt files read as logged out rather than failing every request.
	_ = json.Unmarshal(data, &tok)
	return tok
}

func (s *FileStore) save(tok oauth2.Token) error {
	if tok.AccessToken == "" && tok.RefreshToken == "" {
		return s.Clear()
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0700); err != nil {
		return err
	}
	data, err := json.MarshalIndent(&tok, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.path, data, 0600)
}
