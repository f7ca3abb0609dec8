// Package session implements the authenticated-session model: a
// persistent single-slot credential store, an unverified claims
// decoder, a service that derives identity from the two, and a role
// guard for protected surfaces.
package session

import (
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"sync"
)

// Store persists a single opaque bearer credential. It is a dumb slot:
// no validation, no expiry tracking. Get returns "" when nothing is
// stored; storage-level failures propagate as errors.
type Store interface {
	Save(credential string) error
	Get() (string, error)
	Clear() error
}

const credentialFileName = "credential"

// FileStore keeps the credential in a single file, the local analogue
// of the browser's localStorage slot: it survives restarts and is
// shared by every process pointed at the same path. Another process
// clearing the file is not observed reactively; a stale holder keeps
// reading whatever the file says next time it asks.
type FileStore struct {
	path string
}

// NewFileStore returns a FileStore rooted at dir.
func NewFileStore(dir string) *FileStore {
	return &FileStore{path: filepath.Join(dir, credentialFileName)}
}

// DefaultFileStore places the credential under the user config
// directory (e.g. ~/.config/tecnifix).
func DefaultFileStore() (*FileStore, error) {
	base, err := os.UserConfigDir()
	if err != nil {
		return nil, err
	}
	return NewFileStore(filepath.Join(base, "tecnifix")), nil
}

// Path returns the backing file path.
func (s *FileStore) Path() string { return s.path }

// Save implements Store.
func (s *FileStore) Save(credential string) error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0o700); err != nil {
		return err
	}
	return os.WriteFile(s.path, []byte(credential), 0o600)
}

// Get implements Store.
func (s *FileStore) Get() (string, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return "", nil
	}
	if err != nil {
		return "", err
	}
	return string(data), nil
}

// Clear implements Store. Clearing an empty store is a no-op.
func (s *FileStore) Clear() error {
	err := os.Remove(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		return nil
	}
	return err
}

// MemoryStore is an in-memory Store for tests and short-lived tools.
type MemoryStore struct {
	mu         sync.Mutex
	credential string
}

// Save implements Store.
func (s *MemoryStore) Save(credential string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.credential = credential
	return nil
}

// Get implements Store.
func (s *MemoryStore) Get() (string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.credential, nil
}

// Clear implements Store.
func (s *MemoryStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.credential = ""
	return nil
}
