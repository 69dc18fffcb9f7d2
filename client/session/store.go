package session

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/itsatony/smartrooms/client"
)

// ErrNoSession is returned by Store.Load when nothing is stored
var ErrNoSession = errors.New("no stored session")

// Store persists the logged in user between runs
type Store interface {
	Load() (*client.User, error)
	Save(user *client.User) error
	Clear() error
}

// FileStore keeps the user as JSON in a single file
type FileStore struct {
	path string
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

func (s *FileStore) Load() (*client.User, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrNoSession
	}
	if err != nil {
		return nil, fmt.Errorf("failed to read session: %w", err)
	}
	var user client.User
	if err := json.Unmarshal(data, &user); err != nil {
		return nil, fmt.Errorf("corrupt session file %s: %w", s.path, err)
	}
	return &user, nil
}

// Save writes to a temporary file and renames it so a crash never leaves a partial session
func (s *FileStore) Save(user *client.User) error {
	data, err := json.Marshal(user)
	if err != nil {
		return err
	}
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0700); err != nil {
		return fmt.Errorf("failed to create session directory: %w", err)
	}
	tmp, err := os.CreateTemp(dir, ".session-*")
	if err != nil {
		return fmt.Errorf("failed to write session: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to write session: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to write session: %w", err)
	}
	return os.Rename(tmp.Name(), s.path)
}

func (s *FileStore) Clear() error {
	if err := os.Remove(s.path); err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}
	return nil
}

// MemoryStore keeps the session in memory only
type MemoryStore struct {
	mu   sync.Mutex
	data []byte
}

func (s *MemoryStore) Load() (*client.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.data == nil {
		return nil, ErrNoSession
	}
	var user client.User
	if err := json.Unmarshal(s.data, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (s *MemoryStore) Save(user *client.User) error {
	data, err := json.Marshal(user)
	if err != nil {
		return err
	}
	s.mu.Lock()
	s.data = data
	s.mu.Unlock()
	return nil
}

func (s *MemoryStore) Clear() error {
	s.mu.Lock()
	s.data = nil
	s.mu.Unlock()
	return nil
}
