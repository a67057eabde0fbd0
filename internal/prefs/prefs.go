// Package prefs persists the small set of user preferences the front-ends
// remember between runs: the API key and the display language.
package prefs

import (
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"fileparse/internal/errors"

	"gopkg.in/yaml.v3"
)

// Fixed keys shared by every front-end.
const (
	KeyAPIKey   = "apiKey"
	KeyLanguage = "language"
)

// Store is a string key-value store.
type Store interface {
	Get(key string) (string, bool)
	Set(key, value string) error
	Delete(key string) error
}

// FileStore keeps preferences in a YAML file. The file holds a credential,
// so it is written with mode 0600.
type FileStore struct {
	path   string
	mu     sync.Mutex
	values map[string]string
}

// OpenFile loads the store at path. A missing file yields an empty store.
func OpenFile(path string) (*FileStore, error) {
	s := &FileStore{path: path, values: make(map[string]string)}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		if os.IsPermission(err) {
			return nil, errors.NewFileError("cannot read preferences", path, errors.FileAccessDenied, err)
		}
		return nil, fmt.Errorf("error reading preferences: %w", err)
	}

	if err := yaml.Unmarshal(data, &s.values); err != nil {
		return nil, errors.NewConfigError("error parsing preferences", path, errors.InvalidConfig, err)
	}
	if s.values == nil {
		s.values = make(map[string]string)
	}
	return s, nil
}

// Path returns the backing file location.
func (s *FileStore) Path() string {
	return s.path
}

func (s *FileStore) Get(key string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.values[key]
	return v, ok
}

func (s *FileStore) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
	return s.flush()
}

func (s *FileStore) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.values[key]; !ok {
		return nil
	}
	delete(s.values, key)
	return s.flush()
}

// flush writes the file through a temp file so a crash never leaves it half
// written. Callers hold s.mu.
func (s *FileStore) flush() error {
	if err := os.MkdirAll(filepath.Dir(s.path), 0700); err != nil {
		return fmt.Errorf("failed to create preferences directory: %w", err)
	}

	data, err := yaml.Marshal(s.values)
	if err != nil {
		return fmt.Errorf("failed to marshal preferences: %w", err)
	}

	tmp, err := os.CreateTemp(filepath.Dir(s.path), ".prefs-*")
	if err != nil {
		return fmt.Errorf("failed to write preferences: %w", err)
	}
	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to write preferences: %w", err)
	}
	if err := tmp.Chmod(0600); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to write preferences: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to write preferences: %w", err)
	}
	return os.Rename(tmp.Name(), s.path)
}

// MemoryStore is an in-memory Store, used in tests and when no file is
// available.
type MemoryStore struct {
	mu     sync.Mutex
	values map[string]string
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{values: make(map[string]string)}
}

func (s *MemoryStore) Get(key string) (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	v, ok := s.values[key]
	return v, ok
}

func (s *MemoryStore) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.values[key] = value
	return nil
}

func (s *MemoryStore) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	delete(s.values, key)
	return nil
}

// Overlay reads from an override map first and falls back to the wrapped
// store. Writes go to the wrapped store. It lets FILEPARSE_API_KEY take
// precedence without ever being persisted.
type Overlay struct {
	Store
	overrides map[string]string
}

func NewOverlay(base Store, overrides map[string]string) *Overlay {
	clean := make(map[string]string, len(overrides))
	for k, v := range overrides {
		if v != "" {
			clean[k] = v
		}
	}
	return &Overlay{Store: base, overrides: clean}
}

func (o *Overlay) Get(key string) (string, bool) {
	if v, ok := o.overrides[key]; ok {
		return v, true
	}
	return o.Store.Get(key)
}
