// Package kv is folio's local key-value storage: a flat string map persisted
// as YAML.
package kv

import (
	"os"
	"path/filepath"
	"sort"
	"sync"

	"gopkg.in/yaml.v3"

	"folio/internal/errors"
	"folio/internal/log"
)

// Store is a string key-value store.
type Store interface {
	Get(key string) (string, bool)
	Set(key, value string) error
	Delete(key string) error
	Keys() []string
}

// DefaultPath returns ~/.config/folio/state.yaml.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", errors.Wrap(err, "failed to get user home directory")
	}
	return filepath.Join(home, ".config", "folio", "state.yaml"), nil
}

// FileStore keeps the map in memory and rewrites the whole file on every
// change.
type FileStore struct {
	mu   sync.RWMutex
	path string
	data map[string]string
}

// Open loads the store at path. A missing file is an empty store; the file
// is created on the first write.
func Open(path string) (*FileStore, error) {
	s := &FileStore{path: path, data: map[string]string{}}

	raw, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		return s, nil
	}
	if err != nil {
		return nil, errors.NewStorageError("failed to read state file", path, errors.StorageReadFailed, err)
	}
	if err := yaml.Unmarshal(raw, &s.data); err != nil {
		return nil, errors.NewStorageError("failed to parse state file", path, errors.StorageReadFailed, err)
	}
	if s.data == nil {
		s.data = map[string]string{}
	}
	return s, nil
}

// Path returns the backing file.
func (s *FileStore) Path() string { return s.path }

func (s *FileStore) Get(key string) (string, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	v, ok := s.data[key]
	return v, ok
}

func (s *FileStore) Set(key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev, had := s.data[key]
	s.data[key] = value
	if err := s.save(); err != nil {
		if had {
			s.data[key] = prev
		} else {
			delete(s.data, key)
		}
		return err
	}
	return nil
}

func (s *FileStore) Delete(key string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	prev, had := s.data[key]
	if !had {
		return nil
	}
	delete(s.data, key)
	if err := s.save(); err != nil {
		s.data[key] = prev
		return err
	}
	return nil
}

func (s *FileStore) Keys() []string {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return sortedKeys(s.data)
}

// save writes to a temp file in the same directory and renames it over the
// target. Callers hold the write lock.
func (s *FileStore) save() error {
	dir := filepath.Dir(s.path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return errors.NewStorageError("failed to create state directory", dir, errors.StorageWriteFailed, err)
	}

	raw, err := yaml.Marshal(s.data)
	if err != nil {
		return errors.NewStorageError("failed to encode state", s.path, errors.StorageWriteFailed, err)
	}

	tmp, err := os.CreateTemp(dir, ".state-*.yaml")
	if err != nil {
		return errors.NewStorageError("failed to create temp file", dir, errors.StorageWriteFailed, err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.Write(raw); err != nil {
		tmp.Close()
		return errors.NewStorageError("failed to write state", tmp.Name(), errors.StorageWriteFailed, err)
	}
	if err := tmp.Close(); err != nil {
		return errors.NewStorageError("failed to write state", tmp.Name(), errors.StorageWriteFailed, err)
	}
	if err := os.Rename(tmp.Name(), s.path); err != nil {
		return errors.NewStorageError("failed to replace state file", s.path, errors.StorageWriteFailed, err)
	}

	log.LogWithFields(log.F("path", s.path), log.F("keys", len(s.data))).Debug("State saved")
	return nil
}

// MemoryStore is an in-memory Store.
type MemoryStore struct {
	mu   sync.RWMutex
	data map[string]string
}

// NewMemoryStore creates an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{data: map[string]string{}}
}

func (m *MemoryStore) Get(key string) (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	v, ok := m.data[key]
	return v, ok
}

func (m *MemoryStore) Set(key, value string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.data[key] = value
	return nil
}

func (m *MemoryStore) Delete(key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.data, key)
	return nil
}

func (m *MemoryStore) Keys() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return sortedKeys(m.data)
}

func sortedKeys(m map[string]string) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
