// Package settings persists small user preferences such as the theme.
package settings

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/BurntSushi/toml"
)

// KeyDarkMode selects the dark theme; it defaults to true.
const KeyDarkMode = "dark_mode"

// Store is a persisted key/value store.
type Store interface {
	Bool(key string, fallback bool) bool
	SetBool(key string, value bool) error
}

// FileStore keeps its values in a TOML file and rewrites it on every set.
type FileStore struct {
	mu     sync.Mutex
	path   string
	values map[string]any
}

// Open loads path. A missing file is an empty store.
func Open(path string) (*FileStore, error) {
	s := &FileStore{path: path, values: map[string]any{}}
	if _, err := toml.DecodeFile(path, &s.values); err != nil {
		if os.IsNotExist(err) {
			return s, nil
		}
		return nil, fmt.Errorf("failed to read settings %s: %w", path, err)
	}
	return s, nil
}

func (s *FileStore) Bool(key string, fallback bool) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if v, ok := s.values[key].(bool); ok {
		return v
	}
	return fallback
}

func (s *FileStore) SetBool(key string, value bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	next := make(map[string]any, len(s.values)+1)
	for k, v := range s.values {
		next[k] = v
	}
	next[key] = value
	if err := s.save(next); err != nil {
		return err
	}
	s.values = next
	return nil
}

// save writes values to the file. The in-memory values change only after it succeeds.
func (s *FileStore) save(values map[string]any) error {
	var buf bytes.Buffer
	if err := toml.NewEncoder(&buf).Encode(values); err != nil {
		return fmt.Errorf("failed to encode settings: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("failed to create settings dir: %w", err)
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("failed to write settings: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("failed to replace settings: %w", err)
	}
	return nil
}

// Memory is an in-process Store.
type Memory struct {
	mu     sync.Mutex
	values map[string]bool
}

func NewMemory() *Memory { return &Memory{values: map[string]bool{}} }

func (m *Memory) Bool(key string, fallback bool) bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	if v, ok := m.values[key]; ok {
		return v
	}
	return fallback
}

func (m *Memory) SetBool(key string, value bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] = value
	return nil
}
