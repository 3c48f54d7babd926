package prefs

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sync"
)

// FileBackend stores every visitor's preferences in one JSON document.
type FileBackend struct {
	filePath string
	mu       sync.RWMutex
}

// NewFileBackend creates a FileBackend and checks that an existing file
// is readable.
func NewFileBackend(path string) (*FileBackend, error) {
	if path == "" {
		dir, err := os.UserHomeDir()
		if err != nil {
			dir = os.TempDir()
		}
		path = filepath.Join(dir, ".playground", "prefs.json")
	}
	store := &FileBackend{filePath: path}
	if _, err := store.load(); err != nil {
		return nil, fmt.Errorf("load prefs store: %w", err)
	}
	return store, nil
}

func (s *FileBackend) Get(_ context.Context, visitor, key string) (string, bool, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	all, err := s.load()
	if err != nil {
		return "", false, err
	}
	v, ok := all[visitor][key]
	return v, ok, nil
}

func (s *FileBackend) Set(_ context.Context, visitor, key, value string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	all, err := s.load()
	if err != nil {
		return err
	}
	if all[visitor] == nil {
		all[visitor] = make(map[string]string)
	}
	all[visitor][key] = value

	data, err := json.MarshalIndent(all, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(s.filePath), 0700); err != nil {
		return err
	}
	// write then rename so readers never see a partial document
	tmp := s.filePath + ".tmp"
	if err := os.WriteFile(tmp, data, 0600); err != nil {
		return err
	}
	return os.Rename(tmp, s.filePath)
}

func (s *FileBackend) Close() error { return nil }

// load reads the document; a missing file is an empty store.
func (s *FileBackend) load() (map[string]map[string]string, error) {
	all := make(map[string]map[string]string)
	data, err := os.ReadFile(s.filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return all, nil
		}
		return nil, err
	}
	if len(data) == 0 {
		return all, nil
	}
	if err := json.Unmarshal(data, &all); err != nil {
		return nil, err
	}
	return all, nil
}
