package cache

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
)

// FileName is the name of the JSON cache document.
const FileName = "cache.bdd2doc"

// FileStore keeps all entries in a single JSON document keyed by cache key.
// The document is read on first use and rewritten on every Put.
type FileStore struct {
	path    string
	entries map[string]*Entry
}

// NewFileStore returns a store backed by dir/cache.bdd2doc. Nothing is
// written until the first Put.
func NewFileStore(dir string) *FileStore {
	return &FileStore{path: filepath.Join(dir, FileName)}
}

// Path returns the location of the cache document.
func (s *FileStore) Path() string {
	return s.path
}

func (s *FileStore) Get(key string) (*Entry, bool, error) {
	if err := s.load(); err != nil {
		return nil, false, err
	}
	e, ok := s.entries[key]
	return e, ok, nil
}

func (s *FileStore) Put(key string, entry *Entry) error {
	if err := s.load(); err != nil {
		return err
	}
	s.entries[key] = entry

	data, err := json.Marshal(s.entries)
	if err != nil {
		return fmt.Errorf("encode cache: %w", err)
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return fmt.Errorf("create cache directory: %w", err)
	}
	if err := os.WriteFile(s.path, data, 0o644); err != nil {
		return fmt.Errorf("write cache: %w", err)
	}
	return nil
}

func (s *FileStore) Close() error { return nil }

func (s *FileStore) load() error {
	if s.entries != nil {
		return nil
	}
	data, err := os.ReadFile(s.path)
	if errors.Is(err, os.ErrNotExist) {
		s.entries = map[string]*Entry{}
		return nil
	}
	if err != nil {
		return fmt.Errorf("read cache: %w", err)
	}

	entries := map[string]*Entry{}
	if err := json.Unmarshal(data, &entries); err != nil {
		return fmt.Errorf("parse cache %s: %w", s.path, err)
	}
	s.entries = entries
	return nil
}
