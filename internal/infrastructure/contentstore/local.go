package contentstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/PuneetGOTO/business-website-sub000/internal/domain/entities/content"
)

// LocalStore keeps sections in one JSON file under namespaced keys. Writes
// that would grow the file past the quota fail with ErrQuotaExceeded.
type LocalStore struct {
	path      string
	namespace string
	quota     int

	entries map[string]json.RawMessage
	loaded  bool
	mu      sync.Mutex
}

// NewLocalStore creates a store persisted at path. A quota of zero disables the limit.
func NewLocalStore(path, namespace string, quota int) *LocalStore {
	return &LocalStore{
		path:      path,
		namespace: namespace,
		quota:     quota,
	}
}

func (s *LocalStore) key(name string) string {
	return s.namespace + name
}

func (s *LocalStore) Get(_ context.Context, name string) (content.Section, bool, error) {
	if !content.IsKnownSection(name) {
		return nil, false, nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.load(); err != nil {
		return nil, false, err
	}
	raw, ok := s.entries[s.key(name)]
	if !ok {
		return nil, false, nil
	}

	var data content.Section
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, false, fmt.Errorf("failed to decode local section %s: %w", name, err)
	}
	return data, true, nil
}

// Set fully replaces the stored value for name.
func (s *LocalStore) Set(_ context.Context, name string, data content.Section) error {
	if err := checkSection(name); err != nil {
		return err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.load(); err != nil {
		return err
	}
	return s.put(name, data)
}

// Merge writes only the given fields into the stored section, keeping the others.
func (s *LocalStore) Merge(_ context.Context, name string, fields content.Section) (content.Section, error) {
	if err := checkSection(name); err != nil {
		return nil, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.load(); err != nil {
		return nil, err
	}

	merged := content.Section{}
	if raw, ok := s.entries[s.key(name)]; ok {
		if err := json.Unmarshal(raw, &merged); err != nil {
			return nil, fmt.Errorf("failed to decode local section %s: %w", name, err)
		}
	}
	for k, v := range fields {
		merged[k] = v
	}
	if err := s.put(name, merged); err != nil {
		return nil, err
	}
	return merged, nil
}

// Remove deletes a stored section. Missing sections are ignored.
func (s *LocalStore) Remove(_ context.Context, name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.load(); err != nil {
		return err
	}
	if _, ok := s.entries[s.key(name)]; !ok {
		return nil
	}
	previous := s.entries
	s.entries = cloneEntries(previous)
	delete(s.entries, s.key(name))
	if err := s.flush(); err != nil {
		s.entries = previous
		return err
	}
	return nil
}

// Names lists the stored section names without the namespace prefix.
func (s *LocalStore) Names() ([]string, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.load(); err != nil {
		return nil, err
	}
	var names []string
	for k := range s.entries {
		if name, ok := strings.CutPrefix(k, s.namespace); ok {
			names = append(names, name)
		}
	}
	sort.Strings(names)
	return names, nil
}

// put must be called with mu held.
func (s *LocalStore) put(name string, data content.Section) error {
	if data == nil {
		data = content.Section{}
	}
	raw, err := json.Marshal(data)
	if err != nil {
		return fmt.Errorf("failed to encode section %s: %w", name, err)
	}

	previous := s.entries
	s.entries = cloneEntries(previous)
	s.entries[s.key(name)] = raw
	if err := s.flush(); err != nil {
		s.entries = previous
		return err
	}
	return nil
}

func (s *LocalStore) load() error {
	if s.loaded {
		return nil
	}
	s.entries = make(map[string]json.RawMessage)

	raw, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) {
		s.loaded = true
		return nil
	}
	if err != nil {
		return fmt.Errorf("failed to read local store: %w", err)
	}
	if len(raw) > 0 {
		if err := json.Unmarshal(raw, &s.entries); err != nil {
			return fmt.Errorf("failed to decode local store: %w", err)
		}
	}
	s.loaded = true
	return nil
}

func (s *LocalStore) flush() error {
	raw, err := json.Marshal(s.entries)
	if err != nil {
		return fmt.Errorf("failed to encode local store: %w", err)
	}
	if s.quota > 0 && len(raw) > s.quota {
		return ErrQuotaExceeded
	}

	if dir := filepath.Dir(s.path); dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create local store directory: %w", err)
		}
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, raw, 0o644); err != nil {
		return fmt.Errorf("failed to write local store: %w", err)
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return fmt.Errorf("failed to replace local store: %w", err)
	}
	return nil
}

func cloneEntries(in map[string]json.RawMessage) map[string]json.RawMessage {
	out := make(map[string]json.RawMessage, len(in)+1)
	for k, v := range in {
		out[k] = v
	}
	return out
}
