package seen

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
)

// Set holds the identities of already-notified articles. Identities are only
// added during a run, never removed.
type Set map[string]struct{}

// Contains reports whether the identity is in the set.
func (s Set) Contains(id string) bool {
	_, ok := s[id]
	return ok
}

// Add records an identity in the set.
func (s Set) Add(id string) {
	s[id] = struct{}{}
}

// Union returns a new set containing the identities of both sets.
func (s Set) Union(other Set) Set {
	merged := make(Set, len(s)+len(other))
	for id := range s {
		merged[id] = struct{}{}
	}
	for id := range other {
		merged[id] = struct{}{}
	}
	return merged
}

// Store persists the seen-set as a single JSON array of identities. The file
// is written sorted so diffs between runs stay reproducible.
type Store struct {
	path string
}

// NewStore creates a store backed by the given file path.
func NewStore(path string) *Store {
	return &Store{path: path}
}

// Load returns the persisted set, or an empty set when no prior state
// exists. An unreadable or corrupt file is an error: silently returning an
// empty set would re-notify every known article.
func (s *Store) Load() (Set, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return Set{}, nil
		}
		return nil, fmt.Errorf("failed to read seen-set file: %w", err)
	}

	var ids []string
	if err := json.Unmarshal(data, &ids); err != nil {
		return nil, fmt.Errorf("failed to parse seen-set file %s: %w", s.path, err)
	}

	set := make(Set, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return set, nil
}

// Save overwrites the persisted state. The content is written to a temporary
// file in the same directory and renamed over the target, so a failed write
// never leaves a partially written file behind.
func (s *Store) Save(set Set) error {
	ids := make([]string, 0, len(set))
	for id := range set {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	data, err := json.Marshal(ids)
	if err != nil {
		return fmt.Errorf("failed to encode seen-set: %w", err)
	}

	dir := filepath.Dir(s.path)
	tmp, err := os.CreateTemp(dir, filepath.Base(s.path)+".tmp-*")
	if err != nil {
		return fmt.Errorf("failed to create temporary seen-set file: %w", err)
	}

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to write seen-set: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to close seen-set file: %w", err)
	}

	if err := os.Rename(tmp.Name(), s.path); err != nil {
		os.Remove(tmp.Name())
		return fmt.Errorf("failed to replace seen-set file: %w", err)
	}

	return nil
}
