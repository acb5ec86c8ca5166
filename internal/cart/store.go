package cart

import (
	"encoding/json"
	"os"
	"path/filepath"
	"sync"
)

// Snapshot is what gets persisted between visits: the raw lines plus the
// active discount. Totals are derived, never stored.
type Snapshot struct {
	Items    []Item   `json:"items"`
	Discount Discount `json:"discount"`
}

// Store persists cart snapshots across restarts. Load returns an empty
// snapshot (not an error) when nothing has been saved yet.
type Store interface {
	Load() (Snapshot, error)
	Save(snap Snapshot) error
	Clear() error
}

// FileStore keeps one JSON file per cart. Writes unconditionally
// overwrite; two writers to the same file race and the last save wins.
type FileStore struct {
	path string
}

func NewFileStore(path string) *FileStore {
	return &FileStore{path: path}
}

func (s *FileStore) Load() (Snapshot, error) {
	b, err := os.ReadFile(s.path)
	if err != nil {
		if os.IsNotExist(err) {
			return Snapshot{}, nil
		}
		return Snapshot{}, err
	}

	var snap Snapshot
	if err := json.Unmarshal(b, &snap); err != nil {
		return Snapshot{}, err
	}
	return snap, nil
}

func (s *FileStore) Save(snap Snapshot) error {
	b, err := json.Marshal(snap)
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(s.path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(s.path, b, 0o644)
}

func (s *FileStore) Clear() error {
	if err := os.Remove(s.path); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

// MemoryStore backs tests.
type MemoryStore struct {
	mu    sync.Mutex
	snap  Snapshot
	saved bool
}

func NewMemoryStore() *MemoryStore {
	return &MemoryStore{}
}

func (s *MemoryStore) Load() (Snapshot, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.saved {
		return Snapshot{}, nil
	}
	return s.snap, nil
}

func (s *MemoryStore) Save(snap Snapshot) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snap = snap
	s.saved = true
	return nil
}

func (s *MemoryStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snap = Snapshot{}
	s.saved = false
	return nil
}

// Saved reports whether a snapshot is currently persisted.
func (s *MemoryStore) Saved() (Snapshot, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snap, s.saved
}
