package cart

import (
	"errors"
	"path/filepath"
	"strings"
	"sync"
)

var ErrBadSession = errors.New("invalid cart session token")

// Manager hands out one Cart per browsing session. Carts are created
// lazily and kept for the life of the process; their snapshots live on
// disk so a restart reloads them on first access.
type Manager struct {
	mu        sync.Mutex
	carts     map[string]*Cart
	dir       string
	discounts DiscountRepository
}

func NewManager(dir string, discounts DiscountRepository) *Manager {
	return &Manager{
		carts:     make(map[string]*Cart),
		dir:       dir,
		discounts: discounts,
	}
}

// Get returns the cart for the session token, creating it if needed. The
// token doubles as the snapshot filename, so only a conservative character
// set is accepted.
func (m *Manager) Get(session string) (*Cart, error) {
	if !validSession(session) {
		return nil, ErrBadSession
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	if c, ok := m.carts[session]; ok {
		return c, nil
	}

	store := NewFileStore(filepath.Join(m.dir, session+".json"))
	c := New(store, m.discounts)
	m.carts[session] = c
	return c, nil
}

func validSession(s string) bool {
	if len(s) < 8 || len(s) > 64 {
		return false
	}
	for _, r := range s {
		switch {
		case r >= 'a' && r <= 'z':
		case r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9':
		case r == '-' || r == '_':
		default:
			return false
		}
	}
	// keep path separators and dot sequences out of filenames
	return !strings.Contains(s, "..")
}
