package content

import (
	"sort"
	"sync"
)

type Repository interface {
	List() ([]Page, error)
	GetBySlug(slug string) (Page, bool)
}

// InMemoryRepository serves seeded pages sorted by their display order.
type InMemoryRepository struct {
	mu    sync.RWMutex
	pages map[string]Page
}

func NewInMemoryRepository(seed []Page) *InMemoryRepository {
	r := &InMemoryRepository{pages: make(map[string]Page, len(seed))}
	for _, p := range seed {
		r.pages[p.Slug] = p
	}
	return r
}

func (r *InMemoryRepository) List() ([]Page, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Page, 0, len(r.pages))
	for _, p := range r.pages {
		out = append(out, p)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Ord < out[j].Ord })
	return out, nil
}

func (r *InMemoryRepository) GetBySlug(slug string) (Page, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.pages[slug]
	return p, ok
}
