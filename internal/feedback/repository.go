package feedback

import "sync"

type Repository interface {
	Add(name, email string, rating int, message, createdAt string) (Entry, error)
	List() ([]Entry, error)
}

// InMemoryRepository keeps entries in submission order.
type InMemoryRepository struct {
	mu      sync.Mutex
	entries []Entry
	nextID  int
}

func NewInMemoryRepository() *InMemoryRepository {
	return &InMemoryRepository{nextID: 1}
}

func (r *InMemoryRepository) Add(name, email string, rating int, message, createdAt string) (Entry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	e := Entry{
		ID:        r.nextID,
		Name:      name,
		Email:     email,
		Rating:    rating,
		Message:   message,
		CreatedAt: createdAt,
	}
	r.nextID++
	r.entries = append(r.entries, e)
	return e, nil
}

func (r *InMemoryRepository) List() ([]Entry, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]Entry, len(r.entries))
	copy(out, r.entries)
	return out, nil
}
