package order

import (
	"errors"
	"sync"
)

var (
	ErrNotFound  = errors.New("order not found")
	ErrForbidden = errors.New("admin role required")
)

// Filter narrows a listing. Zero values mean "any".
type Filter struct {
	UserID         int
	TrackingNumber string
	Statuses       []Status
}

type Repository interface {
	Create(ord Order) (Order, error)
	GetByID(id string) (Order, error)
	List(f Filter) ([]Order, error)
	Update(ord Order) (Order, error)
	Delete(id string) error
}

// InMemoryRepository backs tests and local scenarios. Orders keep
// insertion order so listings are stable.
type InMemoryRepository struct {
	mu     sync.RWMutex
	orders []Order
}

func NewInMemoryRepository(seed []Order) *InMemoryRepository {
	r := &InMemoryRepository{orders: make([]Order, 0, len(seed))}
	r.orders = append(r.orders, seed...)
	return r
}

func (r *InMemoryRepository) Create(ord Order) (Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.orders = append(r.orders, ord)
	return ord, nil
}

func (r *InMemoryRepository) GetByID(id string) (Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, ord := range r.orders {
		if ord.ID == id {
			return ord, nil
		}
	}

	return Order{}, ErrNotFound
}

func (r *InMemoryRepository) List(f Filter) ([]Order, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]Order, 0)
	for _, ord := range r.orders {
		if matches(ord, f) {
			out = append(out, ord)
		}
	}

	return out, nil
}

func (r *InMemoryRepository) Update(update Order) (Order, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, ord := range r.orders {
		if ord.ID == update.ID {
			r.orders[i] = update
			return update, nil
		}
	}

	return Order{}, ErrNotFound
}

func (r *InMemoryRepository) Delete(id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i, ord := range r.orders {
		if ord.ID == id {
			r.orders = append(r.orders[:i], r.orders[i+1:]...)
			return nil
		}
	}

	return ErrNotFound
}

func matches(ord Order, f Filter) bool {
	if f.UserID != 0 && ord.UserID != f.UserID {
		return false
	}
	if f.TrackingNumber != "" && ord.TrackingNumber != f.TrackingNumber {
		return false
	}
	if len(f.Statuses) > 0 {
		found := false
		for _, s := range f.Statuses {
			if ord.Status == s {
				found = true
				break
			}
		}
		if !found {
			return false
		}
	}
	return true
}
