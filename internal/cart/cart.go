package cart

import (
	"context"
	"log/slog"
	"sync"
)

// Item is one line of intended purchase. Quantity stays >= 1 while the
// item is present; dropping to zero removes the line.
type Item struct {
	ID       string  `json:"id"`
	Name     string  `json:"name"`
	Price    float64 `json:"price"`
	Quantity int     `json:"quantity"`
	Image    string  `json:"image,omitempty"`
	Variant  string  `json:"variant,omitempty"`
	// MaxQuantity caps the line quantity. Zero means no cap.
	MaxQuantity int `json:"maxQuantity,omitempty"`
}

type DiscountType string

const (
	DiscountPercentage DiscountType = "percentage"
	DiscountFixed      DiscountType = "fixed"
)

// Discount is the active promotion, if any. Percentage amounts are within
// [0,100]; fixed amounts are non-negative.
type Discount struct {
	Code   string       `json:"code,omitempty"`
	Amount float64      `json:"amount"`
	Type   DiscountType `json:"type"`
}

func (d Discount) active() bool {
	return d.Code != "" && d.Amount > 0
}

// State is the snapshot handed to callers. Totals are recomputed from the
// item slice on every read so they cannot drift.
type State struct {
	Items      []Item   `json:"items"`
	TotalItems int      `json:"totalItems"`
	TotalPrice float64  `json:"totalPrice"`
	Discount   Discount `json:"discount"`
	FinalPrice float64  `json:"finalPrice"`
	Error      string   `json:"error,omitempty"`
}

// Cart is the authoritative view of what one browsing session intends to
// buy. It is an explicit state object: the owner constructs it and passes
// it wherever it is needed. Every mutation writes through to the store so
// the cart survives a restart.
type Cart struct {
	mu       sync.Mutex
	items    []Item
	discount Discount
	lastErr  string

	store     Store
	discounts DiscountRepository
}

// New loads any persisted snapshot from the store. Malformed persisted
// data is logged and treated as an empty cart, never propagated.
func New(store Store, discounts DiscountRepository) *Cart {
	c := &Cart{
		store:     store,
		discounts: discounts,
		discount:  Discount{Type: DiscountPercentage},
	}

	snap, err := store.Load()
	if err != nil {
		slog.Warn("could not load persisted cart, starting empty", "err", err)
		return c
	}
	c.items = snap.Items
	if snap.Discount.Type != "" {
		c.discount = snap.Discount
	}
	for i := range c.items {
		if c.items[i].Quantity < 1 {
			c.items[i].Quantity = 1
		}
	}
	return c
}

// AddItem merges the item into the cart. An existing line is incremented,
// a new one inserted; either way the quantity is clamped to the item's
// maximum. Over-limit requests are absorbed silently.
func (c *Cart) AddItem(item Item, qty int) {
	if qty < 1 {
		qty = 1
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	for i, existing := range c.items {
		if existing.ID == item.ID {
			c.items[i].Quantity = clamp(existing.Quantity+qty, item.MaxQuantity)
			c.lastErr = ""
			c.persist()
			return
		}
	}

	item.Quantity = clamp(qty, item.MaxQuantity)
	c.items = append(c.items, item)
	c.lastErr = ""
	c.persist()
}

// RemoveItem deletes the matching line. Absent ids are a no-op.
func (c *Cart) RemoveItem(id string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i, item := range c.items {
		if item.ID == id {
			c.items = append(c.items[:i], c.items[i+1:]...)
			c.lastErr = ""
			c.persist()
			return
		}
	}
}

// UpdateQuantity sets the line quantity, clamped to the item's maximum.
// A quantity of zero or less removes the line. Absent ids are a no-op.
func (c *Cart) UpdateQuantity(id string, qty int) {
	if qty <= 0 {
		c.RemoveItem(id)
		return
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	for i, item := range c.items {
		if item.ID == id {
			c.items[i].Quantity = clamp(qty, item.MaxQuantity)
			c.lastErr = ""
			c.persist()
			return
		}
	}
}

// Clear empties the cart, drops the discount and wipes the persisted
// snapshot.
func (c *Cart) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.items = nil
	c.discount = Discount{Type: DiscountPercentage}
	c.lastErr = ""
	if err := c.store.Clear(); err != nil {
		slog.Error("could not clear persisted cart", "err", err)
	}
}

func (c *Cart) ItemQuantity(id string) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	for _, item := range c.items {
		if item.ID == id {
			return item.Quantity
		}
	}
	return 0
}

func (c *Cart) Contains(id string) bool {
	return c.ItemQuantity(id) > 0
}

// ApplyDiscount looks the code up case-insensitively. On a match the
// active discount is replaced and true returned; on a miss the previous
// discount stays in place, the error is recorded and false returned.
// Concurrent calls are not coordinated: last write wins.
func (c *Cart) ApplyDiscount(ctx context.Context, code string) bool {
	found, err := c.discounts.GetByCode(ctx, code)

	c.mu.Lock()
	defer c.mu.Unlock()

	if err != nil {
		if err != ErrCodeNotFound {
			slog.Error("discount lookup failed", "code", code, "err", err)
			c.lastErr = "failed to apply discount"
		} else {
			c.lastErr = "invalid discount code"
		}
		return false
	}

	c.discount = found
	c.lastErr = ""
	c.persist()
	return true
}

func (c *Cart) TotalItems() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return totalItems(c.items)
}

func (c *Cart) TotalPrice() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return totalPrice(c.items)
}

// FinalPrice is the total reduced by the active discount, floored at zero.
func (c *Cart) FinalPrice() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	return finalPrice(totalPrice(c.items), c.discount)
}

func (c *Cart) Discount() Discount {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.discount
}

// State returns a consistent snapshot with derived totals.
func (c *Cart) State() State {
	c.mu.Lock()
	defer c.mu.Unlock()

	items := make([]Item, len(c.items))
	copy(items, c.items)
	total := totalPrice(c.items)

	return State{
		Items:      items,
		TotalItems: totalItems(c.items),
		TotalPrice: total,
		Discount:   c.discount,
		FinalPrice: finalPrice(total, c.discount),
		Error:      c.lastErr,
	}
}

// persist writes the current snapshot through to the store. Callers hold
// the lock. A failed save degrades to a log line; the in-memory state is
// still authoritative for this session.
func (c *Cart) persist() {
	if err := c.store.Save(Snapshot{Items: c.items, Discount: c.discount}); err != nil {
		slog.Error("could not persist cart", "err", err)
	}
}

func clamp(qty, max int) int {
	if max > 0 && qty > max {
		return max
	}
	return qty
}

func totalItems(items []Item) int {
	sum := 0
	for _, item := range items {
		sum += item.Quantity
	}
	return sum
}

func totalPrice(items []Item) float64 {
	sum := 0.0
	for _, item := range items {
		sum += item.Price * float64(item.Quantity)
	}
	return sum
}

func finalPrice(total float64, d Discount) float64 {
	if !d.active() {
		return total
	}

	var out float64
	switch d.Type {
	case DiscountPercentage:
		out = total * (1 - d.Amount/100)
	case DiscountFixed:
		out = total - d.Amount
	default:
		out = total
	}

	if out < 0 {
		return 0
	}
	return out
}
