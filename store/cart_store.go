package store

import (
	"sync"

	"storefront/models"

	"go.uber.org/zap"
)

// PersistFunc writes the full cart snapshot to durable storage. It is
// invoked synchronously on every committed mutation; a failure degrades
// persistence only, the in-memory state stays authoritative.
type PersistFunc func(items []models.CartItem) error

// Subscriber is notified after every committed mutation.
type Subscriber func()

// CartStore is the single source of truth for one session's shopping cart.
// Items are kept in insertion order. Line items are identified by the
// composite variant key (product + color + size); adding a matching item
// increments its quantity instead of appending a duplicate.
//
// The store is owned by the session manager and injected where needed; it
// holds no global state.
type CartStore struct {
	mu      sync.Mutex
	items   []models.CartItem
	persist PersistFunc
	subs    []Subscriber
	logger  *zap.Logger
}

// NewCartStore creates an empty cart store. persist may be nil (no
// durability, used in tests).
func NewCartStore(persist PersistFunc, logger *zap.Logger) *CartStore {
	return &CartStore{persist: persist, logger: logger}
}

// Hydrate replaces the in-memory state with a previously persisted snapshot.
// It does not trigger a persist write or notify subscribers.
func (s *CartStore) Hydrate(items []models.CartItem) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.items = append([]models.CartItem(nil), items...)
}

// Subscribe registers fn to run after every mutation.
func (s *CartStore) Subscribe(fn Subscriber) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.subs = append(s.subs, fn)
}

// AddItem merges the product into the cart. If an entry with the same
// variant key exists its quantity is incremented by one and its captured
// price and attributes are left untouched; otherwise a new entry is
// appended with quantity 1. AddItem never fails.
func (s *CartStore) AddItem(p models.ProductRef, opts models.VariantOptions) {
	s.mu.Lock()
	defer s.mu.Unlock()

	key := models.VariantKey(p.ID, opts.Color, opts.Size)
	for i := range s.items {
		if s.items[i].ID == key {
			s.items[i].Quantity++
			s.afterMutation()
			return
		}
	}

	s.items = append(s.items, models.CartItem{
		ID:        key,
		ProductID: p.ID,
		Name:      p.Name,
		Price:     p.Price,
		Image:     p.Image,
		Color:     opts.Color,
		Size:      opts.Size,
		Quantity:  1,
	})
	s.afterMutation()
}

// RemoveItem deletes the entry with the given variant key. Removing an
// absent key is a no-op, not an error.
func (s *CartStore) RemoveItem(id string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.items {
		if s.items[i].ID == id {
			s.items = append(s.items[:i], s.items[i+1:]...)
			s.afterMutation()
			return
		}
	}
}

// UpdateQuantity replaces the quantity of the entry with the given variant
// key unconditionally; values <= 0 are stored as-is and the entry is kept.
// Callers are expected to guard (e.g. disable a decrement control at 1).
// Unknown keys are ignored.
func (s *CartStore) UpdateQuantity(id string, quantity int) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.items {
		if s.items[i].ID == id {
			s.items[i].Quantity = quantity
			s.afterMutation()
			return
		}
	}
}

// Clear resets the cart to an empty sequence.
func (s *CartStore) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items = nil
	s.afterMutation()
}

// Items returns a copy of the cart in insertion order.
func (s *CartStore) Items() []models.CartItem {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]models.CartItem(nil), s.items...)
}

// Len returns the number of distinct line items.
func (s *CartStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.items)
}

// Subtotal returns the sum of all line totals.
func (s *CartStore) Subtotal() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	var total float64
	for _, it := range s.items {
		total += it.LineTotal()
	}
	return total
}

// afterMutation persists the full snapshot and notifies subscribers.
// Callers must hold the lock. Persistence is best-effort: the cart is not
// safety-critical, so a failed write is logged and swallowed.
func (s *CartStore) afterMutation() {
	if s.persist != nil {
		snapshot := append([]models.CartItem(nil), s.items...)
		if err := s.persist(snapshot); err != nil && s.logger != nil {
			s.logger.Warn("cart snapshot write failed", zap.Error(err))
		}
	}
	for _, fn := range s.subs {
		fn()
	}
}
