package cart

import (
	"encoding/json"
	"sync"

	"crickmart/internal/domain"
	"crickmart/internal/storage"

	"github.com/shopspring/decimal"
	"go.uber.org/zap"
)

// Entry is one cart line: a product snapshot captured at add time plus a
// quantity of at least 1.
type Entry struct {
	Product  domain.Product `json:"product"`
	Quantity int            `json:"quantity"`
}

// Store owns the cart: an ordered sequence of entries with at most one entry
// per product id, a shipping cost set during checkout, and the in-progress
// order draft. One instance exists for the application's lifetime. Every
// mutation persists the entry sequence synchronously; derived totals are
// recomputed on every read.
type Store struct {
	storage storage.Store
	logger  *zap.Logger

	mu           sync.Mutex
	entries      []Entry
	shippingCost decimal.Decimal
	draft        domain.OrderDraft
}

// New creates the store and rehydrates entries from storage. Absent or
// corrupt storage yields an empty cart, never an error.
func New(store storage.Store, logger *zap.Logger) *Store {
	s := &Store{
		storage: store,
		logger:  logger,
	}
	s.load()
	return s
}

func (s *Store) load() {
	raw, ok := s.storage.Get(storage.KeyCart)
	if !ok || raw == "" {
		return
	}

	var entries []Entry
	if err := json.Unmarshal([]byte(raw), &entries); err != nil {
		s.logger.Warn("Failed to parse persisted cart, starting empty", zap.Error(err))
		if err := s.storage.Remove(storage.KeyCart); err != nil {
			s.logger.Error("Failed to remove corrupted cart", zap.Error(err))
		}
		return
	}
	s.entries = entries
}

// AddOrSetItem inserts a new entry or, when the product id already exists,
// overwrites its quantity with the given value. Repeat adds replace rather
// than accumulate. Quantities below 1 are clamped to 1.
func (s *Store) AddOrSetItem(product domain.Product, quantity int) {
	if quantity < 1 {
		quantity = 1
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.entries {
		if s.entries[i].Product.ProductID == product.ProductID {
			s.entries[i].Quantity = quantity
			s.persist()
			return
		}
	}

	s.entries = append(s.entries, Entry{Product: product, Quantity: quantity})
	s.persist()
}

// RemoveItem removes the entry for productID. Absent ids are a no-op.
func (s *Store) RemoveItem(productID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.entries {
		if s.entries[i].Product.ProductID == productID {
			s.entries = append(s.entries[:i], s.entries[i+1:]...)
			s.persist()
			return
		}
	}
}

// SetQuantity updates the quantity for productID in place, clamped to a
// minimum of 1. Absent ids are a no-op.
func (s *Store) SetQuantity(productID string, quantity int) {
	if quantity < 1 {
		quantity = 1
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.entries {
		if s.entries[i].Product.ProductID == productID {
			s.entries[i].Quantity = quantity
			s.persist()
			return
		}
	}
}

// Clear empties all entries. The shipping cost is left untouched.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.entries = nil
	s.persist()
}

// SetShippingCost sets the shipping cost scalar.
func (s *Store) SetShippingCost(cost decimal.Decimal) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.shippingCost = cost
}

// ShippingCost returns the current shipping cost.
func (s *Store) ShippingCost() decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.shippingCost
}

// SetOrderDraft stores the in-progress order draft.
func (s *Store) SetOrderDraft(draft domain.OrderDraft) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.draft = draft
}

// OrderDraft returns the in-progress order draft.
func (s *Store) OrderDraft() domain.OrderDraft {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.draft
}

// Entries returns a copy of the entry sequence in insertion order.
func (s *Store) Entries() []Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	entries := make([]Entry, len(s.entries))
	copy(entries, s.entries)
	return entries
}

// TotalItemCount is the number of distinct cart entries, not the sum of
// quantities. The storefront has always counted the cart this way and every
// display surface depends on it.
func (s *Store) TotalItemCount() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.entries)
}

// Subtotal is the sum of price times quantity over all entries.
func (s *Store) Subtotal() decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.subtotalLocked()
}

// TotalCost is the subtotal plus the shipping cost.
func (s *Store) TotalCost() decimal.Decimal {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.subtotalLocked().Add(s.shippingCost)
}

func (s *Store) subtotalLocked() decimal.Decimal {
	subtotal := decimal.Zero
	for _, entry := range s.entries {
		line := entry.Product.Price.Mul(decimal.NewFromInt(int64(entry.Quantity)))
		subtotal = subtotal.Add(line)
	}
	return subtotal
}

// Snapshot projects the current entries to {productId, quantity} pairs for
// an order draft.
func (s *Store) Snapshot() []domain.OrderItemRef {
	s.mu.Lock()
	defer s.mu.Unlock()

	items := make([]domain.OrderItemRef, 0, len(s.entries))
	for _, entry := range s.entries {
		items = append(items, domain.OrderItemRef{
			ProductID: entry.Product.ProductID,
			Quantity:  entry.Quantity,
		})
	}
	return items
}

// persist writes the full entry sequence through to storage. Callers hold
// s.mu.
func (s *Store) persist() {
	raw, err := json.Marshal(s.entries)
	if err != nil {
		s.logger.Error("Failed to encode cart for storage", zap.Error(err))
		return
	}
	if err := s.storage.Set(storage.KeyCart, string(raw)); err != nil {
		s.logger.Error("Failed to persist cart", zap.Error(err))
	}
}
