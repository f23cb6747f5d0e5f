// Package cart implements the identity-scoped cart state container.
// All mutations are synchronous against in-memory state; persistence to
// the durable key-value store is best-effort and never blocks a caller.
package cart

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"log"
	"sync"

	"shoppico/internal/domain"
	"shoppico/internal/kv"
)

// GuestIdentity scopes carts of unauthenticated sessions.
const GuestIdentity = "guest"

// Store holds one cart, keyed by the identity passed to Load. Mutations
// always succeed in memory (aside from input validation); storage
// failures surface through the snapshot's Err field, never through a
// mutation's return value.
type Store struct {
	kv     kv.Store
	logger *log.Logger
	writer *persister

	mu          sync.Mutex
	identityKey string
	items       []domain.LineItem
	totalCents  int64
	itemCount   int
	loading     bool
	errMsg      string
}

// State is a point-in-time copy of the store, safe to retain.
type State struct {
	Items      []domain.LineItem `json:"items"`
	TotalCents int64             `json:"total"`
	ItemCount  int               `json:"itemCount"`
	Loading    bool              `json:"loading"`
	Err        string            `json:"error,omitempty"`
}

func New(store kv.Store, logger *log.Logger) *Store {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	s := &Store{
		kv:          store,
		logger:      logger,
		identityKey: GuestIdentity,
	}
	s.writer = newPersister(store, logger, s.noteWriteError)
	return s
}

// Load reads the persisted cart for identityKey and adopts it, replacing
// whatever the store held before. A missing blob yields an empty cart; a
// read or parse failure yields an empty but usable cart with Err set.
// There is no automatic retry; calling Load again re-enters loading.
func (s *Store) Load(ctx context.Context, identityKey string) error {
	if identityKey == "" {
		identityKey = GuestIdentity
	}

	s.mu.Lock()
	s.identityKey = identityKey
	s.loading = true
	s.errMsg = ""
	s.mu.Unlock()

	blob, err := s.kv.Get(ctx, kv.CartKey(identityKey))
	if err != nil && !errors.Is(err, domain.ErrNotFound) {
		s.logger.Printf("cart store: load identity=%s error=%v", identityKey, err)
		s.adoptEmpty("load cart: " + err.Error())
		return err
	}

	var cart domain.Cart
	if err == nil {
		if uerr := json.Unmarshal(blob, &cart); uerr != nil {
			s.logger.Printf("cart store: parse identity=%s error=%v", identityKey, uerr)
			s.adoptEmpty("parse cart: " + uerr.Error())
			return uerr
		}
	}

	items := make([]domain.LineItem, 0, len(cart.Items))
	for _, it := range cart.Items {
		if it.ID == "" || it.Quantity <= 0 {
			continue
		}
		items = append(items, it)
	}

	s.mu.Lock()
	s.items = items
	s.totalCents, s.itemCount = domain.Recompute(items)
	s.loading = false
	s.errMsg = ""
	s.mu.Unlock()
	return nil
}

// AddItem appends a line for the product, or accumulates quantity onto
// the existing line with the same ID. A non-positive quantity or an
// invalid product is rejected with the state left untouched.
func (s *Store) AddItem(product domain.Product, quantity int) error {
	if quantity <= 0 {
		return domain.ErrInvalidQuantity
	}
	if !product.Valid() {
		return domain.ErrInvalidProduct
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	merged := false
	for i := range s.items {
		if s.items[i].ID == product.ID {
			s.items[i].Quantity += quantity
			merged = true
			break
		}
	}
	if !merged {
		s.items = append(s.items, domain.LineItem{
			ID:         product.ID,
			Name:       product.Name,
			Category:   product.Category,
			PriceCents: product.PriceCents,
			ImageURL:   product.ImageURL,
			Quantity:   quantity,
		})
	}
	s.commitLocked()
	return nil
}

// RemoveItem deletes the line with the given product ID. Unknown IDs are
// a silent no-op.
func (s *Store) RemoveItem(productID string) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.items {
		if s.items[i].ID == productID {
			s.items = append(s.items[:i], s.items[i+1:]...)
			s.commitLocked()
			return
		}
	}
}

// UpdateQuantity sets the line's quantity. A quantity of zero or below
// removes the line; unknown IDs are a silent no-op.
func (s *Store) UpdateQuantity(productID string, quantity int) {
	if quantity <= 0 {
		s.RemoveItem(productID)
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	for i := range s.items {
		if s.items[i].ID == productID {
			s.items[i].Quantity = quantity
			s.commitLocked()
			return
		}
	}
}

// Clear empties the cart. Loading and Err are left as they are.
func (s *Store) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.items = nil
	s.commitLocked()
}

// Snapshot returns a copy of the current state.
func (s *Store) Snapshot() State {
	s.mu.Lock()
	defer s.mu.Unlock()

	items := make([]domain.LineItem, len(s.items))
	copy(items, s.items)
	return State{
		Items:      items,
		TotalCents: s.totalCents,
		ItemCount:  s.itemCount,
		Loading:    s.loading,
		Err:        s.errMsg,
	}
}

// IdentityKey returns the identity the store is currently scoped to.
func (s *Store) IdentityKey() string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.identityKey
}

// Flush writes any pending persistence blob synchronously.
func (s *Store) Flush() {
	s.writer.flush()
}

// Close flushes any pending persistence write and stops the writer.
func (s *Store) Close() {
	s.writer.close()
}

// commitLocked recomputes derived fields and schedules the persistence
// write. Callers must hold s.mu.
func (s *Store) commitLocked() {
	s.totalCents, s.itemCount = domain.Recompute(s.items)

	items := s.items
	if items == nil {
		items = []domain.LineItem{}
	}
	blob, err := json.Marshal(domain.Cart{
		Items:      items,
		TotalCents: s.totalCents,
		ItemCount:  s.itemCount,
	})
	if err != nil {
		// Plain structs of strings and integers always marshal.
		s.logger.Printf("cart store: marshal identity=%s error=%v", s.identityKey, err)
		s.errMsg = "persist cart: " + err.Error()
		return
	}
	s.writer.enqueue(kv.CartKey(s.identityKey), blob)
}

func (s *Store) adoptEmpty(errMsg string) {
	s.mu.Lock()
	s.items = nil
	s.totalCents, s.itemCount = 0, 0
	s.loading = false
	s.errMsg = errMsg
	s.mu.Unlock()
}

func (s *Store) noteWriteError(err error) {
	s.mu.Lock()
	s.errMsg = "persist cart: " + err.Error()
	s.mu.Unlock()
}
