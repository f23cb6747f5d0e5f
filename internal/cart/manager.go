package cart

import (
	"context"
	"io"
	"log"
	"sync"

	"shoppico/internal/kv"
)

// Manager hands out one Store per identity key. Switching identity means
// asking for a different key; each identity only ever sees its own
// persisted cart, never a merge.
type Manager struct {
	kv     kv.Store
	logger *log.Logger

	mu     sync.Mutex
	stores map[string]*managedStore
}

// managedStore pairs a store with its initial-load gate. The gate keeps
// a concurrent caller from mutating the store before the first load has
// adopted the persisted cart, which would let the adoption overwrite
// that mutation.
type managedStore struct {
	store *Store
	ready chan struct{}
}

func NewManager(store kv.Store, logger *log.Logger) *Manager {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Manager{
		kv:     store,
		logger: logger,
		stores: make(map[string]*managedStore),
	}
}

// ForIdentity returns the store scoped to identityKey, loading its
// persisted cart on first use. Every caller waits for that initial load
// to finish, so a store is never mutated while the load is still in
// flight. A load failure still yields a usable (empty) store; the
// failure is visible on the store's snapshot.
func (m *Manager) ForIdentity(ctx context.Context, identityKey string) *Store {
	if identityKey == "" {
		identityKey = GuestIdentity
	}

	m.mu.Lock()
	entry, ok := m.stores[identityKey]
	if !ok {
		entry = &managedStore{
			store: New(m.kv, m.logger),
			ready: make(chan struct{}),
		}
		m.stores[identityKey] = entry
	}
	m.mu.Unlock()

	if !ok {
		if err := entry.store.Load(ctx, identityKey); err != nil {
			m.logger.Printf("cart manager: load identity=%s error=%v", identityKey, err)
		}
		close(entry.ready)
	}

	<-entry.ready
	return entry.store
}

// CloseAll flushes every store's pending write. Used on shutdown.
func (m *Manager) CloseAll() {
	m.mu.Lock()
	entries := make([]*managedStore, 0, len(m.stores))
	for _, e := range m.stores {
		entries = append(entries, e)
	}
	m.stores = make(map[string]*managedStore)
	m.mu.Unlock()

	for _, e := range entries {
		<-e.ready
		e.store.Close()
	}
}
