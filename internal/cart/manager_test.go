package cart

import (
	"context"
	"testing"
	"time"

	"shoppico/internal/domain"
	"shoppico/internal/kv"
)

func TestManagerReturnsSameStorePerIdentity(t *testing.T) {
	m := NewManager(kv.NewMemory(), nil)
	defer m.CloseAll()
	ctx := context.Background()

	a := m.ForIdentity(ctx, "alice")
	b := m.ForIdentity(ctx, "alice")
	if a != b {
		t.Fatalf("expected one store per identity")
	}
	if a.IdentityKey() != "alice" {
		t.Fatalf("unexpected identity %q", a.IdentityKey())
	}
}

func TestManagerEmptyIdentityIsGuest(t *testing.T) {
	m := NewManager(kv.NewMemory(), nil)
	defer m.CloseAll()
	ctx := context.Background()

	guest := m.ForIdentity(ctx, "")
	if guest.IdentityKey() != GuestIdentity {
		t.Fatalf("expected guest identity, got %q", guest.IdentityKey())
	}
	if m.ForIdentity(ctx, GuestIdentity) != guest {
		t.Fatalf("explicit guest key should map to the same store")
	}
}

// slowLoadStore parks the first read until released, so tests can hold
// a store in its initial-load phase.
type slowLoadStore struct {
	started chan struct{}
	release chan struct{}
}

func newSlowLoadStore() *slowLoadStore {
	return &slowLoadStore{
		started: make(chan struct{}, 1),
		release: make(chan struct{}),
	}
}

func (s *slowLoadStore) Get(_ context.Context, _ string) ([]byte, error) {
	select {
	case s.started <- struct{}{}:
	default:
	}
	<-s.release
	return nil, domain.ErrNotFound
}

func (s *slowLoadStore) Set(_ context.Context, _ string, _ []byte) error { return nil }
func (s *slowLoadStore) Delete(_ context.Context, _ string) error        { return nil }

func TestForIdentityWaitsForInitialLoad(t *testing.T) {
	slow := newSlowLoadStore()
	m := NewManager(slow, nil)
	ctx := context.Background()

	go m.ForIdentity(ctx, "alice")
	<-slow.started // first caller is parked inside the storage read

	got := make(chan *Store, 1)
	go func() { got <- m.ForIdentity(ctx, "alice") }()

	// The second caller must not get the store while the initial load is
	// still in flight; a mutation issued then would be overwritten when
	// the load adopts the fetched cart.
	select {
	case <-got:
		t.Fatalf("second caller returned before the initial load finished")
	case <-time.After(50 * time.Millisecond):
	}

	close(slow.release)
	store := <-got
	defer m.CloseAll()

	if err := store.AddItem(domain.Product{ID: "sku1", PriceCents: 100}, 2); err != nil {
		t.Fatalf("AddItem: %v", err)
	}
	if st := store.Snapshot(); st.ItemCount != 2 {
		t.Fatalf("mutation lost around initial load: %+v", st)
	}
}

func TestConcurrentFirstUseKeepsMutations(t *testing.T) {
	slow := newSlowLoadStore()
	m := NewManager(slow, nil)
	defer m.CloseAll()
	ctx := context.Background()

	go m.ForIdentity(ctx, "alice")
	<-slow.started

	mutated := make(chan struct{})
	go func() {
		store := m.ForIdentity(ctx, "alice")
		if err := store.AddItem(domain.Product{ID: "sku1", PriceCents: 100}, 2); err != nil {
			t.Errorf("AddItem: %v", err)
		}
		close(mutated)
	}()

	close(slow.release)
	<-mutated

	store := m.ForIdentity(ctx, "alice")
	st := store.Snapshot()
	if len(st.Items) != 1 || st.ItemCount != 2 {
		t.Fatalf("concurrent first-use mutation was lost: %+v", st)
	}
}

func TestManagerIsolatesIdentities(t *testing.T) {
	mem := kv.NewMemory()
	m := NewManager(mem, nil)
	defer m.CloseAll()
	ctx := context.Background()

	alice := m.ForIdentity(ctx, "alice")
	for _, id := range []string{"a", "b", "c"} {
		if err := alice.AddItem(domain.Product{ID: id, PriceCents: 100}, 1); err != nil {
			t.Fatalf("AddItem %s: %v", id, err)
		}
	}
	alice.Flush()

	bob := m.ForIdentity(ctx, "bob")
	if st := bob.Snapshot(); len(st.Items) != 0 {
		t.Fatalf("bob must not see alice's cart: %+v", st)
	}

	// A fresh manager against the same storage restores alice's cart.
	m2 := NewManager(mem, nil)
	defer m2.CloseAll()
	again := m2.ForIdentity(ctx, "alice")
	if st := again.Snapshot(); len(st.Items) != 3 {
		t.Fatalf("expected alice's 3 items restored, got %+v", st)
	}
}
