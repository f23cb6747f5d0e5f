package cart

import (
	"context"
	"log"
	"sync"

	"shoppico/internal/kv"
)

// persister drains cart blobs to the durable store on its own goroutine.
// Writes coalesce per key: a mutation issued while an earlier write for
// the same key is still pending replaces the pending blob, so rapid
// mutations cost at most one storage round-trip each flush.
type persister struct {
	store   kv.Store
	logger  *log.Logger
	onError func(error)

	mu      sync.Mutex
	pending map[string][]byte

	// writeMu serializes write batches so a synchronous flush returns
	// only after any in-flight batch has reached storage.
	writeMu sync.Mutex

	wake      chan struct{}
	quit      chan struct{}
	done      chan struct{}
	closeOnce sync.Once
}

func newPersister(store kv.Store, logger *log.Logger, onError func(error)) *persister {
	p := &persister{
		store:   store,
		logger:  logger,
		onError: onError,
		pending: make(map[string][]byte),
		wake:    make(chan struct{}, 1),
		quit:    make(chan struct{}),
		done:    make(chan struct{}),
	}
	go p.run()
	return p
}

func (p *persister) enqueue(key string, blob []byte) {
	p.mu.Lock()
	p.pending[key] = blob
	p.mu.Unlock()

	select {
	case p.wake <- struct{}{}:
	default:
	}
}

func (p *persister) run() {
	defer close(p.done)
	for {
		select {
		case <-p.wake:
			p.flush()
		case <-p.quit:
			p.flush()
			return
		}
	}
}

func (p *persister) flush() {
	p.mu.Lock()
	batch := p.pending
	p.pending = make(map[string][]byte)
	p.mu.Unlock()

	p.writeMu.Lock()
	defer p.writeMu.Unlock()

	for key, blob := range batch {
		if err := p.store.Set(context.Background(), key, blob); err != nil {
			p.logger.Printf("cart persist: write key=%s error=%v", key, err)
			if p.onError != nil {
				p.onError(err)
			}
		}
	}
}

// close flushes pending writes and stops the writer goroutine. Safe to
// call more than once; later calls wait for the first to finish.
func (p *persister) close() {
	p.closeOnce.Do(func() {
		close(p.quit)
		<-p.done
	})
}
