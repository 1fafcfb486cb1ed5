package store

import (
	"context"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
)

// DefaultWriteTimeout bounds a single remote write.
const DefaultWriteTimeout = 10 * time.Second

type docKey struct {
	userID  uuid.UUID
	variant string
}

// Replicator mirrors configuration snapshots to the remote store from a
// single worker. Only the newest pending snapshot per (user, variant) is
// kept: a newer one replaces a snapshot that has not been written yet, so
// the remote document converges to the last enqueued snapshot and Enqueue
// never waits on remote I/O. Failures are logged and dropped.
type Replicator struct {
	remote  RemoteStore
	timeout time.Duration
	wake    chan struct{}
	done    chan struct{}

	mu      sync.Mutex
	pending map[docKey][]byte
	queue   []docKey
	closed  bool
}

// NewReplicator starts the replication worker.
func NewReplicator(remote RemoteStore, timeout time.Duration) *Replicator {
	if timeout <= 0 {
		timeout = DefaultWriteTimeout
	}
	r := &Replicator{
		remote:  remote,
		timeout: timeout,
		wake:    make(chan struct{}, 1),
		done:    make(chan struct{}),
		pending: make(map[docKey][]byte),
	}
	go r.run()
	return r
}

// Enqueue schedules a full-document write and returns immediately.
func (r *Replicator) Enqueue(userID uuid.UUID, variant string, doc []byte) {
	key := docKey{userID: userID, variant: variant}

	r.mu.Lock()
	if r.closed {
		r.mu.Unlock()
		log.Printf("[SYNC] replicator closed, dropping %s write for user %s", variant, userID)
		return
	}
	if _, queued := r.pending[key]; !queued {
		r.queue = append(r.queue, key)
	}
	r.pending[key] = doc
	r.mu.Unlock()

	r.signal()
}

// Pending returns the number of snapshots waiting to be written.
func (r *Replicator) Pending() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.queue)
}

func (r *Replicator) signal() {
	select {
	case r.wake <- struct{}{}:
	default:
	}
}

// next blocks until a snapshot is pending. ok is false once the replicator is
// closed and drained.
func (r *Replicator) next() (key docKey, doc []byte, ok bool) {
	for {
		r.mu.Lock()
		if len(r.queue) > 0 {
			key = r.queue[0]
			r.queue = r.queue[1:]
			doc = r.pending[key]
			delete(r.pending, key)
			r.mu.Unlock()
			return key, doc, true
		}
		closed := r.closed
		r.mu.Unlock()
		if closed {
			return docKey{}, nil, false
		}
		<-r.wake
	}
}

func (r *Replicator) run() {
	defer close(r.done)
	for {
		key, doc, ok := r.next()
		if !ok {
			return
		}
		ctx, cancel := context.WithTimeout(context.Background(), r.timeout)
		err := r.remote.PutTemplateConfig(ctx, key.userID, key.variant, doc)
		cancel()
		if err != nil {
			log.Printf("[SYNC] %v", &PersistenceError{Backend: "remote", Op: "write", Key: key.variant, Cause: err})
		}
	}
}

// Close stops accepting snapshots and waits for pending writes to finish or
// for ctx to expire.
func (r *Replicator) Close(ctx context.Context) error {
	r.mu.Lock()
	r.closed = true
	r.mu.Unlock()
	r.signal()

	select {
	case <-r.done:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
