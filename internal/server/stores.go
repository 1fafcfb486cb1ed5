package server

import (
	"context"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jonathan/resume-studio/internal/store"
)

const (
	// DefaultStoreIdleTTL is how long an unused per-user store stays in memory.
	DefaultStoreIdleTTL = 30 * time.Minute
	// DefaultStoreCleanupInterval is how often idle stores are evicted.
	DefaultStoreCleanupInterval = 5 * time.Minute
)

type userStore struct {
	store      *store.Store
	lastAccess time.Time
}

// Stores hands out one configuration store per authenticated user. All
// stores share the local cache, the remote store and a single replicator.
// Stores idle for longer than the TTL are dropped and reloaded from the
// local cache on the next request.
type Stores struct {
	local      store.LocalCache
	remote     store.RemoteStore
	opts       store.Options
	replicator *store.Replicator
	idleTTL    time.Duration

	mu     sync.Mutex
	byUser map[uuid.UUID]*userStore
	now    func() time.Time

	stop     chan struct{}
	stopOnce sync.Once
}

// NewStores creates a registry and starts idle eviction. local and remote
// may be nil.
func NewStores(local store.LocalCache, remote store.RemoteStore, opts store.Options) *Stores {
	s := &Stores{
		local:   local,
		remote:  remote,
		idleTTL: DefaultStoreIdleTTL,
		byUser:  make(map[uuid.UUID]*userStore),
		now:     time.Now,
		stop:    make(chan struct{}),
	}
	if remote != nil && opts.Replicator == nil {
		s.replicator = store.NewReplicator(remote, opts.WriteTimeout)
		opts.Replicator = s.replicator
	}
	s.opts = opts
	go s.cleanup(DefaultStoreCleanupInterval)
	return s
}

// For returns the store of userID, creating it on first use.
func (s *Stores) For(userID uuid.UUID) *store.Store {
	s.mu.Lock()
	defer s.mu.Unlock()
	us, ok := s.byUser[userID]
	if !ok {
		us = &userStore{store: store.New(userID, s.local, s.remote, s.opts)}
		s.byUser[userID] = us
	}
	us.lastAccess = s.now()
	return us.store
}

// Len returns the number of live stores.
func (s *Stores) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.byUser)
}

func (s *Stores) cleanup(interval time.Duration) {
	ticker := time.NewTicker(interval)
	defer ticker.Stop()
	for {
		select {
		case <-ticker.C:
			s.evictIdle()
		case <-s.stop:
			return
		}
	}
}

// evictIdle drops stores unused within the idle TTL. A degraded store holds
// its configuration only in memory and is kept.
func (s *Stores) evictIdle() {
	cutoff := s.now().Add(-s.idleTTL)

	s.mu.Lock()
	defer s.mu.Unlock()
	for userID, us := range s.byUser {
		if us.lastAccess.Before(cutoff) && !us.store.Degraded() {
			delete(s.byUser, userID)
		}
	}
}

// Close stops eviction and drains pending remote writes.
func (s *Stores) Close(ctx context.Context) error {
	s.stopOnce.Do(func() { close(s.stop) })

	s.mu.Lock()
	s.byUser = make(map[uuid.UUID]*userStore)
	s.mu.Unlock()

	if s.replicator == nil {
		return nil
	}
	return s.replicator.Close(ctx)
}
