// Package store holds the template configurations of one user and persists
// every change offline-first: synchronously to a local cache, then
// asynchronously to a remote store.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jonathan/resume-studio/internal/registry"
	"github.com/jonathan/resume-studio/internal/schemas"
	"github.com/jonathan/resume-studio/internal/types"
	"golang.org/x/sync/errgroup"
)

// LocalCache is the fast, synchronous persistence layer. Get returns nil
// when the key is absent.
type LocalCache interface {
	Get(userID uuid.UUID, key string) ([]byte, error)
	Put(userID uuid.UUID, key string, doc []byte) error
}

// RemoteStore is the durable per-user document store. GetTemplateConfig
// returns nil when no document exists. PutTemplateConfig overwrites the
// whole document.
type RemoteStore interface {
	GetTemplateConfig(ctx context.Context, userID uuid.UUID, variant string) ([]byte, error)
	PutTemplateConfig(ctx context.Context, userID uuid.UUID, variant string, doc []byte) error
}

// Updater computes the next configuration from the previous one. It receives
// a private copy and may modify it in place.
type Updater = func(prev types.TemplateConfig) types.TemplateConfig

// Options tunes the store. Zero values use defaults.
type Options struct {
	WriteTimeout time.Duration
	// Replicator is shared with other stores when set. The store then never
	// closes it; the owner does.
	Replicator *Replicator
}

// Store owns the configuration of every template variant for one user.
// All mutation goes through Patch.
type Store struct {
	userID     uuid.UUID
	local      LocalCache
	remote     RemoteStore
	replicator *Replicator
	ownsRepl   bool

	mu        sync.Mutex
	configs   map[registry.Variant]types.TemplateConfig
	defaulted map[registry.Variant]bool
	locks     map[registry.Variant]*sync.Mutex
	degraded  bool
}

// New creates a store. local and remote may be nil; without a local cache
// the store runs in memory only, without a remote store nothing is replicated.
func New(userID uuid.UUID, local LocalCache, remote RemoteStore, opts Options) *Store {
	s := &Store{
		userID:  userID,
		local:   local,
		remote:  remote,
		configs:   make(map[registry.Variant]types.TemplateConfig),
		defaulted: make(map[registry.Variant]bool),
		locks:     make(map[registry.Variant]*sync.Mutex),
	}
	switch {
	case opts.Replicator != nil:
		s.replicator = opts.Replicator
	case remote != nil:
		s.replicator = NewReplicator(remote, opts.WriteTimeout)
		s.ownsRepl = true
	}
	if local == nil {
		s.degraded = true
	}
	return s
}

// Defaulted reports whether the configuration of v was synthesized from the
// registry defaults and has not been persisted yet.
func (s *Store) Defaulted(v registry.Variant) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.defaulted[v]
}

// UserID returns the owner of the configurations.
func (s *Store) UserID() uuid.UUID {
	return s.userID
}

// Degraded reports whether the local cache is unavailable and the store is
// running in memory only.
func (s *Store) Degraded() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.degraded
}

func (s *Store) variantLock(v registry.Variant) *sync.Mutex {
	s.mu.Lock()
	defer s.mu.Unlock()
	l, ok := s.locks[v]
	if !ok {
		l = &sync.Mutex{}
		s.locks[v] = l
	}
	return l
}

// Load returns the configuration of variant v. The first call per variant
// reads the local cache, then the remote store, and falls back to the
// registry defaults.
func (s *Store) Load(ctx context.Context, v registry.Variant) (types.TemplateConfig, error) {
	if _, err := registry.Lookup(v); err != nil {
		return types.TemplateConfig{}, err
	}
	l := s.variantLock(v)
	l.Lock()
	defer l.Unlock()

	cfg, err := s.loadLocked(ctx, v)
	if err != nil {
		return types.TemplateConfig{}, err
	}
	return cfg.Clone(), nil
}

// LoadAll preloads every registered variant concurrently.
func (s *Store) LoadAll(ctx context.Context) error {
	g, gctx := errgroup.WithContext(ctx)
	for _, v := range registry.Variants() {
		g.Go(func() error {
			_, err := s.Load(gctx, v)
			return err
		})
	}
	return g.Wait()
}

func (s *Store) loadLocked(ctx context.Context, v registry.Variant) (types.TemplateConfig, error) {
	s.mu.Lock()
	cfg, ok := s.configs[v]
	s.mu.Unlock()
	if ok {
		return cfg, nil
	}

	key, err := registry.CacheKey(v)
	if err != nil {
		return types.TemplateConfig{}, err
	}

	if doc := s.readLocal(key); doc != nil {
		if cfg, ok := decode(key, doc); ok {
			s.remember(v, cfg)
			return cfg, nil
		}
	}

	if s.remote != nil {
		doc, err := s.remote.GetTemplateConfig(ctx, s.userID, string(v))
		switch {
		case err != nil && ctx.Err() != nil:
			return types.TemplateConfig{}, fmt.Errorf("failed to load %s configuration: %w", v, ctx.Err())
		case err != nil:
			log.Printf("[STORE] %v", &PersistenceError{Backend: "remote", Op: "read", Key: string(v), Cause: err})
		case doc != nil:
			if cfg, ok := decode(key, doc); ok {
				s.writeLocal(key, doc)
				s.remember(v, cfg)
				return cfg, nil
			}
		}
	}

	cfg, err = registry.DefaultConfig(v)
	if err != nil {
		return types.TemplateConfig{}, err
	}
	s.remember(v, cfg)
	s.mu.Lock()
	s.defaulted[v] = true
	s.mu.Unlock()
	return cfg, nil
}

// Patch applies updater to the current configuration of v. The result must
// satisfy the registry invariants, the field formats and the document
// schema used when loading, otherwise nothing is changed and the validation
// error is returned. An accepted value is held in
// memory, written to the local cache and queued for remote replication
// before Patch returns; persistence failures are logged, not returned.
func (s *Store) Patch(ctx context.Context, v registry.Variant, updater Updater) (types.TemplateConfig, error) {
	if _, err := registry.Lookup(v); err != nil {
		return types.TemplateConfig{}, err
	}
	l := s.variantLock(v)
	l.Lock()
	defer l.Unlock()

	prev, err := s.loadLocked(ctx, v)
	if err != nil {
		return types.TemplateConfig{}, err
	}

	next := updater(prev.Clone())
	if err := registry.Validate(v, next); err != nil {
		return prev.Clone(), err
	}
	if err := next.Validate(); err != nil {
		return prev.Clone(), fmt.Errorf("invalid %s configuration: %w", v, err)
	}

	doc, err := json.Marshal(next)
	if err != nil {
		return prev.Clone(), fmt.Errorf("failed to encode %s configuration: %w", v, err)
	}
	if err := schemas.ValidateTemplateConfig(doc); err != nil {
		return prev.Clone(), err
	}

	s.remember(v, next)
	s.mu.Lock()
	delete(s.defaulted, v)
	s.mu.Unlock()
	key, _ := registry.CacheKey(v)
	s.writeLocal(key, doc)
	if s.replicator != nil {
		s.replicator.Enqueue(s.userID, string(v), doc)
	}
	return next.Clone(), nil
}

// Close drains pending remote writes. A shared replicator is left running.
func (s *Store) Close(ctx context.Context) error {
	if s.replicator == nil || !s.ownsRepl {
		return nil
	}
	return s.replicator.Close(ctx)
}

func (s *Store) remember(v registry.Variant, cfg types.TemplateConfig) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.configs[v] = cfg.Clone()
}

func (s *Store) readLocal(key string) []byte {
	if s.Degraded() {
		return nil
	}
	doc, err := s.local.Get(s.userID, key)
	if err != nil {
		s.degrade(&PersistenceError{Backend: "local", Op: "read", Key: key, Cause: err})
		return nil
	}
	return doc
}

func (s *Store) writeLocal(key string, doc []byte) {
	if s.Degraded() {
		return
	}
	if err := s.local.Put(s.userID, key, doc); err != nil {
		s.degrade(&PersistenceError{Backend: "local", Op: "write", Key: key, Cause: err})
	}
}

func (s *Store) degrade(err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.degraded {
		log.Printf("[STORE] local cache unavailable, keeping configuration in memory only: %v", err)
	}
	s.degraded = true
}

func decode(key string, doc []byte) (types.TemplateConfig, bool) {
	if err := schemas.ValidateTemplateConfig(doc); err != nil {
		var verr *schemas.ValidationError
		if errors.As(err, &verr) {
			log.Printf("[STORE] ignoring invalid %s document: %v", key, verr.Errors)
		} else {
			log.Printf("[STORE] ignoring unreadable %s document: %v", key, err)
		}
		return types.TemplateConfig{}, false
	}
	var cfg types.TemplateConfig
	if err := json.Unmarshal(doc, &cfg); err != nil {
		log.Printf("[STORE] ignoring undecodable %s document: %v", key, err)
		return types.TemplateConfig{}, false
	}
	return cfg, true
}
