// Package cache provides the local configuration caches: a bbolt file for
// durable on-device storage and an in-memory map for tests and ephemeral runs.
package cache

import (
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"sync"
	"time"

	"github.com/google/uuid"
	bolt "go.etcd.io/bbolt"
)

// DefaultOpenTimeout bounds waiting for the bbolt file lock.
const DefaultOpenTimeout = time.Second

// Bolt is a LocalCache backed by a bbolt file with one bucket per user.
type Bolt struct {
	db *bolt.DB
}

// OpenBolt opens (or creates) the cache file at path.
func OpenBolt(path string) (*Bolt, error) {
	if dir := filepath.Dir(path); dir != "" && dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("failed to create cache directory: %w", err)
		}
	}
	db, err := bolt.Open(path, 0600, &bolt.Options{Timeout: DefaultOpenTimeout})
	if err != nil {
		return nil, fmt.Errorf("failed to open cache %s: %w", path, err)
	}
	return &Bolt{db: db}, nil
}

// Close closes the cache file.
func (b *Bolt) Close() error {
	if b.db == nil {
		return nil
	}
	return b.db.Close()
}

// Get returns the document stored under key, or nil when absent.
func (b *Bolt) Get(userID uuid.UUID, key string) ([]byte, error) {
	var out []byte
	err := b.db.View(func(tx *bolt.Tx) error {
		bucket := tx.Bucket([]byte(userID.String()))
		if bucket == nil {
			return nil
		}
		if v := bucket.Get([]byte(key)); v != nil {
			// bbolt values are only valid inside the transaction
			out = slices.Clone(v)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", key, err)
	}
	return out, nil
}

// Put stores doc under key, replacing any previous value.
func (b *Bolt) Put(userID uuid.UUID, key string, doc []byte) error {
	err := b.db.Update(func(tx *bolt.Tx) error {
		bucket, err := tx.CreateBucketIfNotExists([]byte(userID.String()))
		if err != nil {
			return err
		}
		return bucket.Put([]byte(key), doc)
	})
	if err != nil {
		return fmt.Errorf("failed to write %s: %w", key, err)
	}
	return nil
}

// Keys lists the keys stored for a user.
func (b *Bolt) Keys(userID uuid.UUID) ([]string, error) {
	var keys []string
	err := b.db.View(func(tx *bolt.Tx) error {
		bucket := tx.Bucket([]byte(userID.String()))
		if bucket == nil {
			return nil
		}
		return bucket.ForEach(func(k, _ []byte) error {
			keys = append(keys, string(k))
			return nil
		})
	})
	if err != nil {
		return nil, fmt.Errorf("failed to list keys: %w", err)
	}
	return keys, nil
}

// Memory is a LocalCache held in process memory.
type Memory struct {
	mu   sync.RWMutex
	docs map[string][]byte
}

// NewMemory creates an empty in-memory cache.
func NewMemory() *Memory {
	return &Memory{docs: make(map[string][]byte)}
}

func memoryKey(userID uuid.UUID, key string) string {
	return userID.String() + "/" + key
}

// Get returns a copy of the stored document or nil.
func (m *Memory) Get(userID uuid.UUID, key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return slices.Clone(m.docs[memoryKey(userID, key)]), nil
}

// Put stores a copy of doc.
func (m *Memory) Put(userID uuid.UUID, key string, doc []byte) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.docs[memoryKey(userID, key)] = slices.Clone(doc)
	return nil
}
