package store

import "fmt"

// PersistenceError describes a failed local cache or remote store operation.
// It is logged, never returned from Patch.
type PersistenceError struct {
	Backend string // "local" or "remote"
	Op      string // "read" or "write"
	Key     string
	Cause   error
}

func (e *PersistenceError) Error() string {
	return fmt.Sprintf("%s %s failed for %s: %v", e.Backend, e.Op, e.Key, e.Cause)
}

func (e *PersistenceError) Unwrap() error {
	return e.Cause
}
