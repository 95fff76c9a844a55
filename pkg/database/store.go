package database

import "errors"

// ErrStoreUnavailable marks record-store outages. Operations that hit it
// return no partial result; callers translate it to a 500.
var ErrStoreUnavailable = errors.New("record store unavailable")

// Store is the key-value contract every daily record goes through.
// GetByPrefix returns values in insertion order of their first write; the
// weekly aggregator relies on that order for its tie-break.
type Store interface {
	// Get returns the stored value, or nil when the key does not exist.
	Get(key string) ([]byte, error)
	Set(key string, value []byte) error
	GetByPrefix(prefix string) ([][]byte, error)
}
