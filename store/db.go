package store

import "errors"

// ErrNotFound is returned by Load when nothing is stored under a key.
var ErrNotFound = errors.New("key not found")

// Storage is the durable key-value storage interface. Values are opaque JSON
// documents; callers always save the full document for a key.
type Storage interface {
	// Load returns the value stored under key, or ErrNotFound
	Load(key string) ([]byte, error)
	// Save replaces the value stored under key
	Save(key string, value []byte) error
	// Close ends the database connection
	Close() error
}
