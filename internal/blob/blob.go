// Package blob defines the object store that holds every wiki record and
// provides the memory, badger and gorm backends for it.
package blob

import (
	"context"
	"errors"
)

// AnyGeneration disables the generation precondition of Put.
const AnyGeneration int64 = -1

var (
	// ErrNotFound is returned when no object exists under the key.
	ErrNotFound = errors.New("blob not found")
	// ErrConflict is returned when the generation precondition of Put does not hold.
	ErrConflict = errors.New("blob generation mismatch")
)

// Object is a stored value with its generation. The generation starts at 1 and
// grows by one on every write of the key.
type Object struct {
	Key        string
	Data       []byte
	Generation int64
}

// Store is a flat key-value object store where prefixes emulate folders.
type Store interface {
	// Get returns the object stored under key.
	Get(ctx context.Context, key string) (*Object, error)
	// Put writes data under key and returns the new generation.
	// ifGeneration is AnyGeneration for an unconditional write, 0 to require
	// that the key does not exist, or the generation the caller last read.
	Put(ctx context.Context, key string, data []byte, ifGeneration int64) (int64, error)
	// List returns the keys starting with prefix, in store order.
	List(ctx context.Context, prefix string) ([]string, error)
	// Delete removes the object stored under key.
	Delete(ctx context.Context, key string) error
	// Close releases the backend.
	Close() error
}

// checkGeneration applies the Put precondition against the current generation,
// where current is 0 for a missing key.
func checkGeneration(current, ifGeneration int64) error {
	if ifGeneration == AnyGeneration || ifGeneration == current {
		return nil
	}

	return ErrConflict
}
