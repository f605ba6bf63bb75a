// Package store provides the backing store for out-of-line values. A value
// too large to keep inline is put here and referenced by an opaque 64-bit
// handle; the datum layer fetches it back when the logical bytes are needed.
package store

import (
	"errors"
	"sync"

	"github.com/satmihir/relhash/internal/constants"
	"github.com/satmihir/relhash/internal/utils"
)

var (
	ErrValueNotFound       = errors.New("value reference not found")
	ErrDeleteValueNotFound = errors.New("delete value reference not found")
	ErrMemoryLimitExceeded = errors.New("memory limit exceeded")
	ErrValueTooLarge       = errors.New("value exceeds maximum size")
	ErrValueTooShort       = errors.New("value is too short")
)

// MemoryStore keeps out-of-line value bytes in memory with bounded usage.
// It is safe for concurrent use.
type MemoryStore struct {
	// We use a mutex to protect the store.
	mutex sync.Mutex
	// We count the bytes of all values held by the store.
	memoryUsedBytes uint64
	// We set a maximum memory limit for the store.
	maxMemory uint64
	// Values keyed by their reference handle.
	values map[uint64][]byte
	// Next reference handle to hand out. Handles are never reused.
	nextRef uint64
}

// StoreOptions configures the in-memory store.
type StoreOptions struct {
	// InitialCapacity is a hint for the expected number of values.
	// Pre-allocating reduces map resizing overhead.
	InitialCapacity int
}

func NewMemoryStore(maxMemory uint64, opts ...StoreOptions) *MemoryStore {
	initialCapacity := 0
	if len(opts) > 0 {
		initialCapacity = opts[0].InitialCapacity
	}

	return &MemoryStore{
		values:    make(map[uint64][]byte, initialCapacity),
		maxMemory: maxMemory,
		nextRef:   1, // reference 0 is reserved as invalid
	}
}

// Put copies value into the store and returns its reference handle.
func (s *MemoryStore) Put(value []byte) (uint64, error) {
	if len(value) == 0 {
		return 0, ErrValueTooShort
	}

	if len(value) > constants.MaxStoreValueSizeBytes {
		return 0, ErrValueTooLarge
	}

	s.mutex.Lock()
	defer s.mutex.Unlock()

	size := uint64(len(value))
	if s.memoryUsedBytes+size > s.maxMemory {
		return 0, ErrMemoryLimitExceeded
	}

	// Copy so later mutation of the caller's slice cannot change what a
	// fetch observes.
	stored := make([]byte, len(value))
	copy(stored, value)

	ref := s.nextRef
	s.nextRef++
	s.values[ref] = stored
	s.memoryUsedBytes += size

	return ref, nil
}

// Fetch returns the stored bytes for the given reference. The returned
// slice is owned by the store and must be treated as read-only.
func (s *MemoryStore) Fetch(ref uint64) ([]byte, error) {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	value, ok := s.values[ref]
	if !ok {
		return nil, ErrValueNotFound
	}

	return value, nil
}

// Delete removes the value for the given reference.
func (s *MemoryStore) Delete(ref uint64) error {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	value, ok := s.values[ref]
	if !ok {
		return ErrDeleteValueNotFound
	}

	size := uint64(len(value))
	utils.MustBeTrue(s.memoryUsedBytes >= size, "value store accounting underflow")

	delete(s.values, ref)
	s.memoryUsedBytes -= size

	return nil
}

// MemoryUsedBytes returns the bytes currently held by the store.
func (s *MemoryStore) MemoryUsedBytes() uint64 {
	s.mutex.Lock()
	defer s.mutex.Unlock()

	return s.memoryUsedBytes
}
