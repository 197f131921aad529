package pinning

// memory.go provides an in-process content-addressed store for dev and tests.

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"io"
	"sync"
)

// MemoryStore is an in-process Service implementation. Content is addressed
// by digest, mimicking a content-addressed store: pinning identical bytes
// twice yields the same address.
type MemoryStore struct {
	mu    sync.Mutex
	blobs map[string][]byte
}

// NewMemoryStore creates an empty in-process content store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{blobs: make(map[string][]byte)}
}

// Pin stores the content in memory and returns its address.
func (m *MemoryStore) Pin(ctx context.Context, r io.Reader, hint string) (string, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return "", WrapUnavailableError(err, "failed to read content for pinning")
	}

	sum := sha256.Sum256(data)
	address := fmt.Sprintf("mem-%s", hex.EncodeToString(sum[:23]))

	m.mu.Lock()
	m.blobs[address] = data
	m.mu.Unlock()

	return address, nil
}

// Get retrieves pinned content by address. Used by tests to check that the
// bytes referenced by the registry were actually stored.
func (m *MemoryStore) Get(address string) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	data, ok := m.blobs[address]
	return data, ok
}

// Len reports the number of pinned blobs.
func (m *MemoryStore) Len() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.blobs)
}
