package blob

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sort"
	"sync"

	"drive-go/internal/drive"
)

// MemoryStore keeps blobs in a map. It is meant for tests and for the
// "memory" blob store type. Safe for concurrent use.
type MemoryStore struct {
	mu    sync.RWMutex
	blobs map[string][]byte
}

// NewMemoryStore creates an empty MemoryStore.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{blobs: make(map[string][]byte)}
}

func (m *MemoryStore) Save(ctx context.Context, p string, r io.Reader) (string, error) {
	key, err := cleanKey(p)
	if err != nil {
		return "", err
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("failed to read content: %w", err)
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	m.blobs[key] = data
	return key, nil
}

func (m *MemoryStore) Get(ctx context.Context, p string, w io.Writer) error {
	m.mu.RLock()
	data, ok := m.blobs[p]
	m.mu.RUnlock()
	if !ok {
		return fmt.Errorf("%w: %s", ErrNotFound, p)
	}
	if _, err := io.Copy(w, bytes.NewReader(data)); err != nil {
		return fmt.Errorf("failed to write content: %w", err)
	}
	return nil
}

// Delete removes the blob. Deleting a missing blob is not an error.
func (m *MemoryStore) Delete(ctx context.Context, p string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.blobs, p)
	return nil
}

func (m *MemoryStore) Exists(ctx context.Context, p string) (bool, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	_, ok := m.blobs[p]
	return ok, nil
}

// ValidateSetup always succeeds for the in-memory store.
func (m *MemoryStore) ValidateSetup(ctx context.Context) error {
	return nil
}

// Paths returns every stored path in sorted order.
func (m *MemoryStore) Paths() []string {
	m.mu.RLock()
	defer m.mu.RUnlock()
	paths := make([]string, 0, len(m.blobs))
	for p := range m.blobs {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths
}

// Compile-time check that MemoryStore implements drive.BlobStore.
var _ drive.BlobStore = (*MemoryStore)(nil)
