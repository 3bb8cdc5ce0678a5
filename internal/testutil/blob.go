package testutil

import (
	"context"
	"errors"
	"io"
	"sync"

	"drive-go/internal/blob"
	"drive-go/internal/drive"
)

// NewTestBlobStore returns an empty in-memory blob store.
func NewTestBlobStore() *blob.MemoryStore {
	return blob.NewMemoryStore()
}

// ErrInjected is returned by FlakyBlobStore for injected failures.
var ErrInjected = errors.New("injected blob failure")

// FlakyBlobStore wraps a MemoryStore and fails the operations switched on.
type FlakyBlobStore struct {
	*blob.MemoryStore

	mu         sync.Mutex
	failSave   bool
	failDelete bool
	deletes    []string
}

var _ drive.BlobStore = (*FlakyBlobStore)(nil)

func NewFlakyBlobStore() *FlakyBlobStore {
	return &FlakyBlobStore{MemoryStore: blob.NewMemoryStore()}
}

// FailSave makes every following Save fail.
func (f *FlakyBlobStore) FailSave(fail bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failSave = fail
}

// FailDelete makes every following Delete fail.
func (f *FlakyBlobStore) FailDelete(fail bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failDelete = fail
}

// Deletes returns every path Delete was called with, including failed calls.
func (f *FlakyBlobStore) Deletes() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.deletes...)
}

func (f *FlakyBlobStore) Save(ctx context.Context, path string, r io.Reader) (string, error) {
	f.mu.Lock()
	fail := f.failSave
	f.mu.Unlock()
	if fail {
		return "", ErrInjected
	}
	return f.MemoryStore.Save(ctx, path, r)
}

func (f *FlakyBlobStore) Delete(ctx context.Context, path string) error {
	f.mu.Lock()
	f.deletes = append(f.deletes, path)
	fail := f.failDelete
	f.mu.Unlock()
	if fail {
		return ErrInjected
	}
	return f.MemoryStore.Delete(ctx, path)
}
