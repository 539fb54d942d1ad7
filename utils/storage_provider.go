package utils

import (
	"context"
	"os"
	"strings"
	"sync"
)

const (
	StorageProviderGCS    = "gcs"
	StorageProviderMemory = "memory"
)

// BlobStore holds document contents and thumbnails by object key.
type BlobStore interface {
	Put(ctx context.Context, key string, data []byte, contentType string) error
	Get(ctx context.Context, key string) ([]byte, error)
	Delete(ctx context.Context, key string) error
}

func GetStorageProvider() string {
	provider := strings.TrimSpace(strings.ToLower(os.Getenv("STORAGE_PROVIDER")))
	if provider == "" {
		return StorageProviderGCS
	}
	return provider
}

var (
	blobStore     BlobStore
	blobStoreOnce sync.Once
)

// GetBlobStore picks the store named by STORAGE_PROVIDER once per process.
func GetBlobStore() BlobStore {
	blobStoreOnce.Do(func() {
		if blobStore != nil {
			return
		}
		switch GetStorageProvider() {
		case StorageProviderMemory:
			blobStore = NewMemoryBlobStore()
		default:
			blobStore = gcsStore{}
		}
	})
	return blobStore
}

// UseBlobStore replaces the process store. Tests install a MemoryBlobStore.
func UseBlobStore(s BlobStore) {
	blobStoreOnce.Do(func() {})
	blobStore = s
}

type MemoryBlobStore struct {
	mu    sync.RWMutex
	blobs map[string][]byte
}

func NewMemoryBlobStore() *MemoryBlobStore {
	return &MemoryBlobStore{blobs: make(map[string][]byte)}
}

func (m *MemoryBlobStore) Put(_ context.Context, key string, data []byte, _ string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.blobs[key] = append([]byte(nil), data...)
	return nil
}

func (m *MemoryBlobStore) Get(_ context.Context, key string) ([]byte, error) {
	m.mu.RLock()
	defer m.mu.RUnlock()
	data, ok := m.blobs[key]
	if !ok {
		return nil, ErrorRecordNotFound
	}
	return append([]byte(nil), data...), nil
}

func (m *MemoryBlobStore) Delete(_ context.Context, key string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.blobs, key)
	return nil
}

func (m *MemoryBlobStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.blobs)
}
