package storage

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"sync"

	"github.com/heartmarshall/voicerec-backend/internal/domain"
)

type memoryObject struct {
	data        []byte
	contentType string
}

// MemoryStore is an in-memory ObjectStore for development and tests.
// It is safe for concurrent use.
type MemoryStore struct {
	bucket  string
	baseURL string
	objects map[string]memoryObject
	mu      sync.RWMutex
}

// NewMemoryStore creates an empty in-memory store. An empty baseURL yields
// "memory://" URLs.
func NewMemoryStore(bucket, baseURL string) *MemoryStore {
	if baseURL == "" {
		baseURL = "memory://"
	}
	return &MemoryStore{
		bucket:  bucket,
		baseURL: baseURL,
		objects: make(map[string]memoryObject),
	}
}

// Put stores the object, replacing any previous content at path.
func (m *MemoryStore) Put(_ context.Context, path string, r io.Reader, size int64, contentType string) error {
	data, err := io.ReadAll(r)
	if err != nil {
		return fmt.Errorf("read object %s: %w", path, err)
	}

	if size >= 0 && int64(len(data)) != size {
		return fmt.Errorf("size mismatch for %s: expected %d bytes, got %d", path, size, len(data))
	}

	m.mu.Lock()
	defer m.mu.Unlock()

	m.objects[path] = memoryObject{data: data, contentType: contentType}
	return nil
}

// Get copies the stored object to w.
func (m *MemoryStore) Get(_ context.Context, path string, w io.Writer) error {
	m.mu.RLock()
	obj, ok := m.objects[path]
	m.mu.RUnlock()

	if !ok {
		return fmt.Errorf("object %s: %w", path, domain.ErrNotFound)
	}

	if _, err := io.Copy(w, bytes.NewReader(obj.data)); err != nil {
		return fmt.Errorf("write object %s: %w", path, err)
	}
	return nil
}

// Remove deletes the object if present.
func (m *MemoryStore) Remove(_ context.Context, path string) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	delete(m.objects, path)
	return nil
}

// PublicURL returns a URL under the configured base.
func (m *MemoryStore) PublicURL(path string) string {
	return publicURL(m.baseURL, m.bucket, path)
}

// Check always succeeds for the in-memory store.
func (m *MemoryStore) Check(context.Context) error {
	return nil
}

// ContentType returns the content type recorded for path.
func (m *MemoryStore) ContentType(path string) (string, bool) {
	m.mu.RLock()
	defer m.mu.RUnlock()

	obj, ok := m.objects[path]
	return obj.contentType, ok
}

// Len returns the number of stored objects.
func (m *MemoryStore) Len() int {
	m.mu.RLock()
	defer m.mu.RUnlock()
	return len(m.objects)
}

var _ ObjectStore = (*MemoryStore)(nil)
