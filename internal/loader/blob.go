package loader

import (
	"crypto/rand"
	"errors"
	"strings"
	"sync"
	"time"

	"github.com/oklog/ulid/v2"
)

// BlobScheme prefixes in-process blob handles.
const BlobScheme = "blob:"

// ErrBlobNotFound is returned for a handle that was never registered or was released.
var ErrBlobNotFound = errors.New("blob not found")

// BlobRegistry holds artifact bytes handed over in-process, such as stdin
// or an inline MCP argument, under opaque "blob:" handles.
type BlobRegistry struct {
	mu    sync.RWMutex
	blobs map[string][]byte
}

// NewBlobRegistry returns an empty registry.
func NewBlobRegistry() *BlobRegistry {
	return &BlobRegistry{blobs: make(map[string][]byte)}
}

// Put stores a copy of data and returns its new handle.
func (r *BlobRegistry) Put(data []byte) string {
	handle := BlobScheme + ulid.MustNew(ulid.Timestamp(time.Now()), rand.Reader).String()
	r.mu.Lock()
	defer r.mu.Unlock()
	r.blobs[handle] = append([]byte(nil), data...)
	return handle
}

// Get returns the bytes stored under handle.
func (r *BlobRegistry) Get(handle string) ([]byte, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	data, ok := r.blobs[handle]
	if !ok {
		return nil, ErrBlobNotFound
	}
	return data, nil
}

// Release drops a handle. Releasing an unknown handle is a no-op.
func (r *BlobRegistry) Release(handle string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.blobs, handle)
}

// Len returns the number of live handles.
func (r *BlobRegistry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.blobs)
}

// IsBlobHandle reports whether desc uses the blob scheme.
func IsBlobHandle(desc string) bool {
	return strings.HasPrefix(strings.ToLower(desc), BlobScheme)
}
