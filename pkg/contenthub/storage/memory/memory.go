package memory

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"path"
	"sync"
	"time"

	"github.com/arun100-dev/ContentHub/pkg/contenthub"
)

// Backend is an in-memory implementation of the contenthub.AssetStore
// interface, used by tests and local development.
type Backend struct {
	mu        sync.RWMutex
	urlPrefix string
	assets    map[string][]byte
}

// New creates a new in-memory asset store
func New() *Backend {
	return &Backend{
		urlPrefix: "/uploads",
		assets:    make(map[string][]byte),
	}
}

// Store keeps the uploaded bytes in memory under the same naming scheme as
// the filesystem backend.
func (b *Backend) Store(ctx context.Context, originalFilename string, r io.Reader) (string, error) {
	name := fmt.Sprintf("%d-%s", time.Now().UnixMilli(), path.Base(originalFilename))

	data, err := io.ReadAll(r)
	if err != nil {
		return "", &contenthub.StorageError{Store: "memory", Key: name, Op: "store", Err: err}
	}

	b.mu.Lock()
	defer b.mu.Unlock()

	b.assets[name] = data
	return b.urlPrefix + "/" + name, nil
}

// Open returns the stored bytes for a reference previously returned by Store.
func (b *Backend) Open(ctx context.Context, storedRef string) (io.ReadCloser, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()

	data, exists := b.assets[path.Base(storedRef)]
	if !exists {
		return nil, contenthub.ErrAssetNotFound
	}

	return io.NopCloser(bytes.NewReader(data)), nil
}

// Delete removes a stored asset.
func (b *Backend) Delete(ctx context.Context, storedRef string) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	name := path.Base(storedRef)
	if _, exists := b.assets[name]; !exists {
		return contenthub.ErrAssetNotFound
	}

	delete(b.assets, name)
	return nil
}
