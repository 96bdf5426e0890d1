package fs

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/arun100-dev/ContentHub/pkg/contenthub"
)

// Backend is a filesystem implementation of the contenthub.AssetStore interface
type Backend struct {
	baseDir   string
	urlPrefix string
}

// Config options for the filesystem backend
type Config struct {
	BaseDir   string // Base directory for storing uploads
	URLPrefix string // URL prefix of returned references (default "/uploads")
}

// New creates a new filesystem asset store. The base directory is ensured
// once here, never per store call.
func New(config Config) (*Backend, error) {
	if config.BaseDir == "" {
		return nil, errors.New("base directory is required")
	}
	if config.URLPrefix == "" {
		config.URLPrefix = "/uploads"
	}

	if err := os.MkdirAll(config.BaseDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create base directory: %w", err)
	}

	return &Backend{
		baseDir:   config.BaseDir,
		urlPrefix: strings.TrimSuffix(config.URLPrefix, "/"),
	}, nil
}

// BaseDir returns the directory uploads are written to, for static serving.
func (b *Backend) BaseDir() string {
	return b.baseDir
}

// Store writes the uploaded bytes to disk under a name of the form
// "<unixMilli>-<originalFilename>". Two uploads of the same filename within
// the same millisecond tick collide; that window is accepted behavior, not
// widened or narrowed here.
func (b *Backend) Store(ctx context.Context, originalFilename string, r io.Reader) (string, error) {
	name := fmt.Sprintf("%d-%s", time.Now().UnixMilli(), filepath.Base(originalFilename))
	filePath := filepath.Join(b.baseDir, name)

	file, err := os.Create(filePath)
	if err != nil {
		return "", &contenthub.StorageError{Store: "fs", Key: name, Op: "store", Err: err}
	}

	if _, err := io.Copy(file, r); err != nil {
		file.Close()
		// Remove the partial file so a failed store leaves nothing addressable.
		os.Remove(filePath)
		return "", &contenthub.StorageError{Store: "fs", Key: name, Op: "store", Err: err}
	}

	if err := file.Close(); err != nil {
		os.Remove(filePath)
		return "", &contenthub.StorageError{Store: "fs", Key: name, Op: "store", Err: err}
	}

	return b.urlPrefix + "/" + name, nil
}

// Open returns the stored bytes for a reference previously returned by Store.
func (b *Backend) Open(ctx context.Context, storedRef string) (io.ReadCloser, error) {
	file, err := os.Open(filepath.Join(b.baseDir, b.storedName(storedRef)))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, contenthub.ErrAssetNotFound
		}
		return nil, &contenthub.StorageError{Store: "fs", Key: storedRef, Op: "open", Err: err}
	}

	return file, nil
}

// Delete removes a stored asset from disk.
func (b *Backend) Delete(ctx context.Context, storedRef string) error {
	filePath := filepath.Join(b.baseDir, b.storedName(storedRef))

	if _, err := os.Stat(filePath); os.IsNotExist(err) {
		return contenthub.ErrAssetNotFound
	}

	if err := os.Remove(filePath); err != nil {
		return &contenthub.StorageError{Store: "fs", Key: storedRef, Op: "delete", Err: err}
	}

	return nil
}

// storedName strips the URL prefix so both full references and bare stored
// names resolve to the same file.
func (b *Backend) storedName(storedRef string) string {
	return path.Base(storedRef)
}
