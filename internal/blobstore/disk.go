package blobstore

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
)

// DiskStore writes blobs under a local directory and serves them through a
// static file route. Good enough for single-node deployments and tests.
type DiskStore struct {
	dir     string
	baseURL string // e.g. http://localhost:8080/media
}

// NewDiskStore creates a DiskStore rooted at dir. The directory is created
// if it does not exist.
func NewDiskStore(dir, baseURL string) (*DiskStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating blob dir: %w", err)
	}
	return &DiskStore{dir: dir, baseURL: strings.TrimRight(baseURL, "/")}, nil
}

func (s *DiskStore) Put(ctx context.Context, name, contentType string, r io.Reader) (string, string, error) {
	if err := ctx.Err(); err != nil {
		return "", "", err
	}
	ext := filepath.Ext(name)
	ref := uuid.New().String() + ext

	f, err := os.Create(filepath.Join(s.dir, ref))
	if err != nil {
		return "", "", fmt.Errorf("%w: %v", ErrUploadFailed, err)
	}
	defer f.Close()

	if _, err := io.Copy(f, r); err != nil {
		os.Remove(f.Name())
		return "", "", fmt.Errorf("%w: %v", ErrUploadFailed, err)
	}
	return ref, s.baseURL + "/" + ref, nil
}
