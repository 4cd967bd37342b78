// Package blobstore abstracts where photo evidence bytes live. The capture
// service only needs an opaque reference plus a URL the front end can load;
// whether that is a local directory or a remote image service is a
// deployment choice.
package blobstore

import (
	"context"
	"errors"
	"io"
)

// ErrUploadFailed is returned when the backing store rejects or loses an
// upload. Callers must not create metadata rows when they see it.
var ErrUploadFailed = errors.New("blob upload failed")

// Store accepts image bytes and returns a stable reference and a retrievable
// URL for them.
type Store interface {
	Put(ctx context.Context, name, contentType string, r io.Reader) (ref string, url string, err error)
}
