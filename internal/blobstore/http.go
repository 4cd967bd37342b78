package blobstore

import (
	"context"
	"fmt"
	"io"
	"time"

	"github.com/go-resty/resty/v2"
)

// HTTPStore pushes blobs to a remote image service over HTTP multipart
// upload (Cloudinary-style unsigned upload endpoint). The service is
// expected to answer with the stored asset's id and delivery URL.
type HTTPStore struct {
	client    *resty.Client
	uploadURL string
	preset    string
}

type uploadResponse struct {
	PublicID string `json:"public_id"`
	URL      string `json:"secure_url"`
}

// NewHTTPStore creates an HTTPStore for the given upload endpoint.
func NewHTTPStore(uploadURL, preset string) *HTTPStore {
	client := resty.New().
		SetTimeout(30 * time.Second).
		SetRetryCount(2).
		SetRetryWaitTime(500 * time.Millisecond)
	return &HTTPStore{client: client, uploadURL: uploadURL, preset: preset}
}

func (s *HTTPStore) Put(ctx context.Context, name, contentType string, r io.Reader) (string, string, error) {
	var out uploadResponse
	resp, err := s.client.R().
		SetContext(ctx).
		SetFileReader("file", name, r).
		SetFormData(map[string]string{"upload_preset": s.preset}).
		SetResult(&out).
		Post(s.uploadURL)
	if err != nil {
		return "", "", fmt.Errorf("%w: %v", ErrUploadFailed, err)
	}
	if resp.IsError() {
		return "", "", fmt.Errorf("%w: status %d", ErrUploadFailed, resp.StatusCode())
	}
	if out.URL == "" {
		return "", "", fmt.Errorf("%w: empty url in response", ErrUploadFailed)
	}
	return out.PublicID, out.URL, nil
}
