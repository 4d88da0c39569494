package storage

import (
	"context"
	"errors"
	"net/url"
	"strings"
	"time"

	catalogapp "github.com/ecommerce/backend/internal/application/catalog"
)

var _ catalogapp.ObjectStorageService = (*StubObjectStorage)(nil)

// StubObjectStorage hands out unsigned URLs under BaseURL. It backs the image
// endpoints in development when no bucket is configured.
type StubObjectStorage struct {
	BaseURL string
}

// NewStubObjectStorage creates a StubObjectStorage for baseURL, defaulting
// to http://localhost:9000/products
func NewStubObjectStorage(baseURL string) *StubObjectStorage {
	if baseURL == "" {
		baseURL = "http://localhost:9000/products"
	}
	return &StubObjectStorage{BaseURL: strings.TrimRight(baseURL, "/")}
}

// GenerateUploadURL returns BaseURL/<key>?expires=<rfc3339>
func (s *StubObjectStorage) GenerateUploadURL(_ context.Context, storageKey, _ string, expiresIn time.Duration) (string, time.Time, error) {
	return s.url(storageKey, expiresIn)
}

// GenerateDownloadURL returns the same URL shape as uploads
func (s *StubObjectStorage) GenerateDownloadURL(_ context.Context, storageKey string, expiresIn time.Duration) (string, time.Time, error) {
	return s.url(storageKey, expiresIn)
}

// DeleteObject does nothing
func (s *StubObjectStorage) DeleteObject(_ context.Context, storageKey string) error {
	if storageKey == "" {
		return errors.New("storage key is required")
	}
	return nil
}

func (s *StubObjectStorage) url(storageKey string, expiresIn time.Duration) (string, time.Time, error) {
	if storageKey == "" {
		return "", time.Time{}, errors.New("storage key is required")
	}
	expiresAt := time.Now().Add(expiresIn)
	q := url.Values{"expires": []string{expiresAt.UTC().Format(time.RFC3339)}}
	return s.BaseURL + "/" + storageKey + "?" + q.Encode(), expiresAt, nil
}
