package gcs

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"cloud.google.com/go/storage"
)

// MockStorageService implements StorageService against an in-memory
// object map for testing. Keys are "bucket/object" pairs.
type MockStorageService struct {
	Objects map[string][]byte

	ListErr     error
	DownloadErr error
}

// NewMockStorageService creates a mock store holding the given objects.
func NewMockStorageService(objects map[string][]byte) *MockStorageService {
	if objects == nil {
		objects = map[string][]byte{}
	}
	return &MockStorageService{Objects: objects}
}

// ListObjects returns the keys under prefix in the bucket, sorted
// lexicographically the way the real store lists them.
func (m *MockStorageService) ListObjects(_ context.Context, bucket, prefix string) ([]string, error) {
	if m.ListErr != nil {
		return nil, m.ListErr
	}

	var keys []string
	bucketPrefix := bucket + "/"
	for stored := range m.Objects {
		if !strings.HasPrefix(stored, bucketPrefix) {
			continue
		}
		key := strings.TrimPrefix(stored, bucketPrefix)
		if strings.HasPrefix(key, prefix) {
			keys = append(keys, key)
		}
	}

	sort.Strings(keys)
	return keys, nil
}

// DownloadObject returns the stored object content or an error if absent.
func (m *MockStorageService) DownloadObject(_ context.Context, bucket, object string) ([]byte, error) {
	if m.DownloadErr != nil {
		return nil, m.DownloadErr
	}

	data, ok := m.Objects[bucket+"/"+object]
	if !ok {
		return nil, fmt.Errorf("open object %s/%s: %w", bucket, object, storage.ErrObjectNotExist)
	}
	return data, nil
}
