// Package gcs wraps the Google Cloud Storage operations the tap needs:
// listing objects under a prefix and downloading whole objects into
// memory. Statement sources in the object store are addressed with
// gs:// URIs.
package gcs

import (
	"context"
	"fmt"
	"io"
	"strings"

	"cloud.google.com/go/storage"
	"google.golang.org/api/iterator"
)

// URIScheme prefixes every object-store location the tap accepts.
const URIScheme = "gs://"

// StorageService provides an interface for the object-store operations.
// This interface enables mocking and testing of storage functionality.
type StorageService interface {
	// ListObjects returns every object key under prefix in the bucket,
	// in the order the store reports them.
	ListObjects(ctx context.Context, bucket, prefix string) ([]string, error)

	// DownloadObject fetches the whole object into memory.
	DownloadObject(ctx context.Context, bucket, object string) ([]byte, error)
}

// GCSStorageService is the concrete implementation of StorageService
// that interacts with Google Cloud Storage.
type GCSStorageService struct{}

// NewGCSStorageService creates a new instance of GCSStorageService.
func NewGCSStorageService() *GCSStorageService {
	return &GCSStorageService{}
}

// ListObjects lists the keys under prefix in the bucket.
func (s *GCSStorageService) ListObjects(ctx context.Context, bucket, prefix string) ([]string, error) {
	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("create storage client: %w", err)
	}
	defer client.Close()

	var keys []string
	it := client.Bucket(bucket).Objects(ctx, &storage.Query{Prefix: prefix})
	for {
		attrs, err := it.Next()
		if err == iterator.Done {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("list objects under %s%s/%s: %w", URIScheme, bucket, prefix, err)
		}
		keys = append(keys, attrs.Name)
	}

	return keys, nil
}

// DownloadObject fetches the whole object into memory.
func (s *GCSStorageService) DownloadObject(ctx context.Context, bucket, object string) ([]byte, error) {
	client, err := storage.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("create storage client: %w", err)
	}
	defer client.Close()

	r, err := client.Bucket(bucket).Object(object).NewReader(ctx)
	if err != nil {
		return nil, fmt.Errorf("open object reader: %w", err)
	}
	defer r.Close()

	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read object: %w", err)
	}

	return data, nil
}

// IsObjectStoreURI reports whether the path points into the object store.
func IsObjectStoreURI(path string) bool {
	return strings.HasPrefix(path, URIScheme)
}

// ParseURI splits "gs://bucket/key" into bucket and key. The key may be
// empty when the URI names a whole bucket ("gs://bucket/").
func ParseURI(uri string) (bucket, object string, err error) {
	if !IsObjectStoreURI(uri) {
		return "", "", fmt.Errorf("not an object store URI: %s", uri)
	}

	trimmed := strings.TrimPrefix(uri, URIScheme)
	parts := strings.SplitN(trimmed, "/", 2)
	if len(parts) < 2 || parts[0] == "" {
		return "", "", fmt.Errorf("malformed object store URI: %s", uri)
	}

	return parts[0], parts[1], nil
}

// BuildURI joins a bucket and key back into a gs:// URI.
func BuildURI(bucket, object string) string {
	return URIScheme + bucket + "/" + object
}
