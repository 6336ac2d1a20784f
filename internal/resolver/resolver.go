// Package resolver expands one configured statement source into the
// ordered list of concrete file locations to process. A source may be a
// local file, a local directory, a single object-store URI, or an
// object-store prefix ending in "/".
package resolver

import (
	"context"
	"fmt"
	"strings"

	"fjacquet/tap-nomad/internal/fileutils"
	"fjacquet/tap-nomad/internal/gcs"
	"fjacquet/tap-nomad/internal/logging"
	"fjacquet/tap-nomad/internal/models"
	"fjacquet/tap-nomad/internal/taperror"
)

// Resolver lists the concrete files behind a configured path. It holds
// no per-source state: callers cache the resolved list themselves.
type Resolver struct {
	store  gcs.StorageService
	logger logging.Logger
}

// New creates a Resolver backed by the given object store.
func New(store gcs.StorageService, logger logging.Logger) *Resolver {
	if store == nil {
		store = gcs.NewGCSStorageService()
	}
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	return &Resolver{
		store:  store,
		logger: logger,
	}
}

// Resolve expands the configured path into file locations, in the order
// the filesystem or object store reports them. An empty path fails with
// ConfigError before any filesystem or network access.
func (r *Resolver) Resolve(ctx context.Context, cfg models.FileConfig) ([]string, error) {
	if cfg.Path == "" {
		return nil, &taperror.ConfigError{Field: "path", Reason: "path must not be empty"}
	}

	r.logger.Debug("Resolving statement source",
		logging.Field{Key: logging.FieldLocation, Value: cfg.Path})

	if gcs.IsObjectStoreURI(cfg.Path) {
		return r.resolveObjectStore(ctx, cfg.Path)
	}
	return r.resolveLocal(cfg.Path)
}

// resolveLocal handles filesystem paths: a directory lists its entries,
// a file resolves to itself, anything else is missing.
func (r *Resolver) resolveLocal(path string) ([]string, error) {
	if fileutils.DirectoryExists(path) {
		entries, err := fileutils.ListDirEntries(path)
		if err != nil {
			return nil, fmt.Errorf("failed to list directory %s: %w", path, err)
		}
		if len(entries) == 0 {
			return nil, &taperror.EmptyResultError{Source: path}
		}

		r.logger.Info("Resolved local directory",
			logging.Field{Key: logging.FieldLocation, Value: path},
			logging.Field{Key: logging.FieldCount, Value: len(entries)})
		return entries, nil
	}

	if fileutils.FileExists(path) {
		return []string{path}, nil
	}

	return nil, &taperror.NotFoundError{Path: path}
}

// resolveObjectStore handles gs:// locations. A URI ending in "/" is a
// prefix: every key under it is listed, excluding folder markers. Any
// other URI is a single object and resolves to itself without touching
// the store; a missing object surfaces at fetch time.
func (r *Resolver) resolveObjectStore(ctx context.Context, uri string) ([]string, error) {
	bucket, key, err := gcs.ParseURI(uri)
	if err != nil {
		return nil, &taperror.ConfigError{Field: "path", Reason: err.Error()}
	}

	if !strings.HasSuffix(uri, "/") {
		return []string{uri}, nil
	}

	keys, err := r.store.ListObjects(ctx, bucket, key)
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", uri, err)
	}

	var locations []string
	for _, stored := range keys {
		if strings.HasSuffix(stored, "/") {
			// folder marker
			continue
		}
		locations = append(locations, gcs.BuildURI(bucket, stored))
	}

	if len(locations) == 0 {
		return nil, &taperror.EmptyResultError{Source: uri}
	}

	r.logger.Info("Resolved object store prefix",
		logging.Field{Key: logging.FieldBucket, Value: bucket},
		logging.Field{Key: logging.FieldPrefix, Value: key},
		logging.Field{Key: logging.FieldCount, Value: len(locations)})
	return locations, nil
}
