// Package fetcher materializes a statement location as a local file the
// table extractor can read. Local paths pass through untouched;
// object-store locations are downloaded whole into memory and written to
// a transient local file.
package fetcher

import (
	"context"
	"errors"
	"fmt"
	"os"
	"strings"

	"fjacquet/tap-nomad/internal/fileutils"
	"fjacquet/tap-nomad/internal/gcs"
	"fjacquet/tap-nomad/internal/logging"
	"fjacquet/tap-nomad/internal/taperror"

	"cloud.google.com/go/storage"
)

// Fetcher turns file locations into readable local paths.
type Fetcher struct {
	store  gcs.StorageService
	logger logging.Logger
}

// New creates a Fetcher backed by the given object store.
func New(store gcs.StorageService, logger logging.Logger) *Fetcher {
	if store == nil {
		store = gcs.NewGCSStorageService()
	}
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	return &Fetcher{
		store:  store,
		logger: logger,
	}
}

// Fetch returns a local path holding the statement bytes and a cleanup
// function releasing any transient file. The cleanup is only returned on
// success; callers defer it immediately. For a local location the path
// is returned as-is and cleanup is a no-op.
func (f *Fetcher) Fetch(ctx context.Context, location string) (string, func(), error) {
	if !gcs.IsObjectStoreURI(location) {
		if !fileutils.FileExists(location) {
			return "", nil, &taperror.NotFoundError{Path: location}
		}
		return location, func() {}, nil
	}
	return f.fetchObject(ctx, location)
}

// fetchObject downloads a single object and writes it to a temporary
// *.pdf file. The temporary file is removed on every failure path; on
// success removing it is the returned cleanup's job.
func (f *Fetcher) fetchObject(ctx context.Context, location string) (string, func(), error) {
	bucket, object, err := gcs.ParseURI(location)
	if err != nil {
		return "", nil, &taperror.ConfigError{Field: "path", Reason: err.Error()}
	}
	if object == "" || strings.HasSuffix(object, "/") {
		return "", nil, fmt.Errorf("location is not a single object: %s", location)
	}

	data, err := f.store.DownloadObject(ctx, bucket, object)
	if err != nil {
		if errors.Is(err, storage.ErrObjectNotExist) {
			return "", nil, &taperror.NotFoundError{Path: location, Err: err}
		}
		return "", nil, fmt.Errorf("failed to fetch %s: %w", location, err)
	}

	tempFile, err := os.CreateTemp("", "*.pdf")
	if err != nil {
		return "", nil, fmt.Errorf("failed to create temporary PDF file: %w", err)
	}
	cleanup := func() {
		if err := os.Remove(tempFile.Name()); err != nil && !os.IsNotExist(err) {
			f.logger.WithError(err).Warn("Failed to remove temporary file",
				logging.Field{Key: logging.FieldFile, Value: tempFile.Name()})
		}
	}

	if _, err := tempFile.Write(data); err != nil {
		_ = tempFile.Close()
		cleanup()
		return "", nil, fmt.Errorf("failed to write temporary PDF file: %w", err)
	}
	if err := tempFile.Close(); err != nil {
		cleanup()
		return "", nil, fmt.Errorf("failed to close temporary PDF file: %w", err)
	}

	f.logger.Debug("Downloaded statement object",
		logging.Field{Key: logging.FieldLocation, Value: location},
		logging.Field{Key: logging.FieldFile, Value: tempFile.Name()},
		logging.Field{Key: logging.FieldCount, Value: len(data)})
	return tempFile.Name(), cleanup, nil
}
