// Package stream implements the per-source stream driver. A Stream owns
// one configured source path, resolves it to concrete file locations
// exactly once, and walks those locations extracting and normalizing
// transaction records into a sink.
package stream

import (
	"context"
	"fmt"

	"fjacquet/tap-nomad/internal/fetcher"
	"fjacquet/tap-nomad/internal/fileutils"
	"fjacquet/tap-nomad/internal/logging"
	"fjacquet/tap-nomad/internal/models"
	"fjacquet/tap-nomad/internal/nomadparser"
	"fjacquet/tap-nomad/internal/resolver"
	"fjacquet/tap-nomad/internal/tabula"
)

// RecordSink receives records as the stream produces them. A sink error
// aborts the walk like any other failure.
type RecordSink interface {
	Write(record models.TransactionRecord) error
}

// Stream drives extraction for one configured source path. It is not
// safe for concurrent use; the tap runs streams sequentially.
type Stream struct {
	Name   string
	Config models.FileConfig

	resolver  *resolver.Resolver
	fetcher   *fetcher.Fetcher
	extractor tabula.TableExtractor
	logger    logging.Logger

	paths    []string
	resolved bool
}

// New creates a Stream for the given source. Nil collaborators fall
// back to the real implementations with default settings.
func New(name string, cfg models.FileConfig, res *resolver.Resolver, fet *fetcher.Fetcher, extractor tabula.TableExtractor, logger logging.Logger) *Stream {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	if res == nil {
		res = resolver.New(nil, logger)
	}
	if fet == nil {
		fet = fetcher.New(nil, logger)
	}
	if extractor == nil {
		extractor = tabula.NewRealTableExtractor("", "", logger)
	}
	return &Stream{
		Name:      name,
		Config:    cfg,
		resolver:  res,
		fetcher:   fet,
		extractor: extractor,
		logger:    logger,
	}
}

// FilePaths returns the resolved file locations for this stream. The
// result is computed once and memoized for the stream's lifetime, so
// repeated calls never hit the filesystem or object store again.
func (s *Stream) FilePaths(ctx context.Context) ([]string, error) {
	if s.resolved {
		return s.paths, nil
	}
	paths, err := s.resolver.Resolve(ctx, s.Config)
	if err != nil {
		return nil, err
	}
	s.paths = paths
	s.resolved = true
	s.logger.Debug("Resolved stream locations",
		logging.Field{Key: logging.FieldStream, Value: s.Name},
		logging.Field{Key: logging.FieldCount, Value: len(paths)})
	return s.paths, nil
}

// Records walks the stream's locations in order, writing every
// extracted record to the sink. Locations without a .pdf extension are
// skipped with a warning. The first error aborts the walk.
func (s *Stream) Records(ctx context.Context, sink RecordSink) error {
	paths, err := s.FilePaths(ctx)
	if err != nil {
		return err
	}
	for _, location := range paths {
		if !fileutils.HasPDFExtension(location) {
			s.logger.Warn("Skipping location without .pdf extension",
				logging.Field{Key: logging.FieldStream, Value: s.Name},
				logging.Field{Key: logging.FieldLocation, Value: location})
			continue
		}
		if err := s.processFile(ctx, location, sink); err != nil {
			return err
		}
	}
	return nil
}

func (s *Stream) processFile(ctx context.Context, location string, sink RecordSink) error {
	localPath, cleanup, err := s.fetcher.Fetch(ctx, location)
	if err != nil {
		return err
	}
	defer cleanup()

	table, err := s.extractor.ExtractTable(localPath, nomadparser.StatementArea)
	if err != nil {
		return err
	}

	records, err := nomadparser.Normalize(table, s.logger)
	if err != nil {
		return err
	}

	s.logger.Info("Extracted records from statement",
		logging.Field{Key: logging.FieldStream, Value: s.Name},
		logging.Field{Key: logging.FieldLocation, Value: location},
		logging.Field{Key: logging.FieldCount, Value: len(records)})

	for _, record := range records {
		if err := sink.Write(record); err != nil {
			return fmt.Errorf("writing record from %s: %w", location, err)
		}
	}
	return nil
}
