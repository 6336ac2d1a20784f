// Package tap assembles the pieces into a runnable tap: it loads file
// configurations, discovers streams, and drives the run loop that emits
// schema, record, and state messages on stdout.
package tap

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"fjacquet/tap-nomad/internal/config"
	"fjacquet/tap-nomad/internal/fetcher"
	"fjacquet/tap-nomad/internal/fileutils"
	"fjacquet/tap-nomad/internal/gcs"
	"fjacquet/tap-nomad/internal/logging"
	"fjacquet/tap-nomad/internal/models"
	"fjacquet/tap-nomad/internal/resolver"
	"fjacquet/tap-nomad/internal/singer"
	"fjacquet/tap-nomad/internal/stream"
	"fjacquet/tap-nomad/internal/tabula"
	"fjacquet/tap-nomad/internal/taperror"
)

// Tap wires configuration, streams, and the message writer together.
type Tap struct {
	cfg       *config.Config
	store     gcs.StorageService
	extractor tabula.TableExtractor
	logger    logging.Logger

	clock func() time.Time
}

// New creates a Tap from the given configuration. Nil collaborators
// fall back to the real implementations configured by cfg.
func New(cfg *config.Config, store gcs.StorageService, extractor tabula.TableExtractor, logger logging.Logger) *Tap {
	if logger == nil {
		logger = config.LoggerFromConfig(cfg)
	}
	if store == nil {
		store = gcs.NewGCSStorageService()
	}
	if extractor == nil {
		extractor = tabula.NewRealTableExtractor(cfg.Tabula.JavaPath, cfg.Tabula.JarPath, logger)
	}
	return &Tap{
		cfg:       cfg,
		store:     store,
		extractor: extractor,
		logger:    logger,
		clock:     time.Now,
	}
}

// LoadFileConfigs returns the configured statement sources. An external
// definition file takes priority over the inline list; an empty result
// is a configuration error.
func (t *Tap) LoadFileConfigs() ([]models.FileConfig, error) {
	files := t.cfg.Files
	if t.cfg.FilesDefinition != "" {
		loaded, err := loadFilesDefinition(t.cfg.FilesDefinition)
		if err != nil {
			return nil, err
		}
		files = loaded
	}
	if len(files) == 0 {
		return nil, &taperror.ConfigError{Field: "files", Reason: "no file definitions found"}
	}
	return files, nil
}

// loadFilesDefinition reads a file-config list from a JSON file, or a
// YAML file when the extension says so.
func loadFilesDefinition(path string) ([]models.FileConfig, error) {
	if !fileutils.FileExists(path) {
		return nil, &taperror.ConfigError{
			Field:  "files_definition",
			Reason: fmt.Sprintf("'%s' file not found", path),
		}
	}
	data, err := fileutils.ReadFile(path)
	if err != nil {
		return nil, &taperror.ConfigError{
			Field:  "files_definition",
			Reason: fmt.Sprintf("reading '%s': %v", path, err),
		}
	}

	var files []models.FileConfig
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, &files); err != nil {
			return nil, &taperror.ConfigError{
				Field:  "files_definition",
				Reason: fmt.Sprintf("parsing '%s': %v", path, err),
			}
		}
	default:
		if err := json.Unmarshal(data, &files); err != nil {
			return nil, &taperror.ConfigError{
				Field:  "files_definition",
				Reason: fmt.Sprintf("parsing '%s': %v", path, err),
			}
		}
	}
	return files, nil
}

// DiscoverStreams builds one stream per configured source. All streams
// share the transaction stream name and schema.
func (t *Tap) DiscoverStreams() ([]*stream.Stream, error) {
	fileConfigs, err := t.LoadFileConfigs()
	if err != nil {
		return nil, err
	}

	res := resolver.New(t.store, t.logger)
	fet := fetcher.New(t.store, t.logger)

	streams := make([]*stream.Stream, 0, len(fileConfigs))
	for _, fc := range fileConfigs {
		streams = append(streams, stream.New(singer.StreamName, fc, res, fet, t.extractor, t.logger))
	}
	return streams, nil
}

// runSink writes records to the message writer and tracks the maximum
// record date for the final state bookmark.
type runSink struct {
	writer  *singer.Writer
	stream  string
	clock   func() time.Time
	maxDate time.Time
	count   int
}

func (s *runSink) Write(record models.TransactionRecord) error {
	if err := s.writer.WriteRecord(s.stream, record, s.clock().UTC()); err != nil {
		return err
	}
	s.count++
	if record.Date.After(s.maxDate) {
		s.maxDate = record.Date
	}
	return nil
}

// Run executes a full extraction: one SCHEMA message, every record from
// every stream in order, and a final STATE message with the date
// bookmark. Any failure aborts the run and propagates.
func (t *Tap) Run(ctx context.Context, out io.Writer) error {
	streams, err := t.DiscoverStreams()
	if err != nil {
		return err
	}

	writer := singer.NewWriter(out)
	if err := writer.WriteSchema(singer.StreamName, singer.TransactionSchema(), nil, []string{singer.ReplicationKey}); err != nil {
		return fmt.Errorf("writing schema: %w", err)
	}

	sink := &runSink{writer: writer, stream: singer.StreamName, clock: t.clock}
	for _, st := range streams {
		if err := st.Records(ctx, sink); err != nil {
			return err
		}
	}

	bookmarks := map[string]interface{}{}
	if sink.count > 0 {
		bookmarks[singer.StreamName] = map[string]interface{}{
			singer.ReplicationKey: sink.maxDate.UTC().Format(time.RFC3339),
		}
	}
	if err := writer.WriteState(map[string]interface{}{"bookmarks": bookmarks}); err != nil {
		return fmt.Errorf("writing state: %w", err)
	}

	t.logger.Info("Extraction complete",
		logging.Field{Key: logging.FieldCount, Value: sink.count})
	return nil
}

// Catalog describes the tap's streams for discovery mode.
type Catalog struct {
	Streams []CatalogEntry `json:"streams"`
}

// CatalogEntry is one stream in the catalog.
type CatalogEntry struct {
	Stream         string        `json:"stream"`
	TapStreamID    string        `json:"tap_stream_id"`
	Schema         singer.Schema `json:"schema"`
	KeyProperties  []string      `json:"key_properties"`
	ReplicationKey string        `json:"replication_key,omitempty"`
}

// Discover validates the configuration and writes the stream catalog as
// indented JSON. Streams sharing a name collapse to one catalog entry.
func (t *Tap) Discover(out io.Writer) error {
	if _, err := t.LoadFileConfigs(); err != nil {
		return err
	}

	catalog := Catalog{
		Streams: []CatalogEntry{
			{
				Stream:         singer.StreamName,
				TapStreamID:    singer.StreamName,
				Schema:         singer.TransactionSchema(),
				KeyProperties:  []string{},
				ReplicationKey: singer.ReplicationKey,
			},
		},
	}

	data, err := json.MarshalIndent(catalog, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding catalog: %w", err)
	}
	if _, err := fmt.Fprintln(out, string(data)); err != nil {
		return fmt.Errorf("writing catalog: %w", err)
	}
	return nil
}

// CollectRecords runs every stream and returns the records in order
// instead of emitting messages. The convert command uses this to build
// CSV output.
func (t *Tap) CollectRecords(ctx context.Context) ([]models.TransactionRecord, error) {
	streams, err := t.DiscoverStreams()
	if err != nil {
		return nil, err
	}

	sink := &collectSink{records: []models.TransactionRecord{}}
	for _, st := range streams {
		if err := st.Records(ctx, sink); err != nil {
			return nil, err
		}
	}
	return sink.records, nil
}

type collectSink struct {
	records []models.TransactionRecord
}

func (s *collectSink) Write(record models.TransactionRecord) error {
	s.records = append(s.records, record)
	return nil
}
