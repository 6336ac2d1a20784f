// Package tabula extracts the transaction table from statement PDFs by
// shelling out to the tabula-java extractor. The extractor is invoked
// with a fixed page region, no header interpretation, and all pages
// concatenated into a single table.
package tabula

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os/exec"
	"strings"

	"fjacquet/tap-nomad/internal/logging"
	"fjacquet/tap-nomad/internal/models"
	"fjacquet/tap-nomad/internal/taperror"
)

// Default locations for the external extractor.
const (
	DefaultJavaPath = "java"
	DefaultJarPath  = "tabula.jar"
)

// TableExtractor defines the interface for extracting the statement table
// from a PDF file. This interface allows for dependency injection and
// makes the pipeline testable without a Java runtime.
type TableExtractor interface {
	// ExtractTable extracts the tabular region bounded by area from the
	// PDF at pdfPath, all pages concatenated into one grid.
	ExtractTable(pdfPath string, area models.Area) (models.RawTable, error)
}

// RealTableExtractor implements TableExtractor by running tabula-java.
// This is the production implementation and requires a Java runtime plus
// the tabula jar.
type RealTableExtractor struct {
	javaPath string
	jarPath  string
	logger   logging.Logger
}

// NewRealTableExtractor creates a RealTableExtractor. Empty paths fall
// back to DefaultJavaPath and DefaultJarPath.
func NewRealTableExtractor(javaPath, jarPath string, logger logging.Logger) *RealTableExtractor {
	if javaPath == "" {
		javaPath = DefaultJavaPath
	}
	if jarPath == "" {
		jarPath = DefaultJarPath
	}
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	return &RealTableExtractor{
		javaPath: javaPath,
		jarPath:  jarPath,
		logger:   logger,
	}
}

// ExtractTable runs tabula-java against the PDF and decodes its JSON
// output into a single grid.
func (e *RealTableExtractor) ExtractTable(pdfPath string, area models.Area) (models.RawTable, error) {
	args := commandArgs(e.jarPath, pdfPath, area)
	e.logger.Debug("Running table extractor",
		logging.Field{Key: logging.FieldFile, Value: pdfPath},
		logging.Field{Key: "args", Value: strings.Join(args, " ")})

	cmd := exec.Command(e.javaPath, args...) // #nosec G204 -- extractor paths come from the tap's own configuration
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if msg := strings.TrimSpace(stderr.String()); msg != "" {
			err = fmt.Errorf("%w: %s", err, msg)
		}
		e.logger.WithError(err).Error("Table extractor failed",
			logging.Field{Key: logging.FieldFile, Value: pdfPath})
		return nil, &taperror.ExtractionError{FilePath: pdfPath, Err: err}
	}

	table, err := tableFromOutput(pdfPath, stdout.Bytes())
	if err != nil {
		return nil, err
	}

	e.logger.Info("Extracted statement table",
		logging.Field{Key: logging.FieldFile, Value: pdfPath},
		logging.Field{Key: logging.FieldCount, Value: len(table)})
	return table, nil
}

// commandArgs builds the tabula-java invocation: every page, the fixed
// statement region, JSON output on stdout.
func commandArgs(jarPath, pdfPath string, area models.Area) []string {
	return []string{
		"-jar", jarPath,
		"--pages", "all",
		"--area", fmt.Sprintf("%g,%g,%g,%g", area.Top, area.Left, area.Bottom, area.Right),
		"--format", "JSON",
		"--silent",
		pdfPath,
	}
}

// tableFromOutput decodes the extractor's JSON and enforces the
// single-table contract: a document from which no table at all could be
// extracted is a layout problem, not an empty statement.
func tableFromOutput(pdfPath string, raw []byte) (models.RawTable, error) {
	table, err := decodeTables(raw)
	if err != nil {
		return nil, &taperror.ExtractionError{FilePath: pdfPath, Err: err}
	}
	if len(table) == 0 {
		return nil, &taperror.LayoutError{Reason: "no table found in document", Row: -1}
	}
	return table, nil
}

// tabulaCell and tabulaTable mirror the JSON tabula-java prints: an array
// of tables, each holding rows of positioned cells.
type tabulaCell struct {
	Text string `json:"text"`
}

type tabulaTable struct {
	Data [][]tabulaCell `json:"data"`
}

// decodeTables concatenates the rows of every extracted table, in order,
// into one grid. The extractor emits one table per page; the statement
// is a single logical table spanning all pages.
func decodeTables(raw []byte) (models.RawTable, error) {
	var tables []tabulaTable
	if err := json.Unmarshal(raw, &tables); err != nil {
		return nil, fmt.Errorf("error decoding extractor output: %w", err)
	}

	var grid models.RawTable
	for _, table := range tables {
		for _, row := range table.Data {
			cells := make([]string, len(row))
			for j, cell := range row {
				cells[j] = cell.Text
			}
			grid = append(grid, cells)
		}
	}
	return grid, nil
}
