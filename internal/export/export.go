// Package export writes extracted transaction records to CSV files.
package export

import (
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"

	"github.com/gocarina/gocsv"

	"fjacquet/tap-nomad/internal/dateutils"
	"fjacquet/tap-nomad/internal/logging"
	"fjacquet/tap-nomad/internal/models"
)

// Delimiter is the CSV output delimiter. It can be overridden through
// the CSV_DELIMITER environment variable or SetDelimiter.
var Delimiter rune = ','

func init() {
	if val := os.Getenv("CSV_DELIMITER"); val != "" {
		SetDelimiter([]rune(val)[0])
	}
}

// SetDelimiter sets the delimiter used for CSV output.
func SetDelimiter(delim rune) {
	Delimiter = delim
}

// csvRow is the flat shape written to CSV output. Dates are written as
// plain ISO dates and amounts with two decimal places, matching how
// the statements themselves present them.
type csvRow struct {
	Date        string `csv:"date"`
	Amount      string `csv:"amount"`
	Description string `csv:"description"`
	Status      string `csv:"status"`
}

func rowFromRecord(record models.TransactionRecord) csvRow {
	return csvRow{
		Date:        dateutils.ToISODate(record.Date),
		Amount:      record.Amount.StringFixed(2),
		Description: record.Description,
		Status:      record.Status,
	}
}

// Exporter writes transaction records to CSV files.
type Exporter struct {
	logger logging.Logger
}

// New creates an Exporter. A nil logger falls back to the default
// logrus adapter.
func New(logger logging.Logger) *Exporter {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	return &Exporter{logger: logger}
}

// WriteRecordsToCSV writes records to csvFile with a header row,
// creating parent directories as needed. An empty slice produces a
// header-only file; a nil slice is an error.
func (e *Exporter) WriteRecordsToCSV(records []models.TransactionRecord, csvFile string) error {
	if records == nil {
		return fmt.Errorf("cannot write nil records to CSV")
	}

	e.logger.Info("Writing records to CSV file",
		logging.Field{Key: logging.FieldOutputFile, Value: csvFile},
		logging.Field{Key: logging.FieldCount, Value: len(records)})

	dir := filepath.Dir(csvFile)
	if err := os.MkdirAll(dir, 0750); err != nil {
		e.logger.WithError(err).Error("Failed to create output directory")
		return fmt.Errorf("error creating directory: %w", err)
	}

	file, err := os.Create(csvFile) // #nosec G304 -- output path comes from the user's own command line
	if err != nil {
		e.logger.WithError(err).Error("Failed to create CSV file")
		return fmt.Errorf("error creating CSV file: %w", err)
	}
	defer func() {
		if err := file.Close(); err != nil {
			e.logger.WithError(err).Warn("Failed to close file")
		}
	}()

	rows := make([]csvRow, 0, len(records))
	for _, record := range records {
		rows = append(rows, rowFromRecord(record))
	}

	csvWriter := csv.NewWriter(file)
	csvWriter.Comma = Delimiter

	if err := gocsv.MarshalCSV(rows, gocsv.NewSafeCSVWriter(csvWriter)); err != nil {
		e.logger.WithError(err).Error("Failed to marshal records to CSV")
		return fmt.Errorf("error writing CSV data: %w", err)
	}

	e.logger.Info("Successfully wrote records to CSV file",
		logging.Field{Key: logging.FieldOutputFile, Value: csvFile},
		logging.Field{Key: logging.FieldCount, Value: len(records)})

	return nil
}
