// Package nomadparser converts the raw table extracted from a Nomad
// statement PDF into transaction records. The extractor splits every
// logical transaction across three physical rows: a description row, a
// detail row carrying the date and the signed amount, and a status row.
package nomadparser

import (
	"fmt"
	"strings"

	"fjacquet/tap-nomad/internal/dateutils"
	"fjacquet/tap-nomad/internal/logging"
	"fjacquet/tap-nomad/internal/models"
	"fjacquet/tap-nomad/internal/taperror"

	"github.com/shopspring/decimal"
)

// StatementArea is the bounding box of the transaction table on every
// page of a Nomad statement, in PDF points.
var StatementArea = models.Area{Top: 160, Left: 32, Bottom: 520, Right: 570}

const (
	rowsPerTransaction = 3

	// Layout of the signed amount cell: the first character is the sign
	// marker, characters 1-3 are a fixed currency marker, the amount
	// starts at character 4.
	amountOffset = 4

	descriptionColumn = 0
	dateColumn        = 1
	amountColumn      = 2
	statusColumn      = 0
)

// Normalize converts a raw statement table into transaction records, one
// per row triplet, in source order. It is deterministic and does no I/O.
// Any row-level failure aborts the whole table: no partial records are
// produced.
func Normalize(table models.RawTable, logger logging.Logger) ([]models.TransactionRecord, error) {
	if logger == nil {
		logger = logging.NewLogrusAdapter("info", "text")
	}
	logger.Debug("Normalizing statement table",
		logging.Field{Key: logging.FieldCount, Value: len(table)})

	if len(table) < rowsPerTransaction {
		return nil, &taperror.LayoutError{
			Reason: fmt.Sprintf("table has %d rows, need at least %d", len(table), rowsPerTransaction),
			Row:    -1,
		}
	}
	if len(table)%rowsPerTransaction != 0 {
		return nil, &taperror.LayoutError{
			Reason: fmt.Sprintf("row count %d is not a multiple of %d, trailing rows would be dropped", len(table), rowsPerTransaction),
			Row:    len(table) - len(table)%rowsPerTransaction,
		}
	}

	records := make([]models.TransactionRecord, 0, len(table)/rowsPerTransaction)
	for i := 0; i < len(table); i += rowsPerTransaction {
		record, err := normalizeTriplet(table, i, logger)
		if err != nil {
			return nil, err
		}
		records = append(records, record)
	}

	logger.Info("Normalized statement table",
		logging.Field{Key: logging.FieldCount, Value: len(records)})
	return records, nil
}

// normalizeTriplet converts the three rows starting at index i into one
// record.
func normalizeTriplet(table models.RawTable, i int, logger logging.Logger) (models.TransactionRecord, error) {
	descriptionRow := table[i]
	detailRow := table[i+1]
	statusRow := table[i+2]

	if len(descriptionRow) <= descriptionColumn {
		return models.TransactionRecord{}, &taperror.LayoutError{
			Reason: "description row has no columns",
			Row:    i,
		}
	}
	if len(detailRow) <= amountColumn {
		return models.TransactionRecord{}, &taperror.LayoutError{
			Reason: fmt.Sprintf("detail row has %d columns, need %d", len(detailRow), amountColumn+1),
			Row:    i + 1,
		}
	}
	if len(statusRow) <= statusColumn {
		return models.TransactionRecord{}, &taperror.LayoutError{
			Reason: "status row has no columns",
			Row:    i + 2,
		}
	}

	description := descriptionRow[descriptionColumn]
	dateRaw := detailRow[dateColumn]
	marker, amountRaw := splitSignedAmount(detailRow[amountColumn])
	status := statusRow[statusColumn]

	date, err := dateutils.ParseDayFirst(dateRaw)
	if err != nil {
		return models.TransactionRecord{}, &taperror.DateParseError{Value: dateRaw, Err: err}
	}

	amount, err := normalizeAmount(amountRaw)
	if err != nil {
		return models.TransactionRecord{}, &taperror.AmountParseError{Value: amountRaw, Err: err}
	}

	switch marker {
	case "-":
		amount = amount.Neg()
	case "+", "":
		// positive
	default:
		logger.Warn("Unexpected sign marker, treating amount as credit",
			logging.Field{Key: logging.FieldRow, Value: i + 1},
			logging.Field{Key: "marker", Value: marker})
	}

	return models.TransactionRecord{
		Date:        date,
		Amount:      amount,
		Description: description,
		Status:      status,
	}, nil
}

// splitSignedAmount splits the combined sign/amount cell into the sign
// marker and the raw amount string. A cell too short to hold an amount
// yields an empty amount, which fails later as an AmountParseError.
func splitSignedAmount(cell string) (marker, amountRaw string) {
	runes := []rune(cell)
	if len(runes) == 0 {
		return "", ""
	}
	marker = string(runes[0])
	if len(runes) > amountOffset {
		amountRaw = string(runes[amountOffset:])
	}
	return marker, amountRaw
}

// normalizeAmount converts an amount string from the statement's
// thousands-dot, decimal-comma locale ("1.234,56") into a decimal.
// Every dot is a thousands separator and is removed; the first comma is
// the decimal point.
func normalizeAmount(amountRaw string) (decimal.Decimal, error) {
	cleaned := strings.TrimSpace(amountRaw)
	cleaned = strings.ReplaceAll(cleaned, ".", "")
	cleaned = strings.Replace(cleaned, ",", ".", 1)
	return decimal.NewFromString(cleaned)
}
