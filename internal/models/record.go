package models

import (
	"encoding/json"
	"time"

	"github.com/shopspring/decimal"
)

// TransactionRecord is one settled transaction from a statement. All four
// fields are required by the declared stream schema; a record is never
// emitted partially populated.
type TransactionRecord struct {
	Date        time.Time       `json:"date"`
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
	Status      string          `json:"status"`
}

// IsDebit returns true if the transaction is a debit
func (r TransactionRecord) IsDebit() bool {
	return r.Amount.IsNegative()
}

// IsCredit returns true if the transaction is a credit
func (r TransactionRecord) IsCredit() bool {
	return !r.Amount.IsNegative()
}

// MarshalJSON emits the record with the amount as a bare JSON number
// rather than the quoted string decimal.Decimal produces by default.
func (r TransactionRecord) MarshalJSON() ([]byte, error) {
	type wireRecord struct {
		Date        time.Time   `json:"date"`
		Amount      json.Number `json:"amount"`
		Description string      `json:"description"`
		Status      string      `json:"status"`
	}
	return json.Marshal(wireRecord{
		Date:        r.Date,
		Amount:      json.Number(r.Amount.String()),
		Description: r.Description,
		Status:      r.Status,
	})
}
