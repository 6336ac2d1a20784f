// Package singer encodes the tap's output messages. Each message is one
// line of JSON on stdout: a SCHEMA line declaring the stream's record
// shape, RECORD lines carrying the extracted transactions, and STATE
// lines carrying bookmarks for the downstream pipeline.
package singer

import (
	"encoding/json"
	"io"
	"time"

	"fjacquet/tap-nomad/internal/models"
)

// StreamName is the single stream this tap produces.
const StreamName = "nomad_transactions"

// ReplicationKey is the record field the downstream pipeline uses to
// track incremental progress.
const ReplicationKey = "date"

// Message type discriminators.
const (
	MessageTypeSchema = "SCHEMA"
	MessageTypeRecord = "RECORD"
	MessageTypeState  = "STATE"
)

// Property describes one field in a stream schema.
type Property struct {
	Type   string `json:"type"`
	Format string `json:"format,omitempty"`
}

// Schema is the JSON Schema describing a stream's records.
type Schema struct {
	Type                 string              `json:"type"`
	Properties           map[string]Property `json:"properties"`
	Required             []string            `json:"required,omitempty"`
	AdditionalProperties bool                `json:"additionalProperties"`
}

// TransactionSchema returns the fixed schema declared for the
// transaction stream: all four fields present, no extras.
func TransactionSchema() Schema {
	return Schema{
		Type: "object",
		Properties: map[string]Property{
			"date":        {Type: "string", Format: "date-time"},
			"amount":      {Type: "number"},
			"description": {Type: "string"},
			"status":      {Type: "string"},
		},
		Required:             []string{"date", "amount", "description", "status"},
		AdditionalProperties: false,
	}
}

// SchemaMessage declares a stream before its records.
type SchemaMessage struct {
	Type               string   `json:"type"`
	Stream             string   `json:"stream"`
	Schema             Schema   `json:"schema"`
	KeyProperties      []string `json:"key_properties"`
	BookmarkProperties []string `json:"bookmark_properties,omitempty"`
}

// RecordMessage carries one extracted transaction.
type RecordMessage struct {
	Type          string                   `json:"type"`
	Stream        string                   `json:"stream"`
	Record        models.TransactionRecord `json:"record"`
	TimeExtracted time.Time                `json:"time_extracted"`
}

// StateMessage carries the tap's bookmark state.
type StateMessage struct {
	Type  string                 `json:"type"`
	Value map[string]interface{} `json:"value"`
}

// Writer emits messages as single-line JSON. It is not safe for
// concurrent use; the tap writes from one goroutine only.
type Writer struct {
	enc *json.Encoder
}

// NewWriter creates a Writer emitting to out, normally stdout.
func NewWriter(out io.Writer) *Writer {
	return &Writer{enc: json.NewEncoder(out)}
}

// WriteSchema emits a SCHEMA message for the stream.
func (w *Writer) WriteSchema(stream string, schema Schema, keyProperties, bookmarkProperties []string) error {
	if keyProperties == nil {
		keyProperties = []string{}
	}
	return w.enc.Encode(SchemaMessage{
		Type:               MessageTypeSchema,
		Stream:             stream,
		Schema:             schema,
		KeyProperties:      keyProperties,
		BookmarkProperties: bookmarkProperties,
	})
}

// WriteRecord emits a RECORD message for one transaction.
func (w *Writer) WriteRecord(stream string, record models.TransactionRecord, timeExtracted time.Time) error {
	return w.enc.Encode(RecordMessage{
		Type:          MessageTypeRecord,
		Stream:        stream,
		Record:        record,
		TimeExtracted: timeExtracted,
	})
}

// WriteState emits a STATE message.
func (w *Writer) WriteState(value map[string]interface{}) error {
	return w.enc.Encode(StateMessage{
		Type:  MessageTypeState,
		Value: value,
	})
}
