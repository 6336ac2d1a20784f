package logging

// Standardized field names for structured logging.
// These constants ensure consistency across the tap's log output,
// making logs easier to parse, filter, and analyze.
const (
	FieldStream     = "stream"
	FieldLocation   = "location"
	FieldFile       = "file_path"
	FieldBucket     = "bucket"
	FieldObject     = "object"
	FieldPrefix     = "prefix"
	FieldRow        = "row"
	FieldCount      = "count"
	FieldReason     = "reason"
	FieldOperation  = "operation"
	FieldBookmark   = "bookmark"
	FieldError      = "error"
	FieldOutputFile = "output_file"
)
