package taperror

import "fmt"

// ConfigError reports a malformed or incomplete tap configuration.
type ConfigError struct {
	Field  string
	Reason string
}

func (e *ConfigError) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("invalid configuration for %s: %s", e.Field, e.Reason)
	}
	return fmt.Sprintf("invalid configuration: %s", e.Reason)
}

// NotFoundError reports a configured path that does not exist, locally or
// in the object store.
type NotFoundError struct {
	Path string
	Err  error
}

func (e *NotFoundError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("path not found: %s: %v", e.Path, e.Err)
	}
	return fmt.Sprintf("path not found: %s", e.Path)
}

func (e *NotFoundError) Unwrap() error {
	return e.Err
}

// EmptyResultError reports a path or prefix that exists but resolved to
// zero files.
type EmptyResultError struct {
	Source string
}

func (e *EmptyResultError) Error() string {
	return fmt.Sprintf("no files resolved from %s", e.Source)
}

// LayoutError reports a PDF whose extracted table does not match the
// expected statement layout.
type LayoutError struct {
	Reason string
	Row    int
}

func (e *LayoutError) Error() string {
	if e.Row >= 0 {
		return fmt.Sprintf("unexpected statement layout at row %d: %s", e.Row, e.Reason)
	}
	return fmt.Sprintf("unexpected statement layout: %s", e.Reason)
}

// DateParseError reports a date cell that could not be parsed.
type DateParseError struct {
	Value string
	Err   error
}

func (e *DateParseError) Error() string {
	return fmt.Sprintf("failed to parse date '%s': %v", e.Value, e.Err)
}

func (e *DateParseError) Unwrap() error {
	return e.Err
}

// AmountParseError reports an amount cell that could not be parsed.
type AmountParseError struct {
	Value string
	Err   error
}

func (e *AmountParseError) Error() string {
	return fmt.Sprintf("failed to parse amount '%s': %v", e.Value, e.Err)
}

func (e *AmountParseError) Unwrap() error {
	return e.Err
}

// ExtractionError reports a failure running the external table extractor
// or decoding its output.
type ExtractionError struct {
	FilePath string
	Err      error
}

func (e *ExtractionError) Error() string {
	return fmt.Sprintf("table extraction failed for %s: %v", e.FilePath, e.Err)
}

func (e *ExtractionError) Unwrap() error {
	return e.Err
}
