// Package models defines the data types shared across the tap: the raw
// extracted table, the emitted transaction record, and the file
// configuration entries that point the tap at statement sources.
package models

// RawTable is the grid of text cells extracted from one statement PDF,
// all pages concatenated, no header row. Cells carry no type guarantees
// and may be empty.
type RawTable [][]string

// Area is a rectangular region of a PDF page, in points.
type Area struct {
	Top    float64
	Left   float64
	Bottom float64
	Right  float64
}

// FileConfig identifies one configured statement source. Path may be a
// local file, a local directory, an object-store URI, or an object-store
// prefix ending in "/".
type FileConfig struct {
	Path string `json:"path" yaml:"path" mapstructure:"path"`
}
