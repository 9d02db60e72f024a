// Package output writes export files: delimited and spreadsheet tables
// through TableWriter, structured documents through Writer.
package output

import (
	"fmt"
	"io"
	"strings"
	"time"
)

// Format represents output format types.
type Format string

const (
	FormatCSV     Format = "csv"
	FormatTSV     Format = "tsv"
	FormatXLSX    Format = "xlsx"
	FormatParquet Format = "parquet"
	FormatXML     Format = "xml"
	FormatJSON    Format = "json"
	FormatYAML    Format = "yaml"
)

// Formats lists every export format in the order files are produced.
var Formats = []Format{
	FormatCSV,
	FormatTSV,
	FormatXLSX,
	FormatParquet,
	FormatXML,
	FormatJSON,
	FormatYAML,
}

// ParseFormat returns the format named s, ignoring case.
func ParseFormat(s string) (Format, error) {
	f := Format(strings.ToLower(strings.TrimSpace(s)))
	for _, known := range Formats {
		if f == known {
			return f, nil
		}
	}
	return "", fmt.Errorf("unsupported output format: %s", s)
}

// ParseFormats parses a list of format names, dropping repeats.
func ParseFormats(names []string) ([]Format, error) {
	seen := make(map[Format]bool, len(names))
	var out []Format
	for _, name := range names {
		f, err := ParseFormat(name)
		if err != nil {
			return nil, err
		}
		if !seen[f] {
			seen[f] = true
			out = append(out, f)
		}
	}
	return out, nil
}

// Extension returns the file extension, including the dot.
func (f Format) Extension() string {
	return "." + string(f)
}

// Tabular reports whether f is written through a TableWriter.
func (f Format) Tabular() bool {
	switch f {
	case FormatCSV, FormatTSV, FormatXLSX, FormatParquet:
		return true
	}
	return false
}

// MultiHeader reports whether one file of format f can hold several header
// records, one per table.
func (f Format) MultiHeader() bool {
	switch f {
	case FormatCSV, FormatTSV, FormatXLSX:
		return true
	}
	return false
}

// Writer handles output serialization.
type Writer interface {
	// Write outputs a single result.
	Write(data any) error

	// WriteAll outputs multiple results.
	WriteAll(data []any) error

	// Flush ensures all data is written.
	Flush() error

	// Close releases resources.
	Close() error
}

// WriterOption configures a writer.
type WriterOption func(*writerConfig)

type writerConfig struct {
	pretty bool
	indent string
}

// WithPretty enables pretty-printing.
func WithPretty(enabled bool) WriterOption {
	return func(c *writerConfig) {
		c.pretty = enabled
	}
}

// WithIndent sets the indentation string.
func WithIndent(indent string) WriterOption {
	return func(c *writerConfig) {
		c.indent = indent
	}
}

// NewWriter creates a document writer for the specified format.
func NewWriter(w io.Writer, format Format, opts ...WriterOption) (Writer, error) {
	cfg := &writerConfig{
		pretty: true,
		indent: "  ",
	}
	for _, opt := range opts {
		opt(cfg)
	}

	switch format {
	case FormatJSON:
		return NewJSONWriter(w, cfg.pretty, cfg.indent), nil
	case FormatYAML:
		return NewYAMLWriter(w), nil
	case FormatXML:
		return NewXMLWriter(w, cfg.indent), nil
	default:
		return nil, fmt.Errorf("unsupported output format: %s", format)
	}
}

// TableWriter writes header and value records. A header record must come
// before any value record.
type TableWriter interface {
	WriteHeader(values []string) error
	WriteRecord(values []string) error
	Close() error
}

// TableOption configures a table writer.
type TableOption func(*tableConfig)

type tableConfig struct {
	sheet      string
	title      string
	author     string
	created    time.Time
	version    string
	status     string
}

// WithSheet names the worksheet.
func WithSheet(name string) TableOption {
	return func(c *tableConfig) {
		c.sheet = name
	}
}

// WithTitle sets the document title.
func WithTitle(title string) TableOption {
	return func(c *tableConfig) {
		c.title = title
	}
}

// WithAuthor sets the document author.
func WithAuthor(author string) TableOption {
	return func(c *tableConfig) {
		c.author = author
	}
}

// WithCreated sets the document creation and modification times.
func WithCreated(t time.Time) TableOption {
	return func(c *tableConfig) {
		c.created = t
	}
}

// WithRelease records the ADIF version and status of the exported
// document. Workbooks store them as the version and content status core
// properties and repeat them in the keywords.
func WithRelease(version, status string) TableOption {
	return func(c *tableConfig) {
		c.version = version
		c.status = status
	}
}

// NewTableWriter creates a table writer for the specified format. Options
// that a format has no place for are ignored.
func NewTableWriter(w io.Writer, format Format, opts ...TableOption) (TableWriter, error) {
	switch format {
	case FormatCSV:
		return NewCSVWriter(w), nil
	case FormatTSV:
		return NewTSVWriter(w), nil
	case FormatXLSX:
		return NewXLSXWriter(w, opts...)
	case FormatParquet:
		return NewParquetWriter(w), nil
	default:
		return nil, fmt.Errorf("unsupported table format: %s", format)
	}
}
