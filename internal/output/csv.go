package output

import (
	"bufio"
	"io"
	"strings"
)

// bom is the UTF-8 byte order mark written at the start of text tables.
const bom = "\ufeff"

// CSVWriter writes comma-separated values. Every value is quoted, embedded
// quotes are doubled, and records end in CRLF.
type CSVWriter struct {
	w       *bufio.Writer
	started bool
}

// NewCSVWriter creates a CSV writer.
func NewCSVWriter(w io.Writer) *CSVWriter {
	return &CSVWriter{w: bufio.NewWriter(w)}
}

// WriteHeader writes a header record.
func (w *CSVWriter) WriteHeader(values []string) error {
	return w.WriteRecord(values)
}

// WriteRecord writes a value record.
func (w *CSVWriter) WriteRecord(values []string) error {
	if err := w.start(); err != nil {
		return err
	}
	for i, v := range values {
		if i > 0 {
			if err := w.w.WriteByte(','); err != nil {
				return err
			}
		}
		if _, err := w.w.WriteString(`"` + strings.ReplaceAll(v, `"`, `""`) + `"`); err != nil {
			return err
		}
	}
	_, err := w.w.WriteString("\r\n")
	return err
}

func (w *CSVWriter) start() error {
	if w.started {
		return nil
	}
	w.started = true
	_, err := w.w.WriteString(bom)
	return err
}

// Close writes the byte order mark if nothing else was written and flushes.
func (w *CSVWriter) Close() error {
	if err := w.start(); err != nil {
		return err
	}
	return w.w.Flush()
}
