package output

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// TSVWriter writes tab-separated values. Values are written as they are, so
// a tab or line break inside one is an error.
type TSVWriter struct {
	w       *bufio.Writer
	started bool
}

// NewTSVWriter creates a TSV writer.
func NewTSVWriter(w io.Writer) *TSVWriter {
	return &TSVWriter{w: bufio.NewWriter(w)}
}

// WriteHeader writes a header record.
func (w *TSVWriter) WriteHeader(values []string) error {
	return w.WriteRecord(values)
}

// WriteRecord writes a value record.
func (w *TSVWriter) WriteRecord(values []string) error {
	for i, v := range values {
		if strings.ContainsAny(v, "\t\r\n") {
			return fmt.Errorf("tsv value %d contains a tab or line break: value=%q", i, v)
		}
	}
	if !w.started {
		w.started = true
		if _, err := w.w.WriteString(bom); err != nil {
			return err
		}
	}
	if _, err := w.w.WriteString(strings.Join(values, "\t")); err != nil {
		return err
	}
	_, err := w.w.WriteString("\r\n")
	return err
}

// Close flushes the writer.
func (w *TSVWriter) Close() error {
	if !w.started {
		w.started = true
		if _, err := w.w.WriteString(bom); err != nil {
			return err
		}
	}
	return w.w.Flush()
}
