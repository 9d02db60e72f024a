package output

import (
	"bufio"
	"encoding/xml"
	"errors"
	"io"
)

// xmlDeclaration opens every XML document.
const xmlDeclaration = `<?xml version="1.0" encoding="utf-8"?>` + "\n"

// XMLWriter writes a single XML document, preceded by a byte order mark and
// the XML declaration.
type XMLWriter struct {
	w      *bufio.Writer
	indent string
	items  []any
	done   bool
}

// NewXMLWriter creates an XML writer. An empty indent writes the document on
// one line.
func NewXMLWriter(w io.Writer, indent string) *XMLWriter {
	return &XMLWriter{w: bufio.NewWriter(w), indent: indent}
}

// Write buffers the document.
func (w *XMLWriter) Write(data any) error {
	w.items = append(w.items, data)
	return nil
}

// WriteAll buffers documents. Only one may be flushed.
func (w *XMLWriter) WriteAll(data []any) error {
	w.items = append(w.items, data...)
	return nil
}

// Flush encodes the buffered document.
func (w *XMLWriter) Flush() error {
	if len(w.items) != 1 {
		return errors.New("xml output holds exactly one document")
	}
	if _, err := w.w.WriteString(bom + xmlDeclaration); err != nil {
		return err
	}
	enc := xml.NewEncoder(w.w)
	enc.Indent("", w.indent)
	if err := enc.Encode(w.items[0]); err != nil {
		return err
	}
	if err := enc.Close(); err != nil {
		return err
	}
	w.items = nil
	w.done = true
	if _, err := w.w.WriteString("\n"); err != nil {
		return err
	}
	return w.w.Flush()
}

// Close flushes the writer.
func (w *XMLWriter) Close() error {
	if w.done && len(w.items) == 0 {
		return nil
	}
	return w.Flush()
}
