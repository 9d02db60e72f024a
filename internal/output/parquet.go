package output

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"
	"unicode"

	writerfile "github.com/xitongsys/parquet-go-source/writerfile"
	"github.com/xitongsys/parquet-go/parquet"
	"github.com/xitongsys/parquet-go/source"
	"github.com/xitongsys/parquet-go/writer"
)

// ErrMultipleHeaders is returned when a format holding one table per file
// is given a second header record.
var ErrMultipleHeaders = errors.New("format holds a single header record")

// ParquetWriter writes one table as a Parquet file. Every column is an
// optional UTF-8 string named after its header in snake_case; empty values
// are written as nulls.
type ParquetWriter struct {
	file    source.ParquetFile
	pw      *writer.JSONWriter
	columns []string
}

// NewParquetWriter creates a Parquet writer. The schema is fixed by the
// header record.
func NewParquetWriter(w io.Writer) *ParquetWriter {
	return &ParquetWriter{file: writerfile.NewWriterFile(w)}
}

// Columns returns the Parquet column names derived from the header.
func (w *ParquetWriter) Columns() []string {
	return append([]string(nil), w.columns...)
}

// WriteHeader fixes the schema.
func (w *ParquetWriter) WriteHeader(values []string) error {
	if w.pw != nil {
		return ErrMultipleHeaders
	}
	w.columns = ColumnNames(values)
	pw, err := writer.NewJSONWriter(parquetSchema(w.columns), w.file, 4)
	if err != nil {
		return fmt.Errorf("parquet schema: %w", err)
	}
	pw.CompressionType = parquet.CompressionCodec_SNAPPY
	w.pw = pw
	return nil
}

// WriteRecord writes a value record.
func (w *ParquetWriter) WriteRecord(values []string) error {
	if w.pw == nil {
		return errors.New("parquet record written before the header")
	}
	if len(values) != len(w.columns) {
		return fmt.Errorf("parquet record has %d values, header has %d", len(values), len(w.columns))
	}
	row := make(map[string]any, len(values))
	for i, v := range values {
		if v == "" {
			row[w.columns[i]] = nil
			continue
		}
		row[w.columns[i]] = v
	}
	data, err := json.Marshal(row)
	if err != nil {
		return err
	}
	return w.pw.Write(string(data))
}

// Close writes the footer.
func (w *ParquetWriter) Close() error {
	if w.pw == nil {
		return errors.New("parquet table has no header")
	}
	err := w.pw.WriteStop()
	if cerr := w.file.Close(); err == nil {
		err = cerr
	}
	return err
}

// ColumnNames converts header titles to unique snake_case column names.
func ColumnNames(header []string) []string {
	names := make([]string, len(header))
	seen := make(map[string]int, len(header))
	for i, h := range header {
		name := snakeCase(h)
		if n := seen[name]; n > 0 {
			seen[name] = n + 1
			name += "_" + strconv.Itoa(n+1)
		} else {
			seen[name] = 1
		}
		names[i] = name
	}
	return names
}

func snakeCase(s string) string {
	var b strings.Builder
	pending := false
	for _, r := range strings.ToLower(s) {
		if r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)) {
			if pending && b.Len() > 0 {
				b.WriteByte('_')
			}
			pending = false
			b.WriteRune(r)
			continue
		}
		pending = true
	}
	name := b.String()
	switch {
	case name == "":
		return "column"
	case name[0] >= '0' && name[0] <= '9':
		return "c_" + name
	}
	return name
}

func parquetSchema(columns []string) string {
	fields := make([]map[string]string, 0, len(columns))
	for _, c := range columns {
		fields = append(fields, map[string]string{
			"Tag": fmt.Sprintf("name=%s, type=BYTE_ARRAY, convertedtype=UTF8, repetitiontype=OPTIONAL", c),
		})
	}
	out := map[string]any{
		"Tag":    "name=parquet_go_root, repetitiontype=REQUIRED",
		"Fields": fields,
	}
	b, _ := json.Marshal(out)
	return string(b)
}
