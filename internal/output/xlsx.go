package output

import (
	"fmt"
	"io"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/xuri/excelize/v2"
)

const (
	// maxSheetName is the spreadsheet limit on worksheet name length.
	maxSheetName = 31

	// textFormat is the built-in "@" number format, which keeps values
	// like 00123 from being read as numbers.
	textFormat = 49
)

// XLSXWriter writes a single-sheet workbook. Header records are bold and
// every cell uses the text number format. The workbook is written on Close.
type XLSXWriter struct {
	w           io.Writer
	file        *excelize.File
	sheet       string
	row         int
	headerStyle int
	valueStyle  int
}

// NewXLSXWriter creates a workbook writer. The sheet name is cut to the
// 31 character limit.
func NewXLSXWriter(w io.Writer, opts ...TableOption) (*XLSXWriter, error) {
	cfg := &tableConfig{sheet: "Sheet1"}
	for _, opt := range opts {
		opt(cfg)
	}

	f := excelize.NewFile()
	sheet := truncateSheetName(cfg.sheet)
	if err := f.SetSheetName(f.GetSheetName(0), sheet); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("sheet name %q: %w", sheet, err)
	}
	props := &excelize.DocProperties{
		Title:          cfg.title,
		Creator:        cfg.author,
		LastModifiedBy: cfg.author,
		Version:        cfg.version,
		ContentStatus:  cfg.status,
		Keywords:       releaseKeywords(cfg.version, cfg.status),
	}
	if !cfg.created.IsZero() {
		props.Created = cfg.created.UTC().Format(time.RFC3339)
		props.Modified = props.Created
	}
	if err := f.SetDocProps(props); err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("document properties: %w", err)
	}

	headerStyle, err := f.NewStyle(&excelize.Style{
		Font:   &excelize.Font{Bold: true},
		NumFmt: textFormat,
	})
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	valueStyle, err := f.NewStyle(&excelize.Style{NumFmt: textFormat})
	if err != nil {
		_ = f.Close()
		return nil, err
	}

	return &XLSXWriter{
		w:           w,
		file:        f,
		sheet:       sheet,
		headerStyle: headerStyle,
		valueStyle:  valueStyle,
	}, nil
}

// Sheet returns the worksheet name in use.
func (w *XLSXWriter) Sheet() string {
	return w.sheet
}

// WriteHeader writes a bold header record.
func (w *XLSXWriter) WriteHeader(values []string) error {
	return w.writeRow(values, w.headerStyle)
}

// WriteRecord writes a value record.
func (w *XLSXWriter) WriteRecord(values []string) error {
	return w.writeRow(values, w.valueStyle)
}

func (w *XLSXWriter) writeRow(values []string, style int) error {
	w.row++
	first, err := excelize.CoordinatesToCellName(1, w.row)
	if err != nil {
		return err
	}
	if len(values) == 0 {
		return nil
	}
	cells := make([]any, len(values))
	for i, v := range values {
		cells[i] = v
	}
	if err := w.file.SetSheetRow(w.sheet, first, &cells); err != nil {
		return fmt.Errorf("row %d: %w", w.row, err)
	}
	last, err := excelize.CoordinatesToCellName(len(values), w.row)
	if err != nil {
		return err
	}
	return w.file.SetCellStyle(w.sheet, first, last, style)
}

// Close writes the workbook and releases it.
func (w *XLSXWriter) Close() error {
	err := w.file.Write(w.w)
	if cerr := w.file.Close(); err == nil {
		err = cerr
	}
	return err
}

func releaseKeywords(version, status string) string {
	var parts []string
	if version != "" {
		parts = append(parts, "ADIF Version "+version)
	}
	if status != "" {
		parts = append(parts, "ADIF Status "+status)
	}
	return strings.Join(parts, "; ")
}

func truncateSheetName(name string) string {
	if utf8.RuneCountInString(name) <= maxSheetName {
		return name
	}
	return string([]rune(name)[:maxSheetName])
}
