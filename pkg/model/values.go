package model

import (
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/araddon/dateparse"

	"github.com/g3zod/adifexport/pkg/normalize"
)

// TrueValue is how flag columns are written in structured exports.
const TrueValue = "true"

// DateTimeLayout is the layout of dates in structured exports.
const DateTimeLayout = "2006-01-02T15:04:05Z"

// XMLDateLayout is the layout of enumeration date columns in XML exports.
const XMLDateLayout = "2006-01-02Z"

var flagColumns = map[string]bool{
	"DELETED":      true,
	"IMPORT-ONLY":  true,
	"HEADER FIELD": true,
}

var dateColumns = map[string]bool{
	"DELETED DATE": true,
	"FROM DATE":    true,
}

var rawDate = regexp.MustCompile(`^\d{4}-\d{2}-\d{2}$`)

// IsFlagColumn reports whether column holds a marker written as "true".
func IsFlagColumn(column string) bool {
	return flagColumns[strings.ToUpper(column)]
}

// IsDateColumn reports whether column holds a date.
func IsDateColumn(column string) bool {
	return dateColumns[strings.ToUpper(column)]
}

// ParseDate reads a date cell.
func ParseDate(value string) (time.Time, error) {
	t, err := dateparse.ParseIn(value, time.UTC)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: unparseable date: value=%q", normalize.ErrCellContent, value)
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC), nil
}

// Value converts a non-empty cell to its structured export form. Flags
// become "true" and dates become UTC date-times. A value still shaped like
// a bare date afterwards is an error.
func Value(column, value string) (string, error) {
	switch {
	case IsFlagColumn(column):
		return TrueValue, nil
	case IsDateColumn(column):
		t, err := ParseDate(value)
		if err != nil {
			return "", fmt.Errorf("column %q: %w", column, err)
		}
		return t.Format(DateTimeLayout), nil
	}
	if rawDate.MatchString(value) {
		return "", fmt.Errorf("%w: unexpected date in column %q: value=%q", normalize.ErrCellContent, column, value)
	}
	return value, nil
}
