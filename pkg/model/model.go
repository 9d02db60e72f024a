// Package model is the structured form of an export, serialized to JSON
// and YAML.
package model

import (
	"fmt"
	"time"

	"github.com/g3zod/adifexport/pkg/table"
)

// Export is the document root.
type Export struct {
	Adif *Adif `json:"Adif" yaml:"Adif"`
}

// Adif carries the document metadata and whichever sections an export
// file includes.
type Adif struct {
	Version      string              `json:"Version" yaml:"Version"`
	Status       string              `json:"Status" yaml:"Status"`
	Date         string              `json:"Date,omitempty" yaml:"Date,omitempty"`
	DataTypes    *Table              `json:"DataTypes,omitempty" yaml:"DataTypes,omitempty"`
	Enumerations *OrderedMap[*Table] `json:"Enumerations,omitempty" yaml:"Enumerations,omitempty"`
	Fields       *Table              `json:"Fields,omitempty" yaml:"Fields,omitempty"`
}

// Record maps column names to values. Empty values are left out.
type Record = OrderedMap[string]

// Table is one logical table keyed by natural key.
type Table struct {
	Header  []string             `json:"Header" yaml:"Header"`
	Records *OrderedMap[*Record] `json:"Records" yaml:"Records"`
}

// NewExport creates a root with no sections. A zero date is left out.
func NewExport(version, status string, date time.Time) *Export {
	a := &Adif{Version: version, Status: status}
	if !date.IsZero() {
		a.Date = date.UTC().Format(DateTimeLayout)
	}
	return &Export{Adif: a}
}

// KeyFunc returns the natural key of a projected row.
type KeyFunc func(header, row []string) (string, error)

// ColumnKey keys rows by the value in column col.
func ColumnKey(col int) KeyFunc {
	return func(header, row []string) (string, error) {
		if col >= len(row) {
			return "", fmt.Errorf("key column %d is outside a row of %d values", col, len(row))
		}
		return row[col], nil
	}
}

// SubdivisionKey keys subdivision rows, whose codes repeat across DXCC
// entities, as "code.entity", with ".Deleted.0" appended for deleted rows.
// Two deleted rows with the same code in one entity still collide.
func SubdivisionKey(header, row []string) (string, error) {
	code, err := column(header, row, "Code")
	if err != nil {
		return "", err
	}
	entity, err := column(header, row, "DXCC Entity Code")
	if err != nil {
		return "", err
	}
	key := code + "." + entity
	if deleted, _ := column(header, row, "Deleted"); deleted != "" {
		key += ".Deleted.0"
	}
	return key, nil
}

func column(header, row []string, name string) (string, error) {
	for i, h := range header {
		if h == name && i < len(row) {
			return row[i], nil
		}
	}
	return "", fmt.Errorf("%w: key column %q", table.ErrColumnNotFound, name)
}

// NewTable converts a projection. Values go through Value and rows are
// keyed by key; a repeated key is an error.
func NewTable(p table.Projection, key KeyFunc) (*Table, error) {
	t := &Table{
		Header:  append([]string(nil), p.Header...),
		Records: NewOrderedMap[*Record](),
	}
	for _, row := range p.Rows {
		k, err := key(p.Header, row)
		if err != nil {
			return nil, err
		}
		rec := NewOrderedMap[string]()
		for i, v := range row {
			if v == "" {
				continue
			}
			out, err := Value(p.Header[i], v)
			if err != nil {
				return nil, fmt.Errorf("record %q: %w", k, err)
			}
			if err := rec.Set(p.Header[i], out); err != nil {
				return nil, fmt.Errorf("record %q: %w", k, err)
			}
		}
		if err := t.Records.Set(k, rec); err != nil {
			return nil, fmt.Errorf("records: %w", err)
		}
	}
	return t, nil
}
