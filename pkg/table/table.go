package table

import (
	"errors"
	"fmt"
	"strings"
)

// ErrColumnNotFound is returned when a projection names a column the table
// never registered.
var ErrColumnNotFound = errors.New("column not found")

// Table is one logical table: a registry plus the rows loaded into it.
type Table struct {
	Name string

	registry *Registry
	rows     [][]string
}

// New creates an empty table.
func New(name string) *Table {
	return &Table{
		Name:     name,
		registry: NewRegistry(),
	}
}

// AddColumn registers a column. When the column is new, every stored row
// gets an empty value in the new slot.
func (t *Table) AddColumn(name string) int {
	before := t.registry.Len()
	slot := t.registry.Add(name)
	if t.registry.Len() > before {
		for i := range t.rows {
			t.rows[i] = append(t.rows[i], "")
		}
	}
	return slot
}

// Slot returns the slot for a registered column.
func (t *Table) Slot(name string) (int, bool) {
	return t.registry.Slot(name)
}

// Columns returns the registered column names in slot order.
func (t *Table) Columns() []string {
	return t.registry.Names()
}

// Width returns the number of registered columns.
func (t *Table) Width() int {
	return t.registry.Len()
}

// NewRow starts a row as wide as the registry currently is.
func (t *Table) NewRow() *Row {
	return NewRow(t.registry.Len())
}

// Append completes row and stores it. An unset slot is an error.
func (t *Table) Append(row *Row) error {
	if row.Len() != t.registry.Len() {
		return fmt.Errorf("table %q: row has %d slots, registry has %d", t.Name, row.Len(), t.registry.Len())
	}
	values, err := row.Complete()
	if err != nil {
		return fmt.Errorf("table %q: %w", t.Name, err)
	}
	t.rows = append(t.rows, values)
	return nil
}

// Len returns the number of stored rows.
func (t *Table) Len() int {
	return len(t.rows)
}

// Rows returns a copy of the stored rows in slot order.
func (t *Table) Rows() [][]string {
	out := make([][]string, len(t.rows))
	for i, r := range t.rows {
		out[i] = append([]string(nil), r...)
	}
	return out
}

// Projection is a header and rows in export column order.
type Projection struct {
	Header []string
	Rows   [][]string
}

// Project reorders the table into the expected column order. Columns that
// are not named are left out.
func (t *Table) Project(expected []string) (Projection, error) {
	slots := make([]int, 0, len(expected))
	for _, name := range expected {
		slot, ok := t.registry.Slot(name)
		if !ok {
			quoted := make([]string, 0, t.registry.Len())
			for _, n := range t.registry.Names() {
				quoted = append(quoted, fmt.Sprintf("%q", n))
			}
			return Projection{}, fmt.Errorf("%w: table %q: unable to find column %q, columns are %s",
				ErrColumnNotFound, t.Name, name, strings.Join(quoted, ", "))
		}
		slots = append(slots, slot)
	}

	p := Projection{
		Header: append([]string(nil), expected...),
		Rows:   make([][]string, 0, len(t.rows)),
	}
	for _, r := range t.rows {
		out := make([]string, len(slots))
		for i, slot := range slots {
			out[i] = r[slot]
		}
		p.Rows = append(p.Rows, out)
	}
	return p, nil
}
