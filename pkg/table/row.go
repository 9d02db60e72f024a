package table

import (
	"errors"
	"fmt"
	"strings"
)

// ErrIncompleteRow is returned when a row still has unset slots after loading.
var ErrIncompleteRow = errors.New("incomplete row")

// Row is a row under construction. Each slot carries a set bit so that a
// slot nobody wrote can be told apart from an empty value.
type Row struct {
	values []string
	set    []bool
}

// NewRow creates a row with width unset slots.
func NewRow(width int) *Row {
	return &Row{
		values: make([]string, width),
		set:    make([]bool, width),
	}
}

// Set stores value in slot.
func (r *Row) Set(slot int, value string) {
	r.values[slot] = value
	r.set[slot] = true
}

// SetDefault stores value in slot only when the slot is still unset.
func (r *Row) SetDefault(slot int, value string) {
	if !r.set[slot] {
		r.Set(slot, value)
	}
}

// Get returns the value in slot and whether it was set.
func (r *Row) Get(slot int) (string, bool) {
	return r.values[slot], r.set[slot]
}

// IsSet reports whether slot has been written.
func (r *Row) IsSet(slot int) bool {
	return r.set[slot]
}

// Len returns the row width.
func (r *Row) Len() int {
	return len(r.values)
}

// Complete checks that every slot has been written and returns the values.
func (r *Row) Complete() ([]string, error) {
	for _, ok := range r.set {
		if !ok {
			return nil, fmt.Errorf("%w: values=%s", ErrIncompleteRow, r.dump())
		}
	}
	out := make([]string, len(r.values))
	copy(out, r.values)
	return out, nil
}

func (r *Row) dump() string {
	var b strings.Builder
	for i, v := range r.values {
		if i > 0 {
			b.WriteString(", ")
		}
		if r.set[i] {
			fmt.Fprintf(&b, "%q", v)
		} else {
			b.WriteString("null")
		}
	}
	return b.String()
}
