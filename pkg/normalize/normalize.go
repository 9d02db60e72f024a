// Package normalize implements the cell value rules applied to text read from
// ADIF Specification tables. Each rule is a small function so loaders can
// bind them to the columns that need them.
package normalize

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
)

// ErrCellContent is returned when a cell value does not have the form a rule
// expects.
var ErrCellContent = errors.New("unexpected cell content")

// Whitespace collapses every run of whitespace, non-breaking spaces
// included, into a single ASCII space and trims both ends.
func Whitespace(s string) string {
	var b strings.Builder
	b.Grow(len(s))
	inSpace := false
	for _, r := range s {
		if unicode.IsSpace(r) {
			if !inSpace {
				b.WriteByte(' ')
				inSpace = true
			}
			continue
		}
		inSpace = false
		b.WriteRune(r)
	}
	return strings.TrimSpace(b.String())
}

// ImportOnlyMarker is the value written to the Import-only column.
const ImportOnlyMarker = "Import-only"

// DeletedMarker is the canonical value of a Deleted column.
const DeletedMarker = "Deleted"

const importOnly = "import-only"

// ContainsImportOnly reports whether s mentions import-only in any case.
func ContainsImportOnly(s string) bool {
	return strings.Contains(strings.ToLower(s), importOnly)
}

// Deleted canonicalizes a deletion marker. "y" and "deleted" in any case
// become "Deleted" and an empty value stays empty.
func Deleted(s string) (string, error) {
	if s == "" {
		return "", nil
	}
	switch strings.ToLower(s) {
	case "y", "deleted":
		return DeletedMarker, nil
	default:
		return "", fmt.Errorf("%w: unexpected value for Deleted: value=%q", ErrCellContent, s)
	}
}

// Frequency removes thousands separators from a frequency in MHz.
func Frequency(s string) string {
	return strings.ReplaceAll(s, ",", "")
}

// ContestID uppercases a contest identifier.
func ContestID(s string) string {
	return strings.ToUpper(s)
}

// RemoveSpaces strips every space, used for comma-separated code lists.
func RemoveSpaces(s string) string {
	return strings.ReplaceAll(s, " ", "")
}

// Submodes rejoins a comma-separated submode list without padding or
// empty items, so "a, b ,c" becomes "a,b,c".
func Submodes(s string) string {
	if !strings.Contains(s, ",") {
		return s
	}
	parts := strings.Split(s, ",")
	out := parts[:0]
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return strings.Join(out, ",")
}

func hasPrefixFold(s, prefix string) bool {
	return len(s) >= len(prefix) && strings.EqualFold(s[:len(prefix)], prefix)
}
