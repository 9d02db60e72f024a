package normalize

import (
	"errors"
	"strings"
	"testing"
)

func TestWhitespace(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"empty", "", ""},
		{"trim", "  AK  ", "AK"},
		{"runs", "New\n\t  York", "New York"},
		{"nbsp", "Sankt  Peterburg", "Sankt Peterburg"},
		{"only space", "  \n", ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Whitespace(tt.in); got != tt.want {
				t.Errorf("Whitespace(%q) = %q, want %q", tt.in, got, tt.want)
			}
		})
	}
}

func TestDeleted(t *testing.T) {
	for _, in := range []string{"Y", "y", "Deleted", "deleted", "DELETED"} {
		got, err := Deleted(in)
		if err != nil {
			t.Fatalf("Deleted(%q) error = %v", in, err)
		}
		if got != DeletedMarker {
			t.Errorf("Deleted(%q) = %q, want %q", in, got, DeletedMarker)
		}
	}

	if got, err := Deleted(""); err != nil || got != "" {
		t.Errorf("Deleted(\"\") = %q, %v", got, err)
	}

	_, err := Deleted("N")
	if !errors.Is(err, ErrCellContent) {
		t.Fatalf("Deleted(N) error = %v, want ErrCellContent", err)
	}
	if !strings.Contains(err.Error(), `"N"`) {
		t.Errorf("error should carry the raw value, got %v", err)
	}
}

func TestContainsImportOnly(t *testing.T) {
	if !ContainsImportOnly("Thing (Import-Only)") {
		t.Error("mixed case marker not detected")
	}
	if ContainsImportOnly("importonly") {
		t.Error("marker without hyphen should not match")
	}
}

func TestSmallRules(t *testing.T) {
	tests := []struct {
		name string
		fn   func(string) string
		in   string
		want string
	}{
		{"frequency", Frequency, "1,240", "1240"},
		{"frequency no separator", Frequency, "144", "144"},
		{"contest id", ContestID, "ny-qso-party", "NY-QSO-PARTY"},
		{"remove spaces", RemoveSpaces, "DXCC, WAS", "DXCC,WAS"},
		{"submodes", Submodes, "a, b ,c", "a,b,c"},
		{"submodes empty tokens", Submodes, "PSK31, ,PSK63,", "PSK31,PSK63"},
		{"submodes single", Submodes, "USB", "USB"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := tt.fn(tt.in); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}
}

func TestFixTypo(t *testing.T) {
	if got := FixTypo("Kaliningrad (Kaliningradskaya oblast}"); got != "Kaliningrad (Kaliningradskaya oblast)" {
		t.Errorf("FixTypo() = %q", got)
	}
	if got := FixTypo("Moskva"); got != "Moskva" {
		t.Errorf("FixTypo() changed an unknown value: %q", got)
	}
}
