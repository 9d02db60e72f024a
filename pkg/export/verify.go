package export

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"strings"

	"github.com/antchfx/xmlquery"
	"github.com/tidwall/gjson"
)

// ErrVerification is returned when a written file does not read back as
// expected.
var ErrVerification = errors.New("export verification failed")

// Probe is one check run against all.json or all.xml after an export.
// Exactly one of JSON and XPath is set. An empty Want only checks that the
// value exists.
type Probe struct {
	Name  string
	JSON  string // gjson path into all.json
	XPath string // xmlquery expression into all.xml
	Want  string
}

// DefaultProbes returns checks that hold for any published ADIF
// Specification of the given version and status.
func DefaultProbes(version, status string) []Probe {
	return []Probe{
		{Name: "json version", JSON: "Adif.Version", Want: version},
		{Name: "json status", JSON: "Adif.Status", Want: status},
		{Name: "json band", JSON: "Adif.Enumerations.Band.Records.20m"},
		{Name: "json mode", JSON: "Adif.Enumerations.Mode.Records.SSB"},
		{Name: "json call field", JSON: "Adif.Fields.Records.CALL.Data Type", Want: "String"},
		{Name: "json string type", JSON: "Adif.DataTypes.Records.String"},
		{Name: "xml version", XPath: "/adif/@version", Want: version},
		{Name: "xml status", XPath: "/adif/@status", Want: status},
		{Name: "xml band", XPath: "/adif/enumerations/enumeration[@name='Band']/record[value[@name='Band']='20m']"},
		{Name: "xml call field", XPath: "/adif/fields/record[value[@name='Field Name']='CALL']/value[@name='Data Type']", Want: "String"},
	}
}

// tableCount is the number of records one table was exported with.
type tableCount struct {
	name        string
	enumeration bool
	records     int
}

// verifier re-reads the merged files.
type verifier struct {
	json []byte
	xml  *xmlquery.Node
}

func newVerifier(jsonPath, xmlPath string) (*verifier, error) {
	v := &verifier{}
	if jsonPath != "" {
		data, err := os.ReadFile(jsonPath)
		if err != nil {
			return nil, err
		}
		if !gjson.ValidBytes(data) {
			return nil, fmt.Errorf("%w: %s is not valid JSON", ErrVerification, jsonPath)
		}
		v.json = data
	}
	if xmlPath != "" {
		data, err := os.ReadFile(xmlPath)
		if err != nil {
			return nil, err
		}
		doc, err := xmlquery.Parse(bytes.NewReader(bytes.TrimPrefix(data, []byte(utf8BOM))))
		if err != nil {
			return nil, fmt.Errorf("%w: %s: %w", ErrVerification, xmlPath, err)
		}
		v.xml = doc
	}
	return v, nil
}

const utf8BOM = "\ufeff"

// counts checks that every table has the expected number of records in both
// files.
func (v *verifier) counts(want []tableCount) error {
	for _, c := range want {
		if v.json != nil {
			got := 0
			gjson.GetBytes(v.json, jsonRecordsPath(c)).ForEach(func(_, _ gjson.Result) bool {
				got++
				return true
			})
			if got != c.records {
				return fmt.Errorf("%w: all.json has %d %s records, want %d", ErrVerification, got, c.name, c.records)
			}
		}
		if v.xml != nil {
			nodes, err := xmlquery.QueryAll(v.xml, xmlRecordsPath(c))
			if err != nil {
				return fmt.Errorf("%w: %s: %w", ErrVerification, c.name, err)
			}
			if len(nodes) != c.records {
				return fmt.Errorf("%w: all.xml has %d %s records, want %d", ErrVerification, len(nodes), c.name, c.records)
			}
		}
	}
	return nil
}

func (v *verifier) probe(p Probe) error {
	switch {
	case p.JSON != "":
		if v.json == nil {
			return nil
		}
		r := gjson.GetBytes(v.json, p.JSON)
		if !r.Exists() {
			return fmt.Errorf("%w: %s: %q not found in all.json", ErrVerification, p.Name, p.JSON)
		}
		if p.Want != "" && r.String() != p.Want {
			return fmt.Errorf("%w: %s: all.json %q = %q, want %q", ErrVerification, p.Name, p.JSON, r.String(), p.Want)
		}
	case p.XPath != "":
		if v.xml == nil {
			return nil
		}
		n, err := xmlquery.Query(v.xml, p.XPath)
		if err != nil {
			return fmt.Errorf("%w: %s: %w", ErrVerification, p.Name, err)
		}
		if n == nil {
			return fmt.Errorf("%w: %s: %q not found in all.xml", ErrVerification, p.Name, p.XPath)
		}
		if got := n.InnerText(); p.Want != "" && got != p.Want {
			return fmt.Errorf("%w: %s: all.xml %q = %q, want %q", ErrVerification, p.Name, p.XPath, got, p.Want)
		}
	default:
		return fmt.Errorf("%w: probe %q has no path", ErrVerification, p.Name)
	}
	return nil
}

func jsonRecordsPath(c tableCount) string {
	if c.enumeration {
		return "Adif.Enumerations." + escapeJSONPath(c.name) + ".Records"
	}
	return "Adif." + c.name + ".Records"
}

func xmlRecordsPath(c tableCount) string {
	switch {
	case c.enumeration:
		return fmt.Sprintf("/adif/enumerations/enumeration[@name='%s']/record", c.name)
	case c.name == kindDataTypes:
		return "/adif/dataTypes/record"
	}
	return "/adif/fields/record"
}

// escapeJSONPath escapes the gjson path characters in one path component.
func escapeJSONPath(s string) string {
	var b strings.Builder
	for _, r := range s {
		switch r {
		case '.', '*', '?', '|', '#', '@', '!', '=', '<', '>', '%', '\\':
			b.WriteByte('\\')
		}
		b.WriteRune(r)
	}
	return b.String()
}
