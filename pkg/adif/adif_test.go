package adif

import (
	"context"
	"errors"
	"reflect"
	"strings"
	"testing"
	"time"

	"github.com/g3zod/adifexport/pkg/source"
	"github.com/g3zod/adifexport/pkg/table"
)

func meta(version, status, date string) string {
	m := `<meta name="adifversion" content="` + version + `" />` +
		`<meta name="adifstatus" content="` + status + `" />`
	if date != "" {
		m += `<meta name="adifdate" content="` + date + `" />`
	}
	return m
}

func document(t *testing.T, name, head, body string) *source.Document {
	t.Helper()
	page := `<!DOCTYPE html><html><head>` +
		`<meta http-equiv="Content-Type" content="text/html; charset=windows-1252" />` +
		head + `</head><body>` + body + `</body></html>`
	doc, err := source.Load([]byte(page), name)
	if err != nil {
		t.Fatalf("source.Load() error = %v", err)
	}
	return doc
}

func load(t *testing.T, body string, opts ...Option) *Specification {
	t.Helper()
	s, err := Load(context.Background(), document(t, "ADIF_316.htm", meta("3.1.6", "Released", "2025-09-15"), body), opts...)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	return s
}

func enumeration(t *testing.T, s *Specification, name string) table.Projection {
	t.Helper()
	p, err := s.Enumeration(name)
	if err != nil {
		t.Fatalf("Enumeration(%q) error = %v", name, err)
	}
	return p
}

func TestLoad_MinimalEnumeration(t *testing.T) {
	s := load(t, `<table id="Enumeration_Test">
		<tr><th>Code</th><th>Description</th></tr>
		<tr><td>AK</td><td>Alaska (import-only)</td></tr>
	</table>`)

	p := enumeration(t, s, "Test")
	wantHeader := []string{"Enumeration Name", "Code", "Description", "Import-only", "Comments"}
	if !reflect.DeepEqual(p.Header, wantHeader) {
		t.Fatalf("Header = %q, want %q", p.Header, wantHeader)
	}
	want := [][]string{{"Test", "AK", "Alaska", "Import-only", ""}}
	if !reflect.DeepEqual(p.Rows, want) {
		t.Errorf("Rows = %q, want %q", p.Rows, want)
	}
}

func TestLoad_Metadata(t *testing.T) {
	var progress []string
	s := load(t, "", WithProgress(func(m string) { progress = append(progress, m) }))

	if s.Version != "3.1.6" || s.Status != "Released" {
		t.Errorf("Version, Status = %q, %q", s.Version, s.Status)
	}
	if want := time.Date(2025, 9, 15, 0, 0, 0, 0, time.UTC); !s.Date.Equal(want) {
		t.Errorf("Date = %v, want %v", s.Date, want)
	}
	if len(progress) == 0 || !strings.Contains(progress[len(progress)-1], "Version is 3.1.6, Status is Released") {
		t.Errorf("progress = %q", progress)
	}
}

func TestLoad_NoDate(t *testing.T) {
	var progress []string
	doc := document(t, "ADIF_315.htm", meta("3.1.5", "Proposed", ""), "")
	s, err := Load(context.Background(), doc, WithProgress(func(m string) { progress = append(progress, m) }))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if s.HasDate() {
		t.Errorf("HasDate() = true, Date = %v", s.Date)
	}
	warned := false
	for _, m := range progress {
		warned = warned || strings.Contains(m, "adifdate")
	}
	if !warned {
		t.Errorf("expected a progress warning about the missing date, got %q", progress)
	}
}

func TestLoad_UnsupportedInput(t *testing.T) {
	// The broken table would be a structure error if it were read.
	broken := `<table id="Enumeration_Broken"><tr></tr></table>`
	tests := []struct {
		name string
		head string
		want string
	}{
		{"unknown version", meta("9.9.9", "Released", ""), "3.1.4, 3.1.5, 3.1.6"},
		{"unknown status", meta("3.1.6", "Final", ""), "Draft, Proposed, Released"},
		{"missing version", `<meta name="adifstatus" content="Released" />`, "adifversion"},
		{"missing status", `<meta name="adifversion" content="3.1.6" />`, "adifstatus"},
		{"bad date", meta("3.1.6", "Released", "not a date"), "not a date"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(context.Background(), document(t, "ADIF.htm", tt.head, broken))
			if !errors.Is(err, ErrUnsupportedInput) {
				t.Fatalf("Load() error = %v, want ErrUnsupportedInput", err)
			}
			if !strings.Contains(err.Error(), tt.want) {
				t.Errorf("error %q should mention %q", err, tt.want)
			}
		})
	}
}

const deletedBody = `<table id="Enumeration_Test">
	<tr><th>Code</th><th>Description</th></tr>
	<tr><td>AK</td><td>Alaska<span class="deletion"> Territory</span></td></tr>
</table>`

func TestLoad_AnnotatedDeclined(t *testing.T) {
	head := meta("3.1.6", "Draft", "2025-01-01")

	_, err := Load(context.Background(), document(t, "ADIF_316_annotated.htm", head, deletedBody))
	if !errors.Is(err, ErrUserDeclined) {
		t.Fatalf("Load() without confirm error = %v, want ErrUserDeclined", err)
	}

	var asked string
	_, err = Load(context.Background(), document(t, "ADIF_316_annotated.htm", head, deletedBody),
		WithConfirm(func(m string) bool { asked = m; return false }))
	if !errors.Is(err, ErrUserDeclined) {
		t.Fatalf("Load() declined error = %v, want ErrUserDeclined", err)
	}
	if !strings.Contains(asked, "'ADIF_316_annotated.htm' is an annotated ADIF specification") {
		t.Errorf("confirm message = %q", asked)
	}
}

func TestLoad_AnnotatedAccepted(t *testing.T) {
	doc := document(t, "ADIF_316_annotated.htm", meta("3.1.6", "Draft", "2025-01-01"), deletedBody)
	s, err := Load(context.Background(), doc, WithConfirm(func(string) bool { return true }))
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}
	if s.Deletions != 1 {
		t.Errorf("Deletions = %d, want 1", s.Deletions)
	}
	if got := enumeration(t, s, "Test").Rows[0][2]; got != "Alaska" {
		t.Errorf("Description = %q, want deletion removed", got)
	}
}

func TestLoad_DeletionsWithoutPrompt(t *testing.T) {
	asked := false
	s := load(t, deletedBody, WithConfirm(func(string) bool { asked = true; return false }))
	if asked {
		t.Error("an unannotated file name should not prompt")
	}
	if got := enumeration(t, s, "Test").Rows[0][2]; got != "Alaska" {
		t.Errorf("Description = %q", got)
	}
}

const primaryBody = `
<table id="Enumeration_Primary_Administrative_Subdivision_1">
	<tr><th colspan="4">Canada: DXCC Entity Code 1</th></tr>
	<tr><th>Code</th><th>Primary Administrative Subdivision</th><th>CQ Zone</th><th>ITU Zone</th></tr>
	<tr><th colspan="4">Northern region</th></tr>
	<tr><td>NU</td><td>Nunavut</td><td>2</td><td>4</td></tr>
	<tr><td>XX</td><td>Old Place - for contacts made before 2008-03-01</td><td>5</td><td>9</td></tr>
</table>
<table id="Enumeration_Primary_Administrative_Subdivision_291">
	<tr><th colspan="5">United States of America: DXCC Entity Code 291</th></tr>
	<tr><th>Code</th><th>Primary Administrative Subdivision</th><th>CQ Zone</th><th>ITU Zone</th><th>Deleted</th></tr>
	<tr><td>CT</td><td>Connecticut (CT)</td><td>5</td><td>8</td><td></td></tr>
	<tr><td>ZZ</td><td>Nowhere</td><td></td><td></td><td>Y</td></tr>
</table>`

func TestLoad_PrimarySubdivision(t *testing.T) {
	s := load(t, primaryBody)

	if names := s.EnumerationNames(); !reflect.DeepEqual(names, []string{PrimarySubdivision}) {
		t.Fatalf("EnumerationNames() = %q, want one shared enumeration", names)
	}

	p := enumeration(t, s, PrimarySubdivision)
	wantHeader := []string{
		"Enumeration Name", "Code", "Primary Administrative Subdivision", "DXCC Entity Code", "Contained Within",
		"Oblast #", "CQ Zone", "ITU Zone", "Prefix", "Deleted", "Import-only", "Comments",
	}
	if !reflect.DeepEqual(p.Header, wantHeader) {
		t.Fatalf("Header = %q", p.Header)
	}

	pas := PrimarySubdivision
	want := [][]string{
		{pas, "NU", "Nunavut", "1", "Northern region", "", "2", "4", "", "", "", ""},
		{pas, "XX", "Old Place", "1", "Northern region", "", "5", "9", "", "Deleted", "", "for contacts made before 2008-03-01"},
		{pas, "CT", "Connecticut", "291", "", "", "5", "8", "", "", "", "CT"},
		{pas, "ZZ", "Nowhere", "291", "", "", "", "", "", "Deleted", "", ""},
	}
	if !reflect.DeepEqual(p.Rows, want) {
		t.Errorf("Rows =\n%q\nwant\n%q", p.Rows, want)
	}
	for _, r := range p.Rows {
		if len(r) != len(p.Header) {
			t.Errorf("row %q has %d values, header has %d", r, len(r), len(p.Header))
		}
	}
}

func TestLoad_EntityMismatch(t *testing.T) {
	_, err := Load(context.Background(), document(t, "ADIF.htm", meta("3.1.6", "Released", ""),
		`<table id="Enumeration_Primary_Administrative_Subdivision_1">
			<tr><th colspan="2">United States of America: DXCC Entity Code 291</th></tr>
			<tr><th>Code</th><th>Primary Administrative Subdivision</th></tr>
		</table>`))
	if !errors.Is(err, ErrStructure) {
		t.Fatalf("Load() error = %v, want ErrStructure", err)
	}
	if !strings.Contains(err.Error(), "mismatch") {
		t.Errorf("error = %v", err)
	}
}

func TestLoad_SecondarySubdivisions(t *testing.T) {
	s := load(t, `
	<table id="Enumeration_Secondary_Administrative_Subdivision_6">
		<tr><th colspan="3">Alaska: DXCC Entity Code 6</th></tr>
		<tr><th>Code</th><th>Secondary Administrative Subdivision</th><th>Alaska Judicial District</th></tr>
		<tr><td>AK,Aleutians East</td><td>Aleutians East (Borough)</td><td>Third</td></tr>
	</table>
	<table id="Enumeration_Secondary_Administrative_Subdivision_Alt_170">
		<tr><th colspan="3">New Zealand: DXCC Entity Code 170</th></tr>
		<tr><th>Code</th><th>Region</th><th>District</th></tr>
		<tr><td>AUK</td><td>Auckland</td><td>Auckland</td></tr>
	</table>`)

	if names := s.EnumerationNames(); !reflect.DeepEqual(names, []string{SecondarySubdivision, SecondarySubdivisionAlt}) {
		t.Fatalf("EnumerationNames() = %q", names)
	}

	sec := enumeration(t, s, SecondarySubdivision)
	wantSec := [][]string{{SecondarySubdivision, "AK,Aleutians East", "Aleutians East", "6", "Third", "", "", "Borough"}}
	if !reflect.DeepEqual(sec.Rows, wantSec) {
		t.Errorf("secondary rows = %q, want %q", sec.Rows, wantSec)
	}

	alt := enumeration(t, s, SecondarySubdivisionAlt)
	wantAltHeader := []string{"Enumeration Name", "Code", "DXCC Entity Code", "Region", "District", "Deleted", "Import-only", "Comments"}
	if !reflect.DeepEqual(alt.Header, wantAltHeader) {
		t.Errorf("alt header = %q", alt.Header)
	}
	wantAlt := [][]string{{SecondarySubdivisionAlt, "AUK", "170", "Auckland", "Auckland", "", "", ""}}
	if !reflect.DeepEqual(alt.Rows, wantAlt) {
		t.Errorf("alt rows = %q, want %q", alt.Rows, wantAlt)
	}
}

func TestLoad_EnumerationRules(t *testing.T) {
	s := load(t, `
	<table id="Enumeration_Band">
		<tr><th>Band</th><th>Lower Freq (MHz)</th><th>Upper Freq (MHz)</th></tr>
		<tr><td>23cm</td><td>1,240</td><td>1,300</td></tr>
	</table>
	<table id="Enumeration_Contest_ID">
		<tr><th>Contest-ID</th><th>Description</th><th>Deleted</th></tr>
		<tr><td>ny-qso-party</td><td>New York   QSO Party</td><td>y</td></tr>
	</table>
	<table id="Enumeration_Mode">
		<tr><th>Mode</th><th>Submodes</th><th>Description (to be supplied in a future specification)</th></tr>
		<tr><td>PSK</td><td>PSK31, PSK63 ,</td><td>Phase shift keying</td></tr>
	</table>
	<table id="Enumeration_QSO_Upload_Status">
		<tr><th>Via</th><th>Meaning</th></tr>
		<tr><td>Y</td><td>uploaded</td></tr>
	</table>
	<table id="Enumeration_ARRL_Section">
		<tr><th>Section Name</th><th>Abbreviation</th><th>DXCC Entity Code</th></tr>
		<tr><td>Alberta (Canada)</td><td>AB</td><td>1, 2</td></tr>
	</table>`)

	tests := []struct {
		name string
		want []string
	}{
		{"Band", []string{"Band", "23cm", "1240", "1300", "", ""}},
		{"Contest_ID", []string{"Contest_ID", "NY-QSO-PARTY", "New York QSO Party", "Deleted", "", ""}},
		{"Mode", []string{"Mode", "PSK", "PSK31,PSK63", "Phase shift keying", "", ""}},
		{"QSO_Upload_Status", []string{"QSO_Upload_Status", "Y", "uploaded", "", ""}},
		{"ARRL_Section", []string{"ARRL_Section", "Alberta", "AB", "1,2", "", "Canada"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := enumeration(t, s, tt.name)
			if len(p.Rows) != 1 || !reflect.DeepEqual(p.Rows[0], tt.want) {
				t.Errorf("Rows = %q, want [%q]", p.Rows, tt.want)
			}
		})
	}

	if h := enumeration(t, s, "QSO_Upload_Status").Header; h[1] != "Status" {
		t.Errorf("QSO_Upload_Status header = %q, want Via renamed to Status", h)
	}
	if h := enumeration(t, s, "Mode").Header; h[3] != "Description" {
		t.Errorf("Mode header = %q, want future specification note removed", h)
	}
}

func TestLoad_CellErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
		want error
	}{
		{
			name: "bad deleted marker",
			body: `<table id="Enumeration_Contest_ID"><tr><th>Contest-ID</th><th>Deleted</th></tr>
				<tr><td>X</td><td>N</td></tr></table>`,
			want: ErrCellContent,
		},
		{
			name: "empty header",
			body: `<table id="Enumeration_Broken"><tr></tr></table>`,
			want: ErrStructure,
		},
		{
			name: "missing entity code",
			body: `<table id="Enumeration_Primary_Administrative_Subdivision"><tr><th>Code</th></tr></table>`,
			want: ErrStructure,
		},
		{
			name: "non-integer greater than",
			body: `<table id="_Data_Types"><tr><th>Data Type Name</th><th>Description</th></tr>
				<tr><td>Odd</td><td>more than <span title="GreaterThan">1.5</span></td></tr></table>`,
			want: ErrCellContent,
		},
		{
			name: "unmatched dependent enumeration",
			body: `<table id="Field_QSO"><tr><th>Field Name</th><th>Data Type</th><th>Enumeration</th><th>Description</th></tr>
				<tr><td>X</td><td>String</td><td>(something else)</td><td></td></tr></table>`,
			want: ErrCellContent,
		},
		{
			name: "unrecognized dash phrase",
			body: `<table id="Enumeration_Primary_Administrative_Subdivision_1">
				<tr><th>Code</th><th>Primary Administrative Subdivision</th></tr>
				<tr><td>X</td><td>Foo - abolished</td></tr></table>`,
			want: ErrCellContent,
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(context.Background(), document(t, "ADIF.htm", meta("3.1.6", "Released", ""), tt.body))
			if !errors.Is(err, tt.want) {
				t.Fatalf("Load() error = %v, want %v", err, tt.want)
			}
		})
	}
}

func TestLoad_DataTypes(t *testing.T) {
	s := load(t, `<table id="_Data_Types">
		<tr><th>Data Type Name</th><th>Data Type Indicator (where used)</th><th>Description</th></tr>
		<tr><td>Integer</td><td></td><td>greater than <span title="GreaterThan">0</span></td></tr>
		<tr><td>Latitude</td><td>L</td><td>from <a><span title="Minimum">-90</span></a> to <span title="Maximum">90</span></td></tr>
		<tr><td>AwardList import-only</td><td></td><td>a list of awards</td></tr>
	</table>`)

	p, err := s.DataTypes()
	if err != nil {
		t.Fatalf("DataTypes() error = %v", err)
	}
	wantHeader := []string{"Data Type Name", "Data Type Indicator", "Description", "Minimum Value", "Maximum Value", "Import-only", "Comments"}
	if !reflect.DeepEqual(p.Header, wantHeader) {
		t.Fatalf("Header = %q", p.Header)
	}
	want := [][]string{
		{"Integer", "", "greater than 0", "1", "", "", ""},
		{"Latitude", "L", "from -90 to 90", "-90", "90", "", ""},
		{"AwardList", "", "a list of awards", "", "", "Import-only", ""},
	}
	if !reflect.DeepEqual(p.Rows, want) {
		t.Errorf("Rows =\n%q\nwant\n%q", p.Rows, want)
	}
}

func TestLoad_Fields(t *testing.T) {
	s := load(t, `
	<table id="Field_Header">
		<tr><th>Field Name</th><th>Data Type</th><th>Enumeration</th><th>Description</th></tr>
		<tr><td>ADIF_VER</td><td>String</td><td></td><td>identifies the version of ADIF</td></tr>
	</table>
	<table id="Field_QSO">
		<tr><th>Field Name</th><th>Data Type</th><th>Enumeration</th><th>Description</th></tr>
		<tr><td>MY_STATE</td><td>Enumeration</td><td>(Primary Administrative Subdivision, function of MY_DXCC field's value)</td><td>the logging station's state</td></tr>
		<tr><td>CREDIT_SUBMITTED</td><td>CreditList, AwardList</td><td>Credit, Award</td><td>credits sought</td></tr>
		<tr><td>SUBMODE</td><td>String</td><td>Submode, function of MODE</td><td>submode</td></tr>
		<tr><td>K_INDEX</td><td>Integer</td><td></td><td>from <span title="Minimum">0</span> to <span title="Maximum">9</span></td></tr>
		<tr><td>VE_PROV</td><td>String</td><td></td><td>import-only: use STATE instead</td></tr>
	</table>`)

	p, err := s.Fields()
	if err != nil {
		t.Fatalf("Fields() error = %v", err)
	}
	wantHeader := []string{
		"Field Name", "Data Type", "Enumeration", "Description",
		"Header Field", "Minimum Value", "Maximum Value", "Import-only", "Comments",
	}
	if !reflect.DeepEqual(p.Header, wantHeader) {
		t.Fatalf("Header = %q", p.Header)
	}
	want := [][]string{
		{"ADIF_VER", "String", "", "identifies the version of ADIF", "Y", "", "", "", ""},
		{"MY_STATE", "Enumeration", "Primary_Administrative_Subdivision[MY_DXCC]", "the logging station's state", "", "", "", "", ""},
		{"CREDIT_SUBMITTED", "CreditList,AwardList", "Credit,Award", "credits sought", "", "", "", "", ""},
		{"SUBMODE", "String", "Submode[MODE]", "submode", "", "", "", "", ""},
		{"K_INDEX", "Integer", "", "from 0 to 9", "", "0", "9", "", ""},
		{"VE_PROV", "String", "", "import-only: use STATE instead", "", "", "", "Import-only", ""},
	}
	if !reflect.DeepEqual(p.Rows, want) {
		t.Errorf("Rows =\n%q\nwant\n%q", p.Rows, want)
	}
}

func TestLoad_IgnoresOtherTables(t *testing.T) {
	s := load(t, `
		<table id="Unrelated"><tr><td>x</td></tr></table>
		<table><tr><td>no id</td></tr></table>
		<table id="Enumeration_Zeta"><tr><th>Code</th></tr><tr><td>Z</td></tr></table>
		<table id="Enumeration_Alpha"><tr><th>Code</th></tr><tr><td>A</td></tr></table>`)

	if names := s.EnumerationNames(); !reflect.DeepEqual(names, []string{"Alpha", "Zeta"}) {
		t.Errorf("EnumerationNames() = %q", names)
	}
	if _, err := s.Enumeration("Missing"); !errors.Is(err, ErrStructure) {
		t.Errorf("Enumeration(Missing) error = %v", err)
	}

	tables := s.Tables()
	if len(tables) != 4 || tables[0].Name != "DataTypes" || tables[1].Name != "Alpha" || tables[3].Name != "Fields" {
		t.Errorf("Tables() = %+v", tables)
	}
	if tables[1].Rows != 1 {
		t.Errorf("Alpha rows = %d, want 1", tables[1].Rows)
	}
}

func TestLoad_MissingTableProjection(t *testing.T) {
	s := load(t, "")
	_, err := s.DataTypes()
	if !errors.Is(err, ErrStructure) || !errors.Is(err, table.ErrColumnNotFound) {
		t.Errorf("DataTypes() on a document without the table: error = %v", err)
	}
}

func TestLoad_Cancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	doc := document(t, "ADIF.htm", meta("3.1.6", "Released", ""),
		`<table id="Enumeration_Test"><tr><th>Code</th></tr></table>`)
	if _, err := Load(ctx, doc); !errors.Is(err, context.Canceled) {
		t.Errorf("Load() error = %v, want context.Canceled", err)
	}
}

func TestParseEnumerationID(t *testing.T) {
	tests := []struct {
		id      string
		name    string
		variant variant
		entity  int
	}{
		{"Enumeration_Band", "Band", plainEnumeration, 0},
		{"Enumeration_Primary_Administrative_Subdivision_1", PrimarySubdivision, primaryVariant, 1},
		{"Enumeration_Secondary_Administrative_Subdivision_6", SecondarySubdivision, secondaryVariant, 6},
		{"Enumeration_Secondary_Administrative_Subdivision_Alt_170", SecondarySubdivisionAlt, secondaryAltVariant, 170},
	}
	for _, tt := range tests {
		t.Run(tt.id, func(t *testing.T) {
			got, err := parseEnumerationID(tt.id)
			if err != nil {
				t.Fatalf("parseEnumerationID() error = %v", err)
			}
			if got.name != tt.name || got.variant != tt.variant || got.entity != tt.entity {
				t.Errorf("parseEnumerationID() = %+v", got)
			}
		})
	}

	for _, id := range []string{
		"Enumeration_Primary_Administrative_Subdivision",
		"Enumeration_Primary_Administrative_Subdivision_",
		"Enumeration_Secondary_Administrative_Subdivision_Alt_NZ",
		"Enumeration_Primary_Administrative_Subdivision_-1",
	} {
		if _, err := parseEnumerationID(id); !errors.Is(err, ErrStructure) {
			t.Errorf("parseEnumerationID(%q) error = %v, want ErrStructure", id, err)
		}
	}
}

func TestRenameHeader(t *testing.T) {
	tests := []struct {
		enumeration, header, want string
	}{
		{"Mode", "Mode (to be supplied in a future specification)", "Mode"},
		{"Submode", "Description (to be supplied in a future specification)", "Description"},
		{"DXCC_Entity_Code", "Country Code", "Entity Code"},
		{"QSO_Upload_Status", "Via", "Status"},
		{"QSL_Via", "Via", "Via"},
		{"Award_Sponsor", "Sponsor>", "Sponsor"},
		{"Band", "Country Code", "Country Code"},
	}
	for _, tt := range tests {
		if got := renameHeader(tt.enumeration, tt.header); got != tt.want {
			t.Errorf("renameHeader(%q, %q) = %q, want %q", tt.enumeration, tt.header, got, tt.want)
		}
	}
}

func TestIsSubdivision(t *testing.T) {
	if !IsSubdivision(SecondarySubdivisionAlt) || IsSubdivision("Band") {
		t.Error("IsSubdivision() misclassified")
	}
}
