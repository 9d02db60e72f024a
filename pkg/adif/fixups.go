package adif

import "strings"

// headerRename corrects a header cell of one enumeration. When strip is set
// the match text is removed wherever it occurs, otherwise the whole header
// must equal match.
type headerRename struct {
	enumeration string
	match       string
	replace     string
	strip       bool
}

const futureSpecification = " (to be supplied in a future specification)"

// headerRenames collects fixes for header text that changed between
// document revisions. Add entries here rather than in the loaders.
var headerRenames = []headerRename{
	{enumeration: "Mode", match: futureSpecification, strip: true},
	{enumeration: "Submode", match: futureSpecification, strip: true},
	{enumeration: "DXCC_Entity_Code", match: "Country Code", replace: "Entity Code"},
	{enumeration: "QSO_Upload_Status", match: "Via", replace: "Status"},
	// ADIF 3.0.6 shipped a stray '>'.
	{enumeration: "Award_Sponsor", match: "Sponsor>", replace: "Sponsor"},
}

func renameHeader(enumeration, header string) string {
	for _, r := range headerRenames {
		if r.enumeration != enumeration {
			continue
		}
		if r.strip && strings.Contains(header, r.match) {
			return strings.ReplaceAll(header, r.match, "")
		}
		if !r.strip && header == r.match {
			return r.replace
		}
	}
	return header
}

// fieldOverride replaces cells of a field whose enumeration changed and so
// cannot be expressed as a single name. The first item of each list is the
// current one, the rest are import-only.
type fieldOverride struct {
	enumeration string
	dataType    string
}

var fieldOverrides = map[string]fieldOverride{
	"CREDIT_SUBMITTED": {enumeration: "Credit,Award", dataType: "CreditList,AwardList"},
	"CREDIT_GRANTED":   {enumeration: "Credit,Award", dataType: "CreditList,AwardList"},
}
