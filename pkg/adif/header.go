package adif

import (
	"github.com/PuerkitoBio/goquery"
	"golang.org/x/net/html"

	"github.com/g3zod/adifexport/pkg/normalize"
	"github.com/g3zod/adifexport/pkg/table"
)

// role says which rule applies to the cells of a column.
type role int

const (
	rolePlain role = iota
	roleFrequency
	roleContestID
	roleSubmodes
	roleNoSpaces
	roleDeleted
	// roleDescription loses an import-only marker.
	roleDescription
	// roleBounded is a description carrying Minimum/Maximum spans.
	roleBounded
	roleDataTypeName
	roleFieldName
	roleDataType
	roleEnumeration
)

// cellBinding ties an HTML cell position to its slot and rule.
type cellBinding struct {
	slot int
	role role
	// annotated cells go through comment extraction before their rule.
	annotated bool
	dashForm  bool
}

// synthetic columns are registered by loaders rather than read from HTML.
type synthetic int

const (
	colImportOnly synthetic = iota
	colComments
	colEnumerationName
	colMinimumValue
	colMaximumValue
	colHeaderField
	colDXCCEntityCode
	colContainedWithin
	colOblastNumber
	colCQZone
	colITUZone
	colPrefix
	colDeleted
	colAlaskaJudicialDistrict
	colRegion
	colDistrict
)

// Column titles of the synthetic columns.
const (
	ColumnImportOnly             = "Import-only"
	ColumnComments               = "Comments"
	ColumnEnumerationName        = "Enumeration Name"
	ColumnMinimumValue           = "Minimum Value"
	ColumnMaximumValue           = "Maximum Value"
	ColumnHeaderField            = "Header Field"
	ColumnDXCCEntityCode         = "DXCC Entity Code"
	ColumnContainedWithin        = "Contained Within"
	ColumnOblastNumber           = "Oblast #"
	ColumnCQZone                 = "CQ Zone"
	ColumnITUZone                = "ITU Zone"
	ColumnPrefix                 = "Prefix"
	ColumnDeleted                = "Deleted"
	ColumnAlaskaJudicialDistrict = "Alaska Judicial District"
	ColumnRegion                 = "Region"
	ColumnDistrict               = "District"
)

var syntheticTitles = map[synthetic]string{
	colImportOnly:             ColumnImportOnly,
	colComments:               ColumnComments,
	colEnumerationName:        ColumnEnumerationName,
	colMinimumValue:           ColumnMinimumValue,
	colMaximumValue:           ColumnMaximumValue,
	colHeaderField:            ColumnHeaderField,
	colDXCCEntityCode:         ColumnDXCCEntityCode,
	colContainedWithin:        ColumnContainedWithin,
	colOblastNumber:           ColumnOblastNumber,
	colCQZone:                 ColumnCQZone,
	colITUZone:                ColumnITUZone,
	colPrefix:                 ColumnPrefix,
	colDeleted:                ColumnDeleted,
	colAlaskaJudicialDistrict: ColumnAlaskaJudicialDistrict,
	colRegion:                 ColumnRegion,
	colDistrict:               ColumnDistrict,
}

// registerSynthetic adds the given synthetic columns to t.
func registerSynthetic(t *table.Table, slots map[synthetic]int, cols ...synthetic) {
	for _, c := range cols {
		slots[c] = t.AddColumn(syntheticTitles[c])
	}
}

// headerTexts returns the normalized text of a header row's th and td
// children.
func headerTexts(row *goquery.Selection) []string {
	cells := row.ChildrenFiltered("th, td")
	out := make([]string, 0, cells.Length())
	cells.Each(func(_ int, c *goquery.Selection) {
		out = append(out, normalize.Whitespace(c.Text()))
	})
	return out
}

// dataCell is the text of one data cell plus its node for XPath queries.
type dataCell struct {
	text string
	node *html.Node
}

// dataCells returns width cells from row's td descendants. Missing trailing
// cells are empty.
func dataCells(row *goquery.Selection, width int) []dataCell {
	tds := row.Find("td")
	out := make([]dataCell, width)
	for i := 0; i < width && i < tds.Length(); i++ {
		td := tds.Eq(i)
		out[i] = dataCell{
			text: normalize.Whitespace(td.Text()),
			node: td.Get(0),
		}
	}
	return out
}

func boolMarker(ok bool, marker string) string {
	if ok {
		return marker
	}
	return ""
}
