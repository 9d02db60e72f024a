package adif

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/g3zod/adifexport/internal/logger"
	"github.com/g3zod/adifexport/pkg/normalize"
	"github.com/g3zod/adifexport/pkg/table"
)

// enumerationLoader reads every table of one enumeration. Subdivision
// enumerations arrive as one table per DXCC entity and share the loader.
type enumerationLoader struct {
	name    string
	variant variant
	table   *table.Table

	// htmlNames are the header titles of the last table read.
	htmlNames []string
}

func newEnumerationLoader(name string) *enumerationLoader {
	return &enumerationLoader{
		name:    name,
		variant: variantOf(name),
		table:   table.New(name),
	}
}

// enumerationTable is the state of one table element while it is read.
type enumerationTable struct {
	entity          string
	bindings        []cellBinding
	headers         []string
	slots           map[synthetic]int
	containedWithin string
}

func (l *enumerationLoader) load(sel *goquery.Selection, entity int) error {
	st := &enumerationTable{slots: make(map[synthetic]int)}
	if l.variant.isSubdivision() {
		st.entity = strconv.Itoa(entity)
	}

	var err error
	sel.Find("tr").EachWithBreak(func(_ int, row *goquery.Selection) bool {
		err = l.readRow(row, st)
		return err == nil
	})
	return err
}

func (l *enumerationLoader) readRow(row *goquery.Selection, st *enumerationTable) error {
	span, err := spanningRow(row)
	if err != nil {
		return fmt.Errorf("enumeration %q: %w", l.name, err)
	}
	switch {
	case span && st.bindings != nil:
		st.containedWithin = normalize.Whitespace(row.Text())
		return nil
	case span:
		// Title row naming the entity, cross-checked against the table id.
		if st.entity != "" {
			title := normalize.Whitespace(row.Text())
			if !strings.Contains(" "+title+" ", " "+st.entity+" ") {
				return fmt.Errorf("%w: enumeration %q: DXCC entity code mismatch between the table id (%q) and the table header row (%q)",
					ErrStructure, l.name, st.entity, title)
			}
		}
		return nil
	case st.bindings == nil:
		return l.readHeader(row, st)
	default:
		return l.readData(row, st)
	}
}

// spanningRow reports whether row has a th with a positive colspan.
func spanningRow(row *goquery.Selection) (bool, error) {
	th := row.ChildrenFiltered("th[colspan]").First()
	if th.Length() == 0 {
		return false, nil
	}
	raw := th.AttrOr("colspan", "")
	n, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return false, fmt.Errorf("%w: invalid colspan %q", ErrStructure, raw)
	}
	return n > 0, nil
}

func (l *enumerationLoader) readHeader(row *goquery.Selection, st *enumerationTable) error {
	headers := headerTexts(row)
	if len(headers) == 0 {
		return fmt.Errorf("%w: no columns found in header row for enumeration %q", ErrStructure, l.name)
	}

	st.bindings = make([]cellBinding, len(headers))
	for i, h := range headers {
		h = renameHeader(l.name, h)
		headers[i] = h
		st.bindings[i] = l.bind(i, h, l.table.AddColumn(h))
	}
	st.headers = headers
	l.htmlNames = headers

	registerSynthetic(l.table, st.slots, colImportOnly, colComments, colEnumerationName)
	switch l.variant {
	case primaryVariant:
		registerSynthetic(l.table, st.slots,
			colDXCCEntityCode, colContainedWithin, colOblastNumber, colCQZone, colITUZone, colPrefix, colDeleted)
	case secondaryVariant:
		registerSynthetic(l.table, st.slots, colDXCCEntityCode, colAlaskaJudicialDistrict, colDeleted)
	case secondaryAltVariant:
		registerSynthetic(l.table, st.slots, colDXCCEntityCode, colRegion, colDistrict, colDeleted)
	}

	logger.Debug("header registered", "enumeration", l.name, "entity", st.entity, "columns", len(headers))
	return nil
}

// bind resolves the rule for the header at position i.
func (l *enumerationLoader) bind(i int, header string, slot int) cellBinding {
	b := cellBinding{slot: slot, annotated: i == 0}

	switch {
	case l.variant == primaryVariant && header == "Primary Administrative Subdivision":
		b.annotated, b.dashForm = true, true
		return b
	case l.variant == secondaryVariant && header == "Secondary Administrative Subdivision":
		b.annotated = true
		return b
	case l.name == "ARRL_Section" && header == "Section Name":
		b.annotated = true
		return b
	case l.name == "ARRL_Section" && header == ColumnDXCCEntityCode:
		b.role = roleNoSpaces
		return b
	case l.name == "QSL_Via" && header == "Description":
		b.annotated = true
		return b
	}

	switch header {
	case "Lower Freq (MHz)", "Upper Freq (MHz)":
		b.role = roleFrequency
	case "Contest-ID":
		b.role = roleContestID
	case "Submodes":
		b.role = roleSubmodes
	case "Credit For":
		b.role = roleNoSpaces
	case ColumnDeleted:
		b.role = roleDeleted
	case "Description":
		b.role = roleDescription
	}
	return b
}

func (l *enumerationLoader) readData(row *goquery.Selection, st *enumerationTable) error {
	cells := dataCells(row, len(st.bindings))
	r := l.table.NewRow()
	var notes normalize.Annotated

	for i, b := range st.bindings {
		v := cells[i].text
		if normalize.ContainsImportOnly(v) {
			notes.ImportOnly = true
		}
		v, err := l.apply(b, v, &notes)
		if err != nil {
			return fmt.Errorf("enumeration %q: column %q: %w", l.name, st.headers[i], err)
		}
		r.Set(b.slot, v)
	}

	r.Set(st.slots[colEnumerationName], l.name)
	r.Set(st.slots[colImportOnly], boolMarker(notes.ImportOnly, normalize.ImportOnlyMarker))
	r.Set(st.slots[colComments], notes.CommentText())

	switch l.variant {
	case primaryVariant:
		r.Set(st.slots[colDXCCEntityCode], st.entity)
		r.Set(st.slots[colContainedWithin], st.containedWithin)
		r.Set(st.slots[colDeleted], boolMarker(notes.Deleted, normalize.DeletedMarker))
		for _, c := range []synthetic{colOblastNumber, colCQZone, colITUZone, colPrefix} {
			r.SetDefault(st.slots[c], "")
		}
	case secondaryVariant:
		r.Set(st.slots[colDXCCEntityCode], st.entity)
		r.SetDefault(st.slots[colAlaskaJudicialDistrict], "")
		r.SetDefault(st.slots[colDeleted], "")
	case secondaryAltVariant:
		r.Set(st.slots[colDXCCEntityCode], st.entity)
		r.SetDefault(st.slots[colRegion], "")
		r.SetDefault(st.slots[colDistrict], "")
		r.SetDefault(st.slots[colDeleted], "")
	}

	if err := l.table.Append(r); err != nil {
		return fmt.Errorf("null value in enumeration %q: %w", l.name, err)
	}
	return nil
}

// apply runs the rules bound to one cell. Annotations found on the way are
// collected into notes.
func (l *enumerationLoader) apply(b cellBinding, v string, notes *normalize.Annotated) (string, error) {
	if b.annotated {
		a, err := normalize.ExtractComments(v, normalize.CommentOptions{DashForm: b.dashForm})
		if err != nil {
			return "", err
		}
		v = a.Value
		for _, c := range a.Comments {
			notes.AddComment(c)
		}
		notes.ImportOnly = notes.ImportOnly || a.ImportOnly
		notes.Deleted = notes.Deleted || a.Deleted
	}

	switch b.role {
	case roleFrequency:
		v = normalize.Frequency(v)
	case roleContestID:
		v = normalize.ContestID(v)
	case roleSubmodes:
		v = normalize.Submodes(v)
	case roleNoSpaces:
		v = normalize.RemoveSpaces(v)
	case roleDescription:
		if value, comment, found := normalize.StripImportOnly(v); found {
			v = value
			notes.AddComment(comment)
		}
	case roleDeleted:
		d, err := normalize.Deleted(v)
		if err != nil {
			return "", err
		}
		v = d
		notes.Deleted = notes.Deleted || d != ""
	}
	return v, nil
}

// columnOrder is the export column order. Subdivision enumerations use a
// fixed order because their tables differ from entity to entity.
func (l *enumerationLoader) columnOrder() []string {
	var titles []string
	switch l.variant {
	case primaryVariant:
		titles = []string{
			"Code", "Primary Administrative Subdivision", ColumnDXCCEntityCode, ColumnContainedWithin,
			ColumnOblastNumber, ColumnCQZone, ColumnITUZone, ColumnPrefix, ColumnDeleted,
		}
	case secondaryAltVariant:
		titles = []string{"Code", ColumnDXCCEntityCode, ColumnRegion, ColumnDistrict, ColumnDeleted}
	case secondaryVariant:
		titles = []string{
			"Code", "Secondary Administrative Subdivision", ColumnDXCCEntityCode,
			ColumnAlaskaJudicialDistrict, ColumnDeleted,
		}
	default:
		titles = l.htmlNames
	}

	order := make([]string, 0, len(titles)+3)
	order = append(order, ColumnEnumerationName)
	order = append(order, titles...)
	return append(order, ColumnImportOnly, ColumnComments)
}
