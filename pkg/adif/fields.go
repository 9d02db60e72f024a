package adif

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/g3zod/adifexport/pkg/normalize"
	"github.com/g3zod/adifexport/pkg/table"
)

// fieldLoader reads the Field_* tables into one Fields table.
type fieldLoader struct {
	table     *table.Table
	htmlNames []string
}

func newFieldLoader() *fieldLoader {
	return &fieldLoader{table: table.New("Fields")}
}

type fieldTable struct {
	headerField bool
	bindings    []cellBinding
	headers     []string
	slots       map[synthetic]int
}

func (l *fieldLoader) load(id string, sel *goquery.Selection) error {
	st := &fieldTable{
		headerField: id == headerFieldsID,
		slots:       make(map[synthetic]int),
	}

	var err error
	sel.Find("tr").EachWithBreak(func(_ int, row *goquery.Selection) bool {
		if st.bindings == nil {
			err = l.readHeader(row, st)
		} else {
			err = l.readData(row, st)
		}
		return err == nil
	})
	if err != nil {
		return fmt.Errorf("table %q: %w", id, err)
	}
	return nil
}

func (l *fieldLoader) readHeader(row *goquery.Selection, st *fieldTable) error {
	headers := headerTexts(row)
	if len(headers) == 0 {
		return fmt.Errorf("%w: no columns found in header row for fields", ErrStructure)
	}

	st.bindings = make([]cellBinding, len(headers))
	for i, h := range headers {
		b := cellBinding{slot: l.table.AddColumn(h)}
		switch h {
		case "Field Name":
			b.role = roleFieldName
		case "Data Type":
			b.role = roleDataType
		case "Enumeration":
			b.role = roleEnumeration
		case "Description":
			b.role = roleBounded
		}
		st.bindings[i] = b
	}
	st.headers = headers
	l.htmlNames = headers

	registerSynthetic(l.table, st.slots,
		colHeaderField, colMinimumValue, colMaximumValue, colImportOnly, colComments)
	return nil
}

func (l *fieldLoader) readData(row *goquery.Selection, st *fieldTable) error {
	cells := dataCells(row, len(st.bindings))
	name := cells[0].text
	override, overridden := fieldOverrides[name]

	r := l.table.NewRow()
	importOnly := false
	var lim bounds

	for i, b := range st.bindings {
		v := cells[i].text
		switch b.role {
		case roleBounded:
			var err error
			if lim, err = readBounds(cells[i].node); err != nil {
				return fmt.Errorf("field %q: %w", name, err)
			}
			if strings.HasPrefix(strings.ToLower(v), "import-only") {
				importOnly = true
			}
		case roleEnumeration:
			if v == "" {
				break
			}
			if overridden {
				v = override.enumeration
				break
			}
			e, err := normalize.EnumerationName(v)
			if err != nil {
				return fmt.Errorf("field %q: column %q: %w", name, st.headers[i], err)
			}
			v = e
		case roleDataType:
			if overridden {
				v = override.dataType
			}
		}
		r.Set(b.slot, v)
	}

	r.Set(st.slots[colHeaderField], boolMarker(st.headerField, "Y"))
	r.Set(st.slots[colMinimumValue], lim.min)
	r.Set(st.slots[colMaximumValue], lim.max)
	r.Set(st.slots[colImportOnly], boolMarker(importOnly, normalize.ImportOnlyMarker))
	r.Set(st.slots[colComments], "")

	return l.table.Append(r)
}

func (l *fieldLoader) columnOrder() []string {
	order := append([]string(nil), l.htmlNames...)
	return append(order, ColumnHeaderField, ColumnMinimumValue, ColumnMaximumValue, ColumnImportOnly, ColumnComments)
}
