package adif

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/g3zod/adifexport/pkg/normalize"
	"github.com/g3zod/adifexport/pkg/table"
)

var dataTypeImportOnly = regexp.MustCompile(`(?i) import-only`)

type dataTypeLoader struct {
	table     *table.Table
	htmlNames []string
	bindings  []cellBinding
	slots     map[synthetic]int
}

func newDataTypeLoader() *dataTypeLoader {
	return &dataTypeLoader{
		table: table.New("DataTypes"),
		slots: make(map[synthetic]int),
	}
}

func (l *dataTypeLoader) load(sel *goquery.Selection) error {
	l.bindings = nil

	var err error
	sel.ChildrenFiltered("tbody").ChildrenFiltered("tr").EachWithBreak(func(_ int, row *goquery.Selection) bool {
		if l.bindings == nil {
			err = l.readHeader(row)
		} else {
			err = l.readData(row)
		}
		return err == nil
	})
	return err
}

func (l *dataTypeLoader) readHeader(row *goquery.Selection) error {
	headers := headerTexts(row)
	if len(headers) == 0 {
		return fmt.Errorf("%w: no columns found in header row for data types", ErrStructure)
	}

	l.bindings = make([]cellBinding, len(headers))
	for i, h := range headers {
		if posn := strings.Index(h, " ("); posn >= 0 {
			h = h[:posn]
		}
		headers[i] = h
		b := cellBinding{slot: l.table.AddColumn(h)}
		switch h {
		case "Data Type Name":
			b.role = roleDataTypeName
		case "Description":
			b.role = roleBounded
		}
		l.bindings[i] = b
	}
	l.htmlNames = headers

	registerSynthetic(l.table, l.slots, colMinimumValue, colMaximumValue, colImportOnly, colComments)
	return nil
}

func (l *dataTypeLoader) readData(row *goquery.Selection) error {
	cells := dataCells(row, len(l.bindings))
	r := l.table.NewRow()
	importOnly := false
	var lim bounds

	for i, b := range l.bindings {
		v := cells[i].text
		switch b.role {
		case roleDataTypeName:
			if dataTypeImportOnly.MatchString(v) {
				importOnly = true
				v = dataTypeImportOnly.ReplaceAllString(v, "")
			}
		case roleBounded:
			var err error
			if lim, err = readBounds(cells[i].node); err != nil {
				return fmt.Errorf("data type %q: %w", cells[0].text, err)
			}
		}
		r.Set(b.slot, v)
	}

	r.Set(l.slots[colMinimumValue], lim.min)
	r.Set(l.slots[colMaximumValue], lim.max)
	r.Set(l.slots[colImportOnly], boolMarker(importOnly, normalize.ImportOnlyMarker))
	r.Set(l.slots[colComments], "")

	return l.table.Append(r)
}

func (l *dataTypeLoader) columnOrder() []string {
	order := append([]string(nil), l.htmlNames...)
	return append(order, ColumnMinimumValue, ColumnMaximumValue, ColumnImportOnly, ColumnComments)
}
