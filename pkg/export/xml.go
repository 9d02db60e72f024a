package export

import (
	"encoding/xml"
	"fmt"
	"time"

	"github.com/g3zod/adifexport/pkg/adif"
	"github.com/g3zod/adifexport/pkg/model"
	"github.com/g3zod/adifexport/pkg/table"
)

type xmlDocument struct {
	XMLName      xml.Name         `xml:"adif"`
	Version      string           `xml:"version,attr"`
	Status       string           `xml:"status,attr"`
	Date         string           `xml:"date,attr,omitempty"`
	Created      string           `xml:"created,attr"`
	DataTypes    *xmlTable        `xml:"dataTypes,omitempty"`
	Enumerations *xmlEnumerations `xml:"enumerations,omitempty"`
	Fields       *xmlTable        `xml:"fields,omitempty"`
}

type xmlEnumerations struct {
	Items []*xmlTable `xml:"enumeration"`
}

type xmlTable struct {
	Name    string      `xml:"name,attr,omitempty"`
	Header  xmlHeader   `xml:"header"`
	Records []xmlRecord `xml:"record"`
}

type xmlHeader struct {
	Values []string `xml:"value"`
}

type xmlRecord struct {
	Values []xmlValue `xml:"value"`
}

type xmlValue struct {
	Name  string `xml:"name,attr"`
	Value string `xml:",chardata"`
}

func newXMLDocument(m adif.Metadata, created time.Time) *xmlDocument {
	d := &xmlDocument{
		Version: m.Version,
		Status:  m.Status,
		Created: created.UTC().Format(model.DateTimeLayout),
	}
	if m.HasDate() {
		d.Date = m.Date.UTC().Format(model.DateTimeLayout)
	}
	return d
}

// newXMLTable converts a projection. Empty values are left out, flags are
// written as "true" and date columns as XML Schema dates.
func newXMLTable(name string, p table.Projection) (*xmlTable, error) {
	t := &xmlTable{
		Name:    name,
		Header:  xmlHeader{Values: append([]string(nil), p.Header...)},
		Records: make([]xmlRecord, 0, len(p.Rows)),
	}
	for n, row := range p.Rows {
		var rec xmlRecord
		for i, v := range row {
			if v == "" {
				continue
			}
			out, err := xmlText(p.Header[i], v)
			if err != nil {
				return nil, fmt.Errorf("record %d: %w", n, err)
			}
			rec.Values = append(rec.Values, xmlValue{Name: p.Header[i], Value: out})
		}
		t.Records = append(t.Records, rec)
	}
	return t, nil
}

func xmlText(column, value string) (string, error) {
	switch {
	case model.IsFlagColumn(column):
		return model.TrueValue, nil
	case model.IsDateColumn(column):
		d, err := model.ParseDate(value)
		if err != nil {
			return "", fmt.Errorf("column %q: %w", column, err)
		}
		return d.Format(model.XMLDateLayout), nil
	}
	return value, nil
}
