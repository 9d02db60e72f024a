// Package adif reads the data types, enumerations and fields tables of an
// ADIF Specification document into normalized logical tables.
//
// Load routes every table by its id:
//
//	Enumeration_{name}[_{dxcc}]  one enumeration, or one entity's share of a subdivision enumeration
//	Field_{group}                fields, all groups in one table
//	_Data_Types                  data types
//
// and applies the cleanup rules each table kind needs. The returned
// Specification is read-only and projects each table into export order.
package adif

import (
	"context"
	"fmt"
	"maps"
	"slices"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/g3zod/adifexport/internal/logger"
	"github.com/g3zod/adifexport/pkg/source"
	"github.com/g3zod/adifexport/pkg/table"
)

// Specification is a loaded ADIF Specification.
type Specification struct {
	Metadata

	// SourceName is the name of the document the specification came from.
	SourceName string

	// Deletions is the number of deletion elements stripped before reading.
	Deletions int

	dataTypes    *dataTypeLoader
	fields       *fieldLoader
	enumerations map[string]*enumerationLoader
}

// Load reads doc. It fails before touching any table when the version or
// status is not supported.
func Load(ctx context.Context, doc *source.Document, opts ...Option) (*Specification, error) {
	o := &loadOptions{sourceName: doc.Name}
	for _, opt := range opts {
		opt(o)
	}

	o.report(fmt.Sprintf("Reading specification %s ...", o.sourceName))

	md, err := readMetadata(doc.Document)
	if err != nil {
		return nil, err
	}
	if !md.HasDate() {
		logger.Warn("specification has no date", "source", o.sourceName, "meta", metaDate)
		o.report(fmt.Sprintf("Warning: no meta tag found with the name %q", metaDate))
	}
	o.report(fmt.Sprintf("Specification Version is %s, Status is %s", md.Version, md.Status))

	deletions, err := stripDeletions(doc.Document, o.sourceName, o.confirm)
	if err != nil {
		return nil, err
	}

	s := &Specification{
		Metadata:     md,
		SourceName:   o.sourceName,
		Deletions:    deletions,
		dataTypes:    newDataTypeLoader(),
		fields:       newFieldLoader(),
		enumerations: make(map[string]*enumerationLoader),
	}

	var loadErr error
	doc.Find("table[id]").EachWithBreak(func(_ int, t *goquery.Selection) bool {
		if loadErr = ctx.Err(); loadErr != nil {
			return false
		}
		loadErr = s.route(t.AttrOr("id", ""), t)
		return loadErr == nil
	})
	if loadErr != nil {
		return nil, loadErr
	}

	logger.Debug("specification loaded",
		"source", o.sourceName,
		"version", md.Version,
		"status", md.Status,
		"enumerations", len(s.enumerations),
		"fields", s.fields.table.Len(),
		"data_types", s.dataTypes.table.Len())
	return s, nil
}

func (s *Specification) route(id string, t *goquery.Selection) error {
	switch {
	case strings.HasPrefix(id, enumerationPrefix):
		eid, err := parseEnumerationID(id)
		if err != nil {
			return err
		}
		l, ok := s.enumerations[eid.name]
		if !ok {
			l = newEnumerationLoader(eid.name)
			s.enumerations[eid.name] = l
		}
		logger.Debug("table routed", "id", id, "loader", "enumeration", "enumeration", eid.name)
		return l.load(t, eid.entity)
	case strings.HasPrefix(id, fieldPrefix):
		logger.Debug("table routed", "id", id, "loader", "fields")
		return s.fields.load(id, t)
	case id == dataTypesID:
		logger.Debug("table routed", "id", id, "loader", "data types")
		return s.dataTypes.load(t)
	default:
		return nil
	}
}

// EnumerationNames returns the enumeration names in lexicographic order.
func (s *Specification) EnumerationNames() []string {
	return slices.Sorted(maps.Keys(s.enumerations))
}

// DataTypes projects the data types table into export order.
func (s *Specification) DataTypes() (table.Projection, error) {
	return project(s.dataTypes.table, s.dataTypes.columnOrder())
}

// Fields projects the fields table into export order.
func (s *Specification) Fields() (table.Projection, error) {
	return project(s.fields.table, s.fields.columnOrder())
}

// Enumeration projects the named enumeration into export order.
func (s *Specification) Enumeration(name string) (table.Projection, error) {
	l, ok := s.enumerations[name]
	if !ok {
		return table.Projection{}, fmt.Errorf("%w: no enumeration named %q", ErrStructure, name)
	}
	return project(l.table, l.columnOrder())
}

func project(t *table.Table, order []string) (table.Projection, error) {
	p, err := t.Project(order)
	if err != nil {
		return table.Projection{}, fmt.Errorf("%w: %w", ErrStructure, err)
	}
	return p, nil
}

// IsSubdivision reports whether the named enumeration is split by DXCC
// entity, so its codes are only unique within an entity.
func IsSubdivision(name string) bool {
	return variantOf(name).isSubdivision()
}

// TableInfo summarizes one loaded table.
type TableInfo struct {
	Name    string `json:"name" yaml:"name"`
	Kind    string `json:"kind" yaml:"kind"`
	Columns int    `json:"columns" yaml:"columns"`
	Rows    int    `json:"rows" yaml:"rows"`
}

// Tables summarizes every loaded table: data types, then enumerations in
// name order, then fields.
func (s *Specification) Tables() []TableInfo {
	out := make([]TableInfo, 0, len(s.enumerations)+2)
	out = append(out, info("DataTypes", "data types", s.dataTypes.table))
	for _, name := range s.EnumerationNames() {
		out = append(out, info(name, "enumeration", s.enumerations[name].table))
	}
	return append(out, info("Fields", "fields", s.fields.table))
}

func info(name, kind string, t *table.Table) TableInfo {
	return TableInfo{Name: name, Kind: kind, Columns: t.Width(), Rows: t.Len()}
}
