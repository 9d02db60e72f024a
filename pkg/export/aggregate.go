package export

import (
	"fmt"
	"os"

	"github.com/g3zod/adifexport/internal/output"
	"github.com/g3zod/adifexport/pkg/model"
	"github.com/g3zod/adifexport/pkg/table"
)

// aggregate collects the combined enumerations outputs while enumerations
// are exported one at a time. Multi-header tabular files stay open and take
// one header record per enumeration.
type aggregate struct {
	tables []*openTable
	model  *model.OrderedMap[*model.Table]
	xml    *xmlEnumerations
}

type openTable struct {
	path string
	file *os.File
	w    output.TableWriter
}

func (r *run) openAggregate() (*aggregate, error) {
	a := &aggregate{
		model: model.NewOrderedMap[*model.Table](),
		xml:   &xmlEnumerations{},
	}
	for _, f := range r.formats {
		if !f.MultiHeader() {
			continue
		}
		path := r.path(f, baseEnumerations)
		file, err := os.Create(path)
		if err != nil {
			a.abort()
			return nil, err
		}
		tw, err := output.NewTableWriter(file, f, r.tableOptions("Enumerations")...)
		if err != nil {
			_ = file.Close()
			a.abort()
			return nil, err
		}
		a.tables = append(a.tables, &openTable{path: path, file: file, w: tw})
	}
	return a, nil
}

func (a *aggregate) add(r *run, name string, p table.Projection, s section) error {
	for _, t := range a.tables {
		if err := r.writeProjection(t.w, p); err != nil {
			return fmt.Errorf("%s: %w", t.path, err)
		}
	}
	if err := a.model.Set(name, s.model); err != nil {
		return fmt.Errorf("enumerations: %w", err)
	}
	a.xml.Items = append(a.xml.Items, s.xml)
	return nil
}

// closeAggregate finishes the combined tabular files and writes the
// combined structured files.
func (r *run) closeAggregate(a *aggregate) error {
	tables := a.tables
	a.tables = nil
	for i, t := range tables {
		err := t.w.Close()
		if cerr := t.file.Close(); err == nil {
			err = cerr
		}
		if err != nil {
			for _, rest := range tables[i+1:] {
				_ = rest.file.Close()
			}
			return fmt.Errorf("%s: %w", t.path, err)
		}
		if err := r.record(t.path); err != nil {
			return err
		}
	}

	d := r.newDocuments()
	d.model.Adif.Enumerations = a.model
	d.xml.Enumerations = a.xml
	return r.writeDocuments(baseEnumerations, d)
}

func (a *aggregate) abort() {
	for _, t := range a.tables {
		_ = t.file.Close()
	}
	a.tables = nil
}
