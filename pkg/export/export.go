// Package export writes a loaded specification as export files.
//
// Each format gets its own directory under the exports root, holding
// datatypes, enumerations, one enumerations_{name} file per enumeration,
// and fields. Formats that can hold several header records also get a
// combined enumerations file. The xml, json and yaml directories also hold
// an all file merging every table; all.json and all.xml are read back and
// checked once they are written.
package export

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"slices"
	"strings"
	"time"

	"github.com/g3zod/adifexport/internal/logger"
	"github.com/g3zod/adifexport/internal/output"
	"github.com/g3zod/adifexport/pkg/adif"
	"github.com/g3zod/adifexport/pkg/model"
	"github.com/g3zod/adifexport/pkg/table"
)

const (
	// Author is stored in spreadsheet files.
	Author = "ADIF Development Group"

	// ColumnVersion and ColumnStatus are appended to every tabular record.
	ColumnVersion = "ADIF Version"
	ColumnStatus  = "ADIF Status"

	// DefaultRoot is the exports directory used when none is given.
	DefaultRoot = "exports"
)

const (
	kindDataTypes = "DataTypes"
	kindFields    = "Fields"

	baseDataTypes    = "datatypes"
	baseEnumerations = "enumerations"
	baseFields       = "fields"
	baseAll          = "all"
)

// Summary describes the files written by one export.
type Summary struct {
	Root   string   `json:"root" yaml:"root"`
	Files  int      `json:"files" yaml:"files"`
	Bytes  int64    `json:"bytes" yaml:"bytes"`
	Tables int      `json:"tables" yaml:"tables"`
	Rows   int      `json:"rows" yaml:"rows"`
	Paths  []string `json:"paths" yaml:"paths"`
}

// Option configures an Exporter.
type Option func(*Exporter)

// WithRoot sets the exports directory. It is deleted and recreated by
// every export.
func WithRoot(dir string) Option {
	return func(e *Exporter) {
		e.root = dir
	}
}

// WithFormats limits the formats written.
func WithFormats(formats ...output.Format) Option {
	return func(e *Exporter) {
		e.formats = formats
	}
}

// WithProgress sets a callback for user-facing progress messages.
func WithProgress(fn func(string)) Option {
	return func(e *Exporter) {
		e.progress = fn
	}
}

// WithClock sets the clock used for creation times.
func WithClock(now func() time.Time) Option {
	return func(e *Exporter) {
		e.now = now
	}
}

// WithProbes replaces the default read-back checks.
func WithProbes(probes ...Probe) Option {
	return func(e *Exporter) {
		e.probes = probes
	}
}

// WithSkipVerify turns off reading back all.json and all.xml.
func WithSkipVerify(skip bool) Option {
	return func(e *Exporter) {
		e.skipVerify = skip
	}
}

// Exporter writes the export files of one specification. It can be run
// more than once; it never changes the specification.
type Exporter struct {
	spec       *adif.Specification
	root       string
	formats    []output.Format
	progress   func(string)
	now        func() time.Time
	probes     []Probe
	skipVerify bool
}

// New creates an Exporter writing every format under DefaultRoot.
func New(spec *adif.Specification, opts ...Option) *Exporter {
	e := &Exporter{
		spec:    spec,
		root:    DefaultRoot,
		formats: output.Formats,
		now:     time.Now,
	}
	for _, opt := range opts {
		opt(e)
	}
	if e.probes == nil {
		e.probes = DefaultProbes(spec.Version, spec.Status)
	}
	return e
}

// Export resets the exports directory and writes every table. Cancellation
// is checked between tables.
func (e *Exporter) Export(ctx context.Context) (*Summary, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := resetTree(e.root, e.formats); err != nil {
		return nil, err
	}

	r := &run{
		Exporter: e,
		created:  e.now().UTC().Truncate(time.Second),
		summary:  &Summary{Root: e.root},
	}
	logger.Debug("export started", "root", e.root, "formats", e.formats)

	all := r.newDocuments()

	if err := r.step(ctx, "Exporting data types ..."); err != nil {
		return nil, err
	}
	p, err := e.spec.DataTypes()
	if err != nil {
		return nil, err
	}
	dataTypes, err := r.exportSection(kindDataTypes, baseDataTypes, "Data Types", p)
	if err != nil {
		return nil, err
	}
	all.model.Adif.DataTypes = dataTypes.model
	all.xml.DataTypes = dataTypes.xml

	agg, err := r.openAggregate()
	if err != nil {
		return nil, err
	}
	for _, name := range e.spec.EnumerationNames() {
		if err := r.step(ctx, fmt.Sprintf("Exporting enumeration %s ...", name)); err != nil {
			agg.abort()
			return nil, err
		}
		if err := r.exportEnumeration(agg, name); err != nil {
			agg.abort()
			return nil, err
		}
	}
	if err := r.closeAggregate(agg); err != nil {
		return nil, err
	}
	all.model.Adif.Enumerations = agg.model
	all.xml.Enumerations = agg.xml

	if err := r.step(ctx, "Exporting fields ..."); err != nil {
		return nil, err
	}
	if p, err = e.spec.Fields(); err != nil {
		return nil, err
	}
	fields, err := r.exportSection(kindFields, baseFields, "Fields", p)
	if err != nil {
		return nil, err
	}
	all.model.Adif.Fields = fields.model
	all.xml.Fields = fields.xml

	if err := r.step(ctx, "Writing merged files ..."); err != nil {
		return nil, err
	}
	if err := r.writeDocuments(baseAll, all); err != nil {
		return nil, err
	}

	if !e.skipVerify {
		if err := r.step(ctx, "Verifying exports ..."); err != nil {
			return nil, err
		}
		if err := r.verify(); err != nil {
			return nil, err
		}
	}

	logger.Debug("export finished", "files", r.summary.Files, "bytes", r.summary.Bytes)
	return r.summary, nil
}

// run is the state of one Export call.
type run struct {
	*Exporter
	created time.Time
	summary *Summary
	counts  []tableCount
}

func (r *run) step(ctx context.Context, msg string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if r.progress != nil {
		r.progress(msg)
	}
	return nil
}

// documents are the structured forms of one export file.
type documents struct {
	model *model.Export
	xml   *xmlDocument
}

func (r *run) newDocuments() documents {
	m := r.spec.Metadata
	return documents{
		model: model.NewExport(m.Version, m.Status, m.Date),
		xml:   newXMLDocument(m, r.created),
	}
}

// section is one table converted for the structured formats.
type section struct {
	model *model.Table
	xml   *xmlTable
}

func convert(name, xmlName string, p table.Projection, key model.KeyFunc) (section, error) {
	mt, err := model.NewTable(p, key)
	if err != nil {
		return section{}, fmt.Errorf("%s: %w", name, err)
	}
	xt, err := newXMLTable(xmlName, p)
	if err != nil {
		return section{}, fmt.Errorf("%s: %w", name, err)
	}
	return section{model: mt, xml: xt}, nil
}

// exportSection writes the data types or fields files.
func (r *run) exportSection(kind, base, content string, p table.Projection) (section, error) {
	s, err := convert(kind, "", p, model.ColumnKey(0))
	if err != nil {
		return section{}, err
	}
	if err := r.writeTables(base, content, p); err != nil {
		return section{}, err
	}

	d := r.newDocuments()
	if kind == kindDataTypes {
		d.model.Adif.DataTypes = s.model
		d.xml.DataTypes = s.xml
	} else {
		d.model.Adif.Fields = s.model
		d.xml.Fields = s.xml
	}
	if err := r.writeDocuments(base, d); err != nil {
		return section{}, err
	}
	r.count(kind, false, len(p.Rows))
	return s, nil
}

// exportEnumeration writes one enumeration's files and adds it to the
// combined enumerations outputs.
func (r *run) exportEnumeration(agg *aggregate, name string) error {
	p, err := r.spec.Enumeration(name)
	if err != nil {
		return err
	}
	key := model.ColumnKey(1)
	if adif.IsSubdivision(name) {
		key = model.SubdivisionKey
	}
	s, err := convert(name, name, p, key)
	if err != nil {
		return err
	}

	base := baseEnumerations + "_" + strings.ToLower(name)
	if err := r.writeTables(base, name+" Enumeration", p); err != nil {
		return err
	}

	one := model.NewOrderedMap[*model.Table]()
	if err := one.Set(name, s.model); err != nil {
		return err
	}
	d := r.newDocuments()
	d.model.Adif.Enumerations = one
	d.xml.Enumerations = &xmlEnumerations{Items: []*xmlTable{s.xml}}
	if err := r.writeDocuments(base, d); err != nil {
		return err
	}

	if err := agg.add(r, name, p, s); err != nil {
		return err
	}
	r.count(name, true, len(p.Rows))
	return nil
}

func (r *run) count(name string, enumeration bool, rows int) {
	r.counts = append(r.counts, tableCount{name: name, enumeration: enumeration, records: rows})
	r.summary.Tables++
	r.summary.Rows += rows
}

func (r *run) tableOptions(content string) []output.TableOption {
	m := r.spec.Metadata
	return []output.TableOption{
		output.WithSheet(content),
		output.WithTitle(fmt.Sprintf("%s exported from %s ADIF Specification %s", content, m.Status, m.Version)),
		output.WithAuthor(Author),
		output.WithCreated(r.created),
		output.WithRelease(m.Version, m.Status),
	}
}

// writeTables writes p in every tabular format.
func (r *run) writeTables(base, content string, p table.Projection) error {
	for _, f := range r.formats {
		if !f.Tabular() {
			continue
		}
		err := r.create(f, base, func(w io.Writer) error {
			tw, err := output.NewTableWriter(w, f, r.tableOptions(content)...)
			if err != nil {
				return err
			}
			if err := r.writeProjection(tw, p); err != nil {
				_ = tw.Close()
				return err
			}
			return tw.Close()
		})
		if err != nil {
			return err
		}
	}
	return nil
}

// writeProjection writes a header record and the value records, each with
// the version and status appended.
func (r *run) writeProjection(w output.TableWriter, p table.Projection) error {
	m := r.spec.Metadata
	if err := w.WriteHeader(append(slices.Clone(p.Header), ColumnVersion, ColumnStatus)); err != nil {
		return err
	}
	for _, row := range p.Rows {
		if err := w.WriteRecord(append(slices.Clone(row), m.Version, m.Status)); err != nil {
			return err
		}
	}
	return nil
}

// writeDocuments writes d in every structured format.
func (r *run) writeDocuments(base string, d documents) error {
	for _, f := range r.formats {
		var doc any
		switch f {
		case output.FormatXML:
			doc = d.xml
		case output.FormatJSON, output.FormatYAML:
			doc = d.model
		default:
			continue
		}
		err := r.create(f, base, func(w io.Writer) error {
			dw, err := output.NewWriter(w, f)
			if err != nil {
				return err
			}
			if err := dw.Write(doc); err != nil {
				return err
			}
			return dw.Close()
		})
		if err != nil {
			return err
		}
	}
	return nil
}

func (r *run) path(f output.Format, base string) string {
	return filepath.Join(r.root, string(f), base+f.Extension())
}

func (r *run) create(f output.Format, base string, write func(io.Writer) error) error {
	path := r.path(f, base)
	file, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := write(file); err != nil {
		_ = file.Close()
		return fmt.Errorf("%s: %w", path, err)
	}
	if err := file.Close(); err != nil {
		return err
	}
	return r.record(path)
}

func (r *run) record(path string) error {
	info, err := os.Stat(path)
	if err != nil {
		return err
	}
	rel, err := filepath.Rel(r.root, path)
	if err != nil {
		return err
	}
	r.summary.Files++
	r.summary.Bytes += info.Size()
	r.summary.Paths = append(r.summary.Paths, filepath.ToSlash(rel))
	logger.Debug("file written", "path", path, "bytes", info.Size())
	return nil
}

func (r *run) has(f output.Format) bool {
	return slices.Contains(r.formats, f)
}

func (r *run) verify() error {
	var jsonPath, xmlPath string
	if r.has(output.FormatJSON) {
		jsonPath = r.path(output.FormatJSON, baseAll)
	}
	if r.has(output.FormatXML) {
		xmlPath = r.path(output.FormatXML, baseAll)
	}
	if jsonPath == "" && xmlPath == "" {
		return nil
	}

	v, err := newVerifier(jsonPath, xmlPath)
	if err != nil {
		return err
	}
	if err := v.counts(r.counts); err != nil {
		return err
	}
	for _, p := range r.probes {
		if err := v.probe(p); err != nil {
			return err
		}
	}
	logger.Debug("exports verified", "tables", len(r.counts), "probes", len(r.probes))
	return nil
}
