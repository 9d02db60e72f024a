// Package publish uploads an exports tree to object storage.
//
// Objects are keyed {prefix}/{version}/{path}, where path is the file's
// slash-separated path below the exports root (for example
// adif/3.1.5/csv/enumerations_band.csv).
package publish

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"strings"

	"github.com/gabriel-vasile/mimetype"
	"github.com/tidwall/gjson"

	"github.com/g3zod/adifexport/internal/logger"
)

// ErrNoVersion is returned when the version of an exports tree cannot be
// read from json/all.json.
var ErrNoVersion = errors.New("cannot determine ADIF version of exports")

// Result summarizes one publish run.
type Result struct {
	Bucket  string   `json:"bucket" yaml:"bucket"`
	Objects int      `json:"objects" yaml:"objects"`
	Bytes   int64    `json:"bytes" yaml:"bytes"`
	Keys    []string `json:"keys" yaml:"keys"`
}

// Option configures a Publisher.
type Option func(*Publisher)

// WithPrefix sets the key prefix. Leading and trailing slashes are dropped.
func WithPrefix(prefix string) Option {
	return func(p *Publisher) { p.prefix = strings.Trim(prefix, "/") }
}

// WithProgress receives one message per uploaded object.
func WithProgress(fn func(string)) Option {
	return func(p *Publisher) { p.progress = fn }
}

// Publisher copies an exports tree into a bucket.
type Publisher struct {
	store    Store
	bucket   string
	prefix   string
	progress func(string)
}

// New creates a Publisher for bucket.
func New(store Store, bucket string, opts ...Option) *Publisher {
	p := &Publisher{store: store, bucket: bucket}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Key returns the object key for a path relative to the exports root.
func (p *Publisher) Key(version, rel string) string {
	return path.Join(p.prefix, version, filepath.ToSlash(rel))
}

// Publish uploads every regular file below root in lexical order.
func (p *Publisher) Publish(ctx context.Context, root, version string) (*Result, error) {
	if version == "" {
		return nil, ErrNoVersion
	}
	if err := p.store.EnsureBucket(ctx, p.bucket); err != nil {
		return nil, err
	}

	res := &Result{Bucket: p.bucket}
	err := filepath.WalkDir(root, func(name string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !d.Type().IsRegular() {
			return nil
		}
		if err := ctx.Err(); err != nil {
			return err
		}
		rel, err := filepath.Rel(root, name)
		if err != nil {
			return err
		}
		data, err := os.ReadFile(name)
		if err != nil {
			return err
		}
		key := p.Key(version, rel)
		ct := ContentType(name, data)
		if p.progress != nil {
			p.progress(fmt.Sprintf("Uploading %s ...", key))
		}
		if err := p.store.PutObject(ctx, p.bucket, key, data, ct); err != nil {
			return err
		}
		logger.Debug("object uploaded", "bucket", p.bucket, "key", key, "content_type", ct, "bytes", len(data))
		res.Objects++
		res.Bytes += int64(len(data))
		res.Keys = append(res.Keys, key)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

// ExportVersion reads the ADIF version recorded in root/json/all.json.
func ExportVersion(root string) (string, error) {
	data, err := os.ReadFile(filepath.Join(root, "json", "all.json"))
	if err != nil {
		return "", fmt.Errorf("%w: %w", ErrNoVersion, err)
	}
	v := gjson.GetBytes(data, "Adif.Version").String()
	if v == "" {
		return "", fmt.Errorf("%w: Adif.Version missing from all.json", ErrNoVersion)
	}
	return v, nil
}

// Detection does not tell delimited text or YAML apart from plain text.
var textTypes = map[string]string{
	".csv":  "text/csv; charset=utf-8",
	".tsv":  "text/tab-separated-values; charset=utf-8",
	".yaml": "application/yaml; charset=utf-8",
	".json": "application/json; charset=utf-8",
	".xml":  "application/xml; charset=utf-8",
}

// ContentType picks the Content-Type stored with an object.
func ContentType(name string, data []byte) string {
	if ct, ok := textTypes[strings.ToLower(filepath.Ext(name))]; ok {
		return ct
	}
	return mimetype.Detect(data).String()
}
