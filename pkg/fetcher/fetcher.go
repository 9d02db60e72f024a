// Package fetcher downloads ADIF Specification documents.
//
// The body is returned as raw bytes. Character decoding is left to
// pkg/source, which needs the original byte order mark to decide between
// UTF-8 and Windows-1252.
package fetcher

import (
	"context"
	"errors"
	"time"
)

// Fetcher abstracts how a specification document is retrieved.
type Fetcher interface {
	// Fetch retrieves the document at url.
	Fetch(ctx context.Context, url string, opts Options) (Content, error)

	// Close releases any resources.
	Close() error

	// Type returns a string identifying the fetcher type.
	Type() string
}

// Options controls a single fetch. Zero values fall back to the fetcher's
// configuration.
type Options struct {
	UserAgent string
	Timeout   time.Duration
	Headers   map[string]string
}

// Content is a fetched document.
type Content struct {
	URL         string
	Body        []byte
	StatusCode  int
	ContentType string
	FetchedAt   time.Time
}

// Check with errors.Is(err, fetcher.ErrStatus).
var (
	// ErrStatus indicates a non-success HTTP status.
	ErrStatus = errors.New("unexpected HTTP status")
	// ErrEmptyBody indicates the server returned no content.
	ErrEmptyBody = errors.New("empty response body")
)
