package commands

import (
	"context"
	"errors"
	"net/url"
	"path"

	"github.com/g3zod/adifexport/internal/config"
	"github.com/g3zod/adifexport/internal/logger"
	"github.com/g3zod/adifexport/pkg/fetcher"
	"github.com/g3zod/adifexport/pkg/source"
)

var errDocumentArgs = errors.New("give either a document file or --url, not both")

// loadDocument reads the specification named by args, or downloads it from
// rawURL when that is set.
func loadDocument(ctx context.Context, cfg *config.Config, args []string, rawURL string) (*source.Document, error) {
	switch {
	case rawURL != "" && len(args) > 0, rawURL == "" && len(args) == 0:
		return nil, errDocumentArgs
	case rawURL == "":
		logger.Debug("loading document", "path", args[0])
		return source.LoadFile(args[0])
	}

	maxSize, err := cfg.MaxBodySize()
	if err != nil {
		return nil, err
	}
	f := fetcher.NewStatic(fetcher.StaticConfig{
		UserAgent:   cfg.Fetch.UserAgent,
		Timeout:     cfg.Fetch.Timeout,
		MaxBodySize: maxSize,
	})
	defer func() { _ = f.Close() }()

	progress("Downloading " + rawURL + " ...")
	content, err := f.Fetch(ctx, rawURL, fetcher.Options{})
	if err != nil {
		return nil, err
	}
	logger.Debug("document downloaded", "url", rawURL, "bytes", len(content.Body), "content_type", content.ContentType)
	return source.Load(content.Body, documentName(rawURL))
}

// documentName is the last path element of a URL, which Load uses to spot
// annotated specifications.
func documentName(rawURL string) string {
	u, err := url.Parse(rawURL)
	if err != nil || u.Path == "" || u.Path == "/" {
		return rawURL
	}
	return path.Base(u.Path)
}
