// Package source loads an ADIF Specification XHTML file into a parsed
// document, working out its character encoding first.
package source

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/saintfish/chardet"
	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	"github.com/g3zod/adifexport/internal/logger"
)

// ErrEncoding is returned when the declared and actual encodings disagree.
var ErrEncoding = errors.New("document encoding mismatch")

// Encoding names reported in Document.Encoding.
const (
	EncodingUTF8        = "utf-8"
	EncodingWindows1252 = "windows-1252"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// Document is a loaded XHTML document.
type Document struct {
	// Name is the file name the document was read from. It is used to spot
	// annotated specifications.
	Name string

	// Encoding is the encoding the bytes were decoded with.
	Encoding string

	// Charset is the charset declared by the content-type meta tag.
	Charset string

	*goquery.Document
}

// LoadFile reads and parses the file at path.
func LoadFile(path string) (*Document, error) {
	data, err := os.ReadFile(path) //#nosec G304 -- CLI tool reads the user-specified document
	if err != nil {
		return nil, fmt.Errorf("failed to read document: %w", err)
	}
	return Load(data, filepath.Base(path))
}

// Load decodes and parses data. name is recorded on the returned Document.
//
// A UTF-8 byte order mark selects UTF-8, anything else is read as
// Windows-1252. The charset in the content-type meta tag must agree.
func Load(data []byte, name string) (*Document, error) {
	if len(data) < len(utf8BOM) {
		return nil, fmt.Errorf("failed to read first %d bytes from %s to determine encoding", len(utf8BOM), name)
	}

	var r io.Reader
	encoding := EncodingWindows1252
	if bytes.HasPrefix(data, utf8BOM) {
		encoding = EncodingUTF8
		r = bytes.NewReader(data[len(utf8BOM):])
	} else {
		warnIfLooksLikeUTF8(data, name)
		r = transform.NewReader(bytes.NewReader(data), charmap.Windows1252.NewDecoder())
	}

	decoded, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to decode %s as %s: %w", name, encoding, err)
	}
	if !bytes.Contains(decoded, []byte("<html")) {
		return nil, fmt.Errorf("failed to find <html> tag in %s", name)
	}

	doc, err := goquery.NewDocumentFromReader(bytes.NewReader(decoded))
	if err != nil {
		return nil, fmt.Errorf("failed to parse %s: %w", name, err)
	}

	contentType := contentTypeMeta(doc)
	_, charset := decodeContentType(contentType)
	if err := checkCharset(charset, encoding, contentType); err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}

	logger.Debug("document loaded", "name", name, "encoding", encoding, "charset", charset, "bytes", len(data))

	return &Document{
		Name:     name,
		Encoding: encoding,
		Charset:  charset,
		Document: doc,
	}, nil
}

func checkCharset(charset, encoding, contentType string) error {
	switch charset {
	case EncodingWindows1252:
		if encoding != EncodingWindows1252 {
			return fmt.Errorf("%w: the encoding in the XHTML file is %q but the file is UTF-8 encoded", ErrEncoding, contentType)
		}
	case EncodingUTF8:
		if encoding != EncodingUTF8 {
			return fmt.Errorf("%w: the encoding in the XHTML file is %q but the file is not UTF-8 encoded", ErrEncoding, contentType)
		}
	case "iso-8859-1":
		// A subset of both encodings; the bytes cannot tell us more.
	default:
		return fmt.Errorf("%w: the encoding in the XHTML file %q is not Windows-1252 or UTF-8", ErrEncoding, contentType)
	}
	return nil
}

// contentTypeMeta returns the content attribute of the first
// <meta http-equiv="content-type"> element.
func contentTypeMeta(doc *goquery.Document) string {
	var content string
	doc.Find("head meta[http-equiv]").EachWithBreak(func(_ int, s *goquery.Selection) bool {
		if !strings.EqualFold(s.AttrOr("http-equiv", ""), "content-type") {
			return true
		}
		if c, ok := s.Attr("content"); ok {
			content = c
			return false
		}
		return true
	})
	return content
}

// decodeContentType splits "text/html; charset=windows-1252".
func decodeContentType(contentType string) (media, charset string) {
	for i, part := range strings.Split(contentType, ";") {
		part = strings.TrimSpace(part)
		if part == "" {
			continue
		}
		if i == 0 {
			media = strings.ToLower(part)
		}
		if len(part) > len("charset=") && strings.EqualFold(part[:len("charset=")], "charset=") {
			charset = strings.ToLower(strings.TrimSpace(part[len("charset="):]))
		}
	}
	return media, charset
}

// warnIfLooksLikeUTF8 logs when a file without a byte order mark is very
// probably UTF-8, which usually means the BOM was lost on save.
func warnIfLooksLikeUTF8(data []byte, name string) {
	if isASCII(data) {
		return
	}
	res, err := chardet.NewHtmlDetector().DetectBest(data)
	if err != nil || res == nil {
		return
	}
	if strings.EqualFold(res.Charset, "UTF-8") && res.Confidence >= 90 {
		logger.Warn("document has no UTF-8 byte order mark but looks UTF-8 encoded; decoding as Windows-1252",
			"name", name, "confidence", res.Confidence)
	}
}

func isASCII(data []byte) bool {
	for _, b := range data {
		if b >= 0x80 {
			return false
		}
	}
	return true
}
