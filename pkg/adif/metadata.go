package adif

import (
	"fmt"
	"slices"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/araddon/dateparse"
)

// Versions of the ADIF Specification whose table layout this package reads.
// Later versions may restructure tables, so they are refused rather than
// exported wrongly.
var SupportedVersions = []string{"3.1.4", "3.1.5", "3.1.6"}

// SupportedStatuses are the document statuses the ADIF group publishes.
var SupportedStatuses = []string{"Draft", "Proposed", "Released"}

const (
	metaVersion = "adifversion"
	metaStatus  = "adifstatus"
	metaDate    = "adifdate"
)

// Metadata is read from the document head.
type Metadata struct {
	Version string
	Status  string
	// Date is zero when the document carries no adifdate tag.
	Date time.Time
}

// HasDate reports whether the document declared a release date.
func (m Metadata) HasDate() bool {
	return !m.Date.IsZero()
}

func readMetadata(doc *goquery.Document) (Metadata, error) {
	var m Metadata

	version, ok := metaContent(doc, metaVersion)
	if !ok {
		return m, fmt.Errorf("%w: no meta tag found with the name %q", ErrUnsupportedInput, metaVersion)
	}
	if !slices.Contains(SupportedVersions, version) {
		return m, fmt.Errorf("%w: ADIF version %q is not supported, supported versions are: %s",
			ErrUnsupportedInput, version, strings.Join(SupportedVersions, ", "))
	}
	m.Version = version

	status, ok := metaContent(doc, metaStatus)
	if !ok {
		return m, fmt.Errorf("%w: no meta tag found with the name %q", ErrUnsupportedInput, metaStatus)
	}
	if !slices.Contains(SupportedStatuses, status) {
		return m, fmt.Errorf("%w: ADIF status %q is invalid, supported statuses are: %s",
			ErrUnsupportedInput, status, strings.Join(SupportedStatuses, ", "))
	}
	m.Status = status

	if date, ok := metaContent(doc, metaDate); ok {
		t, err := dateparse.ParseIn(date, time.UTC)
		if err != nil {
			return m, fmt.Errorf("%w: ADIF date %q cannot be parsed: %v", ErrUnsupportedInput, date, err)
		}
		m.Date = time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
	}
	return m, nil
}

func metaContent(doc *goquery.Document, name string) (string, bool) {
	meta := doc.Find(fmt.Sprintf(`head meta[name=%q]`, name)).First()
	if meta.Length() == 0 {
		return "", false
	}
	return strings.TrimSpace(meta.AttrOr("content", "")), true
}
