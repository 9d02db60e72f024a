package adif

import (
	"fmt"
	"strings"

	"github.com/PuerkitoBio/goquery"

	"github.com/g3zod/adifexport/internal/logger"
)

const (
	deletionSelector = `[class="deletion"], [class="deletionstrike"]`
	annotatedMarker  = "annotated.htm"
)

// stripDeletions removes struck-out text left in annotated documents. An
// annotated document is only processed when confirm agrees.
func stripDeletions(doc *goquery.Document, sourceName string, confirm ConfirmFunc) (int, error) {
	deletions := doc.Find(deletionSelector)
	n := deletions.Length()
	if n == 0 {
		return 0, nil
	}

	if strings.Contains(strings.ToLower(sourceName), annotatedMarker) {
		msg := fmt.Sprintf("Warning: '%s' is an annotated ADIF specification.\n\n"+
			"Deleted text will be removed from the specification, but it is safer to use an un-annotated specification.\n\n"+
			"Continue?", sourceName)
		if confirm == nil || !confirm(msg) {
			return 0, fmt.Errorf("%w: the specification %q is annotated", ErrUserDeclined, sourceName)
		}
	}

	deletions.Remove()
	logger.Debug("deletions stripped", "source", sourceName, "count", n)
	return n, nil
}
