package adif

import (
	"errors"

	"github.com/g3zod/adifexport/pkg/normalize"
	"github.com/g3zod/adifexport/pkg/table"
)

// Error kinds returned by Load. Test with errors.Is.
var (
	// ErrUnsupportedInput means the document's version or status is not
	// one this package knows how to read, or a required meta tag is missing.
	ErrUnsupportedInput = errors.New("unsupported ADIF specification")

	// ErrUserDeclined means the confirmation callback refused to continue
	// with an annotated specification.
	ErrUserDeclined = errors.New("declined to export an annotated specification")

	// ErrStructure means a table is not laid out as expected.
	ErrStructure = errors.New("unexpected table structure")

	// ErrCellContent means a cell value has an unexpected form.
	ErrCellContent = normalize.ErrCellContent

	// ErrIncompleteRow means a loader left a slot unset.
	ErrIncompleteRow = table.ErrIncompleteRow
)
