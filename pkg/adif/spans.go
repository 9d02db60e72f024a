package adif

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/antchfx/htmlquery"
	"github.com/antchfx/xpath"
	"golang.org/x/net/html"

	"github.com/g3zod/adifexport/pkg/normalize"
)

// Descriptions mark numeric limits with titled spans, possibly nested in
// links or other spans.
var (
	greaterThanSpan = xpath.MustCompile(`.//span[@title='GreaterThan']`)
	minimumSpan     = xpath.MustCompile(`.//span[@title='Minimum']`)
	maximumSpan     = xpath.MustCompile(`.//span[@title='Maximum']`)
)

type bounds struct {
	min string
	max string
}

// readBounds extracts the Minimum Value and Maximum Value of a description
// cell. A GreaterThan limit is exclusive and only allowed for integers; an
// explicit Minimum takes precedence over it.
func readBounds(cell *html.Node) (bounds, error) {
	var b bounds
	if cell == nil {
		return b, nil
	}

	if n := htmlquery.QuerySelector(cell, greaterThanSpan); n != nil {
		text := spanText(n)
		v, err := strconv.Atoi(text)
		if err != nil || strings.Contains(text, ".") {
			return b, fmt.Errorf(`%w: the <span title="GreaterThan"> tag contains %q but only integer values are allowed`,
				normalize.ErrCellContent, text)
		}
		b.min = strconv.Itoa(v + 1)
	}
	if n := htmlquery.QuerySelector(cell, minimumSpan); n != nil {
		b.min = spanText(n)
	}
	if n := htmlquery.QuerySelector(cell, maximumSpan); n != nil {
		b.max = spanText(n)
	}
	return b, nil
}

func spanText(n *html.Node) string {
	return normalize.Whitespace(htmlquery.InnerText(n))
}
