package normalize

import (
	"fmt"
	"regexp"
	"strings"
)

// complexEnumeration matches enumerations that depend on another field, e.g.
// "(Primary Administrative Subdivision, function of MY_DXCC field's value)".
var complexEnumeration = regexp.MustCompile(`\(([^,]*), function of ([\w ]*) field['’]s value\)`)

const submodeEnumeration = "(Submode, function of MODE field's value)"

// EnumerationName converts the Enumeration column of the Fields table into
// a machine-usable name. Dependent enumerations become "Name[FIELD]".
func EnumerationName(s string) (string, error) {
	switch {
	case s == "":
		return "", nil
	case strings.HasPrefix(s, "("):
		return parseComplexEnumeration(s)
	case strings.HasPrefix(s, "Submode"):
		return parseComplexEnumeration(submodeEnumeration)
	default:
		return underscore(s), nil
	}
}

func parseComplexEnumeration(s string) (string, error) {
	m := complexEnumeration.FindStringSubmatch(s)
	if m == nil {
		return "", fmt.Errorf("%w: unrecognized dependent enumeration: value=%q", ErrCellContent, s)
	}
	return fmt.Sprintf("%s[%s]", underscore(m[1]), m[2]), nil
}

func underscore(s string) string {
	return strings.ReplaceAll(s, " ", "_")
}
