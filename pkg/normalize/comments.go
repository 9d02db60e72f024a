package normalize

import (
	"fmt"
	"strings"
)

// Annotated is a cell value with its embedded annotations taken out.
type Annotated struct {
	Value      string
	Comments   []string
	ImportOnly bool
	Deleted    bool
}

// CommentText joins the comments the way they are exported.
func (a Annotated) CommentText() string {
	return strings.Join(a.Comments, "; ")
}

// AddComment appends c unless it is empty or the comments already contain
// it, ignoring case.
func (a *Annotated) AddComment(c string) {
	if c == "" {
		return
	}
	if strings.Contains(strings.ToLower(a.CommentText()), strings.ToLower(c)) {
		return
	}
	a.Comments = append(a.Comments, c)
}

// CommentOptions selects the optional parts of comment extraction.
type CommentOptions struct {
	// DashForm enables the "Name - for contacts made before ..." suffix
	// used by subdivision tables.
	DashForm bool
}

const (
	phraseBefore  = "for contacts made before"
	phraseOnAfter = "for contacts made on or after"
	phraseReferTo = "referred to"
	replacedBy    = "replaced by"
)

// ExtractComments splits a cell such as
//
//	"Foo (import-only - replaced by Bar)"
//
// into its value, its comments, and the flags the annotations imply. The
// value is the text before the first parenthesis. Each top-level group
// becomes a comment, as does any text left between or after the groups.
func ExtractComments(raw string, opts CommentOptions) (Annotated, error) {
	var a Annotated
	text := FixTypo(raw)

	var dash string
	if opts.DashForm {
		if posn := topLevelDash(text); posn > 0 {
			dash = strings.TrimSpace(text[posn+3:])
			text = text[:posn]
		}
	}

	head, groups, rest, err := splitGroups(text)
	if err != nil {
		return Annotated{}, fmt.Errorf("%w: %v: value=%q", ErrCellContent, err, raw)
	}
	for _, group := range groups {
		if hasPrefixFold(group, importOnly) {
			a.ImportOnly = true
			group = strings.TrimSpace(group[len(importOnly):])
			if strings.HasPrefix(group, "-") {
				if !strings.Contains(strings.ToLower(raw), replacedBy) {
					return Annotated{}, fmt.Errorf("%w: import-only followed by a dash without %q: value=%q", ErrCellContent, replacedBy, raw)
				}
				group = strings.TrimSpace(group[1:])
			}
			group = strings.TrimSpace(strings.TrimLeft(group, ";,"))
			a.AddComment(group)
			continue
		}
		if group == "" {
			return Annotated{}, fmt.Errorf("%w: empty comment: value=%q", ErrCellContent, raw)
		}
		a.AddComment(group)
	}
	for _, r := range rest {
		a.AddComment(r)
	}

	if dash != "" {
		switch {
		case dashPhrase(dash, phraseBefore):
			a.Deleted = true
		case dashPhrase(dash, phraseOnAfter), dashPhrase(dash, phraseReferTo):
		default:
			return Annotated{}, fmt.Errorf("%w: unrecognized annotation %q: value=%q", ErrCellContent, dash, raw)
		}
		a.AddComment(dash)
	}
	a.Value = head

	if ContainsImportOnly(a.CommentText()) {
		return Annotated{}, fmt.Errorf("%w: import-only left in comments %q: value=%q", ErrCellContent, a.CommentText(), raw)
	}
	return a, nil
}

// splitGroups returns the text before the first parenthesis, the contents
// of each top-level group, and the non-blank text found between or after
// them.
func splitGroups(s string) (head string, groups, rest []string, err error) {
	open, end, err := nextGroup(s)
	if err != nil {
		return "", nil, nil, err
	}
	if open < 0 {
		return Whitespace(s), nil, nil, nil
	}
	head = Whitespace(s[:open])
	for open >= 0 {
		groups = append(groups, Whitespace(s[open+1:end]))
		s = s[end+1:]
		if open, end, err = nextGroup(s); err != nil {
			return "", nil, nil, err
		}
		between := s
		if open >= 0 {
			between = s[:open]
		}
		if t := Whitespace(between); t != "" {
			rest = append(rest, t)
		}
	}
	return head, groups, rest, nil
}

// topLevelDash returns the index of the first " - " outside parentheses, or
// -1.
func topLevelDash(s string) int {
	depth := 0
	for i := 0; i < len(s); i++ {
		switch s[i] {
		case '(':
			depth++
		case ')':
			depth--
		case ' ':
			if depth == 0 && strings.HasPrefix(s[i:], " - ") {
				return i
			}
		}
	}
	return -1
}

// dashPhrase reports whether the text after a dash is, or later contains,
// the given annotation phrase.
func dashPhrase(s, phrase string) bool {
	return strings.HasPrefix(s, phrase) || strings.Contains(s, " - "+phrase)
}

// nextGroup finds the first top-level parenthesized group. It returns -1
// when there is none.
func nextGroup(s string) (open, end int, err error) {
	open = strings.IndexByte(s, '(')
	if open < 0 {
		if strings.IndexByte(s, ')') >= 0 {
			return -1, -1, fmt.Errorf("unbalanced parentheses")
		}
		return -1, -1, nil
	}
	if strings.IndexByte(s[:open], ')') >= 0 {
		return -1, -1, fmt.Errorf("unbalanced parentheses")
	}
	depth := 0
	for i := open; i < len(s); i++ {
		switch s[i] {
		case '(':
			depth++
		case ')':
			depth--
			if depth == 0 {
				return open, i, nil
			}
		}
	}
	return -1, -1, fmt.Errorf("unbalanced parentheses")
}

// StripImportOnly removes an import-only marker from a description-like
// value: either a parenthesized group starting with import-only or a
// trailing " import-only". Text that followed the marker inside the group is
// returned as a comment.
func StripImportOnly(s string) (value, comment string, found bool) {
	rest := s
	offset := 0
	for {
		open, end, err := nextGroup(rest)
		if err != nil || open < 0 {
			break
		}
		group := Whitespace(rest[open+1 : end])
		if hasPrefixFold(group, importOnly) {
			start, stop := offset+open, offset+end
			comment = strings.TrimSpace(group[len(importOnly):])
			comment = strings.TrimSpace(strings.TrimLeft(comment, "-;,"))
			return Whitespace(s[:start] + " " + s[stop+1:]), comment, true
		}
		offset += end + 1
		rest = rest[end+1:]
	}

	const suffix = " " + importOnly
	if len(s) >= len(suffix) && strings.EqualFold(s[len(s)-len(suffix):], suffix) {
		return strings.TrimSpace(s[:len(s)-len(suffix)]), "", true
	}
	return s, "", false
}
