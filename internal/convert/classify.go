// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"regexp"
	"strings"
)

// indentUnit is the number of leading spaces that represents one level of
// list or toggle nesting. Tabs in source indentation count as one unit.
const indentUnit = 2

// LineKind identifies the structural role of a single line.
type LineKind int

const (
	KindPlain LineKind = iota
	KindBlank
	KindFenceDelim
	KindHeading
	KindBullet
	KindOrdered
	KindTask
	KindTableRow
	KindBlockquote
	KindToggleStart
)

func (k LineKind) String() string {
	switch k {
	case KindBlank:
		return "blank"
	case KindFenceDelim:
		return "fence"
	case KindHeading:
		return "heading"
	case KindBullet:
		return "bullet"
	case KindOrdered:
		return "ordered"
	case KindTask:
		return "task"
	case KindTableRow:
		return "table-row"
	case KindBlockquote:
		return "blockquote"
	case KindToggleStart:
		return "toggle"
	default:
		return "plain"
	}
}

// LineTag is the classification of one line. It is computed fresh per line
// and never persisted.
type LineTag struct {
	Kind LineKind

	// Level is the raw `#` run length for headings. It may exceed 6; the
	// heading converter clamps it.
	Level int

	// Indent is the leading whitespace width in spaces for list and
	// toggle lines, with tabs counted as one indent unit.
	Indent int

	// Marker is the bullet character for KindBullet and KindTask.
	Marker byte

	// Ordinal is the numeric marker digits for KindOrdered.
	Ordinal string

	// Checkbox is ' ', 'x', or 'X' for KindTask.
	Checkbox byte

	// Lang is the info string following a fence delimiter.
	Lang string

	// Title is the toggle title for KindToggleStart.
	Title string

	// Rest is the line content after the marker.
	Rest string
}

// ScanState carries the classification state of one document between lines.
// It is owned by the conversion pass that walks the document and is never
// shared across documents.
type ScanState struct {
	InFence bool
}

var (
	fenceRe   = regexp.MustCompile("^\\s*```(.*)$")
	headingRe = regexp.MustCompile(`^(#+)(.*)$`)
	taskRe    = regexp.MustCompile(`^(\s*)([-*+])\s*\[([ xX])\](.*)$`)
	toggleRe  = regexp.MustCompile(`^(\s*)([▸▾►▼])\s+(.*)$`)
	// orderedRe captures "N." markers. When the dot is followed directly
	// by another digit the line is a decimal number, not a list item, so
	// the match is rejected in classifyList.
	orderedRe = regexp.MustCompile(`^(\s*)(\d+)\.(.*)$`)
)

// Classify tags one line and updates the carried state. Fence delimiters
// toggle st.InFence and are always tagged KindFenceDelim; while the flag is
// set every other line is KindPlain so that converters leave code content
// untouched. Precedence when several patterns could match: fence > heading >
// list item > table row > blockquote > toggle > blank > plain.
func Classify(line string, st *ScanState) LineTag {
	if m := fenceRe.FindStringSubmatch(line); m != nil {
		tag := LineTag{Kind: KindFenceDelim}
		if !st.InFence {
			tag.Lang = strings.TrimSpace(m[1])
		}
		st.InFence = !st.InFence
		return tag
	}
	if st.InFence {
		return LineTag{Kind: KindPlain}
	}

	if m := headingRe.FindStringSubmatch(line); m != nil {
		return LineTag{Kind: KindHeading, Level: len(m[1]), Rest: m[2]}
	}

	if tag, ok := classifyList(line); ok {
		return tag
	}

	trimmed := strings.TrimSpace(line)
	if strings.HasPrefix(trimmed, "|") {
		return LineTag{Kind: KindTableRow}
	}
	if strings.HasPrefix(trimmed, ">") {
		return LineTag{Kind: KindBlockquote, Rest: strings.TrimPrefix(trimmed, ">")}
	}

	if m := toggleRe.FindStringSubmatch(line); m != nil {
		return LineTag{Kind: KindToggleStart, Indent: indentWidth(m[1]), Title: m[3]}
	}

	if trimmed == "" {
		return LineTag{Kind: KindBlank}
	}
	return LineTag{Kind: KindPlain}
}

// classifyList matches task, bullet, and ordered list items. Notion exports
// sometimes omit the space after the marker ("-Text", "-[ ]Task"), so a `-`
// followed by a non-space still counts as a bullet; `*` and `+` require the
// space, otherwise emphasis and horizontal rules would be swallowed.
func classifyList(line string) (LineTag, bool) {
	if m := taskRe.FindStringSubmatch(line); m != nil {
		return LineTag{
			Kind:     KindTask,
			Indent:   indentWidth(m[1]),
			Marker:   m[2][0],
			Checkbox: m[3][0],
			Rest:     m[4],
		}, true
	}

	rest := line
	indent := leadingWhitespace(line)
	rest = line[len(indent):]
	if rest == "" {
		return LineTag{}, false
	}

	marker := rest[0]
	switch marker {
	case '-':
		body := rest[1:]
		// "--" starts a horizontal rule or frontmatter delimiter.
		if strings.HasPrefix(body, "-") {
			return LineTag{}, false
		}
		if body == "" {
			return LineTag{}, false
		}
		return LineTag{Kind: KindBullet, Indent: indentWidth(indent), Marker: marker, Rest: body}, true
	case '*', '+':
		body := rest[1:]
		if !strings.HasPrefix(body, " ") && !strings.HasPrefix(body, "\t") {
			return LineTag{}, false
		}
		return LineTag{Kind: KindBullet, Indent: indentWidth(indent), Marker: marker, Rest: body}, true
	}

	if m := orderedRe.FindStringSubmatch(line); m != nil {
		body := m[3]
		if body != "" && body[0] >= '0' && body[0] <= '9' {
			// "3.14" is a number, not a list marker.
			return LineTag{}, false
		}
		return LineTag{Kind: KindOrdered, Indent: indentWidth(m[1]), Ordinal: m[2], Rest: body}, true
	}
	return LineTag{}, false
}

// leadingWhitespace returns the run of spaces and tabs at the start of line.
func leadingWhitespace(line string) string {
	i := 0
	for i < len(line) && (line[i] == ' ' || line[i] == '\t') {
		i++
	}
	return line[:i]
}

// indentWidth measures indentation in spaces, counting each tab as one
// indent unit.
func indentWidth(ws string) int {
	w := 0
	for i := 0; i < len(ws); i++ {
		if ws[i] == '\t' {
			w += indentUnit
		} else {
			w++
		}
	}
	return w
}
