// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"regexp"
	"strings"
	"unicode/utf8"
)

// minColumnWidth keeps separator rows valid: Obsidian requires at least
// three dashes per column.
const minColumnWidth = 3

// sepCellRe matches one cell of a table separator row.
var sepCellRe = regexp.MustCompile(`^:?-+:?$`)

// convertTables reformats every contiguous run of table rows: cells are
// trimmed, columns padded to a shared width, and ragged rows repaired by
// padding with empty cells. Separator rows are re-emitted as dash runs of
// the column width; alignment colons are not preserved.
func convertTables(lines []string) []string {
	st := &ScanState{}
	var out []string
	var run []string
	flush := func() {
		if len(run) > 0 {
			out = append(out, FormatTable(run)...)
			run = nil
		}
	}
	for _, line := range lines {
		inFence := st.InFence
		tag := Classify(line, st)
		if !inFence && tag.Kind == KindTableRow {
			run = append(run, line)
			continue
		}
		flush()
		out = append(out, line)
	}
	flush()
	return out
}

// FormatTable re-emits a run of table rows with trimmed cells, shared
// column widths, and padded ragged rows. Formatting already-formatted rows
// reproduces them unchanged, which the linter's table rule relies on.
func FormatTable(rows []string) []string {
	parsed := make([][]string, len(rows))
	cols := 0
	for i, row := range rows {
		parsed[i] = splitCells(row)
		if len(parsed[i]) > cols {
			cols = len(parsed[i])
		}
	}

	// Pad ragged rows and compute column widths from non-separator cells.
	widths := make([]int, cols)
	for i := range widths {
		widths[i] = minColumnWidth
	}
	for i, cells := range parsed {
		for len(cells) < cols {
			cells = append(cells, "")
		}
		parsed[i] = cells
		if isSeparatorRow(cells) {
			continue
		}
		for c, cell := range cells {
			if w := utf8.RuneCountInString(cell); w > widths[c] {
				widths[c] = w
			}
		}
	}

	out := make([]string, len(parsed))
	for i, cells := range parsed {
		if isSeparatorRow(cells) {
			sep := make([]string, cols)
			for c := range sep {
				sep[c] = strings.Repeat("-", widths[c])
			}
			out[i] = "| " + strings.Join(sep, " | ") + " |"
			continue
		}
		padded := make([]string, cols)
		for c, cell := range cells {
			padded[c] = cell + strings.Repeat(" ", widths[c]-utf8.RuneCountInString(cell))
		}
		out[i] = "| " + strings.Join(padded, " | ") + " |"
	}
	return out
}

// isSeparatorRow reports whether every non-empty cell is a dash run with
// optional alignment colons, and at least one cell is non-empty.
func isSeparatorRow(cells []string) bool {
	seen := false
	for _, cell := range cells {
		if cell == "" {
			continue
		}
		if !sepCellRe.MatchString(cell) {
			return false
		}
		seen = true
	}
	return seen
}

// splitCells parses one table row into trimmed cell strings, splitting on
// unescaped pipes. Leading and trailing delimiters are dropped.
func splitCells(line string) []string {
	s := strings.TrimSpace(line)
	s = strings.TrimPrefix(s, "|")
	if strings.HasSuffix(s, "|") && !strings.HasSuffix(s, `\|`) {
		s = s[:len(s)-1]
	}

	var cells []string
	var cur strings.Builder
	esc := false
	for i := 0; i < len(s); i++ {
		c := s[i]
		switch {
		case esc:
			cur.WriteByte(c)
			esc = false
		case c == '\\':
			cur.WriteByte(c)
			esc = true
		case c == '|':
			cells = append(cells, strings.TrimSpace(cur.String()))
			cur.Reset()
		default:
			cur.WriteByte(c)
		}
	}
	cells = append(cells, strings.TrimSpace(cur.String()))
	return cells
}
