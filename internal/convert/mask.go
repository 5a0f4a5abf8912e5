// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import "strings"

// eachUnmasked applies fn to every line outside fenced code blocks,
// replacing the line with fn's result. Fence delimiter lines and everything
// between them pass through untouched.
func eachUnmasked(lines []string, fn func(tag LineTag, line string) string) []string {
	st := &ScanState{}
	for i, line := range lines {
		inFence := st.InFence
		tag := Classify(line, st)
		if inFence || tag.Kind == KindFenceDelim {
			continue
		}
		lines[i] = fn(tag, line)
	}
	return lines
}

// mapOutsideCodeSpans applies fn to the parts of line not inside
// single-backtick code spans; span delimiters and span content are copied
// verbatim. A lone unpaired backtick does not open a span.
func mapOutsideCodeSpans(line string, fn func(string) string) string {
	var b strings.Builder
	rest := line
	for {
		i := strings.IndexByte(rest, '`')
		if i < 0 {
			b.WriteString(fn(rest))
			return b.String()
		}
		j := strings.IndexByte(rest[i+1:], '`')
		if j < 0 {
			b.WriteString(fn(rest))
			return b.String()
		}
		b.WriteString(fn(rest[:i]))
		b.WriteString(rest[i : i+2+j])
		rest = rest[i+2+j:]
	}
}
