// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"html"
	"strings"
)

// padFences inserts a blank line before an opening fence and after a
// closing fence when the neighbor is non-blank, so code blocks render as
// blocks rather than merging into adjacent paragraphs.
func padFences(lines []string) []string {
	st := &ScanState{}
	var out []string
	for i := 0; i < len(lines); i++ {
		wasInFence := st.InFence
		tag := Classify(lines[i], st)
		opening := tag.Kind == KindFenceDelim && !wasInFence
		closing := tag.Kind == KindFenceDelim && wasInFence

		if opening && len(out) > 0 && strings.TrimSpace(out[len(out)-1]) != "" {
			out = append(out, "")
		}
		out = append(out, lines[i])
		if closing && i+1 < len(lines) && strings.TrimSpace(lines[i+1]) != "" {
			out = append(out, "")
		}
	}
	return out
}

// decodeEntities resolves HTML entities Notion leaves in exported text
// (&amp;, &lt;, &#39;, ...). Fenced code and code spans keep their bytes.
func decodeEntities(lines []string) []string {
	return eachUnmasked(lines, func(tag LineTag, line string) string {
		return mapOutsideCodeSpans(line, html.UnescapeString)
	})
}
