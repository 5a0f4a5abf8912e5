// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import "strings"

// convertToggles rewrites Notion toggle blocks (a `▸ Title` marker line
// followed by an indented body) into <details>/<summary> sections, which
// Obsidian renders as collapsible. The body runs until the first non-blank
// line back at the marker's indent or shallower, and is dedented by one
// indent unit.
//
// Nested toggles are not supported: a toggle marker inside another
// toggle's body stays body text. This mirrors the export format, which
// flattens deeper toggles anyway.
func convertToggles(lines []string) []string {
	st := &ScanState{}
	var out []string
	i := 0
	for i < len(lines) {
		inFence := st.InFence
		tag := Classify(lines[i], st)
		if inFence || tag.Kind != KindToggleStart {
			out = append(out, lines[i])
			i++
			continue
		}

		base := tag.Indent
		var body []string
		j := i + 1
		for j < len(lines) {
			line := lines[j]
			if strings.TrimSpace(line) == "" {
				Classify(line, st)
				body = append(body, "")
				j++
				continue
			}
			if indentWidth(leadingWhitespace(line)) < base+indentUnit {
				break
			}
			// Keep the fence flag straight for the lines we consume.
			Classify(line, st)
			body = append(body, dedentOne(line))
			j++
		}
		for len(body) > 0 && body[len(body)-1] == "" {
			body = body[:len(body)-1]
		}

		out = append(out, "<details>", "<summary>"+tag.Title+"</summary>", "")
		if len(body) > 0 {
			out = append(out, body...)
			out = append(out, "")
		}
		out = append(out, "</details>")
		i = j
	}
	return out
}

// dedentOne removes one indent unit: a single tab, or up to indentUnit
// leading spaces.
func dedentOne(line string) string {
	if strings.HasPrefix(line, "\t") {
		return line[1:]
	}
	for i := 0; i < indentUnit; i++ {
		if !strings.HasPrefix(line, " ") {
			break
		}
		line = line[1:]
	}
	return line
}
