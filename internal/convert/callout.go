// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import "strings"

// calloutTypes maps the emoji glyphs Notion places at the start of a
// callout blockquote to Obsidian admonition keywords. Blockquotes that
// start with anything else stay plain blockquotes; types are never
// invented.
var calloutTypes = []struct {
	glyph string
	name  string
}{
	{"💡", "tip"},
	{"⚠️", "warning"},
	{"❗", "important"},
	{"ℹ️", "info"},
	{"📝", "note"},
	{"✅", "success"},
	{"❌", "error"},
	{"🔥", "danger"},
}

// convertCallouts rewrites blockquote groups whose first content line
// begins with a mapped emoji into Obsidian callouts: a `> [!type]` marker
// line followed by the original quote lines, the first with its emoji
// stripped.
func convertCallouts(lines []string) []string {
	st := &ScanState{}
	var out []string
	i := 0
	for i < len(lines) {
		inFence := st.InFence
		tag := Classify(lines[i], st)
		if inFence || tag.Kind != KindBlockquote {
			out = append(out, lines[i])
			i++
			continue
		}

		// Gather the whole contiguous blockquote group. Quote lines never
		// toggle fence state, so plain prefix checks are safe here.
		group := []string{lines[i]}
		j := i + 1
		for j < len(lines) && strings.HasPrefix(strings.TrimSpace(lines[j]), ">") {
			group = append(group, lines[j])
			j++
		}
		out = append(out, convertCalloutGroup(group)...)
		i = j
	}
	return out
}

func convertCalloutGroup(group []string) []string {
	first := strings.TrimSpace(group[0])
	content := strings.TrimSpace(strings.TrimPrefix(first, ">"))

	name, text, ok := matchCallout(content)
	if !ok {
		return group
	}

	out := []string{"> [!" + name + "]"}
	if text != "" {
		out = append(out, "> "+text)
	}
	return append(out, group[1:]...)
}

// matchCallout checks content against the glyph table, tolerating a missing
// variation selector on glyphs that normally carry one.
func matchCallout(content string) (name, text string, ok bool) {
	for _, c := range calloutTypes {
		glyphs := []string{c.glyph}
		if bare := strings.TrimSuffix(c.glyph, "️"); bare != c.glyph {
			glyphs = append(glyphs, bare)
		}
		for _, g := range glyphs {
			if strings.HasPrefix(content, g) {
				return c.name, strings.TrimSpace(content[len(g):]), true
			}
		}
	}
	return "", "", false
}
