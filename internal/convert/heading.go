// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import "strings"

// convertHeadings guarantees exactly one space between the `#` run and the
// heading text. Levels are clamped to 6: a deeper run keeps its surplus
// hashes as text ("#######Text" becomes "###### #Text"), it is never an
// error and never level 7.
func convertHeadings(lines []string) []string {
	return eachUnmasked(lines, func(tag LineTag, line string) string {
		if tag.Kind != KindHeading {
			return line
		}
		return normalizeHeading(tag)
	})
}

func normalizeHeading(tag LineTag) string {
	level := tag.Level
	text := tag.Rest
	if level > 6 {
		text = strings.Repeat("#", level-6) + text
		level = 6
	}
	text = strings.TrimLeft(text, " \t")
	marker := strings.Repeat("#", level)
	if text == "" {
		return marker
	}
	return marker + " " + text
}
