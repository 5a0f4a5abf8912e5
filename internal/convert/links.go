// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"regexp"

	"github.com/pdiddy/notion2obsidian/internal/resolve"
)

// inlineLinkRe matches `[text](target)` and `![alt](target)` patterns.
var inlineLinkRe = regexp.MustCompile(`(!?)\[([^\]]*)\]\(([^)]+)\)`)

// convertLinks rewrites inline links and images whose target resolves to an
// internal name. Internal links become wikilinks; the link text is
// discarded because Obsidian derives the display text from the target.
// Internal images become embeds. External targets pass through
// byte-for-byte. Patterns inside code spans or fenced code are never
// touched.
func convertLinks(lines []string) []string {
	return eachUnmasked(lines, func(tag LineTag, line string) string {
		return mapOutsideCodeSpans(line, rewriteInlineLinks)
	})
}

func rewriteInlineLinks(seg string) string {
	return inlineLinkRe.ReplaceAllStringFunc(seg, func(match string) string {
		m := inlineLinkRe.FindStringSubmatch(match)
		target := resolve.Resolve(m[3])
		if target.Kind != resolve.Internal {
			return match
		}
		if m[1] == "!" {
			return "![[" + target.Name + "]]"
		}
		return "[[" + target.Name + "]]"
	})
}
