// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import "regexp"

// Emphasis and code-span pairs with stray spaces just inside the
// delimiters. Matching the pair keeps the fix local to one span; an
// unbalanced delimiter never matches and the line is left alone.
var (
	boldStarRe   = regexp.MustCompile(`\*\*[ \t]*([^*]+?)[ \t]*\*\*`)
	boldUnderRe  = regexp.MustCompile(`__[ \t]*([^_]+?)[ \t]*__`)
	italStarRe   = regexp.MustCompile(`(^|[^*])\*[ \t]+([^*]+?)[ \t]*\*`)
	italStarTrRe = regexp.MustCompile(`(^|[^*])\*([^*]+?)[ \t]+\*`)
	italUnderRe  = regexp.MustCompile(`(^|[^_])_[ \t]+([^_]+?)[ \t]*_`)
	italUnderTrRe = regexp.MustCompile(`(^|[^_])_([^_]+?)[ \t]+_`)
	codeSpanRe   = regexp.MustCompile("`[ \t]+([^`]*?)[ \t]*`")
	codeSpanTrRe = regexp.MustCompile("`([^`]*?)[ \t]+`")
)

// normalizeEmphasis removes spaces immediately inside `**`, `*`, `_`, and
// backtick delimiters, line by line, outside fenced code.
func normalizeEmphasis(lines []string) []string {
	return eachUnmasked(lines, func(tag LineTag, line string) string {
		return FixEmphasisSpacing(line)
	})
}

// FixEmphasisSpacing removes spaces just inside paired emphasis and
// code-span delimiters on one line. The linter's emphasis rule shares this
// so both stages repair spans the same way.
func FixEmphasisSpacing(line string) string {
	line = boldStarRe.ReplaceAllString(line, "**$1**")
	line = boldUnderRe.ReplaceAllString(line, "__$1__")
	line = italStarRe.ReplaceAllString(line, "$1*$2*")
	line = italStarTrRe.ReplaceAllString(line, "$1*$2*")
	line = italUnderRe.ReplaceAllString(line, "$1_$2_")
	line = italUnderTrRe.ReplaceAllString(line, "$1_$2_")
	line = codeSpanRe.ReplaceAllString(line, "`$1`")
	line = codeSpanTrRe.ReplaceAllString(line, "`$1`")
	return line
}
