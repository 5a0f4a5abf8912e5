// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package lint

import (
	"regexp"
	"strings"

	"github.com/pdiddy/notion2obsidian/internal/convert"
	"github.com/pdiddy/notion2obsidian/pkg/types"
)

// rules is the pipeline in its fixed order. Trailing whitespace is trimmed
// before blank-line collapsing, marker spacing is fixed before marker
// consistency, and frontmatter is normalized before anything scans the body.
var rules = []rule{
	{
		name:    "frontmatter-format",
		enabled: func(c types.LintConfig) bool { return c.StandardizeFrontmatter },
		apply:   fixFrontmatter,
	},
	{
		name:    "heading-space",
		enabled: func(c types.LintConfig) bool { return c.SpaceAfterHeading },
		apply:   fixHeadingSpace,
		check:   checkHeadingSpace,
	},
	{
		name:    "list-marker-space",
		enabled: func(c types.LintConfig) bool { return c.SpaceAfterListMarker },
		apply:   fixListMarkerSpace,
		check:   checkListMarkerSpace,
	},
	{
		name:    "list-marker-consistency",
		enabled: func(c types.LintConfig) bool { return c.NormalizeListMarkers },
		apply:   fixListMarkers,
	},
	{
		name:    "list-blank-lines",
		enabled: func(c types.LintConfig) bool { return c.EnsureListSpacing },
		apply:   fixListSpacing,
	},
	{
		name:    "table-format",
		enabled: func(c types.LintConfig) bool { return c.FixTableFormatting },
		apply:   fixTables,
	},
	{
		name:    "link-spacing",
		enabled: func(c types.LintConfig) bool { return c.FixLinkSpacing },
		apply:   fixLinkSpacing,
	},
	{
		name:    "emphasis-spacing",
		enabled: func(c types.LintConfig) bool { return c.FixEmphasis },
		apply:   fixEmphasis,
	},
	{
		name:    "multiple-spaces",
		enabled: func(c types.LintConfig) bool { return c.RemoveMultipleSpaces },
		apply:   fixMultipleSpaces,
	},
	{
		name:    "trailing-whitespace",
		enabled: func(c types.LintConfig) bool { return c.TrimTrailingWhitespace },
		apply:   trimTrailingWhitespace,
		check:   checkTrailingWhitespace,
	},
	{
		name:    "blank-line-collapse",
		enabled: func(c types.LintConfig) bool { return c.MaxBlankLines > 0 },
		apply:   collapseBlankLines,
	},
	{
		name:    "final-newline",
		enabled: func(c types.LintConfig) bool { return c.EnsureFinalNewline },
		apply:   ensureFinalNewline,
		check:   checkFinalNewline,
	},
	{
		// Check-only: tabs are reported but never rewritten, converting
		// tab indentation to spaces is a content change the owner makes.
		name:    "tab-indentation",
		enabled: func(types.LintConfig) bool { return true },
		check:   checkTabs,
	},
}

// fixFrontmatter normalizes a leading YAML block: keys get exactly one
// space after the colon, blank lines inside the block are dropped, and one
// blank line follows the closing delimiter. Documents without a complete
// block are left alone.
func fixFrontmatter(content string, _ types.LintConfig) string {
	lines := strings.Split(content, "\n")
	end := frontmatterSpan(lines)
	if end == 0 {
		return content
	}

	out := []string{"---"}
	for _, line := range lines[1 : end-1] {
		line = strings.TrimRight(line, " \t")
		if line == "" {
			continue
		}
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "#") || strings.HasPrefix(trimmed, "-") || !strings.Contains(line, ":") {
			out = append(out, line)
			continue
		}
		indent := line[:len(line)-len(strings.TrimLeft(line, " \t"))]
		k, v, _ := strings.Cut(line, ":")
		k = strings.TrimSpace(k)
		v = strings.TrimSpace(v)
		if v == "" {
			out = append(out, indent+k+":")
		} else {
			out = append(out, indent+k+": "+v)
		}
	}
	out = append(out, "---")

	body := lines[end:]
	if len(body) > 0 && strings.TrimSpace(body[0]) != "" {
		out = append(out, "")
	}
	return strings.Join(append(out, body...), "\n")
}

var headingTightRe = regexp.MustCompile(`^(#{1,6})([^# \t])`)

func fixHeadingSpace(content string, _ types.LintConfig) string {
	return mapUnfenced(content, func(line string) string {
		return headingTightRe.ReplaceAllString(line, "$1 $2")
	})
}

func checkHeadingSpace(content string, _ types.LintConfig) []types.Finding {
	var out []types.Finding
	eachUnfenced(content, func(i int, line string) {
		if headingTightRe.MatchString(line) {
			out = append(out, types.Finding{
				Rule:    "heading-space",
				Line:    i + 1,
				Message: "heading missing space after #",
			})
		}
	})
	return out
}

// Tight list markers. Only `-` gets the missing-space repair: a bare `*` or
// `+` followed by text is more likely emphasis or prose than a bullet, and
// `--` starts a horizontal rule. Tight checkboxes and ordinals are repaired
// for all three markers, with a digit guard so "3.14" stays a number.
var (
	taskBracketTightRe = regexp.MustCompile(`^(\s*[-*+])(\[[ xX]\])`)
	taskTextTightRe    = regexp.MustCompile(`^(\s*[-*+]\s*\[[ xX]\])([^ \t])`)
	bulletTightRe      = regexp.MustCompile(`^(\s*-)([^ \t*+\[-])`)
	orderedTightRe     = regexp.MustCompile(`^(\s*\d+\.)([^ \t0-9])`)
)

func fixListMarkerSpace(content string, _ types.LintConfig) string {
	return mapUnfenced(content, func(line string) string {
		line = taskBracketTightRe.ReplaceAllString(line, "$1 $2")
		line = taskTextTightRe.ReplaceAllString(line, "$1 $2")
		line = bulletTightRe.ReplaceAllString(line, "$1 $2")
		line = orderedTightRe.ReplaceAllString(line, "$1 $2")
		return line
	})
}

func checkListMarkerSpace(content string, _ types.LintConfig) []types.Finding {
	var out []types.Finding
	eachUnfenced(content, func(i int, line string) {
		if taskBracketTightRe.MatchString(line) || taskTextTightRe.MatchString(line) ||
			bulletTightRe.MatchString(line) || orderedTightRe.MatchString(line) {
			out = append(out, types.Finding{
				Rule:    "list-marker-space",
				Line:    i + 1,
				Message: "list item missing space after marker",
			})
		}
	})
	return out
}

var altMarkerRe = regexp.MustCompile(`^(\s*)[*+](\s)`)

func fixListMarkers(content string, _ types.LintConfig) string {
	return mapUnfenced(content, func(line string) string {
		return altMarkerRe.ReplaceAllString(line, "${1}-${2}")
	})
}

var (
	listItemRe = regexp.MustCompile(`^\s*(?:[-*+]|\d+\.)\s`)
)

// fixListSpacing surrounds each list region with one blank line. The
// frontmatter block is skipped, YAML sequences are not Markdown lists.
func fixListSpacing(content string, _ types.LintConfig) string {
	lines := strings.Split(content, "\n")
	fmEnd := frontmatterSpan(lines)

	var out []string
	inFence := false
	for i, line := range lines {
		if i < fmEnd {
			out = append(out, line)
			continue
		}
		if strings.HasPrefix(strings.TrimSpace(line), "```") {
			inFence = !inFence
			out = append(out, line)
			continue
		}
		if inFence {
			out = append(out, line)
			continue
		}

		isItem := listItemRe.MatchString(line)
		if isItem && len(out) > 0 {
			prev := out[len(out)-1]
			if strings.TrimSpace(prev) != "" && !listItemRe.MatchString(prev) {
				out = append(out, "")
			}
		}
		out = append(out, line)
		if isItem && i+1 < len(lines) {
			next := lines[i+1]
			if strings.TrimSpace(next) != "" && !listItemRe.MatchString(next) &&
				!strings.HasPrefix(strings.TrimSpace(next), "```") {
				out = append(out, "")
			}
		}
	}
	return strings.Join(out, "\n")
}

// fixTables reformats each contiguous table run and keeps one blank line
// after a table that abuts prose.
func fixTables(content string, _ types.LintConfig) string {
	lines := strings.Split(content, "\n")
	var out, run []string
	inFence := false
	flush := func() {
		if len(run) > 0 {
			out = append(out, convert.FormatTable(run)...)
			run = nil
		}
	}
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "```") {
			flush()
			inFence = !inFence
			out = append(out, line)
			continue
		}
		if !inFence && strings.HasPrefix(trimmed, "|") {
			run = append(run, line)
			continue
		}
		if len(run) > 0 {
			flush()
			if trimmed != "" {
				out = append(out, "")
			}
		}
		out = append(out, line)
	}
	flush()
	return strings.Join(out, "\n")
}

var (
	inlineLinkTightRe = regexp.MustCompile(`\[[ \t]*([^\]]*?)[ \t]*\]\([ \t]*([^)]*?)[ \t]*\)`)
	wikilinkTightRe   = regexp.MustCompile(`\[\[[ \t]*([^\]]+?)[ \t]*\]\]`)
)

func fixLinkSpacing(content string, _ types.LintConfig) string {
	return mapUnfenced(content, func(line string) string {
		line = wikilinkTightRe.ReplaceAllString(line, "[[$1]]")
		line = inlineLinkTightRe.ReplaceAllString(line, "[$1]($2)")
		return line
	})
}

func fixEmphasis(content string, _ types.LintConfig) string {
	return mapUnfenced(content, convert.FixEmphasisSpacing)
}

var spaceRunRe = regexp.MustCompile(`  +`)

// fixMultipleSpaces collapses interior space runs. Leading indentation is
// preserved and table rows are skipped so column padding survives.
func fixMultipleSpaces(content string, _ types.LintConfig) string {
	return mapUnfenced(content, func(line string) string {
		trimmed := strings.TrimSpace(line)
		if strings.HasPrefix(trimmed, "|") {
			return line
		}
		indent := line[:len(line)-len(strings.TrimLeft(line, " "))]
		return indent + spaceRunRe.ReplaceAllString(line[len(indent):], " ")
	})
}

func trimTrailingWhitespace(content string, _ types.LintConfig) string {
	lines := strings.Split(content, "\n")
	for i, line := range lines {
		lines[i] = strings.TrimRight(line, " \t")
	}
	return strings.Join(lines, "\n")
}

func checkTrailingWhitespace(content string, _ types.LintConfig) []types.Finding {
	var out []types.Finding
	for i, line := range strings.Split(content, "\n") {
		if line != strings.TrimRight(line, " \t") {
			out = append(out, types.Finding{
				Rule:    "trailing-whitespace",
				Line:    i + 1,
				Message: "trailing whitespace",
			})
		}
	}
	return out
}

// collapseBlankLines caps consecutive blank lines at cfg.MaxBlankLines,
// outside fenced code.
func collapseBlankLines(content string, cfg types.LintConfig) string {
	lines := strings.Split(content, "\n")
	var out []string
	inFence := false
	blanks := 0
	for _, line := range lines {
		if strings.HasPrefix(strings.TrimSpace(line), "```") {
			inFence = !inFence
		}
		if !inFence && strings.TrimSpace(line) == "" {
			blanks++
			if blanks > cfg.MaxBlankLines {
				continue
			}
		} else {
			blanks = 0
		}
		out = append(out, line)
	}
	return strings.Join(out, "\n")
}

func ensureFinalNewline(content string, _ types.LintConfig) string {
	return strings.TrimRight(content, "\n") + "\n"
}

func checkFinalNewline(content string, _ types.LintConfig) []types.Finding {
	if strings.HasSuffix(content, "\n") && !strings.HasSuffix(content, "\n\n") {
		return nil
	}
	n := strings.Count(content, "\n") + 1
	return []types.Finding{{
		Rule:    "final-newline",
		Line:    n,
		Message: "file must end with exactly one newline",
	}}
}

func checkTabs(content string, _ types.LintConfig) []types.Finding {
	var out []types.Finding
	eachUnfenced(content, func(i int, line string) {
		if strings.Contains(line, "\t") {
			out = append(out, types.Finding{
				Rule:    "tab-indentation",
				Line:    i + 1,
				Message: "tab character found, use spaces",
			})
		}
	})
	return out
}
