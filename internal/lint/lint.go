// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package lint normalizes Obsidian Markdown. Rules run in a fixed order
// because later rules depend on invariants earlier ones establish, for
// example trailing whitespace is trimmed before blank runs are collapsed so
// whitespace-only lines count as blank. Every rule is idempotent: applying
// the pipeline to its own output returns the output unchanged.
package lint

import (
	"strings"

	"github.com/pdiddy/notion2obsidian/pkg/types"
)

// rule pairs a fixing transformation with an optional line-precise check.
// Rules without a check report drift by diffing their own apply output.
type rule struct {
	name    string
	enabled func(types.LintConfig) bool
	apply   func(string, types.LintConfig) string
	check   func(string, types.LintConfig) []types.Finding
}

// Linter applies the rule pipeline under one configuration. It holds no
// per-document state and may be shared by concurrent workers.
type Linter struct {
	cfg types.LintConfig
}

// New returns a Linter for the given configuration.
func New(cfg types.LintConfig) *Linter {
	return &Linter{cfg: cfg}
}

// Fix runs every enabled rule in pipeline order and returns the normalized
// document.
func (l *Linter) Fix(content string) string {
	if content == "" {
		return content
	}
	content = strings.ReplaceAll(content, "\r\n", "\n")
	content = strings.ReplaceAll(content, "\r", "\n")
	for _, r := range rules {
		if r.apply == nil || !r.enabled(l.cfg) {
			continue
		}
		content = r.apply(content, l.cfg)
	}
	return content
}

// Validate reports findings for the original document without mutating it.
// An empty result means the document is clean.
func (l *Linter) Validate(content string) []types.Finding {
	var out []types.Finding
	for _, r := range rules {
		if !r.enabled(l.cfg) {
			continue
		}
		if r.check != nil {
			out = append(out, r.check(content, l.cfg)...)
			continue
		}
		if fixed := r.apply(content, l.cfg); fixed != content {
			out = append(out, types.Finding{
				Rule:    r.name,
				Line:    firstDiffLine(content, fixed),
				Message: "would be reformatted",
			})
		}
	}
	return out
}

// firstDiffLine returns the 1-based number of the first line where the two
// documents differ.
func firstDiffLine(a, b string) int {
	al := strings.Split(a, "\n")
	bl := strings.Split(b, "\n")
	for i := 0; i < len(al) && i < len(bl); i++ {
		if al[i] != bl[i] {
			return i + 1
		}
	}
	if len(al) < len(bl) {
		return len(al)
	}
	return len(bl)
}

// mapUnfenced applies fn to every line outside fenced code blocks. Fence
// delimiter lines and fenced content pass through untouched.
func mapUnfenced(content string, fn func(string) string) string {
	lines := strings.Split(content, "\n")
	inFence := false
	for i, line := range lines {
		if strings.HasPrefix(strings.TrimSpace(line), "```") {
			inFence = !inFence
			continue
		}
		if inFence {
			continue
		}
		lines[i] = fn(line)
	}
	return strings.Join(lines, "\n")
}

// eachUnfenced calls fn with the 0-based index of every line outside fenced
// code blocks. Used by the check predicates.
func eachUnfenced(content string, fn func(i int, line string)) {
	lines := strings.Split(content, "\n")
	inFence := false
	for i, line := range lines {
		if strings.HasPrefix(strings.TrimSpace(line), "```") {
			inFence = !inFence
			continue
		}
		if inFence {
			continue
		}
		fn(i, line)
	}
}

// frontmatterSpan returns the half-open line range [0, end) occupied by a
// leading frontmatter block, or (0, 0) when there is none. end includes the
// closing delimiter line.
func frontmatterSpan(lines []string) int {
	if len(lines) == 0 || lines[0] != "---" {
		return 0
	}
	for i := 1; i < len(lines); i++ {
		if strings.TrimSpace(lines[i]) == "---" {
			return i + 1
		}
	}
	return 0
}
