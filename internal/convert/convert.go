// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package convert rewrites documents exported from Notion into Obsidian
// Markdown. The converter classifies each line, then runs a fixed sequence
// of block rewriters (headings, lists, tables, callouts, toggles, links,
// emphasis) over the document. Content inside fenced code blocks is never
// rewritten. A single line's anomaly never aborts a document: malformed
// structures are repaired locally (padding, clamping) or passed through.
package convert

import (
	"fmt"
	"regexp"
	"strings"
	"time"
	"unicode/utf8"
)

// Stage is one rewriting pass over a document's lines. Callers can append
// custom stages to the built-in sequence via WithStage.
type Stage func([]string) []string

// Converter transforms one document at a time. It is stateless between
// documents; the per-document conversion state lives on the stack of
// Convert, so a Converter may be shared by concurrent workers.
type Converter struct {
	created string
	stages  []Stage
}

// Option configures a Converter.
type Option func(*Converter)

// WithCreated sets the date (YYYY-MM-DD) stamped into the synthesized
// frontmatter. The pipeline passes each source file's modification date;
// the default is today.
func WithCreated(date string) Option {
	return func(c *Converter) { c.created = date }
}

// WithStage appends a custom rewriting stage after the built-in ones.
func WithStage(s Stage) Option {
	return func(c *Converter) { c.stages = append(c.stages, s) }
}

// New returns a Converter with the built-in stage sequence.
func New(opts ...Option) *Converter {
	c := &Converter{created: time.Now().Format("2006-01-02")}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// Convert rewrites one document and prepends the synthesized frontmatter.
// The only document-level failure is undecodable input; structural
// anomalies degrade to best-effort local repair.
func (c *Converter) Convert(content string) (string, error) {
	if !utf8.ValidString(content) {
		return "", fmt.Errorf("document is not valid UTF-8")
	}
	content = strings.ReplaceAll(content, "\r\n", "\n")
	content = strings.ReplaceAll(content, "\r", "\n")

	meta, body := extractFrontmatter(content)
	lines := strings.Split(body, "\n")

	lines = convertHeadings(lines)
	lines = convertLists(lines)
	lines = convertTables(lines)
	lines = convertCallouts(lines)
	lines = convertToggles(lines)
	lines = convertLinks(lines)
	lines = normalizeEmphasis(lines)
	lines = padFences(lines)
	lines = decodeEntities(lines)
	for _, s := range c.stages {
		lines = s(lines)
	}

	return synthesizeFrontmatter(meta, c.created) + strings.Join(lines, "\n"), nil
}

var (
	fencedBlockRe = regexp.MustCompile("(?s)```.*?```")
	inlineCodeRe  = regexp.MustCompile("`[^`]+`")
	linkTextRe    = regexp.MustCompile(`\[([^\]]+)\]\([^)]+\)`)
	mdMarkRe      = regexp.MustCompile("[#*_~`]")
)

// WordCount counts the words of a document's prose: frontmatter, code
// blocks, and inline code are excluded, link targets are dropped but link
// text kept, and markup characters are ignored.
func WordCount(content string) int {
	if strings.HasPrefix(content, "---") {
		if _, body := extractFrontmatter(content); body != content {
			content = body
		}
	}
	content = fencedBlockRe.ReplaceAllString(content, "")
	content = inlineCodeRe.ReplaceAllString(content, "")
	content = linkTextRe.ReplaceAllString(content, "$1")
	content = mdMarkRe.ReplaceAllString(content, "")
	return len(strings.Fields(content))
}
