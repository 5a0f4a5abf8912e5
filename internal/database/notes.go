// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package database

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/notion2obsidian/internal/convert"
	"github.com/pdiddy/notion2obsidian/internal/resolve"
)

// titleKeys are tried in order when picking a note's title and file name
// from a row.
var titleKeys = []string{"name", "title", "page", "item"}

// Result summarizes one database conversion.
type Result struct {
	CSVFile   string
	Rows      int
	Files     []string
	IndexFile string
}

// ConvertFolder renders a Notion database to one note per row plus a
// Dataview index file.
func ConvertFolder(dbPath, outDir string) (*Result, error) {
	csvFile, err := FindCSV(dbPath)
	if err != nil {
		return nil, err
	}
	f, err := os.Open(csvFile)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", csvFile, err)
	}
	defer f.Close()

	rows, headers, err := ParseCSV(f)
	if err != nil {
		return nil, fmt.Errorf("parse %s: %w", csvFile, err)
	}

	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return nil, fmt.Errorf("create output dir: %w", err)
	}

	res := &Result{CSVFile: csvFile, Rows: len(rows)}
	for i, row := range rows {
		path, err := writeNote(row, headers, outDir, i)
		if err != nil {
			return nil, err
		}
		res.Files = append(res.Files, path)
	}

	name := resolve.CleanName(strings.TrimSuffix(filepath.Base(csvFile), filepath.Ext(csvFile)))
	res.IndexFile, err = writeIndex(name, headers, outDir)
	if err != nil {
		return nil, err
	}
	return res, nil
}

// writeNote renders one row as a note: typed frontmatter, a title heading,
// and a property table. Duplicate titles get a numeric suffix.
func writeNote(row Row, headers []Header, outDir string, index int) (string, error) {
	name := noteTitle(row, headers)
	if name == "" {
		name = fmt.Sprintf("item_%d", index+1)
	}
	name = resolve.Sanitize(name)

	path := filepath.Join(outDir, name+".md")
	for n := 1; ; n++ {
		if _, err := os.Stat(path); os.IsNotExist(err) {
			break
		}
		path = filepath.Join(outDir, fmt.Sprintf("%s_%d.md", name, n))
	}

	var b strings.Builder
	b.WriteString("---\n")
	// A "tags" column would collide with the injected tag list, so its
	// values are merged into it instead of emitted separately.
	tags := []string{"database-item"}
	for _, h := range headers {
		v := row[h.Key]
		if v == nil {
			continue
		}
		if h.Key == "tags" {
			if extra, ok := v.([]string); ok {
				tags = append(tags, extra...)
			} else {
				tags = append(tags, cellString(v))
			}
			continue
		}
		enc, err := yaml.Marshal(map[string]any{h.Key: v})
		if err != nil {
			continue
		}
		b.Write(enc)
	}
	b.WriteString("tags:\n")
	for _, tag := range tags {
		b.WriteString("  - " + tag + "\n")
	}
	b.WriteString("---\n\n")

	b.WriteString("# " + noteHeading(row, headers) + "\n\n")
	b.WriteString("## Properties\n\n")
	table := []string{"| Property | Value |", "| --- | --- |"}
	for _, h := range headers {
		if v := row[h.Key]; v != nil {
			table = append(table, "| "+h.Name+" | "+cellString(v)+" |")
		}
	}
	b.WriteString(strings.Join(convert.FormatTable(table), "\n"))
	b.WriteString("\n\n## Notes\n\n*Add your notes here...*\n")

	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		return "", fmt.Errorf("write note: %w", err)
	}
	return path, nil
}

func noteTitle(row Row, headers []Header) string {
	for _, key := range titleKeys {
		if v, ok := row[key]; ok && v != nil {
			return cellString(v)
		}
	}
	// Fall back to the first non-empty cell in column order.
	for _, h := range headers {
		if s := cellString(row[h.Key]); s != "" {
			return s
		}
	}
	return ""
}

func noteHeading(row Row, headers []Header) string {
	if t := noteTitle(row, headers); t != "" {
		return t
	}
	return "Untitled"
}

// cellString renders a typed value for table cells and titles.
func cellString(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case bool:
		if x {
			return "✓"
		}
		return "✗"
	case []string:
		return strings.Join(x, ", ")
	default:
		return fmt.Sprint(x)
	}
}

// writeIndex renders the `<name>_Index.md` file with Dataview queries over
// the converted notes.
func writeIndex(name string, headers []Header, outDir string) (string, error) {
	folder := filepath.Base(outDir)

	var display []string
	for _, h := range headers {
		if h.Key == "name" || h.Key == "title" {
			continue
		}
		display = append(display, fmt.Sprintf("%s as %q", h.Key, h.Name))
		if len(display) == 5 {
			break
		}
	}

	var b strings.Builder
	fmt.Fprintf(&b, "# %s Database\n\n", name)
	b.WriteString("*Converted from Notion database*\n\n")

	b.WriteString("## All Items\n\n")
	b.WriteString("```dataview\n")
	b.WriteString("TABLE " + strings.Join(display, ", ") + "\n")
	fmt.Fprintf(&b, "FROM %q\n", folder)
	b.WriteString("WHERE contains(tags, \"database-item\")\n")
	b.WriteString("SORT file.name ASC\n")
	b.WriteString("```\n\n")

	for _, h := range headers {
		if h.Type != "checkbox" {
			continue
		}
		fmt.Fprintf(&b, "## %s = Yes\n\n", h.Name)
		b.WriteString("```dataview\n")
		b.WriteString("TABLE " + strings.Join(display, ", ") + "\n")
		fmt.Fprintf(&b, "FROM %q\n", folder)
		fmt.Fprintf(&b, "WHERE %s = true\n", h.Key)
		b.WriteString("```\n\n")
	}

	for _, h := range headers {
		if h.Type != "date" && !strings.Contains(h.Type, "time") {
			continue
		}
		fmt.Fprintf(&b, "## Timeline by %s\n\n", h.Name)
		b.WriteString("```dataview\n")
		fmt.Fprintf(&b, "TABLE %s as \"Date\"\n", h.Key)
		fmt.Fprintf(&b, "FROM %q\n", folder)
		fmt.Fprintf(&b, "WHERE %s\nSORT %s DESC\n", h.Key, h.Key)
		b.WriteString("```\n\n")
		break
	}

	b.WriteString("## Available Properties\n\n")
	for _, h := range headers {
		fmt.Fprintf(&b, "- **%s** (`%s`) - %s\n", h.Name, h.Key, h.Type)
	}

	path := filepath.Join(outDir, name+"_Index.md")
	if err := os.WriteFile(path, []byte(b.String()), 0o644); err != nil {
		return "", fmt.Errorf("write index: %w", err)
	}
	return path, nil
}

// InlineTable renders the whole database as one padded Markdown table.
func InlineTable(rows []Row, headers []Header) string {
	if len(rows) == 0 || len(headers) == 0 {
		return ""
	}

	names := make([]string, len(headers))
	dashes := make([]string, len(headers))
	for i, h := range headers {
		names[i] = h.Name
		dashes[i] = "---"
	}
	lines := []string{
		"| " + strings.Join(names, " | ") + " |",
		"| " + strings.Join(dashes, " | ") + " |",
	}
	for _, row := range rows {
		cells := make([]string, len(headers))
		for i, h := range headers {
			cells[i] = cellString(row[h.Key])
		}
		lines = append(lines, "| "+strings.Join(cells, " | ")+" |")
	}
	return strings.Join(convert.FormatTable(lines), "\n") + "\n"
}
