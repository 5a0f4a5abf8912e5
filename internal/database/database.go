// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package database converts Notion database exports (CSV files) into
// Obsidian notes with Dataview-queryable frontmatter.
package database

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"sort"
	"strconv"
	"strings"
	"time"
)

// Header describes one database property parsed from a CSV column name.
// Notion exports columns as "Name" or "Name (type)".
type Header struct {
	// Original is the raw CSV column name.
	Original string

	// Name is the property name without the type annotation.
	Name string

	// Type is the lowercased Notion property type, "text" when absent.
	Type string

	// Key is the YAML-safe frontmatter key derived from Name.
	Key string
}

// Row holds one database record keyed by Header.Key. Values are typed:
// string, int, float64, bool, []string, or nil for empty cells.
type Row map[string]any

var headerRe = regexp.MustCompile(`^(.+?)\s*(?:\((.+?)\))?$`)

// FindCSV locates the CSV file for a database reference: the path itself
// when it names a CSV file, otherwise the first CSV inside the directory.
func FindCSV(path string) (string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return "", fmt.Errorf("stat database path: %w", err)
	}
	if !info.IsDir() {
		if strings.EqualFold(filepath.Ext(path), ".csv") {
			return path, nil
		}
		return "", fmt.Errorf("%s is not a CSV file", path)
	}

	matches, err := filepath.Glob(filepath.Join(path, "*.csv"))
	if err != nil {
		return "", fmt.Errorf("scan database folder: %w", err)
	}
	if len(matches) == 0 {
		return "", fmt.Errorf("no CSV file found in %s", path)
	}
	sort.Strings(matches)
	return matches[0], nil
}

// ParseCSV reads a Notion database export. The first record is the header
// row; every following record becomes one typed Row.
func ParseCSV(r io.Reader) ([]Row, []Header, error) {
	reader := csv.NewReader(r)
	reader.FieldsPerRecord = -1

	records, err := reader.ReadAll()
	if err != nil {
		return nil, nil, fmt.Errorf("read CSV: %w", err)
	}
	if len(records) == 0 {
		return nil, nil, fmt.Errorf("empty CSV")
	}

	headers := make([]Header, 0, len(records[0]))
	for _, raw := range records[0] {
		headers = append(headers, parseHeader(raw))
	}

	rows := make([]Row, 0, len(records)-1)
	for _, record := range records[1:] {
		row := Row{}
		for i, h := range headers {
			var cell string
			if i < len(record) {
				cell = record[i]
			}
			row[h.Key] = convertValue(cell, h.Type)
		}
		rows = append(rows, row)
	}
	return rows, headers, nil
}

func parseHeader(raw string) Header {
	m := headerRe.FindStringSubmatch(strings.TrimSpace(raw))
	name := strings.TrimSpace(raw)
	typ := "text"
	if m != nil {
		name = strings.TrimSpace(m[1])
		if m[2] != "" {
			typ = strings.ToLower(strings.TrimSpace(m[2]))
		}
	}
	return Header{Original: raw, Name: name, Type: typ, Key: sanitizeKey(name)}
}

var (
	keyStripRe    = regexp.MustCompile(`[^\w\s-]`)
	keyCollapseRe = regexp.MustCompile(`[-\s]+`)
)

// sanitizeKey turns a property name into a frontmatter key: lowercased,
// punctuation dropped, word runs joined with underscores.
func sanitizeKey(name string) string {
	key := strings.ToLower(name)
	key = keyStripRe.ReplaceAllString(key, "")
	key = keyCollapseRe.ReplaceAllString(key, "_")
	return strings.Trim(key, "_")
}

// convertValue maps a CSV cell to its typed value based on the column's
// Notion property type. Unparsable numbers and dates fall back to the raw
// string rather than failing the row.
func convertValue(value, propType string) any {
	value = strings.TrimSpace(value)
	if value == "" {
		return nil
	}

	switch {
	case propType == "checkbox":
		switch strings.ToLower(value) {
		case "yes", "true", "checked", "☑", "✓":
			return true
		default:
			return false
		}
	case propType == "multi_select" || propType == "multi-select" || propType == "relation":
		var items []string
		for _, item := range strings.Split(value, ",") {
			if item = strings.TrimSpace(item); item != "" {
				items = append(items, item)
			}
		}
		return items
	case propType == "number":
		if !strings.Contains(value, ".") {
			if n, err := strconv.Atoi(value); err == nil {
				return n
			}
			return value
		}
		if f, err := strconv.ParseFloat(value, 64); err == nil {
			return f
		}
		return value
	case propType == "date" || strings.Contains(propType, "time"):
		return normalizeDate(value)
	}
	return value
}

// dateLayouts are tried in order; the first parse wins.
var dateLayouts = []string{
	"2006-01-02",
	"January 2, 2006",
	"02/01/2006",
	"01/02/2006",
	"2006/01/02",
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

// normalizeDate rewrites a date to YYYY-MM-DD, returning the input
// unchanged when no known layout matches.
func normalizeDate(value string) string {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, strings.TrimSpace(value)); err == nil {
			return t.Format("2006-01-02")
		}
	}
	return value
}
