// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package database

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleCSV = `Name,Done (checkbox),Labels (multi_select),Due (date),Score (number)
Write report,Yes,"work, urgent",2024-01-15,42
Write report,No,,"March 5, 2024",3.5
,,,,
`

func TestParseCSV(t *testing.T) {
	rows, headers, err := ParseCSV(strings.NewReader(sampleCSV))
	require.NoError(t, err)
	require.Len(t, headers, 5)
	require.Len(t, rows, 3)

	assert.Equal(t, Header{Original: "Name", Name: "Name", Type: "text", Key: "name"}, headers[0])
	assert.Equal(t, "checkbox", headers[1].Type)
	assert.Equal(t, "done", headers[1].Key)
	assert.Equal(t, "labels", headers[2].Key)

	assert.Equal(t, "Write report", rows[0]["name"])
	assert.Equal(t, true, rows[0]["done"])
	assert.Equal(t, false, rows[1]["done"])
	assert.Equal(t, []string{"work", "urgent"}, rows[0]["labels"])
	assert.Nil(t, rows[1]["labels"])
	assert.Equal(t, "2024-01-15", rows[0]["due"])
	assert.Equal(t, "2024-03-05", rows[1]["due"])
	assert.Equal(t, 42, rows[0]["score"])
	assert.Equal(t, 3.5, rows[1]["score"])
	assert.Nil(t, rows[2]["name"])
}

func TestSanitizeKey(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Name", "name"},
		{"Due Date", "due_date"},
		{"Multi-Word Name", "multi_word_name"},
		{"What?!", "what"},
		{"  Spaced  ", "spaced"},
	}
	for _, tt := range tests {
		if got := sanitizeKey(tt.in); got != tt.want {
			t.Errorf("sanitizeKey(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestNormalizeDate(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"2024-01-15", "2024-01-15"},
		{"March 5, 2024", "2024-03-05"},
		{"15/01/2024", "2024-01-15"},
		{"2024/01/15", "2024-01-15"},
		{"2024-01-15T10:30:00", "2024-01-15"},
		{"not a date", "not a date"},
	}
	for _, tt := range tests {
		if got := normalizeDate(tt.in); got != tt.want {
			t.Errorf("normalizeDate(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestFindCSV(t *testing.T) {
	tmp := t.TempDir()
	csvPath := filepath.Join(tmp, "Tasks.csv")
	require.NoError(t, os.WriteFile(csvPath, []byte(sampleCSV), 0o644))

	got, err := FindCSV(csvPath)
	require.NoError(t, err)
	assert.Equal(t, csvPath, got)

	got, err = FindCSV(tmp)
	require.NoError(t, err)
	assert.Equal(t, csvPath, got)

	_, err = FindCSV(filepath.Join(tmp, "missing"))
	assert.Error(t, err)

	empty := t.TempDir()
	_, err = FindCSV(empty)
	assert.Error(t, err)
}

func TestConvertFolder(t *testing.T) {
	tmp := t.TempDir()
	dbDir := filepath.Join(tmp, "export")
	require.NoError(t, os.MkdirAll(dbDir, 0o755))
	require.NoError(t, os.WriteFile(
		filepath.Join(dbDir, "Tasks 8a7b3c4d5e6f7a8b9c0d1e2f3a4b5c6d.csv"),
		[]byte(sampleCSV), 0o644))

	outDir := filepath.Join(tmp, "vault", "Tasks")
	res, err := ConvertFolder(dbDir, outDir)
	require.NoError(t, err)
	assert.Equal(t, 3, res.Rows)
	require.Len(t, res.Files, 3)

	// Duplicate titles get numeric suffixes.
	assert.Equal(t, filepath.Join(outDir, "Write report.md"), res.Files[0])
	assert.Equal(t, filepath.Join(outDir, "Write report_1.md"), res.Files[1])

	data, err := os.ReadFile(res.Files[0])
	require.NoError(t, err)
	content := string(data)
	assert.True(t, strings.HasPrefix(content, "---\n"))
	assert.Contains(t, content, "done: true")
	assert.Contains(t, content, "score: 42")
	assert.Contains(t, content, "tags:\n  - database-item")
	assert.Contains(t, content, "# Write report")
	assert.Contains(t, content, "## Properties")
	assert.Contains(t, content, "## Notes")

	// Index name comes from the cleaned CSV stem.
	assert.Equal(t, filepath.Join(outDir, "Tasks_Index.md"), res.IndexFile)
	data, err = os.ReadFile(res.IndexFile)
	require.NoError(t, err)
	index := string(data)
	assert.Contains(t, index, "# Tasks Database")
	assert.Contains(t, index, "```dataview")
	assert.Contains(t, index, `FROM "Tasks"`)
	assert.Contains(t, index, "WHERE done = true")
}

func TestInlineTable(t *testing.T) {
	rows, headers, err := ParseCSV(strings.NewReader(sampleCSV))
	require.NoError(t, err)

	table := InlineTable(rows[:2], headers)
	lines := strings.Split(strings.TrimSuffix(table, "\n"), "\n")
	require.Len(t, lines, 4)
	assert.Contains(t, lines[0], "| Name")
	assert.Contains(t, lines[2], "Write report")
	assert.Contains(t, lines[2], "✓")
	assert.Contains(t, lines[3], "✗")

	assert.Empty(t, InlineTable(nil, headers))
}
