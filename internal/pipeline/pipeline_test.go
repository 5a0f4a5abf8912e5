// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package pipeline

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pdiddy/notion2obsidian/internal/catalog"
	"github.com/pdiddy/notion2obsidian/internal/logger"
	"github.com/pdiddy/notion2obsidian/pkg/types"
)

const (
	pageID = "1a2b3c4d5e6f7a8b9c0d1e2f3a4b5c6d"
	taskID = "0123456789abcdef0123456789abcdef"
	csvID  = "9f8e7d6c5b4a39281706f5e4d3c2b1a0"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

// buildExport lays out a small Notion export: a page with a nested
// database CSV, a child page, and an image asset.
func buildExport(t *testing.T) string {
	t.Helper()
	in := filepath.Join(t.TempDir(), "export")

	writeFile(t, filepath.Join(in, "Projects "+pageID+".md"), "# Projects\n\nOverview text\n")
	pageDir := filepath.Join(in, "Projects "+pageID)
	writeFile(t, filepath.Join(pageDir, "Tasks "+csvID+".csv"), "Name,Done (checkbox)\nAlpha,Yes\nBeta,No\n")
	writeFile(t, filepath.Join(pageDir, "Task one "+taskID+".md"), "#Task one\n\n-Do stuff\n")
	writeFile(t, filepath.Join(in, "diagram "+pageID+".png"), "not really a png")
	writeFile(t, filepath.Join(in, "readme.txt"), "ignored")
	return in
}

func runPipeline(t *testing.T, in, out string, cfg types.PipelineConfig) (*Result, string) {
	t.Helper()
	var status bytes.Buffer
	p := New(cfg, logger.Discard(), &status)
	res, err := p.Run(context.Background(), in, out)
	require.NoError(t, err)
	return res, status.String()
}

func TestRun(t *testing.T) {
	in := buildExport(t)
	out := filepath.Join(t.TempDir(), "vault")

	res, status := runPipeline(t, in, out, types.DefaultPipelineConfig())

	assert.Equal(t, 2, res.Converted)
	assert.Equal(t, 0, res.Skipped)
	assert.Equal(t, 0, res.Failed)
	assert.Equal(t, 1, res.Databases)
	assert.Equal(t, 2, res.Assets) // the image and the database CSV

	assert.Contains(t, status, "database  Tasks (2 rows)")
	assert.Contains(t, status, "converted Projects.md")

	// Converted documents carry synthesized frontmatter and normalized
	// Markdown under cleaned names.
	task, err := os.ReadFile(filepath.Join(out, "Projects", "Task one.md"))
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(string(task), "---\nsource: notion\ncreated: "))
	assert.Contains(t, string(task), "# Task one")
	assert.Contains(t, string(task), "- Do stuff")

	// The database became one note per row plus an index.
	dbDir := filepath.Join(out, "Projects", "Tasks_Database")
	assert.FileExists(t, filepath.Join(dbDir, "Alpha.md"))
	assert.FileExists(t, filepath.Join(dbDir, "Beta.md"))
	assert.FileExists(t, filepath.Join(dbDir, "Tasks_Index.md"))

	// Assets land in the attachments directory under cleaned names.
	assert.FileExists(t, filepath.Join(out, "attachments", "diagram.png"))
	assert.FileExists(t, filepath.Join(out, "attachments", "Tasks.csv"))

	// The page gained a Dataview section pointing at its database.
	page, err := os.ReadFile(filepath.Join(out, "Projects.md"))
	require.NoError(t, err)
	assert.Contains(t, string(page), "## Databases")
	assert.Contains(t, string(page), "### Tasks")
	assert.Contains(t, string(page), `FROM "Projects/Tasks_Database"`)
	assert.Contains(t, string(page), "*[View full database](Projects/Tasks_Database/Tasks_Index.md)*")

	// Row notes sit inside a database folder, so they never get a
	// Databases section of their own.
	alpha, err := os.ReadFile(filepath.Join(dbDir, "Alpha.md"))
	require.NoError(t, err)
	assert.NotContains(t, string(alpha), "## Databases")
}

func TestRunUpdatesCatalog(t *testing.T) {
	in := buildExport(t)
	out := filepath.Join(t.TempDir(), "vault")

	runPipeline(t, in, out, types.DefaultPipelineConfig())

	store, err := catalog.Open(out, types.CatalogConfig{})
	require.NoError(t, err)
	defer store.Close()

	notes, err := store.List(context.Background())
	require.NoError(t, err)

	names := make([]string, len(notes))
	for i, n := range notes {
		names[i] = n.Name
	}
	assert.ElementsMatch(t, []string{"Alpha", "Beta", "Projects", "Task one", "Tasks_Index"}, names)
}

func TestRunIncremental(t *testing.T) {
	in := buildExport(t)
	out := filepath.Join(t.TempDir(), "vault")
	cfg := types.DefaultPipelineConfig()
	cfg.Convert.UpdateCatalog = false

	first, _ := runPipeline(t, in, out, cfg)
	require.Equal(t, 2, first.Converted)

	second, _ := runPipeline(t, in, out, cfg)
	assert.Equal(t, 0, second.Converted)
	assert.Equal(t, 4, second.Skipped) // two documents, two assets
	assert.Equal(t, 1, second.Databases)

	// The Databases section is appended once, not on every run, and the
	// rebuilt database folder holds no stale duplicates.
	page, err := os.ReadFile(filepath.Join(out, "Projects.md"))
	require.NoError(t, err)
	assert.Equal(t, 1, strings.Count(string(page), "## Databases"))
	assert.NoFileExists(t, filepath.Join(out, "Projects", "Tasks_Database", "Alpha_1.md"))
}

func TestRunNoLint(t *testing.T) {
	in := filepath.Join(t.TempDir(), "export")
	writeFile(t, filepath.Join(in, "Note "+pageID+".md"), "# Note\n\ntext   with   runs\n")
	out := filepath.Join(t.TempDir(), "vault")
	cfg := types.DefaultPipelineConfig()
	cfg.Convert.LintOutput = false
	cfg.Convert.UpdateCatalog = false

	res, _ := runPipeline(t, in, out, cfg)
	require.Equal(t, 1, res.Converted)

	note, err := os.ReadFile(filepath.Join(out, "Note.md"))
	require.NoError(t, err)
	assert.Contains(t, string(note), "text   with   runs")
}

func TestRunMissingInput(t *testing.T) {
	p := New(types.DefaultPipelineConfig(), logger.Discard(), &bytes.Buffer{})
	_, err := p.Run(context.Background(), filepath.Join(t.TempDir(), "absent"), t.TempDir())
	assert.Error(t, err)
}
