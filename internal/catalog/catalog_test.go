// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package catalog

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/pdiddy/notion2obsidian/pkg/types"
)

func testSetup(t *testing.T) (*Store, string) {
	t.Helper()
	vault := t.TempDir()
	store, err := Open(vault, types.CatalogConfig{MaxResults: 20})
	if err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() { store.Close() })
	return store, vault
}

func writeVaultNote(t *testing.T, vault, name, content string) string {
	t.Helper()
	path := filepath.Join(vault, name)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestUpsertAndList(t *testing.T) {
	store, _ := testSetup(t)
	ctx := context.Background()

	notes := []types.Note{
		{Name: "Beta", Path: "Beta.md", Source: "notion", Words: 10, Created: "2024-01-01"},
		{Name: "Alpha", Path: "Alpha.md", Source: "notion", Words: 5, Created: "2024-02-01"},
	}
	for _, n := range notes {
		if err := store.Upsert(ctx, n, "body for "+n.Name); err != nil {
			t.Fatal(err)
		}
	}

	got, err := store.List(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 {
		t.Fatalf("List returned %d notes, want 2", len(got))
	}
	if got[0].Name != "Alpha" || got[1].Name != "Beta" {
		t.Errorf("List order = %s, %s; want Alpha, Beta", got[0].Name, got[1].Name)
	}
	if got[0].Words != 5 || got[0].Created != "2024-02-01" {
		t.Errorf("note fields not persisted: %+v", got[0])
	}
}

func TestUpsertReplaces(t *testing.T) {
	store, _ := testSetup(t)
	ctx := context.Background()

	n := types.Note{Name: "Page", Path: "Page.md", Words: 1}
	if err := store.Upsert(ctx, n, "first"); err != nil {
		t.Fatal(err)
	}
	n.Words = 99
	if err := store.Upsert(ctx, n, "second"); err != nil {
		t.Fatal(err)
	}

	got, err := store.List(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0].Words != 99 {
		t.Errorf("upsert did not replace: %+v", got)
	}
}

func TestSearch(t *testing.T) {
	store, _ := testSetup(t)
	ctx := context.Background()

	if err := store.Upsert(ctx,
		types.Note{Name: "Groceries", Path: "Groceries.md"},
		"buy milk and eggs"); err != nil {
		t.Fatal(err)
	}
	if err := store.Upsert(ctx,
		types.Note{Name: "Projects", Path: "Projects.md"},
		"ship the converter"); err != nil {
		t.Fatal(err)
	}

	got, err := store.Search(ctx, "milk")
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0].Name != "Groceries" {
		t.Errorf("Search(milk) = %+v, want Groceries", got)
	}

	// Name matches rank too.
	got, err = store.Search(ctx, "Projects")
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0].Name != "Projects" {
		t.Errorf("Search(Projects) = %+v, want Projects", got)
	}

	got, err = store.Search(ctx, "nothing")
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 0 {
		t.Errorf("Search(nothing) = %+v, want empty", got)
	}
}

func TestIngest(t *testing.T) {
	store, vault := testSetup(t)
	ctx := context.Background()

	writeVaultNote(t, vault, "First.md",
		"---\nsource: notion\ncreated: 2024-03-01\n---\n\nhello world\n")
	writeVaultNote(t, vault, "sub/Second.md", "just a note\n")
	writeVaultNote(t, vault, "ignore.txt", "not markdown")

	summary, err := store.Ingest(ctx, io.Discard)
	if err != nil {
		t.Fatal(err)
	}
	if summary.Indexed != 2 || summary.Failed != 0 {
		t.Fatalf("first ingest summary = %+v", summary)
	}

	notes, err := store.List(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if len(notes) != 2 {
		t.Fatalf("List returned %d notes, want 2", len(notes))
	}
	byName := map[string]types.Note{}
	for _, n := range notes {
		byName[n.Name] = n
	}
	if n := byName["First"]; n.Source != "notion" || n.Created != "2024-03-01" || n.Words != 2 {
		t.Errorf("First note fields = %+v", n)
	}
	if n := byName["Second"]; n.Path != filepath.Join("sub", "Second.md") {
		t.Errorf("Second note path = %q", n.Path)
	}

	// Unchanged files are skipped on the next run.
	summary, err = store.Ingest(ctx, io.Discard)
	if err != nil {
		t.Fatal(err)
	}
	if summary.Skipped != 2 || summary.Indexed != 0 {
		t.Fatalf("second ingest summary = %+v", summary)
	}

	// A touched file is re-indexed as an update.
	path := writeVaultNote(t, vault, "First.md",
		"---\nsource: notion\ncreated: 2024-03-01\n---\n\nhello brave new world\n")
	future := time.Now().Add(2 * time.Second)
	if err := os.Chtimes(path, future, future); err != nil {
		t.Fatal(err)
	}
	summary, err = store.Ingest(ctx, io.Discard)
	if err != nil {
		t.Fatal(err)
	}
	if summary.Updated != 1 || summary.Skipped != 1 {
		t.Fatalf("third ingest summary = %+v", summary)
	}
}

func TestExportYAML(t *testing.T) {
	store, _ := testSetup(t)
	ctx := context.Background()

	if err := store.Upsert(ctx,
		types.Note{Name: "Alpha", Path: "Alpha.md", Words: 3}, "one two three"); err != nil {
		t.Fatal(err)
	}

	var b strings.Builder
	if err := store.ExportYAML(ctx, &b); err != nil {
		t.Fatal(err)
	}
	out := b.String()
	if !strings.Contains(out, "name: Alpha") || !strings.Contains(out, "words: 3") {
		t.Errorf("export missing fields:\n%s", out)
	}
}
