// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package catalog maintains a SQLite index of the vault's converted notes.
// The index lives inside the vault at .notion2obsidian/catalog.db and is
// strictly derived data: deleting it and re-running the indexer rebuilds it
// from the notes on disk.
package catalog

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/adrg/frontmatter"
	_ "github.com/mattn/go-sqlite3"
	"go.yaml.in/yaml/v3"

	"github.com/pdiddy/notion2obsidian/internal/convert"
	"github.com/pdiddy/notion2obsidian/pkg/types"
)

const (
	catalogDir = ".notion2obsidian"
	dbFile     = "catalog.db"
)

// Store manages the vault catalog database.
type Store struct {
	db         *sql.DB
	vaultDir   string
	maxResults int
}

// Open opens or creates the catalog database inside the vault, creating
// the schema on first use.
func Open(vaultDir string, cfg types.CatalogConfig) (*Store, error) {
	dir := filepath.Join(vaultDir, catalogDir)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating catalog directory: %w", err)
	}

	dbPath := filepath.Join(dir, dbFile)
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_foreign_keys=on")
	if err != nil {
		return nil, fmt.Errorf("opening catalog database: %w", err)
	}

	maxResults := cfg.MaxResults
	if maxResults <= 0 {
		maxResults = 20
	}

	s := &Store{db: db, vaultDir: vaultDir, maxResults: maxResults}
	if err := s.createSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating schema: %w", err)
	}
	return s, nil
}

// Close releases the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) createSchema() error {
	statements := []string{
		`CREATE TABLE IF NOT EXISTS notes (
			rowid INTEGER PRIMARY KEY AUTOINCREMENT,
			path TEXT NOT NULL UNIQUE,
			name TEXT NOT NULL,
			source TEXT,
			words INTEGER,
			created TEXT,
			mod_time TEXT,
			body TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_notes_name ON notes(name)`,
	}
	for _, stmt := range statements {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("executing schema statement: %w", err)
		}
	}

	// FTS5 virtual table with triggers for sync.
	var ftsExists int
	if err := s.db.QueryRow(
		`SELECT count(*) FROM sqlite_master WHERE type='table' AND name='notes_fts'`,
	).Scan(&ftsExists); err != nil {
		return fmt.Errorf("checking FTS table: %w", err)
	}

	if ftsExists == 0 {
		ftsStatements := []string{
			`CREATE VIRTUAL TABLE notes_fts USING fts5(name, body, content=notes, content_rowid=rowid)`,
			`CREATE TRIGGER notes_ai AFTER INSERT ON notes BEGIN
				INSERT INTO notes_fts(rowid, name, body) VALUES (new.rowid, new.name, new.body);
			END`,
			`CREATE TRIGGER notes_ad AFTER DELETE ON notes BEGIN
				INSERT INTO notes_fts(notes_fts, rowid, name, body) VALUES('delete', old.rowid, old.name, old.body);
			END`,
			`CREATE TRIGGER notes_au AFTER UPDATE ON notes BEGIN
				INSERT INTO notes_fts(notes_fts, rowid, name, body) VALUES('delete', old.rowid, old.name, old.body);
				INSERT INTO notes_fts(rowid, name, body) VALUES (new.rowid, new.name, new.body);
			END`,
		}
		for _, stmt := range ftsStatements {
			if _, err := s.db.Exec(stmt); err != nil {
				return fmt.Errorf("creating FTS infrastructure: %w", err)
			}
		}
	}
	return nil
}

// Upsert records one note, replacing any earlier record at the same path.
func (s *Store) Upsert(ctx context.Context, note types.Note, body string) error {
	_, err := s.db.ExecContext(ctx,
		`INSERT INTO notes (path, name, source, words, created, mod_time, body)
		 VALUES (?, ?, ?, ?, ?, ?, ?)
		 ON CONFLICT(path) DO UPDATE SET
			name=excluded.name, source=excluded.source, words=excluded.words,
			created=excluded.created, mod_time=excluded.mod_time, body=excluded.body`,
		note.Path, note.Name, note.Source, note.Words, note.Created, "", body,
	)
	if err != nil {
		return fmt.Errorf("upserting note %s: %w", note.Path, err)
	}
	return nil
}

// IngestSummary holds counts from a catalog indexing run.
type IngestSummary struct {
	Indexed int
	Updated int
	Skipped int
	Failed  int
}

// Total returns the number of notes processed.
func (s IngestSummary) Total() int {
	return s.Indexed + s.Updated + s.Skipped + s.Failed
}

// Ingest walks the vault and indexes every Markdown note, using file
// modification times to skip unchanged notes on repeat runs. Per-note
// failures are reported to w and never abort the walk.
func (s *Store) Ingest(ctx context.Context, w io.Writer) (IngestSummary, error) {
	var summary IngestSummary

	err := filepath.WalkDir(s.vaultDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			if d.Name() == catalogDir {
				return filepath.SkipDir
			}
			return nil
		}
		if !strings.EqualFold(filepath.Ext(path), ".md") {
			return nil
		}
		if err := ctx.Err(); err != nil {
			return err
		}

		rel, err := filepath.Rel(s.vaultDir, path)
		if err != nil {
			rel = path
		}

		info, err := d.Info()
		if err != nil {
			fmt.Fprintf(w, "failed  %s: %v\n", rel, err)
			summary.Failed++
			return nil
		}
		modTime := info.ModTime().UTC().Format(time.RFC3339Nano)

		var storedModTime string
		scanErr := s.db.QueryRowContext(ctx,
			`SELECT mod_time FROM notes WHERE path = ?`, rel,
		).Scan(&storedModTime)
		if scanErr == nil && storedModTime == modTime {
			summary.Skipped++
			return nil
		}
		isUpdate := scanErr == nil

		note, body, err := readNote(path, rel, info)
		if err != nil {
			fmt.Fprintf(w, "failed  %s: %v\n", rel, err)
			summary.Failed++
			return nil
		}

		_, err = s.db.ExecContext(ctx,
			`INSERT INTO notes (path, name, source, words, created, mod_time, body)
			 VALUES (?, ?, ?, ?, ?, ?, ?)
			 ON CONFLICT(path) DO UPDATE SET
				name=excluded.name, source=excluded.source, words=excluded.words,
				created=excluded.created, mod_time=excluded.mod_time, body=excluded.body`,
			note.Path, note.Name, note.Source, note.Words, note.Created, modTime, body,
		)
		if err != nil {
			fmt.Fprintf(w, "failed  %s: %v\n", rel, err)
			summary.Failed++
			return nil
		}

		if isUpdate {
			summary.Updated++
		} else {
			summary.Indexed++
		}
		return nil
	})
	if err != nil {
		return summary, fmt.Errorf("walking vault: %w", err)
	}

	fmt.Fprintf(w, "indexed: %d, updated: %d, skipped: %d, failed: %d\n",
		summary.Indexed, summary.Updated, summary.Skipped, summary.Failed)
	return summary, nil
}

// readNote builds a catalog record from a note file. Frontmatter supplies
// the source and created fields when present.
func readNote(path, rel string, info fs.FileInfo) (types.Note, string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return types.Note{}, "", err
	}

	var meta struct {
		Source  string `yaml:"source"`
		Created string `yaml:"created"`
	}
	body := string(data)
	if rest, err := frontmatter.Parse(strings.NewReader(body), &meta); err == nil {
		body = string(rest)
	}
	if meta.Created == "" {
		meta.Created = info.ModTime().Format("2006-01-02")
	}

	name := strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
	return types.Note{
		Name:    name,
		Path:    rel,
		Source:  meta.Source,
		Words:   convert.WordCount(string(data)),
		Created: meta.Created,
	}, body, nil
}

// List returns every cataloged note ordered by name.
func (s *Store) List(ctx context.Context) ([]types.Note, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT path, name, source, words, created FROM notes ORDER BY name, path`)
	if err != nil {
		return nil, fmt.Errorf("listing notes: %w", err)
	}
	defer rows.Close()
	return scanNotes(rows)
}

// Search runs an FTS5 full-text query over note names and bodies, ranked
// by relevance.
func (s *Store) Search(ctx context.Context, query string) ([]types.Note, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT n.path, n.name, n.source, n.words, n.created
		 FROM notes_fts
		 JOIN notes n ON n.rowid = notes_fts.rowid
		 WHERE notes_fts MATCH ?
		 ORDER BY notes_fts.rank
		 LIMIT ?`,
		query, s.maxResults)
	if err != nil {
		return nil, fmt.Errorf("searching catalog: %w", err)
	}
	defer rows.Close()
	return scanNotes(rows)
}

func scanNotes(rows *sql.Rows) ([]types.Note, error) {
	var notes []types.Note
	for rows.Next() {
		var (
			n       types.Note
			source  sql.NullString
			created sql.NullString
		)
		if err := rows.Scan(&n.Path, &n.Name, &source, &n.Words, &created); err != nil {
			return nil, fmt.Errorf("scanning note: %w", err)
		}
		n.Source = source.String
		n.Created = created.String
		notes = append(notes, n)
	}
	return notes, rows.Err()
}

// ExportYAML writes the full catalog as YAML.
func (s *Store) ExportYAML(ctx context.Context, w io.Writer) error {
	notes, err := s.List(ctx)
	if err != nil {
		return err
	}
	data, err := yaml.Marshal(notes)
	if err != nil {
		return fmt.Errorf("marshaling YAML: %w", err)
	}
	_, err = w.Write(data)
	return err
}
