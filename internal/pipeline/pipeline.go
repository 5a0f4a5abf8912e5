// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package pipeline drives a whole-export conversion: CSV databases first,
// then Markdown documents, then assets, then Dataview embeds, and finally
// the vault catalog. Per-file failures are counted and logged, never fatal;
// only a missing input directory or an unwritable vault aborts the run.
package pipeline

import (
	"context"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/pdiddy/notion2obsidian/internal/catalog"
	"github.com/pdiddy/notion2obsidian/internal/convert"
	"github.com/pdiddy/notion2obsidian/internal/database"
	"github.com/pdiddy/notion2obsidian/internal/lint"
	"github.com/pdiddy/notion2obsidian/internal/logger"
	"github.com/pdiddy/notion2obsidian/internal/resolve"
	"github.com/pdiddy/notion2obsidian/pkg/types"
)

// Result summarizes one pipeline run.
type Result struct {
	Converted int
	Skipped   int
	Failed    int
	Databases int
	Assets    int
}

// Pipeline converts one Notion export directory into an Obsidian vault.
type Pipeline struct {
	cfg types.PipelineConfig
	log *logger.Logger
	out io.Writer
}

// New builds a pipeline. Status lines go to out; structured logs go to log.
func New(cfg types.PipelineConfig, log *logger.Logger, out io.Writer) *Pipeline {
	return &Pipeline{cfg: cfg, log: log, out: out}
}

// Run executes every pass over the export at inputDir, writing the vault
// to outputDir.
func (p *Pipeline) Run(ctx context.Context, inputDir, outputDir string) (*Result, error) {
	if _, err := os.Stat(inputDir); err != nil {
		return nil, fmt.Errorf("input directory: %w", err)
	}
	if err := os.MkdirAll(outputDir, 0o755); err != nil {
		return nil, fmt.Errorf("creating output directory: %w", err)
	}

	p.log.ConversionStarted(inputDir, outputDir)
	start := time.Now()
	res := &Result{}

	if err := p.convertDatabases(ctx, inputDir, outputDir, res); err != nil {
		return res, err
	}

	mapping, err := p.buildFileMapping(inputDir, outputDir)
	if err != nil {
		return res, err
	}

	if err := p.convertFiles(ctx, mapping, res); err != nil {
		return res, err
	}

	if err := p.copyAssets(ctx, inputDir, outputDir, res); err != nil {
		return res, err
	}

	if err := p.embedDatabaseQueries(outputDir); err != nil {
		return res, err
	}

	if p.cfg.Convert.UpdateCatalog {
		p.updateCatalog(ctx, outputDir)
	}

	p.log.ConversionCompleted(res.Converted, res.Skipped, res.Failed, time.Since(start))
	fmt.Fprintf(p.out, "\nconverted: %d, skipped: %d, failed: %d, databases: %d, assets: %d\n",
		res.Converted, res.Skipped, res.Failed, res.Databases, res.Assets)
	return res, nil
}

// convertDatabases renders every CSV export into a `<Name>_Database`
// folder of notes next to where the CSV lived.
func (p *Pipeline) convertDatabases(ctx context.Context, inputDir, outputDir string, res *Result) error {
	var csvFiles []string
	err := filepath.WalkDir(inputDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.EqualFold(filepath.Ext(path), ".csv") {
			csvFiles = append(csvFiles, path)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("scanning for databases: %w", err)
	}
	sort.Strings(csvFiles)

	for _, csvFile := range csvFiles {
		if err := ctx.Err(); err != nil {
			return err
		}

		stem := strings.TrimSuffix(filepath.Base(csvFile), filepath.Ext(csvFile))
		name := resolve.CleanName(stem)

		var outDir string
		if dir := filepath.Dir(csvFile); dir != filepath.Clean(inputDir) {
			rel, err := filepath.Rel(inputDir, dir)
			if err != nil {
				rel = filepath.Base(dir)
			}
			outDir = filepath.Join(outputDir, cleanRelPath(rel), name+"_Database")
		} else {
			outDir = filepath.Join(outputDir, name+"_Database")
		}

		// Row notes get stat-based duplicate suffixes, so stale output
		// from a previous run has to go before reconverting.
		if err := os.RemoveAll(outDir); err != nil {
			p.log.FileError(csvFile, err)
			res.Failed++
			continue
		}

		dbRes, err := database.ConvertFolder(csvFile, outDir)
		if err != nil {
			p.log.FileError(csvFile, err)
			res.Failed++
			continue
		}
		p.log.DatabaseConverted(name, dbRes.Rows)
		fmt.Fprintf(p.out, "database  %s (%d rows)\n", name, dbRes.Rows)
		res.Databases++
	}
	return nil
}

// cleanRelPath strips identifier suffixes from every segment of a
// relative path so directory names line up with cleaned note names.
func cleanRelPath(rel string) string {
	if rel == "." || rel == "" {
		return ""
	}
	segments := strings.Split(filepath.ToSlash(rel), "/")
	for i, seg := range segments {
		segments[i] = resolve.CleanName(seg)
	}
	return filepath.Join(segments...)
}

// buildFileMapping maps every source Markdown file to its vault
// destination: identifier suffixes stripped from every path segment, the
// directory structure otherwise preserved. Name collisions after cleaning
// get numeric suffixes.
func (p *Pipeline) buildFileMapping(inputDir, outputDir string) (map[string]string, error) {
	var sources []string
	err := filepath.WalkDir(inputDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && strings.EqualFold(filepath.Ext(path), ".md") {
			sources = append(sources, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("scanning for documents: %w", err)
	}
	sort.Strings(sources)

	mapping := make(map[string]string, len(sources))
	used := make(map[string]bool, len(sources))
	for _, src := range sources {
		rel, err := filepath.Rel(inputDir, src)
		if err != nil {
			rel = filepath.Base(src)
		}

		dir := cleanRelPath(filepath.Dir(rel))
		stem := strings.TrimSuffix(filepath.Base(src), filepath.Ext(src))
		name := resolve.CleanName(stem)

		dest := filepath.Join(outputDir, dir, name+".md")
		for n := 1; used[dest]; n++ {
			dest = filepath.Join(outputDir, dir, fmt.Sprintf("%s_%d.md", name, n))
		}
		used[dest] = true
		mapping[src] = dest
	}
	return mapping, nil
}

// convertFiles runs the converter (and optionally the linter) over every
// mapped document. A destination newer than its source is skipped so
// re-runs only touch changed exports.
func (p *Pipeline) convertFiles(ctx context.Context, mapping map[string]string, res *Result) error {
	sources := make([]string, 0, len(mapping))
	for src := range mapping {
		sources = append(sources, src)
	}
	sort.Strings(sources)

	linter := lint.New(p.cfg.Lint)
	for _, src := range sources {
		if err := ctx.Err(); err != nil {
			return err
		}
		dest := mapping[src]

		srcInfo, err := os.Stat(src)
		if err != nil {
			p.log.FileError(src, err)
			res.Failed++
			continue
		}
		if destInfo, err := os.Stat(dest); err == nil && !destInfo.ModTime().Before(srcInfo.ModTime()) {
			res.Skipped++
			continue
		}

		data, err := os.ReadFile(src)
		if err != nil {
			p.log.FileError(src, err)
			res.Failed++
			continue
		}

		conv := convert.New(convert.WithCreated(srcInfo.ModTime().Format("2006-01-02")))
		out, err := conv.Convert(string(data))
		if err != nil {
			p.log.FileError(src, err)
			res.Failed++
			continue
		}
		if p.cfg.Convert.LintOutput {
			out = linter.Fix(out)
		}

		if err := os.MkdirAll(filepath.Dir(dest), 0o755); err != nil {
			p.log.FileError(src, err)
			res.Failed++
			continue
		}
		if err := os.WriteFile(dest, []byte(out), 0o644); err != nil {
			p.log.FileError(src, err)
			res.Failed++
			continue
		}

		p.log.FileConverted(src, dest, convert.WordCount(out))
		fmt.Fprintf(p.out, "converted %s\n", filepath.Base(dest))
		res.Converted++
	}
	return nil
}

// copyAssets gathers every asset file into the vault's attachments
// directory under its cleaned name. Duplicate names get numeric suffixes.
func (p *Pipeline) copyAssets(ctx context.Context, inputDir, outputDir string, res *Result) error {
	attachments := filepath.Join(outputDir, p.cfg.Convert.AttachmentsDir)

	var assets []string
	err := filepath.WalkDir(inputDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() && resolve.IsAsset(path) {
			assets = append(assets, path)
		}
		return nil
	})
	if err != nil {
		return fmt.Errorf("scanning for assets: %w", err)
	}
	sort.Strings(assets)
	if len(assets) == 0 {
		return nil
	}

	if err := os.MkdirAll(attachments, 0o755); err != nil {
		return fmt.Errorf("creating attachments directory: %w", err)
	}

	// Destinations are claimed in sorted source order so duplicate
	// suffixes come out the same on every run.
	used := make(map[string]bool, len(assets))
	for _, asset := range assets {
		if err := ctx.Err(); err != nil {
			return err
		}

		ext := filepath.Ext(asset)
		stem := strings.TrimSuffix(filepath.Base(asset), ext)
		name := resolve.CleanName(stem)

		dest := filepath.Join(attachments, name+ext)
		for n := 1; used[dest]; n++ {
			dest = filepath.Join(attachments, fmt.Sprintf("%s_%d%s", name, n, ext))
		}
		used[dest] = true

		srcInfo, err := os.Stat(asset)
		if err != nil {
			p.log.FileError(asset, err)
			res.Failed++
			continue
		}
		if destInfo, err := os.Stat(dest); err == nil && !destInfo.ModTime().Before(srcInfo.ModTime()) {
			res.Skipped++
			continue
		}

		if err := copyFile(asset, dest); err != nil {
			p.log.FileError(asset, err)
			res.Failed++
			continue
		}
		p.log.AssetCopied(asset, dest)
		res.Assets++
	}
	return nil
}

func copyFile(src, dest string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dest)
	if err != nil {
		return err
	}
	if _, err := io.Copy(out, in); err != nil {
		out.Close()
		return err
	}
	return out.Close()
}

// embedDatabaseQueries appends a Databases section to every page whose
// matching folder contains `_Database` note folders, so the page surfaces
// its databases through Dataview.
func (p *Pipeline) embedDatabaseQueries(outputDir string) error {
	var pages []string
	err := filepath.WalkDir(outputDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() || !strings.EqualFold(filepath.Ext(path), ".md") {
			return nil
		}
		if strings.HasSuffix(strings.TrimSuffix(filepath.Base(path), ".md"), "_Index") {
			return nil
		}
		if strings.Contains(path, "_Database") {
			return nil
		}
		pages = append(pages, path)
		return nil
	})
	if err != nil {
		return fmt.Errorf("scanning vault pages: %w", err)
	}

	for _, page := range pages {
		stem := strings.TrimSuffix(filepath.Base(page), ".md")
		folder := filepath.Join(filepath.Dir(page), stem)

		entries, err := os.ReadDir(folder)
		if err != nil {
			continue
		}
		var dbFolders []string
		for _, e := range entries {
			if e.IsDir() && strings.HasSuffix(e.Name(), "_Database") {
				dbFolders = append(dbFolders, e.Name())
			}
		}
		if len(dbFolders) == 0 {
			continue
		}
		sort.Strings(dbFolders)

		data, err := os.ReadFile(page)
		if err != nil {
			p.log.FileError(page, err)
			continue
		}
		if strings.Contains(string(data), "## Databases") {
			continue
		}

		var b strings.Builder
		b.WriteString(strings.TrimRight(string(data), "\n"))
		b.WriteString("\n\n---\n\n## Databases\n\n")
		b.WriteString("*This page contains the following databases:*\n\n")
		for _, dbFolder := range dbFolders {
			dbName := strings.TrimSuffix(dbFolder, "_Database")
			relPath := stem + "/" + dbFolder
			fmt.Fprintf(&b, "### %s\n\n", dbName)
			b.WriteString("```dataview\nLIST\n")
			fmt.Fprintf(&b, "FROM %q\n", relPath)
			b.WriteString("WHERE contains(tags, \"database-item\")\nSORT file.name ASC\n```\n\n")
			fmt.Fprintf(&b, "*[View full database](%s/%s_Index.md)*\n\n", relPath, dbName)
		}

		updated := strings.TrimRight(b.String(), "\n") + "\n"
		if err := os.WriteFile(page, []byte(updated), 0o644); err != nil {
			p.log.FileError(page, err)
		}
	}
	return nil
}

// updateCatalog re-indexes the vault. Catalog failures degrade to
// warnings, the converted vault is complete without it.
func (p *Pipeline) updateCatalog(ctx context.Context, outputDir string) {
	store, err := catalog.Open(outputDir, p.cfg.Catalog)
	if err != nil {
		p.log.CatalogError("open", err)
		return
	}
	defer store.Close()

	if _, err := store.Ingest(ctx, p.out); err != nil {
		p.log.CatalogError("ingest", err)
	}
}
