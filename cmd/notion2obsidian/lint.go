// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/notion2obsidian/internal/lint"
	"github.com/pdiddy/notion2obsidian/internal/styles"
	"github.com/pdiddy/notion2obsidian/internal/textdiff"
)

var lintCmd = &cobra.Command{
	Use:   "lint <files-or-dirs...>",
	Short: "Normalize Markdown formatting in vault documents",
	Long: `Lint applies the formatting rules to Markdown files in place:
heading and list-marker spacing, marker consistency, table alignment,
blank-line limits, trailing whitespace, and frontmatter layout. Applying
the rules twice never changes a document further.

With --check no files are written; files that would change are listed and
the command exits nonzero. With --validate each finding is reported with
its rule and line. --diff shows the pending changes as a unified diff.`,
	Args: cobra.MinimumNArgs(1),
	RunE: runLint,
}

func runLint(cmd *cobra.Command, args []string) error {
	check, _ := cmd.Flags().GetBool("check")
	validate, _ := cmd.Flags().GetBool("validate")
	showDiff, _ := cmd.Flags().GetBool("diff")

	files, err := collectMarkdown(args)
	if err != nil {
		return err
	}
	if len(files) == 0 {
		return fmt.Errorf("no markdown files found")
	}

	cfg := pipelineConfig()
	linter := lint.New(cfg.Lint)

	dirty := 0
	for _, file := range files {
		data, err := os.ReadFile(file)
		if err != nil {
			return err
		}
		content := string(data)

		if validate {
			findings := linter.Validate(content)
			if len(findings) == 0 {
				continue
			}
			dirty++
			for _, f := range findings {
				fmt.Printf("%s:%d: %s (%s)\n", file, f.Line, f.Message, f.Rule)
			}
			continue
		}

		fixed := linter.Fix(content)
		if fixed == content {
			continue
		}
		dirty++

		if showDiff {
			fmt.Print(textdiff.Unified(file, content, fixed))
			continue
		}
		if check {
			fmt.Println(styles.WarningStyle.Render("would reformat"), file)
			continue
		}
		if err := os.WriteFile(file, []byte(fixed), 0o644); err != nil {
			return err
		}
		fmt.Println(styles.SuccessStyle.Render("fixed"), file)
	}

	if dirty == 0 {
		fmt.Println(styles.SuccessStyle.Render("ok"), fmt.Sprintf("%d file(s) clean", len(files)))
		return nil
	}
	if check || validate || showDiff {
		return fmt.Errorf("%d file(s) need formatting", dirty)
	}
	return nil
}

// collectMarkdown expands the argument list into a sorted set of Markdown
// file paths, walking directories recursively.
func collectMarkdown(args []string) ([]string, error) {
	var files []string
	for _, arg := range args {
		info, err := os.Stat(arg)
		if err != nil {
			return nil, err
		}
		if !info.IsDir() {
			files = append(files, arg)
			continue
		}
		err = filepath.WalkDir(arg, func(path string, d fs.DirEntry, err error) error {
			if err != nil {
				return err
			}
			if !d.IsDir() && strings.EqualFold(filepath.Ext(path), ".md") {
				files = append(files, path)
			}
			return nil
		})
		if err != nil {
			return nil, err
		}
	}
	sort.Strings(files)
	return files, nil
}

func init() {
	lintCmd.Flags().Bool("check", false, "report files that would change without writing them")
	lintCmd.Flags().Bool("validate", false, "report each finding with its rule and line")
	lintCmd.Flags().Bool("diff", false, "print pending changes as a unified diff without writing")

	rootCmd.AddCommand(lintCmd)
}
