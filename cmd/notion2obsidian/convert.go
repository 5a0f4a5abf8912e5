// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/notion2obsidian/internal/pipeline"
)

var convertCmd = &cobra.Command{
	Use:   "convert <export-dir> <vault-dir>",
	Short: "Convert a Notion export into an Obsidian vault",
	Long: `Convert runs the full pipeline over a Notion export directory: CSV
databases are rendered to Dataview note folders, Markdown documents are
converted and linted under cleaned names, assets are copied into the
vault's attachments directory, pages with databases gain embedded Dataview
queries, and the vault catalog is refreshed.

Re-running the conversion only touches documents whose export files
changed.`,
	Args: cobra.ExactArgs(2),
	RunE: runConvert,
}

func runConvert(cmd *cobra.Command, args []string) error {
	cfg := pipelineConfig()
	if noLint, _ := cmd.Flags().GetBool("no-lint"); noLint {
		cfg.Convert.LintOutput = false
	}
	if noCatalog, _ := cmd.Flags().GetBool("no-catalog"); noCatalog {
		cfg.Convert.UpdateCatalog = false
	}
	if attachments, _ := cmd.Flags().GetString("attachments-dir"); attachments != "" {
		cfg.Convert.AttachmentsDir = attachments
	}

	p := pipeline.New(cfg, newLogger(cmd), os.Stdout)
	res, err := p.Run(context.Background(), args[0], args[1])
	if err != nil {
		return err
	}
	if res.Failed > 0 {
		return fmt.Errorf("%d file(s) failed conversion", res.Failed)
	}
	return nil
}

func init() {
	convertCmd.Flags().Bool("no-lint", false, "skip linting converted documents")
	convertCmd.Flags().Bool("no-catalog", false, "skip updating the vault catalog")
	convertCmd.Flags().String("attachments-dir", "", "vault subdirectory for copied assets (default: attachments)")

	rootCmd.AddCommand(convertCmd)
}
