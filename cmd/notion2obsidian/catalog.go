// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pdiddy/notion2obsidian/internal/catalog"
	"github.com/pdiddy/notion2obsidian/pkg/types"
)

var catalogCmd = &cobra.Command{
	Use:   "catalog",
	Short: "Manage the vault note catalog (index, list, search, export)",
	Long: `Catalog maintains a SQLite index of the vault's notes with FTS5
full-text search over names and bodies. Use subcommands to reindex the
vault, list every note, search, or export the catalog as YAML.`,
}

// --- index subcommand ---

var catalogIndexCmd = &cobra.Command{
	Use:   "index",
	Short: "Reindex the vault into the catalog",
	Long: `Index walks the vault and ingests every Markdown note into the
catalog. Notes unchanged since the last run are skipped.`,
	RunE: runCatalogIndex,
}

func runCatalogIndex(cmd *cobra.Command, args []string) error {
	store, err := openCatalog(cmd)
	if err != nil {
		return err
	}
	defer store.Close()

	summary, err := store.Ingest(context.Background(), os.Stdout)
	if err != nil {
		return err
	}
	if summary.Failed > 0 {
		return fmt.Errorf("%d note(s) failed indexing", summary.Failed)
	}
	return nil
}

// --- list subcommand ---

var catalogListCmd = &cobra.Command{
	Use:   "list",
	Short: "List every note in the catalog",
	RunE:  runCatalogList,
}

func runCatalogList(cmd *cobra.Command, args []string) error {
	store, err := openCatalog(cmd)
	if err != nil {
		return err
	}
	defer store.Close()

	notes, err := store.List(context.Background())
	if err != nil {
		return err
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")
	return formatNotes(notes, jsonOutput)
}

// --- search subcommand ---

var catalogSearchCmd = &cobra.Command{
	Use:   "search <query>",
	Short: "Full-text search over note names and bodies",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runCatalogSearch,
}

func runCatalogSearch(cmd *cobra.Command, args []string) error {
	store, err := openCatalog(cmd)
	if err != nil {
		return err
	}
	defer store.Close()

	notes, err := store.Search(context.Background(), strings.Join(args, " "))
	if err != nil {
		return err
	}

	jsonOutput, _ := cmd.Flags().GetBool("json")
	return formatNotes(notes, jsonOutput)
}

// --- export subcommand ---

var catalogExportCmd = &cobra.Command{
	Use:   "export",
	Short: "Export the catalog as YAML",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openCatalog(cmd)
		if err != nil {
			return err
		}
		defer store.Close()

		return store.ExportYAML(context.Background(), os.Stdout)
	},
}

// --- shared helpers ---

func openCatalog(cmd *cobra.Command) (*catalog.Store, error) {
	vaultDir, _ := cmd.Flags().GetString("vault")
	maxResults, _ := cmd.Flags().GetInt("max-results")

	cfg := pipelineConfig().Catalog
	if maxResults > 0 {
		cfg.MaxResults = maxResults
	}
	return catalog.Open(vaultDir, cfg)
}

func formatNotes(notes []types.Note, jsonOutput bool) error {
	if jsonOutput {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		return enc.Encode(notes)
	}

	if len(notes) == 0 {
		fmt.Println("No notes found.")
		return nil
	}

	fmt.Fprintf(os.Stdout, "%-40s  %-7s  %-10s  %s\n", "Name", "Words", "Created", "Path")
	fmt.Fprintln(os.Stdout, strings.Repeat("-", 90))

	for _, n := range notes {
		name := n.Name
		if len(name) > 40 {
			name = name[:37] + "..."
		}
		fmt.Fprintf(os.Stdout, "%-40s  %-7d  %-10s  %s\n", name, n.Words, n.Created, n.Path)
	}

	fmt.Fprintf(os.Stdout, "\n%d note(s)\n", len(notes))
	return nil
}

func init() {
	// Shared flags on the parent command, inherited by subcommands.
	catalogCmd.PersistentFlags().String("vault", ".", "vault directory containing the catalog")
	catalogCmd.PersistentFlags().Int("max-results", 0, "maximum search results (0 = use default)")

	catalogListCmd.Flags().Bool("json", false, "output notes as JSON")
	catalogSearchCmd.Flags().Bool("json", false, "output notes as JSON")

	catalogCmd.AddCommand(catalogIndexCmd)
	catalogCmd.AddCommand(catalogListCmd)
	catalogCmd.AddCommand(catalogSearchCmd)
	catalogCmd.AddCommand(catalogExportCmd)

	rootCmd.AddCommand(catalogCmd)
}
