// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/pdiddy/notion2obsidian/internal/database"
)

var databaseCmd = &cobra.Command{
	Use:   "database <csv-or-dir> [output-dir]",
	Short: "Convert a Notion CSV database to Dataview notes",
	Long: `Database renders a Notion CSV export as Obsidian notes: one note per
row with typed frontmatter properties, plus a Dataview index file with
views per checkbox column and a timeline for the first date column.

With --inline the database is printed as a single Markdown table instead
of writing note files.`,
	Args: cobra.RangeArgs(1, 2),
	RunE: runDatabase,
}

func runDatabase(cmd *cobra.Command, args []string) error {
	inline, _ := cmd.Flags().GetBool("inline")
	if !inline && len(args) < 2 {
		return fmt.Errorf("output directory required unless --inline is set")
	}

	if inline {
		csvFile, err := database.FindCSV(args[0])
		if err != nil {
			return err
		}
		f, err := os.Open(csvFile)
		if err != nil {
			return err
		}
		defer f.Close()

		rows, headers, err := database.ParseCSV(f)
		if err != nil {
			return err
		}
		fmt.Print(database.InlineTable(rows, headers))
		return nil
	}

	res, err := database.ConvertFolder(args[0], args[1])
	if err != nil {
		return err
	}
	fmt.Printf("converted %d row(s) from %s\n", res.Rows, res.CSVFile)
	fmt.Printf("index: %s\n", res.IndexFile)
	return nil
}

func init() {
	databaseCmd.Flags().Bool("inline", false, "print the database as a Markdown table instead of writing notes")

	rootCmd.AddCommand(databaseCmd)
}
