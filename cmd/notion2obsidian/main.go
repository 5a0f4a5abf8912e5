// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the notion2obsidian CLI.
package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/go-viper/mapstructure/v2"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdiddy/notion2obsidian/internal/logger"
	"github.com/pdiddy/notion2obsidian/pkg/types"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the notion2obsidian CLI.
var rootCmd = &cobra.Command{
	Use:   "notion2obsidian",
	Short: "Convert Notion exports into Obsidian vaults",
	Long: `notion2obsidian turns a Notion Markdown-and-CSV export into a clean
Obsidian vault. The convert command runs the whole pipeline: CSV databases
become Dataview note folders, documents are converted and linted, assets are
gathered into an attachments directory, and a searchable catalog of the
vault is maintained in SQLite.

The lint, database, and catalog commands expose the individual stages for
use on an existing vault.`,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./notion2obsidian.yaml or ~/.config/notion2obsidian/config.yaml)")
	rootCmd.PersistentFlags().BoolP("verbose", "v", false, "enable debug logging")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("notion2obsidian")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "notion2obsidian"))
		}
	}

	viper.SetEnvPrefix("NOTION2OBSIDIAN")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// pipelineConfig merges the config file over the defaults. The config file
// mirrors the yaml tags of types.PipelineConfig.
func pipelineConfig() types.PipelineConfig {
	cfg := types.DefaultPipelineConfig()
	if err := viper.Unmarshal(&cfg, func(dc *mapstructure.DecoderConfig) {
		dc.TagName = "yaml"
	}); err != nil {
		fmt.Fprintln(os.Stderr, "Ignoring malformed config:", err)
		return types.DefaultPipelineConfig()
	}
	return cfg
}

// newLogger builds the CLI logger, honoring --verbose.
func newLogger(cmd *cobra.Command) *logger.Logger {
	verbose, _ := cmd.Flags().GetBool("verbose")
	if verbose {
		return logger.NewWithLevel(os.Stderr, log.DebugLevel)
	}
	return logger.New(os.Stderr)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
