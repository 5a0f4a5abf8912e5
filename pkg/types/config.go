// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// LintConfig holds the recognized linter options. Fields map one-to-one to
// config file keys; keys the file contains beyond these are ignored when the
// file is decoded into this struct.
type LintConfig struct {
	// MaxBlankLines is the maximum number of consecutive blank lines
	// allowed in a document (default 2).
	MaxBlankLines int `json:"max_blank_lines" yaml:"max_blank_lines"`

	// EnsureFinalNewline makes the document end with exactly one newline.
	EnsureFinalNewline bool `json:"ensure_final_newline" yaml:"ensure_final_newline"`

	// TrimTrailingWhitespace strips trailing spaces and tabs per line.
	TrimTrailingWhitespace bool `json:"trim_trailing_whitespace" yaml:"trim_trailing_whitespace"`

	// SpaceAfterListMarker forces exactly one space after `-` and `N.` markers.
	SpaceAfterListMarker bool `json:"space_after_list_marker" yaml:"space_after_list_marker"`

	// NormalizeListMarkers rewrites `*` and `+` bullets to `-`.
	NormalizeListMarkers bool `json:"normalize_list_markers" yaml:"normalize_list_markers"`

	// SpaceAfterHeading forces exactly one space after the `#` run.
	SpaceAfterHeading bool `json:"space_after_heading" yaml:"space_after_heading"`

	// EnsureListSpacing surrounds list regions with blank lines.
	EnsureListSpacing bool `json:"ensure_list_spacing" yaml:"ensure_list_spacing"`

	// FixTableFormatting re-emits tables with padded, equal-width columns.
	FixTableFormatting bool `json:"fix_table_formatting" yaml:"fix_table_formatting"`

	// FixLinkSpacing collapses whitespace inside link and wikilink delimiters.
	FixLinkSpacing bool `json:"fix_link_spacing" yaml:"fix_link_spacing"`

	// FixEmphasis removes spaces immediately inside emphasis and code-span
	// delimiters.
	FixEmphasis bool `json:"fix_emphasis" yaml:"fix_emphasis"`

	// RemoveMultipleSpaces collapses runs of spaces outside code fences,
	// leading indent, and table rows.
	RemoveMultipleSpaces bool `json:"remove_multiple_spaces" yaml:"remove_multiple_spaces"`

	// StandardizeFrontmatter normalizes key/value spacing in a leading
	// YAML frontmatter block.
	StandardizeFrontmatter bool `json:"standardize_frontmatter" yaml:"standardize_frontmatter"`
}

// DefaultLintConfig returns the linter defaults: every rule enabled and at
// most two consecutive blank lines.
func DefaultLintConfig() LintConfig {
	return LintConfig{
		MaxBlankLines:          2,
		EnsureFinalNewline:     true,
		TrimTrailingWhitespace: true,
		SpaceAfterListMarker:   true,
		NormalizeListMarkers:   true,
		SpaceAfterHeading:      true,
		EnsureListSpacing:      true,
		FixTableFormatting:     true,
		FixLinkSpacing:         true,
		FixEmphasis:            true,
		RemoveMultipleSpaces:   true,
		StandardizeFrontmatter: true,
	}
}

// ConvertConfig holds settings for the export conversion pipeline.
type ConvertConfig struct {
	// LintOutput runs the full lint pipeline on each converted document.
	LintOutput bool `json:"lint_output" yaml:"lint_output"`

	// UpdateCatalog records every converted note in the vault catalog.
	UpdateCatalog bool `json:"update_catalog" yaml:"update_catalog"`

	// AttachmentsDir is the vault subdirectory assets are copied into
	// (default "attachments").
	AttachmentsDir string `json:"attachments_dir" yaml:"attachments_dir"`
}

// DefaultConvertConfig returns the conversion defaults.
func DefaultConvertConfig() ConvertConfig {
	return ConvertConfig{
		LintOutput:     true,
		UpdateCatalog:  true,
		AttachmentsDir: "attachments",
	}
}

// DatabaseConfig holds settings for CSV database conversion.
type DatabaseConfig struct {
	// Inline renders the database as a single markdown table instead of
	// one note file per row.
	Inline bool `json:"inline" yaml:"inline"`
}

// CatalogConfig holds settings for the vault note catalog.
type CatalogConfig struct {
	// MaxResults is the default maximum number of query results (default 20).
	MaxResults int `json:"max_results" yaml:"max_results"`
}

// PipelineConfig groups all stage configurations.
type PipelineConfig struct {
	Convert  ConvertConfig  `json:"convert" yaml:"convert"`
	Lint     LintConfig     `json:"lint" yaml:"lint"`
	Database DatabaseConfig `json:"database" yaml:"database"`
	Catalog  CatalogConfig  `json:"catalog" yaml:"catalog"`
}

// DefaultPipelineConfig returns the default configuration for every stage.
func DefaultPipelineConfig() PipelineConfig {
	return PipelineConfig{
		Convert: DefaultConvertConfig(),
		Lint:    DefaultLintConfig(),
		Catalog: CatalogConfig{MaxResults: 20},
	}
}
