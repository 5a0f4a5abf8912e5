// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package types

// ConversionStatus indicates the outcome of converting one source document.
type ConversionStatus string

const (
	ConversionNone   ConversionStatus = "none"
	ConversionDone   ConversionStatus = "converted"
	ConversionFailed ConversionStatus = "failed"
)

// Finding is a single linter diagnostic: which rule fired, where, and why.
// Line numbers are 1-based.
type Finding struct {
	Rule    string `json:"rule" yaml:"rule"`
	Line    int    `json:"line" yaml:"line"`
	Message string `json:"message" yaml:"message"`
}

// Note is one converted document as recorded in the vault catalog.
type Note struct {
	// Name is the cleaned note name (Notion identifier suffix removed).
	Name string `json:"name" yaml:"name"`

	// Path is the note's location inside the vault.
	Path string `json:"path" yaml:"path"`

	// Source is the original export path the note was converted from.
	Source string `json:"source" yaml:"source"`

	// Words is the body word count, excluding frontmatter and code.
	Words int `json:"words" yaml:"words"`

	// Created is the note creation date (YYYY-MM-DD), taken from the
	// source file's modification time.
	Created string `json:"created" yaml:"created"`
}
