// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package textdiff renders unified diffs between a document and its linted
// form.
package textdiff

import (
	"fmt"

	"github.com/hexops/gotextdiff"
	"github.com/hexops/gotextdiff/myers"
	"github.com/hexops/gotextdiff/span"
)

// Unified returns a unified diff from before to after, labeled with the
// file name. An empty string means the documents are identical.
func Unified(name, before, after string) string {
	if before == after {
		return ""
	}
	edits := myers.ComputeEdits(span.URIFromPath(name), before, after)
	return fmt.Sprint(gotextdiff.ToUnified(name, name+" (linted)", before, edits))
}
