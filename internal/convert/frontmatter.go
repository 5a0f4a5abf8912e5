// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"fmt"
	"sort"
	"strings"

	"github.com/adrg/frontmatter"
	"go.yaml.in/yaml/v3"
)

// extractFrontmatter splits a leading YAML frontmatter block from content.
// Documents without frontmatter (or with a block that fails to parse)
// return a nil map and the content unchanged.
func extractFrontmatter(content string) (map[string]any, string) {
	var meta map[string]any
	rest, err := frontmatter.Parse(strings.NewReader(content), &meta)
	if err != nil {
		return nil, content
	}
	return meta, string(rest)
}

// synthesizeFrontmatter renders the metadata block prepended to every
// converted document. The `source` and `created` keys come first in a
// fixed order; keys carried over from the source document follow sorted,
// so output is deterministic.
func synthesizeFrontmatter(meta map[string]any, created string) string {
	var b strings.Builder
	b.WriteString("---\n")
	b.WriteString("source: notion\n")
	b.WriteString("created: " + created + "\n")

	keys := make([]string, 0, len(meta))
	for k := range meta {
		if k == "source" || k == "created" {
			continue
		}
		keys = append(keys, k)
	}
	sort.Strings(keys)
	for _, k := range keys {
		enc, err := yaml.Marshal(map[string]any{k: meta[k]})
		if err != nil {
			// Unmarshalable values degrade to their Go representation.
			fmt.Fprintf(&b, "%s: %v\n", k, meta[k])
			continue
		}
		b.Write(enc)
	}

	b.WriteString("---\n\n")
	return b.String()
}
