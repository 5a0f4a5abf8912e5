// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import (
	"regexp"
	"strings"
)

// midTaskRe matches a checkbox pattern occurring mid-line. Notion sometimes
// concatenates a second task onto the same exported line without a line
// break; the list converter splits these into nested items. Only the
// checkbox shape is recognized, since a bare mid-line dash is far too
// common in prose to treat as a marker.
var midTaskRe = regexp.MustCompile(`[ \t]+-[ \t]*\[([ xX])\][ \t]*`)

// convertLists normalizes list items: every bullet marker becomes `-`,
// ordered markers keep their number with exactly one space after the dot,
// checkboxes become `- [ ]` / `- [x]` with a lowercase x, and indentation
// is floored to the nearest indent-unit multiple.
func convertLists(lines []string) []string {
	st := &ScanState{}
	var out []string
	for _, line := range lines {
		inFence := st.InFence
		tag := Classify(line, st)
		if inFence || tag.Kind == KindFenceDelim {
			out = append(out, line)
			continue
		}
		switch tag.Kind {
		case KindBullet, KindOrdered, KindTask:
			out = append(out, normalizeListItem(tag)...)
		default:
			out = append(out, line)
		}
	}
	return out
}

// normalizeListItem renders one classified list line, splitting embedded
// mid-line tasks into additional items one level deeper.
func normalizeListItem(tag LineTag) []string {
	depth := tag.Indent / indentUnit // floor, never round up
	indent := strings.Repeat(" ", depth*indentUnit)

	content := strings.TrimSpace(tag.Rest)
	content, embedded := splitEmbeddedTasks(content)

	var head string
	switch tag.Kind {
	case KindTask:
		head = indent + "- [" + checkboxState(tag.Checkbox) + "]"
	case KindOrdered:
		head = indent + tag.Ordinal + "."
	default:
		head = indent + "-"
	}

	out := []string{joinMarker(head, content)}
	childIndent := strings.Repeat(" ", (depth+1)*indentUnit)
	for _, e := range embedded {
		out = append(out, joinMarker(childIndent+"- ["+checkboxState(e.state)+"]", e.text))
	}
	return out
}

type embeddedTask struct {
	state byte
	text  string
}

// splitEmbeddedTasks cuts a list item's content at every mid-line checkbox
// pattern. The text before the first match stays with the original item.
func splitEmbeddedTasks(content string) (string, []embeddedTask) {
	var tasks []embeddedTask
	m := midTaskRe.FindStringSubmatchIndex(content)
	if m == nil || m[0] == 0 {
		return content, nil
	}
	head := strings.TrimRight(content[:m[0]], " \t")
	rest := content[m[1]:]
	state := content[m[2]]

	next, more := splitEmbeddedTasks(rest)
	tasks = append(tasks, embeddedTask{state: state, text: next})
	tasks = append(tasks, more...)
	return head, tasks
}

func checkboxState(c byte) string {
	if c == 'x' || c == 'X' {
		return "x"
	}
	return " "
}

func joinMarker(head, content string) string {
	if content == "" {
		return head
	}
	return head + " " + content
}
