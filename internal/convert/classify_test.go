// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package convert

import "testing"

func TestClassify(t *testing.T) {
	tests := []struct {
		name string
		line string
		want LineKind
	}{
		{"plain text", "just a sentence", KindPlain},
		{"blank", "", KindBlank},
		{"whitespace only", "   ", KindBlank},
		{"heading", "## Section", KindHeading},
		{"heading no space", "##Section", KindHeading},
		{"bullet dash", "- item", KindBullet},
		{"bullet dash no space", "-item", KindBullet},
		{"bullet star", "* item", KindBullet},
		{"bullet plus", "+ item", KindBullet},
		{"star without space is emphasis", "*emphasis*", KindPlain},
		{"plus without space", "+1 to that", KindPlain},
		{"horizontal rule", "---", KindPlain},
		{"ordered", "1. first", KindOrdered},
		{"ordered no space", "2.second", KindOrdered},
		{"decimal number", "3.14 is pi", KindPlain},
		{"task unchecked", "- [ ] todo", KindTask},
		{"task checked", "- [x] done", KindTask},
		{"task tight", "-[ ]todo", KindTask},
		{"table row", "| a | b |", KindTableRow},
		{"blockquote", "> quoted", KindBlockquote},
		{"toggle", "▸ Details", KindToggleStart},
		{"toggle alt glyph", "► Details", KindToggleStart},
		{"fence", "```go", KindFenceDelim},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			st := &ScanState{}
			if got := Classify(tt.line, st); got.Kind != tt.want {
				t.Errorf("Classify(%q) = %v, want %v", tt.line, got.Kind, tt.want)
			}
		})
	}
}

func TestClassifyFenceMasking(t *testing.T) {
	st := &ScanState{}
	Classify("```python", st)
	if !st.InFence {
		t.Fatal("opening fence did not set InFence")
	}
	if got := Classify("# not a heading", st); got.Kind != KindPlain {
		t.Errorf("in-fence line classified %v, want plain", got.Kind)
	}
	if got := Classify("- not a bullet", st); got.Kind != KindPlain {
		t.Errorf("in-fence line classified %v, want plain", got.Kind)
	}
	Classify("```", st)
	if st.InFence {
		t.Fatal("closing fence did not clear InFence")
	}
	if got := Classify("# heading again", st); got.Kind != KindHeading {
		t.Errorf("post-fence line classified %v, want heading", got.Kind)
	}
}

func TestClassifyFields(t *testing.T) {
	st := &ScanState{}

	h := Classify("####### Deep", st)
	if h.Level != 7 {
		t.Errorf("heading level = %d, want 7", h.Level)
	}

	task := Classify("  - [X] shout", st)
	if task.Checkbox != 'X' || task.Indent != 2 {
		t.Errorf("task checkbox=%q indent=%d, want 'X' and 2", task.Checkbox, task.Indent)
	}

	ord := Classify("10. tenth", st)
	if ord.Ordinal != "10" {
		t.Errorf("ordinal = %q, want %q", ord.Ordinal, "10")
	}

	tog := Classify("▸ Click me", st)
	if tog.Title != "Click me" {
		t.Errorf("toggle title = %q, want %q", tog.Title, "Click me")
	}

	fence := Classify("```go", st)
	if fence.Lang != "go" {
		t.Errorf("fence lang = %q, want %q", fence.Lang, "go")
	}
	Classify("```", st)

	tabbed := Classify("\t- item", st)
	if tabbed.Indent != indentUnit {
		t.Errorf("tab indent = %d, want %d", tabbed.Indent, indentUnit)
	}
}
