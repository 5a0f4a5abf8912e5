// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package resolve

import "testing"

func TestResolve(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		wantKind Kind
		wantName string
	}{
		// Internal documents.
		{"document with hex id", "My%20Page%208a7b3c4d5e6f7a8b9c0d1e2f3a4b5c6d.md", Internal, "My Page"},
		{"document with dashed uuid", "Notes%20123e4567-e89b-12d3-a456-426614174000.md", Internal, "Notes"},
		{"document with short hex id", "My%20Page%20abc123.md", Internal, "My Page"},
		{"document without id", "Plain%20Page.md", Internal, "Plain Page"},
		{"relative subdirectory", "Area/Sub%20Page%208a7b3c4d5e6f7a8b9c0d1e2f3a4b5c6d.md", Internal, "Sub Page"},

		// Internal assets keep their extension.
		{"image with hex id", "image%20name%208a7b3c4d5e6f7a8b9c0d1e2f3a4b5c6d.png", Internal, "image name.png"},
		{"image with short hex id", "image%20name%20abc123.png", Internal, "image name.png"},
		{"pdf asset", "report.pdf", Internal, "report.pdf"},

		// External pass-throughs.
		{"https url", "https://example.com/page", External, ""},
		{"http url to md", "http://example.com/readme.md", External, ""},
		{"mail link", "mailto:a@example.com", External, ""},
		{"absolute path", "/etc/notes.md", External, ""},
		{"unknown extension", "archive.tar.gz", External, ""},
		{"no extension", "just-a-name", External, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Resolve(tt.input)
			if got.Kind != tt.wantKind {
				t.Errorf("Resolve(%q) kind = %v, want %v", tt.input, got.Kind, tt.wantKind)
			}
			if got.Name != tt.wantName {
				t.Errorf("Resolve(%q) name = %q, want %q", tt.input, got.Name, tt.wantName)
			}
		})
	}
}

func TestCleanName(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"hex suffix", "Page Name 8a7b3c4d5e6f7a8b9c0d1e2f3a4b5c6d", "Page Name"},
		{"hex suffix uppercase", "Page Name 8A7B3C4D5E6F7A8B9C0D1E2F3A4B5C6D", "Page Name"},
		{"dashed uuid suffix", "Page Name 123e4567-e89b-12d3-a456-426614174000", "Page Name"},
		{"no suffix", "Page Name", "Page Name"},
		{"short hex with digit stripped", "My Page abc123", "My Page"},
		{"short hex without digit kept", "Topic decade", "Topic decade"},
		{"hex shorter than six kept", "Project cafe", "Project cafe"},
		{"digits alone stripped", "Meeting 20260115", "Meeting"},
		{"hex without separator kept", "8a7b3c4d5e6f7a8b9c0d1e2f3a4b5c6d", "8a7b3c4d5e6f7a8b9c0d1e2f3a4b5c6d"},
		{"invalid characters", `What? A "name": yes/no`, "What- A -name-- yes-no"},
		{"whitespace collapse", "Too   many    spaces", "Too many spaces"},
		{"empty becomes untitled", "", "untitled"},
		{"dots trimmed", "...Page...", "Page"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CleanName(tt.input); got != tt.want {
				t.Errorf("CleanName(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestDecode(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"percent space", "My%20Page.md", "My Page.md"},
		{"html entity", "Tom &amp; Jerry.md", "Tom & Jerry.md"},
		{"malformed escape degrades", "50%%20off.md", "50% off.md"},
		{"plain", "nothing to do", "nothing to do"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := Decode(tt.input); got != tt.want {
				t.Errorf("Decode(%q) = %q, want %q", tt.input, got, tt.want)
			}
		})
	}
}

func TestSanitizeLongName(t *testing.T) {
	long := make([]rune, 300)
	for i := range long {
		long[i] = 'a'
	}
	got := Sanitize(string(long))
	if len([]rune(got)) != 200 {
		t.Errorf("Sanitize long name length = %d, want 200", len([]rune(got)))
	}
}
