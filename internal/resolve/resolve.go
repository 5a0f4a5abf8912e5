// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package resolve maps raw Notion link targets to clean Obsidian names.
// Notion exports append an identifier to every file name ("Page Name
// 8a7b3c4d..." with 32 hex digits, or a dashed UUID) and percent-encode
// paths in links; resolution strips the identifier and decodes the rest.
package resolve

import (
	"html"
	"net/url"
	"path"
	"regexp"
	"strings"

	"github.com/google/uuid"
)

// Kind classifies a link target.
type Kind int

const (
	// External targets (URLs with a scheme, absolute paths, unknown
	// extensions) pass through the converter unchanged.
	External Kind = iota
	// Internal targets become wikilinks or embeds.
	Internal
)

func (k Kind) String() string {
	if k == Internal {
		return "internal"
	}
	return "external"
}

// Target is a resolved link reference.
type Target struct {
	Kind Kind

	// Name is the wikilink target: the cleaned stem for documents, the
	// cleaned file name (extension kept) for assets. Empty for external
	// targets.
	Name string
}

// hexToken matches a candidate trailing Notion identifier. Notion's own
// exports use 32 hex digits, but truncated exports and third-party dumps
// shorten the token, so any hex run of six or more digits qualifies when it
// also contains a decimal digit (plain words like "decade" stay).
var hexToken = regexp.MustCompile(`(?i)^[a-f0-9]+$`)

var hasDigit = regexp.MustCompile(`[0-9]`)

// invalidFilenameChars are characters unsafe on common filesystems.
var invalidFilenameChars = regexp.MustCompile(`[<>:"/\\|?*]`)

var multiSpace = regexp.MustCompile(`\s+`)

// docExtensions are extensions treated as internal documents.
var docExtensions = map[string]bool{
	".md": true,
}

// assetExtensions are extensions treated as internal assets. The converter
// and the asset-copy step must agree on this set: every matching file ends
// up in the vault's attachments directory under its cleaned name.
var assetExtensions = map[string]bool{
	".png": true, ".jpg": true, ".jpeg": true, ".gif": true, ".svg": true,
	".pdf": true, ".mp4": true, ".webm": true, ".mp3": true, ".wav": true,
	".csv": true,
}

// Resolve maps a raw link target to either an external pass-through or an
// internal wikilink name. A target is internal iff it is a relative path
// with a known document or asset extension and carries no URI scheme.
func Resolve(raw string) Target {
	decoded := Decode(raw)

	if hasScheme(raw) || strings.HasPrefix(decoded, "/") {
		return Target{Kind: External}
	}

	ext := strings.ToLower(path.Ext(decoded))
	base := path.Base(decoded)
	stem := strings.TrimSuffix(base, path.Ext(base))

	switch {
	case docExtensions[ext]:
		return Target{Kind: Internal, Name: CleanName(stem)}
	case assetExtensions[ext]:
		return Target{Kind: Internal, Name: CleanName(stem) + ext}
	default:
		return Target{Kind: External}
	}
}

// IsAsset reports whether the file name has an extension the asset-copy
// step handles.
func IsAsset(name string) bool {
	return assetExtensions[strings.ToLower(path.Ext(name))]
}

// Decode percent-decodes a raw target and resolves HTML entities. Malformed
// percent escapes degrade to a literal %20-to-space substitution rather
// than failing.
func Decode(raw string) string {
	s := html.UnescapeString(raw)
	if u, err := url.PathUnescape(s); err == nil {
		return u
	}
	return strings.ReplaceAll(s, "%20", " ")
}

// CleanName strips the trailing Notion identifier from a file stem and
// sanitizes the remainder for the filesystem.
func CleanName(stem string) string {
	return Sanitize(stripNotionID(stem))
}

// stripNotionID removes the trailing identifier token: a full 32-hex-digit
// run, a shorter hex run that carries a digit, or a dashed UUID. Only the
// final whitespace-separated token is considered.
func stripNotionID(stem string) string {
	i := strings.LastIndexAny(stem, " \t")
	if i < 0 {
		return stem
	}
	tok := stem[i+1:]
	if _, err := uuid.Parse(tok); err == nil {
		return strings.TrimRight(stem[:i], " \t")
	}
	if hexToken.MatchString(tok) &&
		(len(tok) == 32 || (len(tok) >= 6 && hasDigit.MatchString(tok))) {
		return strings.TrimRight(stem[:i], " \t")
	}
	return stem
}

// Sanitize makes a name safe for use as a file name: invalid characters
// become dashes, whitespace runs collapse to one space, leading and
// trailing dots and spaces are trimmed, and the result is capped at 200
// runes. An empty result becomes "untitled".
func Sanitize(name string) string {
	name = invalidFilenameChars.ReplaceAllString(name, "-")
	name = multiSpace.ReplaceAllString(name, " ")
	name = strings.Trim(name, ". ")

	if runes := []rune(name); len(runes) > 200 {
		name = string(runes[:200])
	}
	if name == "" {
		return "untitled"
	}
	return name
}

func hasScheme(raw string) bool {
	u, err := url.Parse(raw)
	return err == nil && u.Scheme != ""
}
