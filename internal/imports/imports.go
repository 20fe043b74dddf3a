// Package imports extracts raw import target strings from source file content.
//
// Extraction is a pure substring scan: a fixed literal marker token precedes a
// double-quoted import target, and everything up to the closing quote is one
// raw import string. There is no tokenizer and no comment or string-literal
// awareness; a marker inside a comment or string is treated as a real import.
// That false-positive tolerance is deliberate.
package imports

import (
	"bytes"
	"errors"
	"path/filepath"
	"strings"
)

// ErrUnterminatedImport is returned when a marker is found but no closing
// quote exists before end-of-content. The scan never reads past the buffer;
// imports captured before the bad occurrence are still returned.
var ErrUnterminatedImport = errors.New("imports: unterminated import target")

// Marker defines the import marker for a group of file extensions.
type Marker struct {
	// Extensions lists file extensions this marker applies to
	Extensions []string

	// Token is the literal byte sequence that precedes a quoted import target
	Token string

	// Language name, informational
	Language string
}

// Built-in markers per language. The token must include everything up to and
// including the opening quote of the target.
var builtinMarkers = map[string]*Marker{
	"go": {
		Extensions: []string{".go"},
		Language:   "go",
		Token:      `import "`,
	},
	"zig": {
		Extensions: []string{".zig"},
		Language:   "zig",
		Token:      `@import("`,
	},
	"c": {
		Extensions: []string{".c", ".h", ".cc", ".cpp", ".hpp"},
		Language:   "c",
		Token:      `#include "`,
	},
}

// Extractor resolves the marker for a file and runs the scan.
type Extractor struct {
	markers map[string]*Marker
}

// NewExtractor creates an extractor with the built-in marker table.
func NewExtractor() *Extractor {
	markers := make(map[string]*Marker, len(builtinMarkers))
	for lang, m := range builtinMarkers {
		markers[lang] = m
	}
	return &Extractor{markers: markers}
}

// SetMarker registers or overrides the marker for a language.
func (e *Extractor) SetMarker(language string, m *Marker) {
	e.markers[language] = m
}

// MarkerForFile returns the marker matching the file's extension.
func (e *Extractor) MarkerForFile(path string) (*Marker, bool) {
	ext := strings.ToLower(filepath.Ext(path))
	for _, m := range e.markers {
		for _, markerExt := range m.Extensions {
			if ext == markerExt {
				return m, true
			}
		}
	}
	return nil, false
}

// Extensions returns every file extension a registered marker covers.
func (e *Extractor) Extensions() []string {
	var exts []string
	for _, m := range e.markers {
		exts = append(exts, m.Extensions...)
	}
	return exts
}

// Extract scans content for the marker token and captures each quoted import
// target. Targets are returned in source order, duplicates preserved. Each
// call is one full pass; there is no shared cursor across calls.
//
// If a marker occurrence has no closing quote before end-of-content the scan
// stops at the buffer end and returns the targets found so far together with
// ErrUnterminatedImport.
func Extract(content []byte, token string) ([]string, error) {
	if token == "" {
		return nil, errors.New("imports: empty marker token")
	}

	marker := []byte(token)
	var targets []string

	pos := 0
	for {
		idx := bytes.Index(content[pos:], marker)
		if idx < 0 {
			return targets, nil
		}
		pos += idx + len(marker)

		end := bytes.IndexByte(content[pos:], '"')
		if end < 0 {
			return targets, ErrUnterminatedImport
		}
		targets = append(targets, string(content[pos:pos+end]))
		pos += end + 1
	}
}
