// Package paths provides node identity normalization for the dependency graph.
//
// A node identity is derived from a file path or a raw import string: the
// extension is stripped and at most the last two path components are kept
// ("parent/file"). Two raw strings that normalize to the same text are the
// same node.
package paths

import (
	"errors"
	"path/filepath"
	"strings"
)

// ErrEmptyPath is returned when an empty path or import string reaches Normalize.
var ErrEmptyPath = errors.New("paths: empty path")

// Normalize canonicalizes a raw file path or import string into a node identity.
// - Strips the file extension from the final component
// - Converts backslashes to forward slashes
// - Keeps only the last two components, joined with "/"
//
// Keeping two components trades full-path uniqueness for compact identities;
// it assumes no two modules share both their immediate directory and name.
func Normalize(rawPath string) (string, error) {
	p := strings.ReplaceAll(rawPath, "\\", "/")

	if ext := extOf(p); ext != "" {
		p = p[:len(p)-len(ext)]
	}

	parts := splitComponents(p)
	if len(parts) == 0 {
		return "", ErrEmptyPath
	}
	if len(parts) == 1 {
		return parts[0], nil
	}
	return parts[len(parts)-2] + "/" + parts[len(parts)-1], nil
}

// splitComponents splits a slash path into non-empty components.
// Leading, trailing, and doubled separators contribute nothing.
func splitComponents(p string) []string {
	raw := strings.Split(p, "/")
	parts := make([]string, 0, len(raw))
	for _, c := range raw {
		if c != "" {
			parts = append(parts, c)
		}
	}
	return parts
}

// extOf returns the extension of the final component, or "" if the final
// component is a pure dotfile like ".gitignore" (stripping would leave nothing).
func extOf(p string) string {
	base := p
	if i := strings.LastIndexByte(p, '/'); i >= 0 {
		base = p[i+1:]
	}
	ext := filepath.Ext(base)
	if ext == base {
		return ""
	}
	return ext
}

// NormalizePath converts backslashes to forward slashes without touching
// components. Useful for paths that are already relative.
func NormalizePath(path string) string {
	return filepath.ToSlash(path)
}

// RelativeTo makes path relative to root with forward slashes. If path is not
// under root the original path is returned slash-normalized.
func RelativeTo(root, path string) string {
	rel, err := filepath.Rel(root, path)
	if err != nil || strings.HasPrefix(rel, "..") {
		return filepath.ToSlash(path)
	}
	return filepath.ToSlash(rel)
}
