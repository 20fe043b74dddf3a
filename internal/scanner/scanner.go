// Package scanner discovers candidate source files under a root directory.
package scanner

import (
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	gitignore "github.com/sabhiram/go-gitignore"

	"depmap/internal/logging"
	"depmap/internal/paths"
)

// Options configures a Scanner.
type Options struct {
	// Extensions limits discovery to these extensions (with leading dot)
	Extensions []string

	// IgnoreDirs are directory names skipped during the walk
	IgnoreDirs []string

	// UseGitignore honors <root>/.gitignore rules
	UseGitignore bool

	Logger *logging.Logger
}

// Scanner recursively walks a root directory and yields regular files with a
// recognized source extension. Symlinks, devices, and directories are never
// yielded, so no symlink-cycle protection is needed.
type Scanner struct {
	extensions map[string]bool
	ignoreDirs map[string]bool
	gitignore  bool
	logger     *logging.Logger
}

// New creates a Scanner from options.
func New(opts Options) *Scanner {
	exts := make(map[string]bool, len(opts.Extensions))
	for _, e := range opts.Extensions {
		exts[strings.ToLower(e)] = true
	}
	dirs := make(map[string]bool, len(opts.IgnoreDirs))
	for _, d := range opts.IgnoreDirs {
		dirs[d] = true
	}
	logger := opts.Logger
	if logger == nil {
		logger = logging.NewDiscardLogger()
	}
	return &Scanner{
		extensions: exts,
		ignoreDirs: dirs,
		gitignore:  opts.UseGitignore,
		logger:     logger,
	}
}

// Scan returns every candidate file under root in walk order.
// A missing or unreadable root is fatal.
func (s *Scanner) Scan(root string) ([]string, error) {
	var files []string
	err := s.Walk(root, func(path string) error {
		files = append(files, path)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return files, nil
}

// Walk invokes fn for every candidate file under root, in the deterministic
// lexical order of filepath.WalkDir. An error from fn stops the walk.
func (s *Scanner) Walk(root string, fn func(path string) error) error {
	info, err := os.Stat(root)
	if err != nil {
		return fmt.Errorf("scanner: root %s: %w", root, err)
	}
	if !info.IsDir() {
		return fmt.Errorf("scanner: root %s is not a directory", root)
	}

	var matcher *gitignore.GitIgnore
	if s.gitignore {
		// A missing .gitignore simply disables matching.
		if m, err := gitignore.CompileIgnoreFile(filepath.Join(root, ".gitignore")); err == nil {
			matcher = m
		}
	}

	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return fmt.Errorf("scanner: walking %s: %w", path, err)
		}

		rel := paths.RelativeTo(root, path)

		if d.IsDir() {
			if rel != "." && s.ignoreDirs[d.Name()] {
				s.logger.Debug("Skipping ignored directory", map[string]interface{}{"dir": rel})
				return filepath.SkipDir
			}
			if matcher != nil && rel != "." && matcher.MatchesPath(rel+"/") {
				s.logger.Debug("Skipping gitignored directory", map[string]interface{}{"dir": rel})
				return filepath.SkipDir
			}
			return nil
		}

		// Regular files only; symlinks and special files are excluded.
		if !d.Type().IsRegular() {
			return nil
		}

		if len(s.extensions) > 0 && !s.extensions[strings.ToLower(filepath.Ext(path))] {
			return nil
		}

		if matcher != nil && matcher.MatchesPath(rel) {
			return nil
		}

		return fn(path)
	})
}
