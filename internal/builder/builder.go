// Package builder orchestrates the graph construction pipeline: file
// discovery, content reading, import extraction, identity normalization, and
// edge insertion.
package builder

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/google/uuid"

	"depmap/internal/config"
	"depmap/internal/graph"
	"depmap/internal/imports"
	"depmap/internal/logging"
	"depmap/internal/paths"
	"depmap/internal/scanner"
)

// BuildResult wraps the finished graph with build counters.
type BuildResult struct {
	Graph   *graph.DependencyGraph
	BuildID string

	FilesScanned int
	FilesSkipped int
	ImportsFound int
	Warnings     int
}

// Builder drives one build pass over a source tree.
type Builder struct {
	cfg       *config.Config
	extractor *imports.Extractor
	logger    *logging.Logger
}

// New creates a Builder. Marker overrides from the configuration are applied
// on top of the built-in marker table.
func New(cfg *config.Config, logger *logging.Logger) *Builder {
	if cfg == nil {
		cfg = config.DefaultConfig()
	}
	if logger == nil {
		logger = logging.NewDiscardLogger()
	}

	extractor := imports.NewExtractor()
	for lang, m := range cfg.Markers {
		extractor.SetMarker(lang, &imports.Marker{
			Extensions: m.Extensions,
			Token:      m.Token,
			Language:   lang,
		})
	}

	return &Builder{
		cfg:       cfg,
		extractor: extractor,
		logger:    logger,
	}
}

// Build scans every candidate file under root and returns the populated
// dependency graph. Edges are inserted as AddEdge(importer, imported), so a
// node's import count equals the number of distinct files that import it.
//
// The pass is strictly sequential, one file at a time. Per-file buffers are
// scoped to the loop iteration. The context is checked between files.
func (b *Builder) Build(ctx context.Context, root string) (*BuildResult, error) {
	if ctx == nil {
		ctx = context.Background()
	}

	result := &BuildResult{
		Graph:   graph.NewDependencyGraph(),
		BuildID: uuid.NewString(),
	}

	extensions := b.cfg.Scan.Extensions
	if len(extensions) == 0 {
		extensions = b.extractor.Extensions()
	}

	sc := scanner.New(scanner.Options{
		Extensions:   extensions,
		IgnoreDirs:   b.cfg.Scan.IgnoreDirs,
		UseGitignore: b.cfg.Scan.UseGitignore,
		Logger:       b.logger,
	})

	b.logger.Info("Starting dependency graph build", map[string]interface{}{
		"buildId": result.BuildID,
		"root":    root,
	})

	err := sc.Walk(root, func(path string) error {
		select {
		case <-ctx.Done():
			return ctx.Err()
		default:
		}
		return b.processFile(root, path, result)
	})
	if err != nil {
		return nil, err
	}

	stats := result.Graph.Stats()
	b.logger.Info("Dependency graph build completed", map[string]interface{}{
		"buildId":      result.BuildID,
		"filesScanned": result.FilesScanned,
		"filesSkipped": result.FilesSkipped,
		"importsFound": result.ImportsFound,
		"nodes":        stats.TotalNodes,
		"edges":        stats.TotalEdges,
	})

	return result, nil
}

// processFile reads one file and inserts its import edges. Extraction and
// normalization problems are local to the file and never touch graph state
// that is already inserted.
func (b *Builder) processFile(root, path string, result *BuildResult) error {
	rel := paths.RelativeTo(root, path)

	marker, ok := b.extractor.MarkerForFile(path)
	if !ok {
		result.FilesSkipped++
		return nil
	}

	if max := b.cfg.Scan.MaxFileSizeBytes; max > 0 {
		info, err := os.Stat(path)
		if err != nil {
			return b.readFailure(rel, err, result)
		}
		if info.Size() > int64(max) {
			b.logger.Debug("Skipping file: too large", map[string]interface{}{
				"file": rel,
				"size": info.Size(),
			})
			result.FilesSkipped++
			return nil
		}
	}

	content, err := os.ReadFile(path)
	if err != nil {
		return b.readFailure(rel, err, result)
	}

	// Zero-length files contribute no node and no edges.
	if len(content) == 0 {
		result.FilesSkipped++
		return nil
	}

	b.logger.Debug("Scanning file", map[string]interface{}{"file": rel})

	targets, err := imports.Extract(content, marker.Token)
	if err != nil {
		if !errors.Is(err, imports.ErrUnterminatedImport) {
			return fmt.Errorf("builder: extracting from %s: %w", rel, err)
		}
		// Keep the targets found before the unterminated occurrence.
		b.logger.Warn("Unterminated import target", map[string]interface{}{
			"file": rel,
		})
		result.Warnings++
	}

	fileID, err := paths.Normalize(rel)
	if err != nil {
		return fmt.Errorf("builder: normalizing %s: %w", rel, err)
	}
	result.Graph.AddNode(fileID)
	result.FilesScanned++

	for _, target := range targets {
		importID, err := paths.Normalize(target)
		if err != nil {
			b.logger.Warn("Skipping unnormalizable import", map[string]interface{}{
				"file":   rel,
				"import": target,
			})
			result.Warnings++
			continue
		}

		b.logger.Debug("Import found", map[string]interface{}{
			"file":   fileID,
			"import": importID,
		})
		result.Graph.AddEdge(fileID, importID)
		result.ImportsFound++
	}

	return nil
}

// readFailure applies the configured read policy to a per-file read error.
func (b *Builder) readFailure(rel string, err error, result *BuildResult) error {
	if b.cfg.Build.ReadPolicy == config.ReadPolicyStrict {
		return fmt.Errorf("builder: reading %s: %w", rel, err)
	}
	b.logger.Warn("Skipping unreadable file", map[string]interface{}{
		"file":  rel,
		"error": err.Error(),
	})
	result.FilesSkipped++
	result.Warnings++
	return nil
}
