package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"depmap/internal/builder"
	"depmap/internal/config"
	"depmap/internal/logging"
	"depmap/internal/report"
)

var (
	buildFormat     string
	buildReadPolicy string
)

var buildCmd = &cobra.Command{
	Use:   "build [path]",
	Short: "Build the dependency graph and print the import report",
	Long: `Scan a source tree, build the dependency graph, and print a flat
per-module report: each module's identity, how many distinct files import it,
and what it imports.

Without arguments the current directory is scanned.

Examples:
  depmap build
  depmap build ./src
  depmap build --format=human
  depmap build --read-policy=strict`,
	Args: cobra.MaximumNArgs(1),
	RunE: runBuild,
}

func init() {
	buildCmd.Flags().StringVar(&buildFormat, "format", "json", "Output format (json, yaml, human)")
	buildCmd.Flags().StringVar(&buildReadPolicy, "read-policy", "",
		"Per-file read failure policy: skip or strict (default: from config)")
	rootCmd.AddCommand(buildCmd)
}

func runBuild(cmd *cobra.Command, args []string) error {
	root := "."
	if len(args) == 1 {
		root = args[0]
	}

	cfg, err := config.LoadConfig(root)
	if err != nil {
		return fmt.Errorf("loading config: %w", err)
	}
	if buildReadPolicy != "" {
		cfg.Build.ReadPolicy = buildReadPolicy
		if err := cfg.Validate(); err != nil {
			return err
		}
	}

	logger := newCommandLogger(cfg)

	b := builder.New(cfg, logger)
	result, err := b.Build(cmd.Context(), root)
	if err != nil {
		return err
	}

	r := report.FromGraph(result.Graph)
	r.BuildID = result.BuildID
	r.Root = root
	r.FilesScanned = result.FilesScanned

	out, err := r.Render(report.Format(buildFormat))
	if err != nil {
		return err
	}

	fmt.Fprintln(os.Stdout, out)
	return nil
}

// newCommandLogger builds the diagnostic logger from config, with the CLI
// --log-level flag taking precedence.
func newCommandLogger(cfg *config.Config) *logging.Logger {
	level := cfg.Logging.Level
	if logLevelFlag != "" {
		level = logLevelFlag
	}
	return logging.NewLogger(logging.Config{
		Format: logging.Format(cfg.Logging.Format),
		Level:  logging.LogLevel(level),
	})
}
