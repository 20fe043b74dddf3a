package main

import (
	"github.com/spf13/cobra"

	"depmap/internal/version"
)

var (
	// logLevelFlag is the CLI --log-level flag value
	logLevelFlag string
)

var rootCmd = &cobra.Command{
	Use:   "depmap",
	Short: "depmap - source dependency graph builder",
	Long: `depmap builds a directed dependency graph over a source tree by scanning
each file's textual import declarations. The graph tracks, per module, which
other modules it imports and how many distinct files import it.`,
	Version: version.Version,
}

func init() {
	rootCmd.SetVersionTemplate("depmap version {{.Version}}\n")
	rootCmd.PersistentFlags().StringVar(&logLevelFlag, "log-level", "",
		"Log level: debug, info, warn, or error (default: from config)")
}
