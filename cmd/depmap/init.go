package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"depmap/internal/config"
)

var initForce bool

var initCmd = &cobra.Command{
	Use:   "init [path]",
	Short: "Write a default configuration file",
	Long: `Create <path>/.depmap/config.json with the default configuration.

Examples:
  depmap init
  depmap init ./src
  depmap init --force`,
	Args: cobra.MaximumNArgs(1),
	RunE: runInit,
}

func init() {
	initCmd.Flags().BoolVar(&initForce, "force", false, "Overwrite an existing config file")
	rootCmd.AddCommand(initCmd)
}

func runInit(cmd *cobra.Command, args []string) error {
	root := "."
	if len(args) == 1 {
		root = args[0]
	}

	configPath := filepath.Join(root, config.ConfigDirName, "config.json")
	if _, err := os.Stat(configPath); err == nil && !initForce {
		return fmt.Errorf("%s already exists (use --force to overwrite)", configPath)
	}

	if err := config.DefaultConfig().Save(root); err != nil {
		return fmt.Errorf("writing config: %w", err)
	}

	fmt.Fprintf(os.Stdout, "Wrote %s\n", configPath)
	return nil
}
