package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"consolebot/internal/config"
)

// DefaultConfigFile is where "config init" writes without an argument.
const DefaultConfigFile = "consolebot.yaml"

var forceInit bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Manage the consolebot configuration file",
}

// configInitCmd writes the default configuration
var configInitCmd = &cobra.Command{
	Use:   "init [path]",
	Short: "Write the default configuration",
	Long: `Writes the default configuration to path, or to --config, or to
consolebot.yaml in the current directory. An existing file is only
replaced with --force.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runConfigInit,
}

func init() {
	configInitCmd.Flags().BoolVarP(&forceInit, "force", "f", false, "Overwrite an existing file")
}

func runConfigInit(cmd *cobra.Command, args []string) error {
	path := DefaultConfigFile
	switch {
	case len(args) == 1:
		path = args[0]
	case configPath != "":
		path = configPath
	}

	if _, err := os.Stat(path); err == nil && !forceInit {
		return fmt.Errorf("%s already exists (use --force to overwrite)", path)
	}
	if err := config.DefaultConfig().Save(path); err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "Wrote default configuration to %s\n", path)
	return nil
}
