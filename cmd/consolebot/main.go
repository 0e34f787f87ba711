// Package main provides the consolebot CLI entry point.
package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"consolebot/internal/config"
	"consolebot/internal/logging"
)

var (
	// Global flags
	configPath string
	demo       bool
	verbose    bool
	asUser     string

	cfg    *config.Config
	logger *zap.Logger
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "consolebot",
	Short: "Talk to a chat bot from the console",
	Long: `consolebot runs a bot on a simulated chat platform that lives in your terminal.

Every line you type is a message to the bot, or to a room after !inroom.
Replies are printed in each format a real platform could show them in
(markdown, HTML, plain text, IM text and ANSI). Use --demo to see only
what a user would see.

Built-in test commands: !inroom, !inperson, !asuser [name], !asadmin.
End the session with Ctrl-D or Ctrl-C.`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		var err error
		cfg, err = config.Load(configPath)
		if err != nil {
			return err
		}
		if demo {
			cfg.Text.DemoMode = true
		}
		if verbose {
			cfg.Logging.Level = "debug"
		}

		logger, err = logging.ForMode(cfg)
		if err != nil {
			return err
		}
		logging.Get(logger, logging.CategoryBoot).Debug("configuration loaded",
			zap.String("path", configPath),
			zap.Strings("admins", cfg.BotAdmins),
			zap.String("username", cfg.Username()))
		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		if logger != nil {
			_ = logger.Sync()
		}
	},
	RunE: runConsole,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", "", "Configuration file (YAML)")
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable verbose logging")
	rootCmd.Flags().BoolVar(&demo, "demo", false, "Demo mode: only show replies as users see them")
	rootCmd.Flags().StringVar(&asUser, "as", "", "Start the session as this user (@name) instead of the first admin")

	configCmd.AddCommand(configInitCmd)
	rootCmd.AddCommand(configCmd)
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}
