// Package commands implements CLI command handlers for codegauge.
package commands

import (
	"github.com/spf13/cobra"
)

// NewRootCommand creates the top-level codegauge command with all subcommands
// attached.
func NewRootCommand() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "codegauge",
		Short: "Codegauge - code quality metrics for Python sources",
		Long: `Codegauge computes code quality metrics for Python source trees.

Commands:
  run       Analyze a folder and report complexity, Halstead, raw and
            maintainability metrics
  watch     Re-run analysis whenever watched Python files change
  serve     Start an MCP server exposing the analyzers as tools
  version   Show version information`,
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	rootCmd.PersistentFlags().BoolP("quiet", "q", false, "Suppress per-file warnings")
	rootCmd.PersistentFlags().String("config", "", "Config file path (default: codegauge.yaml in . or /etc/codegauge)")

	rootCmd.AddCommand(NewRunCommand())
	rootCmd.AddCommand(NewWatchCommand())
	rootCmd.AddCommand(NewServeCommand())
	rootCmd.AddCommand(NewVersionCommand())

	return rootCmd
}

// Execute runs the root command against os.Args.
func Execute() error {
	return NewRootCommand().Execute()
}

func configFlag(cmd *cobra.Command) string {
	path, err := cmd.Flags().GetString("config")
	if err != nil {
		return ""
	}

	return path
}

func isQuiet(cmd *cobra.Command) bool {
	quiet, err := cmd.Flags().GetBool("quiet")
	if err != nil {
		return false
	}

	return quiet
}
