// Package cli provides Cobra-based CLI commands for the agentup bootstrap
// tool. It defines the provisioning command (install), the launchers
// (start console, start gui), and utility commands (status, doctor,
// history, clean, version).
package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"
)

// Command group IDs for organizing help output
const (
	GroupEnvironment = "environment"
	GroupUtility     = "utility"
)

var rootCmd = &cobra.Command{
	Use:   "agentup",
	Short: "agentup environment bootstrap and launcher",
	Long: `agentup environment bootstrap and launcher

Provisions a Python virtual environment for the Gemini retoucher agent,
installs its dependency manifest, scaffolds the .env secrets file, and
launches the console or GUI entry point inside the activated environment.`,
	Example: `  # One-time setup: venv + requirements + .env scaffold
  agentup install

  # Launch the interactive console session
  agentup start console

  # Launch the browser-based interface
  agentup start gui

  # Inspect the environment
  agentup status
  agentup doctor`,
	SilenceUsage:  true,
	SilenceErrors: true,
}

// Execute runs the root command
func Execute() error {
	return execute(os.Stderr, os.Args[1:])
}

// execute runs the root command with the given arguments. Errors raised by
// argument parsing (unknown command, unknown flag) are printed here; RunE
// handlers print their own messages and return an exitError, which is
// passed through without printing again.
func execute(errOut io.Writer, args []string) error {
	rootCmd.SetArgs(args)
	err := rootCmd.Execute()
	if err != nil {
		var ee *exitError
		if !errors.As(err, &ee) {
			fmt.Fprintf(errOut, "Error: %v\n", err)
		}
	}
	return err
}

func init() {
	rootCmd.AddGroup(&cobra.Group{ID: GroupEnvironment, Title: "Environment:"})
	rootCmd.AddGroup(&cobra.Group{ID: GroupUtility, Title: "Utility:"})

	rootCmd.SetHelpCommandGroupID(GroupUtility)
	rootCmd.SetCompletionCommandGroupID(GroupUtility)

	// Global flags
	rootCmd.PersistentFlags().StringP("config", "c", ".agentup/config.json", "Path to config file")
}
