package cli

import (
	"errors"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/hctsai/agentup/internal/config"
	"github.com/hctsai/agentup/internal/history"
	"github.com/hctsai/agentup/internal/launch"
	"github.com/hctsai/agentup/internal/runner"
	"github.com/spf13/cobra"
)

var startCmd = &cobra.Command{
	Use:   "start",
	Short: "Launch an entry program inside the provisioned environment",
	Long: `Launch an entry program inside the provisioned environment.

Requires a prior 'agentup install'. The child process runs with the
environment activated (VIRTUAL_ENV set, venv scripts directory first on
PATH) and inherits this terminal, so the console session stays interactive.
The GUI entry opens its own local web endpoint.`,
}

var startConsoleCmd = &cobra.Command{
	Use:   "console",
	Short: "Launch the interactive console session",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runStart(cmd, launch.VariantConsole)
	},
}

var startGUICmd = &cobra.Command{
	Use:   "gui",
	Short: "Launch the browser-based interface",
	RunE: func(cmd *cobra.Command, args []string) error {
		return runStart(cmd, launch.VariantGUI)
	},
}

// runStart checks the environment precondition, launches the entry program,
// records the launch, and relays the child's exit status.
func runStart(cmd *cobra.Command, variant launch.Variant) error {
	configPath, _ := cmd.Flags().GetString("config")

	cfg, err := config.Load(configPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return NewExitError(ExitInvalidArguments)
	}

	launcher := launch.NewLauncher(cfg, runner.ExecRunner{})

	started := time.Now()
	result, err := launcher.Run(cmd.Context(), variant)
	if err != nil {
		return printLaunchError(os.Stderr, launcher.EntryScript(variant), err)
	}

	recordLaunch(cfg.StateDir, variant, started, result.ExitCode)

	if result.ExitCode != 0 {
		return printChildFailure(os.Stderr, variant, result.ExitCode)
	}
	return nil
}

// printLaunchError reports a failure to launch the entry program and maps it
// to the matching exit code. The program was never spawned on this path.
func printLaunchError(errOut io.Writer, entry string, err error) error {
	if errors.Is(err, launch.ErrEnvironmentMissing) {
		fmt.Fprintln(errOut, "✗ Error: virtual environment not found.")
		fmt.Fprintln(errOut, "  Run 'agentup install' first, then try again.")
		return NewExitError(ExitMissingEnvironment)
	}
	fmt.Fprintf(errOut, "✗ Error: launching %s: %v\n", entry, err)
	return NewExitError(ExitChildFailure)
}

// printChildFailure reports a nonzero exit from the entry program.
func printChildFailure(errOut io.Writer, variant launch.Variant, exitCode int) error {
	fmt.Fprintf(errOut, "✗ The %s session exited unexpectedly (exit code %d).\n", variant, exitCode)
	return NewExitError(ExitChildFailure)
}

// recordLaunch appends a history entry. History is best effort: a failure
// to record never fails the launch itself.
func recordLaunch(stateDir string, variant launch.Variant, started time.Time, exitCode int) {
	status := history.StatusCompleted
	if exitCode != 0 {
		status = history.StatusFailed
	}

	entry := history.Entry{
		Variant:   string(variant),
		Status:    status,
		CreatedAt: started,
		ExitCode:  exitCode,
		Duration:  time.Since(started).Round(time.Millisecond).String(),
	}
	if err := history.Append(stateDir, entry); err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not record launch history: %v\n", err)
	}
}

func init() {
	startCmd.GroupID = GroupEnvironment
	rootCmd.AddCommand(startCmd)
	startCmd.AddCommand(startConsoleCmd)
	startCmd.AddCommand(startGUICmd)
}
