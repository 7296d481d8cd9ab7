package cli

import (
	"fmt"
	"os"

	"github.com/hctsai/agentup/internal/config"
	"github.com/hctsai/agentup/internal/health"
	"github.com/hctsai/agentup/internal/runner"
	"github.com/spf13/cobra"
)

var doctorCmd = &cobra.Command{
	Use:   "doctor",
	Short: "Run health checks for the agent environment",
	Long: `Run health checks to verify the environment is ready to launch.

This command checks for:
  - A Python interpreter on PATH
  - The virtual environment marker directory
  - The interpreter inside the virtual environment
  - The requirements manifest
  - The .env secrets file and its API key entry

Each check displays a ✓ if passed or ✗ with an error message if failed.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		configPath, _ := cmd.Flags().GetString("config")

		cfg, err := config.Load(configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return NewExitError(ExitInvalidArguments)
		}

		report := health.RunChecks(runner.ExecRunner{}, cfg)
		fmt.Print(health.FormatReport(report))

		if !report.Passed {
			return NewExitError(ExitProvisionFailed)
		}
		return nil
	},
}

func init() {
	doctorCmd.GroupID = GroupUtility
	rootCmd.AddCommand(doctorCmd)
}
