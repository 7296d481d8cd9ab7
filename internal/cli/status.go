package cli

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/hctsai/agentup/internal/config"
	"github.com/hctsai/agentup/internal/pyenv"
	"github.com/hctsai/agentup/internal/runner"
	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the environment probe snapshot",
	Long: `Show the environment probe snapshot.

Reports whether the virtual environment marker directory exists, whether
the secrets file is present, and which base interpreter would be used.
The snapshot is computed once at startup.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		configPath, _ := cmd.Flags().GetString("config")

		cfg, err := config.Load(configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return NewExitError(ExitInvalidArguments)
		}

		status := pyenv.Probe(runner.ExecRunner{}, cfg.VenvDir, cfg.EnvFile, cfg.PythonCmd)
		printStatus(cfg, status)
		return nil
	},
}

// printStatus renders the probe snapshot with pass/fail marks.
func printStatus(cfg *config.Configuration, status pyenv.Status) {
	green := color.New(color.FgGreen).SprintFunc()
	red := color.New(color.FgRed).SprintFunc()

	mark := func(ok bool) string {
		if ok {
			return green("✓")
		}
		return red("✗")
	}

	fmt.Printf("%s Virtual environment: %s\n", mark(status.EnvironmentReady), presence(status.EnvironmentReady, cfg.VenvDir))
	fmt.Printf("%s Secrets file: %s\n", mark(status.SecretsPresent), presence(status.SecretsPresent, cfg.EnvFile))
	if status.Interpreter != "" {
		fmt.Printf("%s Base interpreter: %s\n", mark(true), status.Interpreter)
	} else {
		fmt.Printf("%s Base interpreter: not found in PATH\n", mark(false))
	}

	if !status.EnvironmentReady {
		fmt.Println()
		fmt.Println("Run 'agentup install' to provision the environment.")
	}
}

func presence(present bool, path string) string {
	if present {
		return path + " present"
	}
	return path + " missing"
}

func init() {
	statusCmd.GroupID = GroupUtility
	rootCmd.AddCommand(statusCmd)
}
