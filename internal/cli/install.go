package cli

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/hctsai/agentup/internal/config"
	"github.com/hctsai/agentup/internal/progress"
	"github.com/hctsai/agentup/internal/provision"
	"github.com/hctsai/agentup/internal/pyenv"
	"github.com/hctsai/agentup/internal/runner"
	"github.com/spf13/cobra"
)

var installCmd = &cobra.Command{
	Use:   "install",
	Short: "Provision the Python environment (venv, requirements, .env)",
	Long: `Provision the Python environment.

Creates the virtual environment directory if absent, installs the dependency
manifest with pip, and scaffolds the .env secrets file with a placeholder
API key when it does not exist yet. Re-running install on a provisioned
checkout is safe: the venv is kept, pip is a no-op for satisfied
requirements, and an existing .env is never overwritten.`,
	Example: `  # Fresh checkout setup
  agentup install

  # Use a specific base interpreter
  agentup install --python python3.12`,
	RunE: func(cmd *cobra.Command, args []string) error {
		configPath, _ := cmd.Flags().GetString("config")
		pythonCmd, _ := cmd.Flags().GetString("python")
		showProgress, _ := cmd.Flags().GetBool("progress")

		cfg, err := config.Load(configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return NewExitError(ExitInvalidArguments)
		}
		if cmd.Flags().Changed("python") {
			cfg.PythonCmd = pythonCmd
		}
		if cmd.Flags().Changed("progress") {
			cfg.ShowProgress = showProgress
		}

		prov := provision.NewProvisioner(cfg, runner.ExecRunner{})

		var display *progress.Display
		if cfg.ShowProgress {
			display = progress.NewDisplay(progress.Detect())
			display.Start(fmt.Sprintf("Provisioning environment in %s...", cfg.VenvDir))
		}

		outcome, err := prov.Install(cmd.Context())
		if err != nil {
			if display != nil {
				display.Fail("Provisioning failed", err)
			}
			return printInstallError(os.Stderr, display == nil, err)
		}

		if display != nil {
			display.Complete("Provisioning finished")
		}
		printInstallSummary(cfg, outcome)
		return nil
	},
}

// printInstallError reports a provisioning failure with remediation guidance
// and maps it to the matching exit code. headline controls whether the error
// line itself is printed; it is false when a progress display already
// announced the failure, so the error is never printed twice.
func printInstallError(errOut io.Writer, headline bool, err error) error {
	if headline {
		fmt.Fprintf(errOut, "✗ Error: %v\n", err)
	}

	if errors.Is(err, pyenv.ErrInterpreterNotFound) {
		fmt.Fprintln(errOut, "  Install Python 3 from https://www.python.org/downloads/ and try again.")
		return NewExitError(ExitMissingInterpreter)
	}

	var step *provision.StepError
	if errors.As(err, &step) {
		if step.Stderr != "" {
			fmt.Fprint(errOut, step.Stderr)
		}
		return NewExitError(ExitProvisionFailed)
	}

	return NewExitError(ExitProvisionFailed)
}

// printInstallSummary reports what the provisioning run changed.
func printInstallSummary(cfg *config.Configuration, outcome *provision.Outcome) {
	fmt.Printf("✓ Using interpreter %s\n", outcome.Interpreter)

	if outcome.VenvCreated {
		fmt.Printf("✓ Created virtual environment at %s\n", cfg.VenvDir)
	} else {
		fmt.Printf("✓ Virtual environment already present at %s\n", cfg.VenvDir)
	}

	fmt.Printf("✓ Requirements installed from %s\n", cfg.RequirementsFile)

	if outcome.SecretsCreated {
		fmt.Printf("✓ Created %s with a placeholder %s\n", cfg.EnvFile, cfg.APIKeyName)
		fmt.Printf("  Edit %s and set your %s before launching.\n", cfg.EnvFile, cfg.APIKeyName)
	}

	fmt.Println()
	fmt.Println("Setup complete. Launch with 'agentup start console' or 'agentup start gui'.")
}

func init() {
	installCmd.GroupID = GroupEnvironment
	rootCmd.AddCommand(installCmd)

	installCmd.Flags().String("python", "", "Base interpreter to provision with (default: auto-detect)")
	installCmd.Flags().Bool("progress", false, "Show a progress spinner during provisioning")
}
