package cli

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/hctsai/agentup/internal/config"
	"github.com/hctsai/agentup/internal/pyenv"
	"github.com/spf13/cobra"
)

var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Remove the virtual environment",
	Long: `Remove the virtual environment marker directory.

The requirements manifest and the .env secrets file are left untouched.
Run 'agentup install' afterwards to provision from scratch.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		configPath, _ := cmd.Flags().GetString("config")
		skipConfirm, _ := cmd.Flags().GetBool("yes")

		cfg, err := config.Load(configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return NewExitError(ExitInvalidArguments)
		}

		layout := pyenv.Layout{Root: cfg.VenvDir}
		if !layout.Exists() {
			fmt.Printf("Nothing to clean: %s not found.\n", cfg.VenvDir)
			return nil
		}

		if !skipConfirm {
			fmt.Printf("Remove %s? [y/N]: ", cfg.VenvDir)
			reader := bufio.NewReader(os.Stdin)
			answer, _ := reader.ReadString('\n')
			answer = strings.ToLower(strings.TrimSpace(answer))
			if answer != "y" && answer != "yes" {
				fmt.Println("Cancelled.")
				return nil
			}
		}

		if err := os.RemoveAll(cfg.VenvDir); err != nil {
			fmt.Fprintf(os.Stderr, "Error: removing %s: %v\n", cfg.VenvDir, err)
			return NewExitError(ExitProvisionFailed)
		}

		fmt.Printf("✓ Removed %s\n", cfg.VenvDir)
		return nil
	},
}

func init() {
	cleanCmd.GroupID = GroupEnvironment
	rootCmd.AddCommand(cleanCmd)

	cleanCmd.Flags().BoolP("yes", "y", false, "Skip the confirmation prompt")
}
