package cli

import (
	"fmt"
	"os"

	"github.com/fatih/color"
	"github.com/hctsai/agentup/internal/config"
	"github.com/hctsai/agentup/internal/history"
	"github.com/spf13/cobra"
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "List recorded launches",
	Long: `List recorded launches from the state directory.

Every 'agentup start' appends one record with the entry variant, exit code,
and duration.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		configPath, _ := cmd.Flags().GetString("config")
		limit, _ := cmd.Flags().GetInt("limit")

		cfg, err := config.Load(configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return NewExitError(ExitInvalidArguments)
		}

		f, err := history.Load(cfg.StateDir)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			return NewExitError(ExitInvalidArguments)
		}

		if len(f.Entries) == 0 {
			fmt.Println("No launches recorded yet.")
			return nil
		}

		entries := f.Entries
		if limit > 0 && len(entries) > limit {
			entries = entries[len(entries)-limit:]
		}

		printHistory(entries)
		return nil
	},
}

// printHistory renders entries newest first.
func printHistory(entries []history.Entry) {
	green := color.New(color.FgGreen).SprintFunc()
	red := color.New(color.FgRed).SprintFunc()

	for i := len(entries) - 1; i >= 0; i-- {
		e := entries[i]
		status := green(e.Status)
		if e.Status != history.StatusCompleted {
			status = red(fmt.Sprintf("%s (exit %d)", e.Status, e.ExitCode))
		}
		fmt.Printf("%s  %-7s  %-9s  %8s  %s\n",
			e.CreatedAt.Format("2006-01-02 15:04:05"),
			e.Variant,
			status,
			e.Duration,
			e.ID,
		)
	}
}

func init() {
	historyCmd.GroupID = GroupUtility
	rootCmd.AddCommand(historyCmd)

	historyCmd.Flags().IntP("limit", "n", 0, "Show only the most recent N launches (0 = all)")
}
