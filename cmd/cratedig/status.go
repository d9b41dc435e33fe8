package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
)

var statusCmd = &cobra.Command{
	Use:   "status",
	Short: "Show the configured rate limit window",
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.Close()

		status := a.client.RateLimitStatus()

		if jsonOutput() {
			return formatter().FormatTo(os.Stdout, map[string]any{
				"requests_made":      status.RequestsMade,
				"requests_remaining": status.RequestsRemaining,
				"window_seconds":     status.Window.Seconds(),
				"reset_at":           status.ResetAt,
			})
		}

		fmt.Printf("Window: %s\n", status.Window)
		fmt.Printf("Requests made: %d\n", status.RequestsMade)
		fmt.Printf("Requests remaining: %d\n", status.RequestsRemaining)
		if status.RequestsMade > 0 {
			fmt.Printf("Window resets: %s\n", status.ResetAt.Format("15:04:05"))
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(statusCmd)
}
