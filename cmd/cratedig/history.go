package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"cratedig-hq/cratedig/pkg/cli"
	"cratedig-hq/cratedig/pkg/history"
)

var historyFlags struct {
	limit int
	prune bool
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Show or prune the local request audit trail",
	Long: `Show recent entries from the local request history, or apply the
retention policy with --prune. History recording is controlled by the
history section of the configuration.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.Close()

		if a.history == nil {
			return fmt.Errorf("history is disabled; enable it in the configuration or set CRATEDIG_HISTORY_ENABLED=1")
		}

		ctx := cli.SetupSignalHandler()

		if historyFlags.prune {
			pruner := history.NewPruner(a.history, history.PruneConfig{
				RetentionDays: a.cfg.History.RetentionDays,
				MaxEntries:    a.cfg.History.MaxEntries,
			}, a.logger)
			deleted, err := pruner.Prune(ctx)
			if err != nil {
				return cli.NewCommandError("history", err)
			}
			fmt.Printf("Pruned %d entries\n", deleted)
			return nil
		}

		entries, err := a.history.List(ctx, historyFlags.limit)
		if err != nil {
			return cli.NewCommandError("history", err)
		}

		if jsonOutput() {
			return formatter().FormatTo(os.Stdout, entries)
		}

		table := cli.NewTable(os.Stdout, "TIME", "METHOD", "ENDPOINT", "STATUS", "KIND", "DURATION")
		for _, e := range entries {
			kind := e.ErrorKind
			if kind == "" {
				kind = "-"
			}
			table.Row(e.CreatedAt.Local().Format("2006-01-02 15:04:05"),
				e.Method, e.Endpoint, e.StatusCode, kind, e.Duration)
		}
		return table.Flush()
	},
}

func init() {
	historyCmd.Flags().IntVar(&historyFlags.limit, "limit", 50, "number of entries to show")
	historyCmd.Flags().BoolVar(&historyFlags.prune, "prune", false, "apply the retention policy now")

	rootCmd.AddCommand(historyCmd)
}
