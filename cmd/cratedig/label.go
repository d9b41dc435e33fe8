package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"cratedig-hq/cratedig/pkg/catalog"
	"cratedig-hq/cratedig/pkg/cli"
)

var labelFlags struct {
	releases bool
	page     int
	perPage  int
}

var labelCmd = &cobra.Command{
	Use:   "label <id>",
	Short: "Show a label profile or release list",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("label id must be numeric: %q", args[0])
		}

		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.Close()

		ctx := cli.SetupSignalHandler()

		if labelFlags.releases {
			list, err := a.service.LabelReleases(ctx, id, catalog.PageOptions{
				Page:    labelFlags.page,
				PerPage: labelFlags.perPage,
			})
			if err != nil {
				return cli.NewCommandError("label", err)
			}
			if jsonOutput() {
				return formatter().FormatTo(os.Stdout, list)
			}
			table := cli.NewTable(os.Stdout, "ID", "YEAR", "ARTIST", "TITLE", "FORMAT")
			for _, r := range list.Releases {
				table.Row(r.ID, r.Year, r.Artist, r.Title, r.Format)
			}
			if err := table.Flush(); err != nil {
				return err
			}
			printPagination(list.Pagination)
			return nil
		}

		label, err := a.service.Label(ctx, id)
		if err != nil {
			return cli.NewCommandError("label", err)
		}
		if jsonOutput() {
			return formatter().FormatTo(os.Stdout, label)
		}

		fmt.Printf("%s (id %d)\n", label.Name, label.ID)
		if label.Profile != "" {
			fmt.Printf("\n%s\n", label.Profile)
		}
		if len(label.Sublabels) > 0 {
			fmt.Println("\nSublabels:")
			for _, s := range label.Sublabels {
				fmt.Printf("  %s (id %d)\n", s.Name, s.ID)
			}
		}
		return nil
	},
}

func init() {
	labelCmd.Flags().BoolVar(&labelFlags.releases, "releases", false, "list the label's releases")
	labelCmd.Flags().IntVar(&labelFlags.page, "page", 1, "page number")
	labelCmd.Flags().IntVar(&labelFlags.perPage, "per-page", 50, "results per page (max 100)")

	rootCmd.AddCommand(labelCmd)
}
