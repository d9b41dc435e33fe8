package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"cratedig-hq/cratedig/pkg/catalog"
	"cratedig-hq/cratedig/pkg/cli"
)

var artistFlags struct {
	releases bool
	page     int
	perPage  int
	sort     string
	order    string
}

var artistCmd = &cobra.Command{
	Use:   "artist <id>",
	Short: "Show an artist profile or release list",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("artist id must be numeric: %q", args[0])
		}

		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.Close()

		ctx := cli.SetupSignalHandler()

		if artistFlags.releases {
			list, err := a.service.ArtistReleases(ctx, id, catalog.PageOptions{
				Page:    artistFlags.page,
				PerPage: artistFlags.perPage,
				Sort:    artistFlags.sort,
				Order:   artistFlags.order,
			})
			if err != nil {
				return cli.NewCommandError("artist", err)
			}
			if jsonOutput() {
				return formatter().FormatTo(os.Stdout, list)
			}
			table := cli.NewTable(os.Stdout, "ID", "YEAR", "ROLE", "TITLE")
			for _, r := range list.Releases {
				table.Row(r.ID, r.Year, r.Role, r.Title)
			}
			if err := table.Flush(); err != nil {
				return err
			}
			printPagination(list.Pagination)
			return nil
		}

		artist, err := a.service.Artist(ctx, id)
		if err != nil {
			return cli.NewCommandError("artist", err)
		}
		if jsonOutput() {
			return formatter().FormatTo(os.Stdout, artist)
		}

		fmt.Printf("%s (id %d)\n", artist.Name, artist.ID)
		if artist.RealName != "" {
			fmt.Printf("Real name: %s\n", artist.RealName)
		}
		if artist.Profile != "" {
			fmt.Printf("\n%s\n", artist.Profile)
		}
		if len(artist.Members) > 0 {
			fmt.Println("\nMembers:")
			for _, m := range artist.Members {
				fmt.Printf("  %s\n", m.Name)
			}
		}
		return nil
	},
}

func init() {
	artistCmd.Flags().BoolVar(&artistFlags.releases, "releases", false, "list the artist's releases")
	artistCmd.Flags().IntVar(&artistFlags.page, "page", 1, "page number")
	artistCmd.Flags().IntVar(&artistFlags.perPage, "per-page", 50, "results per page (max 100)")
	artistCmd.Flags().StringVar(&artistFlags.sort, "sort", "", "sort field (year, title, format)")
	artistCmd.Flags().StringVar(&artistFlags.order, "order", "asc", "sort order (asc, desc)")

	rootCmd.AddCommand(artistCmd)
}
