package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/spf13/cobra"

	"cratedig-hq/cratedig/pkg/catalog"
	"cratedig-hq/cratedig/pkg/cli"
)

var releaseCmd = &cobra.Command{
	Use:   "release <id>",
	Short: "Show a release with its tracklist",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("release id must be numeric: %q", args[0])
		}

		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.Close()

		release, err := a.service.Release(cli.SetupSignalHandler(), id)
		if err != nil {
			return cli.NewCommandError("release", err)
		}
		if jsonOutput() {
			return formatter().FormatTo(os.Stdout, release)
		}

		var artists []string
		for _, ar := range release.Artists {
			artists = append(artists, ar.Name)
		}
		fmt.Printf("%s - %s (%d)\n", strings.Join(artists, ", "), release.Title, release.Year)

		for _, l := range release.Labels {
			fmt.Printf("Label: %s %s\n", l.Name, l.CatNo)
		}
		if len(release.Genres) > 0 {
			fmt.Printf("Genre: %s\n", strings.Join(release.Genres, ", "))
		}
		if release.Country != "" {
			fmt.Printf("Country: %s\n", release.Country)
		}

		if len(release.Tracklist) > 0 {
			fmt.Println()
			table := cli.NewTable(os.Stdout, "POS", "TITLE", "LENGTH")
			for _, tr := range release.Tracklist {
				table.Row(tr.Position, tr.Title, tr.Duration)
			}
			if err := table.Flush(); err != nil {
				return err
			}
		}
		return nil
	},
}

var masterFlags struct {
	versions bool
	page     int
	perPage  int
}

var masterCmd = &cobra.Command{
	Use:   "master <id>",
	Short: "Show a master release or its pressings",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("master id must be numeric: %q", args[0])
		}

		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.Close()

		ctx := cli.SetupSignalHandler()

		if masterFlags.versions {
			list, err := a.service.MasterVersions(ctx, id, catalog.PageOptions{
				Page:    masterFlags.page,
				PerPage: masterFlags.perPage,
			})
			if err != nil {
				return cli.NewCommandError("master", err)
			}
			if jsonOutput() {
				return formatter().FormatTo(os.Stdout, list)
			}
			table := cli.NewTable(os.Stdout, "ID", "COUNTRY", "RELEASED", "FORMAT", "LABEL")
			for _, v := range list.Versions {
				table.Row(v.ID, v.Country, v.Released, v.Format, v.Label)
			}
			if err := table.Flush(); err != nil {
				return err
			}
			printPagination(list.Pagination)
			return nil
		}

		master, err := a.service.Master(ctx, id)
		if err != nil {
			return cli.NewCommandError("master", err)
		}
		if jsonOutput() {
			return formatter().FormatTo(os.Stdout, master)
		}

		fmt.Printf("%s (%d)\n", master.Title, master.Year)
		if master.MainRelease != 0 {
			fmt.Printf("Main release: %d\n", master.MainRelease)
		}
		if len(master.Genres) > 0 {
			fmt.Printf("Genre: %s\n", strings.Join(master.Genres, ", "))
		}
		return nil
	},
}

func init() {
	masterCmd.Flags().BoolVar(&masterFlags.versions, "versions", false, "list pressings of this master")
	masterCmd.Flags().IntVar(&masterFlags.page, "page", 1, "page number")
	masterCmd.Flags().IntVar(&masterFlags.perPage, "per-page", 50, "results per page (max 100)")

	rootCmd.AddCommand(releaseCmd)
	rootCmd.AddCommand(masterCmd)
}
