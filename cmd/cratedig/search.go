package main

import (
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"cratedig-hq/cratedig/pkg/catalog"
	"cratedig-hq/cratedig/pkg/cli"
)

var searchFlags struct {
	kind    string
	artist  string
	genre   string
	style   string
	country string
	year    string
	format  string
	label   string
	page    int
	perPage int
	sort    string
	order   string
}

var searchCmd = &cobra.Command{
	Use:   "search [query]",
	Short: "Search the catalog database",
	Long: `Search the catalog database for releases, masters, artists, or labels.

Examples:

  cratedig search "nirvana nevermind"
  cratedig search "aphex twin" --type release --genre Electronic
  cratedig search --label "Warp Records" --year 1994`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		query := ""
		if len(args) > 0 {
			query = args[0]
		}

		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.Close()

		resp, err := a.service.Search(cli.SetupSignalHandler(), catalog.SearchOptions{
			Query:   query,
			Type:    searchFlags.kind,
			Artist:  searchFlags.artist,
			Genre:   searchFlags.genre,
			Style:   searchFlags.style,
			Country: searchFlags.country,
			Year:    searchFlags.year,
			Format:  searchFlags.format,
			Label:   searchFlags.label,
			Page: catalog.PageOptions{
				Page:    searchFlags.page,
				PerPage: searchFlags.perPage,
				Sort:    searchFlags.sort,
				Order:   searchFlags.order,
			},
		})
		if err != nil {
			return cli.NewCommandError("search", err)
		}

		if jsonOutput() {
			return formatter().FormatTo(os.Stdout, resp)
		}

		table := cli.NewTable(os.Stdout, "ID", "TYPE", "YEAR", "TITLE")
		for _, r := range resp.Results {
			table.Row(r.ID, r.Type, r.Year, r.Title)
		}
		if err := table.Flush(); err != nil {
			return err
		}
		printPagination(resp.Pagination)
		return nil
	},
}

func printPagination(p catalog.Pagination) {
	if p.Pages > 1 {
		os.Stdout.WriteString(
			"page " + strconv.Itoa(p.Page) + " of " + strconv.Itoa(p.Pages) +
				" (" + strconv.Itoa(p.Items) + " items)\n")
	}
}

func init() {
	searchCmd.Flags().StringVarP(&searchFlags.kind, "type", "t", "", "result type (release, master, artist, label)")
	searchCmd.Flags().StringVar(&searchFlags.artist, "artist", "", "filter by artist name")
	searchCmd.Flags().StringVar(&searchFlags.genre, "genre", "", "filter by genre")
	searchCmd.Flags().StringVar(&searchFlags.style, "style", "", "filter by style")
	searchCmd.Flags().StringVar(&searchFlags.country, "country", "", "filter by country")
	searchCmd.Flags().StringVar(&searchFlags.year, "year", "", "filter by year")
	searchCmd.Flags().StringVar(&searchFlags.format, "format", "", "filter by format")
	searchCmd.Flags().StringVar(&searchFlags.label, "label", "", "filter by label name")
	searchCmd.Flags().IntVar(&searchFlags.page, "page", 1, "page number")
	searchCmd.Flags().IntVar(&searchFlags.perPage, "per-page", 50, "results per page (max 100)")
	searchCmd.Flags().StringVar(&searchFlags.sort, "sort", "", "sort field")
	searchCmd.Flags().StringVar(&searchFlags.order, "order", "asc", "sort order (asc, desc)")

	rootCmd.AddCommand(searchCmd)
}
