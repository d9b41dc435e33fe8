package main

import (
	"fmt"
	"os"
	"strconv"

	"github.com/spf13/cobra"

	"cratedig-hq/cratedig/pkg/catalog"
	"cratedig-hq/cratedig/pkg/cli"
)

var collectionFlags struct {
	folder  int
	page    int
	perPage int
	sort    string
	order   string
	add     int
}

var collectionCmd = &cobra.Command{
	Use:   "collection <username>",
	Short: "List a user's collection or add a release to it",
	Long: `List a user's collection folder, or add a release with --add.

Examples:

  cratedig collection rodneyfool
  cratedig collection rodneyfool --sort artist --order desc
  cratedig collection rodneyfool --folder 1 --add 249504`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		username := args[0]

		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.Close()

		ctx := cli.SetupSignalHandler()

		if collectionFlags.add != 0 {
			added, err := a.service.AddToCollection(ctx, username, collectionFlags.folder, collectionFlags.add)
			if err != nil {
				return cli.NewCommandError("collection", err)
			}
			if jsonOutput() {
				return formatter().FormatTo(os.Stdout, added)
			}
			fmt.Printf("Added release %d to folder %d (instance %d)\n",
				collectionFlags.add, collectionFlags.folder, added.InstanceID)
			return nil
		}

		page, err := a.service.CollectionReleases(ctx, username, collectionFlags.folder, catalog.PageOptions{
			Page:    collectionFlags.page,
			PerPage: collectionFlags.perPage,
			Sort:    collectionFlags.sort,
			Order:   collectionFlags.order,
		})
		if err != nil {
			return cli.NewCommandError("collection", err)
		}
		if jsonOutput() {
			return formatter().FormatTo(os.Stdout, page)
		}

		table := cli.NewTable(os.Stdout, "ID", "YEAR", "TITLE", "RATING")
		for _, item := range page.Releases {
			table.Row(item.BasicInformation.ID, item.BasicInformation.Year,
				item.BasicInformation.Title, item.Rating)
		}
		if err := table.Flush(); err != nil {
			return err
		}
		printPagination(page.Pagination)
		return nil
	},
}

var wantlistCmd = &cobra.Command{
	Use:   "wantlist <username>",
	Short: "List a user's wantlist",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.Close()

		page, err := a.service.Wantlist(cli.SetupSignalHandler(), args[0], catalog.PageOptions{
			Page:    collectionFlags.page,
			PerPage: collectionFlags.perPage,
		})
		if err != nil {
			return cli.NewCommandError("wantlist", err)
		}
		if jsonOutput() {
			return formatter().FormatTo(os.Stdout, page)
		}

		table := cli.NewTable(os.Stdout, "ID", "YEAR", "TITLE", "NOTES")
		for _, w := range page.Wants {
			table.Row(w.BasicInformation.ID, w.BasicInformation.Year,
				w.BasicInformation.Title, w.Notes)
		}
		if err := table.Flush(); err != nil {
			return err
		}
		printPagination(page.Pagination)
		return nil
	},
}

var userCmd = &cobra.Command{
	Use:   "user <username>",
	Short: "Show a user profile",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		a, err := newApp()
		if err != nil {
			return err
		}
		defer a.Close()

		user, err := a.service.User(cli.SetupSignalHandler(), args[0])
		if err != nil {
			return cli.NewCommandError("user", err)
		}
		if jsonOutput() {
			return formatter().FormatTo(os.Stdout, user)
		}

		fmt.Printf("%s (id %d)\n", user.Username, user.ID)
		if user.Name != "" {
			fmt.Printf("Name: %s\n", user.Name)
		}
		if user.Location != "" {
			fmt.Printf("Location: %s\n", user.Location)
		}
		fmt.Printf("Collection: %s items\n", strconv.Itoa(user.NumCollection))
		fmt.Printf("Wantlist: %s items\n", strconv.Itoa(user.NumWantlist))
		return nil
	},
}

func init() {
	collectionCmd.Flags().IntVar(&collectionFlags.folder, "folder", 0, "collection folder id (0 = all)")
	collectionCmd.Flags().IntVar(&collectionFlags.page, "page", 1, "page number")
	collectionCmd.Flags().IntVar(&collectionFlags.perPage, "per-page", 50, "results per page (max 100)")
	collectionCmd.Flags().StringVar(&collectionFlags.sort, "sort", "", "sort field (artist, title, added)")
	collectionCmd.Flags().StringVar(&collectionFlags.order, "order", "asc", "sort order (asc, desc)")
	collectionCmd.Flags().IntVar(&collectionFlags.add, "add", 0, "release id to add to the folder")

	wantlistCmd.Flags().IntVar(&collectionFlags.page, "page", 1, "page number")
	wantlistCmd.Flags().IntVar(&collectionFlags.perPage, "per-page", 50, "results per page (max 100)")

	rootCmd.AddCommand(collectionCmd)
	rootCmd.AddCommand(wantlistCmd)
	rootCmd.AddCommand(userCmd)
}
