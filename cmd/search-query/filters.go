// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	searchquery "github.com/CoLRev-Environment/search-query"
	"github.com/CoLRev-Environment/search-query/internal/filterdb"
)

var filtersCmd = &cobra.Command{
	Use:   "filters",
	Short: "Manage predefined filter queries",
	Long: `Filters manages a local SQLite database of named, reusable query
fragments (study-type filters, language restrictions, publication windows)
that can be ANDed onto topic queries. Filters are keyed by name and
platform.`,
}

func openFilterDB(cmd *cobra.Command) (*filterdb.Store, error) {
	path, _ := cmd.Flags().GetString("db")
	if path == "" {
		path = viper.GetString("filter_db")
	}
	return filterdb.Open(path)
}

var filtersListCmd = &cobra.Command{
	Use:   "list",
	Short: "List stored filters",
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openFilterDB(cmd)
		if err != nil {
			return err
		}
		defer store.Close()

		platform, _ := cmd.Flags().GetString("platform")
		filters, err := store.List(context.Background(), platform)
		if err != nil {
			return err
		}
		if len(filters) == 0 {
			fmt.Println("no filters stored")
			return nil
		}
		for _, f := range filters {
			fmt.Printf("%s/%s: %s\n", f.Platform, f.Name, f.QueryString)
			if f.Description != "" {
				fmt.Printf("  %s\n", f.Description)
			}
		}
		return nil
	},
}

var filtersAddCmd = &cobra.Command{
	Use:   "add [query]",
	Short: "Store a filter query",
	Long: `Add lints the filter in the platform's syntax and stores it under the
given name. An existing filter with the same name and platform is
replaced.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		queryStr, err := queryArg(args)
		if err != nil {
			return err
		}
		name, _ := cmd.Flags().GetString("name")
		if name == "" {
			return fmt.Errorf("filter name required: use --name")
		}
		platform := platformFlag(cmd, "platform")
		description, _ := cmd.Flags().GetString("description")

		// The stored string must parse on its platform.
		if _, messages, err := searchquery.Parse(platform, queryStr, searchquery.Options{}); err != nil {
			printMessages(queryStr, messages)
			return err
		}

		store, err := openFilterDB(cmd)
		if err != nil {
			return err
		}
		defer store.Close()

		err = store.Put(context.Background(), filterdb.Filter{
			Name:        name,
			Platform:    platform,
			QueryString: queryStr,
			Description: description,
		})
		if err != nil {
			return err
		}
		fmt.Printf("stored filter %s/%s\n", platform, name)
		return nil
	},
}

var filtersGetCmd = &cobra.Command{
	Use:   "get [name]",
	Short: "Print a stored filter query",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openFilterDB(cmd)
		if err != nil {
			return err
		}
		defer store.Close()

		platform := platformFlag(cmd, "platform")
		f, err := store.Get(context.Background(), args[0], platform)
		if err != nil {
			return err
		}
		fmt.Println(f.QueryString)
		return nil
	},
}

var filtersDeleteCmd = &cobra.Command{
	Use:   "delete [name]",
	Short: "Delete a stored filter",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		store, err := openFilterDB(cmd)
		if err != nil {
			return err
		}
		defer store.Close()

		platform := platformFlag(cmd, "platform")
		if err := store.Delete(context.Background(), args[0], platform); err != nil {
			return err
		}
		fmt.Printf("deleted filter %s/%s\n", platform, args[0])
		return nil
	},
}

func init() {
	filtersCmd.PersistentFlags().String("db", "", "filter database path")
	filtersCmd.PersistentFlags().StringP("platform", "p", "", "platform syntax (pubmed, wos, ebsco)")
	filtersAddCmd.Flags().String("name", "", "filter name")
	filtersAddCmd.Flags().String("description", "", "what the filter selects")
	filtersCmd.AddCommand(filtersListCmd, filtersAddCmd, filtersGetCmd, filtersDeleteCmd)
	rootCmd.AddCommand(filtersCmd)
}
