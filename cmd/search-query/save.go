// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	searchquery "github.com/CoLRev-Environment/search-query"
	"github.com/CoLRev-Environment/search-query/internal/searchfile"
)

var saveCmd = &cobra.Command{
	Use:   "save [query]",
	Short: "Save a query to a search file",
	Long: `Save parses the query, then writes it to a search file together with the
platform, syntax version, general field, and the generic tree rendering.
The file extension selects the format: .json writes JSON, anything else
YAML.`,
	RunE: runSave,
}

func runSave(cmd *cobra.Command, args []string) error {
	queryStr, err := queryArg(args)
	if err != nil {
		return err
	}
	out, _ := cmd.Flags().GetString("out")
	if out == "" {
		return fmt.Errorf("output path required: use --out")
	}
	platform := platformFlag(cmd, "platform")
	syntaxVersion, _ := cmd.Flags().GetString("syntax-version")
	field, _ := cmd.Flags().GetString("field")

	tree, messages, err := searchquery.Parse(platform, queryStr, searchquery.Options{
		Version: syntaxVersion,
		Field:   field,
	})
	if err != nil {
		printMessages(queryStr, messages)
		return err
	}
	printMessages(queryStr, messages)

	generic, err := searchquery.ToString("generic", tree, searchquery.Options{})
	if err != nil {
		return err
	}
	record := &searchfile.Record{
		Platform:     platform,
		Version:      syntaxVersion,
		SearchString: queryStr,
		Field:        field,
		GenericQuery: generic,
		Saved:        time.Now().UTC(),
	}
	if err := searchfile.Write(out, record); err != nil {
		return err
	}
	fmt.Println("saved", out)
	return nil
}

var showCmd = &cobra.Command{
	Use:   "show [file]",
	Short: "Show a saved search file",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		record, err := searchfile.Read(args[0])
		if err != nil {
			return err
		}
		fmt.Printf("platform:      %s\n", record.Platform)
		if record.Version != "" {
			fmt.Printf("version:       %s\n", record.Version)
		}
		fmt.Printf("search string: %s\n", record.SearchString)
		if record.Field != "" {
			fmt.Printf("field:         %s\n", record.Field)
		}
		if record.GenericQuery != "" {
			fmt.Printf("generic query: %s\n", record.GenericQuery)
		}
		if !record.Saved.IsZero() {
			fmt.Printf("saved:         %s\n", record.Saved.Format(time.RFC3339))
		}
		return nil
	},
}

func init() {
	saveCmd.Flags().StringP("platform", "p", "", "platform syntax (pubmed, wos, ebsco)")
	saveCmd.Flags().String("syntax-version", "", "registered syntax version (default: latest)")
	saveCmd.Flags().String("field", "", "general search field applied outside the query string")
	saveCmd.Flags().String("out", "", "output path (.yaml or .json)")
	rootCmd.AddCommand(saveCmd)
	rootCmd.AddCommand(showCmd)
}
