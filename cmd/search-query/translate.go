// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	searchquery "github.com/CoLRev-Environment/search-query"
)

var translateCmd = &cobra.Command{
	Use:   "translate [query]",
	Short: "Translate a query between platform syntaxes",
	Long: `Translate parses the query in the source platform's syntax, converts it
through the generic tree, and prints it in the target platform's syntax.
Field restrictions without a target equivalent are replaced with the
target's default field and reported as warnings.`,
	RunE: runTranslate,
}

func runTranslate(cmd *cobra.Command, args []string) error {
	queryStr, err := queryArg(args)
	if err != nil {
		return err
	}
	mode, err := modeFlag(cmd)
	if err != nil {
		return err
	}
	from := platformFlag(cmd, "from")
	to, _ := cmd.Flags().GetString("to")
	if to == "" {
		return fmt.Errorf("target platform required: use --to")
	}
	field, _ := cmd.Flags().GetString("field")

	out, messages, err := searchquery.Translate(from, queryStr, to, searchquery.Options{
		Mode:  mode,
		Field: field,
	})
	if err != nil {
		return err
	}
	printMessages(queryStr, messages)
	fmt.Println(out)
	return nil
}

func init() {
	translateCmd.Flags().String("from", "", "source platform syntax")
	translateCmd.Flags().String("to", "", "target platform syntax")
	translateCmd.Flags().String("mode", "", "lint mode (strict or lenient)")
	translateCmd.Flags().String("field", "", "general search field applied outside the query string")
	rootCmd.AddCommand(translateCmd)
}
