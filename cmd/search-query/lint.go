// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	searchquery "github.com/CoLRev-Environment/search-query"
	"github.com/CoLRev-Environment/search-query/pkg/lint"
)

var lintCmd = &cobra.Command{
	Use:   "lint [query]",
	Short: "Check a query string and report findings",
	Long: `Lint parses the query in the platform's syntax and prints every finding
with a caret pointer into the query string. In lenient mode correctable
problems are fixed silently and reported as warnings; in strict mode any
error-level finding fails the command.`,
	RunE: runLint,
}

func runLint(cmd *cobra.Command, args []string) error {
	queryStr, err := queryArg(args)
	if err != nil {
		return err
	}
	mode, err := modeFlag(cmd)
	if err != nil {
		return err
	}
	platform := platformFlag(cmd, "platform")
	field, _ := cmd.Flags().GetString("field")
	silent, _ := cmd.Flags().GetBool("silent")
	asJSON, _ := cmd.Flags().GetBool("json")

	messages, err := searchquery.Lint(platform, queryStr, searchquery.Options{
		Mode:   mode,
		Silent: silent,
		Field:  field,
	})
	if err != nil {
		return err
	}

	if asJSON {
		enc := json.NewEncoder(os.Stdout)
		enc.SetIndent("", "  ")
		if err := enc.Encode(messages); err != nil {
			return fmt.Errorf("encoding findings: %w", err)
		}
	} else if len(messages) == 0 {
		fmt.Println("no findings")
	} else {
		printMessages(queryStr, messages)
	}

	for _, m := range messages {
		if m.Severity == lint.SeverityFatal || (mode == lint.ModeStrict && m.Severity == lint.SeverityError) {
			return fmt.Errorf("query has %s findings", m.Severity)
		}
	}
	return nil
}

func init() {
	lintCmd.Flags().StringP("platform", "p", "", "platform syntax (pubmed, wos, ebsco)")
	lintCmd.Flags().String("mode", "", "lint mode (strict or lenient)")
	lintCmd.Flags().String("field", "", "general search field applied outside the query string")
	lintCmd.Flags().Bool("silent", false, "suppress warning-level findings")
	lintCmd.Flags().Bool("json", false, "print findings as JSON")
	rootCmd.AddCommand(lintCmd)
}
