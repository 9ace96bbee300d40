// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package main

import (
	"fmt"

	"github.com/spf13/cobra"

	searchquery "github.com/CoLRev-Environment/search-query"
)

var upgradeCmd = &cobra.Command{
	Use:   "upgrade [query]",
	Short: "Rewrite a query from an older syntax generation",
	Long: `Upgrade parses the query in an older registered syntax generation of the
platform and prints it in a newer one (the latest when --to is omitted).
Deprecated constructs are rewritten and reported as warnings; the upgraded
string is re-parsed on the target generation as a validation step.`,
	RunE: runUpgrade,
}

func runUpgrade(cmd *cobra.Command, args []string) error {
	queryStr, err := queryArg(args)
	if err != nil {
		return err
	}
	platform := platformFlag(cmd, "platform")
	from, _ := cmd.Flags().GetString("from")
	if from == "" {
		return fmt.Errorf("source syntax version required: use --from")
	}
	to, _ := cmd.Flags().GetString("to")

	out, messages, err := searchquery.Upgrade(platform, queryStr, from, to)
	if err != nil {
		return err
	}
	printMessages(queryStr, messages)
	fmt.Println(out)
	return nil
}

func init() {
	upgradeCmd.Flags().StringP("platform", "p", "", "platform whose syntax generations to upgrade between")
	upgradeCmd.Flags().String("from", "", "source syntax version (for example 0.9)")
	upgradeCmd.Flags().String("to", "", "target syntax version (default: latest)")
	rootCmd.AddCommand(upgradeCmd)
}
