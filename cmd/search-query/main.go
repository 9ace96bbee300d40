// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package main is the entry point for the search-query CLI. It exposes the
// query engine as subcommands: lint, translate, upgrade, save, show, and
// filters.
package main

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/CoLRev-Environment/search-query/pkg/lint"
	"github.com/CoLRev-Environment/search-query/pkg/query"
)

// version is set at build time via ldflags.
var version = "dev"

// rootCmd is the base command for the search-query CLI.
var rootCmd = &cobra.Command{
	Use:   "search-query",
	Short: "Parse, lint, translate and upgrade academic search queries",
	Long: `search-query works with Boolean search queries for academic literature
platforms (PubMed, Web of Science, EBSCOHost). Queries are parsed into a
platform-agnostic tree, linted with auto-correction in lenient mode, and
translated between platform syntaxes through that tree.

Each operation is a subcommand: lint, translate, upgrade, save, show, and
filters.`,
}

func init() {
	cobra.OnInitialize(initConfig)

	rootCmd.PersistentFlags().String("config", "", "config file (default: ./search-query.yaml or ~/.config/search-query/config.yaml)")
}

func initConfig() {
	cfgFile, _ := rootCmd.PersistentFlags().GetString("config")
	if cfgFile != "" {
		viper.SetConfigFile(cfgFile)
	} else {
		viper.SetConfigName("search-query")
		viper.SetConfigType("yaml")
		viper.AddConfigPath(".")

		home, err := os.UserHomeDir()
		if err == nil {
			viper.AddConfigPath(filepath.Join(home, ".config", "search-query"))
		}
	}

	viper.SetEnvPrefix("SEARCH_QUERY")
	viper.AutomaticEnv()

	viper.SetDefault("platform", "pubmed")
	viper.SetDefault("mode", "lenient")
	viper.SetDefault("filter_db", "search-query-filters.db")

	if err := viper.ReadInConfig(); err == nil {
		fmt.Fprintln(os.Stderr, "Using config file:", viper.ConfigFileUsed())
	}
}

// platformFlag resolves the platform from the flag or the config default.
func platformFlag(cmd *cobra.Command, name string) string {
	p, _ := cmd.Flags().GetString(name)
	if p == "" {
		p = viper.GetString("platform")
	}
	return p
}

// modeFlag resolves the lint mode from the flag or the config default.
func modeFlag(cmd *cobra.Command) (lint.Mode, error) {
	m, _ := cmd.Flags().GetString("mode")
	if m == "" {
		m = viper.GetString("mode")
	}
	return lint.ParseMode(m)
}

// queryArg returns the query string: the joined positional arguments, or
// stdin when none are given.
func queryArg(args []string) (string, error) {
	if len(args) > 0 {
		return strings.Join(args, " "), nil
	}
	data, err := os.ReadFile("/dev/stdin")
	if err != nil {
		return "", fmt.Errorf("reading query from stdin: %w", err)
	}
	return strings.TrimSpace(string(data)), nil
}

// printMessages renders linter findings with caret pointers into the query
// string, one finding per block, to stderr.
func printMessages(queryStr string, messages []lint.Message) {
	for _, m := range messages {
		fmt.Fprintln(os.Stderr, m.String())
		if m.Pos.Start >= 0 {
			fmt.Fprintln(os.Stderr, lint.FormatPositions(queryStr, []query.Span{m.Pos}))
		}
	}
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
