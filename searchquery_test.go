// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package searchquery

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CoLRev-Environment/search-query/pkg/lint"
	"github.com/CoLRev-Environment/search-query/pkg/query"
)

func findCode(messages []lint.Message, code lint.Code) *lint.Message {
	for i := range messages {
		if messages[i].Code == code.Code {
			return &messages[i]
		}
	}
	return nil
}

func TestParsePubMed(t *testing.T) {
	tree, messages, err := Parse("pubmed", `"digital work"[ti] AND labour[ab]`, Options{})
	require.NoError(t, err)
	assert.Empty(t, messages)
	require.NotNil(t, tree)
	assert.Equal(t, query.NodeAnd, tree.Kind)
	require.Len(t, tree.Children, 2)
	assert.Equal(t, "digital work", tree.Children[0].Value)
	require.NotNil(t, tree.Children[0].Field)
	assert.Equal(t, "[ti]", tree.Children[0].Field.Raw)
}

func TestParseAcceptsPlatformAliases(t *testing.T) {
	_, _, err := Parse("Web of Science", "TS=(dog AND cat)", Options{})
	assert.NoError(t, err)

	_, _, err = Parse("ebscohost", `TI "digital work"`, Options{})
	assert.NoError(t, err)

	_, _, err = Parse("scopus", "dog", Options{})
	assert.Error(t, err)
}

func TestParseResolvesListQueries(t *testing.T) {
	list := "1. \"digital work\"[tiab]\n" +
		"2. labour[tiab]\n" +
		"3. #1 OR #2"
	tree, _, err := Parse("pubmed", list, Options{})
	require.NoError(t, err)
	require.NotNil(t, tree)
	assert.Equal(t, query.NodeOr, tree.Kind)
}

func TestParseListWithDanglingReference(t *testing.T) {
	list := "1. dog[ti]\n2. #1 OR #9"
	_, messages, err := Parse("pubmed", list, Options{})
	require.Error(t, err)
	assert.NotNil(t, findCode(messages, lint.InvalidListReference))
}

func TestParseStrictModeAbortsOnErrors(t *testing.T) {
	// An unsupported field is corrected in lenient mode and aborts in
	// strict mode.
	_, _, err := Parse("wos", "XYZQ=dog", Options{Mode: lint.ModeStrict})
	require.Error(t, err)

	var fe *lint.FatalError
	require.ErrorAs(t, err, &fe)
	assert.NotNil(t, findCode(fe.Messages, lint.FieldUnsupported))
}

func TestParseSilentDropsWarnings(t *testing.T) {
	_, messages, err := Parse("pubmed", "dog[ti] and cat[ti]", Options{Silent: true})
	require.NoError(t, err)
	assert.Empty(t, messages)
}

func TestParseVersionSelectsSyntaxGeneration(t *testing.T) {
	tree, messages, err := Parse("wos", "TS=(dog SAME cat)", Options{Version: "0.9"})
	require.NoError(t, err)
	assert.NotNil(t, findCode(messages, lint.DeprecatedProximity))
	require.Len(t, tree.Children, 2)
	assert.Equal(t, query.NodeNear, tree.Kind)
	assert.Equal(t, 15, tree.Distance)
}

func TestLintReturnsFatalFindingsWithoutError(t *testing.T) {
	messages, err := Lint("pubmed", "(dog AND cat", Options{})
	require.NoError(t, err)
	assert.NotNil(t, findCode(messages, lint.UnbalancedParentheses))
}

func TestLintCleanQuery(t *testing.T) {
	messages, err := Lint("pubmed", "dog[ti] OR cat[ti]", Options{})
	require.NoError(t, err)
	assert.Empty(t, messages)
}

func TestTranslatePubMedToWOS(t *testing.T) {
	out, _, err := Translate("pubmed", `"digital work"[ti] AND labour[ab]`, "wos", Options{})
	require.NoError(t, err)
	assert.Equal(t, `TI="digital work" AND AB=labour`, out)
}

func TestTranslateWOSToPubMedRecombines(t *testing.T) {
	out, _, err := Translate("wos", "TI=Literacy OR AB=Literacy", "pubmed", Options{})
	require.NoError(t, err)
	assert.Equal(t, "Literacy[tiab]", out)
}

func TestTranslateSubstitutesMissingFields(t *testing.T) {
	out, messages, err := Translate("wos", "TS=(dog AND cat)", "ebsco", Options{})
	require.NoError(t, err)
	assert.Equal(t, "TX (dog AND cat)", out)
	assert.NotNil(t, findCode(messages, lint.FieldSubstituted))
}

func TestTranslateGeneralField(t *testing.T) {
	out, _, err := Translate("pubmed", "dog OR cat", "wos", Options{Field: "[ti]"})
	require.NoError(t, err)
	assert.Equal(t, "TI=(dog OR cat)", out)
}

func TestTranslateTree(t *testing.T) {
	tree := query.NewAnd(
		query.NewTerm("dog", query.NewSearchField("[ti]")),
		query.NewTerm("cat", query.NewSearchField("[ab]")),
	)

	got, messages, err := TranslateTree(tree, "pubmed", "wos", Options{})
	require.NoError(t, err)
	assert.Empty(t, messages)

	out, err := ToString("wos", got, Options{})
	require.NoError(t, err)
	assert.Equal(t, "TI=dog AND AB=cat", out)

	// The input tree is untouched.
	assert.Equal(t, "[ti]", tree.Children[0].Field.Raw)
}

func TestTranslateTreeSubstitutesMissingFields(t *testing.T) {
	tree := query.NewTerm("dog", query.NewSearchField("[mh]"))

	got, messages, err := TranslateTree(tree, "pubmed", "wos", Options{})
	require.NoError(t, err)
	assert.NotNil(t, findCode(messages, lint.FieldSubstituted))
	require.NotNil(t, got.Field)
	assert.Equal(t, "TS=", got.Field.Raw)
}

func TestTranslateTreeErrors(t *testing.T) {
	tree := query.NewTerm("dog", nil)

	_, _, err := TranslateTree(tree, "scopus", "wos", Options{})
	assert.Error(t, err)

	_, _, err = TranslateTree(tree, "generic", "wos", Options{})
	assert.ErrorContains(t, err, "no translator")
}

func TestSerializeParseRoundTrip(t *testing.T) {
	tests := []struct {
		name     string
		platform string
		queryStr string
	}{
		{name: "pubmed fields", platform: "pubmed", queryStr: `dog[ti] AND cat[ab]`},
		{name: "pubmed combined field", platform: "pubmed", queryStr: `"digital work"[tiab] OR labour[tw]`},
		{name: "pubmed negation", platform: "pubmed", queryStr: `dogs NOT cats`},
		{name: "wos grouped field", platform: "wos", queryStr: `TS=(dog AND cat)`},
		{name: "wos proximity", platform: "wos", queryStr: `TS=(dog NEAR/5 cat)`},
		{name: "wos per-term fields", platform: "wos", queryStr: `TI=dog OR AB=cat`},
		{name: "ebsco proximity group", platform: "ebsco", queryStr: `TI "digital work" AND AB (labour N3 market)`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			tree, _, err := Parse(tt.platform, tt.queryStr, Options{})
			require.NoError(t, err)

			rendered, err := ToString(tt.platform, tree, Options{})
			require.NoError(t, err)

			reparsed, _, err := Parse(tt.platform, rendered, Options{})
			require.NoError(t, err)
			assert.True(t, tree.Equal(reparsed),
				"round trip changed the tree:\noriginal:  %s\nrendered:  %s\nreparsed:  %s",
				tree, rendered, reparsed)
		})
	}
}

func TestToString(t *testing.T) {
	tree := query.NewAnd(
		query.NewTerm("dog", query.NewGenericField(query.FieldTitle)),
		query.NewTerm("cat", query.NewGenericField(query.FieldTitle)),
	)

	out, err := ToString("wos", tree, Options{})
	require.NoError(t, err)
	assert.Equal(t, "TI=(dog AND cat)", out)

	generic, err := ToString("generic", tree, Options{})
	require.NoError(t, err)
	assert.Equal(t, "AND[dog[title], cat[title]]", generic)
}

func TestUpgradeWOSLegacy(t *testing.T) {
	out, messages, err := Upgrade("wos", "TS=(dog SAME cat)", "0.9", "")
	require.NoError(t, err)
	assert.Equal(t, "TS=(dog NEAR/15 cat)", out)
	assert.NotNil(t, findCode(messages, lint.DeprecatedProximity))
}

func TestUpgradeRequiresSourceVersion(t *testing.T) {
	_, _, err := Upgrade("wos", "TS=dog", "", "")
	assert.ErrorContains(t, err, "source syntax version")
}

func TestVersions(t *testing.T) {
	vs, err := Versions("wos")
	require.NoError(t, err)
	assert.Equal(t, []string{"0.9", "1.0"}, vs)

	_, err = Versions("scopus")
	assert.Error(t, err)
}
