// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package parser

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CoLRev-Environment/search-query/pkg/lint"
	"github.com/CoLRev-Environment/search-query/pkg/query"
)

func TestEBSCOParseBasic(t *testing.T) {
	tree, messages, err := EBSCO{}.Parse(`TI "digital work" AND AB labour`, Options{})
	require.NoError(t, err)
	assert.Empty(t, messages)

	require.Equal(t, query.NodeAnd, tree.Kind)
	require.Len(t, tree.Children, 2)
	assert.Equal(t, "digital work", tree.Children[0].Value)
	assert.Equal(t, query.FieldTitle, tree.Children[0].Field.Generic)
	assert.Equal(t, "labour", tree.Children[1].Value)
	assert.Equal(t, query.FieldAbstract, tree.Children[1].Field.Generic)
}

func TestEBSCOProximityOperators(t *testing.T) {
	t.Run("N operator", func(t *testing.T) {
		tree, _, err := EBSCO{}.Parse(`TI (dog N3 cat)`, Options{})
		require.NoError(t, err)
		require.Equal(t, query.NodeNear, tree.Kind)
		assert.Equal(t, 3, tree.Distance)
	})

	t.Run("W operator", func(t *testing.T) {
		tree, _, err := EBSCO{}.Parse(`TI (dog W8 cat)`, Options{})
		require.NoError(t, err)
		require.Equal(t, query.NodeNear, tree.Kind)
		assert.Equal(t, 8, tree.Distance)
	})
}

func TestEBSCOProximityDistanceCeiling(t *testing.T) {
	t.Run("at the maximum", func(t *testing.T) {
		tree, messages, err := EBSCO{}.Parse(`TI (dog N255 cat)`, Options{})
		require.NoError(t, err)
		assert.Nil(t, findCode(messages, lint.NearDistanceTooLarge))
		assert.Equal(t, 255, tree.Distance)
	})

	t.Run("three-digit distance over the maximum", func(t *testing.T) {
		_, messages, err := EBSCO{}.Parse(`TI (dog N300 cat)`, Options{})
		require.Error(t, err)
		m := findCode(messages, lint.NearDistanceTooLarge)
		require.NotNil(t, m)
		assert.Equal(t, lint.SeverityFatal, m.Severity)
	})
}

func TestEBSCORequiredFieldMissing(t *testing.T) {
	tree, messages, err := EBSCO{}.Parse(`dog AND cat`, Options{})
	require.NoError(t, err)
	require.NotNil(t, findCode(messages, lint.FieldMissing))
	for _, term := range tree.Terms() {
		require.NotNil(t, term.Field)
		assert.Equal(t, "TI", term.Field.Raw)
	}
}

func TestEBSCOProximityBindsTighterThanLogic(t *testing.T) {
	tree, messages, err := EBSCO{}.Parse(`TI dog AND AB cat N3 mouse`, Options{})
	require.NoError(t, err)
	require.NotNil(t, findCode(messages, lint.ImplicitPrecedence))

	require.Equal(t, query.NodeAnd, tree.Kind)
	near := tree.Children[1]
	require.Equal(t, query.NodeNear, near.Kind)
	assert.Equal(t, 3, near.Distance)
	assert.Equal(t, "AB", near.Children[0].Field.Raw)
	assert.Equal(t, "AB", near.Children[1].Field.Raw)
}
