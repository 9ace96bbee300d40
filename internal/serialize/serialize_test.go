// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package serialize

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CoLRev-Environment/search-query/pkg/query"
)

func TestPubMedToString(t *testing.T) {
	tests := []struct {
		name  string
		build func() *query.Query
		want  string
	}{
		{
			name: "term with postfix field",
			build: func() *query.Query {
				return query.NewTerm("dog", query.NewSearchField("[ti]"))
			},
			want: "dog[ti]",
		},
		{
			name: "multi-word term quoted",
			build: func() *query.Query {
				return query.NewTerm("digital work", query.NewSearchField("[ti]"))
			},
			want: `"digital work"[ti]`,
		},
		{
			name: "root operator unparenthesized",
			build: func() *query.Query {
				return query.NewAnd(
					query.NewTerm("dog", query.NewSearchField("[ti]")),
					query.NewTerm("cat", nil),
				)
			},
			want: "dog[ti] AND cat",
		},
		{
			name: "nested group parenthesized",
			build: func() *query.Query {
				return query.NewAnd(
					query.NewTerm("dog", nil),
					query.NewOr(query.NewTerm("cat", nil), query.NewTerm("mouse", nil)),
				)
			},
			want: "dog AND (cat OR mouse)",
		},
		{
			name: "NOT construct",
			build: func() *query.Query {
				return query.NewNot(query.NewTerm("dogs", nil), query.NewTerm("cats", nil))
			},
			want: "dogs NOT cats",
		},
		{
			name: "title abstract OR recombines to tiab",
			build: func() *query.Query {
				return query.NewOr(
					query.NewTerm("Literacy", query.NewGenericField(query.FieldTitle)),
					query.NewTerm("Literacy", query.NewGenericField(query.FieldAbstract)),
				)
			},
			want: "Literacy[tiab]",
		},
		{
			name: "generic field spelled from the field map",
			build: func() *query.Query {
				return query.NewTerm("dog", query.NewGenericField(query.FieldMeshTerm))
			},
			want: "dog[mh]",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := PubMed{}.ToString(tt.build())
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestWOSToString(t *testing.T) {
	tests := []struct {
		name         string
		implicitNear bool
		build        func() *query.Query
		want         string
	}{
		{
			name: "hoisted field scopes the group",
			build: func() *query.Query {
				return query.NewOr(
					query.NewTerm("dog", query.NewSearchField("TS=")),
					query.NewTerm("cat", query.NewSearchField("TS=")),
				)
			},
			want: "TS=(dog OR cat)",
		},
		{
			name: "mixed fields render per term",
			build: func() *query.Query {
				return query.NewAnd(
					query.NewTerm("dog", query.NewSearchField("TI=")),
					query.NewTerm("cat", query.NewSearchField("AB=")),
				)
			},
			want: "TI=dog AND AB=cat",
		},
		{
			name: "NEAR with distance",
			build: func() *query.Query {
				q := query.NewNear(5,
					query.NewTerm("dog", query.NewSearchField("TS=")),
					query.NewTerm("cat", query.NewSearchField("TS=")),
				)
				return q
			},
			want: "TS=(dog NEAR/5 cat)",
		},
		{
			name:         "implicit NEAR renders bare at distance 15",
			implicitNear: true,
			build: func() *query.Query {
				return query.NewNear(15,
					query.NewTerm("dog", query.NewSearchField("TS=")),
					query.NewTerm("cat", query.NewSearchField("TS=")),
				)
			},
			want: "TS=(dog NEAR cat)",
		},
		{
			name:         "implicit NEAR keeps other distances explicit",
			implicitNear: true,
			build: func() *query.Query {
				return query.NewNear(5,
					query.NewTerm("dog", query.NewSearchField("TS=")),
					query.NewTerm("cat", query.NewSearchField("TS=")),
				)
			},
			want: "TS=(dog NEAR/5 cat)",
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := WOS{ImplicitNear: tt.implicitNear}.ToString(tt.build())
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestEBSCOToString(t *testing.T) {
	q := query.NewAnd(
		query.NewTerm("digital work", query.NewSearchField("TI")),
		query.NewNear(3,
			query.NewTerm("labour", query.NewSearchField("AB")),
			query.NewTerm("market", query.NewSearchField("AB")),
		),
	)
	got, err := EBSCO{}.ToString(q)
	require.NoError(t, err)
	assert.Equal(t, `TI "digital work" AND AB (labour N3 market)`, got)
}

func TestGenericToString(t *testing.T) {
	q := query.NewAnd(
		query.NewTerm("dog", query.NewGenericField(query.FieldTitle)),
		query.NewOr(query.NewTerm("cat", nil), query.NewTerm("mouse", nil)),
	)
	got, err := Generic{}.ToString(q)
	require.NoError(t, err)
	assert.Equal(t, "AND[dog[title], OR[cat, mouse]]", got)
}

func TestSerializerErrorsOnUnspeakableField(t *testing.T) {
	q := query.NewTerm("dog", query.NewGenericField(query.FieldDescriptors))
	_, err := WOS{}.ToString(q)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no spelling")
}
