// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package lint

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/CoLRev-Environment/search-query/pkg/query"
)

func findCode(messages []Message, code Code) *Message {
	for i := range messages {
		if messages[i].Code == code.Code {
			return &messages[i]
		}
	}
	return nil
}

func TestCheckUnbalancedParentheses(t *testing.T) {
	tests := []struct {
		name     string
		queryStr string
		tokens   []query.Token
		wantPos  *query.Span
	}{
		{
			name:     "balanced",
			queryStr: "(a AND b)",
			tokens: []query.Token{
				tok(query.TokenParenOpen, "(", 0),
				tok(query.TokenTerm, "a", 1),
				tok(query.TokenLogicOp, "AND", 3),
				tok(query.TokenTerm, "b", 7),
				tok(query.TokenParenClose, ")", 8),
			},
		},
		{
			name:     "stray close",
			queryStr: "a AND b)",
			tokens: []query.Token{
				tok(query.TokenTerm, "a", 0),
				tok(query.TokenLogicOp, "AND", 2),
				tok(query.TokenTerm, "b", 6),
				tok(query.TokenParenClose, ")", 7),
			},
			wantPos: &query.Span{Start: 7, End: 8},
		},
		{
			name:     "stray open",
			queryStr: "(a AND b",
			tokens: []query.Token{
				tok(query.TokenParenOpen, "(", 0),
				tok(query.TokenTerm, "a", 1),
				tok(query.TokenLogicOp, "AND", 3),
				tok(query.TokenTerm, "b", 7),
			},
			wantPos: &query.Span{Start: 0, End: 1},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			h := NewHandler(tt.queryStr, ModeLenient)
			CheckUnbalancedParentheses(h, tt.tokens)
			m := findCode(h.Messages(), UnbalancedParentheses)
			if tt.wantPos == nil {
				assert.Nil(t, m)
				return
			}
			require.NotNil(t, m)
			assert.Equal(t, SeverityFatal, m.Severity)
			assert.Equal(t, *tt.wantPos, m.Pos)
		})
	}
}

func TestCheckOperatorCapitalizationCorrects(t *testing.T) {
	tokens := []query.Token{
		tok(query.TokenTerm, "dog", 0),
		tok(query.TokenLogicOp, "and", 4),
		tok(query.TokenTerm, "cat", 8),
	}
	h := NewHandler("dog and cat", ModeLenient)
	CheckOperatorCapitalization(h, tokens)

	assert.Equal(t, "AND", tokens[1].Value)
	m := findCode(h.Messages(), OperatorCapitalization)
	require.NotNil(t, m)
	assert.Equal(t, SeverityWarning, m.Severity)
}

func TestCheckNearDistance(t *testing.T) {
	t.Run("bare NEAR gets the implicit distance", func(t *testing.T) {
		tokens := []query.Token{
			tok(query.TokenTerm, "a", 0),
			tok(query.TokenProximityOp, "NEAR", 2),
			tok(query.TokenTerm, "b", 7),
		}
		h := NewHandler("a NEAR b", ModeLenient)
		CheckNearDistance(h, tokens, 15)
		assert.Equal(t, "NEAR/15", tokens[1].Value)
		require.NotNil(t, findCode(h.Messages(), ImplicitNearValue))
	})

	t.Run("distance over the maximum", func(t *testing.T) {
		tokens := []query.Token{
			tok(query.TokenTerm, "a", 0),
			tok(query.TokenProximityOp, "NEAR/20", 2),
			tok(query.TokenTerm, "b", 10),
		}
		h := NewHandler("a NEAR/20 b", ModeLenient)
		CheckNearDistance(h, tokens, 15)
		m := findCode(h.Messages(), NearDistanceTooLarge)
		require.NotNil(t, m)
		assert.Equal(t, SeverityFatal, m.Severity)
	})

	t.Run("three-digit distance over the maximum", func(t *testing.T) {
		tokens := []query.Token{
			tok(query.TokenTerm, "a", 0),
			tok(query.TokenProximityOp, "N300", 2),
			tok(query.TokenTerm, "b", 7),
		}
		h := NewHandler("a N300 b", ModeLenient)
		CheckNearDistance(h, tokens, 255)
		m := findCode(h.Messages(), NearDistanceTooLarge)
		require.NotNil(t, m)
		assert.Contains(t, m.Details, "300")
	})
}

func TestNormalizeQuotes(t *testing.T) {
	h := NewHandler("“digital work”", ModeLenient)
	out, offsets := NormalizeQuotes(h, "“digital work”")
	assert.Equal(t, `"digital work"`, out)
	require.Len(t, h.Messages(), 2)
	for _, m := range h.Messages() {
		assert.Equal(t, NonStandardQuotes.Code, m.Code)
	}

	// One entry per cleaned byte plus the end sentinel. The opening curly
	// quote occupies bytes 0..2 of the original, so the byte after the
	// replacement maps to original offset 3.
	require.Len(t, offsets, len(out)+1)
	assert.Equal(t, 0, offsets[0])
	assert.Equal(t, 3, offsets[1])
	assert.Equal(t, len("“digital work”"), offsets[len(out)])
}

func TestRemapPositions(t *testing.T) {
	h := NewHandler("“x” OR y", ModeLenient)
	cleaned, offsets := NormalizeQuotes(h, "“x” OR y")
	require.Equal(t, `"x" OR y`, cleaned)

	// Tokens lexed against the cleaned string: the OR sits at cleaned bytes
	// 4..6 but original bytes 8..10 (each curly quote is three bytes).
	tokens := []query.Token{
		{Value: `"x"`, Kind: query.TokenTerm, Pos: query.Span{Start: 0, End: 3}},
		{Value: "OR", Kind: query.TokenLogicOp, Pos: query.Span{Start: 4, End: 6}},
		{Value: "y", Kind: query.TokenTerm, Pos: query.Span{Start: 7, End: 8}},
		{Value: "", Kind: query.TokenParenOpen, Pos: query.Artificial},
	}
	RemapPositions(tokens, offsets)

	assert.Equal(t, query.Span{Start: 0, End: 7}, tokens[0].Pos)
	assert.Equal(t, query.Span{Start: 8, End: 10}, tokens[1].Pos)
	assert.Equal(t, query.Span{Start: 11, End: 12}, tokens[2].Pos)
	assert.Equal(t, query.Artificial, tokens[3].Pos)
}

func TestCheckTokenSequence(t *testing.T) {
	allowed := map[query.TokenKind][]query.TokenKind{
		query.TokenTerm:    {query.TokenLogicOp},
		query.TokenLogicOp: {query.TokenTerm},
	}

	t.Run("double operator", func(t *testing.T) {
		tokens := []query.Token{
			tok(query.TokenTerm, "a", 0),
			tok(query.TokenLogicOp, "AND", 2),
			tok(query.TokenLogicOp, "OR", 6),
			tok(query.TokenTerm, "b", 9),
		}
		h := NewHandler("a AND OR b", ModeLenient)
		CheckTokenSequence(h, tokens, allowed)
		require.NotNil(t, findCode(h.Messages(), InvalidTokenSequence))
	})

	t.Run("trailing operator", func(t *testing.T) {
		tokens := []query.Token{
			tok(query.TokenTerm, "a", 0),
			tok(query.TokenLogicOp, "AND", 2),
		}
		h := NewHandler("a AND", ModeLenient)
		CheckTokenSequence(h, tokens, allowed)
		require.NotNil(t, findCode(h.Messages(), InvalidTokenSequence))
	})

	t.Run("valid sequence", func(t *testing.T) {
		tokens := []query.Token{
			tok(query.TokenTerm, "a", 0),
			tok(query.TokenLogicOp, "AND", 2),
			tok(query.TokenTerm, "b", 6),
		}
		h := NewHandler("a AND b", ModeLenient)
		CheckTokenSequence(h, tokens, allowed)
		assert.Empty(t, h.Messages())
	})
}

func TestFormatPositions(t *testing.T) {
	out := FormatPositions("dog AND cat", []query.Span{{Start: 4, End: 7}})
	assert.Equal(t, "dog AND cat\n    ^^^", out)

	// Artificial spans produce no caret line.
	out = FormatPositions("dog", []query.Span{query.Artificial})
	assert.Equal(t, "dog", out)
}
