// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package lexer

import (
	"testing"

	"github.com/CoLRev-Environment/search-query/pkg/query"
)

var testRules = []Rule{
	NewRule(query.TokenParenOpen, `\(`),
	NewRule(query.TokenParenClose, `\)`),
	NewRule(query.TokenField, `\[[A-Za-z]+\]`),
	NewRule(query.TokenLogicOp, `(?i:AND|OR|NOT)\b`),
	NewRule(query.TokenTerm, `"[^"]*"|[^\s()\[\]]+`),
}

func TestLex(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  []query.Token
	}{
		{
			name:  "terms operator and field",
			input: `dog AND cat[ti]`,
			want: []query.Token{
				{Value: "dog", Kind: query.TokenTerm, Pos: query.Span{Start: 0, End: 3}},
				{Value: "AND", Kind: query.TokenLogicOp, Pos: query.Span{Start: 4, End: 7}},
				{Value: "cat", Kind: query.TokenTerm, Pos: query.Span{Start: 8, End: 11}},
				{Value: "[ti]", Kind: query.TokenField, Pos: query.Span{Start: 11, End: 15}},
			},
		},
		{
			name:  "quoted phrase stays one token",
			input: `"digital work" OR labour`,
			want: []query.Token{
				{Value: `"digital work"`, Kind: query.TokenTerm, Pos: query.Span{Start: 0, End: 14}},
				{Value: "OR", Kind: query.TokenLogicOp, Pos: query.Span{Start: 15, End: 17}},
				{Value: "labour", Kind: query.TokenTerm, Pos: query.Span{Start: 18, End: 24}},
			},
		},
		{
			name:  "operator prefix does not split terms",
			input: `Anderson OR Nottingham`,
			want: []query.Token{
				{Value: "Anderson", Kind: query.TokenTerm, Pos: query.Span{Start: 0, End: 8}},
				{Value: "OR", Kind: query.TokenLogicOp, Pos: query.Span{Start: 9, End: 11}},
				{Value: "Nottingham", Kind: query.TokenTerm, Pos: query.Span{Start: 12, End: 22}},
			},
		},
		{
			name:  "parentheses",
			input: `(a OR b)`,
			want: []query.Token{
				{Value: "(", Kind: query.TokenParenOpen, Pos: query.Span{Start: 0, End: 1}},
				{Value: "a", Kind: query.TokenTerm, Pos: query.Span{Start: 1, End: 2}},
				{Value: "OR", Kind: query.TokenLogicOp, Pos: query.Span{Start: 3, End: 5}},
				{Value: "b", Kind: query.TokenTerm, Pos: query.Span{Start: 6, End: 7}},
				{Value: ")", Kind: query.TokenParenClose, Pos: query.Span{Start: 7, End: 8}},
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Lex(tt.input, testRules)
			if len(got) != len(tt.want) {
				t.Fatalf("Lex() = %d tokens, want %d: %v", len(got), len(tt.want), got)
			}
			for i := range got {
				if got[i] != tt.want[i] {
					t.Errorf("token %d = %+v, want %+v", i, got[i], tt.want[i])
				}
			}
		})
	}
}

func TestLexNeverFails(t *testing.T) {
	// Rules without a term pattern: the unmatched run becomes one unknown
	// token spanning up to the next whitespace.
	rules := []Rule{
		NewRule(query.TokenLogicOp, `AND\b`),
	}
	got := Lex("dog AND cat", rules)
	if len(got) != 3 {
		t.Fatalf("Lex() = %d tokens, want 3: %v", len(got), got)
	}
	if got[0].Kind != query.TokenUnknown || got[0].Value != "dog" {
		t.Errorf("token 0 = %+v, want unknown %q", got[0], "dog")
	}
	if got[2].Kind != query.TokenUnknown || got[2].Value != "cat" {
		t.Errorf("token 2 = %+v, want unknown %q", got[2], "cat")
	}
}

func TestCombineTerms(t *testing.T) {
	tokens := Lex("digital work AND labour market", testRules)
	combined := CombineTerms(tokens)
	if len(combined) != 3 {
		t.Fatalf("CombineTerms() = %d tokens, want 3: %v", len(combined), combined)
	}
	if combined[0].Value != "digital work" {
		t.Errorf("first term = %q, want %q", combined[0].Value, "digital work")
	}
	if combined[0].Pos != (query.Span{Start: 0, End: 12}) {
		t.Errorf("first term span = %v, want (0, 12)", combined[0].Pos)
	}
	if combined[2].Value != "labour market" {
		t.Errorf("last term = %q, want %q", combined[2].Value, "labour market")
	}
}
