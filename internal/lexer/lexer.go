// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package lexer turns a raw query string into a position-tagged token
// stream. Each platform supplies an ordered rule set; the scanner tries the
// rules in order at every position and takes the first match. Term and
// field detection is deliberately broad: whether a field spelling is valid
// for the platform is the linter's job, not the lexer's.
package lexer

import (
	"regexp"

	"github.com/CoLRev-Environment/search-query/pkg/query"
)

// Rule pairs a token kind with its anchored pattern.
type Rule struct {
	Kind query.TokenKind
	Re   *regexp.Regexp
}

// NewRule compiles pattern anchored at the scan position.
func NewRule(kind query.TokenKind, pattern string) Rule {
	return Rule{Kind: kind, Re: regexp.MustCompile(`^(?:` + pattern + `)`)}
}

var whitespaceRe = regexp.MustCompile(`^\s+`)

// Lex scans input left to right. Unmatched non-whitespace runs become
// TokenUnknown tokens so that the linter can report the exact unparsed
// segment; lexing itself never fails.
func Lex(input string, rules []Rule) []query.Token {
	var tokens []query.Token
	pos := 0
	for pos < len(input) {
		rest := input[pos:]
		if m := whitespaceRe.FindString(rest); m != "" {
			pos += len(m)
			continue
		}
		matched := false
		for _, rule := range rules {
			m := rule.Re.FindString(rest)
			if m == "" {
				continue
			}
			tokens = append(tokens, query.Token{
				Value: m,
				Kind:  rule.Kind,
				Pos:   query.Span{Start: pos, End: pos + len(m)},
			})
			pos += len(m)
			matched = true
			break
		}
		if matched {
			continue
		}
		// Consume up to the next whitespace as one unknown token.
		end := pos
		for end < len(input) && input[end] != ' ' && input[end] != '\t' && input[end] != '\n' {
			end++
		}
		tokens = append(tokens, query.Token{
			Value: input[pos:end],
			Kind:  query.TokenUnknown,
			Pos:   query.Span{Start: pos, End: end},
		})
		pos = end
	}
	return tokens
}

// CombineTerms merges adjacent term tokens into one multi-word term. Users
// write unquoted phrases ("digital work") that the broad term pattern lexes
// word by word; merging here keeps the tree builder free of phrase logic.
func CombineTerms(tokens []query.Token) []query.Token {
	var out []query.Token
	for _, t := range tokens {
		if t.Kind == query.TokenTerm && len(out) > 0 && out[len(out)-1].Kind == query.TokenTerm {
			prev := &out[len(out)-1]
			prev.Value = prev.Value + " " + t.Value
			prev.Pos.End = t.Pos.End
			continue
		}
		out = append(out, t)
	}
	return out
}
