// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package lint

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/CoLRev-Environment/search-query/pkg/query"
)

// Token-level rules shared by every platform linter. Each rule records its
// findings on the handler; rules that can correct deterministically mutate
// the token slice and record the correction.

// CheckUnknownTokens flags tokens the lexer could not classify.
func CheckUnknownTokens(h *Handler, tokens []query.Token) {
	for _, t := range tokens {
		if t.Kind == query.TokenUnknown {
			h.Add(TokenizingFailed, t.Pos, fmt.Sprintf("unparsed segment %q", t.Value))
		}
	}
}

// CheckUnbalancedParentheses flags unmatched parentheses. The position of
// each finding points at the unmatched parenthesis itself: a forward scan
// catches stray closing parentheses, a backward scan stray opening ones.
func CheckUnbalancedParentheses(h *Handler, tokens []query.Token) {
	depth := 0
	for _, t := range tokens {
		switch t.Kind {
		case query.TokenParenOpen:
			depth++
		case query.TokenParenClose:
			if depth == 0 {
				h.Add(UnbalancedParentheses, t.Pos, "unbalanced closing parenthesis")
			} else {
				depth--
			}
		}
	}
	if depth == 0 {
		return
	}
	depth = 0
	for i := len(tokens) - 1; i >= 0; i-- {
		switch tokens[i].Kind {
		case query.TokenParenClose:
			depth++
		case query.TokenParenOpen:
			if depth == 0 {
				h.Add(UnbalancedParentheses, tokens[i].Pos, "unbalanced opening parenthesis")
			} else {
				depth--
			}
		}
	}
}

// CheckEmptyParentheses flags "()" pairs, which no platform accepts.
func CheckEmptyParentheses(h *Handler, tokens []query.Token) {
	for i := 0; i+1 < len(tokens); i++ {
		if tokens[i].Kind == query.TokenParenOpen && tokens[i+1].Kind == query.TokenParenClose {
			h.Add(EmptyParentheses, query.Span{Start: tokens[i].Pos.Start, End: tokens[i+1].Pos.End},
				"empty parentheses")
		}
	}
}

// CheckOperatorCapitalization corrects lowercase operators in place and
// records a warning per occurrence.
func CheckOperatorCapitalization(h *Handler, tokens []query.Token) {
	for i, t := range tokens {
		if !t.IsOperator() {
			continue
		}
		upper := strings.ToUpper(t.Value)
		if t.Value != upper {
			h.Add(OperatorCapitalization, t.Pos,
				fmt.Sprintf("operators must be uppercase: %q", t.Value))
			tokens[i].Value = upper
		}
	}
}

// CheckTokenSequence verifies token adjacency against the platform's
// transition table. Two operators in a row and two fields in a row are
// always invalid; other transitions are whatever the table allows.
func CheckTokenSequence(h *Handler, tokens []query.Token, allowed map[query.TokenKind][]query.TokenKind) {
	for i := 0; i+1 < len(tokens); i++ {
		t, next := tokens[i], tokens[i+1]
		if t.IsOperator() && next.IsOperator() {
			h.Add(InvalidTokenSequence, query.Span{Start: t.Pos.Start, End: next.Pos.End},
				"two operators in a row")
			continue
		}
		if t.Kind == query.TokenField && next.Kind == query.TokenField {
			h.Add(InvalidTokenSequence, next.Pos, "two search fields in a row")
			continue
		}
		ok := false
		for _, k := range allowed[t.Kind] {
			if next.Kind == k {
				ok = true
				break
			}
		}
		if !ok {
			h.Add(InvalidTokenSequence, next.Pos,
				fmt.Sprintf("%s may not follow %s", next.Kind, t.Kind))
		}
	}
	if len(tokens) > 0 {
		if first := tokens[0]; first.IsOperator() || first.Kind == query.TokenParenClose {
			h.Add(InvalidTokenSequence, first.Pos, "query starts with "+first.Kind.String())
		}
		if last := tokens[len(tokens)-1]; last.IsOperator() {
			h.Add(InvalidTokenSequence, last.Pos, "query ends with an operator")
		}
	}
}

var nearDistanceRe = regexp.MustCompile(`\d+`)

// CheckNearDistance flags proximity operators whose distance exceeds the
// platform maximum, and defaults bare NEAR operators to the maximum with a
// warning (the platform's documented implicit distance).
func CheckNearDistance(h *Handler, tokens []query.Token, maxDistance int) {
	for i, t := range tokens {
		if t.Kind != query.TokenProximityOp {
			continue
		}
		m := nearDistanceRe.FindString(t.Value)
		if m == "" {
			h.Add(ImplicitNearValue, t.Pos,
				fmt.Sprintf("proximity distance not specified, defaulting to %d", maxDistance))
			tokens[i].Value = fmt.Sprintf("NEAR/%d", maxDistance)
			continue
		}
		if d, err := strconv.Atoi(m); err == nil && d > maxDistance {
			h.Add(NearDistanceTooLarge, t.Pos,
				fmt.Sprintf("NEAR distance %d exceeds the maximum of %d", d, maxDistance))
		}
	}
}

var quoteReplacements = map[rune]rune{
	'“': '"',
	'”': '"',
	'‘': '\'',
	'’': '\'',
}

// NormalizeQuotes replaces curly quotes with straight ones and records a
// warning per replaced rune. Curly quotes are wider in UTF-8 than their
// replacements, so byte positions in the cleaned string drift from the
// input; the returned table maps every byte offset of the cleaned string
// (plus one trailing sentinel for half-open span ends) back to its offset
// in the original. RemapPositions applies the table to lexed tokens so
// that findings always point into the string the caller supplied.
func NormalizeQuotes(h *Handler, queryStr string) (string, []int) {
	var cleaned strings.Builder
	offsets := make([]int, 0, len(queryStr)+1)
	for i, r := range queryStr {
		if repl, ok := quoteReplacements[r]; ok {
			h.Add(NonStandardQuotes, query.Span{Start: i, End: i + len(string(r))},
				"non-standard quote replaced")
			cleaned.WriteRune(repl)
			offsets = append(offsets, i)
			continue
		}
		cleaned.WriteRune(r)
		for j := 0; j < len(string(r)); j++ {
			offsets = append(offsets, i+j)
		}
	}
	offsets = append(offsets, len(queryStr))
	return cleaned.String(), offsets
}

// RemapPositions rewrites token spans produced against a normalized string
// back into positions in the original string, using the offset table from
// NormalizeQuotes. Artificial spans pass through untouched.
func RemapPositions(tokens []query.Token, offsets []int) {
	for i := range tokens {
		p := tokens[i].Pos
		if p.Start < 0 || p.Start >= len(offsets) || p.End >= len(offsets) {
			continue
		}
		tokens[i].Pos = query.Span{Start: offsets[p.Start], End: offsets[p.End]}
	}
}
