// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package lint

import (
	"fmt"
	"strings"

	"github.com/CoLRev-Environment/search-query/pkg/query"
)

// Tree-level rules. These run at the end of every parse and whenever a
// tree is constructed programmatically: tree validation is a property of
// tree construction, not only of string parsing.

// ValidateTree runs the structural invariants of the query package through
// the linter so that programmatic construction errors surface as fatal
// messages rather than panics.
func ValidateTree(h *Handler, q *query.Query) {
	if err := q.Validate(); err != nil {
		h.Add(InvalidTokenSequence, query.Artificial, err.Error())
	}
}

// CheckQuotes flags terms with unmatched or suspicious quote usage.
func CheckQuotes(h *Handler, q *query.Query) {
	q.Walk(func(n *query.Query) {
		if !n.IsTerm() {
			return
		}
		value := strings.TrimSpace(n.Value)
		count := strings.Count(value, `"`)
		if count == 0 {
			return
		}
		switch {
		case count == 2 && strings.HasPrefix(value, `"`) && strings.HasSuffix(value, `"`):
			// Properly quoted.
		case strings.HasPrefix(value, `"`) && !strings.HasSuffix(value, `"`):
			h.Add(UnbalancedQuotes, n.Pos, "unmatched opening quote")
		case strings.HasSuffix(value, `"`) && !strings.HasPrefix(value, `"`):
			h.Add(UnbalancedQuotes, n.Pos, "unmatched closing quote")
		case count%2 != 0:
			h.Add(UnbalancedQuotes, n.Pos, "unbalanced quotes inside term")
		default:
			h.Add(UnbalancedQuotes, n.Pos, "suspicious quote usage inside term")
		}
	})
}

// CheckInvalidCharacters flags characters the platform does not accept in
// search terms.
func CheckInvalidCharacters(h *Handler, q *query.Query, invalid string) {
	q.Walk(func(n *query.Query) {
		if !n.IsTerm() {
			return
		}
		for _, c := range n.Value {
			if strings.ContainsRune(invalid, c) {
				h.Add(InvalidCharacter, n.Pos,
					fmt.Sprintf("invalid character %q in search term %q", string(c), n.Value))
			}
		}
	})
}

// CheckRedundantTerms warns when an operator repeats the same term with
// the same field restriction.
func CheckRedundantTerms(h *Handler, q *query.Query) {
	q.Walk(func(n *query.Query) {
		if !n.IsOperator() {
			return
		}
		seen := map[string]bool{}
		for _, child := range n.Children {
			if !child.IsTerm() {
				continue
			}
			key := child.Value + "\x00" + child.Field.String()
			if seen[key] {
				h.Add(RedundantTerm, child.Pos,
					fmt.Sprintf("term %q repeated with the same field", child.Value))
			}
			seen[key] = true
		}
	})
}

// CheckUnsupportedFields flags field restrictions the platform's field map
// does not recognize. The supplied resolver reports whether a raw spelling
// is valid for the platform.
func CheckUnsupportedFields(h *Handler, q *query.Query, valid func(raw string) bool) {
	q.Walk(func(n *query.Query) {
		if n.Field == nil || n.Field.Raw == "" {
			return
		}
		if !valid(n.Field.Raw) {
			if h.Mode == ModeStrict {
				h.Add(FieldUnsupported, n.Field.Pos,
					fmt.Sprintf("search field %q is not supported", n.Field.Raw))
				return
			}
			// No deterministic correction exists for an unknown field.
			h.AddFatal(FieldUnsupported, n.Field.Pos,
				fmt.Sprintf("search field %q is not supported", n.Field.Raw))
		}
	})
}
