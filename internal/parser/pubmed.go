// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package parser

import (
	"fmt"

	"github.com/CoLRev-Environment/search-query/internal/lexer"
	"github.com/CoLRev-Environment/search-query/internal/translate"
	"github.com/CoLRev-Environment/search-query/pkg/lint"
	"github.com/CoLRev-Environment/search-query/pkg/query"
)

// PubMed parses PubMed-syntax query strings. Fields are bracket tags
// following the term ("Literacy[ti]"); combined tags such as [tiab] are
// expanded into an OR over the atomic fields at parse time, so downstream
// code only ever sees atomic fields on terms.
type PubMed struct{}

var pubmedRules = []lexer.Rule{
	lexer.NewRule(query.TokenParenOpen, `\(`),
	lexer.NewRule(query.TokenParenClose, `\)`),
	lexer.NewRule(query.TokenField, `\[[A-Za-z][A-Za-z/:. -]*\]`),
	lexer.NewRule(query.TokenLogicOp, `(?i:AND|OR|NOT)\b`),
	lexer.NewRule(query.TokenTerm, `"[^"]*"|[^\s()\[\]]+`),
}

var pubmedTransitions = map[query.TokenKind][]query.TokenKind{
	query.TokenParenOpen:  {query.TokenTerm, query.TokenParenOpen},
	query.TokenParenClose: {query.TokenLogicOp, query.TokenParenClose},
	query.TokenField:      {query.TokenLogicOp, query.TokenParenClose},
	query.TokenTerm:       {query.TokenField, query.TokenLogicOp, query.TokenParenClose},
	query.TokenLogicOp:    {query.TokenTerm, query.TokenParenOpen},
}

// Parse builds the query tree for a PubMed query string.
func (PubMed) Parse(queryStr string, opts Options) (*query.Query, []lint.Message, error) {
	return parseString(spec{
		rules:       pubmedRules,
		transitions: pubmedTransitions,
		style:       fieldPostfix,
		fields:      translate.PubMedFields,
		required:    false,
		def:         "[all]",
		resolve:     resolvePubmedFields,
	}, queryStr, opts)
}

// resolvePubmedFields normalizes bracket tags on the built tree: deprecated
// tags are substituted, atomic tags get their generic field, combined tags
// are expanded into an OR over per-field term copies.
func resolvePubmedFields(h *lint.Handler, root *query.Query) {
	root.Walk(func(n *query.Query) {
		if !n.IsTerm() || n.Field == nil {
			return
		}
		raw := translate.PubMedFields.Normalize(n.Field.Raw)
		if replacement, ok := translate.PubMedFields.Deprecated[raw]; ok {
			h.Add(lint.FieldDeprecated, n.Field.Pos,
				fmt.Sprintf("field %q is deprecated, use %q", n.Field.Raw, replacement))
			raw = translate.PubMedFields.Normalize(replacement)
		}
		fields, ok := translate.PubMedFields.Resolve(raw)
		if !ok {
			// Unknown tags are reported by the unsupported-field check.
			return
		}
		if len(fields) == 1 {
			n.Field.Raw = raw
			n.Field.Generic = fields[0]
			return
		}
		expandTerm(n, fields, translate.PubMedFields)
	})
}

// expandTerm rewrites a term carrying a combined field into an OR over one
// term copy per atomic field, in the combined tag's declared order. The
// rewrite happens in place so the parent keeps its child slot.
func expandTerm(n *query.Query, fields []query.Field, m *translate.FieldMap) {
	children := make([]*query.Query, 0, len(fields))
	for _, f := range fields {
		raw, _ := m.Spelling(f)
		child := query.NewTerm(n.Value, &query.SearchField{Raw: raw, Generic: f, Pos: n.Field.Pos})
		child.Pos = n.Pos
		children = append(children, child)
	}
	or := query.NewOr(children...)
	or.Pos = n.Pos
	*n = *or
}
