// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package parser

import (
	"github.com/CoLRev-Environment/search-query/internal/lexer"
	"github.com/CoLRev-Environment/search-query/internal/translate"
	"github.com/CoLRev-Environment/search-query/pkg/lint"
	"github.com/CoLRev-Environment/search-query/pkg/query"
)

// ebscoMaxNear is the proximity distance ceiling EBSCOHost accepts.
const ebscoMaxNear = 255

// EBSCO parses EBSCOHost queries. Fields are two-letter codes preceding
// the term ("TI term"); proximity is written N5 (either order) or W5 (in
// order), both of which build NEAR nodes with the given distance.
type EBSCO struct{}

var ebscoRules = []lexer.Rule{
	lexer.NewRule(query.TokenParenOpen, `\(`),
	lexer.NewRule(query.TokenParenClose, `\)`),
	lexer.NewRule(query.TokenProximityOp, `[NW]\d{1,3}\b`),
	lexer.NewRule(query.TokenLogicOp, `(?i:AND|OR|NOT)\b`),
	lexer.NewRule(query.TokenField, `(?:TI|AB|TX|SU|SO|AU|IS|IB|LA|KW|DE)\b`),
	lexer.NewRule(query.TokenTerm, `"[^"]*"|[^\s()]+`),
}

var ebscoTransitions = map[query.TokenKind][]query.TokenKind{
	query.TokenParenOpen:   {query.TokenTerm, query.TokenField, query.TokenParenOpen},
	query.TokenParenClose:  {query.TokenLogicOp, query.TokenProximityOp, query.TokenParenClose},
	query.TokenField:       {query.TokenTerm, query.TokenParenOpen},
	query.TokenTerm:        {query.TokenLogicOp, query.TokenProximityOp, query.TokenParenClose},
	query.TokenLogicOp:     {query.TokenTerm, query.TokenField, query.TokenParenOpen},
	query.TokenProximityOp: {query.TokenTerm, query.TokenField, query.TokenParenOpen},
}

// Parse builds the query tree for an EBSCOHost query string.
func (EBSCO) Parse(queryStr string, opts Options) (*query.Query, []lint.Message, error) {
	return parseString(spec{
		rules:        ebscoRules,
		transitions:  ebscoTransitions,
		style:        fieldPrefix,
		fields:       translate.EBSCOFields,
		required:     true,
		def:          "TI",
		maxNear:      ebscoMaxNear,
		invalidChars: "@%^~\\<>",
		resolve:      resolveEBSCOFields,
	}, queryStr, opts)
}

func resolveEBSCOFields(h *lint.Handler, root *query.Query) {
	root.Walk(func(n *query.Query) {
		if !n.IsTerm() || n.Field == nil {
			return
		}
		raw := translate.EBSCOFields.Normalize(n.Field.Raw)
		fields, ok := translate.EBSCOFields.Resolve(raw)
		if !ok {
			return
		}
		n.Field.Raw = raw
		n.Field.Generic = fields[0]
	})
}
