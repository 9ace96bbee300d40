// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package parser

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/CoLRev-Environment/search-query/internal/lexer"
	"github.com/CoLRev-Environment/search-query/internal/translate"
	"github.com/CoLRev-Environment/search-query/pkg/lint"
	"github.com/CoLRev-Environment/search-query/pkg/query"
)

// wosMaxNear is the largest proximity distance Web of Science accepts, and
// the distance a bare NEAR implies.
const wosMaxNear = 15

// wosMaxYearSpan is the widest PY= range the platform searches in one query.
const wosMaxYearSpan = 5

// WOS parses Web of Science advanced-search queries. Fields are "XX="
// prefixes applying to the following term or group; a prefix stays in
// effect for later operands at the same parenthesis level.
//
// Legacy is the 0.9 syntax generation, which still emitted the SAME
// operator. Both generations accept bare NEAR with the implicit distance.
type WOS struct {
	Legacy bool
}

var wosRules = []lexer.Rule{
	lexer.NewRule(query.TokenParenOpen, `\(`),
	lexer.NewRule(query.TokenParenClose, `\)`),
	lexer.NewRule(query.TokenProximityOp, `(?i:NEAR/\d{1,2}|NEAR|SAME)\b`),
	lexer.NewRule(query.TokenLogicOp, `(?i:AND|OR|NOT)\b`),
	lexer.NewRule(query.TokenField,
		`(?i:ALL FIELDS|AUTHOR KEYWORDS|KEYWORDS PLUS|YEAR PUBLISHED|PUBLICATION NAME|ISSN/ISBN|PUBMED ID|[A-Za-z]{2,8})=`),
	lexer.NewRule(query.TokenTerm, `"[^"]*"|[^\s()]+`),
}

var wosTransitions = map[query.TokenKind][]query.TokenKind{
	query.TokenParenOpen:  {query.TokenTerm, query.TokenField, query.TokenParenOpen},
	query.TokenParenClose: {query.TokenLogicOp, query.TokenProximityOp, query.TokenParenClose},
	query.TokenField:      {query.TokenTerm, query.TokenParenOpen},
	query.TokenTerm:       {query.TokenLogicOp, query.TokenProximityOp, query.TokenParenClose},
	query.TokenLogicOp:    {query.TokenTerm, query.TokenField, query.TokenParenOpen},
	query.TokenProximityOp: {
		query.TokenTerm, query.TokenField, query.TokenParenOpen,
	},
}

// Parse builds the query tree for a Web of Science query string.
func (p WOS) Parse(queryStr string, opts Options) (*query.Query, []lint.Message, error) {
	return parseString(spec{
		rules:        wosRules,
		transitions:  wosTransitions,
		style:        fieldPrefix,
		fields:       translate.WOSFields,
		required:     true,
		def:          "TS=",
		maxNear:      wosMaxNear,
		invalidChars: "!&@%^~\\<>;",
		resolve:      resolveWOSFields,
		pretokenize:  p.rewriteSame,
	}, queryStr, opts)
}

// rewriteSame replaces the SAME operator with NEAR at the implicit
// distance. SAME searched within the same sentence; NEAR/15 is the
// documented migration.
func (p WOS) rewriteSame(h *lint.Handler, tokens []query.Token) []query.Token {
	for i, t := range tokens {
		if t.Kind != query.TokenProximityOp || !strings.EqualFold(t.Value, "SAME") {
			continue
		}
		details := "SAME is deprecated, searching as NEAR/15"
		if !p.Legacy {
			details = "SAME is no longer supported, searching as NEAR/15"
		}
		h.Add(lint.DeprecatedProximity, t.Pos, details)
		tokens[i].Value = fmt.Sprintf("NEAR/%d", wosMaxNear)
	}
	return tokens
}

var wosYearRe = regexp.MustCompile(`^(\d{4})(?:-(\d{4}))?$`)

// resolveWOSFields normalizes "XX=" prefixes on the built tree and checks
// year restrictions: PY= values must be a four-digit year or a year range,
// may not carry wildcards, and may not span more than the platform allows.
func resolveWOSFields(h *lint.Handler, root *query.Query) {
	root.Walk(func(n *query.Query) {
		if !n.IsTerm() || n.Field == nil {
			return
		}
		raw := translate.WOSFields.Normalize(n.Field.Raw)
		fields, ok := translate.WOSFields.Resolve(raw)
		if !ok {
			return
		}
		n.Field.Raw = raw
		n.Field.Generic = fields[0]
		if fields[0] == query.FieldYear {
			checkWOSYear(h, n)
		}
	})
}

func checkWOSYear(h *lint.Handler, n *query.Query) {
	if strings.ContainsAny(n.Value, "*?$") {
		h.Add(lint.WildcardInYear, n.Pos,
			fmt.Sprintf("wildcards are not allowed in year values: %q", n.Value))
		return
	}
	m := wosYearRe.FindStringSubmatch(n.Value)
	if m == nil {
		if h.Mode == lint.ModeStrict {
			h.Add(lint.YearFormatInvalid, n.Pos,
				fmt.Sprintf("invalid year value %q, expected yyyy or yyyy-yyyy", n.Value))
			return
		}
		h.AddFatal(lint.YearFormatInvalid, n.Pos,
			fmt.Sprintf("invalid year value %q, expected yyyy or yyyy-yyyy", n.Value))
		return
	}
	if m[2] == "" {
		return
	}
	from, _ := strconv.Atoi(m[1])
	to, _ := strconv.Atoi(m[2])
	if to-from > wosMaxYearSpan {
		h.Add(lint.YearSpanViolation, n.Pos,
			fmt.Sprintf("year span %q exceeds %d years, narrowing to %d-%d",
				n.Value, wosMaxYearSpan, from, from+wosMaxYearSpan))
		if h.Mode == lint.ModeLenient {
			n.Value = fmt.Sprintf("%d-%d", from, from+wosMaxYearSpan)
		}
	}
}
