// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package parser builds query trees from platform syntax strings. Each
// platform parser drives the same pipeline: lex, token-level lint checks,
// artificial-parentheses precedence resolution, bottom-up tree
// construction, field resolution, tree-level lint checks. A fatal finding
// at any stage aborts with a *lint.FatalError carrying the message list.
package parser

import (
	"fmt"
	"strings"

	"github.com/CoLRev-Environment/search-query/internal/lexer"
	"github.com/CoLRev-Environment/search-query/internal/translate"
	"github.com/CoLRev-Environment/search-query/pkg/lint"
	"github.com/CoLRev-Environment/search-query/pkg/query"
)

// Options carries the per-call parse settings.
type Options struct {
	// Mode selects strict or lenient linting (lenient is the zero value).
	Mode lint.Mode
	// Silent suppresses warning-level messages from the result.
	Silent bool
	// GeneralField is a search field supplied outside the query string,
	// e.g. from a search file's field attribute.
	GeneralField string
}

// fieldStyle distinguishes where a platform writes field restrictions.
type fieldStyle int

const (
	// fieldPrefix: the field precedes the term or group (WOS "TI=term",
	// EBSCO "TI term"). A prefix field stays in effect for subsequent
	// operands at the same nesting level.
	fieldPrefix fieldStyle = iota
	// fieldPostfix: the field follows the term (PubMed "term[ti]").
	// Postfix fields bind to single terms only.
	fieldPostfix
)

// spec bundles everything platform-specific about the shared parse flow.
type spec struct {
	rules       []lexer.Rule
	transitions map[query.TokenKind][]query.TokenKind
	style       fieldStyle
	fields      *translate.FieldMap
	// required marks platforms whose queries must carry a field; def is
	// the default substituted in lenient mode.
	required bool
	def      string
	// maxNear is the proximity distance ceiling; 0 disables the check.
	maxNear int
	// invalidChars are rejected inside search terms.
	invalidChars string
	// resolve finalizes fields on the built tree and runs extra
	// platform-specific tree checks.
	resolve func(h *lint.Handler, q *query.Query)
	// pretokenize rewrites the token stream before validation (e.g. the
	// WOS 0.9 SAME operator).
	pretokenize func(h *lint.Handler, tokens []query.Token) []query.Token
}

// parseString runs the shared parse pipeline.
func parseString(s spec, queryStr string, opts Options) (*query.Query, []lint.Message, error) {
	h := lint.NewHandler(queryStr, opts.Mode)
	h.Silent = opts.Silent

	cleaned, offsets := lint.NormalizeQuotes(h, queryStr)
	tokens := lexer.Lex(cleaned, s.rules)
	lint.RemapPositions(tokens, offsets)
	tokens = lexer.CombineTerms(tokens)
	if s.pretokenize != nil {
		tokens = s.pretokenize(h, tokens)
	}

	lint.CheckUnknownTokens(h, tokens)
	lint.CheckUnbalancedParentheses(h, tokens)
	lint.CheckEmptyParentheses(h, tokens)
	lint.CheckOperatorCapitalization(h, tokens)
	lint.CheckTokenSequence(h, tokens, s.transitions)
	if s.maxNear > 0 {
		lint.CheckNearDistance(h, tokens, s.maxNear)
	}

	applied := lint.CheckFieldSpec(h, lint.FieldSpec{
		Required:    s.required,
		Default:     s.def,
		InString:    firstField(tokens, s.style),
		InStringPos: firstFieldPos(tokens),
		General:     opts.GeneralField,
		Same:        fieldsEquivalent(s.fields),
	})

	if h.HasFatal() {
		return nil, h.Messages(), h.Err()
	}
	if err := h.Err(); err != nil {
		// Strict mode with error-level findings.
		return nil, h.Messages(), err
	}

	tokens = lint.ResolvePrecedence(h, tokens)

	var defaultField *query.SearchField
	if applied != "" {
		defaultField = query.NewSearchField(applied)
	}
	root, err := buildTree(tokens, s.style, defaultField)
	if err != nil {
		h.AddFatal(lint.InvalidTokenSequence, query.Artificial, err.Error())
		return nil, h.Messages(), h.Err()
	}

	if s.resolve != nil {
		s.resolve(h, root)
	}
	lint.CheckQuotes(h, root)
	if s.invalidChars != "" {
		lint.CheckInvalidCharacters(h, root, s.invalidChars)
	}
	lint.CheckRedundantTerms(h, root)
	lint.CheckUnsupportedFields(h, root, s.fields.Valid)
	lint.ValidateTree(h, root)

	if err := h.Err(); err != nil {
		return nil, h.Messages(), err
	}
	return root, h.Messages(), nil
}

// firstField returns the field restriction the query string carries: for
// prefix platforms the field opening the stream, for postfix platforms the
// first field anywhere, since postfix fields trail their terms. A prefix
// query that does not open with a field also falls back to the first field
// anywhere, so the field-or-default decision sees what the string has.
func firstField(tokens []query.Token, style fieldStyle) string {
	if style == fieldPrefix {
		if f := leadingField(tokens); f != "" {
			return f
		}
	}
	return anyField(tokens)
}

// leadingField returns the field opening the stream, looking through
// opening parentheses ("TS=(..." opens with TS=); "" when the stream opens
// with anything else.
func leadingField(tokens []query.Token) string {
	for _, t := range tokens {
		switch t.Kind {
		case query.TokenParenOpen:
			continue
		case query.TokenField:
			return t.Value
		default:
			return ""
		}
	}
	return ""
}

// anyField returns the first field token in the stream, "" when the query
// carries none.
func anyField(tokens []query.Token) string {
	for _, t := range tokens {
		if t.Kind == query.TokenField {
			return t.Value
		}
	}
	return ""
}

func firstFieldPos(tokens []query.Token) query.Span {
	for _, t := range tokens {
		if t.Kind == query.TokenField {
			return t.Pos
		}
	}
	return query.Artificial
}

// fieldsEquivalent compares two platform spellings through the field map.
func fieldsEquivalent(m *translate.FieldMap) func(a, b string) bool {
	return func(a, b string) bool {
		fa, oka := m.Resolve(a)
		fb, okb := m.Resolve(b)
		if !oka || !okb {
			return strings.EqualFold(strings.TrimSpace(a), strings.TrimSpace(b))
		}
		if len(fa) != len(fb) {
			return false
		}
		for i := range fa {
			if fa[i] != fb[i] {
				return false
			}
		}
		return true
	}
}

// builder walks the unambiguous token stream (one operator precedence per
// parenthesis level) and constructs the tree bottom-up.
type builder struct {
	tokens []query.Token
	pos    int
	style  fieldStyle
}

func buildTree(tokens []query.Token, style fieldStyle, defaultField *query.SearchField) (*query.Query, error) {
	b := &builder{tokens: tokens, style: style}
	root, err := b.parseLevel(defaultField)
	if err != nil {
		return nil, err
	}
	if b.pos < len(b.tokens) {
		return nil, fmt.Errorf("unexpected token %q at %s", b.tokens[b.pos].Value, b.tokens[b.pos].Pos)
	}
	return root, nil
}

// parseLevel consumes one parenthesis level and returns its node. inherited
// is the field restriction in scope from an enclosing prefix field or the
// platform default.
func (b *builder) parseLevel(inherited *query.SearchField) (*query.Query, error) {
	var children []*query.Query
	var ops []query.Token
	pending := inherited

	for b.pos < len(b.tokens) {
		t := b.tokens[b.pos]
		switch t.Kind {
		case query.TokenParenClose:
			b.pos++
			return finishLevel(children, ops)

		case query.TokenParenOpen:
			b.pos++
			child, err := b.parseLevel(pending)
			if err != nil {
				return nil, err
			}
			children = append(children, child)

		case query.TokenField:
			if b.style != fieldPrefix {
				return nil, fmt.Errorf("unexpected field %q at %s", t.Value, t.Pos)
			}
			pending = &query.SearchField{Raw: t.Value, Pos: t.Pos}
			b.pos++

		case query.TokenTerm:
			term := newTermNode(t, pending)
			b.pos++
			if b.style == fieldPostfix && b.pos < len(b.tokens) && b.tokens[b.pos].Kind == query.TokenField {
				ft := b.tokens[b.pos]
				term.Field = &query.SearchField{Raw: ft.Value, Pos: ft.Pos}
				b.pos++
			}
			children = append(children, term)

		case query.TokenLogicOp, query.TokenProximityOp:
			ops = append(ops, t)
			b.pos++

		default:
			return nil, fmt.Errorf("unexpected token %q at %s", t.Value, t.Pos)
		}
	}
	return finishLevel(children, ops)
}

func newTermNode(t query.Token, field *query.SearchField) *query.Query {
	value := t.Value
	if strings.Count(value, `"`) == 2 && strings.HasPrefix(value, `"`) && strings.HasSuffix(value, `"`) {
		value = strings.Trim(value, `"`)
	}
	n := query.NewTerm(value, field.Clone())
	n.Pos = t.Pos
	return n
}

// finishLevel folds the collected operands and operators into one node.
// After precedence resolution every level carries operators of a single
// precedence, so the fold is unambiguous: AND and OR become n-ary nodes,
// NOT folds left into the two-child construct, proximity operators fold
// left into binary NEAR nodes with their individual distances.
func finishLevel(children []*query.Query, ops []query.Token) (*query.Query, error) {
	if len(children) == 0 {
		return nil, fmt.Errorf("empty expression")
	}
	if len(ops) != len(children)-1 {
		return nil, fmt.Errorf("mismatched operators: %d operators for %d operands", len(ops), len(children))
	}
	if len(ops) == 0 {
		return children[0], nil
	}

	first := strings.ToUpper(ops[0].Value)
	switch {
	case first == "AND" || first == "OR":
		kind := query.NodeAnd
		if first == "OR" {
			kind = query.NodeOr
		}
		node := &query.Query{Kind: kind, Children: children, Pos: ops[0].Pos}
		return node, nil

	case first == "NOT":
		node := children[0]
		for i, op := range ops {
			folded := query.NewNot(node, children[i+1])
			folded.Pos = op.Pos
			node = folded
		}
		return node, nil

	default:
		// Proximity operators.
		node := children[0]
		for i, op := range ops {
			folded := query.NewNear(proximityDistance(op.Value), node, children[i+1])
			folded.Pos = op.Pos
			node = folded
		}
		return node, nil
	}
}

// proximityDistance extracts the distance from a proximity spelling
// ("NEAR/5", "N5", "W3"). A bare spelling was already defaulted by the
// near-distance check.
func proximityDistance(op string) int {
	d := 0
	seen := false
	for _, c := range op {
		if c >= '0' && c <= '9' {
			d = d*10 + int(c-'0')
			seen = true
		}
	}
	if !seen {
		return 15
	}
	return d
}
