// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package lint

import (
	"fmt"
	"sort"
	"strings"

	"github.com/CoLRev-Environment/search-query/pkg/query"
)

// Precedence returns the binding strength of an operator spelling. Higher
// binds tighter. Unknown spellings return -1.
func Precedence(op string) int {
	switch strings.ToUpper(op) {
	case "OR":
		return 0
	case "AND":
		return 1
	case "NOT":
		return 2
	default:
		if strings.HasPrefix(strings.ToUpper(op), "NEAR") || strings.ToUpper(op) == "SAME" {
			return 3
		}
		return -1
	}
}

// operand is one top-level unit of a parenthesis level: a term (with its
// adjacent field tokens) or a complete parenthesized group.
type operand []query.Token

// ResolvePrecedence inserts artificial parentheses (span (-1, -1)) around
// runs of higher-precedence operators wherever a parenthesis level mixes
// operators of unequal precedence, and records an ImplicitPrecedence
// warning naming the ambiguous operators. Levels with a single precedence
// are returned unchanged. The result is a token sequence in which every
// parenthesis level carries exactly one operator precedence, which is what
// the tree builder requires.
func ResolvePrecedence(h *Handler, tokens []query.Token) []query.Token {
	operands, ops, ok := splitLevel(tokens)
	if !ok {
		// Malformed nesting is reported by CheckUnbalancedParentheses;
		// leave the tokens alone here.
		return tokens
	}

	// Resolve nested levels first.
	for i, op := range operands {
		operands[i] = resolveOperandGroup(h, op)
	}

	if distinct := distinctPrecedences(ops); len(distinct) > 1 {
		warnImplicitPrecedence(h, ops)
		operands, ops = groupByPrecedence(operands, ops)
	}
	return joinLevel(operands, ops)
}

// resolveOperandGroup recurses into a parenthesized operand.
func resolveOperandGroup(h *Handler, op operand) operand {
	if len(op) < 2 {
		return op
	}
	// A group may be prefixed by a field token (e.g. "TI=( ... )").
	start := 0
	if op[0].Kind == query.TokenField {
		start = 1
	}
	if op[start].Kind != query.TokenParenOpen || op[len(op)-1].Kind != query.TokenParenClose {
		return op
	}
	inner := ResolvePrecedence(h, op[start+1:len(op)-1])
	out := make(operand, 0, len(inner)+start+2)
	out = append(out, op[:start+1]...)
	out = append(out, inner...)
	out = append(out, op[len(op)-1])
	return out
}

// splitLevel splits one parenthesis level into operands and the operators
// between them. Returns ok=false when the nesting is unbalanced.
func splitLevel(tokens []query.Token) ([]operand, []query.Token, bool) {
	var operands []operand
	var ops []query.Token
	var current operand

	flush := func() {
		if len(current) > 0 {
			operands = append(operands, current)
			current = nil
		}
	}

	depth := 0
	for _, t := range tokens {
		switch {
		case t.Kind == query.TokenParenOpen:
			depth++
			current = append(current, t)
		case t.Kind == query.TokenParenClose:
			depth--
			if depth < 0 {
				return nil, nil, false
			}
			current = append(current, t)
			if depth == 0 {
				flush()
			}
		case depth > 0:
			current = append(current, t)
		case t.IsOperator():
			flush()
			ops = append(ops, t)
		default:
			// Terms and their field tokens accumulate into one operand.
			current = append(current, t)
		}
	}
	if depth != 0 {
		return nil, nil, false
	}
	flush()
	if len(operands) != len(ops)+1 {
		// Dangling operator; reported by CheckTokenSequence.
		return nil, nil, false
	}
	return operands, ops, true
}

func distinctPrecedences(ops []query.Token) []int {
	seen := map[int]bool{}
	var out []int
	for _, op := range ops {
		p := Precedence(op.Value)
		if !seen[p] {
			seen[p] = true
			out = append(out, p)
		}
	}
	sort.Sort(sort.Reverse(sort.IntSlice(out)))
	return out
}

// groupByPrecedence repeatedly wraps maximal runs of the highest remaining
// precedence into a single artificial-parenthesized operand until one
// precedence is left at this level.
func groupByPrecedence(operands []operand, ops []query.Token) ([]operand, []query.Token) {
	for {
		distinct := distinctPrecedences(ops)
		if len(distinct) <= 1 {
			return operands, ops
		}
		highest := distinct[0]

		newOperands := []operand{operands[0]}
		var newOps []query.Token
		i := 0
		for i < len(ops) {
			if Precedence(ops[i].Value) != highest {
				newOps = append(newOps, ops[i])
				newOperands = append(newOperands, operands[i+1])
				i++
				continue
			}
			// Merge the run [i..j) of highest-precedence operators into the
			// last collected operand, wrapped in artificial parentheses.
			run := newOperands[len(newOperands)-1]
			group := operand{{Value: "(", Kind: query.TokenParenOpen, Pos: query.Artificial}}
			group = append(group, run...)
			for i < len(ops) && Precedence(ops[i].Value) == highest {
				group = append(group, ops[i])
				group = append(group, operands[i+1]...)
				i++
			}
			group = append(group, query.Token{Value: ")", Kind: query.TokenParenClose, Pos: query.Artificial})
			newOperands[len(newOperands)-1] = group
		}
		operands, ops = newOperands, newOps
	}
}

func joinLevel(operands []operand, ops []query.Token) []query.Token {
	var out []query.Token
	for i, op := range operands {
		out = append(out, op...)
		if i < len(ops) {
			out = append(out, ops[i])
		}
	}
	return out
}

func warnImplicitPrecedence(h *Handler, ops []query.Token) {
	names := map[string]int{}
	var first query.Span
	for i, op := range ops {
		if i == 0 {
			first = op.Pos
		}
		names[strings.ToUpper(op.Value)] = Precedence(op.Value)
	}
	type entry struct {
		name string
		prec int
	}
	var entries []entry
	for n, p := range names {
		entries = append(entries, entry{n, p})
	}
	sort.Slice(entries, func(i, j int) bool { return entries[i].prec > entries[j].prec })
	var parts []string
	for _, e := range entries {
		parts = append(parts, fmt.Sprintf("%s (precedence %d)", e.name, e.prec))
	}
	h.Add(ImplicitPrecedence, first,
		"operators of unequal precedence without explicit parentheses: "+
			strings.Join(parts, ", ")+"; artificial parentheses added around higher-precedence groups")
}
