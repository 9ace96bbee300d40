// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package query defines the platform-independent search-query tree and its
// token model. A query is a single tagged node type: terms are leaves,
// operators own an ordered list of children. Trees are built bottom-up by
// the parsers, mutated in place by translators, and rendered by serializers;
// a single tree must not be mutated concurrently (Clone first).
package query

import (
	"fmt"
	"strings"
)

// NodeKind tags a query node. NodeTerm is the only leaf kind; the remaining
// kinds are Boolean/proximity operators.
type NodeKind int

const (
	NodeTerm NodeKind = iota
	NodeAnd
	NodeOr
	NodeNot
	NodeNear
)

// String returns the operator spelling ("AND", "OR", "NOT", "NEAR") or
// "TERM" for leaves.
func (k NodeKind) String() string {
	switch k {
	case NodeAnd:
		return "AND"
	case NodeOr:
		return "OR"
	case NodeNot:
		return "NOT"
	case NodeNear:
		return "NEAR"
	default:
		return "TERM"
	}
}

// Query is one node of a search-query tree.
//
// Operator nodes (Kind != NodeTerm) own their Children exclusively; sharing
// a child between two parents is not allowed, which keeps every tree acyclic
// by construction. A NOT node has exactly two children and means
// "children[0] AND NOT children[1]"; it is never a unary negation.
//
// Field may sit on an operator (applying to all descendant terms without
// their own restriction) or on terms directly. Translators move it between
// the two levels, but a tree handed to a serializer must be unambiguous:
// either the operator carries the field or every term does.
type Query struct {
	Kind NodeKind

	// Value is the term text, without surrounding quotes. Empty on operators.
	Value string

	// Distance is the NEAR proximity distance. Zero on all other kinds.
	Distance int

	Field    *SearchField
	Children []*Query

	// Pos locates the term or operator token in the original string.
	// Programmatically built nodes carry the artificial span.
	Pos Span
}

// NewTerm returns a leaf node for a search term.
func NewTerm(value string, field *SearchField) *Query {
	return &Query{Kind: NodeTerm, Value: value, Field: field, Pos: Artificial}
}

// NewAnd returns an AND node over the given children.
func NewAnd(children ...*Query) *Query {
	return &Query{Kind: NodeAnd, Children: children, Pos: Artificial}
}

// NewOr returns an OR node over the given children.
func NewOr(children ...*Query) *Query {
	return &Query{Kind: NodeOr, Children: children, Pos: Artificial}
}

// NewNot returns the two-child NOT construct "keep AND NOT exclude".
func NewNot(keep, exclude *Query) *Query {
	return &Query{Kind: NodeNot, Children: []*Query{keep, exclude}, Pos: Artificial}
}

// NewNear returns a NEAR node with the given proximity distance.
func NewNear(distance int, children ...*Query) *Query {
	return &Query{Kind: NodeNear, Distance: distance, Children: children, Pos: Artificial}
}

// IsTerm reports whether the node is a leaf term.
func (q *Query) IsTerm() bool { return q.Kind == NodeTerm }

// IsOperator reports whether the node is an operator.
func (q *Query) IsOperator() bool { return q.Kind != NodeTerm }

// OperatorLabel returns the serializable operator spelling, including the
// NEAR distance ("NEAR/5").
func (q *Query) OperatorLabel() string {
	if q.Kind == NodeNear {
		return fmt.Sprintf("NEAR/%d", q.Distance)
	}
	return q.Kind.String()
}

// Clone returns a deep copy of the tree. Callers that need to mutate a tree
// concurrently with other readers must work on a clone.
func (q *Query) Clone() *Query {
	if q == nil {
		return nil
	}
	c := &Query{
		Kind:     q.Kind,
		Value:    q.Value,
		Distance: q.Distance,
		Field:    q.Field.Clone(),
		Pos:      q.Pos,
	}
	if len(q.Children) > 0 {
		c.Children = make([]*Query, len(q.Children))
		for i, child := range q.Children {
			c.Children[i] = child.Clone()
		}
	}
	return c
}

// Equal reports structural equality: kind, term value, distance, resolved
// field and children, ignoring positions.
func (q *Query) Equal(other *Query) bool {
	if q == nil || other == nil {
		return q == other
	}
	if q.Kind != other.Kind || q.Value != other.Value || q.Distance != other.Distance {
		return false
	}
	if !q.Field.Equal(other.Field) {
		return false
	}
	if len(q.Children) != len(other.Children) {
		return false
	}
	for i := range q.Children {
		if !q.Children[i].Equal(other.Children[i]) {
			return false
		}
	}
	return true
}

// Walk visits the tree in depth-first pre-order.
func (q *Query) Walk(fn func(*Query)) {
	if q == nil {
		return
	}
	fn(q)
	for _, child := range q.Children {
		child.Walk(fn)
	}
}

// Terms returns all leaf terms in serialization order.
func (q *Query) Terms() []*Query {
	var terms []*Query
	q.Walk(func(n *Query) {
		if n.IsTerm() {
			terms = append(terms, n)
		}
	})
	return terms
}

// Validate checks the structural invariants that every tree must satisfy,
// whether it came from a parser or was built programmatically: NOT has
// exactly two children, NEAR has a non-negative distance and at least two
// children, other operators have at least two children, and terms are
// childless with non-empty values.
func (q *Query) Validate() error {
	switch q.Kind {
	case NodeTerm:
		if len(q.Children) != 0 {
			return fmt.Errorf("term %q must not have children", q.Value)
		}
		if strings.TrimSpace(q.Value) == "" {
			return fmt.Errorf("term with empty value at %s", q.Pos)
		}
		return nil
	case NodeNot:
		if len(q.Children) != 2 {
			return fmt.Errorf("NOT requires exactly two children, got %d", len(q.Children))
		}
	case NodeNear:
		if q.Distance < 0 {
			return fmt.Errorf("NEAR distance must be non-negative, got %d", q.Distance)
		}
		if len(q.Children) < 2 {
			return fmt.Errorf("NEAR requires at least two children, got %d", len(q.Children))
		}
	default:
		if len(q.Children) < 2 {
			return fmt.Errorf("%s requires at least two children, got %d", q.Kind, len(q.Children))
		}
	}
	for _, child := range q.Children {
		if err := child.Validate(); err != nil {
			return err
		}
	}
	return nil
}

// String renders the tree in a compact debugging notation,
// e.g. AND[digital[title], OR[work, labour]].
func (q *Query) String() string {
	if q.IsTerm() {
		if q.Field != nil {
			return fmt.Sprintf("%s[%s]", q.Value, q.Field)
		}
		return q.Value
	}
	parts := make([]string, len(q.Children))
	for i, child := range q.Children {
		parts[i] = child.String()
	}
	label := q.OperatorLabel()
	if q.Field != nil {
		label += "{" + q.Field.String() + "}"
	}
	return label + "[" + strings.Join(parts, ", ") + "]"
}
