// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package translate

import (
	"fmt"

	"github.com/CoLRev-Environment/search-query/pkg/query"
)

// Structural rewrite utilities shared by the platform translators. All of
// them mutate the given tree in place; translators clone before calling.

// MoveFieldsToTerms pushes an operator-level field restriction down to every
// descendant term that has no restriction of its own.
func MoveFieldsToTerms(q *query.Query) {
	if q.IsOperator() && q.Field != nil {
		for _, child := range q.Children {
			if child.Field == nil {
				child.Field = q.Field.Clone()
			}
		}
		q.Field = nil
	}
	for _, child := range q.Children {
		MoveFieldsToTerms(child)
	}
}

// HoistFields moves a field shared by all children up to the parent
// operator. The hoist only applies when every child is an atomic term with
// an identical field; mixed or nested children are left alone.
func HoistFields(q *query.Query) {
	for _, child := range q.Children {
		HoistFields(child)
	}
	if !q.IsOperator() || q.Field != nil || len(q.Children) == 0 {
		return
	}
	first := q.Children[0]
	if !first.IsTerm() || first.Field == nil {
		return
	}
	for _, child := range q.Children {
		if !child.IsTerm() || !first.Field.Equal(child.Field) {
			return
		}
	}
	q.Field = first.Field.Clone()
	for _, child := range q.Children {
		child.Field = nil
	}
}

// Flatten merges directly nested operators of the same associative kind:
// AND[AND[x, y], z] becomes AND[x, y, z]. NOT is not associative and is
// never flattened; NEAR nodes only merge when their distances match. A
// nested operator carrying its own field keeps its nesting, since the
// field scope would otherwise widen.
func Flatten(q *query.Query) {
	for _, child := range q.Children {
		Flatten(child)
	}
	if !q.IsOperator() || q.Kind == query.NodeNot {
		return
	}
	var merged []*query.Query
	for _, child := range q.Children {
		if child.Kind == q.Kind && child.Kind != query.NodeNot && child.Field == nil &&
			(child.Kind != query.NodeNear || child.Distance == q.Distance) {
			merged = append(merged, child.Children...)
			continue
		}
		merged = append(merged, child)
	}
	q.Children = merged
}

// expandCombined replaces a term restricted by a combined field with an OR
// over atomic-field copies of the same term.
func expandCombined(term *query.Query, fields []query.Field) {
	children := make([]*query.Query, len(fields))
	for i, f := range fields {
		children[i] = query.NewTerm(term.Value, query.NewGenericField(f))
		children[i].Pos = term.Pos
	}
	term.Kind = query.NodeOr
	term.Value = ""
	term.Field = nil
	term.Children = children
}

// checkStructure rejects trees a translator cannot process: NOT nodes
// without exactly two children and terms with children. These are
// programmer-facing errors, not linter findings.
func checkStructure(q *query.Query) error {
	if err := q.Validate(); err != nil {
		return fmt.Errorf("translating query: %w", err)
	}
	return nil
}
