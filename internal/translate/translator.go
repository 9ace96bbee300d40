// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package translate

import (
	"fmt"

	"github.com/CoLRev-Environment/search-query/pkg/lint"
	"github.com/CoLRev-Environment/search-query/pkg/query"
)

// toGeneric converts a platform tree into the generic IR: fields are pushed
// down to terms, resolved against the platform field map, combined fields
// are expanded into ORs over atomic copies, and same-kind nesting is
// flattened. generalField is the field supplied outside the query string;
// it applies to terms without their own restriction.
func toGeneric(fields *FieldMap, q *query.Query, generalField string) (*query.Query, error) {
	if err := checkStructure(q); err != nil {
		return nil, err
	}
	out := q.Clone()
	MoveFieldsToTerms(out)

	var resolveErr error
	out.Walk(func(n *query.Query) {
		if resolveErr != nil || !n.IsTerm() {
			return
		}
		raw := ""
		if n.Field != nil {
			raw = n.Field.Raw
		} else if generalField != "" {
			raw = generalField
		}
		if raw == "" {
			// No restriction anywhere: the platform default applies, which
			// the generic IR represents as an unrestricted term.
			return
		}
		if repl, ok := fields.Deprecated[fields.Normalize(raw)]; ok {
			resolveErr = fmt.Errorf("field %q is deprecated, use %q", raw, repl)
			return
		}
		resolved, ok := fields.Resolve(raw)
		if !ok {
			resolveErr = fmt.Errorf("field %q is not supported by this platform", raw)
			return
		}
		if len(resolved) > 1 {
			expandCombined(n, resolved)
			return
		}
		n.Field = &query.SearchField{Raw: fields.Normalize(raw), Generic: resolved[0], Pos: query.Artificial}
	})
	if resolveErr != nil {
		return nil, resolveErr
	}
	Flatten(out)
	return out, nil
}

// specificOptions tunes toSpecific per platform.
type specificOptions struct {
	// recombine re-contracts ORs over atomic fields into combined platform
	// fields where a combined spelling exists.
	recombine bool
	// hoist lifts term fields shared by all children onto the operator,
	// for platforms whose syntax scopes a field over a group.
	hoist bool
	// fallback is the raw spelling substituted for generic fields the
	// platform cannot express; the substitution is reported as a warning.
	fallback string
}

// toSpecific converts a generic tree into the platform's syntax shape.
// Generic fields without a platform equivalent are substituted by the
// platform's broadest field and reported as warnings, not failures.
func toSpecific(fields *FieldMap, q *query.Query, opts specificOptions) (*query.Query, []lint.Message, error) {
	if err := checkStructure(q); err != nil {
		return nil, nil, err
	}
	out := q.Clone()
	MoveFieldsToTerms(out)

	var messages []lint.Message
	out.Walk(func(n *query.Query) {
		if !n.IsTerm() || n.Field == nil {
			return
		}
		generic := n.Field.Generic
		if generic == "" {
			// Already platform-specific; normalize the spelling.
			n.Field.Raw = fields.Normalize(n.Field.Raw)
			return
		}
		spelling, ok := fields.Spelling(generic)
		if !ok {
			messages = append(messages, lint.Message{
				Code:     lint.FieldSubstituted.Code,
				Label:    lint.FieldSubstituted.Label,
				Severity: lint.SeverityWarning,
				Pos:      query.Artificial,
				Details: fmt.Sprintf("field %q has no equivalent on this platform, using %q",
					generic, opts.fallback),
			})
			spelling = opts.fallback
		}
		n.Field = &query.SearchField{Raw: spelling, Generic: generic, Pos: query.Artificial}
	})

	if opts.recombine {
		RecombineForPlatform(fields, out)
	}
	Flatten(out)
	if opts.hoist {
		HoistFields(out)
	}
	return out, messages, nil
}

// RecombineForPlatform contracts OR branches that repeat one term value across
// exactly the atomic fields forming a known combined field back into a
// single term with the combined spelling.
func RecombineForPlatform(fields *FieldMap, q *query.Query) {
	for _, child := range q.Children {
		RecombineForPlatform(fields, child)
	}
	if q.Kind != query.NodeOr {
		return
	}

	// Group term children by value.
	byValue := map[string][]*query.Query{}
	for _, child := range q.Children {
		if child.IsTerm() && child.Field != nil {
			byValue[child.Value] = append(byValue[child.Value], child)
		}
	}

	replaced := map[*query.Query]*query.Query{} // member -> combined replacement (nil for drop)
	for value, terms := range byValue {
		if len(terms) < 2 {
			continue
		}
		var genericSet []query.Field
		for _, t := range terms {
			f := t.Field.Generic
			if f == "" {
				genericSet = nil
				break
			}
			genericSet = append(genericSet, f)
		}
		if genericSet == nil {
			continue
		}
		spelling, ok := fields.CombinedSpelling(genericSet)
		if !ok {
			continue
		}
		combined := query.NewTerm(value, query.NewSearchField(spelling))
		replaced[terms[0]] = combined
		for _, t := range terms[1:] {
			replaced[t] = nil
		}
	}
	if len(replaced) == 0 {
		return
	}

	var children []*query.Query
	for _, child := range q.Children {
		if repl, ok := replaced[child]; ok {
			if repl != nil {
				children = append(children, repl)
			}
			continue
		}
		children = append(children, child)
	}
	q.Children = children

	// An OR that contracted to a single term collapses into its parent's
	// slot; the caller sees a term node in place of the operator.
	if len(q.Children) == 1 {
		only := q.Children[0]
		*q = *only
	}
}

// PubMed translates between PubMed syntax trees and the generic IR.
type PubMed struct{}

// ToGeneric expands [tiab] terms into OR[term[ti], term[ab]] and resolves
// bracket tags to generic fields.
func (PubMed) ToGeneric(q *query.Query, generalField string) (*query.Query, error) {
	return toGeneric(PubMedFields, q, generalField)
}

// ToSpecific recombines title/abstract ORs into [tiab] and renders generic
// fields as bracket tags. PubMed attaches fields to terms only, so operator
// fields are pushed down, never hoisted.
func (PubMed) ToSpecific(q *query.Query) (*query.Query, []lint.Message, error) {
	return toSpecific(PubMedFields, q, specificOptions{
		recombine: true,
		fallback:  "[all]",
	})
}

// WOS translates between Web of Science syntax trees and the generic IR.
type WOS struct{}

func (WOS) ToGeneric(q *query.Query, generalField string) (*query.Query, error) {
	return toGeneric(WOSFields, q, generalField)
}

// ToSpecific hoists shared term fields onto operators so the serializer can
// emit the grouped "TS=(... AND ...)" form.
func (WOS) ToSpecific(q *query.Query) (*query.Query, []lint.Message, error) {
	return toSpecific(WOSFields, q, specificOptions{
		hoist:    true,
		fallback: "TS=",
	})
}

// EBSCO translates between EBSCOHost syntax trees and the generic IR.
type EBSCO struct{}

func (EBSCO) ToGeneric(q *query.Query, generalField string) (*query.Query, error) {
	return toGeneric(EBSCOFields, q, generalField)
}

func (EBSCO) ToSpecific(q *query.Query) (*query.Query, []lint.Message, error) {
	return toSpecific(EBSCOFields, q, specificOptions{
		hoist:    true,
		fallback: "TX",
	})
}
