// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package serialize renders query trees as platform syntax strings. The
// serializers never validate: a structurally valid tree always renders,
// even when semantically unusual. Validation is the linter's job.
package serialize

import (
	"fmt"
	"strings"

	"github.com/CoLRev-Environment/search-query/internal/translate"
	"github.com/CoLRev-Environment/search-query/pkg/query"
)

// quoteTerm wraps multi-word terms in straight quotes.
func quoteTerm(value string) string {
	if strings.ContainsAny(value, " \t") && !strings.HasPrefix(value, `"`) {
		return `"` + value + `"`
	}
	return value
}

// joinInfix renders children joined by the operator label, parenthesized.
// NOT renders without an operator repeat: "(a NOT b)".
func joinInfix(children []string, label string) string {
	return "(" + strings.Join(children, " "+label+" ") + ")"
}

// PubMed renders PubMed syntax: postfix bracket fields on terms, fields
// never on operators. ORs over the same term across title and abstract
// recombine into the [tiab] spelling before rendering.
type PubMed struct{}

// ToString renders the tree as a PubMed search string.
func (PubMed) ToString(q *query.Query) (string, error) {
	work := q.Clone()
	translate.MoveFieldsToTerms(work)
	translate.RecombineForPlatform(translate.PubMedFields, work)
	s, err := pubmedRender(work, true)
	if err != nil {
		return "", err
	}
	return s, nil
}

func pubmedRender(q *query.Query, root bool) (string, error) {
	if q.IsTerm() {
		s := quoteTerm(q.Value)
		if q.Field != nil {
			raw, err := fieldSpelling(translate.PubMedFields, q.Field, "pubmed")
			if err != nil {
				return "", err
			}
			s += raw
		}
		return s, nil
	}
	parts := make([]string, len(q.Children))
	for i, child := range q.Children {
		s, err := pubmedRender(child, false)
		if err != nil {
			return "", err
		}
		parts[i] = s
	}
	label := q.OperatorLabel()
	if q.Kind == query.NodeNot {
		label = "NOT"
	}
	s := joinInfix(parts, label)
	if root {
		// PubMed accepts an unparenthesized top level.
		s = strings.TrimSuffix(strings.TrimPrefix(s, "("), ")")
	}
	return s, nil
}

// WOS renders Web of Science syntax: prefix "XX=" fields, either per term
// or scoping a parenthesized group ("TS=(a AND b)").
type WOS struct {
	// ImplicitNear renders distance-15 NEAR operators as bare "NEAR"
	// (the pre-1.0 spelling).
	ImplicitNear bool
}

// ToString renders the tree as a WOS advanced-search string.
func (s WOS) ToString(q *query.Query) (string, error) {
	work := q.Clone()
	translate.HoistFields(work)
	return s.render(work, true)
}

func (s WOS) render(q *query.Query, root bool) (string, error) {
	if q.IsTerm() {
		out := quoteTerm(q.Value)
		if q.Field != nil {
			raw, err := wosSpelling(q.Field)
			if err != nil {
				return "", err
			}
			out = raw + out
		}
		return out, nil
	}
	parts := make([]string, len(q.Children))
	for i, child := range q.Children {
		p, err := s.render(child, false)
		if err != nil {
			return "", err
		}
		parts[i] = p
	}
	label := q.OperatorLabel()
	if q.Kind == query.NodeNot {
		label = "NOT"
	}
	if q.Kind == query.NodeNear && s.ImplicitNear && q.Distance == 15 {
		label = "NEAR"
	}
	out := joinInfix(parts, label)
	if q.Field != nil {
		raw, err := wosSpelling(q.Field)
		if err != nil {
			return "", err
		}
		out = raw + out
	} else if root {
		out = strings.TrimSuffix(strings.TrimPrefix(out, "("), ")")
	}
	return out, nil
}

func wosSpelling(f *query.SearchField) (string, error) {
	return fieldSpelling(translate.WOSFields, f, "wos")
}

// EBSCO renders EBSCOHost syntax: prefix two-letter codes separated from
// the term by a space, proximity as N<d>.
type EBSCO struct{}

// ToString renders the tree as an EBSCOHost search string.
func (EBSCO) ToString(q *query.Query) (string, error) {
	work := q.Clone()
	translate.HoistFields(work)
	return ebscoRender(work, true)
}

func ebscoRender(q *query.Query, root bool) (string, error) {
	if q.IsTerm() {
		out := quoteTerm(q.Value)
		if q.Field != nil {
			raw, err := ebscoSpelling(q.Field)
			if err != nil {
				return "", err
			}
			out = raw + " " + out
		}
		return out, nil
	}
	parts := make([]string, len(q.Children))
	for i, child := range q.Children {
		p, err := ebscoRender(child, false)
		if err != nil {
			return "", err
		}
		parts[i] = p
	}
	label := q.OperatorLabel()
	switch q.Kind {
	case query.NodeNot:
		label = "NOT"
	case query.NodeNear:
		label = fmt.Sprintf("N%d", q.Distance)
	}
	out := joinInfix(parts, label)
	if q.Field != nil {
		raw, err := ebscoSpelling(q.Field)
		if err != nil {
			return "", err
		}
		out = raw + " " + out
	} else if root {
		out = strings.TrimSuffix(strings.TrimPrefix(out, "("), ")")
	}
	return out, nil
}

func ebscoSpelling(f *query.SearchField) (string, error) {
	return fieldSpelling(translate.EBSCOFields, f, "ebsco")
}

// fieldSpelling picks the platform spelling for a field restriction. A raw
// spelling the platform already recognizes wins; otherwise the generic field
// is spelled out in platform syntax.
func fieldSpelling(m *translate.FieldMap, f *query.SearchField, platform string) (string, error) {
	if f.Raw != "" && m.Valid(f.Raw) {
		return m.Normalize(f.Raw), nil
	}
	if f.Generic != "" {
		if raw, ok := m.Spelling(f.Generic); ok {
			return raw, nil
		}
	}
	name := f.Raw
	if name == "" {
		name = string(f.Generic)
	}
	return "", fmt.Errorf("serializing %s query: no spelling for field %q", platform, name)
}

// Generic renders the IR in the compact debugging notation, for inspecting
// intermediate translation results.
type Generic struct{}

// ToString renders the tree in generic notation.
func (Generic) ToString(q *query.Query) (string, error) {
	return q.String(), nil
}
