// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package translate converts query trees between platform-specific syntax
// shapes and the generic intermediate representation. Field mappings come
// in three cardinalities: 1:1 (direct substitution), 1:n (a combined
// platform field expands into an OR over atomic generic fields), and n:1
// (several platform spellings fold to one generic field; emission uses the
// platform's default spelling).
package translate

import (
	"strings"

	"github.com/CoLRev-Environment/search-query/pkg/query"
)

// FieldMap holds one platform's field tables.
type FieldMap struct {
	// Syntax maps normalized platform spellings to generic fields (1:1 and
	// the target side of n:1).
	Syntax map[string]query.Field
	// Combined maps platform spellings that cover several generic fields
	// (1:n), e.g. PubMed "[tiab]".
	Combined map[string][]query.Field
	// Variants folds alternative spellings to the normalized one (n:1),
	// e.g. WOS "title=" to "TI=".
	Variants map[string]string
	// Deprecated maps retired spellings to their replacement. Use of a
	// deprecated spelling is an error, not a silent rewrite.
	Deprecated map[string]string
	// normalize canonicalizes a raw spelling before lookup.
	normalize func(string) string
}

// Normalize canonicalizes a raw platform spelling (case, variants).
func (m *FieldMap) Normalize(raw string) string {
	key := raw
	if m.normalize != nil {
		key = m.normalize(raw)
	}
	if std, ok := m.Variants[key]; ok {
		return std
	}
	return key
}

// Resolve returns the generic fields for a raw platform spelling. The
// second result reports whether the spelling is known; combined fields
// return more than one generic field.
func (m *FieldMap) Resolve(raw string) ([]query.Field, bool) {
	key := m.Normalize(raw)
	if fields, ok := m.Combined[key]; ok {
		return fields, true
	}
	if f, ok := m.Syntax[key]; ok {
		return []query.Field{f}, true
	}
	return nil, false
}

// Valid reports whether the raw spelling is known to the platform,
// including deprecated spellings (those are flagged separately).
func (m *FieldMap) Valid(raw string) bool {
	if _, ok := m.Resolve(raw); ok {
		return true
	}
	key := m.Normalize(raw)
	_, deprecated := m.Deprecated[key]
	return deprecated
}

// Spelling returns the platform's default spelling for a generic field.
func (m *FieldMap) Spelling(f query.Field) (string, bool) {
	for raw, generic := range m.Syntax {
		if generic == f {
			return raw, true
		}
	}
	return "", false
}

// CombinedSpelling returns the platform spelling covering exactly the given
// generic field set, if one exists.
func (m *FieldMap) CombinedSpelling(fields []query.Field) (string, bool) {
	for raw, set := range m.Combined {
		if sameFieldSet(set, fields) {
			return raw, true
		}
	}
	return "", false
}

func sameFieldSet(a, b []query.Field) bool {
	if len(a) != len(b) {
		return false
	}
	seen := map[query.Field]bool{}
	for _, f := range a {
		seen[f] = true
	}
	for _, f := range b {
		if !seen[f] {
			return false
		}
	}
	return true
}

// PubMedFields is the PubMed field table: bracket tags, long-form variants
// folding to the short tags, and the [tiab] combined field.
var PubMedFields = &FieldMap{
	normalize: strings.ToLower,
	Syntax: map[string]query.Field{
		"[all]":  query.FieldAll,
		"[ti]":   query.FieldTitle,
		"[ab]":   query.FieldAbstract,
		"[au]":   query.FieldAuthor,
		"[mh]":   query.FieldMeshTerm,
		"[tw]":   query.FieldTextWord,
		"[la]":   query.FieldLanguage,
		"[dp]":   query.FieldYear,
		"[ta]":   query.FieldSource,
		"[isbn]": query.FieldISBN,
		"[ot]":   query.FieldKeywords,
	},
	Combined: map[string][]query.Field{
		"[tiab]": {query.FieldTitle, query.FieldAbstract},
	},
	Variants: map[string]string{
		"[all fields]":       "[all]",
		"[title]":            "[ti]",
		"[abstract]":         "[ab]",
		"[author]":           "[au]",
		"[mesh]":             "[mh]",
		"[mesh terms]":       "[mh]",
		"[mesh terms:noexp]": "[mh]",
		"[mh:noexp]":         "[mh]",
		"[majr]":             "[mh]",
		"[text word]":        "[tw]",
		"[language]":         "[la]",
		"[publication date]": "[dp]",
		"[pdate]":            "[dp]",
		"[journal]":          "[ta]",
		"[other term]":       "[ot]",
		"[title/abstract]":   "[tiab]",
	},
	Deprecated: map[string]string{
		"[mj]": "[majr]",
	},
}

// WOSFields is the Web of Science field table: "XX=" tags with long-form
// variants. WOS has no combined fields.
var WOSFields = &FieldMap{
	normalize: strings.ToUpper,
	Syntax: map[string]query.Field{
		"ALL=":  query.FieldAll,
		"TI=":   query.FieldTitle,
		"AB=":   query.FieldAbstract,
		"TS=":   query.FieldTopic,
		"AU=":   query.FieldAuthor,
		"AK=":   query.FieldAuthorKeywords,
		"KP=":   query.FieldKeywordsPlus,
		"LA=":   query.FieldLanguage,
		"PY=":   query.FieldYear,
		"SO=":   query.FieldSource,
		"IS=":   query.FieldISSN,
		"DO=":   query.FieldDOI,
		"PMID=": query.FieldPubmedID,
	},
	Combined: map[string][]query.Field{},
	Variants: map[string]string{
		"ALL FIELDS=":       "ALL=",
		"TITLE=":            "TI=",
		"ABSTRACT=":         "AB=",
		"TOPIC=":            "TS=",
		"AUTHOR=":           "AU=",
		"AUTHOR KEYWORDS=":  "AK=",
		"KEYWORDS PLUS=":    "KP=",
		"LANGUAGE=":         "LA=",
		"YEAR PUBLISHED=":   "PY=",
		"PUBLICATION NAME=": "SO=",
		"ISSN/ISBN=":        "IS=",
		"DOI=":              "DO=",
		"PUBMED ID=":        "PMID=",
	},
	Deprecated: map[string]string{},
}

// EBSCOFields is the EBSCOHost field table: two-letter codes preceding the
// term.
var EBSCOFields = &FieldMap{
	normalize: strings.ToUpper,
	Syntax: map[string]query.Field{
		"TI": query.FieldTitle,
		"AB": query.FieldAbstract,
		"TX": query.FieldAll,
		"SU": query.FieldSubjectTerms,
		"SO": query.FieldSource,
		"AU": query.FieldAuthor,
		"IS": query.FieldISSN,
		"IB": query.FieldISBN,
		"LA": query.FieldLanguage,
		"KW": query.FieldKeywords,
		"DE": query.FieldDescriptors,
	},
	Combined:   map[string][]query.Field{},
	Variants:   map[string]string{},
	Deprecated: map[string]string{},
}
