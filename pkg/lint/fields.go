// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package lint

import (
	"fmt"

	"github.com/CoLRev-Environment/search-query/pkg/query"
)

// FieldSpec describes the field situation of one lint run: whether the
// platform requires an explicit field, whether the query string itself
// starts with one, and whether a separate "general field" setting was
// supplied alongside the string (search files carry such a field).
type FieldSpec struct {
	// Required marks platforms whose queries must carry a field restriction.
	Required bool
	// Default is the platform's declared default field, substituted in
	// lenient mode when a required field is absent.
	Default string
	// InString is the first field token of the query string, "" if none.
	InString string
	// InStringPos locates that token.
	InStringPos query.Span
	// General is the field supplied outside the query string, "" if none.
	General string
	// Same reports whether two platform field spellings denote the same
	// field (platforms normalize variants, so "Title" == "TI=").
	Same func(a, b string) bool
}

// CheckFieldSpec applies the field-validation decision table and returns
// the field the parser should apply to terms without their own restriction
// ("" if none). The table is authoritative; each combination of
// (required, field-in-string, general-field, equal/contradictory) maps to
// exactly one outcome:
//
//	 # required  in-string  general  relation      outcome
//	 1  yes       yes        no       -             ok
//	 2  yes       yes        yes      equal         warning FIELD_0005 (redundant)
//	 3  yes       yes        yes      contradicts   error FIELD_0001 (string wins in lenient)
//	 4  yes       no         yes      -             warning FIELD_0003 (general applied)
//	 5  yes       no         no       -             error FIELD_0002; lenient: default + FIELD_0006
//	 6  no        yes        no       -             ok
//	 7  no        yes        yes      equal         warning FIELD_0005 (redundant)
//	 8  no        yes        yes      contradicts   error FIELD_0001 (string wins in lenient)
//	 9  no        no         yes      -             warning FIELD_0003 (general applied)
//	10  no        no         no       -             ok (platform default applies implicitly)
func CheckFieldSpec(h *Handler, spec FieldSpec) string {
	same := spec.Same
	if same == nil {
		same = func(a, b string) bool { return a == b }
	}

	switch {
	case spec.InString != "" && spec.General == "":
		// Rows 1 and 6.
		return ""

	case spec.InString != "" && spec.General != "":
		if same(spec.InString, spec.General) {
			// Rows 2 and 7.
			h.Add(FieldRedundant, spec.InStringPos,
				fmt.Sprintf("field %q is also set as the general field", spec.InString))
			return ""
		}
		// Rows 3 and 8. The field written in the query string wins; in
		// strict mode the recorded error aborts.
		h.Add(FieldContradiction, spec.InStringPos,
			fmt.Sprintf("query field %q contradicts the general field %q",
				spec.InString, spec.General))
		return ""

	case spec.General != "":
		// Rows 4 and 9.
		h.Add(FieldExtracted, query.Artificial,
			fmt.Sprintf("general field %q applied; include the field in the query string",
				spec.General))
		return spec.General

	case spec.Required:
		// Row 5.
		if h.Mode == ModeStrict {
			h.Add(FieldMissing, query.Artificial,
				"the query must specify a search field")
			return ""
		}
		h.Add(FieldMissing, query.Artificial,
			fmt.Sprintf("search field missing, defaulting to %q", spec.Default))
		h.Add(FieldImplicit, query.Artificial,
			fmt.Sprintf("default field %q applied", spec.Default))
		return spec.Default

	default:
		// Row 10.
		return ""
	}
}
