// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package lint

// Severity orders linter findings by how much they block processing.
type Severity int

const (
	// SeverityWarning marks stylistic or best-practice findings. Warnings
	// never abort.
	SeverityWarning Severity = iota
	// SeverityError marks semantically broken but often auto-correctable
	// findings. Errors abort in strict mode; in lenient mode they are
	// corrected, or escalated to fatal when no correction exists.
	SeverityError
	// SeverityFatal marks findings after which parsing cannot continue.
	SeverityFatal
)

func (s Severity) String() string {
	switch s {
	case SeverityFatal:
		return "FATAL"
	case SeverityError:
		return "ERROR"
	default:
		return "WARNING"
	}
}

// Code identifies one linter rule. The numeric part is stable across
// releases so that downstream tooling can match on it.
type Code struct {
	Code     string
	Label    string
	Severity Severity
}

// Rule catalog. PARSE codes are structural failures, STRUCT codes are
// structure warnings, FIELD codes concern search-field usage, TERM codes
// concern term contents, WILDCARD codes concern truncation characters.
var (
	TokenizingFailed      = Code{"PARSE_0001", "tokenizing-failed", SeverityFatal}
	UnbalancedParentheses = Code{"PARSE_0002", "unbalanced-parentheses", SeverityFatal}
	UnbalancedQuotes      = Code{"PARSE_0003", "unbalanced-quotes", SeverityFatal}
	InvalidTokenSequence  = Code{"PARSE_0004", "invalid-token-sequence", SeverityFatal}
	InvalidListReference  = Code{"PARSE_0005", "invalid-list-reference", SeverityFatal}
	MissingRootNode       = Code{"PARSE_0006", "missing-root-node", SeverityFatal}
	EmptyParentheses      = Code{"PARSE_0007", "empty-parentheses", SeverityFatal}
	NearDistanceTooLarge  = Code{"PARSE_0008", "near-distance-too-large", SeverityFatal}

	ImplicitPrecedence     = Code{"STRUCT_0001", "implicit-precedence", SeverityWarning}
	OperatorCapitalization = Code{"STRUCT_0002", "operator-capitalization", SeverityWarning}
	ImplicitNearValue      = Code{"STRUCT_0003", "implicit-near-value", SeverityWarning}
	DeprecatedProximity    = Code{"STRUCT_0004", "deprecated-proximity-operator", SeverityWarning}
	UnnecessaryParentheses = Code{"STRUCT_0005", "unnecessary-parentheses", SeverityWarning}

	FieldContradiction = Code{"FIELD_0001", "field-contradiction", SeverityError}
	FieldMissing       = Code{"FIELD_0002", "field-missing", SeverityError}
	FieldExtracted     = Code{"FIELD_0003", "field-extracted", SeverityWarning}
	FieldUnsupported   = Code{"FIELD_0004", "field-unsupported", SeverityError}
	FieldRedundant     = Code{"FIELD_0005", "field-redundant", SeverityWarning}
	FieldImplicit      = Code{"FIELD_0006", "field-implicit", SeverityWarning}
	FieldDeprecated    = Code{"FIELD_0007", "field-deprecated", SeverityError}
	FieldSubstituted   = Code{"FIELD_0008", "field-substituted", SeverityWarning}

	InvalidCharacter  = Code{"TERM_0001", "invalid-character-in-term", SeverityError}
	YearFormatInvalid = Code{"TERM_0002", "year-format-invalid", SeverityError}
	YearSpanViolation = Code{"TERM_0003", "year-span-violation", SeverityError}
	RedundantTerm     = Code{"TERM_0004", "redundant-term", SeverityWarning}
	NonStandardQuotes = Code{"TERM_0005", "non-standard-quotes", SeverityWarning}

	WildcardInYear      = Code{"WILDCARD_0001", "wildcard-in-year", SeverityFatal}
	WildcardUnsupported = Code{"WILDCARD_0002", "wildcard-unsupported", SeverityError}
)
