// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package query

// Field is a platform-neutral search field. The vocabulary is closed:
// translators map platform-specific field tags onto these values and back.
type Field string

const (
	FieldAll            Field = "all-fields"
	FieldTitle          Field = "title"
	FieldAbstract       Field = "abstract"
	FieldTopic          Field = "topic"
	FieldAuthor         Field = "author"
	FieldAuthorKeywords Field = "author-keywords"
	FieldKeywordsPlus   Field = "keywords-plus"
	FieldKeywords       Field = "keywords"
	FieldSubjectTerms   Field = "subject-terms"
	FieldDescriptors    Field = "descriptors"
	FieldMeshTerm       Field = "mesh-term"
	FieldTextWord       Field = "text-word"
	FieldLanguage       Field = "language"
	FieldYear           Field = "year"
	FieldSource         Field = "source"
	FieldISSN           Field = "issn"
	FieldISBN           Field = "isbn"
	FieldDOI            Field = "doi"
	FieldPubmedID       Field = "pubmed-id"
	FieldPublisher      Field = "publisher"
)

// SearchField is the field restriction attached to a term or operator node.
// Raw preserves the platform spelling from the query string; Generic is set
// once the field has been resolved against the platform's field map. A
// combined platform field (e.g. PubMed "[tiab]") never survives into a
// generic tree: translators expand it into an OR over atomic fields.
type SearchField struct {
	Raw     string `json:"raw" yaml:"raw"`
	Generic Field  `json:"generic,omitempty" yaml:"generic,omitempty"`
	Pos     Span   `json:"-" yaml:"-"`
}

// NewSearchField returns a field restriction with only the raw spelling set.
func NewSearchField(raw string) *SearchField {
	return &SearchField{Raw: raw, Pos: Artificial}
}

// NewGenericField returns a resolved, platform-neutral field restriction.
func NewGenericField(f Field) *SearchField {
	return &SearchField{Raw: string(f), Generic: f, Pos: Artificial}
}

// Clone returns an independent copy.
func (f *SearchField) Clone() *SearchField {
	if f == nil {
		return nil
	}
	c := *f
	return &c
}

// Equal compares the resolved field if both sides are resolved, and the raw
// spelling otherwise.
func (f *SearchField) Equal(other *SearchField) bool {
	if f == nil || other == nil {
		return f == other
	}
	if f.Generic != "" && other.Generic != "" {
		return f.Generic == other.Generic
	}
	return f.Raw == other.Raw
}

func (f *SearchField) String() string {
	if f == nil {
		return ""
	}
	if f.Generic != "" {
		return string(f.Generic)
	}
	return f.Raw
}
