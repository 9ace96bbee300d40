// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package registry maps (platform, syntax version) pairs to their parser,
// translator and serializer implementations. The maps are built once and
// never mutated afterwards, so lookups are safe from any goroutine.
package registry

import (
	"fmt"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/CoLRev-Environment/search-query/internal/parser"
	"github.com/CoLRev-Environment/search-query/internal/serialize"
	"github.com/CoLRev-Environment/search-query/internal/translate"
	"github.com/CoLRev-Environment/search-query/pkg/lint"
	"github.com/CoLRev-Environment/search-query/pkg/query"
)

// Platform identifies a search platform syntax family.
type Platform string

const (
	PubMed  Platform = "pubmed"
	WOS     Platform = "wos"
	EBSCO   Platform = "ebsco"
	Generic Platform = "generic"
)

// ParsePlatform resolves user-supplied platform names, accepting the
// aliases in circulation ("web of science", "ebscohost").
func ParsePlatform(s string) (Platform, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "pubmed", "medline":
		return PubMed, nil
	case "wos", "web of science", "webofscience":
		return WOS, nil
	case "ebsco", "ebscohost":
		return EBSCO, nil
	case "generic":
		return Generic, nil
	default:
		return "", fmt.Errorf("unknown platform %q", s)
	}
}

// Key addresses one registered syntax generation.
type Key struct {
	Platform Platform
	Version  string
}

func (k Key) String() string {
	return string(k.Platform) + "/" + k.Version
}

// Parser turns a platform query string into a query tree.
type Parser interface {
	Parse(queryStr string, opts parser.Options) (*query.Query, []lint.Message, error)
}

// Translator converts between a platform tree and the generic form.
type Translator interface {
	ToGeneric(q *query.Query, generalField string) (*query.Query, error)
	ToSpecific(q *query.Query) (*query.Query, []lint.Message, error)
}

// Serializer renders a platform tree back into its string syntax.
type Serializer interface {
	ToString(q *query.Query) (string, error)
}

type entry struct {
	parser     Parser
	translator Translator
	serializer Serializer
}

var (
	buildOnce sync.Once
	entries   map[Key]entry
	versions  map[Platform][]string
)

func build() {
	entries = map[Key]entry{
		{PubMed, "1.0"}: {
			parser:     parser.PubMed{},
			translator: translate.PubMed{},
			serializer: serialize.PubMed{},
		},
		{WOS, "0.9"}: {
			parser:     parser.WOS{Legacy: true},
			translator: translate.WOS{},
			serializer: serialize.WOS{ImplicitNear: true},
		},
		{WOS, "1.0"}: {
			parser:     parser.WOS{},
			translator: translate.WOS{},
			serializer: serialize.WOS{},
		},
		{EBSCO, "1.0"}: {
			parser:     parser.EBSCO{},
			translator: translate.EBSCO{},
			serializer: serialize.EBSCO{},
		},
		{Generic, "1.0"}: {
			serializer: serialize.Generic{},
		},
	}
	versions = map[Platform][]string{}
	for k := range entries {
		versions[k.Platform] = append(versions[k.Platform], k.Version)
	}
	for _, vs := range versions {
		sort.Slice(vs, func(i, j int) bool { return versionLess(vs[i], vs[j]) })
	}
}

// Versions returns the registered syntax versions of a platform, oldest
// first.
func Versions(p Platform) []string {
	buildOnce.Do(build)
	vs := versions[p]
	out := make([]string, len(vs))
	copy(out, vs)
	return out
}

// Latest returns the newest registered version of a platform.
func Latest(p Platform) (string, error) {
	buildOnce.Do(build)
	vs := versions[p]
	if len(vs) == 0 {
		return "", fmt.Errorf("no versions registered for platform %q", p)
	}
	return vs[len(vs)-1], nil
}

// resolve fills an empty version with the platform's latest and validates
// the key.
func resolve(p Platform, version string) (Key, entry, error) {
	buildOnce.Do(build)
	if version == "" || version == "latest" {
		v, err := Latest(p)
		if err != nil {
			return Key{}, entry{}, err
		}
		version = v
	}
	k := Key{Platform: p, Version: version}
	e, ok := entries[k]
	if !ok {
		return Key{}, entry{}, fmt.Errorf("no registration for %s", k)
	}
	return k, e, nil
}

// ParserFor returns the parser for the platform and version ("" or
// "latest" selects the newest).
func ParserFor(p Platform, version string) (Parser, error) {
	k, e, err := resolve(p, version)
	if err != nil {
		return nil, err
	}
	if e.parser == nil {
		return nil, fmt.Errorf("%s has no parser", k)
	}
	return e.parser, nil
}

// TranslatorFor returns the translator for the platform and version.
func TranslatorFor(p Platform, version string) (Translator, error) {
	k, e, err := resolve(p, version)
	if err != nil {
		return nil, err
	}
	if e.translator == nil {
		return nil, fmt.Errorf("%s has no translator", k)
	}
	return e.translator, nil
}

// SerializerFor returns the serializer for the platform and version.
func SerializerFor(p Platform, version string) (Serializer, error) {
	k, e, err := resolve(p, version)
	if err != nil {
		return nil, err
	}
	if e.serializer == nil {
		return nil, fmt.Errorf("%s has no serializer", k)
	}
	return e.serializer, nil
}

// versionLess orders MAJOR[.MINOR] version strings numerically.
func versionLess(a, b string) bool {
	amaj, amin := splitVersion(a)
	bmaj, bmin := splitVersion(b)
	if amaj != bmaj {
		return amaj < bmaj
	}
	return amin < bmin
}

func splitVersion(v string) (int, int) {
	parts := strings.SplitN(v, ".", 2)
	major, _ := strconv.Atoi(parts[0])
	minor := 0
	if len(parts) == 2 {
		minor, _ = strconv.Atoi(parts[1])
	}
	return major, minor
}
