// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package searchquery parses, lints, translates, serializes and upgrades
// academic-literature Boolean search queries. Platform syntaxes (PubMed,
// Web of Science, EBSCOHost) convert through a platform-agnostic query
// tree defined in pkg/query; linter findings are reported as pkg/lint
// messages.
//
// All operations are pure and synchronous. Returned trees are owned by the
// caller; clone before mutating a tree shared across goroutines.
package searchquery

import (
	"fmt"

	"github.com/CoLRev-Environment/search-query/internal/parser"
	"github.com/CoLRev-Environment/search-query/internal/registry"
	"github.com/CoLRev-Environment/search-query/internal/upgrade"
	"github.com/CoLRev-Environment/search-query/pkg/lint"
	"github.com/CoLRev-Environment/search-query/pkg/query"
)

// Options tunes parsing and linting. The zero value is lenient,
// non-silent, latest syntax version, no general field.
type Options struct {
	// Version selects a registered syntax generation; "" means latest.
	Version string
	// Mode selects strict or lenient linting.
	Mode lint.Mode
	// Silent drops warning-level messages from results.
	Silent bool
	// Field is a search field supplied outside the query string, applied
	// per the field-validation rules.
	Field string
}

// Parse parses a platform query string into a query tree. Numbered query
// lists ("1. ...", "2. #1 OR ...") are resolved into a single string
// first. The returned messages are the linter findings collected during
// the parse; a non-nil error is a *lint.FatalError when linting aborted.
func Parse(platform, queryStr string, opts Options) (*query.Query, []lint.Message, error) {
	p, err := registry.ParsePlatform(platform)
	if err != nil {
		return nil, nil, err
	}
	pp, err := registry.ParserFor(p, opts.Version)
	if err != nil {
		return nil, nil, err
	}

	var listMessages []lint.Message
	if parser.IsListQuery(queryStr) {
		resolved, msgs, err := parser.ResolveList(queryStr)
		if err != nil {
			return nil, msgs, err
		}
		listMessages = msgs
		queryStr = resolved
	}

	tree, messages, err := pp.Parse(queryStr, parser.Options{
		Mode:         opts.Mode,
		Silent:       opts.Silent,
		GeneralField: opts.Field,
	})
	messages = append(listMessages, messages...)
	return tree, messages, err
}

// Lint parses the query string and returns the findings. Unlike Parse, a
// lint abort is not an error here: the messages are the product.
func Lint(platform, queryStr string, opts Options) ([]lint.Message, error) {
	_, messages, err := Parse(platform, queryStr, opts)
	if err != nil {
		if fe, ok := err.(*lint.FatalError); ok {
			return fe.Messages, nil
		}
		return messages, err
	}
	return messages, nil
}

// Translate converts a query string from one platform syntax to another
// and returns the target-syntax string. Field restrictions without a
// target equivalent are substituted with the target default and reported
// in the messages.
func Translate(sourcePlatform, queryStr, targetPlatform string, opts Options) (string, []lint.Message, error) {
	src, err := registry.ParsePlatform(sourcePlatform)
	if err != nil {
		return "", nil, err
	}
	dst, err := registry.ParsePlatform(targetPlatform)
	if err != nil {
		return "", nil, err
	}
	res, err := upgrade.Run(upgrade.Request{
		QueryStr:     queryStr,
		Source:       src,
		Target:       dst,
		GeneralField: opts.Field,
		Mode:         opts.Mode,
	})
	if err != nil {
		return "", nil, err
	}
	return res.QueryStr, res.Messages, nil
}

// TranslateTree converts a query tree built for one platform's syntax
// family into the target platform's shape, through the generic form. The
// input tree is not mutated. opts.Version selects the target syntax
// generation; opts.Field is the general field carried into the generic
// form. Field restrictions without a target equivalent are substituted
// with the target default and reported in the messages.
func TranslateTree(q *query.Query, sourcePlatform, targetPlatform string, opts Options) (*query.Query, []lint.Message, error) {
	src, err := registry.ParsePlatform(sourcePlatform)
	if err != nil {
		return nil, nil, err
	}
	dst, err := registry.ParsePlatform(targetPlatform)
	if err != nil {
		return nil, nil, err
	}
	srcTranslator, err := registry.TranslatorFor(src, "")
	if err != nil {
		return nil, nil, err
	}
	dstTranslator, err := registry.TranslatorFor(dst, opts.Version)
	if err != nil {
		return nil, nil, err
	}
	generic, err := srcTranslator.ToGeneric(q, opts.Field)
	if err != nil {
		return nil, nil, err
	}
	return dstTranslator.ToSpecific(generic)
}

// ToString serializes a query tree in a platform's syntax. The tree must
// be structurally valid; violations are returned as ordinary errors, not
// lint messages.
func ToString(platform string, q *query.Query, opts Options) (string, error) {
	p, err := registry.ParsePlatform(platform)
	if err != nil {
		return "", err
	}
	s, err := registry.SerializerFor(p, opts.Version)
	if err != nil {
		return "", err
	}
	return s.ToString(q)
}

// Upgrade rewrites a query string from an older syntax generation of a
// platform to a newer one (or the latest, when toVersion is empty).
func Upgrade(platform, queryStr, fromVersion, toVersion string) (string, []lint.Message, error) {
	p, err := registry.ParsePlatform(platform)
	if err != nil {
		return "", nil, err
	}
	if fromVersion == "" {
		return "", nil, fmt.Errorf("upgrade requires the source syntax version")
	}
	res, err := upgrade.Run(upgrade.Request{
		QueryStr:      queryStr,
		Source:        p,
		SourceVersion: fromVersion,
		Target:        p,
		TargetVersion: toVersion,
	})
	if err != nil {
		return "", nil, err
	}
	return res.QueryStr, res.Messages, nil
}

// Versions returns the registered syntax versions of a platform, oldest
// first.
func Versions(platform string) ([]string, error) {
	p, err := registry.ParsePlatform(platform)
	if err != nil {
		return nil, err
	}
	return registry.Versions(p), nil
}
