// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package upgrade rewrites a query string from one platform syntax
// generation to another. The pipeline is parse, translate to the generic
// form, translate to the target platform, serialize, and re-parse the
// result as a validation step. Any stage failure aborts with the
// originating error; warnings from every stage accumulate in the result.
package upgrade

import (
	"fmt"

	"github.com/CoLRev-Environment/search-query/internal/parser"
	"github.com/CoLRev-Environment/search-query/internal/registry"
	"github.com/CoLRev-Environment/search-query/pkg/lint"
	"github.com/CoLRev-Environment/search-query/pkg/query"
)

// Request names the source and target of one upgrade run. Empty versions
// select the latest registered generation; upgrading within one platform
// (wos 0.9 to wos 1.0) and across platforms both go through the same
// pipeline.
type Request struct {
	QueryStr      string
	Source        registry.Platform
	SourceVersion string
	Target        registry.Platform
	TargetVersion string
	// GeneralField is an out-of-string field restriction carried into the
	// generic form.
	GeneralField string
	Mode         lint.Mode
}

// Result is the upgraded query plus everything learned along the way.
type Result struct {
	// QueryStr is the serialized target-syntax query.
	QueryStr string
	// Tree is the target-platform tree the string was rendered from.
	Tree *query.Query
	// Messages aggregates warnings from parsing, translation and the
	// final validation parse.
	Messages []lint.Message
}

// Run executes the upgrade pipeline.
func Run(req Request) (*Result, error) {
	p, err := registry.ParserFor(req.Source, req.SourceVersion)
	if err != nil {
		return nil, fmt.Errorf("resolving source: %w", err)
	}
	srcTranslator, err := registry.TranslatorFor(req.Source, req.SourceVersion)
	if err != nil {
		return nil, fmt.Errorf("resolving source: %w", err)
	}
	dstTranslator, err := registry.TranslatorFor(req.Target, req.TargetVersion)
	if err != nil {
		return nil, fmt.Errorf("resolving target: %w", err)
	}
	serializer, err := registry.SerializerFor(req.Target, req.TargetVersion)
	if err != nil {
		return nil, fmt.Errorf("resolving target: %w", err)
	}

	tree, messages, err := p.Parse(req.QueryStr, parser.Options{
		Mode:         req.Mode,
		GeneralField: req.GeneralField,
	})
	if err != nil {
		return nil, fmt.Errorf("parsing source query: %w", err)
	}

	generic, err := srcTranslator.ToGeneric(tree, req.GeneralField)
	if err != nil {
		return nil, fmt.Errorf("translating to generic form: %w", err)
	}

	specific, transMessages, err := dstTranslator.ToSpecific(generic)
	if err != nil {
		return nil, fmt.Errorf("translating to target platform: %w", err)
	}
	messages = append(messages, transMessages...)

	rendered, err := serializer.ToString(specific)
	if err != nil {
		return nil, fmt.Errorf("serializing target query: %w", err)
	}

	// The rendered string must parse cleanly on the target platform;
	// anything else is a pipeline defect, not a user error.
	validator, err := registry.ParserFor(req.Target, req.TargetVersion)
	if err == nil {
		if _, _, verr := validator.Parse(rendered, parser.Options{Silent: true}); verr != nil {
			return nil, fmt.Errorf("validating upgraded query %q: %w", rendered, verr)
		}
	}

	return &Result{QueryStr: rendered, Tree: specific, Messages: messages}, nil
}
