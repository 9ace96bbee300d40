// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package lint collects severity-tagged findings about query tokens and
// query trees. All rule functions are stateless over their inputs; the
// Handler only accumulates messages and applies the strict/lenient mode
// contract when asked for the final verdict.
package lint

import (
	"fmt"
	"strings"

	"github.com/CoLRev-Environment/search-query/pkg/query"
)

// Mode governs whether error-level findings abort processing.
type Mode int

const (
	// ModeLenient aborts only on fatal findings; errors are auto-corrected
	// where a deterministic correction exists and escalated to fatal
	// otherwise. This is the default.
	ModeLenient Mode = iota
	// ModeStrict aborts on error-level and fatal findings alike.
	ModeStrict
)

func (m Mode) String() string {
	if m == ModeStrict {
		return "strict"
	}
	return "lenient"
}

// ParseMode resolves a user-supplied mode name.
func ParseMode(s string) (Mode, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "lenient":
		return ModeLenient, nil
	case "strict":
		return ModeStrict, nil
	default:
		return ModeLenient, fmt.Errorf("unknown lint mode %q (want strict or lenient)", s)
	}
}

// Message is one linter finding. Position (-1, -1) marks tree-level
// findings with no anchor in the query string.
type Message struct {
	Code     string     `json:"code" yaml:"code"`
	Label    string     `json:"label" yaml:"label"`
	Severity Severity   `json:"severity" yaml:"severity"`
	Pos      query.Span `json:"position" yaml:"position"`
	Details  string     `json:"details,omitempty" yaml:"details,omitempty"`
}

func (m Message) String() string {
	return fmt.Sprintf("%s [%s] %s %s", m.Severity, m.Code, m.Label, m.Details)
}

// Handler accumulates messages for one parse or lint run. Messages keep
// their order of detection. Silent suppresses warning-level findings from
// the collected output without changing control flow.
type Handler struct {
	Mode     Mode
	Silent   bool
	QueryStr string

	messages []Message
}

// NewHandler returns a handler for one run over the given query string.
func NewHandler(queryStr string, mode Mode) *Handler {
	return &Handler{Mode: mode, QueryStr: queryStr}
}

// Add records a finding at the code's default severity. Duplicate
// (code, position) pairs are dropped.
func (h *Handler) Add(code Code, pos query.Span, details string) {
	h.add(code, code.Severity, pos, details)
}

// AddFatal records a finding escalated to fatal, regardless of the code's
// default severity. Used in lenient mode when no deterministic correction
// exists for an error-level finding.
func (h *Handler) AddFatal(code Code, pos query.Span, details string) {
	h.add(code, SeverityFatal, pos, details)
}

func (h *Handler) add(code Code, sev Severity, pos query.Span, details string) {
	if sev == SeverityWarning && h.Silent {
		return
	}
	for _, m := range h.messages {
		if m.Code == code.Code && m.Pos == pos {
			return
		}
	}
	h.messages = append(h.messages, Message{
		Code:     code.Code,
		Label:    code.Label,
		Severity: sev,
		Pos:      pos,
		Details:  details,
	})
}

// Messages returns the findings in order of detection.
func (h *Handler) Messages() []Message {
	return h.messages
}

// HasFatal reports whether any fatal finding was recorded.
func (h *Handler) HasFatal() bool {
	for _, m := range h.messages {
		if m.Severity == SeverityFatal {
			return true
		}
	}
	return false
}

// Err applies the mode contract: in strict mode any error or fatal finding
// aborts, in lenient mode only fatal findings do. The returned error is a
// *FatalError carrying the full message list.
func (h *Handler) Err() error {
	abort := false
	for _, m := range h.messages {
		if m.Severity == SeverityFatal || (h.Mode == ModeStrict && m.Severity == SeverityError) {
			abort = true
			break
		}
	}
	if !abort {
		return nil
	}
	return &FatalError{QueryStr: h.QueryStr, Messages: h.messages}
}

// FatalError is the structured failure surfaced to callers when linting
// aborts. It carries every message collected up to the abort so that
// callers can render caret-style pointers into the original string.
type FatalError struct {
	QueryStr string
	Messages []Message
}

func (e *FatalError) Error() string {
	var first *Message
	for i := range e.Messages {
		if e.Messages[i].Severity >= SeverityError {
			first = &e.Messages[i]
			break
		}
	}
	if first == nil && len(e.Messages) > 0 {
		first = &e.Messages[0]
	}
	if first == nil {
		return "query linting failed"
	}
	return fmt.Sprintf("query linting failed: %s (%s) %s", first.Label, first.Code, first.Details)
}
